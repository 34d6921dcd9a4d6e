package sample

import (
	"log/slog"
	"math/rand/v2"
	"slices"
	"storemy/pkg/logging"
)

// LinearIndex samples and enumerates the result of a chain equi-join
// T0 ⋈ T1 ⋈ ... ⋈ Tn without materializing it. Levels[i] bridges Ti to
// Ti+1. Construction (Insert/Delete calls) is single-writer; once built the
// index is read-only and any number of goroutines may call GetRandomJoin or
// GetJoinNumber concurrently, as long as each supplies its own rand source.
type LinearIndex struct {
	levels          []*Level
	source          RecordSource
	total           Weight
	built           bool
	postponeRebuild bool
	cfg             Config
}

// NewLinearIndex returns an index over the given levels, ordered from the
// first table pair to the last, resolving join-column values through
// source. The final level is marked as the bottom of the chain. Uses
// DefaultConfig; call NewLinearIndexWithConfig to override it.
func NewLinearIndex(levels []*Level, source RecordSource) *LinearIndex {
	return NewLinearIndexWithConfig(levels, source, DefaultConfig())
}

// NewLinearIndexWithConfig is NewLinearIndex with an explicit Config.
func NewLinearIndexWithConfig(levels []*Level, source RecordSource, cfg Config) *LinearIndex {
	if len(levels) > 0 {
		levels[len(levels)-1].MarkLast()
	}
	return &LinearIndex{levels: levels, source: source, cfg: cfg}
}

// GetNumberOfLevels returns the number of table-pair bridges in the chain.
func (idx *LinearIndex) GetNumberOfLevels() int {
	return len(idx.levels)
}

// GetTotal returns the join's cardinality (startWeight): the sum, over
// every vertex v at the first level, of v.Total() * |v.lhsRecords|. Valid
// only after a rebuild has run at least once.
func (idx *LinearIndex) GetTotal() (Weight, error) {
	if !idx.built {
		return 0, errNotInitialized("LinearIndex.GetTotal")
	}
	return idx.total, nil
}

// SetPostponeRebuild controls whether Insert/Delete trigger rebuildInitial
// immediately (false, the default) or defer it to the next explicit
// Finalize call (true) — useful for bulk-loading many records before
// paying the rebuild cost once.
func (idx *LinearIndex) SetPostponeRebuild(postpone bool) {
	idx.postponeRebuild = postpone
}

// Insert records one row of tableID in every level that table participates
// in, reading the relevant join-column value(s) from the configured
// RecordSource, then rebuilds unless a rebuild has been postponed.
func (idx *LinearIndex) Insert(tableID TableID, id RecordID) error {
	for _, l := range idx.levels {
		if l.LeftTableID() == tableID {
			key, err := idx.source.JoinValue(tableID, l.LeftJoinColumn(), id)
			if err != nil {
				return err
			}
			l.InsertLHS(key, id)
		}
		if l.RightTableID() == tableID {
			key, err := idx.source.JoinValue(tableID, l.RightJoinColumn(), id)
			if err != nil {
				return err
			}
			l.InsertRHS(key, id)
		}
	}
	if !idx.postponeRebuild {
		idx.rebuildInitial()
	}
	return nil
}

// Delete removes one row of tableID, symmetrically to Insert, then
// rebuilds unless a rebuild has been postponed.
func (idx *LinearIndex) Delete(tableID TableID, id RecordID) error {
	for _, l := range idx.levels {
		if l.LeftTableID() == tableID {
			key, err := idx.source.JoinValue(tableID, l.LeftJoinColumn(), id)
			if err != nil {
				return err
			}
			l.DeleteLHS(key, id)
		}
		if l.RightTableID() == tableID {
			key, err := idx.source.JoinValue(tableID, l.RightJoinColumn(), id)
			if err != nil {
				return err
			}
			l.DeleteRHS(key, id)
		}
	}
	if !idx.postponeRebuild {
		idx.rebuildInitial()
	}
	return nil
}

// Finalize runs a deferred rebuild. Call after a series of Insert/Delete
// calls made under SetPostponeRebuild(true).
func (idx *LinearIndex) Finalize() {
	idx.rebuildInitial()
}

// rebuildInitial propagates completion weights backward from the last
// level to the first, then computes startWeight from the first level's
// vertices.
//
// For level i < n-1, every RHS record r at L_i contributes a completion
// weight equal to the total of whichever vertex at L_{i+1} r's value on
// L_{i+1}'s LHS join column selects — that is a per-record lookup, not a
// per-vertex one, since r's bucketing key at L_i (a value on L_i's RIGHT
// join column) and its bridging value into L_{i+1} (a value on L_{i+1}'s
// LEFT join column) are generally different attributes of the same row.
func (idx *LinearIndex) rebuildInitial() {
	for i := len(idx.levels) - 2; i >= 0; i-- {
		cur := idx.levels[i]
		next := idx.levels[i+1]
		rightTableID := cur.RightTableID()
		nextColumn := next.LeftJoinColumn()

		logging.Debug("rebuilding join-sample level",
			slog.Int("level", i),
			slog.Int("vertex_count", len(cur.vertices)),
		)

		for _, v := range cur.vertices {
			v.EnsureWeighted()

			e := v.RHSEnumerator()
			for e.Step() {
				id := e.RecordID()
				if id == tombstoneRecord {
					e.SetWeight(0)
					continue
				}
				var w Weight
				key, err := idx.source.JoinValue(rightTableID, nextColumn, id)
				if err == nil {
					if nextVertex, ok := next.Lookup(key); ok {
						w = nextVertex.Total()
					}
				}
				e.SetWeight(w)
			}
			if idx.cfg.SortBeforeRebuild {
				v.Sort()
			}
			v.SetupPrefixSum()
			v.PurgeZeroWeights()
		}
	}

	idx.built = true
	idx.recomputeTotal()

	logging.Debug("join-sample rebuild complete", slog.Uint64("start_weight", uint64(idx.total)))
}

// recomputeTotal sums, over the first level's vertices, v.Total() times the
// number of LHS records at v — the cross product every LHS record forms
// with the RHS-rooted completions of its vertex.
func (idx *LinearIndex) recomputeTotal() {
	idx.total = 0
	if len(idx.levels) == 0 {
		return
	}
	for _, v := range idx.levels[0].vertices {
		idx.total += v.Total() * Weight(v.LHSOutdegree())
	}
}

// GetJoinNumber returns the rank-th join tuple (0-based, rank < GetTotal())
// as a per-table record vector with one entry per table in the chain: n+1
// entries for n levels, result[0] from the first level's left-hand table
// and result[i+1] from level i's right-hand table. rank must be strictly
// less than GetTotal(); otherwise errPrecondition is returned.
func (idx *LinearIndex) GetJoinNumber(rank Weight) ([]RecordID, error) {
	_, ids, err := idx.getJoinNumberWithWeights(rank)
	return ids, err
}

// GetJoinNumberWithWeights is GetJoinNumber plus the sequence of per-level
// chosen weights: weights[0] is the first vertex's total, weights[i+1] is
// the weight chosen at level i.
func (idx *LinearIndex) GetJoinNumberWithWeights(rank Weight) ([]RecordID, []Weight, error) {
	weights, ids, err := idx.getJoinNumberWithWeights(rank)
	return ids, weights, err
}

func (idx *LinearIndex) getJoinNumberWithWeights(rank Weight) ([]Weight, []RecordID, error) {
	if !idx.built {
		return nil, nil, errNotInitialized("LinearIndex.GetJoinNumber")
	}
	if rank >= idx.total {
		return nil, nil, errPrecondition("LinearIndex.GetJoinNumber", "rank out of range")
	}
	if len(idx.levels) == 0 {
		return nil, nil, nil
	}

	first := idx.levels[0]
	keys := first.Keys()
	slices.Sort(keys)

	k := rank
	var chosen *Vertex
	for _, key := range keys {
		v, _ := first.Lookup(key)
		c := v.Total() * Weight(v.LHSOutdegree())
		if k < c {
			chosen = v
			break
		}
		k -= c
	}
	if chosen == nil {
		return nil, nil, errPrecondition("LinearIndex.GetJoinNumber", "rank resolved to no vertex")
	}

	lhsIndex := int(k / chosen.Total())
	residual := k % chosen.Total()

	ids := make([]RecordID, len(idx.levels)+1)
	weights := make([]Weight, len(idx.levels)+1)
	ids[0] = chosen.lhsRecords[lhsIndex]
	weights[0] = chosen.Total()

	rhsID, wChosen := chosen.GetRecord(&residual)
	ids[1] = rhsID
	weights[1] = wChosen

	for i := 1; i < len(idx.levels); i++ {
		prev := idx.levels[i-1]
		cur := idx.levels[i]
		key, err := idx.source.JoinValue(prev.RightTableID(), cur.LeftJoinColumn(), rhsID)
		if err != nil {
			return nil, nil, err
		}
		v, ok := cur.Lookup(key)
		if !ok {
			return nil, nil, errPrecondition("LinearIndex.GetJoinNumber", "rank resolved to a missing vertex")
		}
		rhsID, wChosen = v.GetRecord(&residual)
		ids[i+1] = rhsID
		weights[i+1] = wChosen
	}

	return weights, ids, nil
}

// GetRandomJoin draws a uniformly random join tuple using rng, in the same
// format as GetJoinNumber.
func (idx *LinearIndex) GetRandomJoin(rng *rand.Rand) ([]RecordID, error) {
	total, err := idx.GetTotal()
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, errPrecondition("LinearIndex.GetRandomJoin", "empty join")
	}
	rank := Weight(rng.Uint64N(uint64(total)))
	return idx.GetJoinNumber(rank)
}

// GetRandomJoinWithWeights is GetRandomJoin plus the per-level chosen
// weights, as returned by GetJoinNumberWithWeights.
func (idx *LinearIndex) GetRandomJoinWithWeights(rng *rand.Rand) ([]RecordID, []Weight, error) {
	total, err := idx.GetTotal()
	if err != nil {
		return nil, nil, err
	}
	if total == 0 {
		return nil, nil, errPrecondition("LinearIndex.GetRandomJoinWithWeights", "empty join")
	}
	rank := Weight(rng.Uint64N(uint64(total)))
	return idx.GetJoinNumberWithWeights(rank)
}

// MaxOutdegree reports the maximum |rhsRecords| across every vertex in the
// first level.
func (idx *LinearIndex) MaxOutdegree() int {
	if len(idx.levels) == 0 {
		return 0
	}
	return idx.levels[0].MaxOutdegree()
}

// MaxIndegree reports the maximum |lhsRecords| across every vertex in the
// first level.
func (idx *LinearIndex) MaxIndegree() int {
	if len(idx.levels) == 0 {
		return 0
	}
	return idx.levels[0].MaxIndegree()
}
