package sample

import (
	"log/slog"
	"math/rand/v2"
	"slices"
	"storemy/pkg/logging"
)

// ForkIndex generalizes LinearIndex to tree-shaped joins. Instead of always
// bridging off the immediately preceding emission, each level nominates a
// parentTable: the index into the output record vector that supplies this
// level's bridging value. A table that is the join partner of several
// other tables (a fan-out in the query graph, not just a chain) owns
// several levels sharing the same parentTable value.
//
// Weight composition at a branching record is the product of the totals
// contributed by each of its child levels (grouped by shared parentTable,
// in the array order the builder gave them). isLastChild marks the last
// level in such a group, for callers that walk the level list directly
// instead of through the grouped accessors below.
type ForkIndex struct {
	levels       []*Level
	parentTables []int
	isLastChild  []bool
	source       RecordSource

	total           Weight
	built           bool
	postponeRebuild bool
	cfg             Config
}

// NewForkIndex returns an index over levels, where parentTables[i] is the
// output-vector slot supplying level i's bridging value (0 is the root
// table) and isLastChild[i] marks the end of a run of sibling levels
// sharing the same parent slot. len(levels), len(parentTables), and
// len(isLastChild) must agree. Uses DefaultConfig; call
// NewForkIndexWithConfig to override it.
func NewForkIndex(levels []*Level, parentTables []int, isLastChild []bool, source RecordSource) *ForkIndex {
	return NewForkIndexWithConfig(levels, parentTables, isLastChild, source, DefaultConfig())
}

// NewForkIndexWithConfig is NewForkIndex with an explicit Config.
func NewForkIndexWithConfig(levels []*Level, parentTables []int, isLastChild []bool, source RecordSource, cfg Config) *ForkIndex {
	return &ForkIndex{
		levels:       levels,
		parentTables: parentTables,
		isLastChild:  isLastChild,
		source:       source,
		cfg:          cfg,
	}
}

// GetNumberOfLevels returns len(levels) + 1 — the number of tables in the
// output vector.
func (idx *ForkIndex) GetNumberOfLevels() int {
	return len(idx.levels) + 1
}

// IsLastChild reports whether level i is the last in its run of sibling
// levels sharing a parent slot, as given at construction. childrenOf
// derives grouping structurally from parentTables and does not consult
// this flag; it is kept for callers that walk Levels directly and need to
// know where a sibling group ends.
func (idx *ForkIndex) IsLastChild(i int) bool {
	return idx.isLastChild[i]
}

// GetTotal returns the join's cardinality. Valid only after a rebuild.
func (idx *ForkIndex) GetTotal() (Weight, error) {
	if !idx.built {
		return 0, errNotInitialized("ForkIndex.GetTotal")
	}
	return idx.total, nil
}

// SetPostponeRebuild controls whether Insert/Delete trigger rebuildInitial
// immediately or defer it to the next Finalize call.
func (idx *ForkIndex) SetPostponeRebuild(postpone bool) {
	idx.postponeRebuild = postpone
}

// childrenOf returns the level indices whose parentTables entry equals
// slot, in array order.
func (idx *ForkIndex) childrenOf(slot int) []int {
	var children []int
	for i, p := range idx.parentTables {
		if p == slot {
			children = append(children, i)
		}
	}
	return children
}

// slotTable returns the table occupying output-vector slot s, given that
// slot 0 is the root table (levels[0]'s left table) and slot s>=1 is the
// right table of levels[s-1].
func (idx *ForkIndex) slotTable(s int) TableID {
	if s == 0 {
		return idx.levels[0].LeftTableID()
	}
	return idx.levels[s-1].RightTableID()
}

// Insert records one row of tableID in every level where tableID occupies
// that level's parent slot's table or the level's own right table, then
// rebuilds unless postponed.
func (idx *ForkIndex) Insert(tableID TableID, id RecordID) error {
	for i, l := range idx.levels {
		if idx.slotTable(idx.parentTables[i]) == tableID {
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

// Delete removes one row of tableID, symmetrically to Insert.
func (idx *ForkIndex) Delete(tableID TableID, id RecordID) error {
	for i, l := range idx.levels {
		if idx.slotTable(idx.parentTables[i]) == tableID {
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

// Finalize runs a deferred rebuild.
func (idx *ForkIndex) Finalize() {
	idx.rebuildInitial()
}

// rebuildInitial propagates weights from the leaves up. A level is a leaf
// (stays in default-weight mode) if no other level's parentTables entry
// points at its own right-hand output slot. A non-leaf level's RHS record
// weight is the product of the totals every child level (grouped by that
// slot) assigns to that record's bridging value.
func (idx *ForkIndex) rebuildInitial() {
	for i := len(idx.levels) - 1; i >= 0; i-- {
		cur := idx.levels[i]
		slot := i + 1
		children := idx.childrenOf(slot)
		if len(children) == 0 {
			continue
		}

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

				product := Weight(1)
				for _, childIdx := range children {
					child := idx.levels[childIdx]
					key, err := idx.source.JoinValue(cur.RightTableID(), child.LeftJoinColumn(), id)
					if err != nil {
						product = 0
						break
					}
					cv, ok := child.Lookup(key)
					if !ok {
						product = 0
						break
					}
					product *= cv.Total()
				}
				e.SetWeight(product)
			}
			if idx.cfg.SortBeforeRebuild {
				v.Sort()
			}
			v.SetupPrefixSum()
			v.PurgeZeroWeights()
		}
	}

	idx.built = true
	idx.total = 0
	if len(idx.levels) > 0 {
		root := idx.levels[0]
		children := idx.childrenOf(0)
		for key, v := range root.vertices {
			product, ok := idx.rootBranchProduct(children, key)
			if !ok {
				continue
			}
			idx.total += product * Weight(v.LHSOutdegree())
		}
	}

	logging.Debug("join-sample rebuild complete", slog.Uint64("start_weight", uint64(idx.total)))
}

// rootBranchProduct multiplies, over every direct child of the root slot,
// the total of whichever child vertex shares key — the root-level analogue
// of the per-record child product rebuildInitial assigns to an internal
// RHS record's weight. It assumes every direct child of a shared parent
// slot buckets the parent's records under the same key (the ordinary
// fan-out shape: several tables all referencing the same attribute of their
// parent), so one key lookup per child suffices instead of a per-record
// JoinValue resolution.
func (idx *ForkIndex) rootBranchProduct(children []int, key JoinKey) (Weight, bool) {
	product := Weight(1)
	for _, childIdx := range children {
		cv, ok := idx.levels[childIdx].Lookup(key)
		if !ok {
			return 0, false
		}
		product *= cv.Total()
	}
	return product, true
}

// GetJoinNumber returns the rank-th join tuple as a GetNumberOfLevels()
// record vector, one per table, indexed by output slot.
func (idx *ForkIndex) GetJoinNumber(rank Weight) ([]RecordID, error) {
	_, ids, err := idx.getJoinNumberWithWeights(rank)
	return ids, err
}

// GetJoinNumberWithWeights is GetJoinNumber plus the per-slot chosen
// weights: weights[0] is the product of every direct root child's total for
// the chosen root key, and weights[i+1] is the weight GetRecord returned
// while resolving out[i+1].
func (idx *ForkIndex) GetJoinNumberWithWeights(rank Weight) ([]RecordID, []Weight, error) {
	weights, ids, err := idx.getJoinNumberWithWeights(rank)
	return ids, weights, err
}

func (idx *ForkIndex) getJoinNumberWithWeights(rank Weight) ([]Weight, []RecordID, error) {
	if !idx.built {
		return nil, nil, errNotInitialized("ForkIndex.GetJoinNumber")
	}
	if rank >= idx.total {
		return nil, nil, errPrecondition("ForkIndex.GetJoinNumber", "rank out of range")
	}

	out := make([]RecordID, idx.GetNumberOfLevels())
	weights := make([]Weight, idx.GetNumberOfLevels())
	if len(idx.levels) == 0 {
		return weights, out, nil
	}

	root := idx.levels[0]
	children := idx.childrenOf(0)
	keys := root.Keys()
	slices.Sort(keys)

	k := rank
	var chosen *Vertex
	var product Weight
	for _, key := range keys {
		v, _ := root.Lookup(key)
		p, ok := idx.rootBranchProduct(children, key)
		if !ok {
			continue
		}
		c := p * Weight(v.LHSOutdegree())
		if k < c {
			chosen = v
			product = p
			break
		}
		k -= c
	}
	if chosen == nil {
		return nil, nil, errPrecondition("ForkIndex.GetJoinNumber", "rank resolved to no vertex")
	}

	lhsIndex := int(k / product)
	residual := k % product
	out[0] = chosen.lhsRecords[lhsIndex]
	weights[0] = product

	if err := idx.descend(0, residual, out, weights); err != nil {
		return nil, nil, err
	}
	return weights, out, nil
}

// descend resolves every descendant of the record already placed at
// out[slot], given the residual rank within that record's total weight,
// recording the weight GetRecord chose at each resolved slot into weights.
func (idx *ForkIndex) descend(slot int, residual Weight, out []RecordID, weights []Weight) error {
	children := idx.childrenOf(slot)
	if len(children) == 0 {
		return nil
	}

	table := idx.slotTable(slot)
	recordAtSlot := out[slot]

	totals := make([]Weight, len(children))
	for m, childIdx := range children {
		child := idx.levels[childIdx]
		key, err := idx.source.JoinValue(table, child.LeftJoinColumn(), recordAtSlot)
		if err != nil {
			return err
		}
		v, ok := child.Lookup(key)
		if !ok {
			return errPrecondition("ForkIndex.GetJoinNumber", "rank resolved to a missing vertex")
		}
		totals[m] = v.Total()
	}

	for m, childIdx := range children {
		divisor := Weight(1)
		for _, t := range totals[m+1:] {
			divisor *= t
		}
		var childResidual Weight
		if divisor > 0 {
			childResidual = residual / divisor
			residual %= divisor
		}

		child := idx.levels[childIdx]
		key, err := idx.source.JoinValue(table, child.LeftJoinColumn(), recordAtSlot)
		if err != nil {
			return err
		}
		v, _ := child.Lookup(key)
		id, w := v.GetRecord(&childResidual)
		out[childIdx+1] = id
		weights[childIdx+1] = w

		if err := idx.descend(childIdx+1, childResidual, out, weights); err != nil {
			return err
		}
	}
	return nil
}

// GetRandomJoin draws a uniformly random join tuple using rng.
func (idx *ForkIndex) GetRandomJoin(rng *rand.Rand) ([]RecordID, error) {
	total, err := idx.GetTotal()
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, errPrecondition("ForkIndex.GetRandomJoin", "empty join")
	}
	rank := Weight(rng.Uint64N(uint64(total)))
	return idx.GetJoinNumber(rank)
}

// GetRandomJoinWithWeights is GetRandomJoin plus the per-slot chosen
// weights, as returned by GetJoinNumberWithWeights.
func (idx *ForkIndex) GetRandomJoinWithWeights(rng *rand.Rand) ([]RecordID, []Weight, error) {
	total, err := idx.GetTotal()
	if err != nil {
		return nil, nil, err
	}
	if total == 0 {
		return nil, nil, errPrecondition("ForkIndex.GetRandomJoinWithWeights", "empty join")
	}
	rank := Weight(rng.Uint64N(uint64(total)))
	return idx.GetJoinNumberWithWeights(rank)
}

// MaxOutdegree reports the maximum |rhsRecords| across every vertex in the
// root level.
func (idx *ForkIndex) MaxOutdegree() int {
	if len(idx.levels) == 0 {
		return 0
	}
	return idx.levels[0].MaxOutdegree()
}

// MaxIndegree reports the maximum |lhsRecords| across every vertex in the
// root level.
func (idx *ForkIndex) MaxIndegree() int {
	if len(idx.levels) == 0 {
		return 0
	}
	return idx.levels[0].MaxIndegree()
}
