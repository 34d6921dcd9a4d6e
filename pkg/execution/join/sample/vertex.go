package sample

import "slices"

// tombstoneRecord marks a deleted RHS position in weighted mode. The slot is
// kept (rather than removed) so that previously computed prefix-sum indices
// into rhsWeights stay valid until the next purgeZeroWeights compacts them.
const tombstoneRecord RecordID = -1

// Vertex holds, for one join-key value at one Level, the records on both
// sides of the join column that carry that value. The RHS side additionally
// tracks, per record, a completion weight: the number of join tuples that
// begin with that record and extend through every later level.
//
// A freshly created Vertex is in default-weight mode (rhsWeights == nil):
// every RHS record is assumed to contribute exactly 1, which is correct for
// the last level of a chain and cheap (no prefix-sum array) everywhere else
// until rebuildInitial assigns real weights. Once a Vertex has computed
// weights it never reverts to default-weight mode, per spec.
type Vertex struct {
	lhsRecords []RecordID
	rhsRecords []RecordID
	rhsWeights []Weight // nil in default-weight mode
	total      Weight
}

// NewVertex returns an empty Vertex in default-weight mode.
func NewVertex() *Vertex {
	return &Vertex{}
}

// InsertLHS appends a left-hand-side record to this vertex.
func (v *Vertex) InsertLHS(id RecordID) {
	v.lhsRecords = append(v.lhsRecords, id)
}

// LHSOutdegree returns the number of left-hand-side records at this vertex.
func (v *Vertex) LHSOutdegree() int {
	return len(v.lhsRecords)
}

// RHSOutdegree returns the number of right-hand-side records at this
// vertex, including any not-yet-purged tombstones.
func (v *Vertex) RHSOutdegree() int {
	return len(v.rhsRecords)
}

// Total returns the sum of completion weights over all RHS records.
func (v *Vertex) Total() Weight {
	return v.total
}

// IsDefaultWeight reports whether every RHS record at this vertex
// contributes weight 1 (the bottom-level steady state, or any vertex that
// has not yet been touched by rebuildInitial).
func (v *Vertex) IsDefaultWeight() bool {
	return v.rhsWeights == nil
}

// InsertRHS appends a right-hand-side record during the construction phase.
// In default-weight mode the record implicitly contributes weight 1. Once a
// vertex has transitioned to weighted mode (EnsureWeighted has run), newly
// inserted records start at raw weight 0 — a placeholder that the next
// rebuildInitial pass must overwrite via SetWeight before any read.
func (v *Vertex) InsertRHS(id RecordID) Weight {
	v.rhsRecords = append(v.rhsRecords, id)
	if v.rhsWeights == nil {
		v.total++
		return v.total
	}
	v.rhsWeights = append(v.rhsWeights, 0)
	return v.total
}

// EnsureWeighted transitions the vertex out of default-weight mode,
// allocating a raw (not yet prefix-summed) per-record weight slot for every
// existing RHS record. Called by rebuildInitial for every level above the
// last before it assigns real weights. A no-op if already weighted.
func (v *Vertex) EnsureWeighted() {
	if v.rhsWeights != nil {
		return
	}
	v.rhsWeights = make([]Weight, len(v.rhsRecords))
	v.total = 0
}

// DeleteRHS removes one occurrence of recordId from the RHS bucket. In
// default-weight mode the record is physically removed. In weighted mode
// the slot is tombstoned (see AdjustRHSWeight) and compacted later by
// PurgeZeroWeights, preserving the validity of prefix-sum indices computed
// before the delete. Deleting a record not present is a silent no-op.
func (v *Vertex) DeleteRHS(id RecordID) {
	i := slices.Index(v.rhsRecords, id)
	if i == -1 {
		return
	}

	if v.rhsWeights == nil {
		v.rhsRecords = slices.Delete(v.rhsRecords, i, i+1)
		if v.total > 0 {
			v.total--
		}
		return
	}

	v.AdjustRHSWeight(id, 0)
	v.rhsRecords[i] = tombstoneRecord
}

// AdjustRHSWeight changes the steady-state (post-SetupPrefixSum) weight of
// recordId to newWeight, patching every later prefix-sum entry by the delta
// and updating total. A no-op if recordId is not present.
func (v *Vertex) AdjustRHSWeight(id RecordID, newWeight Weight) {
	i := slices.Index(v.rhsRecords, id)
	if i == -1 || v.rhsWeights == nil {
		return
	}

	old := v.weightAt(i)
	delta := int64(newWeight) - int64(old)

	if i == len(v.rhsWeights)-1 {
		v.total = addDelta(v.total, delta)
		return
	}

	for j := i + 1; j < len(v.rhsWeights); j++ {
		v.rhsWeights[j] = Weight(addDelta(v.rhsWeights[j], delta))
	}
	v.total = Weight(addDelta(v.total, delta))
}

func addDelta(w Weight, delta int64) Weight {
	result := int64(w) + delta
	if result < 0 {
		return 0
	}
	return Weight(result)
}

// weightAt returns the per-record weight of rhsRecords[i] under the
// exclusive-prefix convention: rhsWeights[i] holds the cumulative weight of
// records [0, i), so weight(i) = rhsWeights[i+1] - rhsWeights[i], and the
// last record's weight is total - rhsWeights[last].
func (v *Vertex) weightAt(i int) Weight {
	if i == len(v.rhsWeights)-1 {
		return v.total - v.rhsWeights[i]
	}
	return v.rhsWeights[i+1] - v.rhsWeights[i]
}

// GetRecord resolves a residual rank within this vertex's total weight to
// the RHS record whose weight interval contains it. It mutates *residual to
// the rank's position within the chosen record's own weight (in [0, w) for
// the returned weight w), for use by the next level down. The caller must
// guarantee *residual < v.total; behavior is undefined otherwise.
func (v *Vertex) GetRecord(residual *Weight) (RecordID, Weight) {
	if v.rhsWeights == nil {
		idx := int(*residual)
		*residual = 0
		return v.rhsRecords[idx], 1
	}

	idx, _ := slices.BinarySearch(v.rhsWeights, *residual+1)
	idx--

	chosen := v.weightAt(idx)
	*residual -= v.rhsWeights[idx]
	return v.rhsRecords[idx], chosen
}

// Sort stably reorders the RHS records by raw (pre-SetupPrefixSum) weight,
// descending, so that heavy records land at low indices — this shortens the
// expected binary-search path in GetRecord for skewed weight distributions.
// Must run before SetupPrefixSum; correctness never depends on it.
func (v *Vertex) Sort() {
	if v.rhsWeights == nil {
		return
	}

	type pair struct {
		id RecordID
		w  Weight
	}
	pairs := make([]pair, len(v.rhsRecords))
	for i, id := range v.rhsRecords {
		pairs[i] = pair{id, v.rhsWeights[i]}
	}
	slices.SortStableFunc(pairs, func(a, b pair) int {
		switch {
		case a.w > b.w:
			return -1
		case a.w < b.w:
			return 1
		default:
			return 0
		}
	})
	for i, p := range pairs {
		v.rhsRecords[i] = p.id
		v.rhsWeights[i] = p.w
	}
}

// SetupPrefixSum converts rhsWeights in place from raw per-record weights
// into the exclusive cumulative form (rhsWeights[0] == 0), and sets total to
// the sum of the raw weights it consumed.
func (v *Vertex) SetupPrefixSum() {
	if v.rhsWeights == nil {
		return
	}

	var sum Weight
	for i, w := range v.rhsWeights {
		v.rhsWeights[i] = sum
		sum += w
	}
	v.total = sum
}

// PurgeZeroWeights compacts rhsRecords and rhsWeights in place, dropping
// every position whose per-record weight is zero (tombstoned deletes, or
// join-key values with no completions downstream). Order is preserved among
// surviving records. Must run after SetupPrefixSum.
func (v *Vertex) PurgeZeroWeights() {
	if v.rhsWeights == nil {
		return
	}

	keepIDs := v.rhsRecords[:0:0]
	keepWeights := v.rhsWeights[:0:0]
	for i := range v.rhsRecords {
		if v.weightAt(i) == 0 {
			continue
		}
		keepIDs = append(keepIDs, v.rhsRecords[i])
		keepWeights = append(keepWeights, v.rhsWeights[i])
	}
	v.rhsRecords = keepIDs
	v.rhsWeights = keepWeights
}

// LHSEnumerator walks the left-hand-side records of a Vertex.
type LHSEnumerator struct {
	v   *Vertex
	idx int
}

// LHSEnumerator returns a cursor over this vertex's LHS bucket, positioned
// before the first record.
func (v *Vertex) LHSEnumerator() *LHSEnumerator {
	return &LHSEnumerator{v: v, idx: -1}
}

// Step advances the cursor by one position, returning false once exhausted.
func (e *LHSEnumerator) Step() bool {
	return e.StepN(1)
}

// StepN advances the cursor by n positions, returning false once exhausted.
func (e *LHSEnumerator) StepN(n int) bool {
	e.idx += n
	return e.idx < len(e.v.lhsRecords)
}

// RecordID returns the record at the cursor's current position.
func (e *LHSEnumerator) RecordID() RecordID {
	return e.v.lhsRecords[e.idx]
}

// GetValue is unsupported on LHS enumerators; no earlier-level join value is
// tracked per record.
func (e *LHSEnumerator) GetValue() (JoinKey, error) {
	return 0, errUnsupportedOp("LHSEnumerator.GetValue")
}

// RHSEnumerator walks the right-hand-side records of a Vertex and, during
// rebuild, assigns their completion weights.
type RHSEnumerator struct {
	v   *Vertex
	idx int
}

// RHSEnumerator returns a cursor over this vertex's RHS bucket, positioned
// before the first record.
func (v *Vertex) RHSEnumerator() *RHSEnumerator {
	return &RHSEnumerator{v: v, idx: -1}
}

// Step advances the cursor by one position, returning false once exhausted.
func (e *RHSEnumerator) Step() bool {
	return e.StepN(1)
}

// StepN advances the cursor by n positions, returning false once exhausted.
func (e *RHSEnumerator) StepN(n int) bool {
	e.idx += n
	return e.idx < len(e.v.rhsRecords)
}

// RecordID returns the record at the cursor's current position.
func (e *RHSEnumerator) RecordID() RecordID {
	return e.v.rhsRecords[e.idx]
}

// GetValue is unsupported on RHS enumerators; no next-level join value is
// tracked per record.
func (e *RHSEnumerator) GetValue() (JoinKey, error) {
	return 0, errUnsupportedOp("RHSEnumerator.GetValue")
}

// SetWeight assigns the raw completion weight of the record at the cursor's
// current position, used by rebuildInitial to install the weight this
// vertex's record contributes before Sort/SetupPrefixSum/PurgeZeroWeights
// run. Updates total by the delta versus whatever was previously stored at
// this slot.
func (e *RHSEnumerator) SetWeight(w Weight) {
	e.v.EnsureWeighted()
	old := e.v.rhsWeights[e.idx]
	e.v.rhsWeights[e.idx] = w
	e.v.total = Weight(addDelta(e.v.total, int64(w)-int64(old)))
}
