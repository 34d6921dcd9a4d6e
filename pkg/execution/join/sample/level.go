package sample

import (
	"log/slog"
	"storemy/pkg/logging"
)

// Level bridges two adjacent tables in a join chain: leftTableID's
// leftJoinColumn against rightTableID's rightJoinColumn. It buckets both
// sides' records by the shared join-key value they carry, one Vertex per
// value.
type Level struct {
	leftTableID     TableID
	rightTableID    TableID
	leftJoinColumn  int
	rightJoinColumn int

	vertices map[JoinKey]*Vertex

	// isLast marks the level as the bottom of the chain: its RHS vertices
	// stay in default-weight mode forever, since nothing downstream can
	// discount any of their records.
	isLast bool
}

// NewLevel returns an empty Level bridging leftTableID.leftJoinColumn to
// rightTableID.rightJoinColumn.
func NewLevel(leftTableID, rightTableID TableID, leftJoinColumn, rightJoinColumn int) *Level {
	return &Level{
		leftTableID:     leftTableID,
		rightTableID:    rightTableID,
		leftJoinColumn:  leftJoinColumn,
		rightJoinColumn: rightJoinColumn,
		vertices:        make(map[JoinKey]*Vertex),
	}
}

// LeftTableID returns the table whose records populate this level's LHS.
func (l *Level) LeftTableID() TableID { return l.leftTableID }

// RightTableID returns the table whose records populate this level's RHS.
func (l *Level) RightTableID() TableID { return l.rightTableID }

// LeftJoinColumn returns the column of LeftTableID this level bridges on.
func (l *Level) LeftJoinColumn() int { return l.leftJoinColumn }

// RightJoinColumn returns the column of RightTableID this level bridges on.
func (l *Level) RightJoinColumn() int { return l.rightJoinColumn }

// MarkLast flags this level as the bottom of the chain.
func (l *Level) MarkLast() { l.isLast = true }

// IsLast reports whether this is the bottom level of the chain.
func (l *Level) IsLast() bool { return l.isLast }

// VertexFor returns the Vertex for key, creating it (in default-weight
// mode) if absent.
func (l *Level) VertexFor(key JoinKey) *Vertex {
	v, ok := l.vertices[key]
	if !ok {
		v = NewVertex()
		l.vertices[key] = v
	}
	return v
}

// Lookup returns the Vertex for key without creating it.
func (l *Level) Lookup(key JoinKey) (*Vertex, bool) {
	v, ok := l.vertices[key]
	return v, ok
}

// Keys returns every join-key value that has a vertex at this level,
// including vertices left empty by deletes (vertices are never removed).
// Order is unspecified.
func (l *Level) Keys() []JoinKey {
	keys := make([]JoinKey, 0, len(l.vertices))
	for k := range l.vertices {
		keys = append(keys, k)
	}
	return keys
}

// InsertLHS records a left-hand-side row of leftTableID carrying join-key
// value key.
func (l *Level) InsertLHS(key JoinKey, id RecordID) {
	l.VertexFor(key).InsertLHS(id)
}

// InsertRHS records a right-hand-side row of rightTableID carrying join-key
// value key.
func (l *Level) InsertRHS(key JoinKey, id RecordID) {
	l.VertexFor(key).InsertRHS(id)
}

// DeleteLHS removes one occurrence of id from the LHS bucket of key's
// vertex. It never changes any vertex's weight, since weight only measures
// what the RHS begins. Deleting a record not present is a silent no-op.
func (l *Level) DeleteLHS(key JoinKey, id RecordID) {
	if v, ok := l.vertices[key]; ok {
		lhs := v.lhsRecords
		for i, r := range lhs {
			if r == id {
				v.lhsRecords = append(lhs[:i], lhs[i+1:]...)
				return
			}
		}
	}
}

// DeleteRHS removes a right-hand-side row, tombstoning it if the vertex has
// already transitioned to weighted mode.
func (l *Level) DeleteRHS(key JoinKey, id RecordID) {
	if v, ok := l.vertices[key]; ok {
		v.DeleteRHS(id)
	}
}

// MaxOutdegree returns the largest RHS bucket size across every vertex at
// this level — the number of binary-search candidates a single GetRecord
// call here may face.
func (l *Level) MaxOutdegree() int {
	var max int
	for _, v := range l.vertices {
		if n := v.RHSOutdegree(); n > max {
			max = n
		}
	}
	return max
}

// MaxIndegree returns the largest LHS bucket size across every vertex at
// this level.
func (l *Level) MaxIndegree() int {
	var max int
	for _, v := range l.vertices {
		if n := v.LHSOutdegree(); n > max {
			max = n
		}
	}
	return max
}

// DumpWeights logs, at debug level, every vertex's join-key value, RHS
// outdegree, and total weight. Intended for diagnosing a misbehaving
// rebuild, not for routine operation.
func (l *Level) DumpWeights() {
	for key, v := range l.vertices {
		logging.Debug("join sample vertex",
			slog.Int64("key", int64(key)),
			slog.Int("rhs_outdegree", v.RHSOutdegree()),
			slog.Uint64("total", uint64(v.Total())),
			slog.Bool("default_weight", v.IsDefaultWeight()),
		)
	}
}
