package sample

// RecordID identifies a row in some base table.
type RecordID int64

// JoinKey is the value of a join attribute. Both LHS and RHS join columns
// at a level compare values in this domain.
type JoinKey int64

// Weight is a non-negative count of join-tuple completions. It must be wide
// enough to hold the total cardinality of the join.
type Weight uint64

// TableID identifies one of the base tables participating in the join.
type TableID int
