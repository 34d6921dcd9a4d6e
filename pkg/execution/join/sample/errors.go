package sample

import dberror "storemy/pkg/error"

// Error codes reported through *dberror.DBError.
const (
	CodePrecondition   = "JOIN_INDEX_PRECONDITION"
	CodeUnsupportedOp  = "JOIN_INDEX_UNSUPPORTED_OP"
	CodeNotInitialized = "JOIN_INDEX_NOT_INITIALIZED"
)

// errPrecondition reports a violated caller precondition, such as a rank at
// or beyond GetTotal(), or a random draw from an empty join (a query issued
// before the first rebuild is reported by errNotInitialized instead). Per the
// package's read-side contract these are always caller bugs, not recoverable
// runtime conditions.
func errPrecondition(operation, detail string) *dberror.DBError {
	err := dberror.New(dberror.ErrCategoryUser, CodePrecondition, "precondition violated")
	err.Operation = operation
	err.Component = "join/sample"
	err.Detail = detail
	return err
}

// errUnsupportedOp reports use of an unsupported enumerator operation:
// GetValue on either enumerator flavor. LHSEnumerator has no SetWeight or
// Weight method at all, so those cannot be called on it.
func errUnsupportedOp(operation string) *dberror.DBError {
	err := dberror.New(dberror.ErrCategorySystem, CodeUnsupportedOp, "unsupported enumerator operation")
	err.Operation = operation
	err.Component = "join/sample"
	return err
}

// errNotInitialized reports a read issued against an index that has never
// completed rebuildInitial.
func errNotInitialized(operation string) *dberror.DBError {
	err := dberror.New(dberror.ErrCategoryUser, CodeNotInitialized, "index has not been rebuilt")
	err.Operation = operation
	err.Component = "join/sample"
	return err
}
