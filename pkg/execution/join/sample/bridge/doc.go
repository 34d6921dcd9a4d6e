// Package bridge adapts loaded table rows into a sample.RecordSource,
// standing in for the "read the join-column value from the base table"
// collaborator the index itself never implements. It assigns each table's
// rows stable RecordIDs by load position rather than by physical page
// location, since the index only ever treats RecordID as an opaque handle
// to hand back to the caller.
package bridge
