// Package execution is the root of StoreMy's join-sampling engine.
//
// # Sub-packages
//
//   - [storemy/pkg/execution/join/sample] – the join-sampling index
//     ([storemy/pkg/execution/join/sample.LinearIndex], [storemy/pkg/execution/join/sample.ForkIndex])
//     that answers random/ranked access into an unmaterialized equi-join
//     chain or tree without ever producing the join result row by row.
//   - [storemy/pkg/execution/join/sample/bridge] – the [storemy/pkg/tuple.Tuple]
//     adapter that lets an index resolve join-column values from whatever
//     already-loaded rows a caller hands it.
//
// # Access pattern
//
// The index trades a one-time rebuild pass (Insert/Delete every
// participating row, then Finalize) for O(levels * log maxFanout) indexed
// access afterward: GetJoinNumber(k) resolves the k-th join tuple directly,
// and GetRandomJoin draws one uniformly at random, both without running an
// iterator chain over the join's materialized result.
package execution
