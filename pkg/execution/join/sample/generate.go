package sample

import (
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
)

// GenerateSampleData draws one uniformly random join tuple.
func (idx *LinearIndex) GenerateSampleData(rng *rand.Rand) ([]RecordID, error) {
	return idx.GetRandomJoin(rng)
}

// GenerateFirstEntry returns just the first emitted record (the root
// table's chosen row) for join-tuple rank tupleIndex — useful for streamed
// paging where only the outer table's rows are needed up front. It resolves
// the full tuple through GetJoinNumber and discards every entry but the
// first.
func (idx *LinearIndex) GenerateFirstEntry(tupleIndex Weight) (RecordID, error) {
	ids, err := idx.GetJoinNumber(tupleIndex)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, errPrecondition("LinearIndex.GenerateFirstEntry", "index has no levels")
	}
	return ids[0], nil
}

// GenerateData draws count uniformly random join tuples concurrently, one
// goroutine per worker, each with its own rand.Rand seeded off seedSource
// so that no two goroutines share generator state. Returns the tuples and
// their per-level chosen weights in parallel slices, result[i] paired with
// weights[i].
func (idx *LinearIndex) GenerateData(count int, seedSource rand.Source) ([][]RecordID, [][]Weight, error) {
	if count <= 0 {
		return nil, nil, nil
	}

	results := make([][]RecordID, count)
	weights := make([][]Weight, count)

	workers := min(count, maxGenerateWorkers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		workerRng := rand.New(rand.NewPCG(seedSource.Uint64(), seedSource.Uint64()))
		g.Go(func() error {
			for i := w; i < count; i += workers {
				ids, ws, err := idx.GetRandomJoinWithWeights(workerRng)
				if err != nil {
					return err
				}
				results[i] = ids
				weights[i] = ws
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return results, weights, nil
}

// maxGenerateWorkers bounds GenerateData's fan-out so a huge batch request
// doesn't spawn more goroutines than there is useful parallelism for.
const maxGenerateWorkers = 16

// GenerateSampleData draws one uniformly random join tuple from a
// ForkIndex.
func (idx *ForkIndex) GenerateSampleData(rng *rand.Rand) ([]RecordID, error) {
	return idx.GetRandomJoin(rng)
}

// GenerateFirstEntry returns just the root table's chosen row for
// join-tuple rank tupleIndex.
func (idx *ForkIndex) GenerateFirstEntry(tupleIndex Weight) (RecordID, error) {
	ids, err := idx.GetJoinNumber(tupleIndex)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, errPrecondition("ForkIndex.GenerateFirstEntry", "index has no levels")
	}
	return ids[0], nil
}

// GenerateData draws count uniformly random join tuples concurrently from
// a ForkIndex, symmetric with LinearIndex.GenerateData: result[i] is paired
// with weights[i], the per-slot weight GetJoinNumberWithWeights chose for
// that tuple.
func (idx *ForkIndex) GenerateData(count int, seedSource rand.Source) ([][]RecordID, [][]Weight, error) {
	if count <= 0 {
		return nil, nil, nil
	}

	results := make([][]RecordID, count)
	weights := make([][]Weight, count)

	workers := min(count, maxGenerateWorkers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		workerRng := rand.New(rand.NewPCG(seedSource.Uint64(), seedSource.Uint64()))
		g.Go(func() error {
			for i := w; i < count; i += workers {
				ids, ws, err := idx.GetRandomJoinWithWeights(workerRng)
				if err != nil {
					return err
				}
				results[i] = ids
				weights[i] = ws
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return results, weights, nil
}
