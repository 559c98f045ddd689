package rle

import "sync"

// parallelScoreThreshold is the run-list length above which the scorer
// shards its work across goroutines, mirroring the sharding threshold
// used by the table builder (rle/table.go) — the scorer and builder are
// the two components spec.md §5 calls out as safely, trivially
// shardable, since each run's contribution depends only on its own
// (prefix, length, value) and the variant's constants.
const parallelScoreThreshold = 4096

// ScoreVariant predicts, in O(len(runs)), the exact number of nodes the
// table builder would emit for runs under variant, and the resulting
// savings (bytes of run data the nodes encode, minus the table bytes
// spent encoding them).
func ScoreVariant(variant Variant, runs []Run) (nodeCount uint32, savings int64) {
	spec := specFor(variant)

	if len(runs) <= parallelScoreThreshold {
		return scoreRunSet(spec, runs)
	}

	workers := 4
	chunk := (len(runs) + workers - 1) / workers
	var wg sync.WaitGroup
	nodeCounts := make([]uint32, workers)
	savingsParts := make([]int64, workers)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if lo >= len(runs) {
			break
		}
		if hi > len(runs) {
			hi = len(runs)
		}
		wg.Add(1)
		go func(idx, lo, hi int) {
			defer wg.Done()
			nodeCounts[idx], savingsParts[idx] = scoreRunSet(spec, runs[lo:hi])
		}(w, lo, hi)
	}
	wg.Wait()
	for w := 0; w < workers; w++ {
		nodeCount += nodeCounts[w]
		savings += savingsParts[w]
	}
	return nodeCount, savings
}

func scoreRunSet(spec variantSpec, runs []Run) (nodeCount uint32, savings int64) {
	for _, run := range runs {
		n, s := scoreRun(spec, run)
		nodeCount += n
		savings += s
	}
	return
}

// scoreRun mirrors calculateRunEfficiencyByFormat: it must produce exactly
// the node count rle/table.go's buildRunNodes emits for the same run and
// variant (rle/score_test.go checks this against the build-then-measure
// oracle across all four variants, per spec.md §8).
func scoreRun(spec variantSpec, run Run) (nodeCount uint32, savings int64) {
	nodeSize := uint64(spec.NodeSize())
	var nodesGenerated uint64
	var lengthEncoded uint64

	if run.Prefix > spec.PMax() {
		maxSkip := spec.MaxSkip()
		skips := run.Prefix / maxSkip
		remainder := run.Prefix % maxSkip
		nodesGenerated += skips
		if remainder > spec.PMax() {
			nodesGenerated++
		}
	}

	length := run.Length
	if length > spec.LMax() {
		maxLong := spec.MaxLong()
		longs := length / maxLong
		remainder := length % maxLong
		nodesGenerated += longs * 2
		length -= longs * maxLong
		lengthEncoded += longs * maxLong
		if remainder > spec.LMax() {
			nodesGenerated += 2
			length -= remainder
			lengthEncoded += remainder
		}
	}

	if length > nodeSize {
		nodesGenerated++
		lengthEncoded += length
	}

	savings = int64(lengthEncoded) - int64(nodesGenerated*nodeSize)
	return uint32(nodesGenerated), savings
}

// SelectVariant evaluates all four variants and returns the one
// maximizing savings, or VariantInefficient with savings 0 if none is
// positive.
func SelectVariant(runs []Run) (Variant, int64) {
	bestVariant := VariantInefficient
	var bestSavings int64
	for _, v := range AllVariants {
		_, savings := ScoreVariant(v, runs)
		trace("[ rle.SelectVariant ] variant=%s savings=%d\n", v, savings)
		if savings > bestSavings {
			bestSavings = savings
			bestVariant = v
		}
	}
	return bestVariant, bestSavings
}
