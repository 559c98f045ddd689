package rle

import "sync"

// parallelBuildThreshold mirrors parallelScoreThreshold: above this many
// runs, BuildTable shards the run list across goroutines and concatenates
// each shard's node bytes in run order, the Go analogue of the original
// C++'s std::async-based generateRLETable sharding (spec.md §5).
const parallelBuildThreshold = 4096

// buildRunNodes emits the node sequence for a single run under spec,
// following the three-step procedure of spec.md §4.4: skip nodes to
// exhaust an over-wide prefix, signal+long pairs to exhaust an over-wide
// length, then a trailing standard node unless the run is degenerate.
func buildRunNodes(spec variantSpec, run Run) []byte {
	var out []byte

	prefix := run.Prefix
	for prefix > spec.PMax() {
		node, consumed := spec.EncodeSkip(prefix)
		out = append(out, node...)
		prefix -= consumed
	}

	length := run.Length
	for length > spec.LMax() {
		out = append(out, spec.EncodeSignal(prefix)...)
		prefix = 0
		node, consumed := spec.EncodeLong(length, run.Value)
		out = append(out, node...)
		length -= consumed
	}

	if length > uint64(spec.NodeSize()) {
		out = append(out, spec.EncodeStandard(prefix, length, run.Value)...)
	}

	return out
}

func buildRunSet(spec variantSpec, runs []Run) []byte {
	var out []byte
	for _, run := range runs {
		out = append(out, buildRunNodes(spec, run)...)
	}
	return out
}

// BuildTable emits, in run order, the packed node sequence that
// reproduces runs under variant.
func BuildTable(variant Variant, runs []Run) []byte {
	spec := specFor(variant)

	if len(runs) <= parallelBuildThreshold {
		return buildRunSet(spec, runs)
	}

	workers := 4
	chunk := (len(runs) + workers - 1) / workers
	shardBytes := make([][]byte, workers)
	var wg sync.WaitGroup
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
			shardBytes[idx] = buildRunSet(spec, runs[lo:hi])
		}(w, lo, hi)
	}
	wg.Wait()

	var out []byte
	for _, shard := range shardBytes {
		out = append(out, shard...)
	}
	return out
}

// NodeCount returns how many fixed-width records a table byte sequence
// holds under variant.
func NodeCount(variant Variant, tableBytes []byte) uint32 {
	size := specFor(variant).NodeSize()
	return uint32(len(tableBytes) / size)
}
