package rle

import "io"

// Stats reports what a successful Deflate call did, for callers (the
// engine package) that want to print a size/ratio summary without
// re-deriving it from the output file.
type Stats struct {
	Variant    Variant
	NodeCount  uint32
	Savings    int64
	OutputSize int64
}

// CreateFunc opens the output region for a Deflate call once the exact
// output size is known. It is the seam between the rle package (which
// never touches a filesystem or mmap directly) and region.Region.
type CreateFunc func(size int64) (io.WriterAt, error)

const maxTableNodeCount = uint64(^uint32(0))

// tableEncodedLength sums the input bytes the table's run-bearing nodes
// actually carry: a standard node's own length field, plus each long
// node's decoded length. Skip and signal nodes carry no run bytes of
// their own — their prefix field is literal residual data, not an
// encoded run — so they contribute nothing here.
//
// This mirrors scoreRun's lengthEncoded accumulation (score.go), and is
// the authoritative answer to "how much of the input did the table
// encode", independent of run boundaries: buildRunNodes (table.go)
// leaves a run's final bytes unencoded whenever the remainder left
// after skip/signal/long overflow nodes is too small to be worth a
// standard node, and that degenerate remainder must not be counted as
// encoded — it has to flow into the residual stream instead.
func tableEncodedLength(spec variantSpec, table []byte) uint64 {
	nodeSize := spec.NodeSize()
	count := len(table) / nodeSize
	state := statePendingPrefix
	var encoded uint64

	for i := 0; i < count; i++ {
		node := table[i*nodeSize : (i+1)*nodeSize]
		prefix, length, value := spec.decodeRaw(node)

		if state == stateExpectLong {
			encoded += spec.DecodeLongLength(prefix, length)
			state = statePendingPrefix
			continue
		}

		switch classify(length, value) {
		case roleSkip:
			// literal prefix data, not an encoded run.
		case roleSignal:
			state = stateExpectLong
		default: // roleStandard
			encoded += length
		}
	}

	return encoded
}

// writeResidual replays the packed node table against the original
// input bytes to produce the residual literal stream, the way the
// original C++ deflateData (original_source/RLE Engine/RLE_Deflate.h)
// walks its table node-by-node rather than its run list: a skip node's
// own decoded length and a signal node's leftover prefix are literal
// bytes copied into the residual stream, while a standard node's length
// field and a long node's decoded length are run bytes the decoder
// reconstructs from a value fill, so they're skipped over in the input
// rather than copied.
//
// Walking the table itself, not the runs, matters because any remainder
// a run's nodes don't fully account for (the trailing bytes of a run
// that falls below a format's node size after long-overflow encoding,
// so buildRunNodes emits no standard node for it) is simply never
// skipped here — it flows forward into whatever the next node copies,
// or, if there is no next node, into the final trailing copy below.
// Nothing is silently dropped.
func writeResidual(spec variantSpec, table, data []byte, out io.WriterAt, writeStart int64) error {
	nodeSize := spec.NodeSize()
	count := len(table) / nodeSize
	writeCursor := writeStart
	readCursor := int64(0)
	state := statePendingPrefix

	copyLiteral := func(n uint64) error {
		if n == 0 {
			return nil
		}
		chunk := data[readCursor : readCursor+int64(n)]
		if _, err := out.WriteAt(chunk, writeCursor); err != nil {
			return err
		}
		writeCursor += int64(n)
		readCursor += int64(n)
		return nil
	}

	for i := 0; i < count; i++ {
		node := table[i*nodeSize : (i+1)*nodeSize]
		prefix, length, value := spec.decodeRaw(node)

		if state == stateExpectLong {
			readCursor += int64(spec.DecodeLongLength(prefix, length))
			state = statePendingPrefix
			continue
		}

		switch classify(length, value) {
		case roleSkip:
			if err := copyLiteral(spec.DecodeSkipLength(prefix, value)); err != nil {
				return err
			}
		case roleSignal:
			if err := copyLiteral(prefix); err != nil {
				return err
			}
			state = stateExpectLong
		default: // roleStandard
			if err := copyLiteral(prefix); err != nil {
				return err
			}
			readCursor += int64(length)
		}
	}

	if tail := data[readCursor:]; len(tail) > 0 {
		if _, err := out.WriteAt(tail, writeCursor); err != nil {
			return err
		}
	}

	return nil
}

// Deflate reads the full input (length bytes, addressable via in), picks
// the node variant maximizing savings, and — unless that fails with
// Inefficient — creates an output region of the exact required size and
// writes header + table + residual literal stream into it.
func Deflate(in io.ReaderAt, length int64, create CreateFunc) (Stats, error) {
	if length < 0 {
		return Stats{}, newErr(IoError, "negative input length %d", length)
	}

	data := make([]byte, length)
	if length > 0 {
		if _, err := in.ReadAt(data, 0); err != nil && err != io.EOF {
			return Stats{}, newErr(IoError, "reading input: %v", err)
		}
	}

	runs := DetectRuns(data)
	variant, savings := SelectVariant(runs)
	if variant == VariantInefficient {
		return Stats{}, newErr(Inefficient, "no variant yields positive savings for %d input bytes", length)
	}

	spec := specFor(variant)
	table := BuildTable(variant, runs)
	nodeSize := spec.NodeSize()
	nodeCountU64 := uint64(len(table) / nodeSize)
	if nodeCountU64 > maxTableNodeCount {
		return Stats{}, newErr(TableTooLarge, "table holds %d nodes, exceeds u32 field limit", nodeCountU64)
	}
	nodeCount := uint32(nodeCountU64)

	// residualLength must count exactly the bytes the table does not
	// reconstruct via a value fill, which is not simply "total input
	// minus sum of run lengths": a run whose length overflows into
	// skip/signal/long nodes can leave a degenerate remainder too small
	// to earn a trailing standard node (table.go's buildRunNodes), and
	// those bytes never get encoded away — they have to land here.
	residualLength := uint64(length) - tableEncodedLength(spec, table)
	outputSize := int64(headerSize) + int64(len(table)) + int64(residualLength)

	trace("[ rle.Deflate ] variant=%s nodeCount=%d savings=%d outputSize=%d\n", variant, nodeCount, savings, outputSize)

	out, err := create(outputSize)
	if err != nil {
		return Stats{}, newErr(IoError, "creating output region: %v", err)
	}

	hdr := header{variant: variant, decompressedLength: uint64(length), tableNodeCount: nodeCount}
	if _, err := out.WriteAt(hdr.encode(), 0); err != nil {
		return Stats{}, newErr(IoError, "writing header: %v", err)
	}
	if len(table) > 0 {
		if _, err := out.WriteAt(table, int64(headerSize)); err != nil {
			return Stats{}, newErr(IoError, "writing table: %v", err)
		}
	}

	residualStart := int64(headerSize) + int64(len(table))
	if err := writeResidual(spec, table, data, out, residualStart); err != nil {
		return Stats{}, newErr(IoError, "writing residual literal stream: %v", err)
	}

	return Stats{Variant: variant, NodeCount: nodeCount, Savings: savings, OutputSize: outputSize}, nil
}
