package rle

import "io"

// InflateStats reports what a successful Inflate call reconstructed.
type InflateStats struct {
	Variant            Variant
	NodeCount          uint32
	DecompressedLength uint64
}

// tableDecodeState is the two-state machine spec.md §4.6 describes for
// turning packed nodes back into logical runs.
type tableDecodeState int

const (
	statePendingPrefix tableDecodeState = iota
	stateExpectLong
)

// decodeTable linearizes a variant's packed node bytes back into the
// logical runs that produced them, per the state machine: skip nodes
// accumulate into a pending prefix, a signal switches to ExpectLong, and
// the node immediately following a signal is interpreted as the long
// node that completes the pending run. Ending in ExpectLong is a decode
// failure: a signal with no paired long node.
func decodeTable(spec variantSpec, tableBytes []byte) ([]Run, error) {
	nodeSize := spec.NodeSize()
	if len(tableBytes)%nodeSize != 0 {
		return nil, newErr(IoError, "table byte length %d is not a multiple of node size %d", len(tableBytes), nodeSize)
	}
	count := len(tableBytes) / nodeSize

	runs := make([]Run, 0, count)
	state := statePendingPrefix
	var pendingPrefix uint64
	var signalPrefix uint64

	for i := 0; i < count; i++ {
		node := tableBytes[i*nodeSize : (i+1)*nodeSize]
		prefix, length, value := spec.decodeRaw(node)

		if state == stateExpectLong {
			longLength := spec.DecodeLongLength(prefix, length)
			runs = append(runs, Run{Prefix: pendingPrefix + signalPrefix, Length: longLength, Value: value})
			pendingPrefix = 0
			signalPrefix = 0
			state = statePendingPrefix
			continue
		}

		switch classify(length, value) {
		case roleSkip:
			pendingPrefix += spec.DecodeSkipLength(prefix, value)
		case roleSignal:
			signalPrefix = prefix
			state = stateExpectLong
		default: // roleStandard
			runs = append(runs, Run{Prefix: pendingPrefix + prefix, Length: length, Value: value})
			pendingPrefix = 0
		}
	}

	if state == stateExpectLong {
		return nil, newErr(DecodeState, "table ends awaiting a long node")
	}
	return runs, nil
}

// Inflate validates the header at the start of in (inLength total bytes
// available there), decodes its node table, creates an output region of
// exactly the recorded decompressed length, and replays the logical runs
// against the residual literal stream that follows the table.
func Inflate(in io.ReaderAt, inLength int64, create CreateFunc) (InflateStats, error) {
	if inLength < headerSize {
		return InflateStats{}, newErr(NotRLE, "input is only %d bytes, too short for a header", inLength)
	}

	headerBuf := make([]byte, headerSize)
	if _, err := in.ReadAt(headerBuf, 0); err != nil && err != io.EOF {
		return InflateStats{}, newErr(IoError, "reading header: %v", err)
	}
	hdr, err := decodeHeader(headerBuf)
	if err != nil {
		return InflateStats{}, err
	}

	spec := specFor(hdr.variant)
	tableByteLen := int64(hdr.tableNodeCount) * int64(spec.NodeSize())
	if headerSize+tableByteLen > inLength {
		return InflateStats{}, newErr(IoError, "table extends past end of input: header=%d table=%d total=%d", headerSize, tableByteLen, inLength)
	}

	tableBytes := make([]byte, tableByteLen)
	if tableByteLen > 0 {
		if _, err := in.ReadAt(tableBytes, headerSize); err != nil && err != io.EOF {
			return InflateStats{}, newErr(IoError, "reading table: %v", err)
		}
	}

	runs, err := decodeTable(spec, tableBytes)
	if err != nil {
		return InflateStats{}, err
	}

	residualOffset := int64(headerSize) + tableByteLen
	residualLen := inLength - residualOffset
	residual := make([]byte, residualLen)
	if residualLen > 0 {
		if _, err := in.ReadAt(residual, residualOffset); err != nil && err != io.EOF {
			return InflateStats{}, newErr(IoError, "reading residual stream: %v", err)
		}
	}

	trace("[ rle.Inflate ] variant=%s nodeCount=%d decompressedLength=%d runs=%d\n", hdr.variant, hdr.tableNodeCount, hdr.decompressedLength, len(runs))

	out, err := create(int64(hdr.decompressedLength))
	if err != nil {
		return InflateStats{}, newErr(IoError, "creating output region: %v", err)
	}

	var inCursor, outCursor int64
	for _, r := range runs {
		if r.Prefix > 0 {
			chunk := residual[inCursor : inCursor+int64(r.Prefix)]
			if _, err := out.WriteAt(chunk, outCursor); err != nil {
				return InflateStats{}, newErr(IoError, "writing literal copy: %v", err)
			}
			inCursor += int64(r.Prefix)
			outCursor += int64(r.Prefix)
		}
		if r.Length > 0 {
			fill := make([]byte, r.Length)
			for i := range fill {
				fill[i] = r.Value
			}
			if _, err := out.WriteAt(fill, outCursor); err != nil {
				return InflateStats{}, newErr(IoError, "writing run fill: %v", err)
			}
			outCursor += int64(r.Length)
		}
	}
	if tail := residual[inCursor:]; len(tail) > 0 {
		if _, err := out.WriteAt(tail, outCursor); err != nil {
			return InflateStats{}, newErr(IoError, "writing residual tail: %v", err)
		}
		outCursor += int64(len(tail))
	}

	if outCursor != int64(hdr.decompressedLength) {
		return InflateStats{}, newErr(LengthMismatch, "wrote %d bytes, expected %d", outCursor, hdr.decompressedLength)
	}

	return InflateStats{Variant: hdr.variant, NodeCount: hdr.tableNodeCount, DecompressedLength: hdr.decompressedLength}, nil
}
