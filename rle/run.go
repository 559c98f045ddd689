package rle

import "fmt"

// Verbose gates the package's bracket-prefixed trace logging, in the
// register of the teacher's compressor packages (which log
// unconditionally); the CLI's -verbose flag toggles this.
var Verbose = false

func trace(format string, args ...any) {
	if Verbose {
		fmt.Printf(format, args...)
	}
}

// Run is a transient record of one maximal byte run above the break-even
// threshold, along with the literal-byte prefix that preceded it since the
// previous emitted run's tail. Runs never persist past the deflate call
// that produced them.
type Run struct {
	Prefix uint64
	Length uint64
	Value  byte
}

// minRunLength is the smallest packed node size across all variants
// (P8L8's 1+1+1 bytes); runs at or below it can never pay for their own
// node in any variant and fold into the next run's prefix instead.
const minRunLength = 3

const maxRunLength = ^uint64(0)

// DetectRuns scans data for maximal stretches of identical bytes and
// returns the ones worth encoding (length > minRunLength), each carrying
// the count of literal bytes that preceded it since the previous emitted
// run's tail.
func DetectRuns(data []byte) []Run {
	var runs []Run
	prevTail := 0
	n := len(data)

	for i := 0; i < n; {
		start := i
		value := data[i]
		length := uint64(1)
		i++
		for i < n && data[i] == value && length < maxRunLength {
			length++
			i++
		}

		if length > minRunLength {
			run := Run{
				Prefix: uint64(start - prevTail),
				Length: length,
				Value:  value,
			}
			trace("[ rle.DetectRuns ] run at %d: prefix=%d length=%d value=0x%02x\n", start, run.Prefix, run.Length, run.Value)
			runs = append(runs, run)
			prevTail = start + int(length)
		}
	}
	return runs
}
