// Package engine orchestrates the rle codec over real files: opening and
// creating byte regions, driving Deflate/Inflate, and reporting progress
// and summaries to the user. It generalizes the teacher's
// engine.CompressFiles/compressFile/compress dispatch (which mapped an
// algorithm name to a single registered io.WriteCloser constructor) down
// to the one codec this repo implements.
package engine

import (
	"fmt"
	"io"
	"os"
	"strings"

	pb "github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"

	"github.com/arjunbhagat/rle-engine/region"
	"github.com/arjunbhagat/rle-engine/rle"
)

// Engines lists the container variants this engine knows how to report
// on, kept for CLI help-text symmetry with the teacher's --algorithm flag
// (which enumerated Engines = [...]string{"huffman"}).
var Engines = [...]string{"rle"}

var (
	successColor = color.New(color.FgGreen)
	ratioColor   = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// DeflateFiles compresses each file into file+"."+outExt, printing a
// progress bar and a colorized summary per file. Failures on individual
// files are collected rather than aborting the whole batch, in
// dargueta-disko's go-multierror style.
func DeflateFiles(files []string, outExt string) error {
	var result *multierror.Error
	for _, file := range files {
		if err := deflateOne(file, file+"."+outExt); err != nil {
			errorColor.Printf("failed to deflate %s: %v\n", file, err)
			result = multierror.Append(result, fmt.Errorf("%s: %w", file, err))
		}
	}
	return result.ErrorOrNil()
}

// InflateFiles decompresses each file back to its original name (the
// input filename with its extension stripped, or "<file>.out" if there
// is no extension to strip).
func InflateFiles(files []string) error {
	var result *multierror.Error
	for _, file := range files {
		outPath := inflateOutputPath(file)
		if err := inflateOne(file, outPath); err != nil {
			errorColor.Printf("failed to inflate %s: %v\n", file, err)
			result = multierror.Append(result, fmt.Errorf("%s: %w", file, err))
		}
	}
	return result.ErrorOrNil()
}

func inflateOutputPath(file string) string {
	if idx := strings.LastIndex(file, "."); idx > 0 {
		return file[:idx]
	}
	return file + ".out"
}

func deflateOne(inPath, outPath string) error {
	in, err := region.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	fmt.Printf("Deflating %s...\n", inPath)
	bar := pb.New64(in.Len())
	bar.Set(pb.Bytes, true)
	bar.Start()
	defer bar.Finish()

	var out *region.MappedRegion
	stats, err := rle.Deflate(in, in.Len(), func(size int64) (io.WriterAt, error) {
		var createErr error
		out, createErr = region.Create(outPath, size)
		if createErr != nil {
			return nil, createErr
		}
		bar.SetCurrent(size)
		return out, nil
	})
	if out != nil {
		defer out.Close()
	}
	if err != nil {
		return err
	}

	ratio := float64(stats.OutputSize) / float64(in.Len()) * 100
	successColor.Printf("Deflated %s -> %s using variant %s\n", inPath, outPath, stats.Variant)
	fmt.Printf("Original size (bytes): %d\n", in.Len())
	fmt.Printf("Compressed size (bytes): %d\n", stats.OutputSize)
	ratioColor.Printf("Compression ratio: %.2f%%\n", ratio)
	return nil
}

func inflateOne(inPath, outPath string) error {
	in, err := region.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	fmt.Printf("Inflating %s...\n", inPath)
	var out *region.MappedRegion
	stats, err := rle.Inflate(in, in.Len(), func(size int64) (io.WriterAt, error) {
		var createErr error
		out, createErr = region.Create(outPath, size)
		return out, createErr
	})
	if out != nil {
		defer out.Close()
	}
	if err != nil {
		return err
	}

	successColor.Printf("Inflated %s -> %s using variant %s\n", inPath, outPath, stats.Variant)
	fmt.Printf("Decompressed size (bytes): %d\n", stats.DecompressedLength)
	return nil
}

func init() {
	if os.Getenv("RLE_NO_COLOR") != "" {
		color.NoColor = true
	}
}
