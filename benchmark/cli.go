package benchmark

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

// Command is the benchmark subcommand's own little urfave/cli/v2 app,
// the pattern dargueta-disko uses for its disk-image CLI tools: each
// subcommand owns a *cli.App rather than sharing the stdlib flag set
// main.go uses for --deflate/--inflate.
var Command = &cli.App{
	Name:  "benchmark",
	Usage: "compare the rle codec against reference codecs over one or more files",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "csv", Usage: "path to write a CSV report to"},
		&cli.StringFlag{Name: "chart", Usage: "path to write a PNG bar chart to"},
		&cli.StringFlag{Name: "codecs", Value: strings.Join(DefaultCodecs, ","), Usage: "comma-separated codec names to compare"},
	},
	Action: runBenchmarkCmd,
}

func runBenchmarkCmd(c *cli.Context) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("benchmark: no files provided")
	}

	fileContents := make(map[string][]byte, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("benchmark: reading %s: %w", f, err)
		}
		fileContents[f] = data
	}

	codecNames := strings.Split(c.String("codecs"), ",")
	results := Run(fileContents, codecNames)

	for _, r := range results {
		if r.Err != "" {
			fmt.Fprintf(os.Stderr, "%s/%s: %s\n", r.File, r.Codec, r.Err)
			continue
		}
		fmt.Printf("%-30s %-8s %10d -> %10d (%.2f%%)\n", r.File, r.Codec, r.OriginalSize, r.CompressedSize, r.Ratio)
	}

	if csvPath := c.String("csv"); csvPath != "" {
		if err := WriteCSV(csvPath, results); err != nil {
			return err
		}
	}
	if chartPath := c.String("chart"); chartPath != "" {
		if err := WriteChart(chartPath, results); err != nil {
			return err
		}
	}
	return nil
}
