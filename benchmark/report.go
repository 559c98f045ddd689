package benchmark

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	chart "github.com/wcharczuk/go-chart/v2"
)

// WriteCSV writes results in gocarina/gocsv's struct-tag-driven format,
// the same shape dargueta-disko's test fixtures use for tabular fixtures.
func WriteCSV(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv report %s: %w", path, err)
	}
	defer f.Close()
	return gocsv.MarshalFile(&results, f)
}

// WriteChart renders a line chart of compressed size per codec, one
// continuous series per file with codecs at x = 0, 1, 2, ... in result
// order, using wcharczuk/go-chart/v2 as tattlemuss-minymiser does for its
// own benchmark output.
func WriteChart(path string, results []Result) error {
	byFile := map[string][]Result{}
	var files []string
	for _, r := range results {
		if _, ok := byFile[r.File]; !ok {
			files = append(files, r.File)
		}
		byFile[r.File] = append(byFile[r.File], r)
	}

	var series []chart.Series
	for _, file := range files {
		rs := byFile[file]
		xs := make([]float64, len(rs))
		ys := make([]float64, len(rs))
		for i, r := range rs {
			xs[i] = float64(i)
			ys[i] = float64(r.CompressedSize)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    file,
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Title:  "Compressed size by codec",
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart %s: %w", path, err)
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}
