package render

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/fieldlab/internal/sim"
)

// strokes cycles series colors in a fixed order so re-rendering a run
// produces the same chart.
var strokes = []drawing.Color{
	{R: 0, G: 0, B: 0, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 31, G: 119, B: 180, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
}

// LineChart renders the dataset's series against its x column.
// include filters by series name; empty means all series.
func LineChart(ds *sim.Dataset, title, yLabel, path string, include []string) error {
	wanted := func(name string) bool {
		if len(include) == 0 {
			return true
		}
		for _, w := range include {
			if w == name {
				return true
			}
		}
		return false
	}

	var series []chart.Series
	n := 0
	for _, s := range ds.Series {
		if !wanted(s.Name) {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: ds.X,
			YValues: s.Y,
			Style: chart.Style{
				StrokeColor: strokes[n%len(strokes)],
				StrokeWidth: 1.5,
			},
		})
		n++
	}
	if len(series) == 0 {
		return fmt.Errorf("no series to plot")
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 600,
		XAxis:  chart.XAxis{Name: ds.XLabel},
		YAxis:  chart.YAxis{Name: yLabel},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}
