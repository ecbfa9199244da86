package render

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/fieldlab/internal/colormap"
	"github.com/san-kum/fieldlab/internal/field"
	"github.com/san-kum/fieldlab/internal/sim"
)

func testSlice() *field.Slice2D {
	return &field.Slice2D{
		Nx: 4, Ny: 3,
		Dx: 1, Dy: 1,
		XLabel: "x", YLabel: "y",
		Data: []float64{
			0, 1, 2, 3,
			1, 2, 3, 4,
			2, 3, 4, math.NaN(),
		},
	}
}

func TestHeatmapPixels(t *testing.T) {
	s := testSlice()
	pal, _ := colormap.Preset("grayscale")

	img := Heatmap(s, pal, 0, 4, HeatmapOptions{CellSize: 10})

	// cell (0,0) holds the minimum and is drawn at the bottom-left
	c := img.RGBAAt(marginLeft+5, marginTop+(s.Ny-1)*10+5)
	if c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("minimum cell should be black, got %v", c)
	}

	// cell (3,1) holds the maximum
	c = img.RGBAAt(marginLeft+3*10+5, marginTop+(s.Ny-2)*10+5)
	if c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("maximum cell should be white, got %v", c)
	}

	// the NaN cell at (3,2) renders as the missing-data grey
	c = img.RGBAAt(marginLeft+3*10+5, marginTop+5)
	if c.R != c.G || c.G != c.B || c.R < 100 || c.R > 155 {
		t.Errorf("NaN cell should be grey, got %v", c)
	}
}

func TestHeatmapDimensions(t *testing.T) {
	s := testSlice()
	pal, _ := colormap.Preset("blue-red")

	img := Heatmap(s, pal, 0, 4, HeatmapOptions{CellSize: 8})
	b := img.Bounds()
	wantW := marginLeft + 4*8 + marginRight
	wantH := marginTop + 3*8 + marginBottom
	if b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("image size: got %dx%d, expected %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestHeatmapAutoCellSize(t *testing.T) {
	s := testSlice()
	pal, _ := colormap.Preset("blue-red")

	img := Heatmap(s, pal, 0, 4, HeatmapOptions{})
	if img.Bounds().Dx() <= marginLeft+marginRight {
		t.Error("auto cell size should leave room for the plot")
	}
}

func TestSavePNG(t *testing.T) {
	s := testSlice()
	pal, _ := colormap.Preset("aqua-fire")
	img := Heatmap(s, pal, 0, 4, HeatmapOptions{Title: "test slice", CellSize: 6})

	path := filepath.Join(t.TempDir(), "out.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds %v differ from %v", decoded.Bounds(), img.Bounds())
	}
}

func TestLineChart(t *testing.T) {
	ds := &sim.Dataset{
		XLabel: "time",
		X:      []float64{0, 1, 2, 3},
		Series: []sim.Series{
			{Name: "a", Y: []float64{0, 1, 4, 9}},
			{Name: "b", Y: []float64{9, 4, 1, 0}},
		},
	}

	path := filepath.Join(t.TempDir(), "chart.png")
	if err := LineChart(ds, "test", "value", path, nil); err != nil {
		t.Fatalf("chart failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Fatalf("chart output is not a PNG: %v", err)
	}
}

func TestLineChartFilter(t *testing.T) {
	ds := &sim.Dataset{
		XLabel: "x",
		X:      []float64{0, 1},
		Series: []sim.Series{{Name: "a", Y: []float64{1, 2}}},
	}
	path := filepath.Join(t.TempDir(), "chart.png")
	if err := LineChart(ds, "t", "v", path, []string{"missing"}); err == nil {
		t.Error("expected error when the filter matches nothing")
	}
}
