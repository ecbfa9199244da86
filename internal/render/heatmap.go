// Package render draws the PNG surfaces: slice heatmaps with a
// colorbar, and line charts for the numerical models.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/fieldlab/internal/colormap"
	"github.com/san-kum/fieldlab/internal/field"
)

// HeatmapOptions controls the heatmap layout.
type HeatmapOptions struct {
	Title    string
	CellSize int // pixels per grid cell; 0 picks one from the grid size
}

const (
	marginLeft   = 56
	marginRight  = 88 // colorbar + labels
	marginTop    = 28
	marginBottom = 40
	colorbarW    = 18
)

// Heatmap renders the slice through the palette over [min, max].
// NaN cells come out grey; row 0 is drawn at the bottom so the image
// matches the physical y axis.
func Heatmap(s *field.Slice2D, pal *colormap.Palette, min, max float64, opts HeatmapOptions) *image.RGBA {
	cell := opts.CellSize
	if cell <= 0 {
		cell = 600 / maxInt(s.Nx, s.Ny)
		if cell < 1 {
			cell = 1
		}
		if cell > 16 {
			cell = 16
		}
	}

	plotW := s.Nx * cell
	plotH := s.Ny * cell
	img := image.NewRGBA(image.Rect(0, 0, marginLeft+plotW+marginRight, marginTop+plotH+marginBottom))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for j := 0; j < s.Ny; j++ {
		for i := 0; i < s.Nx; i++ {
			c := pal.Lookup(s.At(i, j), min, max)
			x0 := marginLeft + i*cell
			y0 := marginTop + (s.Ny-1-j)*cell
			fillRect(img, x0, y0, cell, cell, c)
		}
	}

	drawColorbar(img, pal, min, max, marginLeft+plotW+24, marginTop, plotH)

	if opts.Title != "" {
		drawLabel(img, marginLeft, marginTop-10, opts.Title)
	}
	drawLabel(img, marginLeft, marginTop+plotH+16, fmt.Sprintf("%s: %.4g .. %.4g", s.XLabel, s.XCoord(0), s.XCoord(s.Nx-1)))
	drawLabel(img, marginLeft, marginTop+plotH+30, fmt.Sprintf("%s: %.4g .. %.4g", s.YLabel, s.YCoord(0), s.YCoord(s.Ny-1)))

	return img
}

func drawColorbar(img *image.RGBA, pal *colormap.Palette, min, max float64, x0, y0, h int) {
	for row := 0; row < h; row++ {
		t := 1 - float64(row)/float64(h-1)
		c := pal.Lookup(min+t*(max-min), min, max)
		fillRect(img, x0, y0+row, colorbarW, 1, c)
	}
	drawLabel(img, x0+colorbarW+4, y0+8, fmt.Sprintf("%.3g", max))
	drawLabel(img, x0+colorbarW+4, y0+h/2+4, fmt.Sprintf("%.3g", (min+max)/2))
	drawLabel(img, x0+colorbarW+4, y0+h, fmt.Sprintf("%.3g", min))
}

func fillRect(img *image.RGBA, x0, y0, w, h int, c color.RGBA) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func drawLabel(img *image.RGBA, x, y int, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// SavePNG writes the image to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
