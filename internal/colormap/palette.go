package colormap

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Stop anchors a color at a normalized position in [0,1].
type Stop struct {
	Pos   float64
	Color colorful.Color
}

// Palette is an ordered sequence of stops defining a continuous
// lookup: colors between stops are blended piecewise-linearly in RGB,
// so stop colors are reproduced exactly at their positions.
type Palette struct {
	Name  string
	Stops []Stop
}

// NewPalette validates stop ordering and coverage.
func NewPalette(name string, stops []Stop) (*Palette, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 stops, got %d", ErrBadPalette, len(stops))
	}
	for i, s := range stops {
		if s.Pos < 0 || s.Pos > 1 {
			return nil, fmt.Errorf("%w: stop %d at %g", ErrBadPalette, i, s.Pos)
		}
		if i > 0 && s.Pos < stops[i-1].Pos {
			return nil, fmt.Errorf("%w: stop %d out of order", ErrBadPalette, i)
		}
	}
	if stops[0].Pos != 0 || stops[len(stops)-1].Pos != 1 {
		return nil, fmt.Errorf("%w: stops must span [0,1]", ErrBadPalette)
	}
	return &Palette{Name: name, Stops: stops}, nil
}

// At evaluates the palette at t, clamped to [0,1].
func (p *Palette) At(t float64) colorful.Color {
	if math.IsNaN(t) {
		return named["grey"]
	}
	if t <= p.Stops[0].Pos {
		return p.Stops[0].Color
	}
	last := p.Stops[len(p.Stops)-1]
	if t >= last.Pos {
		return last.Color
	}
	i := sort.Search(len(p.Stops), func(i int) bool { return p.Stops[i].Pos >= t })
	lo, hi := p.Stops[i-1], p.Stops[i]
	if hi.Pos == lo.Pos || t == lo.Pos {
		return lo.Color
	}
	if t == hi.Pos {
		return hi.Color
	}
	frac := (t - lo.Pos) / (hi.Pos - lo.Pos)
	return lo.Color.BlendRgb(hi.Color, frac)
}

// Lookup maps a data value through the palette over [min, max].
// NaN comes out grey, the missing-data color.
func (p *Palette) Lookup(v, min, max float64) color.RGBA {
	if math.IsNaN(v) {
		return rgba(named["grey"])
	}
	t := 0.5
	if max > min {
		t = (v - min) / (max - min)
	}
	return rgba(p.At(t))
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// presets are the viewer's built-in multi-stop palettes. "aqua-fire"
// is the default, matching the historical viewer configuration.
var presets = map[string][]Stop{
	"aqua-fire": {
		{0.00, named["navy"]},
		{0.25, named["aqua"]},
		{0.50, named["white"]},
		{0.75, named["orange"]},
		{1.00, named["red"]},
	},
	"blue-red": {
		{0.0, named["blue"]},
		{0.5, named["white"]},
		{1.0, named["red"]},
	},
	"grayscale": {
		{0.0, named["black"]},
		{1.0, named["white"]},
	},
	"spectral": {
		{0.00, named["navy"]},
		{0.25, named["aqua"]},
		{0.50, named["lime"]},
		{0.75, named["yellow"]},
		{1.00, named["red"]},
	},
}

// Preset returns a built-in palette by name.
func Preset(name string) (*Palette, error) {
	stops, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: no preset %q (have %v)", ErrBadPalette, name, PresetNames())
	}
	return &Palette{Name: name, Stops: stops}, nil
}

// PresetNames lists built-in palettes.
func PresetNames() []string {
	out := make([]string, 0, len(presets))
	for name := range presets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
