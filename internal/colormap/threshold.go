package colormap

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Diverging builds a two-color scale over [min, max] that passes
// through white exactly at the threshold: below blends from the
// "below" color up to white, above blends from white to the "above"
// color. The endpoint colors are exact at min and max. A threshold
// outside (min, max) collapses to a plain two-stop blend.
func Diverging(below, above colorful.Color, min, max, threshold float64) (*Palette, error) {
	if math.IsNaN(min) || math.IsNaN(max) || min >= max {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, min, max)
	}

	white := named["white"]
	t := (threshold - min) / (max - min)
	if t <= 0 || t >= 1 {
		return NewPalette("diverging", []Stop{
			{0, below},
			{1, above},
		})
	}
	return NewPalette("diverging", []Stop{
		{0, below},
		{t, white},
		{1, above},
	})
}

// Midpoint is the default threshold, the centre of the data range.
func Midpoint(min, max float64) float64 {
	return (min + max) / 2
}
