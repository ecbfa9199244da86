package colormap

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// DynamicColors is the 5-color vocabulary of the dynamic scale:
// under-range, low, midpoint, high, over-range.
type DynamicColors struct {
	Under colorful.Color // shown below the low cut (default black)
	Low   colorful.Color // at the low cut (default blue)
	Mid   colorful.Color // between the cuts (default white)
	High  colorful.Color // at the high cut (default red)
	Over  colorful.Color // shown above the high cut (default green)
}

func DefaultDynamicColors() DynamicColors {
	return DynamicColors{
		Under: named["black"],
		Low:   named["blue"],
		Mid:   named["white"],
		High:  named["red"],
		Over:  named["green"],
	}
}

// Dynamic builds the multi-segment scale driven by two user range
// cuts inside [min, max]. With the cuts at the range ends it is the
// plain low -> mid -> high diverging scale; pulling the low cut in
// prepends an under-range band (under -> mid -> low), and pulling the
// high cut in appends an over-range band (high -> mid -> over), with
// mid-color transitions halfway between anchors.
func Dynamic(min, max, lowCut, highCut float64, c DynamicColors) (*Palette, error) {
	if math.IsNaN(min) || math.IsNaN(max) || min >= max {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, min, max)
	}

	norm := func(v float64) float64 {
		t := (v - min) / (max - min)
		return math.Max(0, math.Min(1, t))
	}

	pLow := norm(lowCut)
	pHigh := norm(highCut)
	prependUnder := lowCut > min
	appendOver := highCut < max

	var stops []Stop
	switch {
	case prependUnder && appendOver:
		stops = []Stop{
			{0, c.Under},
			{pLow / 2, c.Mid},
			{pLow, c.Low},
			{(pLow + pHigh) / 2, c.Mid},
			{pHigh, c.High},
			{(pHigh + 1) / 2, c.Mid},
			{1, c.Over},
		}
	case prependUnder:
		stops = []Stop{
			{0, c.Under},
			{pLow / 2, c.Mid},
			{pLow, c.Low},
			{(pLow + 1) / 2, c.Mid},
			{1, c.High},
		}
	case appendOver:
		stops = []Stop{
			{0, c.Low},
			{pHigh / 2, c.Mid},
			{pHigh, c.High},
			{(pHigh + 1) / 2, c.Mid},
			{1, c.Over},
		}
	default:
		stops = []Stop{
			{0, c.Low},
			{0.5, c.Mid},
			{1, c.High},
		}
	}
	return NewPalette("dynamic", stops)
}
