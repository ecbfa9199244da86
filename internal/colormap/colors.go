// Package colormap builds the lookup tables the viewer maps scalar
// values through: two-color threshold-centred diverging scales,
// multi-stop preset palettes and the dynamic multi-segment scale used
// for interactive range cuts.
package colormap

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidRange indicates min >= max.
	ErrInvalidRange = errors.New("colormap: invalid value range (min >= max)")

	// ErrUnknownColor indicates a color name with no entry and no hex
	// form.
	ErrUnknownColor = errors.New("colormap: unknown color")

	// ErrBadPalette indicates stops that are empty or out of order.
	ErrBadPalette = errors.New("colormap: invalid palette stops")
)

// named holds the CSS-ish color vocabulary the viewer accepts.
var named = map[string]colorful.Color{
	"black":   {R: 0, G: 0, B: 0},
	"white":   {R: 1, G: 1, B: 1},
	"red":     {R: 1, G: 0, B: 0},
	"green":   {R: 0, G: 0.5, B: 0},
	"blue":    {R: 0, G: 0, B: 1},
	"yellow":  {R: 1, G: 1, B: 0},
	"orange":  {R: 1, G: 0.647, B: 0},
	"purple":  {R: 0.5, G: 0, B: 0.5},
	"aqua":    {R: 0, G: 1, B: 1},
	"magenta": {R: 1, G: 0, B: 1},
	"grey":    {R: 0.5, G: 0.5, B: 0.5},
	"navy":    {R: 0, G: 0, B: 0.5},
	"lime":    {R: 0, G: 1, B: 0},
}

// ParseColor accepts a named color or a #rrggbb hex string.
func ParseColor(s string) (colorful.Color, error) {
	if c, ok := named[strings.ToLower(s)]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		return c, nil
	}
	return colorful.Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// ColorNames lists accepted named colors, for CLI help text.
func ColorNames() []string {
	out := make([]string, 0, len(named))
	for name := range named {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
