// Package textlayout measures, wraps and draws the text of a card.
//
// Everything here works against the Measurer and Surface interfaces so the
// layout rules can be exercised with synthetic metrics. The font, size and
// color are passed with every call; nothing is kept as ambient state.
package textlayout

import (
	"image/color"

	xfont "golang.org/x/image/font"
)

// Font selects a face of the card typeface. Size is in pixels.
type Font struct {
	Size   float64
	Weight xfont.Weight
	Style  xfont.Style
}

// WithSize returns a copy of f at another size.
func (f Font) WithSize(size float64) Font {
	f.Size = size
	return f
}

// Measurer reports the advance width of a string in pixels.
type Measurer interface {
	MeasureText(s string, f Font) float64
}

// Surface is a Measurer that can also paint text. The y coordinate is the
// top of the em box, not the baseline.
type Surface interface {
	Measurer
	DrawText(s string, x, y float64, f Font, c color.Color)
}
