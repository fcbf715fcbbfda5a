package textlayout

import (
	"image/color"
	"math"
	"strings"
	"unicode"
)

const (
	smallCapsScale = 0.75
	smallCapsDrop  = 0.25
)

// glyph is one character placed by the small-caps walk.
type glyph struct {
	text string
	dx   float64 // offset from the start of the text
	dy   float64 // offset from the top of the line
	font Font
}

// walkSmallCaps lays text out in small caps and calls fn for every visible
// character. The first letter of each word is set at full size, the rest in
// capitals at 75% size, dropped by a quarter of the full size so the small
// letters share the baseline of the large ones. Spaces advance by the width
// of a full-size space. fn returns false to stop the walk. The total
// advance covered so far is returned.
func walkSmallCaps(m Measurer, text string, f Font, fn func(g glyph) bool) float64 {
	small := f.WithSize(math.Round(f.Size * smallCapsScale))
	drop := f.Size * smallCapsDrop

	advance := 0.0
	for w, word := range strings.Split(text, " ") {
		if w > 0 {
			advance += m.MeasureText(" ", f)
		}
		for i, r := range []rune(word) {
			g := glyph{text: string(unicode.ToUpper(r)), dx: advance, font: f}
			if i > 0 {
				g.font = small
				g.dy = drop
			}
			if fn != nil && !fn(g) {
				return advance
			}
			advance += m.MeasureText(g.text, g.font)
		}
	}
	return advance
}

// MeasureSmallCapsWidth returns how far DrawSmallCaps advances when drawing
// text without a width limit.
func MeasureSmallCapsWidth(m Measurer, text string, f Font) float64 {
	return walkSmallCaps(m, text, f, nil)
}

// DrawSmallCaps paints text in small caps starting at (x, y). Once the
// cursor has moved more than maxWidth past x the rest of the text is
// dropped; it is a clip, not a wrap. Pass math.Inf(1) for no limit. The
// horizontal advance actually covered is returned.
func DrawSmallCaps(s Surface, text string, x, y float64, f Font, c color.Color, maxWidth float64) float64 {
	return walkSmallCaps(s, text, f, func(g glyph) bool {
		if g.dx > maxWidth {
			return false
		}
		s.DrawText(g.text, x+g.dx, y+g.dy, g.font, c)
		return true
	})
}
