package textlayout

import (
	"image/color"
	"unicode/utf8"

	xfont "golang.org/x/image/font"
)

// fixedAdvance measures every character as perChar pixels, whatever the font.
type fixedAdvance float64

func (a fixedAdvance) MeasureText(s string, _ Font) float64 {
	return float64(utf8.RuneCountInString(s)) * float64(a)
}

type drawCall struct {
	text string
	x, y float64
	font Font
}

// recorder measures a character as half its font size and records draws.
type recorder struct {
	calls []drawCall
}

func (r *recorder) MeasureText(s string, f Font) float64 {
	return float64(utf8.RuneCountInString(s)) * f.Size / 2
}

func (r *recorder) DrawText(s string, x, y float64, f Font, _ color.Color) {
	r.calls = append(r.calls, drawCall{text: s, x: x, y: y, font: f})
}

func (r *recorder) drawnText() string {
	out := ""
	for _, c := range r.calls {
		out += c.text
	}
	return out
}

var bold = Font{Size: 44, Weight: xfont.WeightBold}
