package textlayout

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmallCapsSizes(t *testing.T) {
	r := &recorder{}
	DrawSmallCaps(r, "Fun fact", 10, 100, bold, color.Black, math.Inf(1))

	require.Len(t, r.calls, 7)
	assert.Equal(t, "FUNFACT", r.drawnText())

	assert.Equal(t, drawCall{text: "F", x: 10, y: 100, font: bold}, r.calls[0])
	small := bold.WithSize(33) // round(44 * 0.75)
	assert.Equal(t, drawCall{text: "U", x: 32, y: 111, font: small}, r.calls[1])
	assert.Equal(t, drawCall{text: "N", x: 48.5, y: 111, font: small}, r.calls[2])
	// a full-size space (22px) separates the words
	assert.Equal(t, drawCall{text: "F", x: 87, y: 100, font: bold}, r.calls[3])
}

func TestSmallCapsRoundsSmallSize(t *testing.T) {
	r := &recorder{}
	f := bold.WithSize(53)
	DrawSmallCaps(r, "ab", 0, 0, f, color.Black, math.Inf(1))
	require.Len(t, r.calls, 2)
	assert.Equal(t, 40.0, r.calls[1].font.Size)
	assert.Equal(t, 13.25, r.calls[1].y)
}

func TestMeasureSmallCapsWidth(t *testing.T) {
	r := &recorder{}
	assert.Equal(t, 165.0, MeasureSmallCapsWidth(r, "Fun Fact:", bold))
	assert.Equal(t, 0.0, MeasureSmallCapsWidth(r, "", bold))
	assert.Empty(t, r.calls)
}

func TestMeasureMatchesDrawnAdvance(t *testing.T) {
	for _, text := range []string{"Fun Fact:", "Pro Tip:", "builder of things that roll", "x", "", "a  b"} {
		r := &recorder{}
		drawn := DrawSmallCaps(r, text, 37, 0, bold, color.Black, math.Inf(1))
		assert.Equal(t, MeasureSmallCapsWidth(r, text, bold), drawn, text)
	}
}

func TestSmallCapsClipsAtMaxWidth(t *testing.T) {
	r := &recorder{}
	// full letters are 22px, small ones 16.5px
	advance := DrawSmallCaps(r, "abcdefgh", 100, 0, bold, color.Black, 50)

	assert.Equal(t, "ABC", r.drawnText())
	assert.Equal(t, 55.0, advance)
	for _, c := range r.calls {
		assert.LessOrEqual(t, c.x-100, 50.0)
	}
}

func TestSmallCapsZeroWidthDrawsFirstLetter(t *testing.T) {
	r := &recorder{}
	DrawSmallCaps(r, "hello", 0, 0, bold, color.Black, 0)
	assert.Equal(t, "H", r.drawnText())
}
