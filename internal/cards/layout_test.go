package cards

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardDimensions(t *testing.T) {
	assert.Equal(t, 1499, CardWidth)
	assert.Equal(t, 2098, CardHeight)
}

func TestPortraitRespectsAspectRatio(t *testing.T) {
	assert.InDelta(t, 114.0/97.0, PortraitAspectRatio, 1e-4)
	ratio := float64(Portrait.W) / float64(Portrait.H)
	assert.InDelta(t, PortraitAspectRatio, ratio, 0.01)
}

func TestPortraitInsideCard(t *testing.T) {
	assert.GreaterOrEqual(t, Portrait.X, 0)
	assert.GreaterOrEqual(t, Portrait.Y, 0)
	assert.LessOrEqual(t, Portrait.X+Portrait.W, CardWidth)
	assert.LessOrEqual(t, Portrait.Y+Portrait.H, CardHeight)
}

func TestZonesInsideCard(t *testing.T) {
	zones := map[string]TextZone{
		"title":   Zones.Title,
		"tagline": Zones.Tagline,
		"funFact": Zones.FunFact,
		"proTip":  Zones.ProTip,
	}
	for name, z := range zones {
		assert.GreaterOrEqual(t, z.X, 0.0, name)
		assert.GreaterOrEqual(t, z.Y, 0.0, name)
		assert.LessOrEqual(t, z.X+z.MaxWidth, float64(CardWidth), name)
		assert.LessOrEqual(t, z.Y+z.FontSize, float64(CardHeight), name)
		assert.Greater(t, z.FontSize, 0.0, name)
	}
}

func TestZonesTopToBottom(t *testing.T) {
	assert.Less(t, Zones.Title.Y, Zones.Tagline.Y)
	assert.Less(t, Zones.Tagline.Y, Zones.FunFact.Y)
	assert.Less(t, Zones.FunFact.Y, Zones.ProTip.Y)
}

// footprint is the bottom edge of a zone holding the given number of lines.
func footprint(z TextZone, lines int) float64 {
	return z.Y + float64(lines-1)*z.LineAdvance() + z.FontSize
}

func TestZonesDoNotOverlap(t *testing.T) {
	// title and tagline are single lines; a 120-character labeled field
	// wraps to at most three lines at this width
	const labeledLines = 3
	assert.LessOrEqual(t, footprint(Zones.Title, 1), Zones.Tagline.Y)
	assert.LessOrEqual(t, footprint(Zones.Tagline, 1)+(Zones.Tagline.Bar.Height-Zones.Tagline.FontSize)/2, Zones.FunFact.Y)
	assert.LessOrEqual(t, footprint(Zones.FunFact, labeledLines), Zones.ProTip.Y)
	assert.LessOrEqual(t, footprint(Zones.ProTip, labeledLines), float64(CardHeight))

	// a fourth fun-fact line starts below the pro tip origin
	assert.Greater(t, Zones.FunFact.Y+labeledLines*Zones.FunFact.LineAdvance(), Zones.ProTip.Y)
}

func TestTaglineBarGeometry(t *testing.T) {
	bar := Zones.Tagline.Bar
	if assert.NotNil(t, bar) {
		assert.Equal(t, float64(Portrait.X+Portrait.W), bar.MaxRight)
		assert.Less(t, bar.ClipLeft, Zones.Tagline.X)
		assert.Greater(t, bar.Padding, 0.0)
	}
}

func TestLabeledZones(t *testing.T) {
	assert.Equal(t, "Fun Fact:", Zones.FunFact.Label)
	assert.Equal(t, "Pro Tip:", Zones.ProTip.Label)
	assert.InDelta(t, 53*1.35, Zones.FunFact.LineAdvance(), 1e-9)
	assert.Equal(t, 80.0, TextZone{FontSize: 80}.LineAdvance())
}

func TestSeriesCatalog(t *testing.T) {
	hex := regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	frame := regexp.MustCompile(`^frames/.+\.png$`)
	seen := map[SeriesID]bool{}
	assert.Len(t, AllSeries, 5)
	for _, s := range AllSeries {
		assert.NotEmpty(t, s.Label)
		assert.Regexp(t, hex, s.Color)
		assert.Regexp(t, frame, s.FrameAsset)
		assert.False(t, seen[s.ID], "duplicate series %s", s.ID)
		seen[s.ID] = true
	}
	_, ok := LookupSeries(DefaultSeries)
	assert.True(t, ok)
	_, ok = LookupSeries("series-9")
	assert.False(t, ok)
}

func TestLimitsPositive(t *testing.T) {
	assert.Equal(t, Limits{Title: 30, Tagline: 60, FunFact: 120, ProTip: 120}, DefaultLimits)
}
