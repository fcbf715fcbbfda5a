package cards

import (
	"image/color"

	xfont "golang.org/x/image/font"
)

// All geometry is in pixels at the native card resolution, origin top-left.

const (
	CardWidth  = 1499
	CardHeight = 2098
)

// PortraitAspectRatio is width:height of the photo window (114:97).
const PortraitAspectRatio = 114.0 / 97.0

// Rect is an integer pixel rectangle given by origin and size.
type Rect struct {
	X, Y, W, H int
}

// Portrait is the window behind the frame's transparent cut-out.
var Portrait = Rect{X: 97, Y: 158, W: 1305, H: 1111}

// TaglineBar describes the decorative bar drawn behind the tagline.
type TaglineBar struct {
	Asset    string  // path relative to the assets dir
	ClipLeft float64 // left clip edge
	Padding  float64 // distance the bar extends past the text
	MaxRight float64 // the bar never extends past this x
	Height   float64 // native bar image height
}

// TextZone places and styles one text field. For labeled zones Weight
// applies to the label and BodyWeight to the text that follows it.
type TextZone struct {
	X, Y       float64
	MaxWidth   float64
	FontSize   float64
	Weight     xfont.Weight
	BodyWeight xfont.Weight
	Style      xfont.Style
	Color      color.NRGBA
	LineHeight float64
	SmallCaps  bool
	Label      string
	Bar        *TaglineBar
}

// LineAdvance is the vertical distance between wrapped lines.
func (z TextZone) LineAdvance() float64 {
	lh := z.LineHeight
	if lh <= 0 {
		lh = 1
	}
	return z.FontSize * lh
}

var ink = color.NRGBA{R: 0x1A, G: 0x1A, B: 0x1A, A: 0xFF}

// Zones holds the text zones of a card front, top to bottom.
var Zones = struct {
	Title, Tagline, FunFact, ProTip TextZone
}{
	// white bold italic on the black diagonal banner
	Title: TextZone{
		X: 85, Y: 115, MaxWidth: 700, FontSize: 80,
		Weight: xfont.WeightBold, BodyWeight: xfont.WeightBold, Style: xfont.StyleItalic,
		Color:      color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		LineHeight: 1,
	},
	Tagline: TextZone{
		X: 97, Y: 1430, MaxWidth: 1000, FontSize: 53,
		Weight: xfont.WeightBold, BodyWeight: xfont.WeightBold, Style: xfont.StyleNormal,
		Color: ink, LineHeight: 1, SmallCaps: true,
		Bar: &TaglineBar{
			Asset:    "tagline-bar.png",
			ClipLeft: 58,
			Padding:  80,
			MaxRight: 1402, // right edge of the portrait window
			Height:   126,
		},
	},
	FunFact: TextZone{
		X: 97, Y: 1630, MaxWidth: 1305, FontSize: 53,
		Weight: xfont.WeightBold, BodyWeight: xfont.WeightNormal, Style: xfont.StyleNormal,
		Color: ink, LineHeight: 1.35, SmallCaps: true,
		Label: "Fun Fact:",
	},
	ProTip: TextZone{
		X: 97, Y: 1840, MaxWidth: 1305, FontSize: 53,
		Weight: xfont.WeightBold, BodyWeight: xfont.WeightNormal, Style: xfont.StyleNormal,
		Color: ink, LineHeight: 1.35, SmallCaps: true,
		Label: "Pro Tip:",
	},
}

// Limits are maximum rune counts per form field.
type Limits struct {
	Title   int `yaml:"title"`
	Tagline int `yaml:"tagline"`
	FunFact int `yaml:"fun_fact"`
	ProTip  int `yaml:"pro_tip"`
}

// DefaultLimits are the character limits the text-entry form enforces.
var DefaultLimits = Limits{Title: 30, Tagline: 60, FunFact: 120, ProTip: 120}

// FontFamily names the typeface the zone styles assume.
const FontFamily = "Aileron"
