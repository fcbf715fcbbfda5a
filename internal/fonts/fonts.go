// Package fonts loads the card typeface in its three faces.
package fonts

import (
	"fmt"
	"os"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Paths names the font files. An empty path selects the embedded Go font
// of the same weight and style.
type Paths struct {
	Regular    string `yaml:"regular"`
	Bold       string `yaml:"bold"`
	BoldItalic string `yaml:"bold_italic"`
}

// Set holds parsed fonts. A Set is read-only after Load and may be shared;
// faces created from it are not, so every drawing surface makes its own.
type Set struct {
	Family     string
	regular    *opentype.Font
	bold       *opentype.Font
	boldItalic *opentype.Font
}

// Load parses the three faces. A configured file that cannot be read or
// parsed is an error.
func Load(family string, p Paths) (*Set, error) {
	s := &Set{Family: family}
	var err error
	if s.regular, err = load(p.Regular, goregular.TTF); err != nil {
		return nil, fmt.Errorf("regular face: %w", err)
	}
	if s.bold, err = load(p.Bold, gobold.TTF); err != nil {
		return nil, fmt.Errorf("bold face: %w", err)
	}
	if s.boldItalic, err = load(p.BoldItalic, gobolditalic.TTF); err != nil {
		return nil, fmt.Errorf("bold italic face: %w", err)
	}
	return s, nil
}

// Embedded returns the Go fonts. It cannot fail in practice.
func Embedded() *Set {
	s, err := Load("Go", Paths{})
	if err != nil {
		panic("cannot parse embedded Go fonts: " + err.Error())
	}
	return s
}

func load(path string, fallback []byte) (*opentype.Font, error) {
	data := fallback
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", path, err)
	}
	return f, nil
}

// Lookup picks the face for a weight and style. Semibold and heavier map
// to bold; italic only exists in bold, lighter italics use regular.
func (s *Set) Lookup(weight xfont.Weight, style xfont.Style) *opentype.Font {
	if weight < xfont.WeightSemiBold {
		return s.regular
	}
	if style == xfont.StyleItalic || style == xfont.StyleOblique {
		return s.boldItalic
	}
	return s.bold
}

// NewFace creates a face at size pixels.
func (s *Set) NewFace(weight xfont.Weight, style xfont.Style, size float64) (xfont.Face, error) {
	face, err := opentype.NewFace(s.Lookup(weight, style), &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s face at %.1fpx: %w", s.Family, size, err)
	}
	return face, nil
}
