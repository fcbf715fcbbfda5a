package imagepkg

import (
	"image"
	"image/color"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/youruser/cardmaker/internal/fonts"
	"github.com/youruser/cardmaker/internal/textlayout"
)

// Canvas paints text onto an NRGBA image. It implements textlayout.Surface.
// A Canvas owns its faces and must not be shared between goroutines.
type Canvas struct {
	img   *image.NRGBA
	fonts *fonts.Set
	faces map[textlayout.Font]xfont.Face
	err   error
}

var _ textlayout.Surface = (*Canvas)(nil)

// NewCanvas wraps img for text drawing with the given fonts.
func NewCanvas(img *image.NRGBA, fs *fonts.Set) *Canvas {
	return &Canvas{img: img, fonts: fs, faces: map[textlayout.Font]xfont.Face{}}
}

// Err returns the first face that could not be created. Text drawn with a
// missing face is skipped and measures as zero.
func (c *Canvas) Err() error { return c.err }

// Close releases the faces.
func (c *Canvas) Close() error {
	for k, f := range c.faces {
		f.Close()
		delete(c.faces, k)
	}
	return nil
}

func (c *Canvas) face(f textlayout.Font) xfont.Face {
	if face, ok := c.faces[f]; ok {
		return face
	}
	if c.fonts == nil {
		if c.err == nil {
			c.err = renderErr("font face", ErrSurface, nil)
		}
		return nil
	}
	face, err := c.fonts.NewFace(f.Weight, f.Style, f.Size)
	if err != nil {
		if c.err == nil {
			c.err = renderErr("font face", ErrSurface, err)
		}
		return nil
	}
	c.faces[f] = face
	return face
}

// MeasureText returns the advance width of s in pixels.
func (c *Canvas) MeasureText(s string, f textlayout.Font) float64 {
	face := c.face(f)
	if face == nil {
		return 0
	}
	return fromFixed(xfont.MeasureString(face, s))
}

// DrawText paints s with the top of its em box at y.
func (c *Canvas) DrawText(s string, x, y float64, f textlayout.Font, col color.Color) {
	face := c.face(f)
	if face == nil {
		return
	}
	d := &xfont.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y) + face.Metrics().Ascent},
	}
	d.DrawString(s)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
