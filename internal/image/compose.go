package imagepkg

import (
	"errors"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"

	"github.com/youruser/cardmaker/internal/cards"
	"github.com/youruser/cardmaker/internal/fonts"
	"github.com/youruser/cardmaker/internal/textlayout"
)

// RenderInput is everything one card needs. The caller keeps ownership of
// Frame; Portrait holds encoded image bytes already cropped to the
// portrait aspect ratio.
type RenderInput struct {
	Frame    image.Image
	Portrait []byte
	Form     cards.FormData
}

// BarLoader supplies the tagline bar image. It is called once per render.
type BarLoader interface {
	TaglineBar() (image.Image, error)
}

// BarLoaderFunc adapts a function to BarLoader.
type BarLoaderFunc func() (image.Image, error)

func (f BarLoaderFunc) TaglineBar() (image.Image, error) { return f() }

// Compositor renders card fronts. It holds no per-card state, so one
// Compositor may render many cards concurrently.
type Compositor struct {
	fonts *fonts.Set
	bar   BarLoader
	log   logrus.FieldLogger
}

// NewCompositor returns a compositor drawing text with fs and the tagline
// bar from bar. log may be nil.
func NewCompositor(fs *fonts.Set, bar BarLoader, log logrus.FieldLogger) *Compositor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Compositor{fonts: fs, bar: bar, log: log.WithField("component", "CardRenderer")}
}

var background = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// RenderCard composites portrait, frame and text into a new opaque
// CardWidth x CardHeight image. Layers are drawn in a fixed order, each
// covering the ones before it: portrait, frame, title, tagline bar and
// tagline, fun fact, pro tip. Text that does not fit is clipped or
// overflows; it never fails the render.
func (c *Compositor) RenderCard(in RenderInput) (*image.NRGBA, error) {
	start := time.Now()
	log := c.log.WithField("portrait_kb", len(in.Portrait)/1024)
	log.Info("card composition started")

	if in.Frame == nil {
		return nil, renderErr("frame", ErrAssetLoad, errors.New("no frame image"))
	}
	if c.fonts == nil {
		return nil, renderErr("fonts", ErrSurface, errors.New("no fonts loaded"))
	}

	// 1. portrait, stretched into its window
	portrait, err := DecodeImage(in.Portrait)
	if err != nil {
		return nil, renderErr("portrait", ErrDecode, err)
	}
	p := cards.Portrait
	dst := imaging.New(cards.CardWidth, cards.CardHeight, background)
	dst = imaging.Overlay(dst, imaging.Resize(portrait, p.W, p.H, imaging.Lanczos), image.Pt(p.X, p.Y), 1)
	log.Debug("layer rendered: portrait")

	// 2. frame; its transparent window shows the portrait
	frame := in.Frame
	if b := frame.Bounds(); b.Dx() != cards.CardWidth || b.Dy() != cards.CardHeight {
		frame = imaging.Resize(frame, cards.CardWidth, cards.CardHeight, imaging.Lanczos)
	}
	dst = imaging.Overlay(dst, frame, image.Pt(0, 0), 1)
	log.Debug("layer rendered: frame")

	surface := NewCanvas(dst, c.fonts)
	defer surface.Close()

	// 3. title, one line, never wrapped
	tz := cards.Zones.Title
	surface.DrawText(in.Form.Title, tz.X, tz.Y, zoneFont(tz), tz.Color)
	log.Debug("layer rendered: title")

	// 4. tagline bar, then the tagline on top of it
	gz := cards.Zones.Tagline
	gf := zoneFont(gz)
	if gz.Bar != nil {
		if err := c.drawTaglineBar(dst, gz, textlayout.MeasureSmallCapsWidth(surface, in.Form.Tagline, gf), log); err != nil {
			return nil, err
		}
	}
	textlayout.DrawSmallCaps(surface, in.Form.Tagline, gz.X, gz.Y, gf, gz.Color, gz.MaxWidth)
	log.Debug("layer rendered: tagline")

	// 5, 6. labeled fields
	n := textlayout.DrawLabeledField(surface, cards.Zones.FunFact, in.Form.FunFact)
	log.WithField("lines", n).Debug("layer rendered: funFact")
	n = textlayout.DrawLabeledField(surface, cards.Zones.ProTip, in.Form.ProTip)
	log.WithField("lines", n).Debug("layer rendered: proTip")

	if err := surface.Err(); err != nil {
		return nil, err
	}
	log.WithField("total_render_ms", time.Since(start).Milliseconds()).Info("card composition complete")
	return dst, nil
}

func (c *Compositor) drawTaglineBar(dst *image.NRGBA, z cards.TextZone, textWidth float64, log logrus.FieldLogger) error {
	if c.bar == nil {
		return renderErr("tagline bar", ErrAssetLoad, errors.New("no bar source"))
	}
	bar, err := c.bar.TaglineBar()
	if err != nil {
		var rerr *RenderError
		if errors.As(err, &rerr) {
			return err
		}
		return renderErr("tagline bar", ErrAssetLoad, err)
	}
	r, clip := TaglineBarPlacement(z, textWidth, bar.Bounds().Size())
	if sub, ok := dst.SubImage(clip).(*image.NRGBA); ok {
		xdraw.Draw(sub, r, bar, bar.Bounds().Min, xdraw.Over)
	}
	log.WithFields(logrus.Fields{"bar_left": r.Min.X, "bar_right": r.Max.X}).Debug("layer rendered: tagline bar")
	return nil
}

// TaglineBarPlacement positions a bar image of the given size behind a
// tagline measuring textWidth. The bar's right edge sits Padding past the
// end of the text but never past MaxRight. dst is where the whole bar
// image goes; clip is the part of it that may be painted, starting at
// ClipLeft, so a long bar image is cut off hard on the left.
func TaglineBarPlacement(z cards.TextZone, textWidth float64, size image.Point) (dst, clip image.Rectangle) {
	b := z.Bar
	right := int(math.Round(math.Min(z.X+textWidth+b.Padding, b.MaxRight)))
	top := int(math.Round(z.Y + (z.FontSize-b.Height)/2))

	dst = image.Rect(right-size.X, top, right, top+size.Y)
	// a literal, not image.Rect: a right edge left of ClipLeft must stay empty
	clip = image.Rectangle{
		Min: image.Pt(int(math.Round(b.ClipLeft)), top),
		Max: image.Pt(right, top+int(math.Round(b.Height))),
	}
	return dst, clip
}

func zoneFont(z cards.TextZone) textlayout.Font {
	return textlayout.Font{Size: z.FontSize, Weight: z.Weight, Style: z.Style}
}
