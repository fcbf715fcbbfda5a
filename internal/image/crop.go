package imagepkg

import (
	"bytes"
	"image"
	"image/jpeg"
	"math"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardmaker/internal/cards"
)

// PortraitJPEGQuality is used when re-encoding a cropped portrait.
const PortraitJPEGQuality = 92

// CropToPortrait center-crops img to the 114:97 portrait aspect ratio and
// scales the result to the portrait window size.
func CropToPortrait(img image.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if float64(w)/float64(h) > cards.PortraitAspectRatio {
		// wider than the window: trim the sides
		w = int(math.Round(float64(h) * cards.PortraitAspectRatio))
	} else {
		h = int(math.Round(float64(w) / cards.PortraitAspectRatio))
	}
	cropped := imaging.CropCenter(img, w, h)
	return imaging.Resize(cropped, cards.Portrait.W, cards.Portrait.H, imaging.Lanczos)
}

// EncodeJPEG encodes img at the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PreparePortrait decodes photo bytes, crops them to the portrait window
// and re-encodes them as JPEG.
func PreparePortrait(photo []byte) ([]byte, error) {
	img, err := DecodeImage(photo)
	if err != nil {
		return nil, err
	}
	return EncodeJPEG(CropToPortrait(img), PortraitJPEGQuality)
}
