package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/youruser/cardmaker/internal/util"
)

// DecodeImage decodes JPEG, PNG, GIF, BMP, TIFF or WebP bytes, applying any
// EXIF orientation so phone photos come out upright.
func DecodeImage(b []byte) (image.Image, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("decode image: empty input")
	}
	img, err := imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// ReadAsset returns the bytes of a local file or, for http(s) locations, the
// downloaded body.
func ReadAsset(location string) ([]byte, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return util.GetBytes(location)
	}
	return os.ReadFile(location)
}

// LoadImage reads and decodes an image asset. Read failures are reported as
// ErrAssetLoad, undecodable content as ErrDecode.
func LoadImage(location string) (image.Image, error) {
	b, err := ReadAsset(location)
	if err != nil {
		return nil, renderErr("load "+location, ErrAssetLoad, err)
	}
	img, err := DecodeImage(b)
	if err != nil {
		return nil, renderErr("load "+location, ErrDecode, err)
	}
	return img, nil
}
