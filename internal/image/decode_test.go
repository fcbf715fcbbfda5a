package imagepkg

import (
	"errors"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImage(t *testing.T) {
	img, err := DecodeImage(encodePNG(t, solid(3, 2, barRed)))
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())

	_, err = DecodeImage(nil)
	assert.Error(t, err)
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "bar.png")
	require.NoError(t, os.WriteFile(good, encodePNG(t, solid(4, 4, barRed)), 0o644))
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))

	img, err := LoadImage(good)
	require.NoError(t, err)
	assert.Equal(t, barRed, color.NRGBAModel.Convert(img.At(1, 1)))

	_, err = LoadImage(filepath.Join(dir, "missing.png"))
	assert.True(t, errors.Is(err, ErrAssetLoad))

	_, err = LoadImage(bad)
	assert.True(t, errors.Is(err, ErrDecode))
}

func TestLoadImageOverHTTP(t *testing.T) {
	body := encodePNG(t, solid(5, 5, frameBlue))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	img, err := LoadImage(srv.URL + "/frames/series-1.png")
	require.NoError(t, err)
	assert.Equal(t, 5, img.Bounds().Dy())
}
