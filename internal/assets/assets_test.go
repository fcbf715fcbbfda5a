package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/youruser/cardmaker/internal/cards"
	"github.com/youruser/cardmaker/internal/fonts"
	imagepkg "github.com/youruser/cardmaker/internal/image"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestPreloadSkipsMissingFrames(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "frames", "series-1.png"), 8, 8)
	writePNG(t, filepath.Join(dir, "frames", "specialty.png"), 8, 8)
	writePNG(t, filepath.Join(dir, "tagline-bar.png"), 20, 4)

	log, hook := test.NewNullLogger()
	s := New(dir, fonts.Paths{}, log)

	var seen []Progress
	res, err := s.Preload(func(p Progress) { seen = append(seen, p) })
	require.NoError(t, err)

	assert.Equal(t, 2, res.FramesLoaded)
	assert.True(t, res.FontsReady)
	require.Len(t, seen, len(cards.AllSeries)+1)
	assert.Equal(t, "Aileron fonts", seen[0].CurrentAsset)
	last := seen[len(seen)-1]
	assert.Equal(t, last.Total, last.Loaded)
	assert.Equal(t, 1.0, last.Percent)
	assert.NotEmpty(t, hook.AllEntries())

	assert.NotNil(t, s.Fonts())
	_, err = s.Frame(cards.Series1)
	assert.NoError(t, err)
	_, err = s.Frame(cards.Series2)
	assert.True(t, errors.Is(err, imagepkg.ErrAssetLoad))
	_, err = s.Frame("series-9")
	assert.True(t, errors.Is(err, ErrUnknownSeries))

	bar, err := s.TaglineBar()
	require.NoError(t, err)
	assert.Equal(t, 20, bar.Bounds().Dx())
	_, err = s.CardBack()
	assert.True(t, errors.Is(err, imagepkg.ErrAssetLoad))
}

func TestPreloadFailsOnBadFont(t *testing.T) {
	dir := t.TempDir()
	log, _ := test.NewNullLogger()
	s := New(dir, fonts.Paths{Bold: "fonts/Aileron-Bold.otf"}, log)

	var seen []Progress
	_, err := s.Preload(func(p Progress) { seen = append(seen, p) })
	assert.True(t, errors.Is(err, imagepkg.ErrAssetLoad))
	require.Len(t, seen, 1)
	assert.Equal(t, "Aileron fonts (failed)", seen[0].CurrentAsset)
	assert.Nil(t, s.Fonts())
}

func TestPreloadResolvesFontsAgainstDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fonts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fonts", "mono.ttf"), gomono.TTF, 0o644))

	log, _ := test.NewNullLogger()
	s := New(dir, fonts.Paths{Regular: "fonts/mono.ttf"}, log)
	_, err := s.Preload(nil)
	require.NoError(t, err)
}

func TestPath(t *testing.T) {
	s := New("public", fonts.Paths{}, nil)
	assert.Equal(t, filepath.Join("public", "frames", "back.jpg"), s.Path("frames/back.jpg"))
	assert.Equal(t, "https://cdn.example.com/x.png", s.Path("https://cdn.example.com/x.png"))

	remote := New("https://cdn.example.com/cards/", fonts.Paths{}, nil)
	assert.Equal(t, "https://cdn.example.com/cards/frames/series-1.png", remote.Path("frames/series-1.png"))
}
