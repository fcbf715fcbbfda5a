// Package assets preloads frames and fonts and serves them to renders.
package assets

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/youruser/cardmaker/internal/cards"
	"github.com/youruser/cardmaker/internal/fonts"
	imagepkg "github.com/youruser/cardmaker/internal/image"
)

// ErrUnknownSeries is returned for a series id not in the catalog.
var ErrUnknownSeries = errors.New("unknown series")

// Progress is reported after every asset finishes loading, failed or not.
type Progress struct {
	Loaded       int     `json:"loaded"`
	Total        int     `json:"total"`
	Percent      float64 `json:"percent"` // 0-1
	CurrentAsset string  `json:"currentAsset"`
}

// Result summarizes a preload.
type Result struct {
	FramesLoaded int
	FontsReady   bool
	TotalTime    time.Duration
}

// Store holds the preloaded frames and fonts. Frames and fonts are shared
// read-only between renders; the tagline bar is read from disk each time
// it is asked for.
type Store struct {
	dir       string
	barAsset  string
	fontPaths fonts.Paths
	log       logrus.FieldLogger

	mu     sync.RWMutex
	fonts  *fonts.Set
	frames map[cards.SeriesID]image.Image
}

var _ imagepkg.BarLoader = (*Store)(nil)

// New returns an empty store rooted at dir, a directory or an http(s) base
// URL. Font paths are resolved against dir unless absolute.
func New(dir string, fontPaths fonts.Paths, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Store{
		dir:      dir,
		barAsset: cards.Zones.Tagline.Bar.Asset,
		log:      log.WithField("component", "Preloader"),
		frames:   map[cards.SeriesID]image.Image{},
	}
	s.fontPaths = fonts.Paths{
		Regular:    s.localPath(fontPaths.Regular),
		Bold:       s.localPath(fontPaths.Bold),
		BoldItalic: s.localPath(fontPaths.BoldItalic),
	}
	return s
}

// Path resolves an asset name against the store's root.
func (s *Store) Path(asset string) string {
	if isURL(asset) || filepath.IsAbs(asset) {
		return asset
	}
	if isURL(s.dir) {
		return strings.TrimRight(s.dir, "/") + "/" + strings.TrimLeft(filepath.ToSlash(asset), "/")
	}
	return filepath.Join(s.dir, asset)
}

func (s *Store) localPath(p string) string {
	if p == "" {
		return ""
	}
	return s.Path(p)
}

func isURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// Preload loads the fonts, then every series frame in parallel. Fonts are
// required and their failure aborts the preload. A frame that fails is
// logged and skipped; rendering with that series fails later.
func (s *Store) Preload(onProgress func(Progress)) (Result, error) {
	start := time.Now()
	s.log.Info("asset preloading started")

	total := len(cards.AllSeries) + 1
	var progressMu sync.Mutex
	loaded := 0
	report := func(asset string) {
		progressMu.Lock()
		defer progressMu.Unlock()
		loaded++
		p := Progress{Loaded: loaded, Total: total, Percent: float64(loaded) / float64(total), CurrentAsset: asset}
		s.log.WithField("percent", int(p.Percent*100)).Infof("loaded asset %d/%d: %s", loaded, total, asset)
		if onProgress != nil {
			onProgress(p)
		}
	}

	fs, err := fonts.Load(cards.FontFamily, s.fontPaths)
	if err != nil {
		s.log.WithError(err).Error("font loading failed")
		report(cards.FontFamily + " fonts (failed)")
		return Result{TotalTime: time.Since(start)}, fmt.Errorf("%w: %v", imagepkg.ErrAssetLoad, err)
	}
	report(cards.FontFamily + " fonts")

	frames := map[cards.SeriesID]image.Image{}
	var framesMu sync.Mutex
	var wg sync.WaitGroup
	for _, series := range cards.AllSeries {
		wg.Add(1)
		go func(series cards.Series) {
			defer wg.Done()
			path := s.Path(series.FrameAsset)
			img, err := imagepkg.LoadImage(path)
			if err != nil {
				s.log.WithFields(logrus.Fields{"series": series.ID, "path": path}).WithError(err).Error("failed to load frame")
				report(string(series.ID) + " (failed)")
				return
			}
			framesMu.Lock()
			frames[series.ID] = img
			framesMu.Unlock()
			report(string(series.ID))
		}(series)
	}
	wg.Wait()

	s.mu.Lock()
	s.fonts = fs
	s.frames = frames
	s.mu.Unlock()

	res := Result{FramesLoaded: len(frames), FontsReady: true, TotalTime: time.Since(start)}
	s.log.WithFields(logrus.Fields{
		"total_time_ms": res.TotalTime.Milliseconds(),
		"frames_loaded": res.FramesLoaded,
	}).Info("asset preloading complete")
	return res, nil
}

// Fonts returns the loaded fonts, or nil before a successful Preload.
func (s *Store) Fonts() *fonts.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fonts
}

// Frame returns the preloaded frame of a series.
func (s *Store) Frame(id cards.SeriesID) (image.Image, error) {
	if _, ok := cards.LookupSeries(id); !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSeries, id)
	}
	s.mu.RLock()
	img, ok := s.frames[id]
	s.mu.RUnlock()
	if !ok {
		return nil, &imagepkg.RenderError{Op: "frame " + string(id), Kind: imagepkg.ErrAssetLoad, Err: errors.New("frame not loaded")}
	}
	return img, nil
}

// TaglineBar reads and decodes the tagline bar image.
func (s *Store) TaglineBar() (image.Image, error) {
	return imagepkg.LoadImage(s.Path(s.barAsset))
}

// CardBack reads and decodes the shared card back.
func (s *Store) CardBack() (image.Image, error) {
	return imagepkg.LoadImage(s.Path(cards.CardBackAsset))
}
