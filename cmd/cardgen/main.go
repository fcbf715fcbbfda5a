// Command cardgen renders one card front from a local photo.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/youruser/cardmaker/internal/assets"
	"github.com/youruser/cardmaker/internal/cards"
	"github.com/youruser/cardmaker/internal/config"
	imagepkg "github.com/youruser/cardmaker/internal/image"
	"github.com/youruser/cardmaker/internal/stylize"
	"github.com/youruser/cardmaker/internal/util"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file")
		photoPath  = flag.String("photo", "", "photo to place in the portrait window (required)")
		series     = flag.String("series", string(cards.DefaultSeries), "frame series id")
		title      = flag.String("title", "", "card title (required)")
		tagline    = flag.String("tagline", "", "tagline")
		funFact    = flag.String("fun-fact", "", "fun fact")
		proTip     = flag.String("pro-tip", "", "pro tip")
		doStylize  = flag.Bool("stylize", false, "send the photo through the stylization endpoint first")
		out        = flag.String("out", "card.png", "output PNG path")
	)
	flag.Parse()

	if err := run(*configPath, *photoPath, cards.SeriesID(*series), cards.FormData{
		Title:   *title,
		Tagline: *tagline,
		FunFact: *funFact,
		ProTip:  *proTip,
	}, *doStylize, *out); err != nil {
		fmt.Fprintln(os.Stderr, "cardgen:", err)
		os.Exit(1)
	}
}

func run(configPath, photoPath string, series cards.SeriesID, form cards.FormData, doStylize bool, out string) error {
	if photoPath == "" {
		return fmt.Errorf("-photo is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := cfg.Log.NewLogger()
	if err != nil {
		return err
	}
	if _, ok := cards.LookupSeries(series); !ok {
		return fmt.Errorf("unknown series %q", series)
	}
	if err := cards.ValidateForm(form, cfg.Validation, nil); err != nil {
		return err
	}

	photo, err := os.ReadFile(photoPath)
	if err != nil {
		return err
	}
	if doStylize {
		c := stylize.NewClient(cfg.Stylize.URL, cfg.Stylize.Timeout, log)
		if photo, err = c.Stylize(context.Background(), photo, filepath.Base(photoPath)); err != nil {
			return err
		}
	}
	portrait, err := imagepkg.PreparePortrait(photo)
	if err != nil {
		return fmt.Errorf("read photo: %w", err)
	}

	store := assets.New(cfg.Assets.Dir, cfg.Assets.Fonts, log)
	if _, err := store.Preload(nil); err != nil {
		return err
	}
	frame, err := store.Frame(series)
	if err != nil {
		return err
	}
	card, err := imagepkg.NewCompositor(store.Fonts(), store, log).RenderCard(imagepkg.RenderInput{
		Frame:    frame,
		Portrait: portrait,
		Form:     form,
	})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, card); err != nil {
		return err
	}
	if err := util.WriteFile(out, buf.Bytes()); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"out": out, "series": series}).Info("card written")
	return nil
}
