package main

import (
	"flag"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/youruser/cardmaker/internal/api"
	"github.com/youruser/cardmaker/internal/assets"
	"github.com/youruser/cardmaker/internal/cards"
	"github.com/youruser/cardmaker/internal/config"
	"github.com/youruser/cardmaker/internal/gallery"
	imagepkg "github.com/youruser/cardmaker/internal/image"
	"github.com/youruser/cardmaker/internal/stylize"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $"+config.EnvConfigPath+")")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log, err := cfg.Log.NewLogger()
	if err != nil {
		logrus.WithError(err).Fatal("failed to build logger")
	}

	store := assets.New(cfg.Assets.Dir, cfg.Assets.Fonts, log)
	res, err := store.Preload(func(p assets.Progress) {
		log.WithFields(logrus.Fields{"asset": p.CurrentAsset, "loaded": p.Loaded, "total": p.Total}).Debug("asset preloaded")
	})
	if err != nil {
		log.WithError(err).Fatal("failed to preload assets")
	}
	log.WithField("frames", res.FramesLoaded).Info("assets ready")

	var blocked *cards.WordList
	if cfg.Assets.WordList != "" {
		if blocked, err = cards.LoadWordList(cfg.Assets.WordList); err != nil {
			log.WithError(err).Fatal("failed to load word list")
		}
	}

	cardStore, err := gallery.NewStore(cfg.Gallery.Path, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open gallery")
	}
	defer cardStore.Close()

	limiter := api.NewRateLimiter(cfg.Server.RateLimit.Max, cfg.Server.RateLimit.Window)
	defer limiter.Close()

	stylizer := stylize.NewClient(cfg.Stylize.URL, cfg.Stylize.Timeout, log)
	if !stylizer.Enabled() {
		log.Warn("no stylization endpoint configured; photos are used as taken")
	}

	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = imagepkg.MaxUploadBytes + 1<<20
	api.RegisterRoutes(r, api.Deps{
		Renderer:  imagepkg.NewCompositor(store.Fonts(), store, log),
		Assets:    store,
		Stylizer:  stylizer,
		Gallery:   cardStore,
		Limits:    cfg.Validation,
		Blocked:   blocked,
		Limiter:   limiter,
		PublicURL: cfg.Server.PublicURL,
		Log:       log,
	})

	log.Info("starting server on http://localhost:" + cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server stopped")
	}
}
