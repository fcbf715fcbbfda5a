// Package config loads service settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/youruser/cardmaker/internal/cards"
	"github.com/youruser/cardmaker/internal/fonts"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "CARDMAKER_CONFIG"

type Config struct {
	Server     ServerConfig  `yaml:"server"`
	Assets     AssetsConfig  `yaml:"assets"`
	Stylize    StylizeConfig `yaml:"stylize"`
	Gallery    GalleryConfig `yaml:"gallery"`
	Validation cards.Limits  `yaml:"validation"`
	Log        LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	// PublicURL prefixes download links handed out for exported cards.
	PublicURL string          `yaml:"public_url"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig caps stylization requests per client IP.
type RateLimitConfig struct {
	Max    int           `yaml:"max"`
	Window time.Duration `yaml:"window"`
}

type AssetsConfig struct {
	// Dir is a local directory or an http(s) base URL.
	Dir      string      `yaml:"dir"`
	Fonts    fonts.Paths `yaml:"fonts"`
	WordList string      `yaml:"word_list"`
}

type StylizeConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type GalleryConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the settings used when no file is given.
func Default() Config {
	var c Config
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.RateLimit.Max == 0 {
		c.Server.RateLimit.Max = 10
	}
	if c.Server.RateLimit.Window == 0 {
		c.Server.RateLimit.Window = time.Minute
	}
	if c.Assets.Dir == "" {
		c.Assets.Dir = "public"
	}
	if c.Stylize.Timeout == 0 {
		c.Stylize.Timeout = 90 * time.Second
	}
	if c.Gallery.Path == "" {
		c.Gallery.Path = "data/gallery.db"
	}
	defaultInt(&c.Validation.Title, cards.DefaultLimits.Title)
	defaultInt(&c.Validation.Tagline, cards.DefaultLimits.Tagline)
	defaultInt(&c.Validation.FunFact, cards.DefaultLimits.FunFact)
	defaultInt(&c.Validation.ProTip, cards.DefaultLimits.ProTip)
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func defaultInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

// Load reads the YAML file at path, if any, fills defaults and applies
// environment overrides. An empty path falls back to $CARDMAKER_CONFIG.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	var c Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	c.setDefaults()
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("CARDMAKER_PUBLIC_URL"); v != "" {
		c.Server.PublicURL = v
	}
	if v := os.Getenv("STYLIZE_URL"); v != "" {
		c.Stylize.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	var errs []error
	l := c.Validation
	if l.Title < 0 || l.Tagline < 0 || l.FunFact < 0 || l.ProTip < 0 {
		errs = append(errs, errors.New("validation limits must not be negative"))
	}
	if c.Server.RateLimit.Max < 0 || c.Server.RateLimit.Window < 0 {
		errs = append(errs, errors.New("rate_limit values must not be negative"))
	}
	if c.Stylize.Timeout < 0 {
		errs = append(errs, errors.New("stylize.timeout must not be negative"))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// NewLogger builds the process logger.
func (lc LogConfig) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetLevel(level)
	if strings.EqualFold(lc.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}
