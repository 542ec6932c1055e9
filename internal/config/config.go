// Package config reads process settings from the environment and an optional
// .env file, and builds the catalog, store and logger they describe.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/peterkuimelis/inwo/internal/game"
	"github.com/peterkuimelis/inwo/internal/store"
)

// Config holds settings shared by every binary. Flags in cmd/ default to
// these values.
type Config struct {
	Addr          string `env:"INWO_ADDR" envDefault:":8080"`
	StoreDriver   string `env:"INWO_STORE" envDefault:"file"`
	StorePath     string `env:"INWO_STORE_PATH" envDefault:"inwo-storage.json"`
	CatalogFile   string `env:"INWO_CATALOG"`
	TableCardsDir string `env:"INWO_TABLE_CARDS_DIR"`
	Seed          int64  `env:"INWO_SEED"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty     bool   `env:"LOG_PRETTY"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the given .env files (".env" when none are named) into the
// environment, skipping missing ones, then parses Config.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, path := range envFiles {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Logger builds the process logger. An unknown level falls back to info.
func (c Config) Logger(w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		lvl = zerolog.InfoLevel
	}
	if c.LogPretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Catalog returns the card catalog: the YAML catalog file when set, else the
// built-in one, extended with table cards when a scan directory is set.
func (c Config) Catalog() (*game.Catalog, error) {
	cat := game.DefaultCatalog()
	if c.CatalogFile != "" {
		loaded, err := game.LoadCatalogFile(c.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		cat = loaded
	}
	if c.TableCardsDir != "" {
		cards, err := game.LoadTableCards(c.TableCardsDir)
		if err != nil {
			return nil, err
		}
		cat = cat.Extend(cards...)
	}
	return cat, nil
}

// OpenStore opens the configured deck store.
func (c Config) OpenStore() (store.Store, error) {
	st, err := store.Open(c.StoreDriver, c.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", c.StoreDriver, err)
	}
	return st, nil
}
