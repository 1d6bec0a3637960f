// Package config reads server and game settings from the environment
package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/minaorangina/concentration/deck"
	"github.com/minaorangina/concentration/game"
	"go.uber.org/zap"
)

type Config struct {
	Port          int           `env:"CONCENTRATION_PORT,default=8000"`
	Catalog       []string      `env:"CONCENTRATION_CATALOG,default=A;B;C;D;E;F;G;H;I;J"`
	Pairs         int           `env:"CONCENTRATION_PAIRS,default=5"`
	Columns       int           `env:"CONCENTRATION_COLUMNS,default=5"`
	Spacing       float64       `env:"CONCENTRATION_SPACING,default=0.5"`
	OpeningPause  time.Duration `env:"CONCENTRATION_OPENING_PAUSE,default=2s"`
	Reveal        time.Duration `env:"CONCENTRATION_REVEAL,default=5s"`
	Flip          time.Duration `env:"CONCENTRATION_FLIP,default=500ms"`
	FrameInterval time.Duration `env:"CONCENTRATION_FRAME,default=16ms"`
	Seed          int64         `env:"CONCENTRATION_SEED,default=0"`
	Debug         bool          `env:"CONCENTRATION_DEBUG,default=false"`
}

// Load decodes the environment and checks the game settings make sense
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}

	if cfg.FrameInterval <= 0 {
		return Config{}, fmt.Errorf("%w: frame interval must be positive", game.ErrInvalidConfiguration)
	}
	if err := cfg.Game().Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Game returns the game tunables
func (c Config) Game() game.Config {
	catalog := make([]deck.Face, 0, len(c.Catalog))
	for _, f := range c.Catalog {
		catalog = append(catalog, deck.Face(f))
	}

	return game.Config{
		Catalog:        catalog,
		PairCount:      c.Pairs,
		Columns:        c.Columns,
		Spacing:        c.Spacing,
		OpeningPause:   c.OpeningPause,
		RevealDuration: c.Reveal,
		FlipDuration:   c.Flip,
	}
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Logger builds a production logger, or a development one when debugging
func (c Config) Logger() (*zap.Logger, error) {
	if c.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
