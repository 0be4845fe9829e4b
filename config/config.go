// Package config loads game settings from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file in the working directory. Command-line flags are applied on top
// by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig wraps .env and environment decoding failures
	ErrParsingConfig = errors.New("failed to parse config")
	// ErrInvalidConfig is wrapped by every Validate failure
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds every tunable of the game
type Config struct {
	APIBaseURL  string        `env:"POKESCRAMBLE_API_URL" envDefault:"https://pokeapi.co/api/v2"`
	MaxID       int           `env:"POKESCRAMBLE_MAX_ID" envDefault:"150"`
	CreatureID  int           `env:"POKESCRAMBLE_ID" envDefault:"0"` // 0 picks a random id
	HTTPTimeout time.Duration `env:"POKESCRAMBLE_HTTP_TIMEOUT" envDefault:"10s"`
	ToleranceX  int           `env:"POKESCRAMBLE_TOLERANCE_X" envDefault:"3"`
	ToleranceY  int           `env:"POKESCRAMBLE_TOLERANCE_Y" envDefault:"2"`
	Sound       bool          `env:"POKESCRAMBLE_SOUND" envDefault:"true"`
	Debug       bool          `env:"POKESCRAMBLE_DEBUG" envDefault:"false"`
	Seed        uint64        `env:"POKESCRAMBLE_SEED" envDefault:"0"` // 0 derives a seed from the clock
}

// Load reads .env files (missing files are ignored) and parses the environment
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, errors.Join(ErrParsingConfig, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	switch {
	case c.APIBaseURL == "":
		return fmt.Errorf("%w: api url is empty", ErrInvalidConfig)
	case c.MaxID < 1:
		return fmt.Errorf("%w: max id %d must be positive", ErrInvalidConfig, c.MaxID)
	case c.CreatureID < 0 || c.CreatureID > c.MaxID:
		return fmt.Errorf("%w: creature id %d not in [0,%d]", ErrInvalidConfig, c.CreatureID, c.MaxID)
	case c.HTTPTimeout < 0:
		return fmt.Errorf("%w: negative http timeout", ErrInvalidConfig)
	case c.ToleranceX < 1 || c.ToleranceY < 1:
		return fmt.Errorf("%w: tolerance must be at least 1 cell", ErrInvalidConfig)
	}
	return nil
}
