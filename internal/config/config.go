package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries the runtime knobs. The source revisions disagreed on merge
// and row-error behavior, so both are explicit flags here instead of baked-in
// defaults.
type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	DatabaseDSN string `env:"DATABASE_DSN"`

	// Merge-mode imports: overwrite rows whose code already exists (true)
	// or skip them (false).
	ImportOverwriteExisting bool `env:"IMPORT_OVERWRITE_EXISTING" envDefault:"true"`
	// Strict imports reject the whole batch on the first bad row instead of
	// coercing and reporting per row.
	ImportStrictRows bool `env:"IMPORT_STRICT_ROWS" envDefault:"false"`
	// Category stamped on uploads that do not select one.
	ImportDefaultCategory string `env:"IMPORT_DEFAULT_CATEGORY" envDefault:"99"`
}

// Load reads .env when present, then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
