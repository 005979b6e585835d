// internal/cmdutil/config.go
package cmdutil

import (
	"errors"

	"reseg/internal/clibase"
	"reseg/internal/config"
)

// LoadConfig resolves the configuration of the shared flags: the file named
// by --config (or the defaults) with --db and the log flags on top.
// A database is required.
func LoadConfig(c clibase.Common) (config.Config, error) {
	cfg := config.Default()
	if c.Config != "" {
		var err error
		if cfg, err = config.Load(c.Config); err != nil {
			return config.Config{}, err
		}
	}
	if c.DB != "" {
		cfg.DB = c.DB
	}
	cfg.LogLevel = c.Level(cfg.LogLevel)
	if cfg.DB == "" {
		return config.Config{}, errors.New("--db is required")
	}
	return cfg, nil
}
