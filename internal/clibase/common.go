// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Common holds CLI fields shared by reseg, reseg-import and reseg-export.
type Common struct {
	// Store
	DB     string
	Config string

	// Misc
	Quiet    bool
	LogLevel string
	Examples bool
	Version  bool
}

// sliceValue appends each value to a *[]string (for --read)
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return strings.Join(*s.dst, ",")
}

func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// StringSlice returns a repeatable flag value that appends to dst.
func StringSlice(dst *[]string) flag.Value { return &sliceValue{dst: dst} }

// Register wires shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.StringVar(&c.DB, "db", "", "SQLite read store")
	fs.StringVar(&c.DB, "d", "", "alias of --db")
	fs.StringVar(&c.Config, "config", "", "YAML configuration file")

	fs.BoolVar(&c.Quiet, "quiet", false, "only log errors [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.StringVar(&c.LogLevel, "log-level", "", "log level: debug | info | warn | error [info]")
	fs.BoolVar(&c.Examples, "examples", false, "print usage examples and exit [false]")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
}

// Validate applies shared CLI invariants used by all tools.
// A database may still come from the config file, so it is not required here.
func Validate(c *Common) error {
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("invalid --log-level %q", c.LogLevel)
		}
	}
	if c.Quiet && c.LogLevel != "" && c.LogLevel != "error" {
		return errors.New("--quiet conflicts with --log-level")
	}
	return nil
}

// Level resolves the effective log level; fallback comes from the config file.
func (c Common) Level(fallback string) string {
	switch {
	case c.Quiet:
		return "error"
	case c.LogLevel != "":
		return c.LogLevel
	}
	return fallback
}
