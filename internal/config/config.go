// Package config holds the runtime configuration, loadable from a TOML
// file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"quill/internal/textenc"
	"quill/internal/value"
)

// Configuration is the flat settings block shared by the runtime pieces.
type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`

	// Strict selects the modern evaluation rules: comparisons return
	// bools, scripts lose the legacy coercions.
	Strict bool `toml:"strict"`

	// IgnoreCase makes string comparison case-insensitive by default.
	IgnoreCase bool `toml:"ignore_case"`

	// OldScript re-enables legacy number literal forms.
	OldScript bool `toml:"old_script"`

	// Encoding names the active text encoding for string escapes.
	Encoding string `toml:"encoding"`

	// CompareLimit bounds equality recursion on self-referential
	// containers; CopyDepth bounds deep-copy nesting.
	CompareLimit int `toml:"compare_limit"`
	CopyDepth    int `toml:"copy_depth"`

	LogLevel string `toml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Configuration {
	return Configuration{
		Strict:       true,
		Encoding:     textenc.Default,
		CompareLimit: value.DefaultCompareLimit,
		CopyDepth:    value.DefaultCopyDepth,
		LogLevel:     "error",
	}
}

// Load reads a TOML file over the defaults. A missing file is an error; an
// empty path returns the defaults unchanged.
func Load(path string) (Configuration, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, fmt.Errorf("config file: %w", err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Configuration) validate() error {
	if !textenc.Known(c.Encoding) {
		return fmt.Errorf("unknown encoding: %s", c.Encoding)
	}
	if c.CompareLimit <= 0 {
		return fmt.Errorf("compare_limit must be positive, got %d", c.CompareLimit)
	}
	if c.CopyDepth <= 0 {
		return fmt.Errorf("copy_depth must be positive, got %d", c.CopyDepth)
	}
	return nil
}
