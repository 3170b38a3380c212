package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvVar names the environment variable holding an explicit config path.
const EnvVar = "WHILEC_CONFIG"

// Config holds the complete toolchain configuration
type Config struct {
	Log     LogConfig     `toml:"log"`
	Output  OutputConfig  `toml:"output"`
	History HistoryConfig `toml:"history"`
	Editor  EditorConfig  `toml:"editor"`
}

// LogConfig holds commonlog settings
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"` // empty: stderr
}

// OutputConfig controls how reports are rendered
type OutputConfig struct {
	Format string `toml:"format"` // text, json or yaml
	Color  bool   `toml:"color"`
}

// HistoryConfig holds the compile history store settings
type HistoryConfig struct {
	Enabled   bool     `toml:"enabled"`
	Path      string   `toml:"path"`
	Limit     int      `toml:"limit"`
	Retention Duration `toml:"retention"`
}

// EditorConfig holds terminal editor settings
type EditorConfig struct {
	TabWidth int `toml:"tab_width"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is found
func Default() *Config {
	cfg := &Config{
		Output: OutputConfig{Color: true},
	}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML file. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := Config{Output: OutputConfig{Color: true}}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// Discover loads the first config found in: explicit, $WHILEC_CONFIG,
// ./whilec.toml, ~/.config/whilec/config.toml. An explicit path that does not
// exist is an error; finding nothing at all yields Default().
func Discover(explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}

	if path := os.Getenv(EnvVar); path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	for _, p := range defaultPaths() {
		if _, err := os.Stat(p); err == nil {
			cfg, err := Load(p)
			return cfg, p, err
		}
	}

	return Default(), "", nil
}

func defaultPaths() []string {
	paths := []string{"./whilec.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "whilec", "config.toml"))
	}
	return paths
}

// Validate checks values that have a closed set of options
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format must be text, json or yaml, got %q", c.Output.Format)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative")
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width must be between 1 and 16, got %d", c.Editor.TabWidth)
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}

	if c.History.Path == "" {
		c.History.Path = "$HOME/.local/share/whilec/history.db"
	}
	if c.History.Limit == 0 {
		c.History.Limit = 20
	}
	if c.History.Retention.Duration == 0 {
		c.History.Retention.Duration = 30 * 24 * time.Hour
	}

	if c.Editor.TabWidth == 0 {
		c.Editor.TabWidth = 4
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Log.File = os.ExpandEnv(c.Log.File)
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// LogPath returns the log file for commonlog.Configure, nil for stderr
func (c *Config) LogPath() *string {
	if c.Log.File == "" {
		return nil
	}
	return &c.Log.File
}
