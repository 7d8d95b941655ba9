package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvConfig names the environment variable that points at a config file.
const EnvConfig = "LOX_CONFIG"

// FileName is the config file looked up in the working directory and the
// user config directory.
const FileName = "lox.toml"

// Output formats accepted by [output] format.
const (
	FormatSExpr = "sexpr"
	FormatYAML  = "yaml"
	FormatJSON  = "json"
)

type Config struct {
	Parser ParserConfig `toml:"parser"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
	Log    LogConfig    `toml:"log"`
}

type ParserConfig struct {
	MaxDepth int `toml:"max_depth"`
	MaxArgs  int `toml:"max_args"`
}

type OutputConfig struct {
	Format string `toml:"format"`
}

type CacheConfig struct {
	Enabled bool     `toml:"enabled"`
	Dir     string   `toml:"dir"`
	Keep    int      `toml:"keep"`
	MinAge  Duration `toml:"min_age"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.Cache.Enabled = true
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// keys missing from the file keep these values
	cfg := Config{Cache: CacheConfig{Enabled: true}}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.applyDefaults()
	cfg.Cache.Dir = os.ExpandEnv(cfg.Cache.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by LOX_CONFIG, else the first of
// ./lox.toml and <user config dir>/lox/lox.toml that exists, else the
// defaults.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return Load(path)
	}

	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// SearchPaths lists the default config locations in lookup order.
func SearchPaths() []string {
	paths := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "lox", FileName))
	}
	return paths
}

func (c *Config) applyDefaults() {
	if c.Parser.MaxDepth <= 0 {
		c.Parser.MaxDepth = 1000
	}
	if c.Parser.MaxArgs <= 0 {
		c.Parser.MaxArgs = 255
	}

	if c.Output.Format == "" {
		c.Output.Format = FormatSExpr
	}
	c.Output.Format = strings.ToLower(c.Output.Format)

	if c.Cache.Keep <= 0 {
		c.Cache.Keep = 64
	}
	if c.Cache.MinAge.Duration <= 0 {
		c.Cache.MinAge.Duration = 7 * 24 * time.Hour
	}

	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}

// Validate rejects values no command can work with.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatSExpr, FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("output.format must be one of %s, %s, %s; got %q", FormatSExpr, FormatYAML, FormatJSON, c.Output.Format)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log.level value onto slog.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
