package dashboard

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvConfig names the optional YAML config file for the dashboard.
const EnvConfig = "AOE2STAT_CONFIG"

// Config holds dashboard settings.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8420".
	Addr string `koanf:"addr"`

	// Decoder overrides the external decoder command.
	Decoder string `koanf:"decoder"`

	// SaveDir overrides the replay save directory.
	SaveDir string `koanf:"save_dir"`

	// LibraryPath points at the replay catalog database.
	LibraryPath string `koanf:"library_path"`

	// WindowSec is the default metric bin width in seconds.
	WindowSec int `koanf:"window_sec"`

	// Theme selects the chart theme, e.g. "white" or "dark".
	Theme string `koanf:"theme"`
}

// defaults returns the baseline configuration.
func defaults() Config {
	return Config{
		Addr:      ":8420",
		WindowSec: 60,
		Theme:     "white",
	}
}

// LoadConfig layers defaults, an optional YAML file, and environment
// variables.
//
// Order of precedence (low -> high):
//  1. defaults
//  2. file (YAML) if AOE2STAT_CONFIG is set
//  3. env (prefix AOE2STAT_, e.g. AOE2STAT_ADDR, AOE2STAT_WINDOW_SEC)
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Map env keys like AOE2STAT_WINDOW_SEC -> window_sec (flat keys,
	// underscores preserved to match the koanf tags).
	envProvider := env.Provider("AOE2STAT_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "aoe2stat_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.WindowSec <= 0 {
		return nil, errors.New("window_sec must be positive")
	}
	return &cfg, nil
}
