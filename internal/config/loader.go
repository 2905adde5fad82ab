// Package config loads the application configuration.
//
// Precedence (highest to lowest): flags > environment variables
// (NOMEN_ prefix) > nomen.yaml config file > defaults. The config file
// is searched upward from the working directory, so commands work from
// any subdirectory of a project.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the primary name of the config file.
const ConfigFileName = "nomen.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "nomen.yml"

// maxUpwardSearchLevels limits how far up the directory tree to search
// for a config file.
const maxUpwardSearchLevels = 10

// Load merges defaults, the config file, NOMEN_-prefixed environment
// variables, and explicitly set flags into a Config. cfgFile, when
// non-empty, names the config file to use instead of searching. A nil
// flag set is allowed.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, string, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	configFile := cfgFile
	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// NOMEN_BHL_ENDPOINT -> bhl.endpoint
	if err := k.Load(env.Provider("NOMEN_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "NOMEN_"))
		return strings.Replace(key, "_", ".", countSectionSeps(key))
	}), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config: %w", err)
	}

	// Resolve relative paths against the config file's directory, so
	// "nomen lint" finds the same database from any subdirectory.
	if configFile != "" {
		base := filepath.Dir(configFile)
		cfg.DatabasePath = resolveRelativeTo(cfg.DatabasePath, base)
		cfg.DataDir = resolveRelativeTo(cfg.DataDir, base)
		cfg.BHL.CacheDir = resolveRelativeTo(cfg.BHL.CacheDir, base)
	}

	return &cfg, configFile, nil
}

// countSectionSeps returns how many leading underscores to treat as
// section separators. Only the first underscore nests; the rest stay
// part of the key (NOMEN_DATA_DIR -> data_dir, not data.dir).
func countSectionSeps(key string) int {
	for _, section := range []string{"lint_", "bhl_", "zoobank_"} {
		if strings.HasPrefix(key, section) {
			return 1
		}
	}
	return 0
}

// findConfigFile searches upward from the working directory.
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i < maxUpwardSearchLevels; i++ {
		for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func resolveRelativeTo(path, base string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
