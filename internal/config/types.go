package config

// Config is the resolved application configuration after merging
// defaults, the config file, environment variables, and flags.
type Config struct {
	// DatabasePath is the SQLite database holding the catalog.
	DatabasePath string `koanf:"database"`

	// DataDir holds seed data files (regions, periods).
	DataDir string `koanf:"data_dir"`

	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`

	Lint    LintConfig    `koanf:"lint"`
	BHL     BHLConfig     `koanf:"bhl"`
	ZooBank ZooBankConfig `koanf:"zoobank"`

	// Network reports whether outbound lookups are allowed. Checks
	// that need the network are skipped when false.
	Network bool `koanf:"network"`
}

// LintConfig holds lint-specific settings from the config file.
type LintConfig struct {
	// Disabled lists check labels excluded from default runs, on top
	// of the checks registered as disabled in the catalogs.
	Disabled []string `koanf:"disabled"`
}

// BHLConfig configures the Biodiversity Heritage Library client.
type BHLConfig struct {
	Endpoint string `koanf:"endpoint"`
	APIKey   string `koanf:"api_key"`

	// CacheDir holds cached API responses. Empty disables caching.
	CacheDir string `koanf:"cache_dir"`
}

// ZooBankConfig configures the ZooBank LSID resolver.
type ZooBankConfig struct {
	Endpoint string `koanf:"endpoint"`
}

// CheckDisabled reports whether the config file disables the given
// check label.
func (c *Config) CheckDisabled(label string) bool {
	for _, l := range c.Lint.Disabled {
		if l == label {
			return true
		}
	}
	return false
}
