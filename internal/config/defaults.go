package config

// Default locations and endpoints.
const (
	DefaultDatabase = "nomen.db"
	DefaultDataDir  = "data"
	DefaultOutput   = "auto"

	DefaultBHLEndpoint     = "https://www.biodiversitylibrary.org/api3"
	DefaultBHLCacheDir     = ".nomen/bhl-cache"
	DefaultZooBankEndpoint = "https://zoobank.org/api"
)

// defaults is the bottom layer of the configuration merge.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"database":         DefaultDatabase,
		"data_dir":         DefaultDataDir,
		"verbose":          false,
		"output":           DefaultOutput,
		"network":          false,
		"bhl.endpoint":     DefaultBHLEndpoint,
		"bhl.cache_dir":    DefaultBHLCacheDir,
		"zoobank.endpoint": DefaultZooBankEndpoint,
	}
}
