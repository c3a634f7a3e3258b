package config

// Overrides carries CLI-provided values that take precedence over the
// config file. Zero-value fields fall through to the file config.
type Overrides struct {
	Provider      string // force a single provider by name
	MaxIterations int
	FastMode      bool
	Timeout       int // seconds
}

// Merge applies CLI overrides to a file-based config. CLI values win;
// zero-value CLI fields fall through to file config.
func Merge(fileCfg *Config, cli Overrides) *Config {
	result := *fileCfg

	if cli.MaxIterations > 0 {
		result.MaxIterations = cli.MaxIterations
	}
	if cli.Timeout > 0 {
		result.Timeout = cli.Timeout
	}
	if cli.FastMode {
		result.FastMode = true
	}

	// --provider pins the fallback chain to a single entry.
	if cli.Provider != "" {
		result.FallbackOrder = []string{cli.Provider}
		if result.Providers != nil {
			pruned := make(map[string]ProviderEntry, 1)
			if entry, ok := result.Providers[cli.Provider]; ok {
				pruned[cli.Provider] = entry
			}
			result.Providers = pruned
		}
	}

	return &result
}
