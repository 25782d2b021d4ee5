package beacon

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings needed to build an HTTPClient: where to
// reach the beacon network, how long to wait, and how hard a single
// process may hammer it.
type Config struct {
	BaseURL        string        `yaml:"baseUrl"`
	Timeout        time.Duration `yaml:"timeout"`
	RateLimitRPS   float64       `yaml:"rateLimitRps"`
	RateLimitBurst int           `yaml:"rateLimitBurst"`
}

// DefaultConfig returns the settings used when no config file is
// present: drand's public mainnet default gateway, a 10s timeout, and
// a modest per-endpoint rate limit.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "https://api.drand.sh",
		Timeout:        10 * time.Second,
		RateLimitRPS:   5,
		RateLimitBurst: 10,
	}
}

type fileConfig struct {
	Beacon Config `yaml:"beacon"`
}

// LoadFromPath loads beacon settings from a YAML config file, falling
// back to DefaultConfig for any field the file doesn't set and for any
// error reading or parsing it.
func LoadFromPath(configPath string) Config {
	cfg := DefaultConfig()
	if configPath == "" {
		return cfg
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg
	}

	var parsed fileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg
	}

	merge(&cfg, parsed.Beacon)
	return cfg
}

func merge(dst *Config, src Config) {
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if src.RateLimitRPS != 0 {
		dst.RateLimitRPS = src.RateLimitRPS
	}
	if src.RateLimitBurst != 0 {
		dst.RateLimitBurst = src.RateLimitBurst
	}
}
