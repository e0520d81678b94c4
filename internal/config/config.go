// Package config loads pagestore settings from an INI file, following
// the same load-with-defaults convention as the teacher's server config.
package config

import (
	"gopkg.in/ini.v1"
)

const (
	// DefaultPageSize is the compile-time page size (spec.md §3).
	DefaultPageSize = 4096
	DefaultPoolSize = 64
	DefaultStrategy = "LRU"
)

// Config holds the knobs this storage core needs.
type Config struct {
	PageSize     int    `ini:"page_size"`
	PoolSize     int    `ini:"pool_size"`
	Strategy     string `ini:"strategy"` // FIFO | LRU | LRU_K
	PageFilePath string `ini:"page_file"`
	LogLevel     string `ini:"log_level"`
}

// Default returns a Config populated with the package defaults.
func Default() Config {
	return Config{
		PageSize: DefaultPageSize,
		PoolSize: DefaultPoolSize,
		Strategy: DefaultStrategy,
		LogLevel: "info",
	}
}

// Load reads path (an INI file) over the defaults; missing keys keep
// their default value, matching server/conf/config.go's behavior.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := ini.Load(path)
	if err != nil {
		return Config{}, err
	}

	section := raw.Section("pagestore")
	if v := section.Key("page_size").MustInt(0); v > 0 {
		cfg.PageSize = v
	}
	if v := section.Key("pool_size").MustInt(0); v > 0 {
		cfg.PoolSize = v
	}
	if v := section.Key("strategy").String(); v != "" {
		cfg.Strategy = v
	}
	if v := section.Key("page_file").String(); v != "" {
		cfg.PageFilePath = v
	}
	if v := section.Key("log_level").String(); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}
