// Package config handles loading noteit config.toml files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/amonks/noteit/api"
	"github.com/amonks/noteit/internal/paths"
)

// APIURLEnvVar overrides the configured API base URL.
const APIURLEnvVar = "NOTEIT_API_URL"

// DefaultLogLevel is used when no level is configured.
const DefaultLogLevel = "warn"

// Config represents the noteit configuration file.
type Config struct {
	API API `toml:"api"`
	Log Log `toml:"log"`
}

// API contains REST API configuration.
type API struct {
	// URL is the base URL every request path is appended to.
	URL string `toml:"url"`
}

// Log contains logging configuration.
type Log struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
}

// Load reads the global config file and layers overridePath on top of it.
// Missing files yield an empty config.
func Load(overridePath string) (*Config, error) {
	globalPath, err := paths.DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	if overridePath == "" {
		return mergeConfigs(globalCfg, nil, globalMeta, toml.MetaData{}), nil
	}

	if _, err := os.Stat(overridePath); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", overridePath, err)
	}
	overrideCfg, overrideMeta, err := loadConfigFile(overridePath)
	if err != nil {
		return nil, err
	}

	return mergeConfigs(globalCfg, overrideCfg, globalMeta, overrideMeta), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, overrideCfg *Config, globalMeta, overrideMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if overrideCfg == nil {
		overrideCfg = &Config{}
	}

	merged := Config{}
	merged.API.URL = mergeString(overrideMeta.IsDefined("api", "url"), overrideCfg.API.URL, globalCfg.API.URL)
	merged.Log.Level = mergeString(overrideMeta.IsDefined("log", "level"), overrideCfg.Log.Level, globalCfg.Log.Level)
	return &merged
}

func mergeString(overrideDefined bool, overrideValue, globalValue string) string {
	value := globalValue
	if overrideDefined {
		value = overrideValue
	}
	return strings.TrimSpace(value)
}

// ResolveAPIURL picks the API base URL: flagValue, then NOTEIT_API_URL,
// then the config file, then api.DefaultBaseURL.
func (c *Config) ResolveAPIURL(flagValue string) string {
	if value := strings.TrimSpace(flagValue); value != "" {
		return value
	}
	if value := strings.TrimSpace(os.Getenv(APIURLEnvVar)); value != "" {
		return value
	}
	if c != nil && c.API.URL != "" {
		return c.API.URL
	}
	return api.DefaultBaseURL
}

// ResolveLogLevel picks the log level: flagValue, then the config file,
// then DefaultLogLevel.
func (c *Config) ResolveLogLevel(flagValue string) (slog.Level, error) {
	value := strings.TrimSpace(flagValue)
	if value == "" && c != nil {
		value = c.Log.Level
	}
	if value == "" {
		value = DefaultLogLevel
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", value, err)
	}
	return level, nil
}
