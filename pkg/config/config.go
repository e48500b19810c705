/*
Package config manages TOML config for WordServe services.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordserve/internal/utils"
	"github.com/bastiangx/wordserve/pkg/dictionary"
	"github.com/bastiangx/wordserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// ErrConfigNotFound is returned when an explicitly requested config file is missing.
var ErrConfigNotFound = errors.New("config file not found")

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit     int `toml:"max_limit"`
	DefaultLimit int `toml:"default_limit"`
	MinPrefix    int `toml:"min_prefix"`
	MaxPrefix    int `toml:"max_prefix"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path    string `toml:"path"`
	Format  string `toml:"format"`
	Backend string `toml:"backend"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// GetConfigDir returns the first writable of ~/.config/wordserve and the
// executable's directory.
func GetConfigDir() (string, error) {
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".config", "wordserve")
		if utils.CheckDirStatus(dir).Writable {
			return dir, nil
		}
	}
	return utils.GetExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfigWithPriority returns the config and the file it came from.
// An explicit path must exist and load; otherwise the default file is read
// (and created on first run). When no file can be used the builtin defaults
// are returned with an empty path.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if !utils.FileExists(customConfigPath) {
			return nil, "", fmt.Errorf("%w: %s", ErrConfigNotFound, customConfigPath)
		}
		cfg, err := LoadConfig(customConfigPath)
		return cfg, customConfigPath, err
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("No config directory (%v), using builtin defaults", err)
		return DefaultConfig(), "", nil
	}
	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Config at %s unusable (%v), using builtin defaults", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	return cfg, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			DefaultLimit: 10,
			MinPrefix:    1,
			MaxPrefix:    60,
		},
		Dict: DictConfig{
			Path:    "data/words.txt",
			Format:  "auto",
			Backend: string(suggest.BackendTrie),
		},
		CLI: CliConfig{
			DefaultLimit:    24,
			DefaultMinLen:   1,
			DefaultMaxLen:   24,
			DefaultNoFilter: false,
		},
	}
}

// InitConfig writes the defaults to configPath when it does not exist yet,
// then loads it.
func InitConfig(configPath string) (*Config, error) {
	if utils.FileExists(configPath) {
		return LoadConfig(configPath)
	}
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := SaveConfig(cfg, configPath); err != nil {
		return nil, err
	}
	log.Debugf("Created default config file at: %s", configPath)
	return cfg, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.Validate()
	return config, nil
}

// tryPartialParse keeps every section that still decodes on its own
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(dictSection, &config.Dict)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	config.Validate()
	return config, nil
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		server.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
}

// extractDictConfig extracts dictionary configuration from a map
func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractString(data, "format"); ok {
		dict.Format = val
	}
	if val, ok := utils.ExtractString(data, "backend"); ok {
		dict.Backend = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_min_len"); ok {
		cli.DefaultMinLen = val
	}
	if val, ok := utils.ExtractInt64(data, "default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
}

// Validate replaces out-of-range values with defaults and logs each fix.
func (c *Config) Validate() {
	def := DefaultConfig()

	if c.Server.MaxLimit < 1 {
		log.Warnf("server.max_limit %d < 1, using %d", c.Server.MaxLimit, def.Server.MaxLimit)
		c.Server.MaxLimit = def.Server.MaxLimit
	}
	if c.Server.DefaultLimit < 1 || c.Server.DefaultLimit > c.Server.MaxLimit {
		fixed := min(def.Server.DefaultLimit, c.Server.MaxLimit)
		log.Warnf("server.default_limit %d outside [1, %d], using %d", c.Server.DefaultLimit, c.Server.MaxLimit, fixed)
		c.Server.DefaultLimit = fixed
	}
	if c.Server.MinPrefix < 0 {
		log.Warnf("server.min_prefix %d < 0, using 0", c.Server.MinPrefix)
		c.Server.MinPrefix = 0
	}
	if c.Server.MaxPrefix < c.Server.MinPrefix {
		fixed := max(def.Server.MaxPrefix, c.Server.MinPrefix)
		log.Warnf("server.max_prefix %d < min_prefix %d, using %d", c.Server.MaxPrefix, c.Server.MinPrefix, fixed)
		c.Server.MaxPrefix = fixed
	}
	if _, err := suggest.ParseBackend(c.Dict.Backend); err != nil {
		log.Warnf("dict.backend: %v, using %s", err, def.Dict.Backend)
		c.Dict.Backend = def.Dict.Backend
	}
	if _, err := dictionary.ParseFormat(c.Dict.Format); err != nil {
		log.Warnf("dict.format: %v, using %s", err, def.Dict.Format)
		c.Dict.Format = def.Dict.Format
	}
	if c.CLI.DefaultLimit < 1 {
		c.CLI.DefaultLimit = def.CLI.DefaultLimit
	}
}

// Backend returns the configured backend, already checked by Validate.
func (c *Config) Backend() suggest.Backend {
	b, err := suggest.ParseBackend(c.Dict.Backend)
	if err != nil {
		return suggest.BackendTrie
	}
	return b
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
