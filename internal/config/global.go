package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in
// ~/.config/bibmend/config.yml.
type GlobalConfig struct {
	// CharsTable is the default special-character substitution table.
	CharsTable string `yaml:"chars_table,omitempty"`
	// JournalsTable is the default journal-equivalence table.
	JournalsTable string `yaml:"journals_table,omitempty"`
	// KeyPrefix is the default prefix for generated citation keys.
	KeyPrefix string `yaml:"key_prefix,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "bibmend"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/bibmend/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file, then applies
// BIBMEND_* environment overrides. A missing file yields defaults, not an
// error.
func LoadGlobalConfig() (*GlobalConfig, error) {
	cfg := &GlobalConfig{}

	path := GlobalConfigPath()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults
		case err != nil:
			return nil, fmt.Errorf("reading global config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing global config: %w", err)
			}
		}
	}

	if v := os.Getenv("BIBMEND_CHARS_TABLE"); v != "" {
		cfg.CharsTable = v
	}
	if v := os.Getenv("BIBMEND_JOURNALS_TABLE"); v != "" {
		cfg.JournalsTable = v
	}
	if v := os.Getenv("BIBMEND_KEY_PREFIX"); v != "" {
		cfg.KeyPrefix = v
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "ref"
	}

	return cfg, nil
}

// Save writes the global configuration file, creating its directory if
// needed.
func (c *GlobalConfig) Save() error {
	path := GlobalConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding global config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}

	return nil
}
