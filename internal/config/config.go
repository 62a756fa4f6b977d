package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultCipher = "atbash"

type Config struct {
	Language      string                  `yaml:"language"`
	Theme         string                  `yaml:"theme"`
	Cipher        string                  `yaml:"cipher"`
	Normalize     bool                    `yaml:"normalize"`
	IncludeTables []string                `yaml:"include_tables"`
	ExcludeTables []string                `yaml:"exclude_tables"`
	Tables        map[string]*TableConfig `yaml:"tables"`
}

type TableConfig struct {
	Columns map[string]*TransformConfig `yaml:"columns"`
}

type TransformConfig struct {
	Type string            `yaml:"type"`
	Map  map[string]string `yaml:"map"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills in the cipher for columns listed without a type, so
// that `columns: {body: {}}` or `body:` alone means "cipher this column".
func (c *Config) applyDefaults() {
	for name, tbl := range c.Tables {
		if tbl == nil {
			c.Tables[name] = &TableConfig{}
			continue
		}
		for col, tc := range tbl.Columns {
			if tc == nil {
				tc = &TransformConfig{}
				tbl.Columns[col] = tc
			}
			if tc.Type == "" {
				tc.Type = c.CipherName()
			}
		}
	}
}

func (c *Config) CipherName() string {
	if c == nil || c.Cipher == "" {
		return DefaultCipher
	}
	return c.Cipher
}
