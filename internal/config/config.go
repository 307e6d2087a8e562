// Package config loads and saves the rollcall configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage engines.
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
	EngineMySQL    = "mysql"
)

const (
	dirName  = ".rollcall"
	fileName = "config.yaml"

	defaultHouseBioURL  = "https://archives.house.state.pa.us/people/member-biography?ID={number}"
	defaultSenateBioURL = "https://www.legis.state.pa.us/cfdocs/legis/BiosHistory/MemBio.cfm?ID={number}&body=S"
)

// Config represents the rollcall configuration.
type Config struct {
	Database  DatabaseConfig `yaml:"database"`
	Nicknames NicknameConfig `yaml:"nicknames"`
	Report    ReportConfig   `yaml:"report"`
}

// DatabaseConfig selects the storage engine.
type DatabaseConfig struct {
	Engine string `yaml:"engine"`
	Path   string `yaml:"path,omitempty"` // sqlite only; defaults to ~/.rollcall/rollcall.db
	DSN    string `yaml:"dsn,omitempty"`  // postgres and mysql
}

// NicknameConfig extends or replaces the built-in nickname table.
type NicknameConfig struct {
	File      string      `yaml:"file,omitempty"` // replaces the embedded table
	Overrides [][2]string `yaml:"overrides,omitempty"`
	Canonical []string    `yaml:"canonical,omitempty"`
}

// ReportConfig holds biography URL templates; {number} is replaced by the
// member's archive id.
type ReportConfig struct {
	HouseBioURL  string `yaml:"house_bio_url"`
	SenateBioURL string `yaml:"senate_bio_url"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Engine: EngineSQLite},
		Report: ReportConfig{
			HouseBioURL:  defaultHouseBioURL,
			SenateBioURL: defaultSenateBioURL,
		},
	}
}

// Path returns the config file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, dirName, fileName)
}

// LoadConfig reads .rollcall/config.yaml from the specified directory.
// A missing file yields the defaults.
func LoadConfig(dir string) (*Config, error) {
	cfg, err := LoadFile(Path(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads a config file. Unset fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes config.yaml to directory
func SaveConfig(dir string, cfg *Config) error {
	rollcallDir := filepath.Join(dir, dirName)
	if err := os.MkdirAll(rollcallDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", dirName, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks the engine settings.
func (c *Config) Validate() error {
	switch c.Database.Engine {
	case EngineSQLite:
	case EnginePostgres, EngineMySQL:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for %s", c.Database.Engine)
		}
	default:
		return fmt.Errorf("unknown database engine %q", c.Database.Engine)
	}
	return nil
}

// BioURL fills a biography URL template with an archive id.
func BioURL(template string, number int64) string {
	return strings.ReplaceAll(template, "{number}", strconv.FormatInt(number, 10))
}
