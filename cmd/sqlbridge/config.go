package main

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/queuebridge/sqlbridge/pkg/mapping"
	"github.com/queuebridge/sqlbridge/pkg/mssql"
	"github.com/queuebridge/sqlbridge/pkg/resultlog"
	"github.com/queuebridge/sqlbridge/pkg/source"
)

// Config represents the main configuration structure
type Config struct {
	Server     ServerConfig      `yaml:"server"`
	Log        LogConfig         `yaml:"log,omitempty"`
	Source     SourceConfig      `yaml:"source,omitempty"`
	Mapping    []MappingEntry    `yaml:"mapping,omitempty"`
	Identifier string            `yaml:"identifier,omitempty"`
	Sentinel   string            `yaml:"sentinel,omitempty"`
	ResultLog  resultlog.Config  `yaml:"resultlog,omitempty"`
	Queries    map[string]string `yaml:"queries,omitempty"`
}

// ServerConfig contains SQL Server connection settings
type ServerConfig struct {
	Host        string `yaml:"host"`
	Database    string `yaml:"database,omitempty"`
	User        string `yaml:"user,omitempty"`
	Password    string `yaml:"password,omitempty"`
	WindowsAuth bool   `yaml:"windows_auth,omitempty"`
	Driver      string `yaml:"driver,omitempty"` // native (default) or odbc
}

// LogConfig contains logging settings
type LogConfig struct {
	Level   string `yaml:"level,omitempty"` // debug, info, warn, error
	File    string `yaml:"file,omitempty"`
	Console bool   `yaml:"console"`
}

// SourceConfig contains input file settings
type SourceConfig struct {
	Sheet     string          `yaml:"sheet,omitempty"`
	Delimiter string          `yaml:"delimiter,omitempty"`
	S3        source.S3Config `yaml:"-"`
	S3Raw     S3Settings      `yaml:"s3,omitempty"`
}

// S3Settings mirrors source.S3Config with yaml tags
type S3Settings struct {
	Region    string `yaml:"region,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty"`
}

// MappingEntry is one line of the field-to-column mapping. The list keeps
// file order, later entries override earlier ones.
type MappingEntry struct {
	Field  string `yaml:"field"`
	Column string `yaml:"column"`
}

// LoadConfig loads configuration from YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.setDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig saves configuration to YAML file
func SaveConfig(filename string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" && !c.Log.Console {
		// Совсем без логов не работаем.
		c.Log.Console = true
	}
	if c.Sentinel == "" {
		c.Sentinel = mapping.DefaultSentinel
	}
	if c.Server.Driver == "" {
		c.Server.Driver = "native"
	}
	c.Source.S3 = source.S3Config{
		Region:    c.Source.S3Raw.Region,
		AccessKey: c.Source.S3Raw.AccessKey,
		SecretKey: c.Source.S3Raw.SecretKey,
		Endpoint:  c.Source.S3Raw.Endpoint,
	}
}

// Validate checks the configuration for contradictions before any
// connection attempt.
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return fmt.Errorf("server.host is required")
	}
	if !c.Server.WindowsAuth && c.Server.User == "" {
		return fmt.Errorf("server.user is required unless windows_auth is enabled")
	}
	switch c.Server.Driver {
	case "native", "odbc":
	default:
		return fmt.Errorf("server.driver must be native or odbc, got %q", c.Server.Driver)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.Source.Delimiter != "" && utf8.RuneCountInString(c.Source.Delimiter) != 1 {
		return fmt.Errorf("source.delimiter must be a single character, got %q", c.Source.Delimiter)
	}
	return nil
}

// SessionConfig builds the connection settings for pkg/mssql.
func (c *Config) SessionConfig() mssql.Config {
	cfg := mssql.Config{
		Server:   c.Server.Host,
		Database: c.Server.Database,
		Auth:     mssql.AuthWindows,
	}
	if !c.Server.WindowsAuth {
		cfg.Auth = mssql.AuthSQLCredential
		cfg.User = c.Server.User
		cfg.Password = c.Server.Password
	}
	if c.Server.Driver == "odbc" {
		cfg.Driver = mssql.DriverODBC
	}
	return cfg
}

// MappingEntries converts the config mapping into resolver entries,
// preserving file order.
func (c *Config) MappingEntries() []mapping.Entry {
	entries := make([]mapping.Entry, len(c.Mapping))
	for i, m := range c.Mapping {
		entries[i] = mapping.Entry{Field: m.Field, Column: m.Column}
	}
	return entries
}

// DelimiterRune resolves the CSV delimiter, the flag wins over the config.
func (c *Config) DelimiterRune(override string) (rune, error) {
	s := override
	if s == "" {
		s = c.Source.Delimiter
	}
	if s == "" {
		return ',', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// CreateSampleConfig creates a sample configuration with every section
// filled in.
func CreateSampleConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "localhost\\SQLEXPRESS",
			Database:    "Staging",
			WindowsAuth: true,
			Driver:      "native",
		},
		Log: LogConfig{
			Level:   "info",
			File:    "sqlbridge.log",
			Console: true,
		},
		Source: SourceConfig{
			Sheet:     "",
			Delimiter: ",",
		},
		Mapping: []MappingEntry{
			{Field: "Name", Column: "name"},
			{Field: "Age", Column: "age"},
			{Field: "Notes", Column: mapping.DefaultSentinel},
		},
		Identifier: "id",
		Sentinel:   mapping.DefaultSentinel,
		ResultLog: resultlog.Config{
			Address: "localhost:6379",
			TTL:     3600,
		},
		Queries: map[string]string{
			"row-count": "SELECT COUNT(*) AS total FROM dbo.Person",
		},
	}
}
