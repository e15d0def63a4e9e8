package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Output format constants
	FormatZip  = "zip"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	// MCP mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultFormat      = FormatZip
	DefaultSchema      = "quote"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
)

// Config holds all configuration for the quote extraction tools.
type Config struct {
	// Batch configuration
	InputDir   string
	OutputPath string
	Format     string

	// Schema configuration: "quote" for the built-in family, otherwise a
	// path to a YAML schema side file.
	Schema string

	// MCP server configuration
	Mode string

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		InputDir:    currentDir,
		OutputPath:  "extraction_output.zip",
		Format:      DefaultFormat,
		Schema:      DefaultSchema,
		Mode:        ModeStdio,
		Version:     "1.0.0",
		ServerName:  "quote-extractor",
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and environment variables.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.InputDir != "" {
		if expandedPath, err := filepath.Abs(cfg.InputDir); err == nil {
			cfg.InputDir = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("QUOTE_EXTRACTOR")
	viper.AutomaticEnv()

	viper.SetDefault("dir", cfg.InputDir)
	viper.SetDefault("out", cfg.OutputPath)
	viper.SetDefault("format", cfg.Format)
	viper.SetDefault("schema", cfg.Schema)
	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("dir", cfg.InputDir, "Directory containing quote PDFs")
	pflag.String("out", cfg.OutputPath, "Output path for the extraction artifact")
	pflag.String("format", cfg.Format, "Output format: 'zip', 'csv' or 'xlsx'")
	pflag.String("schema", cfg.Schema, "Schema: 'quote' or path to a YAML schema file")
	pflag.String("mode", cfg.Mode, "MCP transport: 'stdio' or 'server'")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("format", pflag.Lookup("format"))
	_ = viper.BindPFlag("schema", pflag.Lookup("schema"))
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// populateConfigFromViper fills the config struct from viper values.
func populateConfigFromViper(cfg *Config) {
	cfg.InputDir = viper.GetString("dir")
	cfg.OutputPath = viper.GetString("out")
	cfg.Format = viper.GetString("format")
	cfg.Schema = viper.GetString("schema")
	cfg.Mode = viper.GetString("mode")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatZip, FormatCSV, FormatXLSX:
	default:
		return fmt.Errorf("invalid format: %q (must be %q, %q or %q)", c.Format, FormatZip, FormatCSV, FormatXLSX)
	}

	switch c.Mode {
	case ModeStdio, ModeServer:
	default:
		return fmt.Errorf("invalid mode: %q (must be %q or %q)", c.Mode, ModeStdio, ModeServer)
	}

	if c.MaxFileSize <= 0 {
		return fmt.Errorf("maxfilesize must be positive")
	}

	if c.Schema == "" {
		return fmt.Errorf("schema cannot be empty")
	}

	return nil
}

// IsStdioMode reports whether the MCP surface runs over stdio.
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// IsDebug reports whether debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}
