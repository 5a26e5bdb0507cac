// Package config loads pdfword settings from defaults, an optional YAML
// file and PDFWORD_ environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tsawler/pdfword"
	"github.com/tsawler/pdfword/internal/logging"
	"github.com/tsawler/pdfword/layout"
	"github.com/tsawler/pdfword/tables"
)

// EnvPrefix prefixes every environment override, e.g. PDFWORD_SERVER_PORT.
const EnvPrefix = "PDFWORD"

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Convert ConvertConfig
	Layout  LayoutConfig
	Tables  TablesConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port              string        `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	ConversionTimeout time.Duration `mapstructure:"conversion_timeout"`
	MaxUploadMB       int64         `mapstructure:"max_upload_mb"`
}

// MaxUploadBytes returns the upload limit in bytes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ConvertConfig holds CLI batch conversion settings.
type ConvertConfig struct {
	DefaultTitle string        `mapstructure:"default_title"`
	Concurrency  int           `mapstructure:"concurrency"`
	OutDir       string        `mapstructure:"out_dir"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// LayoutConfig holds line grouping and style thresholds.
type LayoutConfig struct {
	LineQuantum   float64 `mapstructure:"line_quantum"`
	LineTolerance float64 `mapstructure:"line_tolerance"`
	CenterBand    float64 `mapstructure:"center_band"`
	HeadingSize   float64 `mapstructure:"heading_size"`
}

// TablesConfig holds table detection tolerances.
type TablesConfig struct {
	Window           int     `mapstructure:"window"`
	MinRows          int     `mapstructure:"min_rows"`
	Bucket           float64 `mapstructure:"bucket"`
	MatchTolerance   float64 `mapstructure:"match_tolerance"`
	MinSharedColumns int     `mapstructure:"min_shared_columns"`
}

// New returns a viper instance carrying the defaults and the environment
// binding. Callers may bind command-line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.conversion_timeout", "30s")
	v.SetDefault("server.max_upload_mb", 20)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Convert defaults
	v.SetDefault("convert.default_title", pdfword.DefaultTitle)
	v.SetDefault("convert.concurrency", 4)
	v.SetDefault("convert.out_dir", ".")
	v.SetDefault("convert.timeout", "60s")

	// Layout defaults
	lines := layout.DefaultLineConfig()
	styles := layout.DefaultStyleConfig()
	v.SetDefault("layout.line_quantum", lines.Quantum)
	v.SetDefault("layout.line_tolerance", lines.Tolerance)
	v.SetDefault("layout.center_band", styles.CenterBand)
	v.SetDefault("layout.heading_size", styles.HeadingSize)

	// Tables defaults
	tc := tables.DefaultConfig()
	v.SetDefault("tables.window", tc.WindowSize)
	v.SetDefault("tables.min_rows", tc.MinRows)
	v.SetDefault("tables.bucket", tc.BucketSize)
	v.SetDefault("tables.match_tolerance", tc.MatchTolerance)
	v.SetDefault("tables.min_shared_columns", tc.MinSharedColumns)

	return v
}

// Load reads configuration into a Config. When file is empty, pdfword.yaml
// is looked up in the working directory and in ~/.config/pdfword; a missing
// file is not an error. A named file that cannot be read is.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("pdfword")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pdfword"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:              v.GetString("server.port"),
			ReadTimeout:       v.GetDuration("server.read_timeout"),
			WriteTimeout:      v.GetDuration("server.write_timeout"),
			ConversionTimeout: v.GetDuration("server.conversion_timeout"),
			MaxUploadMB:       v.GetInt64("server.max_upload_mb"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Convert: ConvertConfig{
			DefaultTitle: v.GetString("convert.default_title"),
			Concurrency:  v.GetInt("convert.concurrency"),
			OutDir:       v.GetString("convert.out_dir"),
			Timeout:      v.GetDuration("convert.timeout"),
		},
		Layout: LayoutConfig{
			LineQuantum:   v.GetFloat64("layout.line_quantum"),
			LineTolerance: v.GetFloat64("layout.line_tolerance"),
			CenterBand:    v.GetFloat64("layout.center_band"),
			HeadingSize:   v.GetFloat64("layout.heading_size"),
		},
		Tables: TablesConfig{
			Window:           v.GetInt("tables.window"),
			MinRows:          v.GetInt("tables.min_rows"),
			Bucket:           v.GetFloat64("tables.bucket"),
			MatchTolerance:   v.GetFloat64("tables.match_tolerance"),
			MinSharedColumns: v.GetInt("tables.min_shared_columns"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port must be set")
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.Server.ConversionTimeout < 0 {
		return fmt.Errorf("server.conversion_timeout must not be negative, got %s", c.Server.ConversionTimeout)
	}
	if c.Convert.Timeout < 0 {
		return fmt.Errorf("convert.timeout must not be negative, got %s", c.Convert.Timeout)
	}
	if c.Convert.Concurrency < 1 {
		return fmt.Errorf("convert.concurrency must be at least 1, got %d", c.Convert.Concurrency)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if err := c.Tables.detector().Validate(); err != nil {
		return fmt.Errorf("tables: %w", err)
	}
	return nil
}

func (t TablesConfig) detector() tables.Config {
	return tables.Config{
		WindowSize:       t.Window,
		MinRows:          t.MinRows,
		BucketSize:       t.Bucket,
		MatchTolerance:   t.MatchTolerance,
		MinSharedColumns: t.MinSharedColumns,
	}
}

// Converter builds a pdfword.Converter carrying these settings. A nil
// logger discards debug output.
func (c *Config) Converter(logger *slog.Logger) *pdfword.Converter {
	styles := layout.DefaultStyleConfig()
	styles.CenterBand = c.Layout.CenterBand
	styles.HeadingSize = c.Layout.HeadingSize

	return pdfword.New().
		LineConfig(layout.LineConfig{
			Quantum:   c.Layout.LineQuantum,
			Tolerance: c.Layout.LineTolerance,
		}).
		TableConfig(c.Tables.detector()).
		StyleInferencer(layout.NewFontNameInferencerWithConfig(styles)).
		DefaultTitle(c.Convert.DefaultTitle).
		Logger(logger)
}
