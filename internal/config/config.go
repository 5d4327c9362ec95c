// ABOUTME: Pitchside configuration loaded from file and PITCHSIDE_ env vars.
// ABOUTME: Accessors supply defaults and build loader sources and pipeline options.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/harperreed/pitchside/internal/models"
	"github.com/harperreed/pitchside/internal/pipeline"
	"github.com/harperreed/pitchside/internal/storage"
)

// EnvPrefix prefixes every environment override, e.g. PITCHSIDE_DATA_DIR.
const EnvPrefix = "PITCHSIDE"

// Default values for settings that are not dates.
const (
	DefaultLogMode  = "dev"
	DefaultLogLevel = "info"
	DefaultHTTPAddr = "127.0.0.1:8050"
	DefaultDataDir  = "data"
)

// Config stores pitchside settings. Dates use YYYY-MM-DD.
type Config struct {
	// DataDir holds the input CSV files. Supports ~ expansion.
	DataDir string `json:"data_dir,omitempty" yaml:"data_dir,omitempty" mapstructure:"data_dir"`

	// Sources overrides file name, delimiter or date layout per input.
	Sources map[storage.SourceID]storage.SourceSpec `json:"sources,omitempty" yaml:"sources,omitempty" mapstructure:"sources"`

	// ReferenceDate ends the trailing 7-day recovery summary.
	ReferenceDate string `json:"reference_date,omitempty" yaml:"reference_date,omitempty" mapstructure:"reference_date"`

	// WindowStart and WindowEnd bound the GPS sessions kept for load charts.
	WindowStart string `json:"window_start,omitempty" yaml:"window_start,omitempty" mapstructure:"window_start"`
	WindowEnd   string `json:"window_end,omitempty" yaml:"window_end,omitempty" mapstructure:"window_end"`

	OwnTeamID             int     `json:"own_team_id,omitempty" yaml:"own_team_id,omitempty" mapstructure:"own_team_id"`
	CompletenessThreshold float64 `json:"completeness_threshold,omitempty" yaml:"completeness_threshold,omitempty" mapstructure:"completeness_threshold"`
	Workers               int     `json:"workers,omitempty" yaml:"workers,omitempty" mapstructure:"workers"`

	LogMode  string `json:"log_mode,omitempty" yaml:"log_mode,omitempty" mapstructure:"log_mode"`
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" mapstructure:"log_level"`
	HTTPAddr string `json:"http_addr,omitempty" yaml:"http_addr,omitempty" mapstructure:"http_addr"`
}

// envKeys are the scalar settings that can be overridden from the environment.
var envKeys = []string{
	"data_dir", "reference_date", "window_start", "window_end", "own_team_id",
	"completeness_threshold", "workers", "log_mode", "log_level", "http_addr",
}

// GetDataDir returns the input directory with ~ expanded.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DefaultDataDir
	}
	return ExpandPath(c.DataDir)
}

// GetSources returns the default sources with the configured overrides applied.
func (c *Config) GetSources() (map[storage.SourceID]storage.SourceSpec, error) {
	return storage.MergeSources(c.Sources)
}

// GetLogMode returns the log mode, defaulting to "dev".
func (c *Config) GetLogMode() string {
	if c.LogMode == "" {
		return DefaultLogMode
	}
	return c.LogMode
}

// GetLogLevel returns the log level, defaulting to "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}

// GetHTTPAddr returns the listen address for the HTTP API.
func (c *Config) GetHTTPAddr() string {
	if c.HTTPAddr == "" {
		return DefaultHTTPAddr
	}
	return c.HTTPAddr
}

// PipelineOptions converts the settings into pipeline options. Unset values
// keep the pipeline defaults; today is used for ages.
func (c *Config) PipelineOptions(today time.Time) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	opts.Today = models.Truncate(today)

	var err error
	if opts.ReferenceDate, err = parseDate("reference_date", c.ReferenceDate, opts.ReferenceDate); err != nil {
		return opts, err
	}
	if opts.WindowStart, err = parseDate("window_start", c.WindowStart, opts.WindowStart); err != nil {
		return opts, err
	}
	if opts.WindowEnd, err = parseDate("window_end", c.WindowEnd, opts.WindowEnd); err != nil {
		return opts, err
	}
	if opts.WindowEnd.Before(opts.WindowStart) {
		return opts, fmt.Errorf("window_end %s is before window_start %s",
			models.FormatDay(opts.WindowEnd), models.FormatDay(opts.WindowStart))
	}

	if c.OwnTeamID != 0 {
		opts.OwnTeamID = c.OwnTeamID
	}
	if c.CompletenessThreshold != 0 {
		if c.CompletenessThreshold < 0 || c.CompletenessThreshold >= 1 {
			return opts, fmt.Errorf("completeness_threshold must be in [0, 1), got %v", c.CompletenessThreshold)
		}
		opts.CompletenessThreshold = c.CompletenessThreshold
	}
	if c.Workers < 0 {
		return opts, fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Workers > 0 {
		opts.Workers = c.Workers
	}
	return opts, nil
}

func parseDate(key, value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := models.ParseDay(models.DayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the default config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "pitchside", "config.yaml")
}

// Load reads config from path, or from GetConfigPath when path is empty. A
// missing file yields an empty config; environment overrides apply either way.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to path as YAML, or to GetConfigPath when path is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		path = GetConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
