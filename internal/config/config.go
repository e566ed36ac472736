package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/waabox/jobwatch/internal/analyzer"
)

// ThresholdConfig holds the report thresholds. Values are Go durations
// written as TOML strings, e.g. "5m".
type ThresholdConfig struct {
	Warning time.Duration `toml:"warning"`
	Error   time.Duration `toml:"error"`
}

// Config holds all jobwatch configuration.
type Config struct {
	LogFile         string          `toml:"log_file"`
	OutputDir       string          `toml:"output_dir"`
	Format          string          `toml:"format"`
	Schedule        string          `toml:"schedule"`
	MetricsFile     string          `toml:"metrics_file"`
	LogLevel        string          `toml:"log_level"`
	RefreshInterval time.Duration   `toml:"refresh_interval"`
	Thresholds      ThresholdConfig `toml:"thresholds"`
}

const (
	defaultLogFile         = "./logs.log"
	defaultOutputDir       = "./output_logs"
	defaultFormat          = "text"
	defaultLogLevel        = "info"
	defaultRefreshInterval = 5 * time.Second
)

// LogFileOrDefault returns LogFile if set, otherwise ./logs.log.
func (c Config) LogFileOrDefault() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return defaultLogFile
}

// OutputDirOrDefault returns OutputDir if set, otherwise ./output_logs.
func (c Config) OutputDirOrDefault() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return defaultOutputDir
}

// FormatOrDefault returns Format if set, otherwise "text".
func (c Config) FormatOrDefault() string {
	if c.Format != "" {
		return c.Format
	}
	return defaultFormat
}

// LogLevelOrDefault returns LogLevel if set, otherwise "info".
func (c Config) LogLevelOrDefault() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return defaultLogLevel
}

// RefreshIntervalOrDefault returns RefreshInterval if positive, otherwise 5s.
func (c Config) RefreshIntervalOrDefault() time.Duration {
	if c.RefreshInterval > 0 {
		return c.RefreshInterval
	}
	return defaultRefreshInterval
}

// AnalyzerThresholds returns the validated thresholds, filling unset values
// with the analyzer defaults.
func (c Config) AnalyzerThresholds() (analyzer.Thresholds, error) {
	th := analyzer.DefaultThresholds()
	if c.Thresholds.Warning > 0 {
		th.Warning = c.Thresholds.Warning
	}
	if c.Thresholds.Error > 0 {
		th.Error = c.Thresholds.Error
	}
	if err := th.Validate(); err != nil {
		return analyzer.Thresholds{}, fmt.Errorf("invalid thresholds: %w", err)
	}
	return th, nil
}

// Default returns a config with every default written out, suitable for Save.
func Default() Config {
	th := analyzer.DefaultThresholds()
	return Config{
		LogFile:         defaultLogFile,
		OutputDir:       defaultOutputDir,
		Format:          defaultFormat,
		LogLevel:        defaultLogLevel,
		RefreshInterval: defaultRefreshInterval,
		Thresholds:      ThresholdConfig{Warning: th.Warning, Error: th.Error},
	}
}

// LoadFrom reads configuration from the given TOML file path.
// If the file does not exist, it returns an empty config without error.
// Environment variables always take precedence over file values:
//   - JOBWATCH_LOG_FILE           overrides log_file
//   - JOBWATCH_OUTPUT_DIR         overrides output_dir
//   - JOBWATCH_WARNING_THRESHOLD  overrides thresholds.warning
//   - JOBWATCH_ERROR_THRESHOLD    overrides thresholds.error
func LoadFrom(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultConfigPath returns the default path for the jobwatch config file.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return home + "/.config/jobwatch/config.toml"
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("JOBWATCH_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("JOBWATCH_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("JOBWATCH_WARNING_THRESHOLD"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JOBWATCH_WARNING_THRESHOLD: %w", err)
		}
		cfg.Thresholds.Warning = d
	}
	if v := os.Getenv("JOBWATCH_ERROR_THRESHOLD"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JOBWATCH_ERROR_THRESHOLD: %w", err)
		}
		cfg.Thresholds.Error = d
	}
	return nil
}

// Save writes cfg to the given TOML file path, creating parent directories as needed.
// Existing file contents are overwritten. Permissions on the written file are 0600.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	if encErr := toml.NewEncoder(f).Encode(cfg); encErr != nil {
		f.Close()
		return encErr
	}
	return f.Close()
}
