package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/reqlint/internal/validation/conflict"
	"github.com/harrison/reqlint/internal/validation/rubric"
)

// Config represents reqlint configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Format selects the lint output renderer (text, json)
	Format string `yaml:"format"`

	// BannedWords replaces the built-in vague term list when set
	BannedWords []string `yaml:"banned_words"`

	// ExtraBannedWords extends whichever banned list is in effect
	ExtraBannedWords []string `yaml:"extra_banned_words"`

	// AvailabilityTolerance is the largest tolerated availability spread in percentage points
	AvailabilityTolerance float64 `yaml:"availability_tolerance"`

	// LatencyRatio is the largest tolerated max/min latency ratio
	LatencyRatio float64 `yaml:"latency_ratio"`

	// ReportDir is where advisory reports are written
	ReportDir string `yaml:"report_dir"`

	// WatchDebounce delays re-analysis after a burst of file changes
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// Output formats accepted by Validate
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:              "info",
		Format:                FormatText,
		BannedWords:           nil, // built-in list
		ExtraBannedWords:      nil,
		AvailabilityTolerance: conflict.DefaultAvailabilityTolerance,
		LatencyRatio:          conflict.DefaultLatencyRatio,
		ReportDir:             filepath.Join("docs", "reviews"),
		WatchDebounce:         500 * time.Millisecond,
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields the defaults; a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are read as strings so "750ms" style values parse
	type yamlConfig struct {
		LogLevel              string   `yaml:"log_level"`
		Format                string   `yaml:"format"`
		BannedWords           []string `yaml:"banned_words"`
		ExtraBannedWords      []string `yaml:"extra_banned_words"`
		AvailabilityTolerance *float64 `yaml:"availability_tolerance"`
		LatencyRatio          *float64 `yaml:"latency_ratio"`
		ReportDir             string   `yaml:"report_dir"`
		WatchDebounce         string   `yaml:"watch_debounce"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(yamlCfg.LogLevel)
	}
	if yamlCfg.Format != "" {
		cfg.Format = strings.ToLower(yamlCfg.Format)
	}
	// Pointers keep an explicit 0 tolerance apart from an absent key
	if yamlCfg.AvailabilityTolerance != nil {
		cfg.AvailabilityTolerance = *yamlCfg.AvailabilityTolerance
	}
	if yamlCfg.LatencyRatio != nil {
		cfg.LatencyRatio = *yamlCfg.LatencyRatio
	}
	if yamlCfg.ReportDir != "" {
		cfg.ReportDir = yamlCfg.ReportDir
	}
	if yamlCfg.WatchDebounce != "" {
		debounce, err := time.ParseDuration(yamlCfg.WatchDebounce)
		if err != nil {
			return nil, fmt.Errorf("invalid watch_debounce format %q: %w", yamlCfg.WatchDebounce, err)
		}
		cfg.WatchDebounce = debounce
	}
	cfg.ExtraBannedWords = yamlCfg.ExtraBannedWords

	// An explicit banned_words key replaces the built-in list, even when empty
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if _, exists := rawMap["banned_words"]; exists {
			cfg.BannedWords = yamlCfg.BannedWords
			if cfg.BannedWords == nil {
				cfg.BannedWords = []string{}
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .reqlint/config.yaml in the specified directory
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DirName, FileName))
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values; extra banned words
// are appended.
func (c *Config) MergeWithFlags(logLevel *string, format *string, availabilityTolerance *float64, latencyRatio *float64, extraBannedWords []string) {
	if logLevel != nil {
		c.LogLevel = strings.ToLower(*logLevel)
	}
	if format != nil {
		c.Format = strings.ToLower(*format)
	}
	if availabilityTolerance != nil {
		c.AvailabilityTolerance = *availabilityTolerance
	}
	if latencyRatio != nil {
		c.LatencyRatio = *latencyRatio
	}
	if len(extraBannedWords) > 0 {
		c.ExtraBannedWords = append(c.ExtraBannedWords, extraBannedWords...)
	}
}

// EffectiveBannedWords returns the vague term list analysis should use:
// BannedWords (or the built-in list) followed by ExtraBannedWords, without
// duplicates.
func (c *Config) EffectiveBannedWords() []string {
	base := c.BannedWords
	if base == nil {
		base = rubric.DefaultBannedWords()
	}

	seen := make(map[string]bool, len(base)+len(c.ExtraBannedWords))
	words := make([]string, 0, len(base)+len(c.ExtraBannedWords))
	for _, list := range [][]string{base, c.ExtraBannedWords} {
		for _, w := range list {
			key := strings.ToLower(strings.TrimSpace(w))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			words = append(words, key)
		}
	}
	return words
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("invalid format %q, must be one of: %s, %s", c.Format, FormatText, FormatJSON)
	}

	if c.AvailabilityTolerance < 0 {
		return fmt.Errorf("availability_tolerance must be >= 0, got %g", c.AvailabilityTolerance)
	}

	if c.LatencyRatio < 1 {
		return fmt.Errorf("latency_ratio must be >= 1, got %g", c.LatencyRatio)
	}

	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must be >= 0, got %v", c.WatchDebounce)
	}

	if strings.TrimSpace(c.ReportDir) == "" {
		return fmt.Errorf("report_dir cannot be empty")
	}

	return nil
}
