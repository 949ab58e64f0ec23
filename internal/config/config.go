package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/username/workday-calendar/internal/holidays"
	"github.com/username/workday-calendar/pkg/dateutil"
)

// Config represents application configuration
type Config struct {
	Workday  WorkdayConfig  `mapstructure:"workday"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Log      LogConfig      `mapstructure:"log"`
}

// WorkdayConfig represents the daily working window
type WorkdayConfig struct {
	Start           string `mapstructure:"start"` // HH:MM
	Stop            string `mapstructure:"stop"`  // HH:MM
	GapCompensation bool   `mapstructure:"gap_compensation"`
}

// HolidaysConfig represents holiday sources
type HolidaysConfig struct {
	Dates     []string       `mapstructure:"dates"`     // YYYY-MM-DD
	Recurring []string       `mapstructure:"recurring"` // MM-DD
	File      string         `mapstructure:"file"`
	Presets   []string       `mapstructure:"presets"`
	Years     []int          `mapstructure:"years"` // years to pull from file/API/presets
	IsDayOff  IsDayOffConfig `mapstructure:"isdayoff"`
}

// IsDayOffConfig represents isdayoff.ru production calendar settings
type IsDayOffConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BaseURL  string `mapstructure:"base_url"`
	Country  string `mapstructure:"country"`
	CacheTTL string `mapstructure:"cache_ttl"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Every key needs a default so AutomaticEnv can override keys absent from the file
	v.SetDefault("workday.start", "08:00")
	v.SetDefault("workday.stop", "16:00")
	v.SetDefault("workday.gap_compensation", false)
	v.SetDefault("holidays.dates", []string{})
	v.SetDefault("holidays.recurring", []string{})
	v.SetDefault("holidays.file", "")
	v.SetDefault("holidays.presets", []string{})
	v.SetDefault("holidays.years", []int{})
	v.SetDefault("holidays.isdayoff.enabled", false)
	v.SetDefault("holidays.isdayoff.base_url", holidays.DefaultIsDayOffURL)
	v.SetDefault("holidays.isdayoff.country", "")
	v.SetDefault("holidays.isdayoff.cache_ttl", "24h")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.workday")
		v.AddConfigPath("/etc/workday")
	}

	// Read environment variables: WORKDAY_WORKDAY_START, WORKDAY_LOG_LEVEL, ...
	v.SetEnvPrefix("workday")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file; without an explicit path a missing file leaves the defaults
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration.
// The calendar itself accepts any window; a stop at or before start is
// rejected here so that a misconfigured file fails fast.
func (c *Config) Validate() error {
	startHour, startMinute, err := dateutil.ParseClock(c.Workday.Start)
	if err != nil {
		return fmt.Errorf("workday.start: %w", err)
	}
	stopHour, stopMinute, err := dateutil.ParseClock(c.Workday.Stop)
	if err != nil {
		return fmt.Errorf("workday.stop: %w", err)
	}
	if stopHour*60+stopMinute <= startHour*60+startMinute {
		return fmt.Errorf("workday.stop (%s) must be after workday.start (%s)", c.Workday.Stop, c.Workday.Start)
	}

	for _, d := range c.Holidays.Dates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("holidays.dates: invalid date %q", d)
		}
	}
	for _, md := range c.Holidays.Recurring {
		if _, _, err := dateutil.ParseMonthDay(md); err != nil {
			return fmt.Errorf("holidays.recurring: %w", err)
		}
	}
	for _, name := range c.Holidays.Presets {
		if _, err := holidays.NewPresetSource(name); err != nil {
			return fmt.Errorf("holidays.presets: %w", err)
		}
	}

	needsYears := c.Holidays.File != "" || len(c.Holidays.Presets) > 0 || c.Holidays.IsDayOff.Enabled
	if needsYears && len(c.Holidays.Years) == 0 {
		return fmt.Errorf("holidays.years is required when a file, preset or isdayoff source is configured")
	}
	if c.Holidays.IsDayOff.Enabled && c.Holidays.IsDayOff.BaseURL == "" {
		return fmt.Errorf("holidays.isdayoff.base_url is required when isdayoff is enabled")
	}

	return nil
}

// Window returns the workday window as hours and minutes.
// Values are assumed to be validated.
func (c *WorkdayConfig) Window() (startHour, startMinute, stopHour, stopMinute int) {
	startHour, startMinute, _ = dateutil.ParseClock(c.Start)
	stopHour, stopMinute, _ = dateutil.ParseClock(c.Stop)
	return
}

// StaticHolidays returns the dates and recurring days listed in the config
func (c *HolidaysConfig) StaticHolidays() holidays.StaticSource {
	var out holidays.StaticSource
	for _, d := range c.Dates {
		date, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		out = append(out, holidays.Holiday{Date: date, Note: "config"})
	}
	for _, md := range c.Recurring {
		month, day, err := dateutil.ParseMonthDay(md)
		if err != nil {
			continue
		}
		out = append(out, holidays.Holiday{
			Date:      time.Date(2000, month, day, 0, 0, 0, 0, time.UTC),
			Recurring: true,
			Note:      "config",
		})
	}
	return out
}

// GetCacheTTL returns isdayoff cache TTL duration
func (c *IsDayOffConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}
