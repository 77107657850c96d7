package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ExportConfig controls PDF report export rendering.
type ExportConfig struct {
	Title                string `mapstructure:"title"`
	PageSize             string `mapstructure:"pageSize"`
	DateFormat           string `mapstructure:"dateFormat"`
	MaxTextChars         int    `mapstructure:"maxTextChars"`
	AllTimeLookbackYears int    `mapstructure:"allTimeLookbackYears"`
}

func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Title:                "Work Reports",
		PageSize:             "A4",
		DateFormat:           "02 Jan, 2006",
		MaxTextChars:         2000,
		AllTimeLookbackYears: 25,
	}
}

// ExportConfigHolder exposes the current export settings, reloaded on file change.
type ExportConfigHolder struct {
	current atomic.Value // holds ExportConfig
}

func NewExportConfigHolder() (*ExportConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("export")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/staffdeck")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STAFFDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultExportConfig()
		v.SetDefault("export.title", defaults.Title)
		v.SetDefault("export.pageSize", defaults.PageSize)
		v.SetDefault("export.dateFormat", defaults.DateFormat)
		v.SetDefault("export.maxTextChars", defaults.MaxTextChars)
		v.SetDefault("export.allTimeLookbackYears", defaults.AllTimeLookbackYears)
	}

	var cfg ExportConfig
	if err := v.UnmarshalKey("export", &cfg); err != nil {
		return nil, err
	}
	if err := validateExportConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ExportConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ExportConfig
		if err := v.UnmarshalKey("export", &updated); err != nil {
			log.Printf("[export-config] reload failed: %v", err)
			return
		}
		if err := validateExportConfig(updated); err != nil {
			log.Printf("[export-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[export-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *ExportConfigHolder) Get() ExportConfig {
	return h.current.Load().(ExportConfig)
}

func validateExportConfig(cfg ExportConfig) error {
	if strings.TrimSpace(cfg.Title) == "" {
		return errors.New("export.title cannot be empty")
	}
	if cfg.MaxTextChars <= 0 {
		return errors.New("export.maxTextChars must be positive")
	}
	if cfg.AllTimeLookbackYears <= 0 {
		return errors.New("export.allTimeLookbackYears must be positive")
	}
	return nil
}
