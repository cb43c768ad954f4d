// Package config provides application configuration for pomo.
//
// Timer settings (durations, sound, notifications) live in the shared
// state store so every process sees the same values; this package only
// covers host-level concerns like the data directory and theme.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for the pomo application.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Theme   ThemeConfig   `mapstructure:"theme"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorWork          string `mapstructure:"color_work"`
	ColorBreak         string `mapstructure:"color_break"`
	ColorPaused        string `mapstructure:"color_paused"`
	ColorTitle         string `mapstructure:"color_title"`
	ColorHelp          string `mapstructure:"color_help"`
	WorkGradientStart  string `mapstructure:"work_gradient_start"`
	WorkGradientEnd    string `mapstructure:"work_gradient_end"`
	BreakGradientStart string `mapstructure:"break_gradient_start"`
	BreakGradientEnd   string `mapstructure:"break_gradient_end"`
	IconApp            string `mapstructure:"icon_app"`
	IconStats          string `mapstructure:"icon_stats"`
	IconGit            string `mapstructure:"icon_git"`
	IconPaused         string `mapstructure:"icon_paused"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorWork:          "#E06C75",
		ColorBreak:         "#4ECDC4",
		ColorPaused:        "#6B7280",
		ColorTitle:         "#6B7280",
		ColorHelp:          "#95A5A6",
		WorkGradientStart:  "#E06C75",
		WorkGradientEnd:    "#F7A8B8",
		BreakGradientStart: "#4ECDC4",
		BreakGradientEnd:   "#2ECC71",
		IconApp:            "🍅",
		IconStats:          "📊",
		IconGit:            "🌿",
		IconPaused:         "⏸",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir: "~/.pomo",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the config file, creating it with
// defaults on first run.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.pomo" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".pomo")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("theme.color_work", cfg.Theme.ColorWork)
	viper.Set("theme.color_break", cfg.Theme.ColorBreak)
	viper.Set("theme.color_paused", cfg.Theme.ColorPaused)
	viper.Set("theme.color_title", cfg.Theme.ColorTitle)
	viper.Set("theme.color_help", cfg.Theme.ColorHelp)
	viper.Set("theme.work_gradient_start", cfg.Theme.WorkGradientStart)
	viper.Set("theme.work_gradient_end", cfg.Theme.WorkGradientEnd)
	viper.Set("theme.break_gradient_start", cfg.Theme.BreakGradientStart)
	viper.Set("theme.break_gradient_end", cfg.Theme.BreakGradientEnd)
	viper.Set("theme.icon_app", cfg.Theme.IconApp)
	viper.Set("theme.icon_stats", cfg.Theme.IconStats)
	viper.Set("theme.icon_git", cfg.Theme.IconGit)
	viper.Set("theme.icon_paused", cfg.Theme.IconPaused)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomo", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "pomo.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("storage.data_dir", "~/.pomo")

	defaults := DefaultThemeConfig()
	viper.SetDefault("theme.color_work", defaults.ColorWork)
	viper.SetDefault("theme.color_break", defaults.ColorBreak)
	viper.SetDefault("theme.color_paused", defaults.ColorPaused)
	viper.SetDefault("theme.color_title", defaults.ColorTitle)
	viper.SetDefault("theme.color_help", defaults.ColorHelp)
	viper.SetDefault("theme.work_gradient_start", defaults.WorkGradientStart)
	viper.SetDefault("theme.work_gradient_end", defaults.WorkGradientEnd)
	viper.SetDefault("theme.break_gradient_start", defaults.BreakGradientStart)
	viper.SetDefault("theme.break_gradient_end", defaults.BreakGradientEnd)
	viper.SetDefault("theme.icon_app", defaults.IconApp)
	viper.SetDefault("theme.icon_stats", defaults.IconStats)
	viper.SetDefault("theme.icon_git", defaults.IconGit)
	viper.SetDefault("theme.icon_paused", defaults.IconPaused)
}
