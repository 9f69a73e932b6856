// Package config provides Viper-based configuration loading for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Silcet/rpg-cli/internal/game"
)

// DataConfig holds persistence settings.
type DataConfig struct {
	// Dir is the directory holding the saved game and optional config file.
	Dir string `mapstructure:"dir"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// BalanceConfig holds the encounter tuning knobs.
type BalanceConfig struct {
	// EnemySpawnChancePct is the per-step encounter chance away from home.
	EnemySpawnChancePct int `mapstructure:"enemy_spawn_chance_pct"`
	// ChestChancePct is the per-inspect chance of finding a treasure chest.
	ChestChancePct int `mapstructure:"chest_chance_pct"`
}

// Balance converts the config section into game balance knobs.
func (b BalanceConfig) Balance() game.Balance {
	return game.Balance{
		EnemySpawnChancePct: b.EnemySpawnChancePct,
		ChestChancePct:      b.ChestChancePct,
	}
}

// Config is the top-level application configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Logging LoggingConfig `mapstructure:"logging"`
	Balance BalanceConfig `mapstructure:"balance"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateData(c.Data); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBalance(c.Balance); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateData(d DataConfig) error {
	if d.Dir == "" {
		return fmt.Errorf("data.dir must not be empty")
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateBalance(b BalanceConfig) error {
	var errs []string
	if b.EnemySpawnChancePct < 0 || b.EnemySpawnChancePct > 100 {
		errs = append(errs, fmt.Sprintf("balance.enemy_spawn_chance_pct must be 0-100, got %d", b.EnemySpawnChancePct))
	}
	if b.ChestChancePct < 0 || b.ChestChancePct > 100 {
		errs = append(errs, fmt.Sprintf("balance.chest_chance_pct must be 0-100, got %d", b.ChestChancePct))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// DefaultDataDir returns the default data directory, "~/.rpg-cli".
//
// Postcondition: Returns an absolute path, or a non-nil error when the home
// directory cannot be resolved.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".rpg-cli"), nil
}

// Load reads the optional configuration file from the data directory,
// applies environment variable overrides, and validates the result.
// RPG_DATA_DIR relocates the data directory, and with it the config file
// search path. A missing config file is not an error: defaults and the
// environment apply.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load() (Config, error) {
	dataDir := os.Getenv("RPG_DATA_DIR")
	if dataDir == "" {
		var err error
		dataDir, err = DefaultDataDir()
		if err != nil {
			return Config{}, err
		}
	}
	return LoadFromDir(dataDir)
}

// LoadFromDir is Load with an explicit data directory.
func LoadFromDir(dataDir string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with RPG_ prefix
	v.SetEnvPrefix("RPG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, dataDir)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, dataDir string) {
	v.SetDefault("data.dir", dataDir)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	defaults := game.DefaultBalance()
	v.SetDefault("balance.enemy_spawn_chance_pct", defaults.EnemySpawnChancePct)
	v.SetDefault("balance.chest_chance_pct", defaults.ChestChancePct)
}
