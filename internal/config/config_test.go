package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Silcet/rpg-cli/internal/game"
)

func validConfig() Config {
	return Config{
		Data: DataConfig{
			Dir: "/home/player/.rpg-cli",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Balance: BalanceConfig{
			EnemySpawnChancePct: 30,
			ChestChancePct:      20,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromDir_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Data.Dir)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, game.DefaultBalance(), cfg.Balance.Balance())
}

func TestLoadFromDir_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
logging:
  level: debug
  format: json
balance:
  enemy_spawn_chance_pct: 50
  chest_chance_pct: 5
`), 0o644)
	require.NoError(t, err)

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 50, cfg.Balance.EnemySpawnChancePct)
	assert.Equal(t, 5, cfg.Balance.ChestChancePct)
}

func TestLoadFromDir_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
logging:
  level: trace
`), 0o644)
	require.NoError(t, err)

	_, err = LoadFromDir(dir)
	assert.Error(t, err)
}

func TestLoadFromDir_EnvOverride(t *testing.T) {
	t.Setenv("RPG_LOGGING_LEVEL", "error")
	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoad_DataDirEnvOverride(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
logging:
  level: error
`), 0o644)
	require.NoError(t, err)

	t.Setenv("RPG_DATA_DIR", dir)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Data.Dir)
	assert.Equal(t, "error", cfg.Logging.Level, "the relocated config file is read")
}

func TestValidateDataDirEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Data.Dir = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateBalanceBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Balance.EnemySpawnChancePct = 101
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Balance.ChestChancePct = -1
	assert.Error(t, cfg.Validate())
}

// Property-based tests

func TestPropertyValidChanceRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		spawn := rapid.IntRange(0, 100).Draw(t, "spawn")
		chest := rapid.IntRange(0, 100).Draw(t, "chest")
		cfg := validConfig()
		cfg.Balance.EnemySpawnChancePct = spawn
		cfg.Balance.ChestChancePct = chest
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid chances spawn=%d chest=%d rejected: %v", spawn, chest, err)
		}
	})
}

func TestPropertyInvalidChanceRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chance := rapid.OneOf(
			rapid.IntRange(-1000, -1),
			rapid.IntRange(101, 1000),
		).Draw(t, "chance")
		cfg := validConfig()
		cfg.Balance.EnemySpawnChancePct = chance
		if err := cfg.Validate(); err == nil {
			t.Fatalf("invalid chance %d accepted", chance)
		}
	})
}

func TestPropertyBalanceConversionPreservesKnobs(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		spawn := rapid.IntRange(0, 100).Draw(t, "spawn")
		chest := rapid.IntRange(0, 100).Draw(t, "chest")
		b := BalanceConfig{EnemySpawnChancePct: spawn, ChestChancePct: chest}.Balance()
		assert.Equal(t, spawn, b.EnemySpawnChancePct)
		assert.Equal(t, chest, b.ChestChancePct)
	})
}
