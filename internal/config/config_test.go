package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg := Load(v)
	assert.Equal(t, 15, cfg.HorizonDays)
	assert.Equal(t, 30, cfg.MaxDayAdvances)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "loadboard.db", filepath.Base(cfg.DBPath))
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesDefault(t *testing.T) {
	t.Setenv("LOADBOARD_HORIZON_DAYS", "7")
	t.Setenv("LOADBOARD_LOG_USE_CASES", "true")

	v := viper.New()
	SetDefaults(v)
	cfg := Load(v)

	assert.Equal(t, 7, cfg.HorizonDays)
	assert.True(t, cfg.LogUseCases)
}

func TestReadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loadboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("horizon_days: 10\nmax_day_advances: 5\nhttp_addr: \":9000\"\n"), 0o644))

	v := viper.New()
	SetDefaults(v)
	require.NoError(t, ReadFile(v, path))
	cfg := Load(v)

	assert.Equal(t, 10, cfg.HorizonDays)
	assert.Equal(t, 5, cfg.MaxDayAdvances)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
}

func TestReadFile_DefaultYAMLParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loadboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(DefaultYAML), 0o644))

	v := viper.New()
	SetDefaults(v)
	require.NoError(t, ReadFile(v, path))
	cfg := Load(v)

	assert.NotContains(t, cfg.DBPath, "~")
	assert.Equal(t, 15, cfg.HorizonDays)
	require.NoError(t, cfg.Validate())
}

func TestReadFile_MissingExplicitFileIsTolerated(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	assert.NoError(t, ReadFile(v, filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestValidate(t *testing.T) {
	base := Config{DBPath: "x.db", HorizonDays: 15, MaxDayAdvances: 30, LogLevel: "info"}
	require.NoError(t, base.Validate())

	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"empty db path", func(c *Config) { c.DBPath = "" }},
		{"zero horizon", func(c *Config) { c.HorizonDays = 0 }},
		{"zero advances", func(c *Config) { c.MaxDayAdvances = 0 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mut(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"service":"loadboard"`)
}
