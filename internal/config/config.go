// Package config loads loadboard settings from flags, environment and an
// optional YAML file through viper.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/alexanderramin/loadboard/internal/scheduler"
)

const (
	EnvPrefix = "LOADBOARD"
	FileName  = "loadboard"
)

// Config holds typed configuration for every loadboard command.
type Config struct {
	DBPath         string
	HorizonDays    int
	MaxDayAdvances int
	LogLevel       string
	LogUseCases    bool
	HTTPAddr       string
}

// DefaultYAML is written by `loadboard init`.
const DefaultYAML = `# loadboard config
# Priority: CLI flag > LOADBOARD_* env > this file > default.

db_path:          "~/.loadboard/loadboard.db"
horizon_days:     15       # visible days on a board
max_day_advances: 30       # days one task may walk past its due date
log_level:        "info"   # debug | info | warn | error
log_use_cases:    false    # log one line per schedule/reschedule
http_addr:        ":8080"
`

// DefaultDir is ~/.loadboard, falling back to the working directory when
// no home directory is known.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".loadboard")
}

// SetDefaults registers defaults and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db_path", filepath.Join(DefaultDir(), "loadboard.db"))
	v.SetDefault("horizon_days", scheduler.DefaultHorizonDays)
	v.SetDefault("max_day_advances", scheduler.DefaultMaxDayAdvances)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_use_cases", false)
	v.SetDefault("http_addr", ":8080")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// ReadFile reads cfgFile, or searches ./loadboard.yaml and
// ~/.loadboard/loadboard.yaml. A missing file is not an error.
func ReadFile(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// Load reads all values from the given viper instance.
func Load(v *viper.Viper) Config {
	return Config{
		DBPath:         expandHome(v.GetString("db_path")),
		HorizonDays:    v.GetInt("horizon_days"),
		MaxDayAdvances: v.GetInt("max_day_advances"),
		LogLevel:       v.GetString("log_level"),
		LogUseCases:    v.GetBool("log_use_cases"),
		HTTPAddr:       v.GetString("http_addr"),
	}
}

// Validate rejects values the scheduler cannot work with.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if c.HorizonDays < 1 {
		return fmt.Errorf("horizon_days must be at least 1, got %d", c.HorizonDays)
	}
	if c.MaxDayAdvances < 1 {
		return fmt.Errorf("max_day_advances must be at least 1, got %d", c.MaxDayAdvances)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// NewLogger builds the JSON logger used by the server and the use-case
// observer. Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})).
		With(slog.String("service", "loadboard"))
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", level)
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p
}
