package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andareed/siftly-grid/daterange"
	"github.com/andareed/siftly-grid/tablectl"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Table   TableConfig   `mapstructure:"table"`
	Presets PresetsConfig `mapstructure:"presets"`
	Export  ExportConfig  `mapstructure:"export"`
}

// LogConfig holds the debug log sink.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// TableConfig says where row dates live and how to read them.
type TableConfig struct {
	DateColumn  string   `mapstructure:"date_column"`
	DateLayouts []string `mapstructure:"date_layouts"`
}

// PresetsConfig holds date range selector settings.
type PresetsConfig struct {
	WeekStart string `mapstructure:"week_start"`
	Default   string `mapstructure:"default"`
}

// ExportConfig holds clipboard payload settings.
type ExportConfig struct {
	Format string `mapstructure:"format"`
	Indent int    `mapstructure:"indent"`
}

var defaultDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"Mon Jan 02 15:04:05 MST 2006",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("table.date_column", "date")
	v.SetDefault("table.date_layouts", defaultDateLayouts)
	v.SetDefault("presets.week_start", "sunday")
	v.SetDefault("presets.default", daterange.DefaultPreset.String())
	v.SetDefault("export.format", string(tablectl.FormatJSON))
	v.SetDefault("export.indent", tablectl.DefaultIndent)
}

// DefaultPath is ~/.config/siftly/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "siftly", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix SIFTLY_.
// An explicit path (argument, then $SIFTLY_CONFIG) must exist; the default location
// is optional.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("SIFTLY_CONFIG")
	}
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix("SIFTLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if explicit || !missing {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
	return Config{
		Log:     LogConfig{Level: "info"},
		Table:   TableConfig{DateColumn: "date", DateLayouts: append([]string(nil), defaultDateLayouts...)},
		Presets: PresetsConfig{WeekStart: "sunday", Default: daterange.DefaultPreset.String()},
		Export:  ExportConfig{Format: string(tablectl.FormatJSON), Indent: tablectl.DefaultIndent},
	}
}

func (c Config) Validate() error {
	if _, err := c.WeekStart(); err != nil {
		return fmt.Errorf("presets.week_start: %w", err)
	}
	if _, err := c.ExportFormat(); err != nil {
		return fmt.Errorf("export.format: %w", err)
	}
	if c.Export.Indent < 0 || c.Export.Indent > 16 {
		return fmt.Errorf("export.indent: %d out of range 0-16", c.Export.Indent)
	}
	if len(c.Table.DateLayouts) == 0 {
		return errors.New("table.date_layouts: at least one layout is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	return nil
}

func (c Config) WeekStart() (time.Weekday, error) {
	return daterange.ParseWeekday(c.Presets.WeekStart)
}

func (c Config) ExportFormat() (tablectl.Format, error) {
	return tablectl.ParseFormat(c.Export.Format)
}

// Calculator builds the preset calculator for the configured week start.
func (c Config) Calculator() daterange.Calculator {
	ws, err := c.WeekStart()
	if err != nil {
		ws = time.Sunday
	}
	return daterange.Calculator{WeekStart: ws}
}
