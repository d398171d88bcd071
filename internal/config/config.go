package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds everything the watch app reads at startup. Values come
// from flags, then RUN_WATCH_* environment variables, then the config
// file, then defaults.
type Config struct {
	LogFile       string `mapstructure:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`

	ScreenWidth  int  `mapstructure:"screen_width"`
	ScreenHeight int  `mapstructure:"screen_height"`
	Color        bool `mapstructure:"color"`

	// Sensors switches the data feed from the built-in session player
	// to live BLE sensors.
	Sensors bool `mapstructure:"sensors"`

	PrefsFile string `mapstructure:"prefs_file"`
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".run-watch")
}

// Load parses args (not including the program name) and merges all
// configuration sources.
func Load(args []string) (Config, error) {
	dir := defaultDir()

	flags := pflag.NewFlagSet("run-watch", pflag.ContinueOnError)
	flags.String("log-file", filepath.Join(dir, "run-watch.log"), "log file path")
	flags.Int("log-max-size-mb", 10, "rotate the log after this many megabytes")
	flags.Int("log-max-backups", 3, "rotated log files to keep")
	flags.Int("screen-width", 180, "emulated screen width in pixels")
	flags.Int("screen-height", 180, "emulated screen height in pixels")
	flags.Bool("color", true, "render in color (false emulates a monochrome panel)")
	flags.Bool("sensors", false, "use live BLE sensors instead of the session player")
	flags.String("prefs-file", filepath.Join(dir, "prefs.json"), "preferences file path")
	flags.String("config", "", "config file (default "+filepath.Join(dir, "config.yaml")+")")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	for _, pair := range [][2]string{
		{"log_file", "log-file"},
		{"log_max_size_mb", "log-max-size-mb"},
		{"log_max_backups", "log-max-backups"},
		{"screen_width", "screen-width"},
		{"screen_height", "screen-height"},
		{"color", "color"},
		{"sensors", "sensors"},
		{"prefs_file", "prefs-file"},
	} {
		if err := v.BindPFlag(pair[0], flags.Lookup(pair[1])); err != nil {
			return Config{}, fmt.Errorf("failed to bind flag %s: %w", pair[1], err)
		}
	}

	v.SetEnvPrefix("RUN_WATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cf, _ := flags.GetString("config"); cf != "" {
		v.SetConfigFile(cf)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", cf, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			// A missing default config file is fine.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.ScreenWidth < 64 || cfg.ScreenHeight < 64 {
		return Config{}, fmt.Errorf("screen size %dx%d is too small", cfg.ScreenWidth, cfg.ScreenHeight)
	}
	return cfg, nil
}
