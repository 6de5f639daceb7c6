// Package config loads the console configuration.
//
// Values are resolved from, lowest to highest precedence: built-in defaults, a
// YAML config file, a .env file, K9_ environment variables, and command line
// flags bound to the same viper instance.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"k9console/internal/logger"
)

// EnvPrefix is the prefix of environment variables that override config keys,
// e.g. K9_MAX_FPS or K9_CONSOLE_PROMPT.
const EnvPrefix = "K9"

// Config holds the process configuration.
type Config struct {
	MaxFPS     int           `mapstructure:"max_fps"`
	UseVSync   bool          `mapstructure:"use_vsync"`
	Width      int           `mapstructure:"width"`
	Height     int           `mapstructure:"height"`
	Fullscreen bool          `mapstructure:"fullscreen"`
	TestMode   bool          `mapstructure:"test_mode"`
	Console    ConsoleConfig `mapstructure:"console"`
	UI         UIConfig      `mapstructure:"ui"`
	Log        LogConfig     `mapstructure:"log"`
}

// ConsoleConfig holds console settings.
type ConsoleConfig struct {
	Prompt      string `mapstructure:"prompt"`
	HistorySize int    `mapstructure:"history_size"`
}

// UIConfig holds debug window settings.
type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Options selects the files Load reads.
type Options struct {
	ConfigFile string // Explicit config file; searched for when empty
	DotEnvFile string // .env file; ".env" in the working directory when empty
	SkipDotEnv bool   // Do not read any .env file
}

// New returns a viper instance with defaults and environment lookup set up.
// Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("max_fps", 120)
	v.SetDefault("use_vsync", false)
	v.SetDefault("width", 1600)
	v.SetDefault("height", 900)
	v.SetDefault("fullscreen", false)
	v.SetDefault("test_mode", false)
	v.SetDefault("console.prompt", "k9> ")
	v.SetDefault("console.history_size", 100)
	v.SetDefault("ui.theme", "default")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file and .env file into v and returns the validated result.
func Load(v *viper.Viper, opts Options) (*Config, error) {
	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return nil, err
	}

	if !opts.SkipDotEnv {
		if err := mergeDotEnv(v, opts.DotEnvFile); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("k9console")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "k9console"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	logger.Debug("Config file loaded", "file", v.ConfigFileUsed())
	return nil
}

// mergeDotEnv merges K9_ entries of a .env file as a config layer, so real
// environment variables and flags still win. A missing file is not an error.
func mergeDotEnv(v *viper.Viper, path string) error {
	if path == "" {
		path = ".env"
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read .env file %s: %w", path, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", path, err)
	}

	layer := make(map[string]interface{})
	for _, key := range v.AllKeys() {
		value, exists := envMap[EnvName(key)]
		if !exists {
			continue
		}
		setNested(layer, strings.Split(key, "."), value)
	}

	if len(layer) == 0 {
		return nil
	}
	logger.Debug("Merged .env file", "file", path, "keys", len(layer))
	return v.MergeConfigMap(layer)
}

// Watch reloads the config file when it changes and passes each valid result
// to onChange. Invalid edits are logged and skipped. It reports false when no
// config file was loaded, so there is nothing to watch.
func Watch(v *viper.Viper, onChange func(*Config)) bool {
	if v.ConfigFileUsed() == "" {
		return false
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			logger.Warn("Ignoring config change", "file", e.Name, "error", err)
			return
		}
		if err := cfg.Validate(); err != nil {
			logger.Warn("Ignoring invalid config change", "file", e.Name, "error", err)
			return
		}
		logger.Info("Config reloaded", "file", e.Name)
		onChange(&cfg)
	})
	v.WatchConfig()
	return true
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func setNested(m map[string]interface{}, path []string, value string) {
	for _, part := range path[:len(path)-1] {
		next, ok := m[part].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			m[part] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxFPS < 0 {
		errs = append(errs, fmt.Errorf("max_fps must not be negative, got %d", c.MaxFPS))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("dimensions must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Console.HistorySize <= 0 {
		errs = append(errs, fmt.Errorf("console.history_size must be positive, got %d", c.Console.HistorySize))
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "trace", "debug", "info", "warn", "error", "fatal":
	default:
		errs = append(errs, fmt.Errorf("unknown log.level %q", c.Log.Level))
	}
	return errors.Join(errs...)
}
