package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalid marks a configuration value that failed validation.
var ErrInvalid = errors.New("invalid config")

// DefaultBaseURL is the public recipe API root.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// Config holds application configuration.
type Config struct {
	API APIConfig
	Log LogConfig
	UI  UIConfig
}

// APIConfig holds recipe API settings.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig holds logger settings. The TUI owns the terminal, so logs go to a file.
type LogConfig struct {
	Path        string `mapstructure:"path"`
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	IngredientColumns int `mapstructure:"ingredient_columns"`
}

// Load reads configuration from file, env and flags. Env var overrides use prefix MEALFINDER_.
// flags may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MEALFINDER_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(homeDir(), ".config", "mealfinder"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MEALFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return Config{}, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit MEALFINDER_CONFIG path must exist
		if !errors.As(err, &notFound) || cfgPath != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
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

// Default returns the configuration used when nothing is set.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// RegisterFlags adds the flags that Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("api-base-url", DefaultBaseURL, "recipe API base URL")
	fs.Duration("api-timeout", 15*time.Second, "recipe API request timeout")
	fs.String("log-path", "", "log file path")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
}

// Validate checks values that would otherwise fail later at request time.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q", ErrInvalid, c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: api.base_url scheme %q", ErrInvalid, u.Scheme)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", ErrInvalid)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	if c.UI.IngredientColumns < 1 || c.UI.IngredientColumns > 4 {
		return fmt.Errorf("%w: ui.ingredient_columns must be 1-4", ErrInvalid)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("log.path", filepath.Join(homeDir(), ".local", "state", "mealfinder", "mealfinder.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("ui.ingredient_columns", 2)
}

// bindFlags maps only flags the user actually set, so flag defaults never mask file or env values.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	keys := map[string]string{
		"api-base-url": "api.base_url",
		"api-timeout":  "api.timeout",
		"log-path":     "log.path",
		"log-level":    "log.level",
	}
	for name, key := range keys {
		f := fs.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}
