// Package config loads settings from flags, environment and config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	AppDirName = ".f3-workout"
	EnvPrefix  = "F3"
)

// Accepted range of sound.volume. Each step doubles or halves the amplitude.
const (
	MinVolume = -8.0
	MaxVolume = 2.0
)

// Config is the resolved application configuration
type Config struct {
	DataDir string

	Gemini struct {
		APIKey  string
		Model   string
		BaseURL string
		Timeout time.Duration
	}

	History struct {
		Backend    string
		Path       string
		MaxEntries int
	}

	Timer struct {
		TickInterval time.Duration
	}

	Sound struct {
		Enabled bool
		Volume  float64 // base-2 exponent, 0 plays the tone unchanged
	}

	Log struct {
		File       string
		Level      string
		MaxSizeMB  int
		MaxBackups int
	}
}

// Loader owns the viper instance so the file can be watched after loading
type Loader struct {
	v        *viper.Viper
	mu       sync.Mutex
	watching bool
}

// DefaultDataDir is ~/.f3-workout, or ./.f3-workout when home is unknown
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, AppDirName)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini.timeout", 60*time.Second)
	v.SetDefault("history.backend", "file")
	v.SetDefault("history.max_entries", 10)
	v.SetDefault("timer.tick_interval", time.Second)
	v.SetDefault("sound.enabled", true)
	v.SetDefault("sound.volume", 0.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
}

// NewFlagSet declares the command line flags understood by Load
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "path to config.yaml")
	fs.String("data-dir", "", "directory for history, preferences, exports and logs")
	fs.String("model", "", "Gemini model name")
	fs.String("history-backend", "", "history backend: file, sqlite or memory")
	fs.Bool("mute", false, "disable the completion tone")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	return fs
}

// Load resolves the configuration. Precedence: flags, F3_* environment,
// config file, defaults. API_KEY and GEMINI_API_KEY are accepted for the key.
func Load(fs *pflag.FlagSet, args []string) (*Config, *Loader, error) {
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gemini.api_key", EnvPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return nil, nil, fmt.Errorf("bind env: %w", err)
	}

	for key, flag := range map[string]string{
		"data_dir":        "data-dir",
		"gemini.model":    "model",
		"history.backend": "history-backend",
		"log.level":       "log-level",
	} {
		if f := fs.Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, nil, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}
	if mute, _ := fs.GetBool("mute"); mute {
		v.Set("sound.enabled", false)
	}

	v.SetConfigType("yaml")
	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(v.GetString("data_dir"))
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("read config: %w", err)
		}
	}

	l := &Loader{v: v}
	cfg, err := l.decode()
	if err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}

func (l *Loader) decode() (*Config, error) {
	v := l.v
	cfg := &Config{}
	cfg.DataDir = v.GetString("data_dir")

	cfg.Gemini.APIKey = v.GetString("gemini.api_key")
	cfg.Gemini.Model = v.GetString("gemini.model")
	cfg.Gemini.BaseURL = v.GetString("gemini.base_url")
	cfg.Gemini.Timeout = v.GetDuration("gemini.timeout")

	cfg.History.Backend = v.GetString("history.backend")
	cfg.History.Path = v.GetString("history.path")
	cfg.History.MaxEntries = v.GetInt("history.max_entries")

	cfg.Timer.TickInterval = v.GetDuration("timer.tick_interval")
	cfg.Sound.Enabled = v.GetBool("sound.enabled")
	cfg.Sound.Volume = v.GetFloat64("sound.volume")

	cfg.Log.File = v.GetString("log.file")
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.DataDir, "f3-workout.log")
	}
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.MaxSizeMB = v.GetInt("log.max_size_mb")
	cfg.Log.MaxBackups = v.GetInt("log.max_backups")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	if c.Timer.TickInterval <= 0 {
		return fmt.Errorf("timer.tick_interval must be positive, got %s", c.Timer.TickInterval)
	}
	if c.History.MaxEntries <= 0 {
		return fmt.Errorf("history.max_entries must be positive, got %d", c.History.MaxEntries)
	}
	switch c.History.Backend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("history.backend: unknown backend %q", c.History.Backend)
	}
	if c.Sound.Volume < MinVolume || c.Sound.Volume > MaxVolume {
		return fmt.Errorf("sound.volume must be within [%g, %g], got %g", MinVolume, MaxVolume, c.Sound.Volume)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// ConfigFile returns the file the configuration was read from, if any
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Watch reloads the config file when it changes and hands the new
// configuration to onChange. Invalid edits are logged and ignored.
func (l *Loader) Watch(logger logrus.FieldLogger, onChange func(*Config)) {
	if l.v.ConfigFileUsed() == "" {
		logger.Debug("Config: no config file to watch")
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.watching {
		return
	}
	l.watching = true

	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.decode()
		if err != nil {
			logger.WithError(err).Warn("Config: ignoring invalid change")
			return
		}
		logger.WithField("file", e.Name).Info("Config: reloaded")
		onChange(cfg)
	})
	l.v.WatchConfig()
}
