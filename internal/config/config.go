package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim"
	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim/worldgen"
)

// Config holds all configuration for the application
type Config struct {
	World       WorldConfig       `mapstructure:"world"`
	Simulation  SimulationConfig  `mapstructure:"simulation"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// WorldConfig holds initial population settings
type WorldConfig struct {
	Population int     `mapstructure:"population"`
	FracA      float64 `mapstructure:"frac_a"`
	FracB      float64 `mapstructure:"frac_b"`
}

// SimulationConfig holds step engine and run loop settings
type SimulationConfig struct {
	Threshold       float64 `mapstructure:"threshold"`
	VacancyStrategy string  `mapstructure:"vacancy_strategy"`
	MaxSteps        int     `mapstructure:"max_steps"`
	TickIntervalMs  int     `mapstructure:"tick_interval_ms"`
	Seed            int64   `mapstructure:"seed"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	ShowBoard bool `mapstructure:"show_board"`
	LogEvents bool `mapstructure:"log_events"`
}

// ZerologLevel maps the configured level name to a zerolog level. An empty
// name means info.
func (l LoggingConfig) ZerologLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(l.Level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// WorldSettings converts the world section into generator input.
func (c *Config) WorldSettings() worldgen.WorldConfig {
	return worldgen.WorldConfig{
		Population: c.World.Population,
		FracA:      c.World.FracA,
		FracB:      c.World.FracB,
	}
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
	// overlay is the merged environment file, re-applied on reload
	overlay string
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	world := worldgen.DefaultWorldConfig()
	v.SetDefault("world.population", world.Population)
	v.SetDefault("world.frac_a", world.FracA)
	v.SetDefault("world.frac_b", world.FracB)

	v.SetDefault("simulation.threshold", 0.75)
	v.SetDefault("simulation.vacancy_strategy", string(sim.VacancyRejection))
	v.SetDefault("simulation.max_steps", 1000)
	v.SetDefault("simulation.tick_interval_ms", 450)
	v.SetDefault("simulation.seed", 0) // 0 seeds from the clock

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("development.show_board", false)
	v.SetDefault("development.log_events", true)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()
	cfg = nil
	overlay = ""

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/segregation")
	}

	v.SetEnvPrefix("SEG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(configPath); err != nil {
		return err
	}

	return apply()
}

// readConfigFile loads the config file. Only a missing file falls back to
// defaults; unreadable or malformed files are errors.
func readConfigFile(configPath string) error {
	if configPath != "" {
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// apply decodes and validates the current viper state. cfg is only replaced
// when the result is valid.
func apply() error {
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg == nil {
		cfg = next
	} else {
		*cfg = *next
	}
	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// LoadEnvironmentConfig merges config.<env>.yaml from the directory of the
// loaded config file (or the working directory when none was found). A missing
// overlay is skipped. The base file stays the one reported and watched.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	path := overlayPath(env)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading environment config %s: %w", path, err)
	}

	if err := mergeOverlay(path); err != nil {
		return err
	}
	if err := apply(); err != nil {
		return err
	}
	overlay = path
	return nil
}

func overlayPath(env string) string {
	dir := "."
	if used := v.ConfigFileUsed(); used != "" {
		dir = filepath.Dir(used)
	}
	return filepath.Join(dir, fmt.Sprintf("config.%s.yaml", env))
}

func mergeOverlay(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error reading environment config %s: %w", path, err)
	}
	defer f.Close()

	env := viper.New()
	env.SetConfigType("yaml")
	if err := env.ReadConfig(f); err != nil {
		return fmt.Errorf("error merging environment config %s: %w", path, err)
	}
	return v.MergeConfigMap(env.AllSettings())
}

// Set applies a runtime override. An override that fails validation is
// rolled back and reported.
func Set(key string, value interface{}) error {
	prev := v.Get(key)
	v.Set(key, value)
	if err := apply(); err != nil {
		v.Set(key, prev)
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. onChange receives the
// reload error, if any; an invalid file leaves the previous config in place.
func WatchConfig(onChange func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		err := reload()
		if onChange != nil {
			onChange(err)
		}
	})
	v.WatchConfig()
}

// reload re-applies the environment overlay on top of a freshly read base file.
func reload() error {
	if overlay != "" {
		if err := mergeOverlay(overlay); err != nil {
			return err
		}
	}
	return apply()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if err := c.WorldSettings().Validate(); err != nil {
		return fmt.Errorf("world: %w", err)
	}

	if err := sim.ValidateThreshold(c.Simulation.Threshold); err != nil {
		return fmt.Errorf("simulation.threshold: %w", err)
	}
	if _, err := sim.ParseVacancyStrategy(c.Simulation.VacancyStrategy); err != nil {
		return fmt.Errorf("simulation.vacancy_strategy: %w", err)
	}
	if c.Simulation.MaxSteps < 0 {
		return fmt.Errorf("simulation.max_steps must be non-negative")
	}
	if c.Simulation.TickIntervalMs < 0 {
		return fmt.Errorf("simulation.tick_interval_ms must be non-negative")
	}

	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	return nil
}
