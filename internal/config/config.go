// Package config handles configuration loading for the well-test engine.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ramware/welltest/internal/pvt"
	"github.com/ramware/welltest/pkg/models"
)

// Config represents the complete application configuration.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"  yaml:"engine"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// EngineConfig holds the calculation engine's defaults. Correlation
// methods set here apply whenever a reading does not select its own.
type EngineConfig struct {
	SolutionGORMethod string `mapstructure:"solution_gor_method" yaml:"solution_gor_method"` // "AUTO", "STANDING", "VASQUEZ_BEGGS", "KATZ"
	BubblePointMethod string `mapstructure:"bubble_point_method" yaml:"bubble_point_method"` // "STANDING", "VASQUEZ_BEGGS"
	BoMethod          string `mapstructure:"bo_method"           yaml:"bo_method"`           // "STANDING", "VASQUEZ_BEGGS"
	BatchWorkers      int    `mapstructure:"batch_workers"       yaml:"batch_workers"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.welltest/config.yaml (home directory)
//  3. /etc/welltest/config.yaml (system)
//
// Environment variables override config file values.
// Format: WELLTEST_<SECTION>_<KEY>, e.g., WELLTEST_API_PORT
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".welltest"))
	v.AddConfigPath("/etc/welltest")

	v.SetEnvPrefix("WELLTEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not required to exist; defaults + env vars suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("WELLTEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects correlation methods that are not registered for
// their property, so a typo in the config fails at startup rather
// than on the first calculation.
func (c *Config) Validate() error {
	checks := []struct {
		property models.Property
		method   string
	}{
		{models.PropertySolutionGOR, c.Engine.SolutionGORMethod},
		{models.PropertyBubblePoint, c.Engine.BubblePointMethod},
		{models.PropertyBo, c.Engine.BoMethod},
	}
	for _, chk := range checks {
		if chk.method == "" {
			continue
		}
		if !pvt.Supports(chk.property, models.Method(chk.method)) {
			return fmt.Errorf("config: method %q is not registered for %s", chk.method, chk.property)
		}
	}
	if c.Engine.BatchWorkers < 0 {
		return fmt.Errorf("config: engine.batch_workers must be >= 0, got %d", c.Engine.BatchWorkers)
	}
	return nil
}

// Selection returns the engine-level correlation defaults as a selection.
func (c *Config) Selection() models.CorrelationSelection {
	return models.CorrelationSelection{
		SolutionGOR: models.Method(c.Engine.SolutionGORMethod),
		BubblePoint: models.Method(c.Engine.BubblePointMethod),
		Bo:          models.Method(c.Engine.BoMethod),
	}
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Engine defaults
	v.SetDefault("engine.solution_gor_method", string(models.MethodAuto))
	v.SetDefault("engine.bubble_point_method", string(models.MethodStanding))
	v.SetDefault("engine.bo_method", string(models.MethodStanding))
	v.SetDefault("engine.batch_workers", 0) // 0 = one goroutine per reading

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
