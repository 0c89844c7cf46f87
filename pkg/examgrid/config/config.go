// Package config loads ingestion settings from a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/inference"
	"github.com/ukaji3/examgrid-go/pkg/examgrid/parser"
)

// EnvPrefix prefixes every environment override, e.g.
// EXAMGRID_PARSER_TOTAL_MIN_SCORE.
const EnvPrefix = "EXAMGRID"

// Config is the complete ingestion configuration.
type Config struct {
	// Workers bounds concurrent sheet processing; 0 means GOMAXPROCS.
	Workers   int              `yaml:"workers" envconfig:"WORKERS"`
	Logging   LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Parser    parser.Params    `yaml:"parser" envconfig:"PARSER"`
	Inference inference.Params `yaml:"inference" envconfig:"INFERENCE"`
}

// LoggingConfig configures the zap logger built by the CLI.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Workers:   runtime.GOMAXPROCS(0),
		Logging:   LoggingConfig{Level: "info"},
		Parser:    parser.DefaultParams(),
		Inference: inference.DefaultParams(),
	}
}

// Load starts from Default, overlays the YAML file at path (if non-empty)
// and then any EXAMGRID_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks every section.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if err := c.Parser.Validate(); err != nil {
		return err
	}
	return c.Inference.Validate()
}
