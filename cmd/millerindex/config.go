package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/millerindex"
	"github.com/hupe1980/millerindex/lookup"
	"github.com/hupe1980/millerindex/symmetry"
)

var configValidate = validator.New(validator.WithRequiredStructEnabled())

// Config is the YAML configuration of the command.
//
// Every field may be overridden by an HKL_* environment variable; flags
// override both.
type Config struct {
	Symmetry SymmetryConfig `yaml:"symmetry"`
	Index    IndexConfig    `yaml:"index"`
	Log      LogConfig      `yaml:"log"`
	Format   string         `yaml:"format" validate:"oneof=json go-json"`
}

// SymmetryConfig describes the point group.
type SymmetryConfig struct {
	// Operators are triplets such as "-k,h,l". The identity must be listed.
	Operators []string `yaml:"operators" validate:"required,min=1,max=48,dive,required"`
	Anomalous bool     `yaml:"anomalous"`
}

// IndexConfig tunes the lookup table and the query fan-out.
type IndexConfig struct {
	Layout           string `yaml:"layout" validate:"oneof=auto dense sparse"`
	MemoryLimitBytes int64  `yaml:"memory_limit_bytes" validate:"gte=0"`
	Workers          int    `yaml:"workers" validate:"gte=0,lte=1024"`
	Strict           bool   `yaml:"strict"`
}

// LogConfig selects the diagnostic output on stderr.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// DefaultConfig returns the configuration used without a config file:
// trivial symmetry with Friedel merging disabled.
func DefaultConfig() Config {
	return Config{
		Symmetry: SymmetryConfig{
			Operators: []string{"h,k,l"},
			Anomalous: true,
		},
		Index: IndexConfig{
			Layout:           "auto",
			MemoryLimitBytes: 1 << 30,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Format: "go-json",
	}
}

// LoadConfig reads path (if not empty) over the defaults, applies
// environment overrides and validates the result.
func LoadConfig(path string) (Config, error) {
	return loadConfig(path, os.LookupEnv)
}

func loadConfig(path string, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read the config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse the config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv("HKL_LAYOUT"); ok {
		c.Index.Layout = v
	}
	if v, ok := lookupEnv("HKL_MEMORY_LIMIT_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("HKL_MEMORY_LIMIT_BYTES: %w", err)
		}
		c.Index.MemoryLimitBytes = n
	}
	if v, ok := lookupEnv("HKL_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HKL_WORKERS: %w", err)
		}
		c.Index.Workers = n
	}
	if v, ok := lookupEnv("HKL_STRICT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HKL_STRICT: %w", err)
		}
		c.Index.Strict = b
	}
	if v, ok := lookupEnv("HKL_ANOMALOUS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HKL_ANOMALOUS: %w", err)
		}
		c.Symmetry.Anomalous = b
	}
	if v, ok := lookupEnv("HKL_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookupEnv("HKL_LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := lookupEnv("HKL_FORMAT"); ok {
		c.Format = v
	}
	return nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Description parses the configured operators.
func (c *Config) Description() (symmetry.Description, error) {
	ops := make([]symmetry.Operator, 0, len(c.Symmetry.Operators))
	for _, s := range c.Symmetry.Operators {
		op, err := symmetry.Parse(s)
		if err != nil {
			return symmetry.Description{}, err
		}
		ops = append(ops, op)
	}
	return symmetry.NewDescription(ops, c.Symmetry.Anomalous)
}

// Options translates the index settings into facade options.
func (c *Config) Options() ([]millerindex.Option, error) {
	layout, ok := lookup.ParseLayout(c.Index.Layout)
	if !ok {
		return nil, fmt.Errorf("invalid layout %q", c.Index.Layout)
	}

	opts := []millerindex.Option{
		millerindex.WithLayout(layout),
		millerindex.WithMemoryLimit(c.Index.MemoryLimitBytes),
		millerindex.WithWorkers(c.Index.Workers),
	}
	if c.Index.Strict {
		opts = append(opts, millerindex.WithStrictUniqueness())
	}
	return opts, nil
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelWarn
	}
	return l
}
