package config

import (
	"os"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const currentVersion = "v1"

// Config is the configuration read from webnb.yaml.
type Config struct {
	Version   string    `yaml:"version" validate:"required"`
	Notebooks Notebooks `yaml:"notebooks"`
	Server    Server    `yaml:"server"`
	Log       Log       `yaml:"log"`
	Format    Format    `yaml:"format"`
}

// Notebooks selects the files treated as notebooks. Patterns are
// globs relative to the project root, "/" separated.
type Notebooks struct {
	Include []string `yaml:"include" validate:"min=1,dive,required"`
	Ignore  []string `yaml:"ignore" validate:"dive,required"`
}

type Server struct {
	Address      string        `yaml:"address" validate:"required,hostname_port"`
	CacheTTL     time.Duration `yaml:"cache_ttl" validate:"gte=0"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" validate:"gt=0"`
}

type Log struct {
	Enabled    bool   `yaml:"enabled"`
	Path       string `yaml:"path" validate:"required_if=Enabled true"`
	Verbose    bool   `yaml:"verbose"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
}

type Format struct {
	// AssignIDs gives code cells without an id a fresh one when formatting.
	AssignIDs bool `yaml:"assign_ids"`
}

func (c *Config) clone() *Config {
	result := *c
	result.Notebooks.Include = slices.Clone(c.Notebooks.Include)
	result.Notebooks.Ignore = slices.Clone(c.Notebooks.Ignore)
	return &result
}

// ParseYAML parses a configuration file on top of the defaults.
// Environment variables in the form of $VAR or ${VAR} are expanded first.
func ParseYAML(data []byte) (*Config, error) {
	data = []byte(os.ExpandEnv(string(data)))

	version, err := parseVersionFromYAML(data)
	if err != nil {
		return nil, err
	}
	if version != currentVersion {
		return nil, errors.Errorf("unknown version: %q", version)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal yaml")
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to validate config")
	}

	return cfg, nil
}

type versionOnly struct {
	Version string `yaml:"version"`
}

func parseVersionFromYAML(data []byte) (string, error) {
	var result versionOnly

	if err := yaml.Unmarshal(data, &result); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal version")
	}

	return result.Version, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateConfig(cfg *Config) error {
	return errors.WithStack(validate.Struct(cfg))
}
