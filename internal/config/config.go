// Package config loads the settings of the interpreter: a YAML file,
// overridden by AGI_ environment variables, and the table of opcode
// sets per interpreter version.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/scummvm/scummvm-sub094/internal/types"
)

//go:embed defaults/config.yaml
var defaultConfig []byte

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "AGI_"

// Config holds the interpreter settings.
type Config struct {
	Game    string `yaml:"game" env:"GAME"`
	Version string `yaml:"version" env:"VERSION"`
	Seed    int64  `yaml:"seed" env:"SEED"`

	Interpreter Interpreter `yaml:"interpreter" envPrefix:"INTERPRETER_"`
	Log         Log         `yaml:"log" envPrefix:"LOG_"`

	// Profiles names an extra INI file overriding the built in
	// version profiles.
	Profiles string `yaml:"profiles" env:"PROFILES"`
}

// Interpreter configures the logic interpreter and the view table.
type Interpreter struct {
	MaxCallDepth int  `yaml:"max_call_depth" env:"MAX_CALL_DEPTH"`
	Objects      int  `yaml:"objects" env:"OBJECTS"`
	Trace        bool `yaml:"trace" env:"TRACE"`
}

// Log configures the logger.
type Log struct {
	Level string `yaml:"level" env:"LEVEL"`
}

// Default returns the embedded default configuration.
func Default() Config {
	var c Config
	if err := yaml.Unmarshal(defaultConfig, &c); err != nil {
		panic(fmt.Sprintf("config: embedded default: %v", err))
	}
	return c
}

// Load reads the configuration. The embedded default is overlaid with
// the file at path, if one is given, and then with the environment.
func Load(path string) (Config, error) {
	c := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&c, env.Options{Prefix: EnvPrefix}); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}

	return c, c.Validate()
}

// Validate checks the ranges of the settings.
func (c Config) Validate() error {
	var errs []error
	if _, err := types.StringToVersion(c.Version); err != nil {
		errs = append(errs, err)
	}
	if c.Interpreter.MaxCallDepth < 1 {
		errs = append(errs, fmt.Errorf("max_call_depth %d must be positive", c.Interpreter.MaxCallDepth))
	}
	if c.Interpreter.Objects < 1 || c.Interpreter.Objects > 256 {
		errs = append(errs, fmt.Errorf("objects %d out of range 1-256", c.Interpreter.Objects))
	}
	return errors.Join(errs...)
}

// Profile returns the opcode set of the configured version. When the
// version is auto, fallback is used instead, which is typically the
// version named by the game manifest.
func (c Config) Profile(fallback string) (types.Profile, error) {
	name := c.Version
	if v, _ := types.StringToVersion(name); v == types.Unset {
		name = fallback
	}
	v, err := types.StringToVersion(name)
	if err != nil {
		return types.Profile{}, err
	}
	if v == types.Unset {
		return types.DefaultProfile, nil
	}

	var extra []interface{}
	if c.Profiles != "" {
		extra = append(extra, c.Profiles)
	}
	profiles, err := LoadProfiles(extra...)
	if err != nil {
		return types.Profile{}, err
	}
	p, ok := profiles[v]
	if !ok {
		return types.Profile{}, fmt.Errorf("no opcode profile for version %s", v)
	}
	return p, nil
}
