// Package config loads the arm, sweep, output and logging settings of
// the armik command from flags, environment and an optional yaml file.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"zappem.net/pub/math/geom"

	"zappem.net/pub/kinematics/armik"
)

// EnvPrefix prefixes the environment variables read by Load, e.g.
// ARMIK_ARM_UPPER.
const EnvPrefix = "ARMIK"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Vec is a configured 3-D vector.
type Vec struct {
	X float64 `mapstructure:"x" yaml:"x"`
	Y float64 `mapstructure:"y" yaml:"y"`
	Z float64 `mapstructure:"z" yaml:"z"`
}

// Vector converts the vector for the solver.
func (v Vec) Vector() geom.Vector {
	return geom.V(v.X, v.Y, v.Z)
}

// ArmConfig holds the arm dimensions.
type ArmConfig struct {
	Upper   float64 `mapstructure:"upper" yaml:"upper"`
	Lower   float64 `mapstructure:"lower" yaml:"lower"`
	MinDist float64 `mapstructure:"min_dist" yaml:"min_dist"`
}

// SweepConfig describes a straight line of goals, Start + i*Step for
// i in [0, Count). Rate, in goals per second, paces the sweep; zero
// leaves it unpaced.
type SweepConfig struct {
	Start   Vec     `mapstructure:"start" yaml:"start"`
	Step    Vec     `mapstructure:"step" yaml:"step"`
	Count   int     `mapstructure:"count" yaml:"count"`
	Workers int     `mapstructure:"workers" yaml:"workers"`
	Rate    float64 `mapstructure:"rate" yaml:"rate"`
}

// OutputConfig selects how solutions are printed.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// Config is the complete configuration. Twist is in degrees.
type Config struct {
	Arm    ArmConfig    `mapstructure:"arm" yaml:"arm"`
	Twist  float64      `mapstructure:"twist" yaml:"twist"`
	Sweep  SweepConfig  `mapstructure:"sweep" yaml:"sweep"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

// SetDefaults installs the default values into v. The arm and sweep
// defaults move the wrist of a 100/100 arm up a line past the
// shoulder.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("arm.upper", 100.0)
	v.SetDefault("arm.lower", 100.0)
	v.SetDefault("arm.min_dist", 25.0)
	v.SetDefault("twist", 45.0)

	v.SetDefault("sweep.start.x", 25.0)
	v.SetDefault("sweep.start.y", -200.0)
	v.SetDefault("sweep.start.z", 50.0)
	v.SetDefault("sweep.step.x", 0.0)
	v.SetDefault("sweep.step.y", 1.0)
	v.SetDefault("sweep.step.z", 0.0)
	v.SetDefault("sweep.count", 101)
	v.SetDefault("sweep.workers", 4)
	v.SetDefault("sweep.rate", 0.0)

	v.SetDefault("output.format", FormatText)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "armik")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
}

// New returns a viper instance with defaults installed and the
// environment wired up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads the named yaml file into v. With an empty name it
// looks for armik.yaml in the working directory and then the home
// directory, and not finding one is not an error.
func ReadFile(v *viper.Viper, name string) error {
	if name != "" {
		path, err := homedir.Expand(name)
		if err != nil {
			return fmt.Errorf("config path %q: %w", name, err)
		}
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName("armik")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if name == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if c.Logger.LogFile != "" {
		path, err := homedir.Expand(c.Logger.LogFile)
		if err != nil {
			return nil, fmt.Errorf("%w: logger.log_file: %w", ErrInvalidConfig, err)
		}
		c.Logger.LogFile = path
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the settings that armik.NewGeometry does not.
func (c *Config) Validate() error {
	if c.Sweep.Count < 1 {
		return fmt.Errorf("%w: sweep.count %d must be at least 1", ErrInvalidConfig, c.Sweep.Count)
	}
	if c.Sweep.Workers < 1 {
		return fmt.Errorf("%w: sweep.workers %d must be at least 1", ErrInvalidConfig, c.Sweep.Workers)
	}
	if math.IsNaN(c.Sweep.Rate) || c.Sweep.Rate < 0 {
		return fmt.Errorf("%w: sweep.rate %v must not be negative", ErrInvalidConfig, c.Sweep.Rate)
	}
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.Output.Format)
	}
	if _, err := c.Geometry(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Geometry returns the configured arm.
func (c *Config) Geometry() (armik.Geometry, error) {
	return armik.NewGeometry(c.Arm.Upper, c.Arm.Lower, c.Arm.MinDist)
}

// TwistAngle returns the configured twist.
func (c *Config) TwistAngle() geom.Angle {
	return geom.Degrees(c.Twist)
}
