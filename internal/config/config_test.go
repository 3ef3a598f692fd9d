package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zappem.net/pub/math/geom"

	"zappem.net/pub/kinematics/armik"
)

// fakeHome points the home directory at a fresh temporary one.
func fakeHome(t *testing.T) string {
	t.Helper()
	homedir.DisableCache = true
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestDefaults(t *testing.T) {
	fakeHome(t)
	v := New()
	require.NoError(t, ReadFile(v, ""))
	c, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ArmConfig{Upper: 100, Lower: 100, MinDist: 25}, c.Arm)
	assert.Equal(t, 45.0, c.Twist)
	assert.Equal(t, geom.Degrees(45), c.TwistAngle())
	assert.Equal(t, geom.V(25, -200, 50), c.Sweep.Start.Vector())
	assert.Equal(t, geom.V(0, 1, 0), c.Sweep.Step.Vector())
	assert.Equal(t, 101, c.Sweep.Count)
	assert.Equal(t, 4, c.Sweep.Workers)
	assert.Equal(t, FormatText, c.Output.Format)
	assert.Equal(t, "info", c.Logger.Level)
	assert.Equal(t, "armik", c.Logger.ServiceName)

	g, err := c.Geometry()
	require.NoError(t, err)
	assert.Equal(t, 200.0, g.Reach())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("ARMIK_ARM_UPPER", "150")
	t.Setenv("ARMIK_SWEEP_COUNT", "7")
	t.Setenv("ARMIK_OUTPUT_FORMAT", "json")

	c, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, 150.0, c.Arm.Upper)
	assert.Equal(t, 7, c.Sweep.Count)
	assert.Equal(t, FormatJSON, c.Output.Format)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arm.yaml")
	yaml := `
arm:
  upper: 120
  lower: 80
  min_dist: 10
twist: -30
sweep:
  start: {x: 1, y: 2, z: 3}
  count: 5
output:
  format: yaml
logger:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	v := New()
	require.NoError(t, ReadFile(v, path))
	c, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ArmConfig{Upper: 120, Lower: 80, MinDist: 10}, c.Arm)
	assert.Equal(t, -30.0, c.Twist)
	assert.Equal(t, geom.V(1, 2, 3), c.Sweep.Start.Vector())
	// Unset keys keep their defaults.
	assert.Equal(t, geom.V(0, 1, 0), c.Sweep.Step.Vector())
	assert.Equal(t, 5, c.Sweep.Count)
	assert.Equal(t, FormatYAML, c.Output.Format)
	assert.Equal(t, "debug", c.Logger.Level)
}

func TestReadFileFromHome(t *testing.T) {
	home := fakeHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "armik.yaml"), []byte("twist: 10\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(home, "other.yaml"), []byte("twist: 20\n"), 0o644))
	t.Chdir(t.TempDir())

	v := New()
	require.NoError(t, ReadFile(v, ""))
	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 10.0, c.Twist)

	v = New()
	require.NoError(t, ReadFile(v, "~/other.yaml"))
	c, err = Load(v)
	require.NoError(t, err)
	assert.Equal(t, 20.0, c.Twist)
}

func TestReadFileMissing(t *testing.T) {
	err := ReadFile(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c, err := Load(New())
		require.NoError(t, err)
		return c
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		geometry bool
	}{
		{name: "zero count", mutate: func(c *Config) { c.Sweep.Count = 0 }},
		{name: "zero workers", mutate: func(c *Config) { c.Sweep.Workers = 0 }},
		{name: "negative rate", mutate: func(c *Config) { c.Sweep.Rate = -1 }},
		{name: "bad format", mutate: func(c *Config) { c.Output.Format = "xml" }},
		{name: "negative arm", mutate: func(c *Config) { c.Arm.Lower = -1 }, geometry: true},
		{name: "min beyond reach", mutate: func(c *Config) { c.Arm.MinDist = 500 }, geometry: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			assert.Equal(t, tc.geometry, errors.Is(err, armik.ErrInvalidGeometry))
		})
	}
}
