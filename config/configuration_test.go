package config_test

import (
	"testing"
	"time"

	"github.com/sghaida/ohost/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSnap(t *testing.T, values map[string]any) *config.Configuration {
	t.Helper()

	snap, err := config.NewBuilder().AddMap(values).Build()
	require.NoError(t, err)
	return snap
}

//
// -----------------------------------------------------------------------------
// Scalar accessors
// -----------------------------------------------------------------------------

// TestGet_RendersValues verifies Get stringifies raw values.
func TestGet_RendersValues(t *testing.T) {
	t.Parallel()

	snap := buildSnap(t, map[string]any{"port": 8080, "name": "svc"})

	v, ok := snap.Get("port")
	require.True(t, ok)
	assert.Equal(t, "8080", v)

	_, ok = snap.Get("missing")
	assert.False(t, ok)
}

// TestAccessors_Defaults verifies typed accessors fall back on absence and on
// unparseable values.
func TestAccessors_Defaults(t *testing.T) {
	t.Parallel()

	snap := buildSnap(t, map[string]any{
		"int.raw":     42,
		"int.str":     " 7 ",
		"int.bad":     "seven",
		"bool.raw":    true,
		"bool.str":    "false",
		"bool.bad":    "maybe",
		"dur.str":     "1500ms",
		"dur.bad":     "soon",
		"str.present": "x",
	})

	assert.Equal(t, 42, snap.GetInt("int.raw", -1))
	assert.Equal(t, 7, snap.GetInt("int.str", -1))
	assert.Equal(t, -1, snap.GetInt("int.bad", -1))
	assert.Equal(t, -1, snap.GetInt("int.missing", -1))

	assert.True(t, snap.GetBool("bool.raw", false))
	assert.False(t, snap.GetBool("bool.str", true))
	assert.True(t, snap.GetBool("bool.bad", true))

	assert.Equal(t, 1500*time.Millisecond, snap.GetDuration("dur.str", time.Second))
	assert.Equal(t, time.Second, snap.GetDuration("dur.bad", time.Second))

	assert.Equal(t, "x", snap.GetString("str.present", "def"))
	assert.Equal(t, "def", snap.GetString("str.missing", "def"))
}

// TestKeys_Sorted verifies Keys returns a sorted listing.
func TestKeys_Sorted(t *testing.T) {
	t.Parallel()

	snap := buildSnap(t, map[string]any{"b": 1, "a": 2, "c": 3})
	assert.Equal(t, []string{"a", "b", "c"}, snap.Keys())
}

//
// -----------------------------------------------------------------------------
// Bind
// -----------------------------------------------------------------------------

type serverConfig struct {
	Host  string   `yaml:"host"`
	Port  int      `yaml:"port" envconfig:"PORT"`
	Peers []string `yaml:"peers"`
}

// TestBind_Subtree verifies a prefixed subtree decodes into a tagged struct,
// including sequence reconstruction. Bind tests are not parallel: they share
// envconfig-visible variables with TestBind_EnvOverride.
func TestBind_Subtree(t *testing.T) {
	snap := buildSnap(t, map[string]any{
		"server.host":    "localhost",
		"server.port":    8080,
		"server.peers.0": "alpha",
		"server.peers.1": "beta",
		"other.key":      "ignored",
	})

	var cfg serverConfig
	require.NoError(t, snap.Bind("server", &cfg))

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.Peers)
}

// TestBind_EnvOverride verifies envconfig tags override bound values using the
// upper-cased prefix. Not parallel: mutates the process environment.
func TestBind_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9191")

	snap := buildSnap(t, map[string]any{"server.port": 8080})

	var cfg serverConfig
	require.NoError(t, snap.Bind("server", &cfg))
	assert.Equal(t, 9191, cfg.Port)
}

// TestBind_WholeSnapshot verifies an empty prefix binds the full tree.
func TestBind_WholeSnapshot(t *testing.T) {
	type rootConfig struct {
		Server serverConfig `yaml:"server"`
	}

	snap := buildSnap(t, map[string]any{
		"server.host": "h",
		"server.port": 1,
	})

	var cfg rootConfig
	require.NoError(t, snap.Bind("", &cfg))
	assert.Equal(t, "h", cfg.Server.Host)
	assert.Equal(t, 1, cfg.Server.Port)
}
