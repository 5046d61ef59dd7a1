package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		" Debug ": zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		"off":     zerolog.Disabled,
	}
	for raw, want := range cases {
		got, ok := ParseLevel(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
	_, ok := ParseLevel("")
	assert.False(t, ok)
	_, ok = ParseLevel("loud")
	assert.False(t, ok)
}

func TestLibraryProfileSilentByDefault(t *testing.T) {
	t.Setenv(EnvDebug, "")
	t.Setenv(EnvLogLevel, "")
	cfg := DefaultConfig(ProfileLibrary)
	ApplyEnv(&cfg)
	assert.Equal(t, zerolog.Disabled, cfg.Level)
}

func TestDebugEnvEnablesLibrary(t *testing.T) {
	t.Setenv(EnvDebug, "express,cref")
	t.Setenv(EnvLogLevel, "")
	cfg := DefaultConfig(ProfileLibrary)
	ApplyEnv(&cfg)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level)
}

func TestLevelEnvWins(t *testing.T) {
	t.Setenv(EnvDebug, "*")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogNoColor, "true")
	cfg := DefaultConfig(ProfileCLI)
	ApplyEnv(&cfg)
	assert.Equal(t, zerolog.ErrorLevel, cfg.Level)
	assert.True(t, cfg.NoColor)
}

func TestBuildWritesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := Build("cref", Config{Level: zerolog.DebugLevel, NoColor: true, Out: &buf})
	l.Debug().Int("size", 4).Msg("allocating buffer")
	out := buf.String()
	assert.Contains(t, out, "allocating buffer")
	assert.Contains(t, out, "component=cref")
	assert.Contains(t, out, "size=4")
}
