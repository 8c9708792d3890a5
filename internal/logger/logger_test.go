package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONIncludesServiceAndLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "tienda", Level: zerolog.WarnLevel, Format: "json", Output: buf})

	log.Info().Msg("hidden")
	log.Warn().Str("path", "productos.txt").Msg("skipped record")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"service":"tienda"`)
	assert.Contains(t, out, `"path":"productos.txt"`)
}

func TestWithFieldsPropagatesThroughContext(t *testing.T) {
	buf := &bytes.Buffer{}
	base := New(Options{ServiceName: "tienda", Level: zerolog.DebugLevel, Format: "json", Output: buf})

	ctx := WithFields(context.Background(), base, map[string]any{"session_id": "s-1"})
	ctx = WithFields(ctx, base, map[string]any{"role": "admin"})
	l := FromContext(ctx, zerolog.Nop())
	l.Info().Msg("menu opened")

	require.Contains(t, buf.String(), `"session_id":"s-1"`)
	assert.Contains(t, buf.String(), `"role":"admin"`)
}

func TestFromContextFallsBackToBase(t *testing.T) {
	base := zerolog.Nop()
	l := FromContext(context.Background(), base)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

func TestParseLevelDefaults(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("invalid"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
}
