package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWriter_JSON(t *testing.T) {
	t.Cleanup(func() { InitWriter(Config{}, &bytes.Buffer{}) })

	var buf bytes.Buffer
	InitWriter(Config{Level: "warn"}, &buf)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	log.Info().Msg("dropped")
	log.Warn().Str("stage", "social").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "social", entry["stage"])
	assert.Contains(t, entry, "time")
}

func TestInitWriter_UnknownLevelFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { InitWriter(Config{}, &bytes.Buffer{}) })

	InitWriter(Config{Level: "loud"}, &bytes.Buffer{})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestInitWriter_PrettyAndCaller(t *testing.T) {
	t.Cleanup(func() { InitWriter(Config{}, &bytes.Buffer{}) })

	var buf bytes.Buffer
	InitWriter(Config{Level: "debug", Format: "pretty", ReportCaller: true}, &buf)
	log.Debug().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "logging_test.go")
}

func TestWithRequestID(t *testing.T) {
	t.Cleanup(func() { InitWriter(Config{}, &bytes.Buffer{}) })

	var buf bytes.Buffer
	InitWriter(Config{}, &buf)
	ctx := WithRequestID(context.Background(), "req-1")
	Ctx(ctx).Info().Msg("tagged")
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)

	assert.Equal(t, &log.Logger, Ctx(context.Background()))
}
