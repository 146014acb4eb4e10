package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWith_AddsField(t *testing.T) {
	buf := &bytes.Buffer{}
	Configure(Config{Level: "debug", Output: buf})
	t.Cleanup(func() { Configure(Config{Level: "info", Pretty: true}) })

	log := With("path", "/submit_job")
	log.Error().Int("user_id", 4).Msg("boom")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "/submit_job", line["path"])
	assert.Equal(t, float64(4), line["user_id"])
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "boom", line["message"])
}

func TestConfigure_Level(t *testing.T) {
	buf := &bytes.Buffer{}
	Configure(Config{Level: "warn", Output: buf})
	t.Cleanup(func() { Configure(Config{Level: "info", Pretty: true}) })

	Info().Msg("hidden")
	assert.Empty(t, buf.String())

	Warn().Msg("shown")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}
