package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expungement-interview/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("Should write JSON lines when format is json", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(config.LogConfig{Level: "debug", Format: "json"}, &buf)

		l.Info().Str("interview_id", "abc").Msg("started")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "abc", entry["interview_id"])
		assert.Equal(t, "started", entry["message"])
	})

	t.Run("Should drop messages below configured level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(config.LogConfig{Level: "warn", Format: "json"}, &buf)

		l.Info().Msg("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("Should fall back to info on unknown level", func(t *testing.T) {
		var buf bytes.Buffer
		l := New(config.LogConfig{Level: "loud", Format: "console"}, &buf)

		l.Debug().Msg("hidden")
		l.Info().Msg("visible")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "visible")
	})
}
