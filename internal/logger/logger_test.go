package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesTimestampedJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)

	log.Info().Str("component", "test").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "test", entry["component"])
	assert.NotEmpty(t, entry["time"])
}

func TestNewNilWriterDefaultsToStdout(t *testing.T) {
	log := New(nil)
	// must not panic with the default writer
	log.Debug().Msg("noop")
}
