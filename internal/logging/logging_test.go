package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "json")
	log.Info().Str("upload_id", "u-1").Msg("staged")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "staged", line["message"])
	assert.Equal(t, "u-1", line["upload_id"])
	assert.Contains(t, line, "time")
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "text")
	log.Info().Msg("staged")

	assert.Contains(t, buf.String(), "staged")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
