package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel(" DEBUG "))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("verbose"))
	assert.Equal(t, "error", Error.String())
}

func TestNew_JSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "grooming", Output: &buf})

	l.With(map[string]any{"user_id": "u1"}).Info("client created", map[string]any{"client_id": "c1", "": "dropped"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "client created", line["msg"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "grooming", line["app"])
	assert.Equal(t, "u1", line["user_id"])
	assert.Equal(t, "c1", line["client_id"])
	assert.NotContains(t, line, "")
	assert.Contains(t, line, "ts")
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Output: &buf})

	l.Info("ignored", nil)
	assert.Zero(t, buf.Len())

	l.Warn("kept", nil)
	assert.Contains(t, buf.String(), "msg=kept")
}
