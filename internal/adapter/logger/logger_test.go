package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) LogEntry {
	t.Helper()
	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("fornecedores-api", &buf)

	log.Info("order_saved", "order persisted", "req-1", map[string]interface{}{"record_id": 7})

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "fornecedores-api", entry.Service)
	assert.Equal(t, "order_saved", entry.Action)
	assert.Equal(t, "order persisted", entry.Message)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, float64(7), entry.Details["record_id"])
	assert.NotEmpty(t, entry.Timestamp)
	assert.Nil(t, entry.Error)
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("fornecedores-api", &buf)

	log.Error("order_save_failed", "save failed", "req-2", nil, errors.New("disk full"))

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "ERROR", entry.Level)
	require.NotNil(t, entry.Error)
	assert.Equal(t, "disk full", entry.Error.Msg)
}

func TestWarn(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("fornecedores-api", &buf)

	log.Warn("postgres_unreachable", "falling back to sqlite", "", nil)

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, "postgres_unreachable", entry.Action)
}

func TestEachEntryIsOneJSONLine(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("fornecedores-api", &buf)

	log.Info("a", "first", "", nil)
	log.Info("b", "second", "", nil)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, json.Valid(line))
	}
}
