package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContextAddsRequestAndUser(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { Init("development") })

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-9")
	FromContext(ctx).Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "user-9", entry["user_id"])
}

func TestWorkerLogLevels(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { Init("development") })

	WorkerLog("cleanup", "delete", errors.New("db down"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "cleanup", entry["worker"])
	assert.Equal(t, "db down", entry["error"])
}

func TestDevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("development", &buf)
	t.Cleanup(func() { Init("development") })

	Debug("verbose")
	assert.Contains(t, buf.String(), "verbose")
}
