package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesDebugToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, path, err := New(Options{Env: "test", Dir: dir})
	require.NoError(t, err)

	logger.Debug("phase complete")
	_ = logger.Sync()

	assert.True(t, strings.HasPrefix(filepath.Base(path), "test_"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	assert.Equal(t, "phase complete", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "test", entry["env"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_DefaultEnv(t *testing.T) {
	_, path, err := New(Options{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "default_"))
}
