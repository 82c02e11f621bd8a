package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToStderrOnly(t *testing.T) {
	l, err := New(Name("test"), Level("debug"))
	require.NoError(t, err)
	l.Info("hello")
	l.Infow("hello", "k", "v")
	l.Benchmark("op", 0)
	if err := l.Sync(); err != nil {
		// stderr sync can fail harmlessly on some platforms/CI.
		t.Logf("sync returned: %v", err)
	}
}

func TestNewWritesRotatingFile(t *testing.T) {
	dir := t.TempDir()
	l, err := New(Name("test"), Level("info"), Path(dir))
	require.NoError(t, err)
	l.Info("hello")
}

func TestNewRejectsInvalidLevel(t *testing.T) {
	_, err := New(Level("not-a-level"))
	assert.Error(t, err, "expected error for invalid level")
}
