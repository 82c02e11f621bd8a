package contextstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotEmptyIsNil(t *testing.T) {
	s := New()
	assert.Nil(t, s.Snapshot(), "expected nil snapshot before any Set")
}

func TestSetThenSnapshotReturnsCopy(t *testing.T) {
	s := New()
	s.Set(EditorContext{
		EventType:     "cursor_move",
		WorkspaceName: "demo",
		FileContext: FileContext{
			FileName: "main.go",
			Language: "go",
		},
	})

	got := s.Snapshot()
	require.NotNil(t, got, "expected non-nil snapshot after Set")
	assert.Equal(t, "main.go", got.FileContext.FileName)

	got.FileContext.FileName = "mutated.go"
	again := s.Snapshot()
	assert.Equal(t, "main.go", again.FileContext.FileName, "mutating a returned snapshot must not affect the store")
}

func TestLastWriterWins(t *testing.T) {
	s := New()
	s.Set(EditorContext{WorkspaceName: "first"})
	s.Set(EditorContext{WorkspaceName: "second"})

	got := s.Snapshot()
	require.NotNil(t, got)
	assert.Equal(t, "second", got.WorkspaceName, "expected last write to win")
}
