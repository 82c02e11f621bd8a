// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package contextstore holds the latest editor-context snapshot shared
// between EditorChannel (writer) and Pipeline (reader).
package contextstore

import "sync"

// FileContext describes the file the editor had focused at the time of
// the event.
type FileContext struct {
	FileName      string `json:"file_name"`
	FilePath      string `json:"file_path"`
	Language      string `json:"language"`
	CursorLine    uint32 `json:"cursor_line"`
	ContentWindow string `json:"content_window"`
}

// EditorContext is the latest snapshot received from the editor plugin.
type EditorContext struct {
	EventType     string      `json:"event_type"`
	Timestamp     uint64      `json:"timestamp"`
	WorkspaceName string      `json:"workspace_name"`
	FileContext   FileContext `json:"file_context"`
}

// Store is a thread-safe latest-value cell: only the most recent write
// is retained, readers never observe a torn value.
type Store struct {
	mu  sync.Mutex
	cur *EditorContext
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Set overwrites the current snapshot.
func (s *Store) Set(ctx EditorContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := ctx
	s.cur = &c
}

// Snapshot returns a copy of the current value, or nil if none has been
// set yet.
func (s *Store) Snapshot() *EditorContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return nil
	}
	c := *s.cur
	return &c
}
