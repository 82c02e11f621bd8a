// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package uievents defines the named events this client emits toward
// the (external) GUI shell, and a buffered, non-blocking sink that
// components can push to without ever stalling on a slow consumer.
package uievents

import "github.com/lia-ai/lia-client/internal/logging"

const (
	EventContextUpdate = "lia://context-update"
	EventStateChange   = "lia://state-change"
	EventStreamClear   = "lia://stream-clear"
	EventStreamChunk   = "lia://stream-chunk"
	EventStreamEnd     = "lia://stream-end"
)

// ContextUpdatePayload is the compact projection emitted on a successful
// editor-context write.
type ContextUpdatePayload struct {
	FileName   string `json:"fileName"`
	FilePath   string `json:"filePath"`
	Language   string `json:"language"`
	CursorLine uint32 `json:"cursorLine"`
	Workspace  string `json:"workspace"`
}

// Event is one named payload bound for the UI event channel.
type Event struct {
	Name    string
	Payload interface{}
}

const sinkBufferSize = 64

// Sink is a buffered, non-blocking UI event channel. A full buffer means
// the consumer is stalled or absent; the send is dropped and logged
// rather than blocking the emitting component.
type Sink struct {
	logger logging.Logger
	ch     chan Event
}

// NewSink creates a Sink with its own background buffer.
func NewSink(logger logging.Logger) *Sink {
	return &Sink{
		logger: logger,
		ch:     make(chan Event, sinkBufferSize),
	}
}

// Events returns the channel external consumers (the GUI shell adapter)
// drain events from.
func (s *Sink) Events() <-chan Event {
	return s.ch
}

// Emit pushes an event without a payload.
func (s *Sink) Emit(name string) {
	s.push(Event{Name: name})
}

// EmitPayload pushes an event carrying a payload.
func (s *Sink) EmitPayload(name string, payload interface{}) {
	s.push(Event{Name: name, Payload: payload})
}

func (s *Sink) push(ev Event) {
	select {
	case s.ch <- ev:
	default:
		s.logger.Warnw("UI event channel full, dropping event", "event", ev.Name)
	}
}
