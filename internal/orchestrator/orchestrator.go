// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package orchestrator holds the global interaction state machine:
// Idle -> Listening -> Thinking -> Responding -> Idle.
package orchestrator

import (
	"sync"

	"github.com/lia-ai/lia-client/internal/uievents"
)

// State is one of the four values the orchestrator can hold.
type State int

const (
	Idle State = iota
	Listening
	Thinking
	Responding
)

// String returns the wire name used in state-change events.
func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Listening:
		return "LISTENING"
	case Thinking:
		return "THINKING"
	case Responding:
		return "RESPONDING"
	default:
		return "UNKNOWN"
	}
}

// Orchestrator holds the current state behind a single lock. Transitions
// are brief and synchronous; UI-event emission is the only side effect
// and is non-blocking via the Sink.
type Orchestrator struct {
	mu    sync.Mutex
	state State
	sink  *uievents.Sink
}

// New creates an Orchestrator in Idle.
func New(sink *uievents.Sink) *Orchestrator {
	return &Orchestrator{sink: sink}
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) transitionTo(newState State) {
	o.state = newState
	o.sink.EmitPayload(uievents.EventStateChange, newState.String())
}

// StartListening transitions Idle -> Listening. No-op otherwise.
func (o *Orchestrator) StartListening() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == Idle {
		o.transitionTo(Listening)
	}
}

// StartThinking transitions Listening -> Thinking. No-op otherwise.
func (o *Orchestrator) StartThinking() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == Listening {
		o.transitionTo(Thinking)
	}
}

// StartResponding transitions Thinking -> Responding. No-op otherwise.
func (o *Orchestrator) StartResponding() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == Thinking {
		o.transitionTo(Responding)
	}
}

// Finish transitions unconditionally back to Idle and additionally
// emits a stream-end event.
func (o *Orchestrator) Finish() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transitionTo(Idle)
	o.sink.Emit(uievents.EventStreamEnd)
}
