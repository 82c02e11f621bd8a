// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package audio

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
	"github.com/lia-ai/lia-client/internal/logging"
)

// ErrNoAudio is returned when Stop is called on a buffer that never
// received any samples, distinct from a device/transport failure.
var ErrNoAudio = errors.New("no audio")

// EchoGate is the shared flag raised while Playback is emitting
// assistant speech. While true, AudioCapture drops incoming frames
// instead of appending them, so the assistant never hears itself.
type EchoGate struct {
	raised atomic.Bool
}

// NewEchoGate returns a lowered gate.
func NewEchoGate() *EchoGate { return &EchoGate{} }

func (g *EchoGate) Raise()         { g.raised.Store(true) }
func (g *EchoGate) Lower()         { g.raised.Store(false) }
func (g *EchoGate) IsRaised() bool { return g.raised.Load() }

// Recorder owns an open input stream and the buffer its callback
// appends to. Stop halts the callback before draining the buffer.
type Recorder struct {
	logger logging.Logger
	gate   *EchoGate
	stream *portaudio.Stream

	mu      sync.Mutex
	samples []float32
}

// Capture opens the default input device at 16kHz mono float32 with the
// device's default buffer size and starts appending samples, subject to
// the echo gate. onFrame, if non-nil, is invoked with every accepted
// frame in addition to buffering it, so a caller can drive a VAD from
// the live capture stream without a second device open.
func Capture(logger logging.Logger, gate *EchoGate, onFrame func([]float32)) (*Recorder, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}

	r := &Recorder{logger: logger, gate: gate}

	stream, err := portaudio.OpenDefaultStream(
		1, 0, float64(LiaAudioConfig.SampleRate), 0,
		func(in []float32) {
			if gate.IsRaised() {
				return
			}
			r.mu.Lock()
			r.samples = append(r.samples, in...)
			r.mu.Unlock()
			if onFrame != nil {
				onFrame(in)
			}
		},
	)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open input stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("start input stream: %w", err)
	}

	r.stream = stream
	return r, nil
}

// Stop halts the callback, drains the accumulated buffer, and encodes
// it to WAV. An empty buffer yields ErrNoAudio.
func (r *Recorder) Stop() ([]byte, error) {
	if err := r.stream.Stop(); err != nil {
		r.logger.Errorf("stopping input stream: %v", err)
	}
	if err := r.stream.Close(); err != nil {
		r.logger.Errorf("closing input stream: %v", err)
	}
	portaudio.Terminate()

	r.mu.Lock()
	samples := make([]float32, len(r.samples))
	copy(samples, r.samples)
	r.mu.Unlock()

	if len(samples) == 0 {
		return nil, ErrNoAudio
	}
	return EncodeWAV(samples), nil
}
