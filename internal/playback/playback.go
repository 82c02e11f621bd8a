// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package playback drives a single FIFO audio sink on the default
// output device and keeps the shared echo gate in sync with whether
// audible output may be reaching the microphone.
package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
	"github.com/lia-ai/lia-client/internal/audio"
	"github.com/lia-ai/lia-client/internal/logging"
)

// Player owns the default output stream and a FIFO queue of decoded
// samples the stream callback drains.
type Player struct {
	logger       logging.Logger
	gate         *audio.EchoGate
	stream       *portaudio.Stream
	releaseDelay time.Duration

	mu           sync.Mutex
	queue        []float32
	releaseTimer *time.Timer
}

// New opens the default output device and returns a Player with an
// empty sink. gate is raised on every Enqueue. Once the sink drains,
// the gate stays raised for releaseDelay before lowering, absorbing
// the output device's own buffering tail so the mic doesn't pick up
// trailing playback as if it were the user speaking.
func New(logger logging.Logger, gate *audio.EchoGate, releaseDelay time.Duration) (*Player, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}

	p := &Player{logger: logger, gate: gate, releaseDelay: releaseDelay}

	stream, err := portaudio.OpenDefaultStream(
		0, 1, float64(audio.LiaAudioConfig.SampleRate), 0,
		func(out []float32) {
			p.mu.Lock()
			n := copy(out, p.queue)
			p.queue = p.queue[n:]
			empty := len(p.queue) == 0
			p.mu.Unlock()

			for i := n; i < len(out); i++ {
				out[i] = 0
			}
			if empty {
				p.scheduleRelease()
			}
		},
	)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("open output stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("start output stream: %w", err)
	}

	p.stream = stream
	return p, nil
}

// Enqueue decodes audioBytes as a WAV container and
// appends the result to the sink, raising the echo gate first so the
// capture side never records the resulting playback.
func (p *Player) Enqueue(audioBytes []byte) error {
	p.gate.Raise()

	samples, err := audio.DecodeWAV(audioBytes)
	if err != nil {
		p.logger.Errorf("decode playback chunk: %v", err)
		return fmt.Errorf("decode playback chunk: %w", err)
	}

	p.mu.Lock()
	p.queue = append(p.queue, samples...)
	if p.releaseTimer != nil {
		p.releaseTimer.Stop()
		p.releaseTimer = nil
	}
	p.mu.Unlock()
	return nil
}

// IsPlaying reports whether the sink still holds undrained samples,
// and reconciles the echo gate with that fact.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	playing := len(p.queue) > 0
	p.mu.Unlock()

	if playing {
		p.gate.Raise()
	} else {
		p.scheduleRelease()
	}
	return playing
}

// scheduleRelease lowers the echo gate after releaseDelay, unless the
// sink has taken on new samples in the meantime (Enqueue cancels the
// pending timer).
func (p *Player) scheduleRelease() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.releaseTimer != nil {
		return
	}
	p.releaseTimer = time.AfterFunc(p.releaseDelay, func() {
		p.mu.Lock()
		p.releaseTimer = nil
		stillEmpty := len(p.queue) == 0
		p.mu.Unlock()
		if stillEmpty {
			p.gate.Lower()
		}
	})
}

// Stop flushes the sink and lowers the echo gate unconditionally,
// bypassing the release delay.
func (p *Player) Stop() error {
	p.mu.Lock()
	p.queue = nil
	if p.releaseTimer != nil {
		p.releaseTimer.Stop()
		p.releaseTimer = nil
	}
	p.mu.Unlock()
	p.gate.Lower()

	if err := p.stream.Stop(); err != nil {
		p.logger.Errorf("stopping output stream: %v", err)
	}
	if err := p.stream.Close(); err != nil {
		p.logger.Errorf("closing output stream: %v", err)
	}
	portaudio.Terminate()
	return nil
}
