// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package audio

import (
	"math"
	"sync/atomic"
)

const (
	energyThreshold = 0.02 // RMS threshold on the f32 block
	activationMS    = 200  // continuous above-threshold time to enter Speaking
	silenceMS       = 1500 // continuous below-threshold time to return to Silent
)

// VadState is one of the two states of the voice-activity detector.
type VadState int

const (
	Silent VadState = iota
	Speaking
)

// VAD is a single-speaker, two-state RMS voice-activity detector used
// for hands-free trigger mode.
type VAD struct {
	state         VadState
	speakingFlag  *atomic.Bool
	sampleRate    uint32
	energyAboveMS uint64
	energyBelowMS uint64
}

// NewVAD creates a detector at sampleRate. speakingFlag is written true
// on entering Speaking and false on returning to Silent.
func NewVAD(speakingFlag *atomic.Bool, sampleRate uint32) *VAD {
	return &VAD{
		speakingFlag: speakingFlag,
		sampleRate:   sampleRate,
	}
}

// ProcessFrame computes RMS energy over samples, advances the hysteresis
// counters, and returns the resulting state.
func (v *VAD) ProcessFrame(samples []float32) VadState {
	rms := computeRMS(samples)
	frameDurationMS := uint64(len(samples)) * 1000 / uint64(v.sampleRate)

	if rms > energyThreshold {
		v.energyAboveMS += frameDurationMS
		v.energyBelowMS = 0
	} else {
		v.energyBelowMS += frameDurationMS
		v.energyAboveMS = 0
	}

	switch v.state {
	case Silent:
		if v.energyAboveMS >= activationMS {
			v.state = Speaking
			v.speakingFlag.Store(true)
		}
	case Speaking:
		if v.energyBelowMS >= silenceMS {
			v.state = Silent
			v.speakingFlag.Store(false)
		}
	}
	return v.state
}

func computeRMS(samples []float32) float32 {
	if len(samples) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range samples {
		sumSquares += float64(s) * float64(s)
	}
	return float32(math.Sqrt(sumSquares / float64(len(samples))))
}
