// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package audio implements microphone capture with echo-gate
// suppression, WAV encoding, and the RMS voice-activity detector.
package audio

// Config describes a fixed PCM layout. The client runs entirely at
// LiaAudioConfig end to end: mic capture, WAV encode, TTS playback.
type Config struct {
	SampleRate uint32
	Channels   uint16
}

// LiaAudioConfig is the only audio layout this client speaks: 16kHz
// mono, matching the wire contract in the request/response documents.
var LiaAudioConfig = Config{SampleRate: 16000, Channels: 1}

const (
	bytesPerSample = 2  // PCM16 -> 2 bytes per sample
	bitsPerSample  = 16
	pcmFormatTag   = 1 // WAV PCM format tag
)
