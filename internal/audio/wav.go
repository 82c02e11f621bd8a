// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const riffHeaderSize = 44

// EncodeWAV renders f32 PCM samples (range [-1.0, 1.0]) as a RIFF/WAVE
// byte sequence: PCM signed 16-bit, mono, 16kHz, little-endian. The
// header is present even when samples is empty.
func EncodeWAV(samples []float32) []byte {
	pcm := make([]byte, 0, len(samples)*bytesPerSample)
	for _, s := range samples {
		pcm = binary.LittleEndian.AppendUint16(pcm, floatToPCM16(s))
	}
	return wrapPCM(pcm)
}

func floatToPCM16(s float32) uint16 {
	if s > 1.0 {
		s = 1.0
	} else if s < -1.0 {
		s = -1.0
	}
	return uint16(int16(s * 32767))
}

func wrapPCM(pcm []byte) []byte {
	var buf bytes.Buffer
	sampleRate := LiaAudioConfig.SampleRate
	channels := LiaAudioConfig.Channels
	byteRate := int(sampleRate) * int(channels) * bytesPerSample

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(pcmFormatTag))
	binary.Write(&buf, binary.LittleEndian, channels)
	binary.Write(&buf, binary.LittleEndian, sampleRate)
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(bytesPerSample))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}

// DecodeWAV parses a RIFF/WAVE PCM16 container and returns f32 samples
// in [-1.0, 1.0]. It assumes the container is self-delimited and
// complete, per the TTS chunk contract. Chunks before data (fmt
// included) are skipped without being parsed, so the data payload is
// always read as PCM16 whatever the fmt chunk declares.
func DecodeWAV(data []byte) ([]float32, error) {
	if len(data) < riffHeaderSize {
		return nil, fmt.Errorf("wav: too short to contain a header (%d bytes)", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("wav: missing RIFF/WAVE signature")
	}

	offset := 12
	var dataChunk []byte
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		body := offset + 8
		if body+int(size) > len(data) {
			break
		}
		if id == "data" {
			dataChunk = data[body : body+int(size)]
			break
		}
		offset = body + int(size)
		if size%2 == 1 {
			offset++ // chunks are word-aligned
		}
	}
	if dataChunk == nil {
		return nil, fmt.Errorf("wav: no data chunk found")
	}

	samples := make([]float32, len(dataChunk)/bytesPerSample)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(dataChunk[i*2 : i*2+2]))
		samples[i] = float32(v) / 32767
	}
	return samples, nil
}
