package audio

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sineWave(n int) []float32 {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(math.Sin(float64(i)*0.1)) * 0.5
	}
	return samples
}

func TestRMSSilence(t *testing.T) {
	silence := make([]float32, 320)
	assert.Less(t, computeRMS(silence), float32(energyThreshold), "expected silence RMS below threshold")
}

func TestRMSVoice(t *testing.T) {
	assert.Greater(t, computeRMS(sineWave(320)), float32(energyThreshold), "expected voice RMS above threshold")
}

func TestVadTransition(t *testing.T) {
	var flag atomic.Bool
	vad := NewVAD(&flag, 16000)

	silence := make([]float32, 320)
	for i := 0; i < 10; i++ {
		require.Equal(t, Silent, vad.ProcessFrame(silence), "expected Silent throughout silence frames")
	}

	voice := sineWave(320)
	for i := 0; i < 20; i++ {
		vad.ProcessFrame(voice)
	}
	assert.Equal(t, Speaking, vad.state, "expected Speaking after sustained voice")
	assert.True(t, flag.Load(), "expected speaking flag raised")
}

func TestVadReturnsToSilentAfterSilenceTail(t *testing.T) {
	var flag atomic.Bool
	vad := NewVAD(&flag, 16000)

	voice := sineWave(320)
	for i := 0; i < 20; i++ {
		vad.ProcessFrame(voice)
	}
	require.Equal(t, Speaking, vad.state, "expected Speaking before silence tail")

	silence := make([]float32, 320) // 20ms per frame at 16kHz
	// 1500ms silence needs ~75 frames of 20ms each.
	for i := 0; i < 80; i++ {
		vad.ProcessFrame(silence)
	}
	assert.Equal(t, Silent, vad.state, "expected Silent after sustained silence tail")
	assert.False(t, flag.Load(), "expected speaking flag cleared")
}
