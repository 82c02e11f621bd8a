package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256HexDeterministic(t *testing.T) {
	a := SHA256Hex("function f(){return 1;}")
	b := SHA256Hex("function f(){return 1;}")
	assert.Equal(t, a, b, "expected deterministic digest")
}

func TestSHA256HexSensitiveToContent(t *testing.T) {
	a := SHA256Hex("hello")
	b := SHA256Hex("hello!")
	assert.NotEqual(t, a, b, "expected different digests for different content")
}

func TestSHA256HexFormat(t *testing.T) {
	h := SHA256Hex("anything")
	assert.Len(t, h, 64, "expected 64 hex chars")
	for _, c := range h {
		assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'), "expected lowercase hex, got char %q", c)
	}
}

func TestSHA256HexBytes(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0xFF}
	assert.Equal(t, SHA256HexBytes(data), SHA256HexBytes(data), "expected deterministic digest for bytes")
	assert.NotEqual(t, SHA256HexBytes(data), SHA256HexBytes([]byte{0x00, 0x01, 0x02, 0xFE}), "expected different digests for different bytes")
}
