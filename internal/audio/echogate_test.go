package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEchoGateStartsLowered(t *testing.T) {
	g := NewEchoGate()
	assert.False(t, g.IsRaised(), "expected a fresh gate to start lowered")
}

func TestEchoGateRaiseLower(t *testing.T) {
	g := NewEchoGate()
	g.Raise()
	assert.True(t, g.IsRaised(), "expected gate to report raised")
	g.Lower()
	assert.False(t, g.IsRaised(), "expected gate to report lowered")
}
