package uievents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lia-ai/lia-client/internal/logging"
)

func TestEmitDeliversInOrder(t *testing.T) {
	s := NewSink(logging.NewNop())
	s.Emit(EventStreamClear)
	s.EmitPayload(EventStreamChunk, "hello")
	s.Emit(EventStreamEnd)

	want := []string{EventStreamClear, EventStreamChunk, EventStreamEnd}
	for i, w := range want {
		ev := <-s.Events()
		assert.Equal(t, w, ev.Name, "event %d", i)
	}
}

func TestEmitDropsWhenFull(t *testing.T) {
	s := NewSink(logging.NewNop())
	for i := 0; i < sinkBufferSize+10; i++ {
		s.Emit(EventStreamClear)
	}
	// Must not deadlock or panic; draining recovers the buffered events.
	drained := 0
	for {
		select {
		case <-s.Events():
			drained++
		default:
			require.Equal(t, sinkBufferSize, drained, "expected buffered events to cap at sinkBufferSize")
			return
		}
	}
}
