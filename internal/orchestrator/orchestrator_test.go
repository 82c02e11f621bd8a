package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lia-ai/lia-client/internal/logging"
	"github.com/lia-ai/lia-client/internal/uievents"
)

func drainEvents(sink *uievents.Sink) []uievents.Event {
	var events []uievents.Event
	for {
		select {
		case ev := <-sink.Events():
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestValidTransitionSequence(t *testing.T) {
	sink := uievents.NewSink(logging.NewNop())
	o := New(sink)

	require.Equal(t, Idle, o.State(), "expected initial state Idle")

	o.StartListening()
	assert.Equal(t, Listening, o.State())
	o.StartThinking()
	assert.Equal(t, Thinking, o.State())
	o.StartResponding()
	assert.Equal(t, Responding, o.State())
	o.Finish()
	assert.Equal(t, Idle, o.State(), "expected Idle after Finish")

	events := drainEvents(sink)
	wantStates := []string{"LISTENING", "THINKING", "RESPONDING", "IDLE"}
	var gotStates []string
	streamEndSeen := false
	for _, ev := range events {
		switch ev.Name {
		case uievents.EventStreamEnd:
			streamEndSeen = true
		case uievents.EventStateChange:
			gotStates = append(gotStates, ev.Payload.(string))
		}
	}
	require.Len(t, gotStates, len(wantStates), "expected one state-change event per transition")
	for i, want := range wantStates {
		assert.Equal(t, want, gotStates[i], "state-change %d", i)
	}
	assert.True(t, streamEndSeen, "expected a stream-end event from Finish")
}

func TestInvalidTransitionIsIgnored(t *testing.T) {
	sink := uievents.NewSink(logging.NewNop())
	o := New(sink)

	o.StartThinking()
	assert.Equal(t, Idle, o.State(), "expected Idle unchanged")
	o.StartResponding()
	assert.Equal(t, Idle, o.State(), "expected Idle unchanged")
	assert.Empty(t, drainEvents(sink), "expected no events for no-op transitions")
}
