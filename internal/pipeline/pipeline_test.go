package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lia-ai/lia-client/internal/audio"
	"github.com/lia-ai/lia-client/internal/contextstore"
	"github.com/lia-ai/lia-client/internal/logging"
	"github.com/lia-ai/lia-client/internal/orchestrator"
	"github.com/lia-ai/lia-client/internal/sentinel"
	"github.com/lia-ai/lia-client/internal/uievents"
)

func TestAskReturnsBusyWhenNotIdle(t *testing.T) {
	logger := logging.NewNop()
	sink := uievents.NewSink(logger)
	orc := orchestrator.New(sink)
	orc.StartListening() // now Listening, not Idle

	p := New(
		logger,
		Config{InferenceURL: "ws://127.0.0.1:1/ws"},
		contextstore.New(),
		sentinel.New(),
		orc,
		sink,
		audio.NewEchoGate(),
		nil,
	)

	assert.ErrorIs(t, p.Ask(), ErrBusy)
}
