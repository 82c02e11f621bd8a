// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package pipeline wires every component into the one-shot Ask cycle:
// Listening → Thinking → Responding → Idle.
package pipeline

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lia-ai/lia-client/internal/audio"
	"github.com/lia-ai/lia-client/internal/cloudclient"
	"github.com/lia-ai/lia-client/internal/contextstore"
	"github.com/lia-ai/lia-client/internal/logging"
	"github.com/lia-ai/lia-client/internal/orchestrator"
	"github.com/lia-ai/lia-client/internal/playback"
	"github.com/lia-ai/lia-client/internal/request"
	"github.com/lia-ai/lia-client/internal/sentinel"
	"github.com/lia-ai/lia-client/internal/uievents"
	"github.com/lia-ai/lia-client/internal/vision"
)

// ErrBusy is returned when Ask is called while the orchestrator isn't
// Idle; the cycle already in progress is left untouched.
var ErrBusy = errors.New("pipeline: busy")

const noContextMessage = "No editor context available. Open a file in your editor with the Lia extension active."

// Pipeline holds every long-lived component a cycle touches, plus the
// previous-digest pair that drives smart-caching dedup across cycles.
type Pipeline struct {
	logger       logging.Logger
	cfg          Config
	store        *contextstore.Store
	sentinel     *sentinel.Sentinel
	orchestrator *orchestrator.Orchestrator
	sink         *uievents.Sink
	echoGate     *audio.EchoGate
	player       *playback.Player

	digestMu      sync.Mutex
	prevCodeHash  *string
	prevImageHash *string
}

// Config bundles the cycle's tunables, mirrored from config.AppConfig
// to keep this package independent of the config loader.
type Config struct {
	InferenceURL     string
	ListenWindow     time.Duration
	HandsFreeEnabled bool
}

// New returns a Pipeline ready to run Ask cycles.
func New(
	logger logging.Logger,
	cfg Config,
	store *contextstore.Store,
	s *sentinel.Sentinel,
	orc *orchestrator.Orchestrator,
	sink *uievents.Sink,
	gate *audio.EchoGate,
	player *playback.Player,
) *Pipeline {
	return &Pipeline{
		logger:       logger,
		cfg:          cfg,
		store:        store,
		sentinel:     s,
		orchestrator: orc,
		sink:         sink,
		echoGate:     gate,
		player:       player,
	}
}

// Ask runs one complete cycle. It returns ErrBusy without side effects
// if the orchestrator isn't Idle.
func (p *Pipeline) Ask() error {
	if p.orchestrator.State() != orchestrator.Idle {
		return ErrBusy
	}

	p.orchestrator.StartListening()
	audioBytes := p.recordListeningWindow()

	p.orchestrator.StartThinking()

	snapshot := p.store.Snapshot()
	if snapshot == nil {
		p.sink.EmitPayload(uievents.EventStreamChunk, noContextMessage)
		p.sink.Emit(uievents.EventStreamEnd)
		p.orchestrator.Finish()
		return nil
	}

	imageBytes, err := vision.CapturePrimary()
	if err != nil {
		p.logger.Errorf("screen capture failed, continuing with no image: %v", err)
		imageBytes = nil
	}

	p.digestMu.Lock()
	prevCode, prevImage := p.prevCodeHash, p.prevImageHash
	p.digestMu.Unlock()

	req := request.Build(
		p.sentinel,
		snapshot.FileContext.ContentWindow,
		snapshot.FileContext.Language,
		imageBytes,
		audioBytes,
		prevCode,
		prevImage,
	)

	p.digestMu.Lock()
	p.prevCodeHash = &req.Payload.Code.Hash
	p.prevImageHash = &req.Payload.Vision.Hash
	p.digestMu.Unlock()

	requestJSON, err := json.Marshal(req)
	if err != nil {
		p.logger.Errorf("marshal outbound request: %v", err)
		p.forwardErrorAndFinish(err)
		return nil
	}
	p.logger.Infow("built outbound request", "requestID", req.RequestID, "bytes", len(requestJSON))

	p.sink.Emit(uievents.EventStreamClear)
	p.orchestrator.StartResponding()

	result, err := cloudclient.SendAndStream(p.logger, p.cfg.InferenceURL, requestJSON, p.sink)
	if err != nil {
		p.logger.Errorf("cloud inference failed: %v", err)
		p.forwardErrorAndFinish(err)
		return nil
	}

	for _, chunk := range result.TTSChunks {
		if err := p.player.Enqueue(chunk); err != nil {
			p.logger.Errorf("enqueue tts chunk: %v", err)
			continue
		}
	}
	for p.player.IsPlaying() {
		time.Sleep(20 * time.Millisecond)
	}

	p.orchestrator.Finish()
	return nil
}

func (p *Pipeline) forwardErrorAndFinish(err error) {
	p.sink.EmitPayload(uievents.EventStreamChunk, "[ERROR] "+err.Error())
	p.sink.Emit(uievents.EventStreamEnd)
	p.orchestrator.Finish()
}

// recordListeningWindow captures audio for the fixed listening window,
// or, in hands-free mode, until the VAD settles back to Silent after
// having spoken (with its silence-tail already baked into the VAD's
// own hysteresis).
func (p *Pipeline) recordListeningWindow() []byte {
	if p.cfg.HandsFreeEnabled {
		return p.recordUntilVadSilent()
	}

	recorder, err := audio.Capture(p.logger, p.echoGate, nil)
	if err != nil {
		p.logger.Errorf("starting audio capture: %v", err)
		return nil
	}
	time.Sleep(p.cfg.ListenWindow)
	return stopRecorder(p.logger, recorder)
}

func (p *Pipeline) recordUntilVadSilent() []byte {
	var speaking atomic.Bool
	vad := audio.NewVAD(&speaking, audio.LiaAudioConfig.SampleRate)
	hasSpoken := make(chan struct{})
	var spokenOnce sync.Once

	recorder, err := audio.Capture(p.logger, p.echoGate, func(frame []float32) {
		if vad.ProcessFrame(frame) == audio.Speaking {
			spokenOnce.Do(func() { close(hasSpoken) })
		}
	})
	if err != nil {
		p.logger.Errorf("starting audio capture: %v", err)
		return nil
	}

	const pollInterval = 20 * time.Millisecond
	deadline := time.Now().Add(p.cfg.ListenWindow * 4)

	select {
	case <-hasSpoken:
	case <-time.After(p.cfg.ListenWindow):
		return stopRecorder(p.logger, recorder)
	}

	for speaking.Load() && time.Now().Before(deadline) {
		time.Sleep(pollInterval)
	}
	return stopRecorder(p.logger, recorder)
}

func stopRecorder(logger logging.Logger, recorder *audio.Recorder) []byte {
	audioBytes, err := recorder.Stop()
	if err != nil {
		if !errors.Is(err, audio.ErrNoAudio) {
			logger.Errorf("stopping audio capture: %v", err)
		}
		return nil
	}
	return audioBytes
}
