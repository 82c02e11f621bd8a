// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package selftest probes the microphone and monitor devices at
// startup, concurrently, and logs what it finds. Failures here are
// informational: the process still starts, the same way the original
// client's device probes never gated startup.
package selftest

import (
	"context"

	"github.com/gordonklaus/portaudio"
	"github.com/kbinani/screenshot"
	"github.com/lia-ai/lia-client/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Run probes the default input device and the primary monitor
// concurrently, logging the outcome of each through logger.
func Run(ctx context.Context, logger logging.Logger) {
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		probeMicrophone(logger)
		return nil
	})
	g.Go(func() error {
		probeMonitor(logger)
		return nil
	})

	// Errors are never returned by the probes themselves; Wait only
	// blocks until both have logged their result.
	_ = g.Wait()
}

func probeMicrophone(logger logging.Logger) {
	if err := portaudio.Initialize(); err != nil {
		logger.Errorf("self-test: portaudio unavailable: %v", err)
		return
	}
	defer portaudio.Terminate()

	device, err := portaudio.DefaultInputDevice()
	if err != nil || device == nil {
		logger.Errorw("self-test: no default microphone detected")
		return
	}
	logger.Infow("self-test: microphone detected", "device", device.Name)
}

func probeMonitor(logger logging.Logger) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		logger.Errorw("self-test: no monitor detected")
		return
	}
	logger.Infow("self-test: monitor detected", "count", n)
}
