// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/lia-ai/lia-client/internal/audio"
	"github.com/lia-ai/lia-client/internal/config"
	"github.com/lia-ai/lia-client/internal/contextstore"
	"github.com/lia-ai/lia-client/internal/editorchannel"
	"github.com/lia-ai/lia-client/internal/logging"
	"github.com/lia-ai/lia-client/internal/orchestrator"
	"github.com/lia-ai/lia-client/internal/pipeline"
	"github.com/lia-ai/lia-client/internal/playback"
	"github.com/lia-ai/lia-client/internal/portfile"
	"github.com/lia-ai/lia-client/internal/selftest"
	"github.com/lia-ai/lia-client/internal/sentinel"
	"github.com/lia-ai/lia-client/internal/uievents"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	logger, err := logging.New(
		logging.Name(cfg.Name),
		logging.Path(cfg.LogPath),
		logging.Level(cfg.LogLevel),
	)
	if err != nil {
		log.Fatalf("constructing logger: %v", err)
	}
	defer logger.Sync()

	selftest.Run(context.Background(), logger)

	ln, err := portfile.Bind(cfg.PreferredPort)
	if err != nil {
		logger.Errorf("binding control socket: %v", err)
		os.Exit(1)
	}
	port := portfile.ListenerPort(ln)

	if err := portfile.Write(port); err != nil {
		logger.Errorf("writing port advertisement file: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down")
		if err := portfile.Cleanup(); err != nil {
			logger.Errorf("cleaning up port file: %v", err)
		}
		os.Exit(0)
	}()
	defer portfile.Cleanup()

	store := contextstore.New()
	sink := uievents.NewSink(logger)
	orc := orchestrator.New(sink)
	echoGate := audio.NewEchoGate()

	player, err := playback.New(logger, echoGate, cfg.EchoGateReleaseDelay)
	if err != nil {
		logger.Errorf("opening playback device: %v", err)
		os.Exit(1)
	}
	defer player.Stop()

	pipe := pipeline.New(
		logger,
		pipeline.Config{
			InferenceURL:     cfg.InferenceURL,
			ListenWindow:     cfg.ListenWindow,
			HandsFreeEnabled: cfg.HandsFreeEnabled,
		},
		store,
		sentinel.New(),
		orc,
		sink,
		echoGate,
		player,
	)

	engine := gin.New()
	editorchannel.New(logger, store, sink).Register(engine)
	engine.POST("/ask", func(ctx *gin.Context) {
		if err := pipe.Ask(); err != nil {
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	logger.Infow("lia listening", "port", port)
	server := &http.Server{Handler: engine}
	if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
		logger.Errorf("control socket server stopped: %v", err)
	}
}
