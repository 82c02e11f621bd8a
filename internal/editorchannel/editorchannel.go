// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package editorchannel hosts the local-loopback /ws upgrade that the
// editor extension connects to, writing every parsed editor-context
// event to the ContextStore and projecting a compact update to the UI.
package editorchannel

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lia-ai/lia-client/internal/contextstore"
	"github.com/lia-ai/lia-client/internal/logging"
	"github.com/lia-ai/lia-client/internal/uievents"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Channel wires the /ws and /healthz routes onto a gin engine.
type Channel struct {
	logger logging.Logger
	store  *contextstore.Store
	sink   *uievents.Sink
}

// New returns a Channel that writes accepted editor-context events to
// store and emits a context-update UI event for each.
func New(logger logging.Logger, store *contextstore.Store, sink *uievents.Sink) *Channel {
	return &Channel{logger: logger, store: store, sink: sink}
}

// Register attaches this channel's routes to engine.
func (c *Channel) Register(engine *gin.Engine) {
	c.logger.Info("registering editor channel routes")
	engine.GET("/healthz", c.healthz)
	engine.GET("/ws", c.serveWS)
}

func (c *Channel) healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// serveWS upgrades the connection and loops reading editor-context
// frames until the client disconnects or a transport error occurs.
// The server survives individual client failures and keeps listening
// for the next connection.
func (c *Channel) serveWS(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Errorf("editor channel upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	c.logger.Info("editor connected")
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			c.logger.Debugf("editor channel transport error: %v", err)
			break
		}

		var update contextstore.EditorContext
		if err := json.Unmarshal(message, &update); err != nil {
			c.logger.Errorf("unparseable editor-context frame: %v", err)
			continue
		}

		c.store.Set(update)
		c.sink.EmitPayload(uievents.EventContextUpdate, uievents.ContextUpdatePayload{
			FileName:   update.FileContext.FileName,
			FilePath:   update.FileContext.FilePath,
			Language:   update.FileContext.Language,
			CursorLine: update.FileContext.CursorLine,
			Workspace:  update.WorkspaceName,
		})
	}
	c.logger.Info("editor disconnected")
}
