// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package cloudclient opens a duplex text-framed session to the
// remote inference service, sends the outbound request, and streams
// the reply chunks toward the UI and toward the caller's TTS buffer.
package cloudclient

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lia-ai/lia-client/internal/logging"
	"github.com/lia-ai/lia-client/internal/uievents"
)

const (
	streamInProgress = "in_progress"
	streamCompleted  = "completed"
	streamError      = "error"

	chunkCodeSuggestion = "code_suggestion"
	chunkAudio          = "audio"

	handshakeTimeout = 30 * time.Second
	maxMessageBytes  = 10 * 1024 * 1024
)

// InboundChunk is one streaming reply unit from the service.
type InboundChunk struct {
	RequestID    string  `json:"request_id"`
	StreamStatus string  `json:"stream_status"`
	ChunkType    string  `json:"chunk_type"`
	Data         *string `json:"data"`
}

// StreamResult is what a completed session hands back to the caller.
type StreamResult struct {
	TTSChunks [][]byte
}

// SendAndStream opens a full-duplex socket to url, sends requestJSON as
// a single text frame, then consumes inbound frames until a completed
// or error chunk is observed (or the transport fails). Text chunks are
// forwarded to sink in receive order; audio chunks are base64-decoded
// and accumulated in the returned StreamResult, also in receive order.
func SendAndStream(logger logging.Logger, url string, requestJSON []byte, sink *uievents.Sink) (StreamResult, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return StreamResult{}, fmt.Errorf("connect to cloud: %w", err)
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageBytes)

	if err := conn.WriteMessage(websocket.TextMessage, requestJSON); err != nil {
		return StreamResult{}, fmt.Errorf("send outbound request: %w", err)
	}

	result := StreamResult{}

	for {
		msgType, message, err := conn.ReadMessage()
		if err != nil {
			// A normal/going-away close without a prior completed chunk is
			// treated as a clean end of stream, not a transport error,
			// matching the original client's behavior.
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return result, nil
			}
			return StreamResult{}, fmt.Errorf("cloud read error: %w", err)
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var chunk InboundChunk
		if err := json.Unmarshal(message, &chunk); err != nil {
			logger.Errorf("unparseable inbound chunk: %v", err)
			continue
		}

		switch chunk.StreamStatus {
		case streamInProgress:
			switch chunk.ChunkType {
			case chunkCodeSuggestion:
				if chunk.Data != nil {
					sink.EmitPayload(uievents.EventStreamChunk, *chunk.Data)
				}
			case chunkAudio:
				if chunk.Data != nil {
					decoded, err := base64.StdEncoding.DecodeString(*chunk.Data)
					if err != nil {
						logger.Errorf("decode audio chunk: %v", err)
						continue
					}
					result.TTSChunks = append(result.TTSChunks, decoded)
				}
			}
		case streamCompleted:
			return result, nil
		case streamError:
			msg := "unknown error"
			if chunk.Data != nil {
				msg = *chunk.Data
			}
			sink.EmitPayload(uievents.EventStreamChunk, "[ERROR] "+msg)
			return result, nil
		}
	}
}
