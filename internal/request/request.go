// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package request builds the outbound multimodal request, applying
// Sentinel redaction and content-hash smart-caching dedup.
package request

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"github.com/lia-ai/lia-client/internal/hasher"
	"github.com/lia-ai/lia-client/internal/sentinel"
)

// AudioPayload is the audio leg of the outbound request.
type AudioPayload struct {
	Format  string  `json:"format"`
	DataB64 *string `json:"data_b64,omitempty"`
}

// VisionPayload is the vision leg of the outbound request.
type VisionPayload struct {
	Hash    string  `json:"hash"`
	DataB64 *string `json:"data_b64,omitempty"`
}

// CodePayload is the code leg of the outbound request.
type CodePayload struct {
	Hash     string  `json:"hash"`
	Language string  `json:"language"`
	Content  *string `json:"content,omitempty"`
}

// Payload bundles the three modality legs.
type Payload struct {
	Audio  AudioPayload  `json:"audio"`
	Vision VisionPayload `json:"vision"`
	Code   CodePayload   `json:"code"`
}

// OutboundRequest is the wire document sent to the remote service.
type OutboundRequest struct {
	RequestID string  `json:"request_id"`
	Action    string  `json:"action"`
	Payload   Payload `json:"payload"`
}

const actionMultimodalInference = "multimodal_inference"

// Build composes the deduplicated outbound request. It is pure with
// respect to its inputs; it never mutates them.
func Build(
	s *sentinel.Sentinel,
	codeWindow string,
	language string,
	imageBytes []byte,
	audioBytes []byte,
	prevCodeHash *string,
	prevImageHash *string,
) OutboundRequest {
	sanitized := s.Sanitize(codeWindow)
	codeHash := hasher.SHA256Hex(sanitized)
	imageHash := hasher.SHA256HexBytes(imageBytes)

	var codeContent *string
	if prevCodeHash == nil || *prevCodeHash != codeHash {
		c := sanitized
		codeContent = &c
	}

	var visionData *string
	if len(imageBytes) > 0 && (prevImageHash == nil || *prevImageHash != imageHash) {
		b := base64.StdEncoding.EncodeToString(imageBytes)
		visionData = &b
	}

	var audioData *string
	if len(audioBytes) > 0 {
		b := base64.StdEncoding.EncodeToString(audioBytes)
		audioData = &b
	}

	return OutboundRequest{
		RequestID: newRequestID(),
		Action:    actionMultimodalInference,
		Payload: Payload{
			Audio:  AudioPayload{Format: "wav", DataB64: audioData},
			Vision: VisionPayload{Hash: imageHash, DataB64: visionData},
			Code:   CodePayload{Hash: codeHash, Language: language, Content: codeContent},
		},
	}
}

func newRequestID() string {
	return fmt.Sprintf("req-%s", uuid.NewString()[:8])
}
