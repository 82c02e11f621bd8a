// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package hasher computes content-addressing digests used to decide
// whether a modality's payload changed since the last inference cycle.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the lowercase hex SHA-256 digest of text.
func SHA256Hex(text string) string {
	return SHA256HexBytes([]byte(text))
}

// SHA256HexBytes returns the lowercase hex SHA-256 digest of data.
func SHA256HexBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
