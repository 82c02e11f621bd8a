// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package vision captures a one-shot PNG snapshot of the primary
// monitor.
package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/kbinani/screenshot"
)

// ErrNoMonitor is returned when no attached monitor is reported.
var ErrNoMonitor = errors.New("no monitor available")

// CapturePrimary enumerates attached monitors, selects index 0, grabs
// its pixels, and PNG-encodes them in memory.
func CapturePrimary() ([]byte, error) {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		return nil, ErrNoMonitor
	}

	bounds := screenshot.GetDisplayBounds(0)
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, fmt.Errorf("capture primary monitor: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
