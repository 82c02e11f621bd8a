// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package portfile binds the local control socket's listening port and
// advertises it at $HOME/.lia/port for the editor extension to read.
package portfile

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
)

// Bind tries preferred first; on failure it lets the OS assign a free
// port instead. The caller owns the returned listener.
func Bind(preferred int) (net.Listener, error) {
	addr := fmt.Sprintf("127.0.0.1:%d", preferred)
	if ln, err := net.Listen("tcp", addr); err == nil {
		return ln, nil
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("bind fallback port: %w", err)
	}
	return ln, nil
}

func dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".lia"), nil
}

// Write records port at $HOME/.lia/port, creating the directory if
// needed.
func Write(port int) error {
	liaDir, err := dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(liaDir, 0o755); err != nil {
		return fmt.Errorf("create .lia dir: %w", err)
	}
	path := filepath.Join(liaDir, "port")
	if err := os.WriteFile(path, []byte(fmt.Sprintf("%d", port)), 0o644); err != nil {
		return fmt.Errorf("write port file: %w", err)
	}
	return nil
}

// Cleanup removes the advertised port file. Safe to call even if it
// was never written.
func Cleanup() error {
	liaDir, err := dir()
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(liaDir, "port")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove port file: %w", err)
	}
	return nil
}

// ListenerPort extracts the bound TCP port from ln.
func ListenerPort(ln net.Listener) int {
	return ln.Addr().(*net.TCPAddr).Port
}
