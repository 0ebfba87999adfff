// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/server/pty.go
// Summary: The PTY interface the server routes pane input/output through,
// and its creack/pty-backed implementation. PTY spawning itself is an
// external collaborator the layout/session core never references.

package server

import (
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// PTY is the narrow interface the server needs from a pseudo-terminal: a
// read/write stream plus the ability to report its own resize and exit.
type PTY interface {
	io.ReadWriter
	Resize(rows, cols int) error
	Close() error
	// Wait blocks until the child process exits and returns its error, if
	// any. Callers run Wait in its own goroutine.
	Wait() error
}

// shellPTY is the one concrete PTY backend, a real pseudo-terminal
// running the user's shell via github.com/creack/pty.
type shellPTY struct {
	f   *os.File
	cmd *exec.Cmd
}

// StartShell spawns the user's shell (from $SHELL, falling back to
// /bin/sh) attached to a freshly allocated pseudo-terminal sized rows x
// cols.
func StartShell(rows, cols int) (PTY, error) {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	cmd := exec.Command(shell)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, err
	}
	return &shellPTY{f: f, cmd: cmd}, nil
}

func (s *shellPTY) Read(p []byte) (int, error)  { return s.f.Read(p) }
func (s *shellPTY) Write(p []byte) (int, error) { return s.f.Write(p) }

func (s *shellPTY) Resize(rows, cols int) error {
	return pty.Setsize(s.f, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

func (s *shellPTY) Close() error {
	_ = s.f.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	return nil
}

func (s *shellPTY) Wait() error {
	return s.cmd.Wait()
}
