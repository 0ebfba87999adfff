// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/server/manager.go
// Summary: CLI-facing session discovery: scanning the sockets directory
// and probing each live server for a status summary (backs `mux list`).
// This is unrelated to the in-process Server type above; the CLI process
// never holds a texel.Session of its own, it only talks to one over a
// socket.

package server

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mux/protocol"
)

// probeTimeout bounds how long `mux list` waits on a single socket before
// treating it as stale.
const probeTimeout = 500 * time.Millisecond

// SessionInfo summarizes one discovered session for CLI display.
type SessionInfo struct {
	Name    string
	Windows int
	Panes   int
	// Alive is false when the socket exists but nothing answered it (a
	// server that crashed without cleaning up its socket file).
	Alive bool
}

// ListSessions probes every socket in socketsDir and returns a summary of
// each. Sockets that don't answer are reported with Alive=false rather
// than omitted, so a caller can offer to clean them up.
func ListSessions(socketsDir string) ([]SessionInfo, error) {
	entries, err := os.ReadDir(socketsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("server: read sockets dir: %w", err)
	}

	var out []SessionInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sock") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".sock")
		path := filepath.Join(socketsDir, e.Name())

		info, err := probeSession(path)
		if err != nil {
			out = append(out, SessionInfo{Name: name, Alive: false})
			continue
		}
		info.Name = name
		out = append(out, info)
	}
	return out, nil
}

func probeSession(socketPath string) (SessionInfo, error) {
	conn, err := net.DialTimeout("unix", socketPath, probeTimeout)
	if err != nil {
		return SessionInfo{}, err
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(probeTimeout))

	if err := protocol.WriteMessage(conn, protocol.TypeStatusRequest, protocol.StatusRequest{}); err != nil {
		return SessionInfo{}, err
	}

	for {
		env, err := protocol.ReadMessage(conn)
		if err != nil {
			return SessionInfo{}, err
		}
		if env.Type != protocol.TypeStatusResponse {
			// Hello or some other greeting arrived first; keep reading.
			continue
		}
		var resp protocol.StatusResponse
		if err := decode(env, &resp); err != nil {
			return SessionInfo{}, err
		}
		return SessionInfo{
			Name:    resp.SessionName,
			Windows: resp.Windows,
			Panes:   resp.Panes,
			Alive:   true,
		}, nil
	}
}

// Dial connects to the server listening on socketPath.
func Dial(socketPath string) (net.Conn, error) {
	return net.Dial("unix", socketPath)
}

// IsAlive reports whether a server is actually listening and answering on
// socketPath, as opposed to a stale socket file left behind by a server
// that crashed without cleaning up.
func IsAlive(socketPath string) bool {
	_, err := probeSession(socketPath)
	return err == nil
}
