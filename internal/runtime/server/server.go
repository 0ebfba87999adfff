// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/server/server.go
// Summary: The authoritative multiplexer server (§4.11): one texel.Session,
// one PTY and one EmulatorState per pane, and the set of attached clients
// it fans output out to.

package server

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"mux/ids"
	"mux/protocol"
	"mux/rect"
	"mux/texel"
)

// defaultPaneRows/defaultPaneCols size a pane's PTY before any client has
// reported a real viewport (the session's very first pane, before an
// Attach).
const (
	defaultPaneRows = 24
	defaultPaneCols = 80
)

// clientState tracks what one attached connection has told the server
// about its own viewport, used to compute the shared window area as the
// minimum across all attached clients (§4.11 "Resize").
type clientState struct {
	rows, cols int
}

// Server owns the single authoritative session for a mux instance: the
// layout/window model, one PTY and emulator per pane, and every attached
// client's connection.
type Server struct {
	mu        sync.Mutex
	session   *texel.Session
	area      rect.Rect
	ptys      map[ids.PaneId]PTY
	emulators map[ids.PaneId]*EmulatorState
	clients   map[*client]*clientState

	history     *History
	sessionPath string

	listener net.Listener
	done     chan struct{}
}

// New constructs a server around an already-created session. Every pane
// already present in session gets a spawned PTY, initially sized
// defaultPaneRows x defaultPaneCols; area is the window area panes are
// tiled into when the layout is next recomputed.
func New(session *texel.Session, area rect.Rect, history *History, sessionPath string) (*Server, error) {
	if area.W == 0 || area.H == 0 {
		area = rect.Rect{W: defaultPaneCols, H: defaultPaneRows}
	}
	s := &Server{
		session:     session,
		area:        area,
		ptys:        make(map[ids.PaneId]PTY),
		emulators:   make(map[ids.PaneId]*EmulatorState),
		clients:     make(map[*client]*clientState),
		history:     history,
		sessionPath: sessionPath,
		done:        make(chan struct{}),
	}
	for _, w := range session.Windows {
		for _, pid := range w.PaneIDs() {
			if err := s.spawnPane(pid, defaultPaneRows, defaultPaneCols); err != nil {
				return nil, fmt.Errorf("server: spawn initial pane %d: %w", pid, err)
			}
		}
	}
	if history != nil {
		_ = history.Record(session.Name, EventCreated)
	}
	return s, nil
}

// startShell is overridden in tests to avoid spawning a real shell.
var startShell = StartShell

func (s *Server) spawnPane(id ids.PaneId, rows, cols int) error {
	pty, err := startShell(rows, cols)
	if err != nil {
		return err
	}
	s.ptys[id] = pty
	s.emulators[id] = NewEmulatorState(rows, cols)
	go s.readPaneOutput(id, pty)
	return nil
}

// readPaneOutput copies PTY output into the pane's emulator state and
// fans it out to every attached client until the PTY closes.
func (s *Server) readPaneOutput(id ids.PaneId, p PTY) {
	buf := make([]byte, 32*1024)
	for {
		n, err := p.Read(buf)
		if n > 0 {
			data := append([]byte(nil), buf[:n]...)
			s.mu.Lock()
			if em, ok := s.emulators[id]; ok {
				em.Feed(data)
			}
			s.mu.Unlock()
			s.broadcast(protocol.TypeOutput, protocol.Output{PaneID: id, Data: data})
		}
		if err != nil {
			s.handlePaneExit(id)
			return
		}
	}
}

func (s *Server) handlePaneExit(id ids.PaneId) {
	s.mu.Lock()
	if pty, ok := s.ptys[id]; ok {
		_ = pty.Close()
		delete(s.ptys, id)
	}
	delete(s.emulators, id)

	terminated := false
	if w := s.session.ActiveWindowPtr(); w != nil && w.ActivePane == id {
		if err := s.session.CloseActivePane(); err != nil {
			terminated = true
		}
	} else {
		// A background pane exited; find and close it directly.
		for _, w := range s.session.Windows {
			if _, ok := w.Panes[id]; ok {
				if err := w.ClosePane(id); err != nil {
					// Window emptied: treat like CloseWindow via the session.
					idx := s.windowIndex(w)
					if idx >= 0 {
						if err := s.session.CloseWindow(idx); err != nil {
							terminated = true
						}
					}
				}
				break
			}
		}
	}
	s.recomputeLayoutLocked()
	s.mu.Unlock()

	s.broadcast(protocol.TypePaneExited, protocol.PaneExited{PaneID: id})

	if terminated {
		s.Shutdown("session terminated: last pane closed")
	}
}

func (s *Server) windowIndex(target *texel.Window) int {
	for i, w := range s.session.Windows {
		if w == target {
			return i
		}
	}
	return -1
}

// recomputeLayoutLocked resizes every pane's PTY and emulator to match its
// current on-screen rectangle. Callers must hold s.mu.
func (s *Server) recomputeLayoutLocked() {
	for _, w := range s.session.Windows {
		for pid, r := range w.Rects(s.area) {
			rows, cols := r.H, r.W
			if rows <= 0 || cols <= 0 {
				continue
			}
			if pty, ok := s.ptys[pid]; ok {
				_ = pty.Resize(rows, cols)
			}
			if em, ok := s.emulators[pid]; ok {
				em.Resize(rows, cols)
			}
		}
	}
}

// broadcast sends a message to every currently attached client.
func (s *Server) broadcast(typ string, v any) {
	s.mu.Lock()
	targets := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		targets = append(targets, c)
	}
	s.mu.Unlock()
	for _, c := range targets {
		if !c.send(typ, v) {
			s.dropClient(c)
		}
	}
}

// Serve accepts connections on l until the server is shut down.
func (s *Server) Serve(l net.Listener) error {
	s.listener = l
	for {
		conn, err := l.Accept()
		if err != nil {
			select {
			case <-s.done:
				return nil
			default:
				return err
			}
		}
		c := newClient(conn)
		debugLog.Printf("client %s: connected", c.id)
		s.mu.Lock()
		s.clients[c] = &clientState{}
		s.mu.Unlock()
		go s.handleClient(c)
	}
}

func (s *Server) handleClient(c *client) {
	c.send(protocol.TypeHello, protocol.Hello{ServerVersion: "1"})
	defer s.dropClient(c)

	for {
		select {
		case env := <-c.incoming:
			if err := s.dispatch(c, env); err != nil {
				debugLog.Printf("server: dispatch %s: %v", env.Type, err)
			}
		case <-c.readErr:
			return
		case <-s.done:
			return
		}
	}
}

func (s *Server) dropClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	_ = c.close()
}

func (s *Server) dispatch(c *client, env protocol.Envelope) error {
	switch env.Type {
	case protocol.TypeAttach:
		return s.handleAttach(c)
	case protocol.TypeInput:
		var in protocol.Input
		if err := decode(env, &in); err != nil {
			return err
		}
		s.handleInput(in)
		return nil
	case protocol.TypeResize:
		var rs protocol.Resize
		if err := decode(env, &rs); err != nil {
			return err
		}
		s.handleResize(c, rs)
		return nil
	case protocol.TypeCommand:
		var cmd protocol.Command
		if err := decode(env, &cmd); err != nil {
			return err
		}
		return s.handleCommand(c, cmd)
	case protocol.TypeDetach:
		if s.history != nil {
			s.history.Record(s.session.Name, EventDetach)
		}
		s.dropClient(c)
		return nil
	case protocol.TypeStatusRequest:
		s.handleStatusRequest(c)
		return nil
	default:
		return fmt.Errorf("server: unknown message type %q", env.Type)
	}
}

func decode(env protocol.Envelope, v any) error {
	return json.Unmarshal(env.Data, v)
}

func (s *Server) handleAttach(c *client) error {
	s.mu.Lock()
	sessionData, err := s.session.Marshal()
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("server: marshal session for attach: %w", err)
	}
	grids := make(map[ids.PaneId]protocol.GridSnapshot, len(s.emulators))
	for pid, em := range s.emulators {
		grids[pid] = em.Snapshot()
	}
	s.mu.Unlock()

	if s.history != nil {
		s.history.Record(s.session.Name, EventAttach)
	}

	c.send(protocol.TypeStateSync, protocol.StateSync{Session: sessionData, Grids: grids})
	return nil
}

func (s *Server) handleInput(in protocol.Input) {
	s.mu.Lock()
	paneID, ok := s.session.ActivePaneID()
	pty := s.ptys[paneID]
	s.mu.Unlock()
	if !ok || pty == nil {
		return
	}
	_, _ = pty.Write(in.Bytes)
}

// handleResize updates c's reported viewport and, if the minimum viewport
// across all attached clients changed, re-tiles every pane (§4.11
// "Resize: the server computes ... the minimum across attached clients").
func (s *Server) handleResize(c *client, rs protocol.Resize) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.clients[c]; ok {
		st.rows, st.cols = rs.Rows, rs.Cols
	}

	minRows, minCols := 0, 0
	for _, st := range s.clients {
		if st.rows == 0 || st.cols == 0 {
			continue
		}
		if minRows == 0 || st.rows < minRows {
			minRows = st.rows
		}
		if minCols == 0 || st.cols < minCols {
			minCols = st.cols
		}
	}
	if minRows == 0 || minCols == 0 {
		return
	}
	if s.area.H == minRows && s.area.W == minCols {
		return
	}
	s.area = rect.Rect{X: 0, Y: 0, W: minCols, H: minRows}
	s.recomputeLayoutLocked()
}

func (s *Server) handleCommand(c *client, wire protocol.Command) error {
	cmd, err := protocol.DecodeCommand(wire)
	if err != nil {
		return err
	}

	if cmd.Kind == texel.DetachSession {
		if s.history != nil {
			s.history.Record(s.session.Name, EventDetach)
		}
		s.dropClient(c)
		return nil
	}
	if cmd.Kind == texel.ScrollbackMode {
		// Purely a client-local input mode switch; nothing to do here.
		return nil
	}
	if cmd.Kind == texel.KillSession {
		go s.Shutdown("killed")
		return nil
	}

	s.mu.Lock()
	existingPanes := make(map[ids.PaneId]struct{})
	for _, pid := range s.activePaneIDsLocked() {
		existingPanes[pid] = struct{}{}
	}

	err = s.session.Apply(cmd, s.area)
	if err == texel.ErrSessionTerminated {
		s.mu.Unlock()
		go s.Shutdown("session terminated: last window closed")
		return nil
	}
	if err != nil {
		s.mu.Unlock()
		return err
	}

	stillPresent := make(map[ids.PaneId]struct{})
	var newPanes []ids.PaneId
	for _, pid := range s.activePaneIDsLocked() {
		stillPresent[pid] = struct{}{}
		if _, ok := existingPanes[pid]; !ok {
			newPanes = append(newPanes, pid)
		}
	}
	var removedPanes []ids.PaneId
	for pid := range existingPanes {
		if _, ok := stillPresent[pid]; !ok {
			removedPanes = append(removedPanes, pid)
		}
	}
	for _, pid := range removedPanes {
		if pty, ok := s.ptys[pid]; ok {
			_ = pty.Close()
			delete(s.ptys, pid)
		}
		delete(s.emulators, pid)
	}
	s.recomputeLayoutLocked()
	s.mu.Unlock()

	for _, pid := range newPanes {
		if err := s.spawnPane(pid, defaultPaneRows, defaultPaneCols); err != nil {
			debugLog.Printf("server: spawn pane %d after command: %v", pid, err)
		}
	}
	if len(newPanes) > 0 {
		s.mu.Lock()
		s.recomputeLayoutLocked()
		s.mu.Unlock()
	}

	if s.sessionPath != "" {
		s.mu.Lock()
		_ = s.session.SaveTo(s.sessionPath)
		s.mu.Unlock()
	}
	return nil
}

// activePaneIDsLocked returns every pane id across every window. Callers
// must hold s.mu.
func (s *Server) activePaneIDsLocked() []ids.PaneId {
	var out []ids.PaneId
	for _, w := range s.session.Windows {
		out = append(out, w.PaneIDs()...)
	}
	return out
}

func (s *Server) handleStatusRequest(c *client) {
	s.mu.Lock()
	panes := 0
	for _, w := range s.session.Windows {
		panes += w.PaneCount()
	}
	resp := protocol.StatusResponse{
		SessionName: s.session.Name,
		Windows:     len(s.session.Windows),
		Panes:       panes,
	}
	s.mu.Unlock()
	c.send(protocol.TypeStatusResponse, resp)
}

// Shutdown closes every attached client and the listener, tearing down
// every pane's PTY.
func (s *Server) Shutdown(reason string) {
	select {
	case <-s.done:
		return
	default:
		close(s.done)
	}

	s.broadcast(protocol.TypeServerShutdown, protocol.ServerShutdown{Reason: reason})

	s.mu.Lock()
	for id, pty := range s.ptys {
		_ = pty.Close()
		delete(s.ptys, id)
	}
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		_ = c.close()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.history != nil {
		_ = s.history.Record(s.session.Name, EventKilled)
		_ = s.history.Close()
	}
}
