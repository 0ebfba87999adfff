// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/messages.go
// Summary: Client/server message payloads exchanged inside an Envelope
// (§6 "Client → Server messages" / "Server → Client messages").

package protocol

import "mux/ids"

// Client → Server message type discriminators.
const (
	TypeInput   = "Input"
	TypeResize  = "Resize"
	TypeCommand = "Command"
	TypeAttach  = "Attach"
	TypeDetach  = "Detach"
	// TypeStatusRequest is a lightweight probe used by `mux list` (not
	// part of the base spec's message set): it asks the server for
	// window/pane counts without performing a full Attach handshake.
	TypeStatusRequest = "StatusRequest"
)

// Server → Client message type discriminators.
const (
	TypeHello          = "Hello"
	TypeStateSync      = "StateSync"
	TypeOutput         = "Output"
	TypePaneExited     = "PaneExited"
	TypeServerShutdown = "ServerShutdown"
	TypeStatusResponse = "StatusResponse"
)

// Input carries raw keyboard/paste bytes from the client to be written to
// the active pane's PTY. encoding/json renders a []byte field as base64
// automatically (§6 "Input{bytes: base64}").
type Input struct {
	Bytes []byte `json:"bytes"`
}

// Resize reports a client's terminal viewport.
type Resize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Command carries a MuxCommand in its wire-serializable form (see
// command.go for the encode/decode between this and texel.MuxCommand).
type Command struct {
	Kind       string `json:"kind"`
	Direction  string `json:"direction,omitempty"`
	DeltaCells int    `json:"delta_cells,omitempty"`
	WindowSlot int    `json:"window_slot,omitempty"`
	Name       string `json:"name,omitempty"`
}

// Attach requests the full session state (sent once per connection as the
// first client message on a session-attaching connection).
type Attach struct{}

// Detach asks the server to close this client's connection without
// affecting the session (§4.11 "Detach").
type Detach struct{}

// StatusRequest asks for a lightweight session summary without attaching
// (backs `mux list`; see SPEC_FULL.md §3).
type StatusRequest struct{}

// Hello is the first message sent to every newly accepted connection.
type Hello struct {
	ServerVersion string `json:"server_version"`
}

// GridCell is one cell of a pane's rendered grid snapshot.
type GridCell struct {
	Glyph string `json:"glyph"`
	FG    uint32 `json:"fg"`
	BG    uint32 `json:"bg"`
	Attrs uint16 `json:"attrs"`
}

// GridSnapshot is a freshly attached client's starting point for one
// pane's display (§6 "grid_snapshot ... sent only in StateSync").
type GridSnapshot struct {
	Rows  int        `json:"rows"`
	Cols  int        `json:"cols"`
	Cells []GridCell `json:"cells"`
}

// StateSync carries the full session model plus a grid snapshot per pane.
// Session is the raw output of texel.Session.Marshal; the server is
// responsible for embedding it.
type StateSync struct {
	Session []byte                      `json:"session"`
	Grids   map[ids.PaneId]GridSnapshot `json:"grids"`
}

// Output carries PTY bytes read for one pane, fanned out to every
// attached client. Data is base64-encoded by encoding/json automatically
// (§6 "Output{pane_id, data: base64}").
type Output struct {
	PaneID ids.PaneId `json:"pane_id"`
	Data   []byte     `json:"data"`
}

// PaneExited announces that a pane's PTY reported EOF or child exit and
// the pane has been closed (§4.11 "Pane exit").
type PaneExited struct {
	PaneID ids.PaneId `json:"pane_id"`
}

// ServerShutdown is the last message sent to a client before its
// connection is closed as part of a full server shutdown.
type ServerShutdown struct {
	Reason string `json:"reason,omitempty"`
}

// StatusResponse answers a StatusRequest with counts only, avoiding the
// cost of a full Attach (backs `mux list`).
type StatusResponse struct {
	SessionName string `json:"session_name"`
	Windows     int    `json:"windows"`
	Panes       int    `json:"panes"`
}
