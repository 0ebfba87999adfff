// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/server/emulator.go
// Summary: A minimal per-pane terminal-emulator state stub. The VT parser,
// scrollback, and selection model are explicitly out of scope; this type
// only tracks enough to answer StateSync's grid_snapshot shape.

package server

import "mux/protocol"

// EmulatorState is the server's per-pane view of what the PTY has
// produced, reduced to the rows/cols grid shape the attach protocol
// exchanges. It does not interpret escape sequences, and Feed leaves it
// unchanged.
type EmulatorState struct {
	rows, cols int
}

// NewEmulatorState constructs emulator state sized rows x cols.
func NewEmulatorState(rows, cols int) *EmulatorState {
	return &EmulatorState{rows: rows, cols: cols}
}

// Feed accepts data read from the pane's PTY and discards it; nothing is
// recorded. Real VT
// interpretation (cursor, cell attributes, scrollback) is left to the
// embedding emulator; this stub exists so the server has a single per-pane
// state object to resize and snapshot.
func (e *EmulatorState) Feed(data []byte) {}

// Resize updates the tracked grid dimensions.
func (e *EmulatorState) Resize(rows, cols int) {
	e.rows, e.cols = rows, cols
}

// Snapshot renders the current state as a grid_snapshot (§6). Cells are
// left blank: populating them from actual terminal content is the
// embedding emulator's job, not the multiplexer core's.
func (e *EmulatorState) Snapshot() protocol.GridSnapshot {
	cells := make([]protocol.GridCell, e.rows*e.cols)
	return protocol.GridSnapshot{Rows: e.rows, Cols: e.cols, Cells: cells}
}
