// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/pane.go
// Summary: Pane metadata (§3 Pane).

package texel

import "mux/ids"

// Pane is per-pane metadata owned by a Window. The PTY and terminal-emulator
// state backing a pane are external collaborators (§1 out of scope); the
// core only tracks what it needs for layout and display.
type Pane struct {
	ID    ids.PaneId
	Title string
	// Exited marks that the pane's PTY has reported EOF or child exit but
	// the pane has not yet been closed by the caller (§4.11 "Pane exit").
	Exited bool
}

// NewPane constructs a pane with the default empty title (§3).
func NewPane(id ids.PaneId) *Pane {
	return &Pane{ID: id}
}

// Rename sets the pane's title.
func (p *Pane) Rename(title string) {
	p.Title = title
}
