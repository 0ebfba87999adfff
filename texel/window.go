// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/window.go
// Summary: Window: one layout tree of panes, an active pane, and a zoom flag (§3, §4.5).

package texel

import (
	"errors"

	"mux/ids"
	"mux/rect"
)

// ErrWindowEmpty is returned by operations that would leave a window with
// no panes; the caller (Session) is responsible for destroying the window.
var ErrWindowEmpty = errors.New("texel: window has no panes")

// Window owns one layout tree, the panes tiled into it, and the window's
// active pane and zoom state.
type Window struct {
	ID         ids.WindowId
	Name       string
	Layout     *LayoutNode
	ActivePane ids.PaneId
	Panes      map[ids.PaneId]*Pane
	Zoomed     bool
	// PaneOrder records creation order and drives NextPane/PrevPane cycling.
	PaneOrder []ids.PaneId
}

// NewWindow constructs a window containing a single leaf pane. Windows are
// created at session start and by new-window; a split adds a pane to an
// existing window instead.
func NewWindow(id ids.WindowId, name string, paneID ids.PaneId) *Window {
	pane := NewPane(paneID)
	return &Window{
		ID:         id,
		Name:       name,
		Layout:     Leaf(paneID),
		ActivePane: paneID,
		Panes:      map[ids.PaneId]*Pane{paneID: pane},
		PaneOrder:  []ids.PaneId{paneID},
	}
}

// Rename sets the window's name.
func (w *Window) Rename(name string) {
	w.Name = name
}

// Rects computes the on-screen rectangle for every visible pane given the
// area assigned to the window. When zoomed, only the active pane is
// visible and it fills the whole area (§4.5); non-active panes are hidden
// but keep their PTY and terminal state (owned by the server, not here).
func (w *Window) Rects(area rect.Rect) map[ids.PaneId]rect.Rect {
	if w.Zoomed {
		return map[ids.PaneId]rect.Rect{w.ActivePane: area}
	}
	return Tile(w.Layout, area)
}

// Split splits the active pane in direction dir, allocating newPaneID to
// the new leaf. area is the window's full assigned rectangle. Any zoom is
// forced off first (§4.5: "Other mutations first force zoomed = false").
func (w *Window) Split(area rect.Rect, dir rect.Direction, newPaneID ids.PaneId) error {
	w.Zoomed = false

	newLayout, err := Split(w.Layout, area, w.ActivePane, dir, newPaneID)
	if err != nil {
		return err
	}

	w.Layout = newLayout
	w.Panes[newPaneID] = NewPane(newPaneID)
	w.PaneOrder = append(w.PaneOrder, newPaneID)
	w.ActivePane = newPaneID
	return nil
}

// ClosePane closes target (§4.3, §4.6). It returns ErrWindowEmpty if
// closing target leaves the window with no panes, in which case the
// caller (Session) must destroy the window.
func (w *Window) ClosePane(target ids.PaneId) error {
	w.Zoomed = false

	closedIdx := indexOf(w.PaneOrder, target)

	newLayout, emptied, err := Close(w.Layout, target)
	if err != nil {
		return err
	}

	delete(w.Panes, target)
	w.PaneOrder = removePane(w.PaneOrder, target)

	if emptied {
		w.Layout = nil
		return ErrWindowEmpty
	}

	w.Layout = newLayout
	if w.ActivePane == target {
		// Wraps to the new last pane when the closed pane held the last
		// slot in pane_order, otherwise the pane that shifted into its
		// slot becomes active.
		idx := closedIdx
		if idx >= len(w.PaneOrder) {
			idx = len(w.PaneOrder) - 1
		}
		w.ActivePane = w.PaneOrder[idx]
	}
	return nil
}

func removePane(order []ids.PaneId, target ids.PaneId) []ids.PaneId {
	out := order[:0:0]
	for _, id := range order {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// NextPane cycles the active pane forward through PaneOrder, wrapping.
func (w *Window) NextPane() {
	w.ActivePane = cyclePane(w.PaneOrder, w.ActivePane, 1)
}

// PrevPane cycles the active pane backward through PaneOrder, wrapping.
func (w *Window) PrevPane() {
	w.ActivePane = cyclePane(w.PaneOrder, w.ActivePane, -1)
}

func cyclePane(order []ids.PaneId, active ids.PaneId, step int) ids.PaneId {
	if len(order) == 0 {
		return active
	}
	idx := indexOf(order, active)
	if idx < 0 {
		return active
	}
	n := len(order)
	next := ((idx+step)%n + n) % n
	return order[next]
}

func indexOf(order []ids.PaneId, target ids.PaneId) int {
	for i, id := range order {
		if id == target {
			return i
		}
	}
	return -1
}

// Resize adjusts the split ratio of the active pane's nearest ancestor
// split in direction dir by delta cells expressed as a fraction of area's
// extent (§4.4).
func (w *Window) Resize(area rect.Rect, dir rect.Direction, deltaCells int) error {
	extent := area.W
	if dir == rect.Horizontal {
		extent = area.H
	}
	if extent == 0 {
		return nil
	}
	delta := float64(deltaCells) / float64(extent)

	newLayout, err := Resize(w.Layout, area, w.ActivePane, dir, delta)
	if err != nil {
		return err
	}
	w.Layout = newLayout
	return nil
}

// ToggleZoom flips the window's zoom flag (§4.5, §8 "Idempotence").
func (w *Window) ToggleZoom() {
	w.Zoomed = !w.Zoomed
}

// PaneIDs returns every pane id currently tiled in the window, in
// PaneOrder.
func (w *Window) PaneIDs() []ids.PaneId {
	out := make([]ids.PaneId, len(w.PaneOrder))
	copy(out, w.PaneOrder)
	return out
}

// PaneCount returns the number of panes in the window.
func (w *Window) PaneCount() int {
	return len(w.PaneOrder)
}

// ActiveTitle returns the active pane's title, or "" if the active pane is
// somehow absent (should not happen under the invariants in §3).
func (w *Window) ActiveTitle() string {
	if p, ok := w.Panes[w.ActivePane]; ok {
		return p.Title
	}
	return ""
}

// NavigatePane selects the pane adjacent to the active pane in direction d
// (§4.8 NavigatePane semantics): ties are broken by largest shared-edge
// overlap, then by lowest pane id.
func (w *Window) NavigatePane(area rect.Rect, d rect.NavigateDirection) {
	rects := w.Rects(area)
	activeRect, ok := rects[w.ActivePane]
	if !ok {
		return
	}

	var best ids.PaneId
	bestOverlap := -1
	found := false

	for pid, r := range rects {
		if pid == w.ActivePane {
			continue
		}
		if !rect.Adjacent(activeRect, r, d) {
			continue
		}
		var ov int
		if d == rect.Up || d == rect.Down {
			ov = rect.Overlap1D(activeRect.X, activeRect.X+activeRect.W, r.X, r.X+r.W)
		} else {
			ov = rect.Overlap1D(activeRect.Y, activeRect.Y+activeRect.H, r.Y, r.Y+r.H)
		}
		if !found || ov > bestOverlap || (ov == bestOverlap && pid < best) {
			best = pid
			bestOverlap = ov
			found = true
		}
	}

	if found {
		w.ActivePane = best
	}
}
