// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/command.go
// Summary: MuxCommand vocabulary (§4.8).

package texel

import "mux/rect"

// MuxCommandKind identifies a MuxCommand variant.
type MuxCommandKind int

const (
	SplitHorizontal MuxCommandKind = iota
	SplitVertical
	ClosePane
	NextPane
	PrevPane
	NavigatePane
	ResizePane
	NewWindow
	CloseWindow
	NextWindow
	PrevWindow
	SwitchToWindow
	RenameWindow
	ToggleZoom
	DetachSession
	ScrollbackMode
	KillSession
)

func (k MuxCommandKind) String() string {
	switch k {
	case SplitHorizontal:
		return "SplitHorizontal"
	case SplitVertical:
		return "SplitVertical"
	case ClosePane:
		return "ClosePane"
	case NextPane:
		return "NextPane"
	case PrevPane:
		return "PrevPane"
	case NavigatePane:
		return "NavigatePane"
	case ResizePane:
		return "ResizePane"
	case NewWindow:
		return "NewWindow"
	case CloseWindow:
		return "CloseWindow"
	case NextWindow:
		return "NextWindow"
	case PrevWindow:
		return "PrevWindow"
	case SwitchToWindow:
		return "SwitchToWindow"
	case RenameWindow:
		return "RenameWindow"
	case ToggleZoom:
		return "ToggleZoom"
	case DetachSession:
		return "DetachSession"
	case ScrollbackMode:
		return "ScrollbackMode"
	case KillSession:
		return "KillSession"
	default:
		return "Unknown"
	}
}

// MuxCommand is a single dispatched command. Only the fields relevant to
// Kind are meaningful; the zero value of the others is ignored.
type MuxCommand struct {
	Kind MuxCommandKind

	// NavigatePane, ResizePane.
	Direction rect.NavigateDirection
	// ResizePane: delta in cells, along Direction's axis.
	DeltaCells int
	// SwitchToWindow: 0-9, per the leader keymap's 0=window-10 quirk.
	WindowSlot int
	// RenameWindow: the new name.
	Name string
}

// Apply dispatches cmd against s, applying it exactly as §4.2-§4.6 define
// the underlying operation. area is the screen rectangle assigned to the
// active window, needed by split/resize. Commands that require spawning or
// killing a PTY (NewWindow/CloseWindow/ClosePane) only mutate the layout
// model here; the server is responsible for the PTY side effects (§4.11).
func (s *Session) Apply(cmd MuxCommand, area rect.Rect) error {
	switch cmd.Kind {
	case SplitHorizontal:
		_, err := s.SplitActivePane(area, rect.Horizontal)
		return err
	case SplitVertical:
		_, err := s.SplitActivePane(area, rect.Vertical)
		return err
	case ClosePane:
		return s.CloseActivePane()
	case NextPane:
		if w := s.ActiveWindowPtr(); w != nil {
			w.NextPane()
		}
		return nil
	case PrevPane:
		if w := s.ActiveWindowPtr(); w != nil {
			w.PrevPane()
		}
		return nil
	case NavigatePane:
		if w := s.ActiveWindowPtr(); w != nil {
			w.NavigatePane(area, cmd.Direction)
		}
		return nil
	case ResizePane:
		if w := s.ActiveWindowPtr(); w != nil {
			return w.Resize(area, rect.AxisOf(cmd.Direction), cmd.DeltaCells)
		}
		return nil
	case NewWindow:
		s.AddWindow("")
		return nil
	case CloseWindow:
		return s.CloseWindow(s.ActiveWindow)
	case NextWindow:
		s.NextWindow()
		return nil
	case PrevWindow:
		s.PrevWindow()
		return nil
	case SwitchToWindow:
		s.SwitchTo(cmd.WindowSlot)
		return nil
	case RenameWindow:
		return s.RenameWindow(s.ActiveWindow, cmd.Name)
	case ToggleZoom:
		if w := s.ActiveWindowPtr(); w != nil {
			w.ToggleZoom()
		}
		return nil
	case DetachSession, ScrollbackMode, KillSession:
		// Handled entirely by the server/client: DetachSession closes the
		// issuing client's connection, ScrollbackMode flips the client's
		// local input routing, KillSession tears down the whole server.
		// None of these touch the session model directly.
		return nil
	default:
		return nil
	}
}
