// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/session.go
// Summary: Session: an ordered list of windows, the active window, and the
// session name (§3, §4.6).

package texel

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"mux/ids"
	"mux/rect"
)

var (
	// ErrWindowNotFound is returned when an operation references a window
	// index that does not exist.
	ErrWindowNotFound = errors.New("texel: window not found")
	// ErrSessionNameInvalid is returned by NewSession for an empty name or
	// one containing a path separator (§3 invariant 7, §7 SessionError::NameInvalid).
	ErrSessionNameInvalid = errors.New("texel: session name is empty or contains a path separator")
	// ErrSessionTerminated is returned by mutators once the session has no
	// windows left; the caller must tear the session down.
	ErrSessionTerminated = errors.New("texel: session has terminated")
)

// Session is an ordered list of windows plus the index of the active one.
// Ownership is strictly hierarchical: Session owns Windows owns Panes owns
// LayoutNode subtrees. No back-references are stored.
type Session struct {
	ID           ids.SessionId
	Name         string
	Windows      []*Window
	ActiveWindow int

	ids *ids.Counter
}

// ValidSessionName reports whether name satisfies §3 invariant 7: non-empty
// and free of path separators.
func ValidSessionName(name string) bool {
	if name == "" {
		return false
	}
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return false
	}
	return name != "." && name != ".."
}

// NewSession creates a session named name with a single window containing
// one leaf pane (§3 "A session is created by server start. Its first
// window contains one leaf pane.").
func NewSession(id ids.SessionId, name string, counter *ids.Counter) (*Session, error) {
	if !ValidSessionName(name) {
		return nil, ErrSessionNameInvalid
	}
	s := &Session{ID: id, Name: name, ids: counter}
	winID := counter.NextWindow()
	paneID := counter.NextPane()
	s.Windows = append(s.Windows, NewWindow(winID, "1", paneID))
	return s, nil
}

// ActiveWindowPtr returns the currently active window, or nil if the
// session has already terminated.
func (s *Session) ActiveWindowPtr() *Window {
	if s.ActiveWindow < 0 || s.ActiveWindow >= len(s.Windows) {
		return nil
	}
	return s.Windows[s.ActiveWindow]
}

// ActivePaneID returns the active pane of the active window.
func (s *Session) ActivePaneID() (ids.PaneId, bool) {
	w := s.ActiveWindowPtr()
	if w == nil {
		return 0, false
	}
	return w.ActivePane, true
}

// ActiveLayout returns the active window's layout tree.
func (s *Session) ActiveLayout() *LayoutNode {
	w := s.ActiveWindowPtr()
	if w == nil {
		return nil
	}
	return w.Layout
}

// AddWindow appends a new window named name containing one leaf pane, and
// makes it active.
func (s *Session) AddWindow(name string) *Window {
	winID := s.ids.NextWindow()
	paneID := s.ids.NextPane()
	if name == "" {
		name = s.nextWindowLabel()
	}
	w := NewWindow(winID, name, paneID)
	s.Windows = append(s.Windows, w)
	s.ActiveWindow = len(s.Windows) - 1
	return w
}

func (s *Session) nextWindowLabel() string {
	return strconv.Itoa(len(s.Windows) + 1)
}

// CloseWindow closes the window at idx. If it was the last window, the
// session has terminated and the caller must destroy it (§3 "A session is
// destroyed ... when its last window is destroyed").
func (s *Session) CloseWindow(idx int) error {
	if idx < 0 || idx >= len(s.Windows) {
		return ErrWindowNotFound
	}
	s.Windows = append(s.Windows[:idx], s.Windows[idx+1:]...)

	if len(s.Windows) == 0 {
		s.ActiveWindow = 0
		return ErrSessionTerminated
	}

	if s.ActiveWindow >= idx {
		s.ActiveWindow--
		if s.ActiveWindow < 0 {
			s.ActiveWindow = 0
		}
	}
	return nil
}

// NextWindow selects the next window, wrapping.
func (s *Session) NextWindow() {
	if len(s.Windows) == 0 {
		return
	}
	s.ActiveWindow = (s.ActiveWindow + 1) % len(s.Windows)
}

// PrevWindow selects the previous window, wrapping.
func (s *Session) PrevWindow() {
	if len(s.Windows) == 0 {
		return
	}
	s.ActiveWindow = (s.ActiveWindow - 1 + len(s.Windows)) % len(s.Windows)
}

// SwitchTo selects a window by its 1-based keymap slot (§4.6): n ranges
// 0-9, where 1-9 select windows 1-9 and 0 selects window 10. Out-of-range
// selections (including a slot with no corresponding window) are a no-op.
func (s *Session) SwitchTo(n int) {
	idx := n - 1
	if n == 0 {
		idx = 9
	}
	if idx < 0 || idx >= len(s.Windows) {
		return
	}
	s.ActiveWindow = idx
}

// RenameWindow renames the window at idx.
func (s *Session) RenameWindow(idx int, name string) error {
	if idx < 0 || idx >= len(s.Windows) {
		return ErrWindowNotFound
	}
	s.Windows[idx].Rename(name)
	return nil
}

// SplitActivePane splits the active pane of the active window. area is the
// screen area assigned to the active window.
func (s *Session) SplitActivePane(area rect.Rect, dir rect.Direction) (ids.PaneId, error) {
	w := s.ActiveWindowPtr()
	if w == nil {
		return 0, ErrSessionTerminated
	}
	newPane := s.ids.NextPane()
	if err := w.Split(area, dir, newPane); err != nil {
		return 0, err
	}
	return newPane, nil
}

// CloseActivePane closes the active pane of the active window. If the
// window empties out it is removed from the session (§3 window lifecycle);
// if the session then has no windows left, ErrSessionTerminated is
// returned and the caller must tear the session down.
func (s *Session) CloseActivePane() error {
	w := s.ActiveWindowPtr()
	if w == nil {
		return ErrSessionTerminated
	}
	err := w.ClosePane(w.ActivePane)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrWindowEmpty) {
		return err
	}
	return s.CloseWindow(s.ActiveWindow)
}
