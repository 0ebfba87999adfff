// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package texel

import (
	"errors"
	"testing"

	"mux/ids"
	"mux/rect"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	counter := ids.NewCounter()
	s, err := NewSession(counter.NextSession(), "test", counter)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestNewSessionRejectsInvalidNames(t *testing.T) {
	counter := ids.NewCounter()
	for _, name := range []string{"", "a/b", ".", ".."} {
		if _, err := NewSession(counter.NextSession(), name, counter); !errors.Is(err, ErrSessionNameInvalid) {
			t.Errorf("NewSession(%q): expected ErrSessionNameInvalid, got %v", name, err)
		}
	}
}

func TestAddWindowMakesItActive(t *testing.T) {
	s := newTestSession(t)
	s.AddWindow("logs")
	if s.ActiveWindow != 1 {
		t.Fatalf("ActiveWindow = %d, want 1", s.ActiveWindow)
	}
	if s.Windows[1].Name != "logs" {
		t.Fatalf("window name = %q", s.Windows[1].Name)
	}
}

func TestCloseWindowTerminatesSessionWhenLastClosed(t *testing.T) {
	s := newTestSession(t)
	if err := s.CloseWindow(0); !errors.Is(err, ErrSessionTerminated) {
		t.Fatalf("expected ErrSessionTerminated, got %v", err)
	}
}

func TestCloseWindowShiftsActiveIndex(t *testing.T) {
	s := newTestSession(t)
	s.AddWindow("b")
	s.AddWindow("c")
	s.ActiveWindow = 2

	if err := s.CloseWindow(1); err != nil {
		t.Fatalf("CloseWindow: %v", err)
	}
	if len(s.Windows) != 2 {
		t.Fatalf("expected 2 windows remaining")
	}
	if s.ActiveWindow != 1 {
		t.Fatalf("ActiveWindow = %d, want 1", s.ActiveWindow)
	}
}

func TestSwitchToZeroSelectsTenth(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 9; i++ {
		s.AddWindow("")
	}
	if len(s.Windows) != 10 {
		t.Fatalf("expected 10 windows, got %d", len(s.Windows))
	}
	s.SwitchTo(0)
	if s.ActiveWindow != 9 {
		t.Fatalf("SwitchTo(0): ActiveWindow = %d, want 9", s.ActiveWindow)
	}
	s.SwitchTo(1)
	if s.ActiveWindow != 0 {
		t.Fatalf("SwitchTo(1): ActiveWindow = %d, want 0", s.ActiveWindow)
	}
}

func TestSwitchToOutOfRangeIsNoop(t *testing.T) {
	s := newTestSession(t)
	s.SwitchTo(5)
	if s.ActiveWindow != 0 {
		t.Fatalf("out-of-range SwitchTo should be a no-op, got ActiveWindow=%d", s.ActiveWindow)
	}
}

func TestNextPrevWindowWraps(t *testing.T) {
	s := newTestSession(t)
	s.AddWindow("b")
	s.ActiveWindow = 0
	s.PrevWindow()
	if s.ActiveWindow != 1 {
		t.Fatalf("PrevWindow from 0 should wrap to last, got %d", s.ActiveWindow)
	}
	s.NextWindow()
	if s.ActiveWindow != 0 {
		t.Fatalf("NextWindow from last should wrap to 0, got %d", s.ActiveWindow)
	}
}

func TestSplitAndCloseActivePaneEndToEnd(t *testing.T) {
	s := newTestSession(t)
	area := rect.Rect{X: 0, Y: 0, W: 80, H: 24}

	p1, _ := s.ActivePaneID()

	if _, err := s.SplitActivePane(area, rect.Vertical); err != nil {
		t.Fatalf("split: %v", err)
	}
	p2, _ := s.ActivePaneID()

	if _, err := s.SplitActivePane(area, rect.Horizontal); err != nil {
		t.Fatalf("split: %v", err)
	}
	p3, _ := s.ActivePaneID()

	if err := s.CloseActivePane(); err != nil {
		t.Fatalf("close active pane p3: %v", err)
	}
	active, _ := s.ActivePaneID()
	if active != p2 {
		t.Fatalf("active pane after closing p3 = %v, want %v (p1=%v)", active, p2, p1)
	}

	w := s.ActiveWindowPtr()
	if w.PaneCount() != 2 {
		t.Fatalf("expected 2 panes remaining, got %d", w.PaneCount())
	}
	_ = p3
}
