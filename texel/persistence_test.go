// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package texel

import (
	"path/filepath"
	"testing"

	"mux/ids"
	"mux/rect"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	s := newTestSession(t)
	area := rect.Rect{X: 0, Y: 0, W: 80, H: 24}
	s.SplitActivePane(area, rect.Vertical)
	s.AddWindow("logs")
	s.RenameWindow(1, "logs-renamed")

	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	loaded, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if loaded.Name != s.Name {
		t.Errorf("Name = %q, want %q", loaded.Name, s.Name)
	}
	if len(loaded.Windows) != len(s.Windows) {
		t.Fatalf("window count = %d, want %d", len(loaded.Windows), len(s.Windows))
	}
	if loaded.ActiveWindow != s.ActiveWindow {
		t.Errorf("ActiveWindow = %d, want %d", loaded.ActiveWindow, s.ActiveWindow)
	}
	if loaded.Windows[1].Name != "logs-renamed" {
		t.Errorf("second window name = %q", loaded.Windows[1].Name)
	}

	origRects := Tile(s.Windows[0].Layout, area)
	gotRects := Tile(loaded.Windows[0].Layout, area)
	for pid, r := range origRects {
		if gotRects[pid] != r {
			t.Errorf("pane %v rect = %+v, want %+v", pid, gotRects[pid], r)
		}
	}
}

func TestUnmarshalReinitializesCounterFromMaxObservedID(t *testing.T) {
	s := newTestSession(t)
	area := rect.Rect{X: 0, Y: 0, W: 80, H: 24}
	// The shared counter issued session 1, window 2 and pane 3; the split
	// consumes pane id 4.
	s.SplitActivePane(area, rect.Vertical)

	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	loaded, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	next := loaded.ids.NextPane()
	if next != ids.PaneId(5) {
		t.Errorf("next pane id after load = %v, want 5", next)
	}
}

func TestSaveLoadRoundTripAtomicWrite(t *testing.T) {
	s := newTestSession(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "work.json")

	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Name != s.Name {
		t.Errorf("Name = %q, want %q", loaded.Name, s.Name)
	}

	entries, err := filepath.Glob(filepath.Join(dir, ".session-*.tmp"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no leftover temp files, found %v", entries)
	}
}
