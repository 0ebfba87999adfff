// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/persistence.go
// Summary: Serialize/deserialize a session to a portable textual record
// (§4.10). Structure and metadata only; never terminal contents.

package texel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mux/ids"
	"mux/rect"
)

// layoutRecord is the portable, JSON-tagged shape of a LayoutNode.
type layoutRecord struct {
	// Leaf fields.
	PaneID ids.PaneId `json:"pane_id,omitempty"`

	// Split fields. Direction is omitted (and zero) for leaves.
	Direction string        `json:"direction,omitempty"`
	Ratio     float64       `json:"ratio,omitempty"`
	First     *layoutRecord `json:"first,omitempty"`
	Second    *layoutRecord `json:"second,omitempty"`
}

func encodeLayout(n *LayoutNode) *layoutRecord {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return &layoutRecord{PaneID: n.PaneID}
	}
	return &layoutRecord{
		Direction: n.Direction.String(),
		Ratio:     n.Ratio,
		First:     encodeLayout(n.First),
		Second:    encodeLayout(n.Second),
	}
}

func decodeLayout(r *layoutRecord) (*LayoutNode, error) {
	if r == nil {
		return nil, fmt.Errorf("texel: persisted layout node is nil")
	}
	if r.First == nil && r.Second == nil {
		return Leaf(r.PaneID), nil
	}
	if r.First == nil || r.Second == nil {
		return nil, fmt.Errorf("texel: persisted split node missing a child")
	}
	dir, err := decodeDirection(r.Direction)
	if err != nil {
		return nil, err
	}
	first, err := decodeLayout(r.First)
	if err != nil {
		return nil, err
	}
	second, err := decodeLayout(r.Second)
	if err != nil {
		return nil, err
	}
	return NewSplit(dir, r.Ratio, first, second), nil
}

func decodeDirection(s string) (rect.Direction, error) {
	switch s {
	case "horizontal":
		return rect.Horizontal, nil
	case "vertical":
		return rect.Vertical, nil
	default:
		return 0, fmt.Errorf("texel: unknown split direction %q", s)
	}
}

// paneRecord is the portable shape of per-pane metadata.
type paneRecord struct {
	ID    ids.PaneId `json:"id"`
	Title string     `json:"title,omitempty"`
}

// windowRecord is the portable shape of a Window.
type windowRecord struct {
	ID         ids.WindowId  `json:"id"`
	Name       string        `json:"name"`
	Layout     *layoutRecord `json:"layout"`
	ActivePane ids.PaneId    `json:"active_pane"`
	PaneOrder  []ids.PaneId  `json:"pane_order"`
	Panes      []paneRecord  `json:"panes"`
	Zoomed     bool          `json:"zoomed"`
}

func encodeWindow(w *Window) windowRecord {
	panes := make([]paneRecord, 0, len(w.PaneOrder))
	for _, pid := range w.PaneOrder {
		p := w.Panes[pid]
		panes = append(panes, paneRecord{ID: pid, Title: p.Title})
	}
	return windowRecord{
		ID:         w.ID,
		Name:       w.Name,
		Layout:     encodeLayout(w.Layout),
		ActivePane: w.ActivePane,
		PaneOrder:  append([]ids.PaneId(nil), w.PaneOrder...),
		Panes:      panes,
		Zoomed:     w.Zoomed,
	}
}

func decodeWindow(r windowRecord) (*Window, error) {
	layout, err := decodeLayout(r.Layout)
	if err != nil {
		return nil, fmt.Errorf("texel: window %q: %w", r.Name, err)
	}
	panes := make(map[ids.PaneId]*Pane, len(r.Panes))
	for _, pr := range r.Panes {
		pane := NewPane(pr.ID)
		pane.Title = pr.Title
		panes[pr.ID] = pane
	}
	return &Window{
		ID:         r.ID,
		Name:       r.Name,
		Layout:     layout,
		ActivePane: r.ActivePane,
		Panes:      panes,
		PaneOrder:  append([]ids.PaneId(nil), r.PaneOrder...),
		Zoomed:     r.Zoomed,
	}, nil
}

// sessionRecord is the on-disk record for one session (§4.10: "session
// name, window list ..., and active_window").
type sessionRecord struct {
	ID           ids.SessionId  `json:"id"`
	Name         string         `json:"name"`
	Windows      []windowRecord `json:"windows"`
	ActiveWindow int            `json:"active_window"`
}

// Marshal encodes s as its portable JSON record.
func (s *Session) Marshal() ([]byte, error) {
	rec := sessionRecord{
		ID:           s.ID,
		Name:         s.Name,
		ActiveWindow: s.ActiveWindow,
	}
	for _, w := range s.Windows {
		rec.Windows = append(rec.Windows, encodeWindow(w))
	}
	return json.MarshalIndent(rec, "", "  ")
}

// Unmarshal decodes a session from its portable JSON record. The returned
// session's id counter is reinitialized from the highest pane, window, or
// session id observed in the record plus one (§4.10: "the counters are
// initialized to max(observed) + 1").
func Unmarshal(data []byte) (*Session, error) {
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("texel: decode session: %w", err)
	}

	s := &Session{ID: rec.ID, Name: rec.Name, ActiveWindow: rec.ActiveWindow}
	var maxID uint32
	if uint32(rec.ID) > maxID {
		maxID = uint32(rec.ID)
	}
	for _, wr := range rec.Windows {
		w, err := decodeWindow(wr)
		if err != nil {
			return nil, err
		}
		s.Windows = append(s.Windows, w)
		if uint32(w.ID) > maxID {
			maxID = uint32(w.ID)
		}
		for _, pid := range w.PaneOrder {
			if uint32(pid) > maxID {
				maxID = uint32(pid)
			}
		}
	}
	s.ids = ids.NewCounterFrom(maxID)

	if s.ActiveWindow < 0 || (len(s.Windows) > 0 && s.ActiveWindow >= len(s.Windows)) {
		s.ActiveWindow = 0
	}
	return s, nil
}

// SaveTo atomically writes s's record to path: it writes to a sibling temp
// file in the same directory then renames over path, so a reader never
// observes a partially written session file (§5 "The session file is
// written atomically (write to sibling temp file, rename)").
func (s *Session) SaveTo(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("texel: marshal session %q: %w", s.Name, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("texel: create temp file for session %q: %w", s.Name, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("texel: write temp file for session %q: %w", s.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("texel: close temp file for session %q: %w", s.Name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("texel: rename temp file into place for session %q: %w", s.Name, err)
	}
	return nil
}

// LoadFrom reads and decodes a session record from path.
func LoadFrom(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texel: read session file %q: %w", path, err)
	}
	return Unmarshal(data)
}
