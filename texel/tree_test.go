// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package texel

import (
	"errors"
	"testing"

	"mux/ids"
	"mux/rect"
)

func TestSplitAndTileScenario(t *testing.T) {
	area := rect.Rect{X: 0, Y: 0, W: 80, H: 24}
	p1, p2, p3 := ids.PaneId(1), ids.PaneId(2), ids.PaneId(3)

	layout := Leaf(p1)
	layout, err := Split(layout, area, p1, rect.Vertical, p2)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	rects := Tile(layout, area)
	if rects[p1] != (rect.Rect{X: 0, Y: 0, W: 40, H: 24}) {
		t.Fatalf("p1 = %+v", rects[p1])
	}
	if rects[p2] != (rect.Rect{X: 40, Y: 0, W: 40, H: 24}) {
		t.Fatalf("p2 = %+v", rects[p2])
	}

	layout, err = Split(layout, area, p2, rect.Horizontal, p3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	rects = Tile(layout, area)
	want := map[ids.PaneId]rect.Rect{
		p1: {X: 0, Y: 0, W: 40, H: 24},
		p2: {X: 40, Y: 0, W: 40, H: 12},
		p3: {X: 40, Y: 12, W: 40, H: 12},
	}
	for pid, r := range want {
		if rects[pid] != r {
			t.Errorf("%v = %+v, want %+v", pid, rects[pid], r)
		}
	}
}

func TestCloseCollapsesSplit(t *testing.T) {
	area := rect.Rect{X: 0, Y: 0, W: 80, H: 24}
	p1, p2, p3 := ids.PaneId(1), ids.PaneId(2), ids.PaneId(3)

	layout := Leaf(p1)
	layout, _ = Split(layout, area, p1, rect.Vertical, p2)
	layout, _ = Split(layout, area, p2, rect.Horizontal, p3)

	newLayout, emptied, err := Close(layout, p3)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if emptied {
		t.Fatalf("should not have emptied")
	}
	if newLayout.IsLeaf() {
		t.Fatalf("expected a split remaining")
	}
	if newLayout.Direction != rect.Vertical || newLayout.Ratio != 0.5 {
		t.Fatalf("unexpected root: %+v", newLayout)
	}
	if newLayout.First.PaneID != p1 || newLayout.Second.PaneID != p2 {
		t.Fatalf("expected Leaf(p1), Leaf(p2), got %+v / %+v", newLayout.First, newLayout.Second)
	}
}

func TestCloseLastLeafEmptiesWindow(t *testing.T) {
	layout := Leaf(ids.PaneId(1))
	newLayout, emptied, err := Close(layout, ids.PaneId(1))
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !emptied || newLayout != nil {
		t.Fatalf("expected emptied=true, nil layout; got emptied=%v layout=%+v", emptied, newLayout)
	}
}

func TestSplitRejectsBelowMinimum(t *testing.T) {
	area := rect.Rect{X: 0, Y: 0, W: 5, H: 2}
	p1, p2 := ids.PaneId(1), ids.PaneId(2)
	layout := Leaf(p1)

	_, err := Split(layout, area, p1, rect.Vertical, p2)
	if !errors.Is(err, ErrTooSmall) {
		t.Fatalf("expected ErrTooSmall, got %v", err)
	}
}

func TestResizeNoAncestorIsNoop(t *testing.T) {
	area := rect.Rect{X: 0, Y: 0, W: 80, H: 24}
	p1 := ids.PaneId(1)
	layout := Leaf(p1)

	result, err := Resize(layout, area, p1, rect.Vertical, 0.1)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if !result.IsLeaf() || result.PaneID != p1 {
		t.Fatalf("expected unchanged leaf, got %+v", result)
	}
}

func TestResizeClampsNearMinimum(t *testing.T) {
	area := rect.Rect{X: 0, Y: 0, W: 10, H: 24}
	p1, p2 := ids.PaneId(1), ids.PaneId(2)
	layout := Leaf(p1)
	layout, _ = Split(layout, area, p1, rect.Vertical, p2)

	result, err := Resize(layout, area, p1, rect.Vertical, -0.9)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	minRatio := float64(rect.MinWidth) / float64(area.W)
	if result.Ratio < minRatio-1e-9 {
		t.Fatalf("ratio %v fell below minimum %v", result.Ratio, minRatio)
	}
}
