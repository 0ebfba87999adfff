// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/tree.go
// Summary: Binary split-tree layout engine: tiling, split, close, and resize.
// Notes: Pure and synchronous by design, which is what makes the invariants
// in §3 and §8 of the design property-testable without any I/O.

package texel

import (
	"errors"

	"mux/ids"
	"mux/rect"
)

// LayoutNode is a node in the binary split tree: either a Leaf holding a
// single pane, or a Split holding two children.
type LayoutNode struct {
	// Leaf fields.
	PaneID ids.PaneId
	isLeaf bool

	// Split fields.
	Direction rect.Direction
	Ratio     float64
	First     *LayoutNode
	Second    *LayoutNode
}

// Leaf constructs a leaf node wrapping pid.
func Leaf(pid ids.PaneId) *LayoutNode {
	return &LayoutNode{PaneID: pid, isLeaf: true}
}

// NewSplit constructs a split node. Ratio is clamped to [0.1, 0.9] (§3
// invariant 4) rather than rejected, matching how loaded/computed ratios
// are handled per §7 LayoutError::InvalidRatio.
func NewSplit(dir rect.Direction, ratio float64, first, second *LayoutNode) *LayoutNode {
	return &LayoutNode{
		Direction: dir,
		Ratio:     clampRatio(ratio),
		First:     first,
		Second:    second,
	}
}

func clampRatio(r float64) float64 {
	const minRatio, maxRatio = 0.1, 0.9
	if r < minRatio {
		return minRatio
	}
	if r > maxRatio {
		return maxRatio
	}
	return r
}

// IsLeaf reports whether n is a leaf node.
func (n *LayoutNode) IsLeaf() bool {
	return n == nil || n.isLeaf
}

var (
	// ErrPaneNotFound is returned when an operation references a pane id
	// absent from the tree.
	ErrPaneNotFound = errors.New("texel: pane not found")
	// ErrTooSmall is returned when a split or resize would violate the
	// minimum pane size (§3 invariant 6, §7 LayoutError::TooSmall).
	ErrTooSmall = errors.New("texel: layout would fall below minimum pane size")
)

// Tile computes the rectangle of every pane in the tree given the area
// assigned to its root (§4.1).
func Tile(n *LayoutNode, area rect.Rect) map[ids.PaneId]rect.Rect {
	out := make(map[ids.PaneId]rect.Rect)
	tile(n, area, out)
	return out
}

func tile(n *LayoutNode, area rect.Rect, out map[ids.PaneId]rect.Rect) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		out[n.PaneID] = area
		return
	}
	first, second := rect.Split(area, n.Direction, n.Ratio)
	tile(n.First, first, out)
	tile(n.Second, second, out)
}

// Contains reports whether pid appears anywhere in the tree.
func Contains(n *LayoutNode, pid ids.PaneId) bool {
	if n == nil {
		return false
	}
	if n.IsLeaf() {
		return n.PaneID == pid
	}
	return Contains(n.First, pid) || Contains(n.Second, pid)
}

// PaneIDs returns every pane id in the tree, in left-to-right (first-child
// first) order.
func PaneIDs(n *LayoutNode) []ids.PaneId {
	var out []ids.PaneId
	collectPaneIDs(n, &out)
	return out
}

func collectPaneIDs(n *LayoutNode, out *[]ids.PaneId) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		*out = append(*out, n.PaneID)
		return
	}
	collectPaneIDs(n.First, out)
	collectPaneIDs(n.Second, out)
}

// PaneCount returns the number of leaves in the tree.
func PaneCount(n *LayoutNode) int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	return PaneCount(n.First) + PaneCount(n.Second)
}

// RectOf returns target's rectangle under area, if present.
func RectOf(n *LayoutNode, area rect.Rect, target ids.PaneId) (rect.Rect, bool) {
	rects := Tile(n, area)
	r, ok := rects[target]
	return r, ok
}

// Split locates the leaf holding target and replaces it with a new split of
// direction dir, equally dividing target's area between target and a fresh
// pane. area is the enclosing window's full rectangle, needed to reject the
// split if either resulting child would fall below the minimum pane size
// (§4.2, §7 LayoutError::TooSmall).
func Split(n *LayoutNode, area rect.Rect, target ids.PaneId, dir rect.Direction, newPane ids.PaneId) (*LayoutNode, error) {
	if !Contains(n, target) {
		return nil, ErrPaneNotFound
	}

	targetRect, ok := RectOf(n, area, target)
	if !ok {
		return nil, ErrPaneNotFound
	}
	first, second := rect.Split(targetRect, dir, 0.5)
	if !rect.FitsMinimum(first) || !rect.FitsMinimum(second) {
		return nil, ErrTooSmall
	}

	replaced, ok := replaceLeaf(n, target, func(leaf *LayoutNode) *LayoutNode {
		return NewSplit(dir, 0.5, Leaf(target), Leaf(newPane))
	})
	if !ok {
		return nil, ErrPaneNotFound
	}
	return replaced, nil
}

// replaceLeaf returns a new tree with the leaf holding target replaced by
// the node produced by replace. The original tree is not mutated in place;
// callers own the returned root.
func replaceLeaf(n *LayoutNode, target ids.PaneId, replace func(*LayoutNode) *LayoutNode) (*LayoutNode, bool) {
	if n == nil {
		return nil, false
	}
	if n.IsLeaf() {
		if n.PaneID != target {
			return n, false
		}
		return replace(n), true
	}
	if newFirst, ok := replaceLeaf(n.First, target, replace); ok {
		return &LayoutNode{Direction: n.Direction, Ratio: n.Ratio, First: newFirst, Second: n.Second}, true
	}
	if newSecond, ok := replaceLeaf(n.Second, target, replace); ok {
		return &LayoutNode{Direction: n.Direction, Ratio: n.Ratio, First: n.First, Second: newSecond}, true
	}
	return n, false
}

// Close removes target from the tree (§4.3). If n is the sole leaf holding
// target, Close returns (nil, true) to signal the window has no panes left.
// Otherwise it returns the tree with target's parent split collapsed to its
// sibling.
func Close(n *LayoutNode, target ids.PaneId) (*LayoutNode, bool, error) {
	if n == nil {
		return nil, false, ErrPaneNotFound
	}
	if n.IsLeaf() {
		if n.PaneID != target {
			return nil, false, ErrPaneNotFound
		}
		return nil, true, nil
	}
	if !Contains(n, target) {
		return nil, false, ErrPaneNotFound
	}
	result := closeFrom(n, target)
	return result, false, nil
}

// closeFrom assumes target is present somewhere under n (n is not itself a
// matching leaf) and returns the collapsed tree.
func closeFrom(n *LayoutNode, target ids.PaneId) *LayoutNode {
	if n.First.IsLeaf() && n.First.PaneID == target {
		return n.Second
	}
	if n.Second.IsLeaf() && n.Second.PaneID == target {
		return n.First
	}
	if Contains(n.First, target) {
		return &LayoutNode{Direction: n.Direction, Ratio: n.Ratio, First: closeFrom(n.First, target), Second: n.Second}
	}
	return &LayoutNode{Direction: n.Direction, Ratio: n.Ratio, First: n.First, Second: closeFrom(n.Second, target)}
}

// Resize walks from root to target, finds the nearest ancestor split whose
// direction matches dir's axis, and nudges its ratio by delta, clamped so
// neither child falls below the minimum size under area (§4.4). If no such
// ancestor exists the operation is a no-op, never an error.
func Resize(n *LayoutNode, area rect.Rect, target ids.PaneId, dir rect.Direction, delta float64) (*LayoutNode, error) {
	if !Contains(n, target) {
		return nil, ErrPaneNotFound
	}
	result, _ := resize(n, area, target, dir, delta)
	return result, nil
}

// resize returns the (possibly unchanged) node and whether target lies
// beneath it, so callers can find the nearest matching-direction ancestor
// without a second traversal.
func resize(n *LayoutNode, area rect.Rect, target ids.PaneId, dir rect.Direction, delta float64) (*LayoutNode, bool) {
	if n.IsLeaf() {
		return n, n.PaneID == target
	}

	firstArea, secondArea := rect.Split(area, n.Direction, n.Ratio)

	newFirst, foundInFirst := resize(n.First, firstArea, target, dir, delta)
	if foundInFirst {
		if n.Direction == dir {
			return adjustRatio(n, area, newFirst, n.Second, delta), true
		}
		return &LayoutNode{Direction: n.Direction, Ratio: n.Ratio, First: newFirst, Second: n.Second}, true
	}

	newSecond, foundInSecond := resize(n.Second, secondArea, target, dir, delta)
	if foundInSecond {
		if n.Direction == dir {
			return adjustRatio(n, area, n.First, newSecond, delta), true
		}
		return &LayoutNode{Direction: n.Direction, Ratio: n.Ratio, First: n.First, Second: newSecond}, true
	}

	return n, false
}

// adjustRatio clamps n's ratio by delta so that neither child's projected
// dimension under area falls below the minimum.
func adjustRatio(n *LayoutNode, area rect.Rect, first, second *LayoutNode, delta float64) *LayoutNode {
	extent := area.W
	minDim := rect.MinWidth
	if n.Direction == rect.Horizontal {
		extent = area.H
		minDim = rect.MinHeight
	}

	newRatio := n.Ratio + delta
	if extent > 0 {
		minRatio := float64(minDim) / float64(extent)
		maxRatio := 1 - minRatio
		if newRatio < minRatio {
			newRatio = minRatio
		}
		if newRatio > maxRatio {
			newRatio = maxRatio
		}
	}
	newRatio = clampRatio(newRatio)

	return &LayoutNode{Direction: n.Direction, Ratio: newRatio, First: first, Second: second}
}

// Rects returns the pane-id-to-rectangle map for a leaf, used by callers
// that already know they are dealing with a single-pane tree (e.g. a
// freshly created window).
func Rects(n *LayoutNode, area rect.Rect) map[ids.PaneId]rect.Rect {
	return Tile(n, area)
}
