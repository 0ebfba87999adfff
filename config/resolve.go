// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/resolve.go
// Summary: Translates the TOML-decoded Config into the texel package's
// runtime shapes (KeyCombo leader keys, MuxCommand keybindings).

package config

import (
	"fmt"
	"time"

	"mux/rect"
	"mux/texel"
)

var resizeDeltaCells = 5

var actionKinds = map[string]texel.MuxCommandKind{
	ActionSplitHorizontal: texel.SplitHorizontal,
	ActionSplitVertical:   texel.SplitVertical,
	ActionClosePane:       texel.ClosePane,
	ActionNextPane:        texel.NextPane,
	ActionPrevPane:        texel.PrevPane,
	ActionNavigateUp:      texel.NavigatePane,
	ActionNavigateDown:    texel.NavigatePane,
	ActionNavigateLeft:    texel.NavigatePane,
	ActionNavigateRight:   texel.NavigatePane,
	ActionResizeUp:        texel.ResizePane,
	ActionResizeDown:      texel.ResizePane,
	ActionResizeLeft:      texel.ResizePane,
	ActionResizeRight:     texel.ResizePane,
	ActionNewWindow:       texel.NewWindow,
	ActionCloseWindow:     texel.CloseWindow,
	ActionNextWindow:      texel.NextWindow,
	ActionPrevWindow:      texel.PrevWindow,
	ActionToggleZoom:      texel.ToggleZoom,
	ActionDetach:          texel.DetachSession,
	ActionScrollbackMode:  texel.ScrollbackMode,
	ActionSelectWindow1:   texel.SwitchToWindow,
	ActionSelectWindow2:   texel.SwitchToWindow,
	ActionSelectWindow3:   texel.SwitchToWindow,
	ActionSelectWindow4:   texel.SwitchToWindow,
	ActionSelectWindow5:   texel.SwitchToWindow,
	ActionSelectWindow6:   texel.SwitchToWindow,
	ActionSelectWindow7:   texel.SwitchToWindow,
	ActionSelectWindow8:   texel.SwitchToWindow,
	ActionSelectWindow9:   texel.SwitchToWindow,
	ActionSelectWindow0:   texel.SwitchToWindow,
}

// windowSlots maps each select_window_* action to the keymap slot it
// drives (§4.6: 1-9 select windows 1-9, 0 selects window 10).
var windowSlots = map[string]int{
	ActionSelectWindow1: 1,
	ActionSelectWindow2: 2,
	ActionSelectWindow3: 3,
	ActionSelectWindow4: 4,
	ActionSelectWindow5: 5,
	ActionSelectWindow6: 6,
	ActionSelectWindow7: 7,
	ActionSelectWindow8: 8,
	ActionSelectWindow9: 9,
	ActionSelectWindow0: 0,
}

var actionDirections = map[string]rect.NavigateDirection{
	ActionNavigateUp:    rect.Up,
	ActionNavigateDown:  rect.Down,
	ActionNavigateLeft:  rect.Left,
	ActionNavigateRight: rect.Right,
	ActionResizeUp:      rect.Up,
	ActionResizeDown:    rect.Down,
	ActionResizeLeft:    rect.Left,
	ActionResizeRight:   rect.Right,
}

// commandForAction builds the MuxCommand an action name emits.
// RenameWindow is excluded: it needs a name argument a static keybindings
// table cannot supply, so it is left for an interactive prompt in the
// client rather than bound directly.
func commandForAction(action string) (texel.MuxCommand, bool) {
	kind, ok := actionKinds[action]
	if !ok {
		return texel.MuxCommand{}, false
	}
	cmd := texel.MuxCommand{Kind: kind}
	if dir, ok := actionDirections[action]; ok {
		cmd.Direction = dir
	}
	if kind == texel.ResizePane {
		cmd.DeltaCells = resizeDeltaCells
		if cmd.Direction == rect.Up || cmd.Direction == rect.Left {
			cmd.DeltaCells = -resizeDeltaCells
		}
	}
	if kind == texel.SwitchToWindow {
		cmd.WindowSlot = windowSlots[action]
	}
	return cmd, true
}

// BuildMachine constructs a leader-key state machine from cfg's
// keybindings table, resolving each configured KeyCombo string (§6
// "KeyCombo") via texel.ParseKeyCombo.
func BuildMachine(cfg *Config) (*texel.Machine, error) {
	m := cfg.Multiplexer

	leaderKeys := make([]texel.KeyCombo, 0, len(m.LeaderKeys))
	for _, s := range m.LeaderKeys {
		k, err := texel.ParseKeyCombo(s)
		if err != nil {
			return nil, fmt.Errorf("config: leader key %q: %w", s, err)
		}
		leaderKeys = append(leaderKeys, k)
	}

	bindings := make(map[texel.KeyCombo]texel.MuxCommand, len(m.Keybindings))
	for action, combo := range m.Keybindings {
		cmd, ok := commandForAction(action)
		if !ok {
			continue
		}
		k, err := texel.ParseKeyCombo(combo)
		if err != nil {
			return nil, fmt.Errorf("config: keybinding %q=%q: %w", action, combo, err)
		}
		bindings[k] = cmd
	}

	timeout := time.Duration(m.LeaderTimeoutMs) * time.Millisecond
	return texel.NewMachine(leaderKeys, bindings, timeout), nil
}
