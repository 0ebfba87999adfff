// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default keybindings and the action-name vocabulary the
// `multiplexer.keybindings` table is keyed by.

package config

// Action names recognized in the `multiplexer.keybindings` table. These
// are the wire vocabulary between a config file and texel.MuxCommandKind;
// ResolveKeybindings below does the translation.
const (
	ActionSplitHorizontal = "split_horizontal"
	ActionSplitVertical   = "split_vertical"
	ActionClosePane       = "close_pane"
	ActionNextPane        = "next_pane"
	ActionPrevPane        = "prev_pane"
	ActionNavigateUp      = "navigate_up"
	ActionNavigateDown    = "navigate_down"
	ActionNavigateLeft    = "navigate_left"
	ActionNavigateRight   = "navigate_right"
	ActionResizeUp        = "resize_up"
	ActionResizeDown      = "resize_down"
	ActionResizeLeft      = "resize_left"
	ActionResizeRight     = "resize_right"
	ActionNewWindow       = "new_window"
	ActionCloseWindow     = "close_window"
	ActionNextWindow      = "next_window"
	ActionPrevWindow      = "prev_window"
	ActionRenameWindow    = "rename_window"
	ActionToggleZoom      = "toggle_zoom"
	ActionDetach          = "detach"
	ActionScrollbackMode  = "scrollback_mode"

	ActionSelectWindow1 = "select_window_1"
	ActionSelectWindow2 = "select_window_2"
	ActionSelectWindow3 = "select_window_3"
	ActionSelectWindow4 = "select_window_4"
	ActionSelectWindow5 = "select_window_5"
	ActionSelectWindow6 = "select_window_6"
	ActionSelectWindow7 = "select_window_7"
	ActionSelectWindow8 = "select_window_8"
	ActionSelectWindow9 = "select_window_9"
	ActionSelectWindow0 = "select_window_0"
)

func defaultKeybindings() map[string]string {
	return map[string]string{
		ActionSplitHorizontal: "Control-s",
		ActionSplitVertical:   "Control-v",
		ActionClosePane:       "x",
		ActionNextPane:        "o",
		ActionPrevPane:        "O",
		ActionNavigateUp:      "k",
		ActionNavigateDown:    "j",
		ActionNavigateLeft:    "h",
		ActionNavigateRight:   "l",
		ActionResizeUp:        "K",
		ActionResizeDown:      "J",
		ActionResizeLeft:      "H",
		ActionResizeRight:     "L",
		ActionNewWindow:       "c",
		ActionCloseWindow:     "Control-x",
		ActionNextWindow:      "n",
		ActionPrevWindow:      "p",
		ActionRenameWindow:    ",",
		ActionToggleZoom:      "z",
		ActionDetach:          "d",
		ActionScrollbackMode:  "[",
		ActionSelectWindow1:   "1",
		ActionSelectWindow2:   "2",
		ActionSelectWindow3:   "3",
		ActionSelectWindow4:   "4",
		ActionSelectWindow5:   "5",
		ActionSelectWindow6:   "6",
		ActionSelectWindow7:   "7",
		ActionSelectWindow8:   "8",
		ActionSelectWindow9:   "9",
		ActionSelectWindow0:   "0",
	}
}
