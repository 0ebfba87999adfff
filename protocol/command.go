// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/command.go
// Summary: Encode/decode between the wire Command shape and
// texel.MuxCommand.

package protocol

import (
	"fmt"

	"mux/rect"
	"mux/texel"
)

var commandKindNames = map[texel.MuxCommandKind]string{
	texel.SplitHorizontal: "SplitHorizontal",
	texel.SplitVertical:   "SplitVertical",
	texel.ClosePane:       "ClosePane",
	texel.NextPane:        "NextPane",
	texel.PrevPane:        "PrevPane",
	texel.NavigatePane:    "NavigatePane",
	texel.ResizePane:      "ResizePane",
	texel.NewWindow:       "NewWindow",
	texel.CloseWindow:     "CloseWindow",
	texel.NextWindow:      "NextWindow",
	texel.PrevWindow:      "PrevWindow",
	texel.SwitchToWindow:  "SwitchToWindow",
	texel.RenameWindow:    "RenameWindow",
	texel.ToggleZoom:      "ToggleZoom",
	texel.DetachSession:   "DetachSession",
	texel.ScrollbackMode:  "ScrollbackMode",
	texel.KillSession:     "KillSession",
}

var commandKindValues = func() map[string]texel.MuxCommandKind {
	out := make(map[string]texel.MuxCommandKind, len(commandKindNames))
	for k, v := range commandKindNames {
		out[v] = k
	}
	return out
}()

var navigateDirectionNames = map[rect.NavigateDirection]string{
	rect.Up:    "Up",
	rect.Down:  "Down",
	rect.Left:  "Left",
	rect.Right: "Right",
}

var navigateDirectionValues = func() map[string]rect.NavigateDirection {
	out := make(map[string]rect.NavigateDirection, len(navigateDirectionNames))
	for k, v := range navigateDirectionNames {
		out[v] = k
	}
	return out
}()

// EncodeCommand converts a texel.MuxCommand into its wire representation.
func EncodeCommand(cmd texel.MuxCommand) Command {
	return Command{
		Kind:       commandKindNames[cmd.Kind],
		Direction:  navigateDirectionNames[cmd.Direction],
		DeltaCells: cmd.DeltaCells,
		WindowSlot: cmd.WindowSlot,
		Name:       cmd.Name,
	}
}

// DecodeCommand converts a wire Command back into a texel.MuxCommand.
func DecodeCommand(c Command) (texel.MuxCommand, error) {
	kind, ok := commandKindValues[c.Kind]
	if !ok {
		return texel.MuxCommand{}, fmt.Errorf("protocol: unknown command kind %q", c.Kind)
	}
	cmd := texel.MuxCommand{
		Kind:       kind,
		DeltaCells: c.DeltaCells,
		WindowSlot: c.WindowSlot,
		Name:       c.Name,
	}
	if c.Direction != "" {
		dir, ok := navigateDirectionValues[c.Direction]
		if !ok {
			return texel.MuxCommand{}, fmt.Errorf("protocol: unknown direction %q", c.Direction)
		}
		cmd.Direction = dir
	}
	return cmd, nil
}
