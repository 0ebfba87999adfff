// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import (
	"testing"

	"mux/rect"
	"mux/texel"
)

func TestEncodeDecodeCommandRoundTrip(t *testing.T) {
	cases := []texel.MuxCommand{
		{Kind: texel.SplitVertical},
		{Kind: texel.NavigatePane, Direction: rect.Left},
		{Kind: texel.ResizePane, Direction: rect.Up, DeltaCells: 3},
		{Kind: texel.SwitchToWindow, WindowSlot: 0},
		{Kind: texel.RenameWindow, Name: "logs"},
	}
	for _, cmd := range cases {
		wire := EncodeCommand(cmd)
		got, err := DecodeCommand(wire)
		if err != nil {
			t.Fatalf("DecodeCommand(%+v): %v", wire, err)
		}
		if got != cmd {
			t.Errorf("round trip mismatch: got %+v, want %+v", got, cmd)
		}
	}
}

func TestDecodeCommandRejectsUnknownKind(t *testing.T) {
	if _, err := DecodeCommand(Command{Kind: "NotARealCommand"}); err == nil {
		t.Fatalf("expected an error for unknown command kind")
	}
}
