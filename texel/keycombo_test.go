// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package texel

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestParseKeyComboControlSpace(t *testing.T) {
	k, err := ParseKeyCombo("Control-Space")
	if err != nil {
		t.Fatalf("ParseKeyCombo: %v", err)
	}
	want := KeyCombo{Key: tcell.KeyRune, Rune: ' ', Mods: tcell.ModCtrl}
	if k != want {
		t.Fatalf("got %+v, want %+v", k, want)
	}
}

func TestParseKeyComboPlainRune(t *testing.T) {
	k, err := ParseKeyCombo("Control-b")
	if err != nil {
		t.Fatalf("ParseKeyCombo: %v", err)
	}
	want := KeyCombo{Key: tcell.KeyRune, Rune: 'b', Mods: tcell.ModCtrl}
	if k != want {
		t.Fatalf("got %+v, want %+v", k, want)
	}
}

func TestKeyComboStringRoundTrip(t *testing.T) {
	for _, s := range []string{"Control-Space", "Control-b", "Alt-x"} {
		k, err := ParseKeyCombo(s)
		if err != nil {
			t.Fatalf("ParseKeyCombo(%q): %v", s, err)
		}
		if got := k.String(); got != s {
			t.Errorf("String() = %q, want %q", got, s)
		}
	}
}

func TestParseKeyComboRejectsUnknownModifier(t *testing.T) {
	if _, err := ParseKeyCombo("Hyper-x"); err == nil {
		t.Fatalf("expected an error for unknown modifier")
	}
}
