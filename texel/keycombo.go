// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/keycombo.go
// Summary: KeyCombo: a key plus modifiers, matched against tcell's key
// event shape without depending on tcell's event type itself.

package texel

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// KeyCombo identifies a keystroke the way config files name one: a tcell
// key constant (or KeyRune for a plain printable rune) plus a modifier
// mask. It is comparable, so it can be used as a map key directly for
// keybinding lookups.
type KeyCombo struct {
	Key  tcell.Key
	Rune rune
	Mods tcell.ModMask
}

// FromEvent builds a KeyCombo from the values a tcell.EventKey exposes,
// without importing tcell's event machinery into the core.
func FromEvent(key tcell.Key, r rune, mods tcell.ModMask) KeyCombo {
	if key == tcell.KeyRune {
		return KeyCombo{Key: tcell.KeyRune, Rune: r, Mods: mods}
	}
	return KeyCombo{Key: key, Mods: mods}
}

// String renders a combo in the "Control-Space"/"Control-b" form used by
// the configuration shape (§6).
func (k KeyCombo) String() string {
	var mods []string
	if k.Mods&tcell.ModCtrl != 0 {
		mods = append(mods, "Control")
	}
	if k.Mods&tcell.ModAlt != 0 {
		mods = append(mods, "Alt")
	}
	if k.Mods&tcell.ModShift != 0 {
		mods = append(mods, "Shift")
	}
	if k.Mods&tcell.ModMeta != 0 {
		mods = append(mods, "Meta")
	}

	name := keyName(k)
	if len(mods) == 0 {
		return name
	}
	return strings.Join(mods, "-") + "-" + name
}

func keyName(k KeyCombo) string {
	if k.Key == tcell.KeyRune {
		if k.Rune == ' ' {
			return "Space"
		}
		return string(k.Rune)
	}
	if name, ok := tcell.KeyNames[k.Key]; ok {
		return strings.TrimPrefix(name, "Ctrl-")
	}
	return fmt.Sprintf("Key(%d)", k.Key)
}

// ParseKeyCombo parses the "Control-Space"/"Control-b"/"F5" form used in
// configuration files. Recognized modifier names are "Control", "Alt",
// "Shift", and "Meta", joined to the key name by '-'.
func ParseKeyCombo(s string) (KeyCombo, error) {
	parts := strings.Split(s, "-")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return KeyCombo{}, fmt.Errorf("texel: empty key combo")
	}

	var mods tcell.ModMask
	for _, p := range parts[:len(parts)-1] {
		switch p {
		case "Control", "Ctrl":
			mods |= tcell.ModCtrl
		case "Alt":
			mods |= tcell.ModAlt
		case "Shift":
			mods |= tcell.ModShift
		case "Meta":
			mods |= tcell.ModMeta
		default:
			return KeyCombo{}, fmt.Errorf("texel: unknown modifier %q in key combo %q", p, s)
		}
	}

	last := parts[len(parts)-1]
	if last == "Space" {
		return KeyCombo{Key: tcell.KeyRune, Rune: ' ', Mods: mods}, nil
	}
	if r := []rune(last); len(r) == 1 {
		return KeyCombo{Key: tcell.KeyRune, Rune: r[0], Mods: mods}, nil
	}
	for key, name := range tcell.KeyNames {
		if strings.TrimPrefix(name, "Ctrl-") == last {
			return KeyCombo{Key: key, Mods: mods}, nil
		}
	}
	return KeyCombo{}, fmt.Errorf("texel: unrecognized key name %q in key combo %q", last, s)
}
