// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package texel

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func ctrlSpace() KeyCombo {
	return KeyCombo{Key: tcell.KeyRune, Rune: ' ', Mods: tcell.ModCtrl}
}

func newTestMachine() *Machine {
	leader := ctrlSpace()
	bindings := map[KeyCombo]MuxCommand{
		{Key: tcell.KeyRune, Rune: 'c'}: {Kind: SplitVertical},
	}
	return NewMachine([]KeyCombo{leader}, bindings, time.Second)
}

func TestLeaderEntersWaitingForCommand(t *testing.T) {
	m := newTestMachine()
	now := time.Unix(0, 0)

	eff := m.HandleKey(ctrlSpace(), now)
	if eff.Kind != EffectNone {
		t.Fatalf("expected EffectNone on leader key, got %v", eff.Kind)
	}
	if m.State() != WaitingForCommand {
		t.Fatalf("expected WaitingForCommand, got %v", m.State())
	}
}

func TestLeaderDispatchesMappedCommand(t *testing.T) {
	m := newTestMachine()
	now := time.Unix(0, 0)
	m.HandleKey(ctrlSpace(), now)

	eff := m.HandleKey(KeyCombo{Key: tcell.KeyRune, Rune: 'c'}, now)
	if eff.Kind != EffectCommand || eff.Command.Kind != SplitVertical {
		t.Fatalf("expected EffectCommand(SplitVertical), got %+v", eff)
	}
	if m.State() != Normal {
		t.Fatalf("expected return to Normal, got %v", m.State())
	}
}

func TestLeaderTimeout(t *testing.T) {
	m := newTestMachine()
	start := time.Unix(0, 0)
	m.HandleKey(ctrlSpace(), start)

	later := start.Add(1100 * time.Millisecond)
	eff := m.HandleKey(KeyCombo{Key: tcell.KeyRune, Rune: 'x'}, later)
	if eff.Kind != EffectForward {
		t.Fatalf("expected EffectForward after timeout, got %v", eff.Kind)
	}
	if m.State() != Normal {
		t.Fatalf("expected Normal after timeout, got %v", m.State())
	}
}

func TestDoubleLeaderSendsLiteral(t *testing.T) {
	m := newTestMachine()
	now := time.Unix(0, 0)
	m.HandleKey(ctrlSpace(), now)

	eff := m.HandleKey(ctrlSpace(), now)
	if eff.Kind != EffectSendLiteralLeader {
		t.Fatalf("expected EffectSendLiteralLeader, got %v", eff.Kind)
	}
	if m.State() != Normal {
		t.Fatalf("expected Normal after double leader, got %v", m.State())
	}
}

func TestUnmappedKeyDiscardedInWaitingForCommand(t *testing.T) {
	m := newTestMachine()
	now := time.Unix(0, 0)
	m.HandleKey(ctrlSpace(), now)

	eff := m.HandleKey(KeyCombo{Key: tcell.KeyRune, Rune: 'z'}, now)
	if eff.Kind != EffectNone {
		t.Fatalf("expected EffectNone for unmapped key, got %v", eff.Kind)
	}
	if m.State() != Normal {
		t.Fatalf("expected Normal after unmapped key, got %v", m.State())
	}
}

func TestTickAppliesIdleTimeout(t *testing.T) {
	m := newTestMachine()
	start := time.Unix(0, 0)
	m.HandleKey(ctrlSpace(), start)

	m.Tick(start.Add(1100 * time.Millisecond))
	if m.State() != Normal {
		t.Fatalf("expected Tick to apply idle timeout, got %v", m.State())
	}
}
