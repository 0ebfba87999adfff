// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/leader.go
// Summary: Leader-key input state machine (§4.7). Deterministic, owns no
// I/O: callers feed it keystrokes and clock ticks and act on the Effect it
// returns.

package texel

import "time"

// LeaderState is the state machine's current mode.
type LeaderState int

const (
	// Normal is the default mode: keystrokes pass through untouched unless
	// they match a configured leader key.
	Normal LeaderState = iota
	// WaitingForCommand is entered after a leader key is seen; the next
	// keystroke is interpreted as a command (or the literal leader, or
	// discarded) rather than forwarded.
	WaitingForCommand
)

// EffectKind discriminates the result of feeding the machine a keystroke.
type EffectKind int

const (
	// EffectNone means nothing happened: the key was consumed with no
	// visible result (entering WaitingForCommand, or discarding an
	// unmapped key, or an idle timeout).
	EffectNone EffectKind = iota
	// EffectForward means the key was not consumed; the caller must send
	// it to the active pane's PTY unchanged.
	EffectForward
	// EffectCommand means a MuxCommand was emitted.
	EffectCommand
	// EffectSendLiteralLeader means the primary leader key's own bytes
	// must be forwarded to the active pane's PTY (double-leader escape).
	EffectSendLiteralLeader
)

// Effect is what the caller must do after HandleKey or Tick returns.
type Effect struct {
	Kind    EffectKind
	Command MuxCommand
}

// Machine is the leader-key state machine. Not safe for concurrent use;
// callers that dispatch from multiple goroutines must serialize access
// (the attach client drives it from its single stdin-relay goroutine).
type Machine struct {
	state       LeaderState
	startedAt   time.Time
	leaderKeys  []KeyCombo
	keybindings map[KeyCombo]MuxCommand
	timeout     time.Duration
}

// NewMachine constructs a machine. leaderKeys are the configured prefix
// keys (any of which enters WaitingForCommand); keybindings maps a
// keystroke, while in WaitingForCommand, to the MuxCommand it emits.
func NewMachine(leaderKeys []KeyCombo, keybindings map[KeyCombo]MuxCommand, timeout time.Duration) *Machine {
	return &Machine{
		leaderKeys:  append([]KeyCombo(nil), leaderKeys...),
		keybindings: keybindings,
		timeout:     timeout,
	}
}

// State reports the machine's current mode, for status-bar display or
// diagnostics.
func (m *Machine) State() LeaderState {
	return m.state
}

func (m *Machine) isLeaderKey(k KeyCombo) bool {
	for _, lk := range m.leaderKeys {
		if lk == k {
			return true
		}
	}
	return false
}

// Tick evaluates the idle timeout without consuming a keystroke (§4.7:
// "evaluated on each incoming event and on a periodic tick"). Call this
// from a periodic timer in addition to HandleKey.
func (m *Machine) Tick(now time.Time) Effect {
	if m.state != WaitingForCommand {
		return Effect{Kind: EffectNone}
	}
	if now.Sub(m.startedAt) >= m.timeout {
		m.state = Normal
	}
	return Effect{Kind: EffectNone}
}

// HandleKey feeds one keystroke to the machine and returns the effect the
// caller must apply.
func (m *Machine) HandleKey(k KeyCombo, now time.Time) Effect {
	switch m.state {
	case Normal:
		if m.isLeaderKey(k) {
			m.state = WaitingForCommand
			m.startedAt = now
			return Effect{Kind: EffectNone}
		}
		return Effect{Kind: EffectForward}

	case WaitingForCommand:
		if now.Sub(m.startedAt) >= m.timeout {
			m.state = Normal
			// The keystroke that arrived after the idle window elapsed is
			// handled fresh against Normal state, not discarded with the
			// timeout: the original WaitingForCommand keypress is the one
			// that is lost (§4.7), this one was never part of it.
			return m.HandleKey(k, now)
		}

		m.state = Normal
		if m.isLeaderKey(k) {
			return Effect{Kind: EffectSendLiteralLeader}
		}
		if cmd, ok := m.keybindings[k]; ok {
			return Effect{Kind: EffectCommand, Command: cmd}
		}
		return Effect{Kind: EffectNone}

	default:
		return Effect{Kind: EffectNone}
	}
}
