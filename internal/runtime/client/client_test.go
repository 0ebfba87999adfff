// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"mux/protocol"
	"mux/texel"
)

func newTestClient(t *testing.T, machine *texel.Machine) (*Client, net.Conn) {
	t.Helper()
	serverSide, clientSide := net.Pipe()
	c := &Client{conn: clientSide, machine: machine}
	t.Cleanup(func() { serverSide.Close(); clientSide.Close() })
	return c, serverSide
}

func readEnvelope(t *testing.T, conn net.Conn) protocol.Envelope {
	t.Helper()
	env, err := protocol.ReadMessage(conn)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	return env
}

func TestForwardBytesWithoutMachineSendsInputVerbatim(t *testing.T) {
	c, server := newTestClient(t, nil)
	go c.forwardBytes([]byte("ls\n"))

	env := readEnvelope(t, server)
	if env.Type != protocol.TypeInput {
		t.Fatalf("type = %q, want %q", env.Type, protocol.TypeInput)
	}
	var in protocol.Input
	if err := json.Unmarshal(env.Data, &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(in.Bytes) != "ls\n" {
		t.Fatalf("Bytes = %q, want %q", in.Bytes, "ls\n")
	}
}

func TestForwardBytesLeaderDispatchesCommand(t *testing.T) {
	leader := texel.KeyCombo{Key: tcell.KeyRune, Rune: ' ', Mods: tcell.ModCtrl}
	keybindings := map[texel.KeyCombo]texel.MuxCommand{
		{Key: tcell.KeyRune, Rune: 'c', Mods: 0}: {Kind: texel.SplitVertical},
	}
	machine := texel.NewMachine([]texel.KeyCombo{leader}, keybindings, 2*time.Second)

	c, server := newTestClient(t, machine)
	go func() {
		c.forwardBytes([]byte{0}) // Ctrl-Space
		c.forwardBytes([]byte("c"))
	}()

	env := readEnvelope(t, server)
	if env.Type != protocol.TypeCommand {
		t.Fatalf("type = %q, want %q", env.Type, protocol.TypeCommand)
	}
	var cmd protocol.Command
	if err := json.Unmarshal(env.Data, &cmd); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cmd.Kind != "SplitVertical" {
		t.Fatalf("Kind = %q, want SplitVertical", cmd.Kind)
	}
}

func TestControlRuneRoundTrip(t *testing.T) {
	if got := controlRune(0); got != ' ' {
		t.Errorf("controlRune(0) = %q, want ' '", got)
	}
	if got := controlRune(2); got != 'b' {
		t.Errorf("controlRune(2) = %q, want 'b'", got)
	}
}
