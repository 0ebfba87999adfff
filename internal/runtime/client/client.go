// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/client/client.go
// Summary: A raw-passthrough attach client: puts the local terminal into
// raw mode, forwards stdin as Input/Command messages, and writes server
// Output straight to stdout. Grid rendering belongs to an embedding
// terminal emulator, not this package.

package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"mux/protocol"
	"mux/texel"
)

// Client manages one attached connection to a mux server.
type Client struct {
	conn net.Conn

	machineMu sync.Mutex
	machine   *texel.Machine

	termState *term.State
	stdinFd   int
}

// SetMachine swaps the leader-key machine used to interpret stdin, for
// config hot-reload. The new machine starts in Normal, so an in-flight
// WaitingForCommand state is not carried across the swap.
func (c *Client) SetMachine(m *texel.Machine) {
	c.machineMu.Lock()
	defer c.machineMu.Unlock()
	c.machine = m
}

func (c *Client) currentMachine() *texel.Machine {
	c.machineMu.Lock()
	defer c.machineMu.Unlock()
	return c.machine
}

// Dial connects to the server listening on socketPath and sends the
// initial Attach handshake.
func Dial(socketPath string, machine *texel.Machine) (*Client, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", socketPath, err)
	}
	c := &Client{conn: conn, machine: machine, stdinFd: int(os.Stdin.Fd())}
	if err := protocol.WriteMessage(conn, protocol.TypeAttach, protocol.Attach{}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("client: send attach: %w", err)
	}
	return c, nil
}

// EnterRawMode switches the local terminal into raw mode, returning a
// restore function the caller must defer.
func (c *Client) EnterRawMode() (func(), error) {
	state, err := term.MakeRaw(c.stdinFd)
	if err != nil {
		return nil, fmt.Errorf("client: enter raw mode: %w", err)
	}
	c.termState = state
	return func() {
		_ = term.Restore(c.stdinFd, c.termState)
	}, nil
}

// Run drives the attach session until the connection closes, the server
// sends ServerShutdown, or reading stdin fails: it reads server messages on the calling goroutine and relays
// stdin on a second goroutine, forwarding SIGWINCH as Resize messages.
func (c *Client) Run(stdin io.Reader, stdout io.Writer) error {
	errCh := make(chan error, 2)

	go c.watchResize()
	go c.relayStdin(stdin, errCh)

	for {
		env, err := protocol.ReadMessage(c.conn)
		if err != nil {
			return err
		}
		if err := c.handleServerMessage(env, stdout); err != nil {
			return err
		}
		select {
		case err := <-errCh:
			return err
		default:
		}
	}
}

func (c *Client) handleServerMessage(env protocol.Envelope, stdout io.Writer) error {
	switch env.Type {
	case protocol.TypeOutput:
		var out protocol.Output
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return err
		}
		_, err := stdout.Write(out.Data)
		return err
	case protocol.TypeStateSync:
		// The grid snapshot embedded here is for a real terminal emulator
		// to seed its display; this minimal client only streams raw bytes,
		// so the snapshot is intentionally unused.
		return nil
	case protocol.TypeServerShutdown:
		return io.EOF
	case protocol.TypePaneExited:
		return nil
	case protocol.TypeHello:
		return nil
	default:
		return nil
	}
}

// relayStdin reads raw keystrokes, passes each byte through the leader
// machine, and forwards the resulting effect as either literal input or a
// Command message.
func (c *Client) relayStdin(stdin io.Reader, errCh chan<- error) {
	buf := make([]byte, 4096)
	for {
		n, err := stdin.Read(buf)
		if n > 0 {
			c.forwardBytes(buf[:n])
		}
		if err != nil {
			errCh <- err
			return
		}
	}
}

// forwardBytes runs raw input bytes through the leader state machine one
// rune at a time and dispatches the resulting effects.
func (c *Client) forwardBytes(data []byte) {
	machine := c.currentMachine()
	if machine == nil {
		_ = protocol.WriteMessage(c.conn, protocol.TypeInput, protocol.Input{Bytes: data})
		return
	}

	var literal []byte
	flush := func() {
		if len(literal) > 0 {
			_ = protocol.WriteMessage(c.conn, protocol.TypeInput, protocol.Input{Bytes: literal})
			literal = nil
		}
	}

	for _, b := range string(data) {
		combo := texel.FromEvent(tcell.KeyRune, b, 0)
		if b < ' ' {
			// Control characters (e.g. Ctrl-Space is NUL) arrive as their
			// control-code rune with no ModCtrl bit set; translate back so
			// they compare equal to the Control-prefixed combos ParseKeyCombo
			// produces for configured leader keys.
			combo = texel.FromEvent(tcell.KeyRune, controlRune(b), tcell.ModCtrl)
		}
		effect := machine.HandleKey(combo, time.Now())
		switch effect.Kind {
		case texel.EffectNone:
			// Swallowed while waiting for a command key.
		case texel.EffectForward:
			literal = append(literal, []byte(string(b))...)
		case texel.EffectSendLiteralLeader:
			// Forwards the bytes of the leader key just pressed. When that
			// is not the first configured leader key, the first leader
			// key's bytes are not what gets sent.
			literal = append(literal, []byte(string(b))...)
		case texel.EffectCommand:
			flush()
			wire := protocol.EncodeCommand(effect.Command)
			_ = protocol.WriteMessage(c.conn, protocol.TypeCommand, wire)
		}
	}
	flush()
}

// controlRune maps a received control byte back to the letter a Ctrl
// chord was built from (e.g. 0x02 -> 'b' for Ctrl-b), matching the
// KeyCombo shape ParseKeyCombo produces for configured leader keys.
func controlRune(b rune) rune {
	if b == 0 {
		return ' '
	}
	return b + 'a' - 1
}

// watchResize reports the current terminal size on every SIGWINCH (and
// once immediately), so the server can re-tile panes to the real
// viewport.
func (c *Client) watchResize() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	defer signal.Stop(ch)

	c.sendSize()
	for range ch {
		c.sendSize()
	}
}

func (c *Client) sendSize() {
	cols, rows, err := term.GetSize(c.stdinFd)
	if err != nil {
		return
	}
	_ = protocol.WriteMessage(c.conn, protocol.TypeResize, protocol.Resize{Rows: rows, Cols: cols})
}

// Detach tells the server to drop this connection and closes it locally.
func (c *Client) Detach() error {
	_ = protocol.WriteMessage(c.conn, protocol.TypeDetach, protocol.Detach{})
	return c.conn.Close()
}

// Close closes the underlying connection without sending Detach (used on
// error paths where the server side is assumed already gone).
func (c *Client) Close() error {
	return c.conn.Close()
}
