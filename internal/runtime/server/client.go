// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/server/client.go
// Summary: A single attached client connection: a reader goroutine feeding
// a select loop, the same shape as Texelation's own per-connection
// plumbing, carrying our fresh length-prefixed JSON envelopes instead.

package server

import (
	"net"

	"github.com/google/uuid"

	"mux/protocol"
)

// outboundMessage pairs a wire type discriminator with its payload, the
// pre-marshal shape WriteMessage expects.
type outboundMessage struct {
	typ string
	v   any
}

// client represents one attached connection to the server. Reads happen
// on their own goroutine so a slow or silent client never blocks the
// server's dispatch loop; writes are serialized through outbox.
type client struct {
	// id distinguishes connections in debug logs; it has no wire
	// presence and is never sent to the client itself.
	id   string
	conn net.Conn

	incoming chan protocol.Envelope
	readErr  chan error
	outbox   chan outboundMessage
	stop     chan struct{}
}

// outboxCapacity bounds how far a client's output can lag before the
// server drops it rather than blocking on a stalled connection.
const outboxCapacity = 256

func newClient(conn net.Conn) *client {
	c := &client{
		id:       uuid.NewString(),
		conn:     conn,
		incoming: make(chan protocol.Envelope),
		readErr:  make(chan error, 1),
		outbox:   make(chan outboundMessage, outboxCapacity),
		stop:     make(chan struct{}),
	}
	go c.readLoop()
	go c.writeLoop()
	return c
}

func (c *client) readLoop() {
	for {
		env, err := protocol.ReadMessage(c.conn)
		if err != nil {
			c.readErr <- err
			return
		}
		select {
		case c.incoming <- env:
		case <-c.stop:
			return
		}
	}
}

func (c *client) writeLoop() {
	for {
		select {
		case msg := <-c.outbox:
			if err := protocol.WriteMessage(c.conn, msg.typ, msg.v); err != nil {
				return
			}
		case <-c.stop:
			return
		}
	}
}

// send enqueues a message for delivery, dropping it if the client's
// outbox is full or already closed rather than blocking the caller.
func (c *client) send(typ string, v any) bool {
	select {
	case <-c.stop:
		return false
	default:
	}
	select {
	case c.outbox <- outboundMessage{typ: typ, v: v}:
		return true
	case <-c.stop:
		return false
	default:
		debugLog.Printf("client %s: outbox full, dropping %s", c.id, typ)
		return false
	}
}

// close tears down the connection and both goroutines. outbox is never
// closed: stop alone signals writeLoop to exit, so a send racing a
// concurrent close can never panic on a closed channel.
func (c *client) close() error {
	select {
	case <-c.stop:
	default:
		close(c.stop)
	}
	return c.conn.Close()
}
