// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/protocol.go
// Summary: Length-prefixed JSON frame transport (§6 "Wire protocol"): a
// 4-byte big-endian length followed by a UTF-8 JSON payload.

package protocol

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxFrameLen bounds the declared payload length accepted by ReadMessage,
// guarding against a corrupt or hostile length prefix causing an
// unbounded allocation.
const MaxFrameLen = 16 << 20 // 16 MiB

var (
	// ErrFrameTooLarge is returned when a frame's declared length exceeds
	// MaxFrameLen.
	ErrFrameTooLarge = errors.New("protocol: frame exceeds maximum length")
)

// Envelope is the on-wire shape of every frame payload: a discriminator
// field and its associated data (§6 "a discriminator field \"type\" and a
// \"data\" field").
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// WriteMessage encodes v as the Data of an Envelope tagged typ, then
// writes the length-prefixed JSON frame to w.
func WriteMessage(w io.Writer, typ string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("protocol: marshal %s payload: %w", typ, err)
	}
	env := Envelope{Type: typ, Data: data}
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("protocol: marshal envelope: %w", err)
	}

	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(payload)))
	if _, err := w.Write(prefix[:]); err != nil {
		return fmt.Errorf("protocol: write length prefix: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("protocol: write payload: %w", err)
	}
	return nil
}

// ReadMessage reads one length-prefixed frame from r and decodes its
// envelope. Callers unmarshal env.Data into the concrete type indicated by
// env.Type.
func ReadMessage(r io.Reader) (Envelope, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return Envelope{}, err
	}
	length := binary.BigEndian.Uint32(prefix[:])
	if length > MaxFrameLen {
		return Envelope{}, ErrFrameTooLarge
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Envelope{}, fmt.Errorf("protocol: short frame: %w", err)
		}
		return Envelope{}, err
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Envelope{}, fmt.Errorf("protocol: decode envelope: %w", err)
	}
	return env, nil
}
