// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package texel

import (
	"testing"
	"time"
)

func TestBuildStatusSubstitutesKnownTokens(t *testing.T) {
	s := newTestSession(t)
	s.AddWindow("logs")

	f := StatusFormat{
		Left:   "{session}",
		Center: "{windows}",
		Right:  "{time}",
	}
	now := time.Date(2026, 7, 31, 9, 5, 0, 0, time.UTC)

	line := BuildStatus(s, f, now)
	if line.Left != "test" {
		t.Errorf("Left = %q, want %q", line.Left, "test")
	}
	if line.Center != "1:1 2:*logs" {
		t.Errorf("Center = %q, want %q", line.Center, "1:1 2:*logs")
	}
	if line.Right != "09:05" {
		t.Errorf("Right = %q, want %q", line.Right, "09:05")
	}
}

func TestBuildStatusLeavesUnknownTokenLiteral(t *testing.T) {
	s := newTestSession(t)
	f := StatusFormat{Left: "{bogus}"}
	line := BuildStatus(s, f, time.Now())
	if line.Left != "{bogus}" {
		t.Errorf("Left = %q, want literal %q", line.Left, "{bogus}")
	}
}

func TestTruncateRespectsWidth(t *testing.T) {
	got := Truncate("hello world", 5)
	if len(got) > 5 {
		t.Errorf("Truncate produced %q, wider than 5 cells", got)
	}
}
