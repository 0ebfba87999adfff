// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/status.go
// Summary: Status-bar content builder (§4.9): a pure projection from
// Session + wall-clock time to formatted display strings.

package texel

import (
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// StatusFormat holds the three configured format strings (§6
// multiplexer.status_bar.format_{left,center,right}).
type StatusFormat struct {
	Left   string
	Center string
	Right  string
}

// StatusLine is the rendered {left, center, right} triple for one status
// bar frame.
type StatusLine struct {
	Left   string
	Center string
	Right  string
}

// BuildStatus renders f against s and now. Unknown tokens are left
// literal, braces included, so a typo in a user's format string is visible
// rather than silently dropped (§4.9).
func BuildStatus(s *Session, f StatusFormat, now time.Time) StatusLine {
	tokens := statusTokens(s, now)
	return StatusLine{
		Left:   substituteTokens(f.Left, tokens),
		Center: substituteTokens(f.Center, tokens),
		Right:  substituteTokens(f.Right, tokens),
	}
}

func statusTokens(s *Session, now time.Time) map[string]string {
	return map[string]string{
		"session": s.Name,
		"windows": windowsToken(s),
		"time":    now.Format("15:04"),
		"pane":    paneToken(s),
	}
}

func windowsToken(s *Session) string {
	parts := make([]string, len(s.Windows))
	for i, w := range s.Windows {
		name := w.Name
		if i == s.ActiveWindow {
			name = "*" + name
		}
		parts[i] = strconv.Itoa(i+1) + ":" + name
	}
	return strings.Join(parts, " ")
}

func paneToken(s *Session) string {
	w := s.ActiveWindowPtr()
	if w == nil {
		return ""
	}
	return w.ActiveTitle()
}

// substituteTokens replaces every "{name}" in format with tokens["name"]
// when present, leaving unrecognized placeholders untouched.
func substituteTokens(format string, tokens map[string]string) string {
	var b strings.Builder
	for i := 0; i < len(format); {
		if format[i] == '{' {
			if end := strings.IndexByte(format[i:], '}'); end >= 0 {
				name := format[i+1 : i+end]
				if val, ok := tokens[name]; ok {
					b.WriteString(val)
					i += end + 1
					continue
				}
			}
		}
		b.WriteByte(format[i])
		i++
	}
	return b.String()
}

// Truncate trims s to fit within width terminal cells, counting
// double-width glyphs correctly (§4.9 status bar display, using the same
// cell-width accounting as the rest of the rendering stack).
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "")
}
