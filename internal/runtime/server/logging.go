// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/server/logging.go
// Summary: Package-level loggers for the mux server.

package server

import (
	"io"
	"log"
	"os"
)

var debugLog = log.New(io.Discard, "", log.LstdFlags)

// SetVerboseLogging toggles verbose server logging. When disabled
// (default), debug output is discarded but important messages (errors,
// boot info) still go to stderr.
func SetVerboseLogging(enable bool) {
	log.SetOutput(os.Stderr)
	if enable {
		debugLog.SetOutput(os.Stderr)
	} else {
		debugLog.SetOutput(io.Discard)
	}
}
