// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package alarm

import (
	"fmt"

	"github.com/intuitivelabs/slog"
)

// log is the package level logger, configured with the same level/flag
// conventions the rest of the intuitivelabs family uses (see
// github.com/intuitivelabs/wtimer, which calls DBG/ERR/WARN/BUG/PANIC
// with this exact signature but ships its level-gating file separately
// from the sources retrieved for this package).
var log = slog.CLog{Level: slog.LERR | slog.LWARN, Prefix: "alarm: "}

// DBGon returns true if debug-level logging is enabled.
func DBGon() bool { return log.DBGon() }

// ERRon returns true if error-level logging is enabled.
func ERRon() bool { return log.ERRon() }

// WARNon returns true if warning-level logging is enabled.
func WARNon() bool { return log.WARNon() }

// DBG logs a debug message, gated on DBGon().
func DBG(f string, args ...interface{}) {
	log.DBG(f, args...)
}

// ERR logs an error message, gated on ERRon().
func ERR(f string, args ...interface{}) {
	log.ERR(f, args...)
}

// WARN logs a warning message, gated on WARNon().
func WARN(f string, args ...interface{}) {
	log.WARN(f, args...)
}

// BUG logs an invariant violation. In debug builds (-tags alarmdebug) it
// panics; in release builds it logs and returns, matching the original
// C implementation's assert()-in-debug-only convention (spec §7
// MisuseFailure).
func BUG(f string, args ...interface{}) {
	log.BUG(f, args...)
	bugHook(fmt.Sprintf(f, args...))
}

// PANIC logs and always panics: reserved for states the design proves
// unreachable under the monitor lock (e.g. C2's front pointer disagreeing
// with the armed timer's deadline).
func PANIC(f string, args ...interface{}) {
	log.PANIC(f, args...)
	panic(fmt.Sprintf(f, args...))
}
