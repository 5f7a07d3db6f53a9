// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/texel"
)

// loggerPtr stores the package logger when one has been set explicitly.
// Accessed atomically for thread safety.
var loggerPtr atomic.Pointer[slog.Logger]

// slogger returns the current package logger. When none has been set it
// falls back to the root texel logger, so a host that configures logging
// once through texel.SetLogger covers this package too.
func slogger() *slog.Logger {
	if l := loggerPtr.Load(); l != nil {
		return l
	}
	return texel.Logger()
}

// setLogger updates the package logger. A nil logger restores the
// fallback to the root texel logger. Called from Device.SetLogger.
func setLogger(l *slog.Logger) {
	loggerPtr.Store(l)
}
