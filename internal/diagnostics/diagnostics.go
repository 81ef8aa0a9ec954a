// ==============================================================================================
// FILE: internal/diagnostics/diagnostics.go
// ==============================================================================================
// PACKAGE: diagnostics
// PURPOSE: Paren has no structured error channel (§7): evaluation failures
//          are reported as free-form diagnostic lines and execution
//          continues with a nil result. This package is the one place that
//          free-form line goes out through, backed by zap the way
//          hemanta212-scaf/rlch-scaf wire diagnostics for their own
//          tree-walking tools, instead of bare fmt.Fprintln(os.Stderr, ...).
// ==============================================================================================

package diagnostics

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.Mutex
	logger *zap.SugaredLogger
)

// Logger returns the process-wide diagnostics logger, building it on first
// use with a console-encoded, level-less configuration so that messages read
// like the plain diagnostic lines §7 specifies ("Unknown variable: NAME")
// rather than JSON.
func Logger() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		cfg := zap.NewDevelopmentConfig()
		cfg.DisableCaller = true
		cfg.DisableStacktrace = true
		cfg.EncoderConfig.TimeKey = ""
		cfg.EncoderConfig.LevelKey = ""
		l, err := cfg.Build()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l.Sugar()
	}
	return logger
}

// Warn emits a single diagnostic line to stderr and returns nothing — every
// call site in the evaluator pairs this with "return ast.Nil".
func Warn(msg string) {
	Logger().Warn(msg)
}

// Warnf is Warn with fmt-style formatting.
func Warnf(format string, args ...interface{}) {
	Logger().Warnf(format, args...)
}

// SetOutput lets tests and the WASM build point diagnostics somewhere other
// than the default stderr console encoder, mirroring how the teacher's REPL
// takes an io.Writer instead of hardcoding os.Stdout.
func SetOutput(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}
