package cref

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/rawbytedev/cref/internal/logging"
)

// DefaultMaxZeroScan bounds ReinterpretUntilZeros.
const DefaultMaxZeroScan = 10000

type Options struct {
	// MaxZeroScan is the number of bytes ReinterpretUntilZeros may walk
	// before giving up.
	MaxZeroScan int
}

func DefaultOptions() Options {
	return Options{MaxZeroScan: DefaultMaxZeroScan}
}

var (
	optsMu sync.RWMutex
	opts   = DefaultOptions()

	logPtr = defaultLogger()

	// warnOut receives deprecation notices when the package logger is silent.
	warnOut io.Writer = os.Stderr
)

func defaultLogger() *atomic.Pointer[zerolog.Logger] {
	var p atomic.Pointer[zerolog.Logger]
	l := logging.New("cref", logging.ProfileLibrary)
	p.Store(&l)
	return &p
}

// Configure replaces the package options. Zero fields fall back to defaults.
func Configure(o Options) {
	if o.MaxZeroScan <= 0 {
		o.MaxZeroScan = DefaultMaxZeroScan
	}
	optsMu.Lock()
	opts = o
	optsMu.Unlock()
}

func CurrentOptions() Options {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return opts
}

// SetLogger routes the package debug output to l.
func SetLogger(l zerolog.Logger) {
	logPtr.Store(&l)
}

func logger() *zerolog.Logger {
	return logPtr.Load()
}
