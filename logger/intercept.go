package logger

import (
	"io"
	"log"
	"strings"
	"sync"
)

// Interceptor redirects a standard library *log.Logger through a Logger under
// the log category. Install and Restore are idempotent.
type Interceptor struct {
	logger *Logger
	target *log.Logger

	mu        sync.Mutex
	active    bool
	prevOut   io.Writer
	prevFlags int
}

// NewInterceptor creates an interceptor for target. A nil target means the
// standard logger returned by log.Default.
func NewInterceptor(l *Logger, target *log.Logger) *Interceptor {
	if target == nil {
		target = log.Default()
	}
	return &Interceptor{logger: l, target: target}
}

// Install redirects the target's output and drops its file flags, since the
// decoration already shows the caller. It reports whether the interceptor is
// active afterwards; it stays inactive while the log category is disabled.
func (i *Interceptor) Install() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.active {
		return true
	}
	if !i.logger.Enabled(LOG) {
		return false
	}

	i.prevOut = i.target.Writer()
	i.prevFlags = i.target.Flags()
	i.target.SetFlags(i.prevFlags &^ (log.Lshortfile | log.Llongfile))
	i.target.SetOutput(&interceptWriter{logger: i.logger})
	i.active = true
	return true
}

// Restore puts back the target's original output and flags.
func (i *Interceptor) Restore() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.active {
		return
	}
	i.target.SetOutput(i.prevOut)
	i.target.SetFlags(i.prevFlags)
	i.prevOut = nil
	i.active = false
}

// Active reports whether the target is currently redirected.
func (i *Interceptor) Active() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.active
}

type interceptWriter struct {
	logger *Logger
}

// Write receives one formatted line from the log package. The frames between
// here and the caller of the log package live in the standard library and are
// skipped by the filter.
func (w *interceptWriter) Write(p []byte) (int, error) {
	w.logger.emit(LOG, []any{strings.TrimSuffix(string(p), "\n")})
	return len(p), nil
}
