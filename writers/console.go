package writers

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// Console routes log output the way a terminal console does: log, info and
// debug go to Out, warn and error go to Err.
type Console struct {
	Out io.Writer
	Err io.Writer

	mu     sync.Mutex
	closed bool
	tty    bool
}

// NewConsole creates a console on the given writers. A nil writer discards.
func NewConsole(out, err io.Writer) *Console {
	if out == nil {
		out = io.Discard
	}
	if err == nil {
		err = io.Discard
	}
	return &Console{Out: out, Err: err}
}

// NewStdConsole creates a console on the process stdout and stderr, wrapped
// with colorable when they are terminals.
func NewStdConsole() *Console {
	out, err := GetDefaultStdout(), GetDefaultStderr()
	tty := IsTerminal(out)
	if tty {
		out = GetColorStdout()
	}
	if IsTerminal(err) {
		err = GetColorStderr()
	}
	c := NewConsole(out, err)
	c.tty = tty
	return c
}

// Terminal reports whether the console's Out stream is a terminal.
func (c *Console) Terminal() bool {
	return c.tty || IsTerminal(c.Out)
}

// For returns the writer of a log method.
func (c *Console) For(method string) io.Writer {
	switch strings.ToLower(method) {
	case "warn", "error":
		return c.Err
	default:
		return c.Out
	}
}

// Write writes p to the stream of method. Writes after Close fail.
func (c *Console) Write(method string, p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, ErrConsoleIsClosed
	}
	w := c.For(method)
	if w == nil {
		return 0, ErrNoWriter
	}
	return w.Write(p)
}

// Close marks the console closed. The underlying writers are left open.
func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
