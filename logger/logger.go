package logger

import (
	"bytes"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/lognitor/go-callsite/callsite"
	"github.com/lognitor/go-callsite/configs"
	"github.com/lognitor/go-callsite/writers"
)

// A Logger decorates every log call with the emoji, function and file:line of
// its caller and writes the result to a [writers.Console]. Each logging
// operation makes a single call to the Console's Write method. A Logger can be
// used simultaneously from multiple goroutines.
type Logger struct {
	mu         sync.RWMutex
	cfg        configs.Config
	console    *writers.Console
	resolver   *callsite.Resolver
	diag       *zap.Logger
	palette    palette
	bufferPool sync.Pool
}

// New creates a logger writing to console. A nil console writes to the
// process stdout and stderr.
func New(console *writers.Console, cfg configs.Config) *Logger {
	if console == nil {
		console = writers.NewStdConsole()
	}

	l := &Logger{
		console:  console,
		resolver: callsite.NewResolver(callsite.DefaultOptions()),
		diag:     zap.NewNop(),
		bufferPool: sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, 512))
			},
		},
	}
	l.apply(cfg)
	return l
}

// Close closes the console.
func (l *Logger) Close() error {
	return l.console.Close()
}

// Config returns a copy of the current configuration.
func (l *Logger) Config() configs.Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg
}

// Configure validates and applies cfg. Calls already in flight finish with
// the previous configuration.
func (l *Logger) Configure(cfg configs.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	l.apply(cfg)
	return nil
}

// Enabled reports whether calls of method m are decorated.
func (l *Logger) Enabled(m Method) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg.Enabled && l.cfg.MethodEnabled(m.String())
}

// SetDiagnostics sets the zap logger that receives resolver traces and write
// failures when the debug option is on.
func (l *Logger) SetDiagnostics(diag *zap.Logger) {
	if diag == nil {
		diag = zap.NewNop()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.diag = diag
	l.resolver.SetDiagnostics(diag)
}

// SetSourceMaps enables remapping of generated positions.
func (l *Logger) SetSourceMaps(maps *callsite.SourceMaps) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resolver.SetSourceMaps(maps)
}

// SetSource replaces the stack source. Mostly useful in tests.
func (l *Logger) SetSource(s callsite.Source) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resolver.SetSource(s)
}

func (l *Logger) apply(cfg configs.Config) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cfg = cfg
	l.resolver.SetOptions(callsite.Options{
		CaptureStack:  cfg.CaptureStack,
		MaxStackDepth: cfg.MaxStackDepth,
		Debug:         cfg.Debug,
		SkipLines:     callsite.DefaultSkipLines,
	})
	l.resolver.SetFilter(filterFrom(cfg.Filter))
	l.palette = newPalette(cfg, colorEnabled(cfg.Colorize, l.console.Terminal()))
}

func filterFrom(fc configs.FilterConfig) callsite.Filter {
	f := callsite.DefaultFilter()
	if fc.DependencyMarkers != nil {
		f.DependencyMarkers = fc.DependencyMarkers
	}
	if fc.Tokens != nil {
		f.Tokens = fc.Tokens
	}
	if fc.FileNames != nil {
		f.FileNames = fc.FileNames
	}
	return f
}

func colorEnabled(mode string, terminal bool) bool {
	switch mode {
	case configs.ColorAlways:
		return true
	case configs.ColorNever:
		return false
	default:
		return terminal
	}
}

// Log prints args under the log category.
func (l *Logger) Log(args ...any) {
	l.emit(LOG, args)
}

// Logf prints a formatted message under the log category.
func (l *Logger) Logf(format string, args ...any) {
	l.emit(LOG, []any{fmt.Sprintf(format, args...)})
}

// Info prints args under the info category.
func (l *Logger) Info(args ...any) {
	l.emit(INFO, args)
}

// Infof prints a formatted message under the info category.
func (l *Logger) Infof(format string, args ...any) {
	l.emit(INFO, []any{fmt.Sprintf(format, args...)})
}

// Warn prints args to stderr under the warn category.
func (l *Logger) Warn(args ...any) {
	l.emit(WARN, args)
}

// Warnf prints a formatted message to stderr under the warn category.
func (l *Logger) Warnf(format string, args ...any) {
	l.emit(WARN, []any{fmt.Sprintf(format, args...)})
}

// Error prints args to stderr under the error category.
func (l *Logger) Error(args ...any) {
	l.emit(ERROR, args)
}

// Errorf prints a formatted message to stderr under the error category.
func (l *Logger) Errorf(format string, args ...any) {
	l.emit(ERROR, []any{fmt.Sprintf(format, args...)})
}

// Debug prints args under the debug category.
func (l *Logger) Debug(args ...any) {
	l.emit(DEBUG, args)
}

// Debugf prints a formatted message under the debug category.
func (l *Logger) Debugf(format string, args ...any) {
	l.emit(DEBUG, []any{fmt.Sprintf(format, args...)})
}

// emit must be called directly by every public entry point: the resolver
// skips a fixed number of frames to reach the user's code.
func (l *Logger) emit(m Method, args []any) {
	var ctx callsite.Context

	l.mu.RLock()
	cfg, p, diag := l.cfg, l.palette, l.diag
	decorate := cfg.Enabled && cfg.MethodEnabled(m.String())
	if decorate {
		ctx = l.resolver.Capture()
	}
	l.mu.RUnlock()

	buf := l.bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		l.bufferPool.Put(buf)
	}()

	if !decorate {
		buf.WriteString(message(args))
		buf.WriteByte('\n')
		l.write(m, buf, cfg.Debug, diag)
		return
	}

	format(buf, Entry{
		Method:  m,
		Config:  cfg.Method(m.String()),
		Context: ctx,
		Args:    args,
	}, p)
	l.write(m, buf, cfg.Debug, diag)
}

// write hands buf to the console, which writes it synchronously. Failures are
// reported to diag in debug mode only; logging never fails the caller.
func (l *Logger) write(m Method, buf *bytes.Buffer, debug bool, diag *zap.Logger) {
	if buf.Len() == 0 {
		return
	}
	if _, err := l.console.Write(m.String(), buf.Bytes()); err != nil && debug {
		diag.Error("failed to write log entry", zap.Stringer("method", m), zap.Error(err))
	}
}
