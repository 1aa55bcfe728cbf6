// Package callsite resolves the originating file, function and line of a log
// call from a textual stack trace.
//
// A Resolver skips a fixed number of leading frames, then scans a bounded window
// of the remaining lines. Each line is matched against an ordered list of
// grammars, frames that belong to the logger itself or to dependency code are
// skipped, and the first remaining frame becomes the Context. Resolution is best
// effort: failures of any kind produce an empty Context.
package callsite

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultSkipLines covers the snapshot point, the resolver, the logger's
	// emit function and the logging entry point.
	DefaultSkipLines = 4
	// DefaultMaxDepth is the configured depth used when none is given.
	DefaultMaxDepth = 3
	// MinSearchDepth is the smallest search window. Frameworks that wrap user
	// code in several frames push the first user frame past a shallow depth.
	MinSearchDepth = 10
)

// Options is the configuration view the resolver consumes.
type Options struct {
	CaptureStack  bool
	MaxStackDepth int
	Debug         bool
	SkipLines     int
}

// DefaultOptions returns capture enabled with the default depth and skip.
func DefaultOptions() Options {
	return Options{
		CaptureStack:  true,
		MaxStackDepth: DefaultMaxDepth,
		SkipLines:     DefaultSkipLines,
	}
}

// SearchWindow returns max(2*MaxStackDepth, MinSearchDepth).
func (o Options) SearchWindow() int {
	depth := o.MaxStackDepth
	if depth < 1 {
		depth = DefaultMaxDepth
	}
	return max(2*depth, MinSearchDepth)
}

// Resolver turns stack snapshots into call-site contexts. A Resolver keeps no
// state between calls; its setters must not race with Capture or Resolve.
type Resolver struct {
	opts     Options
	filter   Filter
	grammars []Grammar
	source   Source
	maps     *SourceMaps
	diag     *zap.Logger
}

// NewResolver creates a resolver with the default filter, grammars and the
// runtime stack source.
func NewResolver(opts Options) *Resolver {
	return &Resolver{
		opts:     opts,
		filter:   DefaultFilter(),
		grammars: DefaultGrammars(),
		source:   RuntimeSource{},
		diag:     zap.NewNop(),
	}
}

// Options returns the current options.
func (r *Resolver) Options() Options {
	return r.opts
}

// SetOptions replaces the options.
func (r *Resolver) SetOptions(opts Options) {
	r.opts = opts
}

// Filter returns the internal-frame filter.
func (r *Resolver) Filter() Filter {
	return r.filter
}

// SetFilter replaces the internal-frame filter.
func (r *Resolver) SetFilter(f Filter) {
	r.filter = f
}

// SetGrammars replaces the frame grammars. Order is priority.
func (r *Resolver) SetGrammars(g []Grammar) {
	r.grammars = g
}

// SetSource replaces the stack source used by Capture.
func (r *Resolver) SetSource(s Source) {
	r.source = s
}

// SetSourceMaps enables remapping of generated positions.
func (r *Resolver) SetSourceMaps(m *SourceMaps) {
	r.maps = m
}

// SetDiagnostics sets the sink for debug traces. Nil disables it.
func (r *Resolver) SetDiagnostics(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	r.diag = l
}

// Capture snapshots the current stack and resolves it.
func (r *Resolver) Capture() (ctx Context) {
	if !r.opts.CaptureStack {
		return Context{}
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.debugErr("error capturing context", fmt.Errorf("%v", rec))
			ctx = Context{}
		}
	}()

	if r.source == nil {
		r.debug("no stack source configured")
		return Context{}
	}
	stack, err := r.source.Snapshot()
	if err != nil {
		r.debug("no stack trace available", zap.Error(err))
		return Context{}
	}

	ctx, _ = r.Walk(stack)
	return ctx
}

// Resolve resolves a given stack trace string.
func (r *Resolver) Resolve(stack string) Context {
	ctx, _ := r.Walk(stack)
	return ctx
}

// Walk resolves stack and reports the terminal state.
func (r *Resolver) Walk(stack string) (ctx Context, state State) {
	state = NotCaptured
	defer func() {
		if rec := recover(); rec != nil {
			r.debugErr("error resolving context", fmt.Errorf("%v", rec))
			ctx, state = Context{}, Exhausted
		}
	}()

	if stack == "" {
		r.debug("no stack trace available")
		return Context{}, Exhausted
	}
	state = Captured

	lines := strings.Split(stack, "\n")
	if r.opts.Debug {
		r.debug("full stack trace", zap.Strings("lines", lines))
	}

	skip := max(r.opts.SkipLines, 0)
	window := r.opts.SearchWindow()
	if skip >= len(lines) {
		r.debug("stack shorter than skip count", zap.Int("skip", skip), zap.Int("lines", len(lines)))
		return Context{}, Exhausted
	}
	end := min(skip+window, len(lines))
	r.debug("examining window", zap.Int("skip", skip), zap.Int("window", window))

	for i := skip; i < end; i++ {
		line := strings.TrimRight(lines[i], "\r")
		r.debug("examining line", zap.Int("index", i), zap.String("line", line))

		fm, g, ok := Match(r.grammars, line)
		if !ok {
			r.debug("no match found", zap.Int("index", i))
			continue
		}
		r.debug("match found",
			zap.String("grammar", g.Name()),
			zap.String("name", fm.Name),
			zap.String("filePath", fm.FilePath),
			zap.Int("lineNumber", fm.Line),
			zap.Int("columnNumber", fm.Column))

		if r.filter.IsInternal(fm.FilePath, fm.Name) {
			r.debug("skipping internal frame", zap.String("filePath", fm.FilePath))
			continue
		}

		if mapped, ok := r.maps.Remap(fm); ok {
			r.debug("remapped through source map",
				zap.String("from", fm.FilePath), zap.String("to", mapped.FilePath))
			fm = mapped
		}

		ctx = Context{
			FileName:     FileName(fm.FilePath),
			FunctionName: FunctionName(fm.Name, fm.FilePath),
			LineNumber:   fm.Line,
			ColumnNumber: fm.Column,
		}
		if ctx.FileName == "" {
			r.debug("frame has no file name", zap.Int("index", i))
			continue
		}
		r.debug("extracted context",
			zap.String("fileName", ctx.FileName),
			zap.String("functionName", ctx.FunctionName),
			zap.Int("lineNumber", ctx.LineNumber),
			zap.Int("columnNumber", ctx.ColumnNumber))
		return ctx, Resolved
	}

	r.debug("no valid context found in stack trace")
	return Context{}, Exhausted
}

func (r *Resolver) debug(msg string, fields ...zap.Field) {
	if r.opts.Debug {
		r.diag.Debug(msg, fields...)
	}
}

func (r *Resolver) debugErr(msg string, err error) {
	if r.opts.Debug {
		r.diag.Error(msg, zap.Error(err))
	}
}
