package callsite

import (
	"errors"
	"path"
	"regexp"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
)

// ErrNoStack is returned by a Source that cannot produce any frame.
var ErrNoStack = errors.New("no stack trace available")

// A Source produces a stack snapshot, newest frame first, one frame per line.
type Source interface {
	Snapshot() (string, error)
}

// StaticSource always returns the same stack text.
type StaticSource string

func (s StaticSource) Snapshot() (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", ErrNoStack
	}
	return string(s), nil
}

// StdlibMarker prefixes the file of every standard library frame rendered by
// RuntimeSource, whatever the GOROOT or -trimpath setting of the build.
const StdlibMarker = "$GOROOT/src/"

// RuntimeSource captures the goroutine stack with runtime.Callers. Line 0 is
// the Snapshot call itself, followed by its callers. Frames are rendered as
// "name @ file:line"; standard library files are rendered under StdlibMarker.
type RuntimeSource struct {
	// Depth bounds the number of captured frames; zero means 32.
	Depth int
}

var closureRe = regexp.MustCompile(`^(func|gowrap|deferwrap)\d+$`)

func (s RuntimeSource) Snapshot() (string, error) {
	depth := s.Depth
	if depth <= 0 {
		depth = 32
	}

	pcs := make([]uintptr, depth)
	n := runtime.Callers(1, pcs)
	if n == 0 {
		return "", ErrNoStack
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if f.File != "" {
			b.WriteString(renderFrame(f))
			b.WriteByte('\n')
		}
		if !more {
			break
		}
	}

	if b.Len() == 0 {
		return "", ErrNoStack
	}
	return b.String(), nil
}

func renderFrame(f runtime.Frame) string {
	file := f.File
	if pkg := packagePath(f.Function); pkg != "" && isStdPackage(pkg) {
		file = StdlibMarker + pkg + "/" + path.Base(toSlash(f.File))
	}
	return shortFuncName(f.Function) + " @ " + file + ":" + strconv.Itoa(f.Line)
}

// packagePath returns the import path of a fully qualified function name,
// e.g. "log" for "log.(*Logger).output".
func packagePath(function string) string {
	slash := strings.LastIndex(function, "/")
	dot := strings.Index(function[slash+1:], ".")
	if dot < 0 {
		return ""
	}
	return function[:slash+1+dot]
}

var (
	buildModulesOnce sync.Once
	buildModules     []string
)

// modulePaths lists the main module and its dependencies, when the binary
// carries build information.
func modulePaths() []string {
	buildModulesOnce.Do(func() {
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if bi.Main.Path != "" {
			buildModules = append(buildModules, bi.Main.Path)
		}
		for _, dep := range bi.Deps {
			buildModules = append(buildModules, dep.Path)
		}
	})
	return buildModules
}

// isStdPackage reports whether pkg belongs to the standard library: its first
// path element has no dot, it is not main and no module of the build owns it.
func isStdPackage(pkg string) bool {
	first, _, _ := strings.Cut(pkg, "/")
	if strings.Contains(first, ".") || pkg == "main" {
		return false
	}
	for _, m := range modulePaths() {
		if pkg == m || strings.HasPrefix(pkg, m+"/") {
			return false
		}
	}
	return true
}

// shortFuncName reduces a fully qualified Go function name such as
// "github.com/a/b/pkg.(*T).Method" to "Method". Compiler generated closures
// become AnonymousName.
func shortFuncName(full string) string {
	if full == "" {
		return AnonymousName
	}
	full = strings.ReplaceAll(full, "[...]", "")
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.LastIndex(full, "."); i >= 0 {
		full = full[i+1:]
	}
	if full == "" || closureRe.MatchString(full) {
		return AnonymousName
	}
	return full
}
