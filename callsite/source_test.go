package callsite

import (
	"runtime"
	"strings"
	"testing"
)

func currentLine() int {
	_, _, line, _ := runtime.Caller(1)
	return line
}

func TestRuntimeSource_Snapshot(t *testing.T) {
	s, err := RuntimeSource{}.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected at least two frames, got %q", s)
	}
	if !strings.HasPrefix(lines[0], "Snapshot @ ") || !strings.Contains(lines[0], "source.go:") {
		t.Errorf("line 0 should be the snapshot point, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "TestRuntimeSource_Snapshot @ ") {
		t.Errorf("line 1 should be the caller, got %q", lines[1])
	}
	for _, l := range lines {
		if _, _, ok := Match(DefaultGrammars(), l); !ok {
			t.Errorf("rendered frame does not parse: %q", l)
		}
	}
}

func TestRuntimeSource_Depth(t *testing.T) {
	s, err := RuntimeSource{Depth: 1}.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}
	if n := strings.Count(s, "\n"); n != 1 {
		t.Fatalf("expected exactly one frame, got %d in %q", n, s)
	}
}

func runtimeResolver(skip int) *Resolver {
	opts := DefaultOptions()
	opts.SkipLines = skip
	r := NewResolver(opts)
	r.SetFilter(Filter{FileNames: []string{"source.go", "walker.go"}})
	return r
}

func TestCapture_Runtime(t *testing.T) {
	r := runtimeResolver(2)

	ctx, line := r.Capture(), currentLine()
	want := Context{FileName: "source_test.go", FunctionName: "TestCapture_Runtime", LineNumber: line}
	if ctx != want {
		t.Fatalf("Capture() = %+v, want %+v", ctx, want)
	}
}

func TestCapture_RuntimeFilteredWithoutSkip(t *testing.T) {
	r := runtimeResolver(0)

	ctx := r.Capture()
	if ctx.FunctionName != "TestCapture_RuntimeFilteredWithoutSkip" || ctx.FileName != "source_test.go" {
		t.Fatalf("own frames should be filtered, got %+v", ctx)
	}
}

func TestCapture_RuntimeClosure(t *testing.T) {
	r := runtimeResolver(2)

	var ctx Context
	func() {
		ctx = r.Capture()
	}()
	if ctx.FunctionName != "Source_test" {
		t.Fatalf("closure should fall back to the file name, got %+v", ctx)
	}
}

func TestShortFuncName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"main.main", "main"},
		{"github.com/a/b/pkg.(*Server).Handle", "Handle"},
		{"github.com/a/b/pkg.Handle.func1", AnonymousName},
		{"github.com/a/b/pkg.Handle.gowrap2", AnonymousName},
		{"github.com/a/b/pkg.Map[...]", "Map"},
		{"", AnonymousName},
	}
	for _, tt := range tests {
		if got := shortFuncName(tt.input); got != tt.want {
			t.Errorf("shortFuncName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStaticSource(t *testing.T) {
	if _, err := StaticSource("  ").Snapshot(); err != ErrNoStack {
		t.Fatalf("blank static source error = %v, want %v", err, ErrNoStack)
	}
}

func TestPackagePath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"log.(*Logger).output", "log"},
		{"net/http.(*conn).serve.func1", "net/http"},
		{"github.com/a/b/pkg.(*Server).Handle", "github.com/a/b/pkg"},
		{"main.main", "main"},
		{"nodot", ""},
	}
	for _, tt := range tests {
		if got := packagePath(tt.input); got != tt.want {
			t.Errorf("packagePath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsStdPackage(t *testing.T) {
	for pkg, want := range map[string]bool{
		"log":            true,
		"net/http":       true,
		"runtime":        true,
		"main":           false,
		"github.com/a/b": false,
		"github.com/lognitor/go-callsite/callsite": false,
	} {
		if got := isStdPackage(pkg); got != want {
			t.Errorf("isStdPackage(%q) = %v, want %v", pkg, got, want)
		}
	}
}

func TestRenderFrame(t *testing.T) {
	tests := []struct {
		name  string
		frame runtime.Frame
		want  string
	}{
		{
			name:  "trimmed stdlib path",
			frame: runtime.Frame{Function: "log.(*Logger).output", File: "log/log.go", Line: 245},
			want:  "output @ $GOROOT/src/log/log.go:245",
		},
		{
			name:  "foreign GOROOT",
			frame: runtime.Frame{Function: "log.(*Logger).Printf", File: "/opt/go1.22/src/log/log.go", Line: 272},
			want:  "Printf @ $GOROOT/src/log/log.go:272",
		},
		{
			name:  "trimmed user path",
			frame: runtime.Frame{Function: "github.com/acme/app/handlers.Serve", File: "github.com/acme/app/handlers/serve.go", Line: 9},
			want:  "Serve @ github.com/acme/app/handlers/serve.go:9",
		},
		{
			name:  "main package",
			frame: runtime.Frame{Function: "main.main", File: "app/main.go", Line: 12},
			want:  "main @ app/main.go:12",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderFrame(tt.frame); got != tt.want {
				t.Errorf("renderFrame() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolve_TrimmedStdlibFrames(t *testing.T) {
	frames := []runtime.Frame{
		{Function: "log.(*Logger).output", File: "log/log.go", Line: 245},
		{Function: "log.(*Logger).Printf", File: "log/log.go", Line: 272},
		{Function: "main.main", File: "app/main.go", Line: 12},
	}
	lines := make([]string, 0, len(frames))
	for _, f := range frames {
		lines = append(lines, renderFrame(f))
	}

	opts := DefaultOptions()
	opts.SkipLines = 0
	ctx := NewResolver(opts).Resolve(strings.Join(lines, "\n"))

	want := Context{FileName: "main.go", FunctionName: "main", LineNumber: 12}
	if ctx != want {
		t.Fatalf("Resolve() = %+v, want %+v", ctx, want)
	}
}
