package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lognitor/go-callsite/callsite"
)

const twoStacks = `Error
    at Logger.emit (/app/node_modules/decorator/index.js:1:1)
    at main (/app/src/main.js:10:5)

no frames in here
`

func TestResolveStacks(t *testing.T) {
	r := callsite.NewResolver(callsite.Options{CaptureStack: true, MaxStackDepth: 3})

	got := resolveStacks(r, strings.ReplaceAll(twoStacks, "\n", "\r\n"), "\n\n")
	want := []resolveResult{
		{Context: callsite.Context{FileName: "main.js", FunctionName: "main", LineNumber: 10, ColumnNumber: 5}, State: "resolved"},
		{State: "exhausted"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestWriteResults(t *testing.T) {
	results := []resolveResult{
		{Context: callsite.Context{FileName: "main.js", FunctionName: "main", LineNumber: 10, ColumnNumber: 5}, State: "resolved"},
		{State: "exhausted"},
	}

	var text bytes.Buffer
	if err := writeResults(&text, results, false); err != nil {
		t.Fatalf("writeResults() error: %v", err)
	}
	if want := "[main] (main.js:10:5)\n<exhausted>\n"; text.String() != want {
		t.Errorf("text = %q, want %q", text.String(), want)
	}

	var js bytes.Buffer
	if err := writeResults(&js, results, true); err != nil {
		t.Fatalf("writeResults() error: %v", err)
	}
	want := `{"fileName":"main.js","functionName":"main","lineNumber":10,"columnNumber":5,"state":"resolved"}` + "\n" +
		`{"state":"exhausted"}` + "\n"
	if js.String() != want {
		t.Errorf("json = %q, want %q", js.String(), want)
	}
}

func TestLoadSourceMaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.js.map")
	data := `{"version":3,"file":"bundle.js","sources":["src/greeter.ts"],"names":["greet"],"mappings":"AAAAA"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	maps, err := loadSourceMaps([]string{"bundle.js=" + path})
	if err != nil {
		t.Fatalf("loadSourceMaps() error: %v", err)
	}
	if maps.Len() != 1 {
		t.Errorf("Len() = %d, want 1", maps.Len())
	}

	for _, bad := range []string{"bundle.js", "=x.map", "bundle.js=" + path + ".missing"} {
		if _, err := loadSourceMaps([]string{bad}); err == nil {
			t.Errorf("loadSourceMaps(%q) must fail", bad)
		}
	}
}

func TestCommands(t *testing.T) {
	t.Run("resolve", func(t *testing.T) {
		var out bytes.Buffer
		rootCmd.SetIn(strings.NewReader(twoStacks))
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"resolve", "-"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("Execute() error: %v", err)
		}
		if want := "[main] (main.js:10:5)\n<exhausted>\n"; out.String() != want {
			t.Errorf("output = %q, want %q", out.String(), want)
		}
	})

	t.Run("demo", func(t *testing.T) {
		var out, errOut bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&errOut)
		rootCmd.SetArgs([]string{"demo"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("Execute() error: %v", err)
		}

		for _, want := range []string{
			"📝 [runDemo] (demo.go:",
			"ℹ️ [runDemo] (demo.go:",
			"🐛 [runDemo] (demo.go:",
			") multi-line\nmessage\n",
			") intercepted standard library log\n",
		} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("stdout misses %q:\n%s", want, out.String())
			}
		}
		for _, want := range []string{"⚠️ [runDemo] (demo.go:", "❌ [runDemo] (demo.go:"} {
			if !strings.Contains(errOut.String(), want) {
				t.Errorf("stderr misses %q:\n%s", want, errOut.String())
			}
		}
	})
}
