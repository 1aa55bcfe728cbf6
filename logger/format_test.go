package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/lognitor/go-callsite/callsite"
	"github.com/lognitor/go-callsite/configs"
)

const sep = "--------------------------------"

func plainEntry(args ...any) Entry {
	cfg := configs.Default()
	return Entry{
		Method: INFO,
		Config: cfg.Method(configs.MethodInfo),
		Context: callsite.Context{
			FileName:     "main.go",
			FunctionName: "handler",
			LineNumber:   12,
			ColumnNumber: 0,
		},
		Args: args,
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		entry func() Entry
		want  string
	}{
		{
			name:  "full decoration",
			entry: func() Entry { return plainEntry("hello", 42) },
			want:  sep + "\nℹ️ [handler] (main.go:12) hello 42\n" + sep + "\n",
		},
		{
			name:  "multi-line message keeps prefix on first line",
			entry: func() Entry { return plainEntry("first\nsecond") },
			want:  sep + "\nℹ️ [handler] (main.go:12) first\nsecond\n" + sep + "\n",
		},
		{
			name:  "error argument",
			entry: func() Entry { return plainEntry(errors.New("boom")) },
			want:  sep + "\nℹ️ [handler] (main.go:12) boom\n" + sep + "\n",
		},
		{
			name:  "empty log skips separators",
			entry: func() Entry { return plainEntry() },
			want:  "ℹ️ [handler] (main.go:12)\n",
		},
		{
			name:  "blank string skips separators",
			entry: func() Entry { return plainEntry("   ") },
			want:  "ℹ️ [handler] (main.go:12)    \n",
		},
		{
			name: "separators kept on empty log when not skipping",
			entry: func() Entry {
				e := plainEntry()
				e.Config.Separator.SkipOnEmptyLog = false
				return e
			},
			want: sep + "\nℹ️ [handler] (main.go:12)\n" + sep + "\n",
		},
		{
			name: "no context",
			entry: func() Entry {
				e := plainEntry("hello")
				e.Context = callsite.Context{}
				e.Config.Emoji = ""
				return e
			},
			want: sep + "\nhello\n" + sep + "\n",
		},
		{
			name: "no line number",
			entry: func() Entry {
				e := plainEntry("hello")
				e.Context.LineNumber = 0
				return e
			},
			want: sep + "\nℹ️ [handler] (main.go) hello\n" + sep + "\n",
		},
		{
			name: "hidden file and function",
			entry: func() Entry {
				e := plainEntry("hello")
				e.Config.ShowFileName = false
				e.Config.ShowFunctionName = false
				e.Config.Separator.PreLog, e.Config.Separator.PostLog = "", ""
				return e
			},
			want: "ℹ️ hello\n",
		},
		{
			name: "trailing blank line",
			entry: func() Entry {
				e := plainEntry("hello")
				e.Config.AddNewLine = true
				e.Config.Separator.PreLog = ""
				return e
			},
			want: "ℹ️ [handler] (main.go:12) hello\n" + sep + "\n\n",
		},
	}

	p := newPalette(configs.Default(), false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			format(&buf, tt.entry(), p)
			if got := buf.String(); got != tt.want {
				t.Errorf("format() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestFormat_Colors(t *testing.T) {
	var buf bytes.Buffer
	format(&buf, plainEntry("hello"), newPalette(configs.Default(), true))

	got := buf.String()
	if !strings.Contains(got, "\x1b[32m[handler]\x1b[0m") {
		t.Errorf("function name not painted green: %q", got)
	}
	if !strings.Contains(got, "\x1b[97m"+sep+"\x1b[0m") {
		t.Errorf("separator not painted hiwhite: %q", got)
	}
	if !strings.HasSuffix(got, " hello\n\x1b[97m"+sep+"\x1b[0m\n") {
		t.Errorf("message must stay uncolored: %q", got)
	}
}

func TestIsEmptyLog(t *testing.T) {
	tests := []struct {
		args []any
		want bool
	}{
		{nil, true},
		{[]any{""}, true},
		{[]any{" \t"}, true},
		{[]any{"x"}, false},
		{[]any{0}, false},
		{[]any{"", ""}, false},
	}
	for _, tt := range tests {
		if got := isEmptyLog(tt.args); got != tt.want {
			t.Errorf("isEmptyLog(%#v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
