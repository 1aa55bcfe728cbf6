package logger

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/lognitor/go-callsite/configs"
)

// palette caches one color per color name.
type palette struct {
	enabled bool
	colors  map[string]*color.Color
}

func newPalette(cfg configs.Config, enabled bool) palette {
	p := palette{enabled: enabled, colors: make(map[string]*color.Color)}

	names := []string{cfg.Separator.Color}
	for _, m := range configs.AllMethods() {
		names = append(names, cfg.Colors.Get(m))
	}
	for _, o := range cfg.Overrides {
		if o.Separator != nil && o.Separator.Color != nil {
			names = append(names, *o.Separator.Color)
		}
	}

	for _, name := range names {
		attr, err := configs.ParseColor(name)
		if err != nil || name == "" {
			continue
		}
		c := color.New(attr)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		p.colors[name] = c
	}
	return p
}

func (p palette) paint(name, s string) string {
	c, ok := p.colors[name]
	if !p.enabled || !ok {
		return s
	}
	return c.Sprint(s)
}

// isEmptyLog reports a call without arguments or with a single blank string.
func isEmptyLog(args []any) bool {
	if len(args) == 0 {
		return true
	}
	if len(args) == 1 {
		if s, ok := args[0].(string); ok {
			return strings.TrimSpace(s) == ""
		}
	}
	return false
}

// message joins args with single spaces.
func message(args []any) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}

// contextPrefix renders the emoji, [function] and (file:line) parts.
func contextPrefix(e Entry, p palette) string {
	parts := make([]string, 0, 3)
	mc, ctx := e.Config, e.Context

	if mc.Emoji != "" {
		parts = append(parts, p.paint(mc.Color, mc.Emoji))
	}
	if mc.ShowFunctionName && ctx.FunctionName != "" {
		parts = append(parts, p.paint(mc.Color, "["+ctx.FunctionName+"]"))
	}
	if mc.ShowFileName && ctx.FileName != "" {
		location := ctx.FileName
		if ctx.LineNumber > 0 {
			location += ":" + strconv.Itoa(ctx.LineNumber)
		}
		parts = append(parts, p.paint(mc.Color, "("+location+")"))
	}

	return strings.Join(parts, " ")
}

// format writes the decorated entry to buf. The context prefix goes on the
// first line only, so multi-line messages keep their layout.
func format(buf *bytes.Buffer, e Entry, p palette) {
	sep := e.Config.Separator
	skipSeparator := sep.SkipOnEmptyLog && isEmptyLog(e.Args)

	if sep.PreLog != "" && !skipSeparator {
		buf.WriteString(p.paint(sep.Color, sep.PreLog))
		buf.WriteByte('\n')
	}

	prefix := contextPrefix(e, p)
	switch {
	case prefix != "" && len(e.Args) > 0:
		buf.WriteString(prefix)
		buf.WriteByte(' ')
		buf.WriteString(message(e.Args))
		buf.WriteByte('\n')
	case prefix != "":
		buf.WriteString(prefix)
		buf.WriteByte('\n')
	case len(e.Args) > 0:
		buf.WriteString(message(e.Args))
		buf.WriteByte('\n')
	}

	if sep.PostLog != "" && !skipSeparator {
		buf.WriteString(p.paint(sep.Color, sep.PostLog))
		buf.WriteByte('\n')
	}

	if e.Config.AddNewLine {
		buf.WriteByte('\n')
	}
}
