// Package configs holds the decorator configuration and loads it from
// defaults, an optional YAML or JSON file and CALLSITE_ environment variables.
package configs

import (
	"fmt"
	"strings"
)

// Method names of the five log categories.
const (
	MethodLog   = "log"
	MethodInfo  = "info"
	MethodWarn  = "warn"
	MethodError = "error"
	MethodDebug = "debug"
)

// Colorize modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// AllMethods returns the five log categories in declaration order.
func AllMethods() []string {
	return []string{MethodLog, MethodInfo, MethodWarn, MethodError, MethodDebug}
}

// Separator frames each log entry with a line before and after it.
type Separator struct {
	PreLog         string `koanf:"pre_log"`
	PostLog        string `koanf:"post_log"`
	Color          string `koanf:"color"`
	SkipOnEmptyLog bool   `koanf:"skip_on_empty_log"`
}

// SeparatorOverride replaces individual separator fields for one method.
type SeparatorOverride struct {
	PreLog         *string `koanf:"pre_log"`
	PostLog        *string `koanf:"post_log"`
	Color          *string `koanf:"color"`
	SkipOnEmptyLog *bool   `koanf:"skip_on_empty_log"`
}

// MethodOverride replaces global settings for one method. Nil fields inherit.
type MethodOverride struct {
	Separator        *SeparatorOverride `koanf:"separator"`
	AddNewLine       *bool              `koanf:"add_new_line"`
	ShowFileName     *bool              `koanf:"show_file_name"`
	ShowFunctionName *bool              `koanf:"show_function_name"`
}

// FilterConfig overrides the internal-frame filter. Nil lists keep the defaults.
type FilterConfig struct {
	DependencyMarkers []string `koanf:"dependency_markers"`
	Tokens            []string `koanf:"tokens"`
	FileNames         []string `koanf:"file_names"`
}

// PerMethod holds one string per log method.
type PerMethod struct {
	Log   string `koanf:"log"`
	Info  string `koanf:"info"`
	Warn  string `koanf:"warn"`
	Error string `koanf:"error"`
	Debug string `koanf:"debug"`
}

// Get returns the value for method, or "" for an unknown method.
func (p PerMethod) Get(method string) string {
	switch strings.ToLower(method) {
	case MethodLog:
		return p.Log
	case MethodInfo:
		return p.Info
	case MethodWarn:
		return p.Warn
	case MethodError:
		return p.Error
	case MethodDebug:
		return p.Debug
	default:
		return ""
	}
}

// Config is the complete decorator configuration.
type Config struct {
	Enabled          bool                      `koanf:"enabled"`
	Colorize         string                    `koanf:"colorize"`
	Separator        Separator                 `koanf:"separator"`
	AddNewLine       bool                      `koanf:"add_new_line"`
	ShowFileName     bool                      `koanf:"show_file_name"`
	ShowFunctionName bool                      `koanf:"show_function_name"`
	Colors           PerMethod                 `koanf:"colors"`
	Emojis           PerMethod                 `koanf:"emojis"`
	Methods          []string                  `koanf:"methods"`
	CaptureStack     bool                      `koanf:"capture_stack"`
	MaxStackDepth    int                       `koanf:"max_stack_depth"`
	Debug            bool                      `koanf:"debug"`
	Overrides        map[string]MethodOverride `koanf:"overrides"`
	Filter           FilterConfig              `koanf:"filter"`
}

// MethodConfig is the effective configuration of one method after overrides.
type MethodConfig struct {
	Separator        Separator
	AddNewLine       bool
	ShowFileName     bool
	ShowFunctionName bool
	Color            string
	Emoji            string
}

// Method merges the global settings with the override for name.
func (c Config) Method(name string) MethodConfig {
	mc := MethodConfig{
		Separator:        c.Separator,
		AddNewLine:       c.AddNewLine,
		ShowFileName:     c.ShowFileName,
		ShowFunctionName: c.ShowFunctionName,
		Color:            c.Colors.Get(name),
		Emoji:            c.Emojis.Get(name),
	}

	o, ok := c.Overrides[name]
	if !ok {
		return mc
	}

	if s := o.Separator; s != nil {
		if s.PreLog != nil {
			mc.Separator.PreLog = *s.PreLog
		}
		if s.PostLog != nil {
			mc.Separator.PostLog = *s.PostLog
		}
		if s.Color != nil {
			mc.Separator.Color = *s.Color
		}
		if s.SkipOnEmptyLog != nil {
			mc.Separator.SkipOnEmptyLog = *s.SkipOnEmptyLog
		}
	}
	if o.AddNewLine != nil {
		mc.AddNewLine = *o.AddNewLine
	}
	if o.ShowFileName != nil {
		mc.ShowFileName = *o.ShowFileName
	}
	if o.ShowFunctionName != nil {
		mc.ShowFunctionName = *o.ShowFunctionName
	}
	return mc
}

// MethodEnabled reports whether name is among the enabled methods.
func (c Config) MethodEnabled(name string) bool {
	for _, m := range c.Methods {
		if strings.EqualFold(m, name) {
			return true
		}
	}
	return false
}

// SetOverride sets the override for one method.
func (c *Config) SetOverride(method string, o MethodOverride) {
	if c.Overrides == nil {
		c.Overrides = make(map[string]MethodOverride)
	}
	c.Overrides[method] = o
}

// Validate checks depth, method names, color names and the colorize mode.
func (c Config) Validate() error {
	if c.MaxStackDepth < 1 {
		return fmt.Errorf("max_stack_depth must be at least 1, got %d", c.MaxStackDepth)
	}

	switch c.Colorize {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("colorize must be one of auto, always, never, got %q", c.Colorize)
	}

	for _, m := range c.Methods {
		if !isMethod(m) {
			return fmt.Errorf("%w: %q", ErrUnknownMethod, m)
		}
	}
	for m := range c.Overrides {
		if !isMethod(m) {
			return fmt.Errorf("override: %w: %q", ErrUnknownMethod, m)
		}
	}

	for _, m := range AllMethods() {
		if _, err := ParseColor(c.Colors.Get(m)); err != nil {
			return fmt.Errorf("colors.%s: %w", m, err)
		}
	}
	if _, err := ParseColor(c.Separator.Color); err != nil {
		return fmt.Errorf("separator.color: %w", err)
	}
	for m, o := range c.Overrides {
		if o.Separator != nil && o.Separator.Color != nil {
			if _, err := ParseColor(*o.Separator.Color); err != nil {
				return fmt.Errorf("overrides.%s.separator.color: %w", m, err)
			}
		}
	}

	return nil
}

func isMethod(name string) bool {
	for _, m := range AllMethods() {
		if strings.EqualFold(m, name) {
			return true
		}
	}
	return false
}

// Ptr returns a pointer to v, for building overrides.
func Ptr[T any](v T) *T {
	return &v
}
