package configs

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var colorNames = map[string]color.Attribute{
	"black":     color.FgBlack,
	"red":       color.FgRed,
	"green":     color.FgGreen,
	"yellow":    color.FgYellow,
	"blue":      color.FgBlue,
	"magenta":   color.FgMagenta,
	"cyan":      color.FgCyan,
	"white":     color.FgWhite,
	"hiblack":   color.FgHiBlack,
	"hired":     color.FgHiRed,
	"higreen":   color.FgHiGreen,
	"hiyellow":  color.FgHiYellow,
	"hiblue":    color.FgHiBlue,
	"himagenta": color.FgHiMagenta,
	"hicyan":    color.FgHiCyan,
	"hiwhite":   color.FgHiWhite,
}

// ParseColor maps a color name such as "cyan" or "hiwhite" to its attribute.
// The empty name maps to color.Reset.
func ParseColor(name string) (color.Attribute, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(strings.ReplaceAll(n, "_", ""), "-", "")
	n = strings.Replace(n, "bright", "hi", 1)
	if n == "" {
		return color.Reset, nil
	}
	if a, ok := colorNames[n]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}
