package callsite

import (
	"go/build"
	"path"
	"strings"
)

// Token identifies this module in import paths and module cache directories.
const Token = "go-callsite"

// Filter decides which frames belong to the logging machinery or to dependency
// code and must never be reported as the caller.
type Filter struct {
	// DependencyMarkers are path substrings of third-party code.
	DependencyMarkers []string
	// Tokens are matched case-insensitively against both path and name.
	Tokens []string
	// FileNames are base names of the logger's own source files.
	FileNames []string
}

// DefaultFilter excludes dependency directories, the Go standard library and
// the source files on this module's logging path.
func DefaultFilter() Filter {
	markers := []string{"node_modules", "/pkg/mod/", "/vendor/", StdlibMarker}
	if root := build.Default.GOROOT; root != "" {
		markers = append(markers, path.Join(toSlash(root), "src")+"/")
	}

	return Filter{
		DependencyMarkers: markers,
		Tokens:            []string{Token},
		FileNames:         []string{"logger.go", "intercept.go", "source.go", "walker.go"},
	}
}

// IsInternal reports whether the frame must be skipped.
func (f Filter) IsInternal(filePath, name string) bool {
	p := toSlash(filePath)
	for _, m := range f.DependencyMarkers {
		if m != "" && strings.Contains(p, m) {
			return true
		}
	}

	lp, ln := strings.ToLower(p), strings.ToLower(name)
	for _, t := range f.Tokens {
		t = strings.ToLower(t)
		if t != "" && (strings.Contains(lp, t) || strings.Contains(ln, t)) {
			return true
		}
	}

	base := strings.ToLower(FileName(p))
	for _, fn := range f.FileNames {
		if fn != "" && base == strings.ToLower(fn) {
			return true
		}
	}

	return false
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
