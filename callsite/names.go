package callsite

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownName is returned when no function name can be derived.
const UnknownName = "Unknown"

var (
	schemeRe = regexp.MustCompile(`^https?://`)
	hostRe   = regexp.MustCompile(`^([^/]+)(:\d+)?/`)
	letterRe = regexp.MustCompile(`[a-zA-Z]`)
)

// FileName returns the last path segment of filePath without query or fragment.
func FileName(filePath string) string {
	clean := cutAny(filePath, "?#")

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return clean
	}
	return parts[len(parts)-1]
}

// FunctionName derives a display name for a frame. URL-shaped names yield their
// last path segment, meaningful names are kept, and everything else falls back
// to the capitalized base name of the file.
func FunctionName(name, filePath string) string {
	if schemeRe.MatchString(name) {
		cleaned := schemeRe.ReplaceAllString(name, "")
		cleaned = hostRe.ReplaceAllString(cleaned, "$1/")
		cleaned = cutAny(cleaned, "?")
		if cleaned != "" {
			if i := strings.LastIndex(cleaned, "/"); i >= 0 {
				return cleaned[i+1:]
			}
			return cleaned
		}
	}

	if isMeaningful(name) {
		return name
	}

	base, _, _ := strings.Cut(FileName(filePath), ".")
	if base == "" {
		return UnknownName
	}
	r, size := utf8.DecodeRuneInString(base)
	return string(unicode.ToUpper(r)) + base[size:]
}

func isMeaningful(name string) bool {
	return name != "" &&
		name != AnonymousName &&
		!strings.HasPrefix(name, "Object.") &&
		!strings.Contains(name, ".") &&
		letterRe.MatchString(name)
}

func cutAny(s, chars string) string {
	if i := strings.IndexAny(s, chars); i >= 0 {
		return s[:i]
	}
	return s
}
