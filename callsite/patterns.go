package callsite

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// AnonymousName is the name given to frames that carry no function name.
const AnonymousName = "anonymous"

var (
	// ErrNoMatch is returned by a Grammar that does not recognize the line.
	ErrNoMatch = errors.New("line does not match grammar")
	// ErrBadPosition is returned when a grammar recognizes the line but its line
	// or column is not a valid number. The line is rejected as a whole.
	ErrBadPosition = errors.New("invalid frame position")
)

// A Grammar interprets one stack line as a call frame. Match returns
// ErrNoMatch when the line is not in the grammar's dialect.
type Grammar interface {
	Name() string
	Match(line string) (FrameMatch, error)
}

type regexpGrammar struct {
	name string
	re   *regexp.Regexp
	// group indexes; zero means the group is absent from the pattern
	nameIdx, pathIdx, lineIdx, colIdx int
	optionalCol                       bool
}

func (g *regexpGrammar) Name() string {
	return g.name
}

func (g *regexpGrammar) Match(line string) (FrameMatch, error) {
	m := g.re.FindStringSubmatch(line)
	if m == nil {
		return FrameMatch{}, ErrNoMatch
	}

	lineNo, err := strconv.Atoi(m[g.lineIdx])
	if err != nil {
		return FrameMatch{}, ErrBadPosition
	}

	col := 0
	if raw := m[g.colIdx]; raw != "" || !g.optionalCol {
		if col, err = strconv.Atoi(raw); err != nil {
			return FrameMatch{}, ErrBadPosition
		}
	}

	name := AnonymousName
	if g.nameIdx > 0 {
		name = strings.TrimSpace(m[g.nameIdx])
	}

	return FrameMatch{
		Name:     name,
		FilePath: strings.TrimSpace(m[g.pathIdx]),
		Line:     lineNo,
		Column:   col,
	}, nil
}

var (
	// name @ file:line[:column]
	symbolGrammar = &regexpGrammar{
		name:        "symbol",
		re:          regexp.MustCompile(`^(.+?)\s+@\s+(.+?):(\d+)(?::(\d+))?$`),
		nameIdx:     1,
		pathIdx:     2,
		lineIdx:     3,
		colIdx:      4,
		optionalCol: true,
	}

	// at name (file:line:column)
	parenGrammar = &regexpGrammar{
		name:    "parenthesized",
		re:      regexp.MustCompile(`at\s+(.+?)\s+\((.+?):(\d+):(\d+)\)`),
		nameIdx: 1,
		pathIdx: 2,
		lineIdx: 3,
		colIdx:  4,
	}

	// at file:line:column
	bareGrammar = &regexpGrammar{
		name:    "bare",
		re:      regexp.MustCompile(`at\s+(.+?):(\d+):(\d+)(?:\s.*)?$`),
		pathIdx: 1,
		lineIdx: 2,
		colIdx:  3,
	}
)

// DefaultGrammars returns the built-in dialects in priority order.
func DefaultGrammars() []Grammar {
	return []Grammar{symbolGrammar, parenGrammar, bareGrammar}
}

// Match tries each grammar in order and returns the first match. A grammar
// that recognizes the line but cannot parse its position ends the search.
func Match(grammars []Grammar, line string) (FrameMatch, Grammar, bool) {
	for _, g := range grammars {
		fm, err := g.Match(line)
		switch {
		case err == nil:
			return fm, g, true
		case errors.Is(err, ErrNoMatch):
			continue
		default:
			return FrameMatch{}, g, false
		}
	}
	return FrameMatch{}, nil, false
}
