package callsite

import (
	"fmt"
	"sync"

	"github.com/go-sourcemap/sourcemap"
)

// SourceMaps maps positions in generated files back to their original sources.
// Maps are keyed by the generated file's base name.
type SourceMaps struct {
	mu        sync.RWMutex
	consumers map[string]*sourcemap.Consumer
}

// NewSourceMaps creates an empty registry.
func NewSourceMaps() *SourceMaps {
	return &SourceMaps{consumers: make(map[string]*sourcemap.Consumer)}
}

// Register parses a source map for the generated file. generated may be a
// path or URL; only its base name is used as the key.
func (s *SourceMaps) Register(generated string, data []byte) error {
	c, err := sourcemap.Parse(generated, data)
	if err != nil {
		return fmt.Errorf("failed to parse source map for %s: %w", generated, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.consumers[FileName(generated)] = c
	return nil
}

// Len returns the number of registered maps.
func (s *SourceMaps) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.consumers)
}

// Remap rewrites fm to its original position. It returns false when no map is
// registered for the file or the position is not covered.
func (s *SourceMaps) Remap(fm FrameMatch) (FrameMatch, bool) {
	if s == nil || fm.Line <= 0 {
		return fm, false
	}

	s.mu.RLock()
	c, ok := s.consumers[FileName(fm.FilePath)]
	s.mu.RUnlock()
	if !ok {
		return fm, false
	}

	// the consumer takes a 0-indexed column
	col := fm.Column - 1
	if col < 0 {
		col = 0
	}
	file, name, line, column, ok := c.Source(fm.Line, col)
	if !ok || file == "" || line <= 0 {
		return fm, false
	}

	out := FrameMatch{
		Name:     fm.Name,
		FilePath: file,
		Line:     line,
		Column:   column + 1,
	}
	if name != "" {
		out.Name = name
	}
	return out, true
}
