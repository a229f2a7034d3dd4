package vfs

import (
	"fmt"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/GriffinCanCode/MiniOS/internal/shared/paths"
)

// Glob returns all paths matching a doublestar pattern in lexical order.
// "**" crosses directory boundaries; relative patterns are anchored at root.
func (fs *FS) Glob(pattern string) ([]string, error) {
	pattern = paths.Clean(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%s: %w", pattern, ErrInvalidPattern)
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	matches := make([]string, 0)
	for p := range fs.nodes {
		ok, err := doublestar.Match(pattern, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pattern, ErrInvalidPattern)
		}
		if ok {
			matches = append(matches, p)
		}
	}

	sort.Strings(matches)
	return matches, nil
}
