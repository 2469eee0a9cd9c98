package walker

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// globMatcher applies the admission filter's include/exclude glob options
// (§4.1, §6), using doublestar for "**" semantics.
type globMatcher struct {
	include []string
	exclude []string
}

func newGlobMatcher(include, exclude []string) (*globMatcher, error) {
	for _, pat := range include {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("invalid include pattern %q", pat)
		}
	}
	for _, pat := range exclude {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pat)
		}
	}
	return &globMatcher{include: include, exclude: exclude}, nil
}

// included reports whether path matches at least one include pattern, or
// is trivially included when no include patterns were given.
func (m *globMatcher) included(path string) bool {
	if len(m.include) == 0 {
		return true
	}
	for _, pat := range m.include {
		if ok, _ := doublestar.Match(pat, filepath.ToSlash(path)); ok {
			return true
		}
	}
	return false
}

// excluded reports whether path matches any exclude pattern.
func (m *globMatcher) excluded(path string) bool {
	for _, pat := range m.exclude {
		if ok, _ := doublestar.Match(pat, filepath.ToSlash(path)); ok {
			return true
		}
	}
	return false
}
