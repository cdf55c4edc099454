package css

import (
	"sort"
	"sync"
)

// keySeparator joins selector names into a cache key.
const keySeparator = "+"

// StyleSheet maps selector names (tag or class) to style bags and memoizes
// merged lookups.
type StyleSheet struct {
	rules map[string]*Style

	mu    sync.Mutex
	cache map[string]*Style
}

// NewStyleSheet returns an empty style sheet.
func NewStyleSheet() *StyleSheet {
	return &StyleSheet{
		rules: make(map[string]*Style),
		cache: make(map[string]*Style),
	}
}

// FindOrCreateStyle returns the bag stored under name, creating an empty one
// on first reference.
func (ss *StyleSheet) FindOrCreateStyle(name string) *Style {
	if s, ok := ss.rules[name]; ok {
		return s
	}
	s := Empty()
	ss.rules[name] = s
	return s
}

// Lookup returns the raw bag stored under name.
func (ss *StyleSheet) Lookup(name string) (*Style, bool) {
	s, ok := ss.rules[name]
	return s, ok
}

// Selectors returns the selector names defined in the sheet, sorted.
func (ss *StyleSheet) Selectors() []string {
	names := make([]string, 0, len(ss.rules))
	for name := range ss.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
