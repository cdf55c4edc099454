package css

import "strings"

// GetStyle merges the bags named by names, in order, into one sealed style.
// Later names override earlier ones; empty or unknown names contribute
// nothing. The result is cached under the exact ordered tuple and must not
// be mutated by callers.
func (ss *StyleSheet) GetStyle(names ...string) *Style {
	key := strings.Join(names, keySeparator)

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if s, ok := ss.cache[key]; ok {
		return s
	}
	merged := Empty()
	for _, name := range names {
		if name == "" {
			continue
		}
		if s, ok := ss.rules[name]; ok {
			merged.Merge(s)
		}
	}
	merged.Seal()
	ss.cache[key] = merged
	return merged
}

// invalidate drops memoized lookups after the rules changed.
func (ss *StyleSheet) invalidate() {
	ss.mu.Lock()
	ss.cache = make(map[string]*Style)
	ss.mu.Unlock()
}

// WithInline layers an element's own declarations over a sealed cascade
// result. base is left untouched; the returned style is a sealed copy.
func WithInline(base, inline *Style) *Style {
	if inline == nil {
		return base
	}
	s := base.Clone()
	s.Merge(inline)
	return s.Seal()
}
