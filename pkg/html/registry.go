package html

import (
	"fmt"
	"sort"
)

// StyleTag is reserved for embedded stylesheets and never becomes an
// element.
const StyleTag = "style"

// Factory constructs a fresh element for a tag.
type Factory func() *Element

// Registry maps tag names to element factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry with div, h1 and p as block
// containers and span as an inline container.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, tag := range []string{"div", "h1", "p"} {
		r.mustRegister(tag, BlockFactory(tag))
	}
	r.mustRegister("span", InlineFactory("span"))
	return r
}

// BlockFactory returns a factory for block containers with the given tag.
func BlockFactory(tag string) Factory {
	return func() *Element { return NewBlock(tag) }
}

// InlineFactory returns a factory for inline containers with the given tag.
func InlineFactory(tag string) Factory {
	return func() *Element { return NewInline(tag) }
}

// Register adds a tag. Registering the reserved style tag, an empty name or
// a tag twice is an error.
func (r *Registry) Register(tag string, f Factory) error {
	switch {
	case tag == "":
		return fmt.Errorf("empty tag name")
	case tag == StyleTag:
		return fmt.Errorf("tag %q is reserved", tag)
	case f == nil:
		return fmt.Errorf("nil factory for tag %q", tag)
	}
	if _, ok := r.factories[tag]; ok {
		return fmt.Errorf("tag %q already registered", tag)
	}
	r.factories[tag] = f
	return nil
}

func (r *Registry) mustRegister(tag string, f Factory) {
	if err := r.Register(tag, f); err != nil {
		panic(err)
	}
}

// New constructs an element for tag. The element's Tag is always set to
// the registered name. An unregistered tag yields *UnknownTagError; a
// factory that returns nil or a text leaf is an error.
func (r *Registry) New(tag string) (*Element, error) {
	f, ok := r.factories[tag]
	if !ok {
		return nil, &UnknownTagError{Tag: tag}
	}
	e := f()
	switch {
	case e == nil:
		return nil, fmt.Errorf("factory for tag %q returned nil", tag)
	case e.IsText():
		return nil, fmt.Errorf("factory for tag %q returned a text element", tag)
	}
	e.Tag = tag
	return e, nil
}

// Tags returns the registered tag names, sorted.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.factories))
	for tag := range r.factories {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
