package html

import (
	"fmt"
	"strconv"
	"strings"

	"tml/pkg/css"
)

// LayoutType selects the layout branch an element takes.
type LayoutType int

const (
	LayoutBlock LayoutType = iota
	LayoutInline
	LayoutText
)

func (t LayoutType) String() string {
	switch t {
	case LayoutBlock:
		return "Block"
	case LayoutInline:
		return "Inline"
	case LayoutText:
		return "Text"
	}
	return "LayoutType(" + strconv.Itoa(int(t)) + ")"
}

// DocumentTag is the tag of the root element.
const DocumentTag = "document"

// Element is a node of the document tree. Containers are parameterized by
// tag and layout type; text leaves carry a Value and never have children.
type Element struct {
	Tag   string
	ID    string
	Class string

	// Authored geometry.
	X      int
	Y      int
	Width  int
	Height int

	// Geometry computed by the last layout pass.
	LayoutedX      int
	LayoutedY      int
	LayoutedWidth  int
	LayoutedHeight int

	Parent    *Element
	Children  []*Element
	Fragments []*Element

	LayoutType LayoutType

	// Style is the sealed result of the cascade, nil before ApplyStyle.
	Style *css.Style
	// InlineStyle holds declarations from the style attribute.
	InlineStyle *css.Style

	// Value is the content of a text element.
	Value string
}

// Document is the root of a parsed tree and owns the style sheet that
// <style> blocks accumulate into.
type Document struct {
	*Element
	StyleSheet *css.StyleSheet
}

func NewDocument() *Document {
	return &Document{
		Element:    NewBlock(DocumentTag),
		StyleSheet: css.NewStyleSheet(),
	}
}

// NewBlock returns a block container.
func NewBlock(tag string) *Element {
	return &Element{Tag: tag, LayoutType: LayoutBlock}
}

// NewInline returns an inline container.
func NewInline(tag string) *Element {
	return &Element{Tag: tag, LayoutType: LayoutInline}
}

// NewText returns a text leaf.
func NewText(value string) *Element {
	return &Element{LayoutType: LayoutText, Value: value}
}

func (e *Element) IsText() bool {
	return e.LayoutType == LayoutText
}

// AddChild adds a child node and sets up the parent relationship
func (e *Element) AddChild(child *Element) {
	child.Parent = e
	e.Children = append(e.Children, child)
}

// AppendText creates a text node and adds it as a child
func (e *Element) AppendText(value string) *Element {
	t := NewText(value)
	e.AddChild(t)
	return t
}

// RuleParser parses the declaration list of a style attribute.
type RuleParser interface {
	ParseRule(text string) (*css.Style, error)
}

// ApplyAttribute assigns one markup attribute. Unknown names are reported
// through the returned bool so the caller can warn about them. Unknown keys
// in a style attribute are dropped silently; use ApplyAttributeWith to
// report them.
func (e *Element) ApplyAttribute(name, value string) (known bool, err error) {
	return e.ApplyAttributeWith(css.NewSheetParser(), name, value)
}

// ApplyAttributeWith is ApplyAttribute with the style attribute parsed by
// rules.
func (e *Element) ApplyAttributeWith(rules RuleParser, name, value string) (known bool, err error) {
	switch name {
	case "id":
		e.ID = value
	case "class":
		e.Class = value
	case "x", "y", "width", "height":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return true, fmt.Errorf("attribute %s=%q is not an integer", name, value)
		}
		switch name {
		case "x":
			e.X = n
		case "y":
			e.Y = n
		case "width":
			e.Width = n
		case "height":
			e.Height = n
		}
	case "style":
		s, err := rules.ParseRule(value)
		if err != nil {
			return true, fmt.Errorf("attribute style: %w", err)
		}
		e.InlineStyle = s
	default:
		return false, nil
	}
	return true, nil
}

// ApplyStyle resolves the style of e and all its descendants from sheet.
// The tag is merged first and the class second, so the class wins.
func (e *Element) ApplyStyle(sheet *css.StyleSheet) {
	e.Style = css.WithInline(sheet.GetStyle(e.Tag, e.Class), e.InlineStyle)
	for _, child := range e.Children {
		child.ApplyStyle(sheet)
	}
}

// FindByID returns the first element in document order with the given id.
func (e *Element) FindByID(id string) *Element {
	if e.ID == id {
		return e
	}
	for _, child := range e.Children {
		if found := child.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// ComputedStyle returns the resolved style, or a sealed default when the
// element has not been styled yet.
func (e *Element) ComputedStyle() *css.Style {
	if e.Style == nil {
		return css.Sealed()
	}
	return e.Style
}

// LayoutedInnerX returns the left edge of the content area.
func (e *Element) LayoutedInnerX() int { return e.LayoutedX + e.ComputedStyle().PaddingLeft }

// LayoutedInnerY returns the top edge of the content area.
func (e *Element) LayoutedInnerY() int { return e.LayoutedY + e.ComputedStyle().PaddingTop }

// LayoutedInnerWidth returns the content width.
func (e *Element) LayoutedInnerWidth() int {
	s := e.ComputedStyle()
	return e.LayoutedWidth - s.PaddingLeft - s.PaddingRight
}

// LayoutedInnerHeight returns the content height.
func (e *Element) LayoutedInnerHeight() int {
	s := e.ComputedStyle()
	return e.LayoutedHeight - s.PaddingTop - s.PaddingBottom
}

// FontSize resolves the effective font size: the nearest explicit size on
// e or its ancestors (DefaultFontSize when there is none), scaled by every
// font-scale percentage from that element down to e.
func (e *Element) FontSize() int {
	size := css.DefaultFontSize
	var scales []int
	for n := e; n != nil; n = n.Parent {
		if n.Style == nil {
			continue
		}
		if sc := n.Style.FontScale; sc != 100 && sc != css.Unset {
			scales = append(scales, sc)
		}
		if fs := n.Style.FontSize; fs != css.Inherit && fs != css.Unset {
			size = fs
			break
		}
	}
	for i := len(scales) - 1; i >= 0; i-- {
		size = size * scales[i] / 100
	}
	return size
}

// TextStyle returns the style text is painted with: e's computed style with
// color, text-align and text-decoration taken from the nearest element on
// the path to the root that sets them.
func (e *Element) TextStyle() *css.Style {
	s := e.ComputedStyle().Clone()
	fields := []func(*css.Style) **string{
		func(s *css.Style) **string { return &s.Color },
		func(s *css.Style) **string { return &s.TextAlign },
		func(s *css.Style) **string { return &s.TextDecoration },
	}
	for _, field := range fields {
		dst := field(s)
		for n := e; n != nil; n = n.Parent {
			if n.Style == nil {
				continue
			}
			if v := *field(n.Style); v != nil && *v != "" {
				*dst = v
				break
			}
		}
	}
	return s
}

// LineHeight resolves line-height the same way as FontSize. It returns 0
// when no element on the path sets one.
func (e *Element) LineHeight() int {
	for n := e; n != nil; n = n.Parent {
		if n.Style != nil && n.Style.LineHeight != css.Inherit && n.Style.LineHeight != css.Unset {
			return n.Style.LineHeight
		}
	}
	return 0
}

// KindName names the element variant for debug output.
func (e *Element) KindName() string {
	switch {
	case e.IsText():
		return "Text"
	case e.Tag == DocumentTag:
		return "Document"
	}
	return e.LayoutType.String() + "(" + e.Tag + ")"
}

// Dump returns an indented structural listing of e: one line per element
// naming its kind, text leaves printed as their content.
func (e *Element) Dump() string {
	var sb strings.Builder
	e.dump(&sb, 0)
	return sb.String()
}

func (e *Element) dump(sb *strings.Builder, level int) {
	sb.WriteString(strings.Repeat("  ", level))
	if e.IsText() {
		sb.WriteString(e.Value)
		sb.WriteByte('\n')
		return
	}
	sb.WriteString(e.KindName())
	sb.WriteByte('\n')
	for _, child := range e.Children {
		child.dump(sb, level+1)
	}
}
