package css

import "strconv"

// Sentinels stored in numeric Style fields.
const (
	// Unset marks a field no rule has assigned yet. Merge skips it.
	Unset = -9999
	// Inherit marks a sealed font-size or line-height that takes its value
	// from the nearest ancestor.
	Inherit = -9998
)

// DefaultFontSize is used when no ancestor defines a font size.
const DefaultFontSize = 10

// Style is a property bag. A freshly created bag has every field unset;
// Merge layers bags on top of each other and Seal replaces whatever is still
// unset with a concrete default.
type Style struct {
	MarginLeft   int
	MarginRight  int
	MarginTop    int
	MarginBottom int

	PaddingLeft   int
	PaddingRight  int
	PaddingTop    int
	PaddingBottom int

	FontSize   int
	FontScale  int // percent
	LineHeight int

	TextDecoration  *string
	TextAlign       *string
	Color           *string
	BackgroundImage *string
}

// Empty returns a style with every field unset.
func Empty() *Style {
	return &Style{
		MarginLeft:    Unset,
		MarginRight:   Unset,
		MarginTop:     Unset,
		MarginBottom:  Unset,
		PaddingLeft:   Unset,
		PaddingRight:  Unset,
		PaddingTop:    Unset,
		PaddingBottom: Unset,
		FontSize:      Unset,
		FontScale:     Unset,
		LineHeight:    Unset,
	}
}

// Sealed returns an already sealed style with all defaults.
func Sealed() *Style {
	s := Empty()
	s.Seal()
	return s
}

// numeric returns pointers to every numeric field, in declaration order.
func (s *Style) numeric() []*int {
	return []*int{
		&s.MarginLeft, &s.MarginRight, &s.MarginTop, &s.MarginBottom,
		&s.PaddingLeft, &s.PaddingRight, &s.PaddingTop, &s.PaddingBottom,
		&s.FontSize, &s.FontScale, &s.LineHeight,
	}
}

func (s *Style) texts() []**string {
	return []**string{&s.TextDecoration, &s.TextAlign, &s.Color, &s.BackgroundImage}
}

// Merge copies every field of over that is set into s. Later merges win.
func (s *Style) Merge(over *Style) *Style {
	if over == nil {
		return s
	}
	dst, src := s.numeric(), over.numeric()
	for i := range dst {
		if *src[i] != Unset {
			*dst[i] = *src[i]
		}
	}
	dstS, srcS := s.texts(), over.texts()
	for i := range dstS {
		if *srcS[i] != nil {
			v := **srcS[i]
			*dstS[i] = &v
		}
	}
	return s
}

// Seal converts every unset field to its default: margins and paddings to
// 0, font-size and line-height to Inherit, font-scale to 100 and strings to
// the empty string.
func (s *Style) Seal() *Style {
	for _, p := range []*int{
		&s.MarginLeft, &s.MarginRight, &s.MarginTop, &s.MarginBottom,
		&s.PaddingLeft, &s.PaddingRight, &s.PaddingTop, &s.PaddingBottom,
	} {
		if *p == Unset {
			*p = 0
		}
	}
	if s.FontSize == Unset {
		s.FontSize = Inherit
	}
	if s.LineHeight == Unset {
		s.LineHeight = Inherit
	}
	if s.FontScale == Unset {
		s.FontScale = 100
	}
	for _, p := range s.texts() {
		if *p == nil {
			empty := ""
			*p = &empty
		}
	}
	return s
}

// IsSealed reports whether no field is left unset.
func (s *Style) IsSealed() bool {
	for _, p := range s.numeric() {
		if *p == Unset {
			return false
		}
	}
	for _, p := range s.texts() {
		if *p == nil {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of s.
func (s *Style) Clone() *Style {
	c := Empty()
	c.Merge(s)
	return c
}

func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// GetColor returns the color value, or "" when unset.
func (s *Style) GetColor() string { return value(s.Color) }

// GetTextAlign returns the text-align value, or "" when unset.
func (s *Style) GetTextAlign() string { return value(s.TextAlign) }

// GetTextDecoration returns the text-decoration value, or "" when unset.
func (s *Style) GetTextDecoration() string { return value(s.TextDecoration) }

// GetBackgroundImage returns the background-image reference, or "" when unset.
func (s *Style) GetBackgroundImage() string { return value(s.BackgroundImage) }

// BoxEdge represents the four sides of a box (top, right, bottom, left)
type BoxEdge struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// GetMargin returns the margin values for all four sides
func (s *Style) GetMargin() BoxEdge {
	return BoxEdge{Top: s.MarginTop, Right: s.MarginRight, Bottom: s.MarginBottom, Left: s.MarginLeft}
}

// GetPadding returns the padding values for all four sides
func (s *Style) GetPadding() BoxEdge {
	return BoxEdge{Top: s.PaddingTop, Right: s.PaddingRight, Bottom: s.PaddingBottom, Left: s.PaddingLeft}
}

func formatInt(v int) string {
	switch v {
	case Unset:
		return "unset"
	case Inherit:
		return "inherit"
	}
	return strconv.Itoa(v)
}

// String renders the margin, padding and font fields for diagnostics.
func (s *Style) String() string {
	return "margin(" + formatInt(s.MarginTop) + " " + formatInt(s.MarginRight) + " " +
		formatInt(s.MarginBottom) + " " + formatInt(s.MarginLeft) + ") padding(" +
		formatInt(s.PaddingTop) + " " + formatInt(s.PaddingRight) + " " +
		formatInt(s.PaddingBottom) + " " + formatInt(s.PaddingLeft) + ") font-size " +
		formatInt(s.FontSize)
}
