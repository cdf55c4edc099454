package layout

import (
	"go.uber.org/zap"

	"tml/pkg/html"
	"tml/pkg/text"
)

// BlockWidthMode selects how a block child's width is derived from its
// container's inner width.
type BlockWidthMode int

const (
	// BlockWidthLegacy subtracts the child's left and bottom margins.
	BlockWidthLegacy BlockWidthMode = iota
	// BlockWidthRightMargin subtracts the child's left and right margins.
	BlockWidthRightMargin
)

func (m BlockWidthMode) String() string {
	switch m {
	case BlockWidthLegacy:
		return "legacy"
	case BlockWidthRightMargin:
		return "right-margin"
	}
	return "unknown"
}

// Option configures a Layouter.
type Option func(*Layouter)

// WithLogger sets the sink for line and fragment tracing at Debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Layouter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithBlockWidth selects the block width formula.
func WithBlockWidth(mode BlockWidthMode) Option {
	return func(l *Layouter) {
		l.blockWidth = mode
	}
}

// WithLineHeight makes text fragments take the nearest line-height in
// place of the font size. Off by default.
func WithLineHeight(enabled bool) Option {
	return func(l *Layouter) {
		l.lineHeight = enabled
	}
}

// Layouter lays out the children of one container. Block children are
// laid out by their own Layouter; inline and text descendants end up as
// fragments of Target.
type Layouter struct {
	Target *html.Element

	logger     *zap.Logger
	blockWidth BlockWidthMode
	lineHeight bool
	opts       []Option

	currentY       int
	currentX       int // valid in inline mode only
	mode           html.LayoutType
	lineStartIndex int // first fragment of the pending line
}

func New(target *html.Element, opts ...Option) *Layouter {
	l := &Layouter{
		Target: target,
		logger: zap.NewNop(),
		opts:   opts,
		mode:   html.LayoutBlock,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Reflow rebuilds Target's fragments and the geometry of everything below
// it, then sets Target's LayoutedHeight. Target's LayoutedWidth must be set
// by the caller.
func (l *Layouter) Reflow() {
	t := l.Target
	style := t.ComputedStyle()

	t.Fragments = nil
	l.currentY = style.PaddingTop
	l.currentX = 0
	l.mode = html.LayoutBlock
	l.lineStartIndex = 0

	for _, child := range t.Children {
		l.reflowElement(child)
	}
	if l.mode == html.LayoutInline {
		l.newline()
	}

	t.LayoutedHeight = l.currentY + style.PaddingBottom
}

// setMode flushes the pending line when leaving inline mode and resets the
// inline cursor when entering it.
func (l *Layouter) setMode(mode html.LayoutType) {
	if l.mode != mode {
		if l.mode == html.LayoutInline {
			l.newline()
		} else {
			l.resetInline()
		}
	}
	l.mode = mode
}

func (l *Layouter) reflowElement(e *html.Element) {
	switch e.LayoutType {
	case html.LayoutBlock:
		l.setMode(html.LayoutBlock)
		l.reflowBlock(e)
	case html.LayoutInline:
		l.setMode(html.LayoutInline)
		for _, child := range e.Children {
			l.reflowElement(child)
		}
	case html.LayoutText:
		l.setMode(html.LayoutInline)
		l.reflowText(e)
	}
}

func (l *Layouter) reflowBlock(e *html.Element) {
	style := e.ComputedStyle()
	e.LayoutedWidth = l.Target.LayoutedInnerWidth() - style.MarginLeft
	if l.blockWidth == BlockWidthRightMargin {
		e.LayoutedWidth -= style.MarginRight
	} else {
		e.LayoutedWidth -= style.MarginBottom
	}

	New(e, l.opts...).Reflow()

	e.LayoutedY = l.currentY + style.MarginTop
	e.LayoutedX = l.Target.ComputedStyle().PaddingLeft + style.MarginLeft
	l.currentY += e.LayoutedHeight + style.MarginTop + style.MarginBottom
	l.Target.Fragments = append(l.Target.Fragments, e)
}

// reflowText wraps the characters of e greedily into fragments of at most
// the remaining line width.
func (l *Layouter) reflowText(e *html.Element) {
	chars := text.Runes(e.Value)
	fontSize := e.FontSize()
	height := l.fragmentHeight(e, fontSize)
	inner := l.Target.LayoutedInnerWidth()

	cur := 0
	for cur < len(chars) {
		rest := inner - l.currentX
		n := text.FitCount(rest, fontSize)
		if n == 0 {
			if l.currentX != 0 {
				l.newline()
				continue
			}
			// Not even one character fits on an empty line.
			n = 1
		}
		if cur+n > len(chars) {
			n = len(chars) - cur
		}

		fragment := html.NewText(string(chars[cur : cur+n]))
		fragment.Style = e.Style
		fragment.Parent = e
		fragment.LayoutedWidth = n * fontSize
		fragment.LayoutedHeight = height
		l.logger.Debug("text fragment",
			zap.String("text", fragment.Value),
			zap.Int("rest", rest),
			zap.Int("x", l.currentX))
		l.addInlineFragment(fragment)

		cur += n
		if cur < len(chars) {
			l.newline()
		}
	}
}

// fragmentHeight is the font size plus the text's vertical padding. With
// WithLineHeight a resolved line-height replaces the font size.
func (l *Layouter) fragmentHeight(e *html.Element, fontSize int) int {
	h := fontSize
	if l.lineHeight {
		if lh := e.LineHeight(); lh > 0 {
			h = lh
		}
	}
	style := e.ComputedStyle()
	return h + style.PaddingTop + style.PaddingBottom
}

func (l *Layouter) addInlineFragment(e *html.Element) {
	l.Target.Fragments = append(l.Target.Fragments, e)
	l.currentX += e.LayoutedWidth
	if l.currentX > l.Target.LayoutedInnerWidth() {
		l.newline()
	}
}

func (l *Layouter) resetInline() {
	l.lineStartIndex = len(l.Target.Fragments)
	l.currentX = 0
}

// newline positions the pending line: fragments are bottom aligned to the
// tallest one and placed left to right from the container's left padding.
func (l *Layouter) newline() {
	line := l.Target.Fragments[l.lineStartIndex:]
	lineHeight := 0
	for _, f := range line {
		if f.LayoutedHeight > lineHeight {
			lineHeight = f.LayoutedHeight
		}
	}
	x := l.Target.ComputedStyle().PaddingLeft
	for _, f := range line {
		f.LayoutedY = l.currentY + lineHeight - f.LayoutedHeight
		f.LayoutedX = x
		x += f.LayoutedWidth
	}
	if len(line) > 0 {
		l.logger.Debug("newline", zap.Int("fragments", len(line)), zap.Int("y", l.currentY), zap.Int("height", lineHeight))
	}

	l.lineStartIndex = len(l.Target.Fragments)
	l.currentX = 0
	l.currentY += lineHeight
}

// Reflow lays out target with a fresh Layouter.
func Reflow(target *html.Element, opts ...Option) {
	New(target, opts...).Reflow()
}

// ParseBlockWidthMode maps a configuration value to a BlockWidthMode.
func ParseBlockWidthMode(s string) (BlockWidthMode, bool) {
	switch s {
	case "", "legacy":
		return BlockWidthLegacy, true
	case "right-margin":
		return BlockWidthRightMargin, true
	}
	return BlockWidthLegacy, false
}
