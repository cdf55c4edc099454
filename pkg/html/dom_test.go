package html

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tml/pkg/css"
)

func makeTree() *Element {
	// <div id="parent"><span>hello</span><p>world</p></div>
	parent := NewBlock("div")
	parent.ID = "parent"

	span := NewInline("span")
	span.AppendText("hello")
	parent.AddChild(span)

	p := NewBlock("p")
	p.AppendText("world")
	parent.AddChild(p)

	return parent
}

func TestAddChild(t *testing.T) {
	parent := makeTree()
	if len(parent.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(parent.Children))
	}
	for _, child := range parent.Children {
		if child.Parent != parent {
			t.Errorf("%s: parent not set", child.KindName())
		}
	}
	text := parent.Children[0].Children[0]
	if !text.IsText() || text.Value != "hello" || text.Parent != parent.Children[0] {
		t.Error("AppendText should add a text leaf")
	}
}

func TestFindByID(t *testing.T) {
	parent := makeTree()
	parent.Children[1].ID = "world"
	if got := parent.FindByID("world"); got != parent.Children[1] {
		t.Errorf("expected <p>, got %v", got)
	}
	if got := parent.FindByID("parent"); got != parent {
		t.Error("FindByID should match the receiver")
	}
	if got := parent.FindByID("missing"); got != nil {
		t.Errorf("expected nil, got %s", got.KindName())
	}
}

func TestApplyAttribute(t *testing.T) {
	e := NewBlock("div")
	known, err := e.ApplyAttribute("width", " 42 ")
	if !known || err != nil {
		t.Fatalf("width: known=%v err=%v", known, err)
	}
	if e.Width != 42 {
		t.Errorf("expected width 42, got %d", e.Width)
	}
	if known, err := e.ApplyAttribute("height", "tall"); !known || err == nil {
		t.Errorf("expected an error for a non-integer height, got known=%v err=%v", known, err)
	}
	if known, err := e.ApplyAttribute("onclick", "x"); known || err != nil {
		t.Errorf("expected unknown attribute, got known=%v err=%v", known, err)
	}
	if _, err := e.ApplyAttribute("style", "margin-left: 4;"); err != nil {
		t.Fatalf("style: %v", err)
	}
	if e.InlineStyle == nil || e.InlineStyle.MarginLeft != 4 {
		t.Errorf("expected inline margin-left 4, got %v", e.InlineStyle)
	}
}

func TestApplyStyle_ClassAndInline(t *testing.T) {
	doc, err := Parse(`<style>
p { margin-left: 1; margin-top: 1; }
wide { margin-left: 5; }
</style><p id="a" class="wide">x</p><p id="b" class="wide" style="margin-left: 9;">y</p>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := doc.FindByID("a")
	if a.Style.MarginLeft != 5 || a.Style.MarginTop != 1 {
		t.Errorf("class should override tag: %s", a.Style)
	}
	b := doc.FindByID("b")
	if b.Style.MarginLeft != 9 || b.Style.MarginTop != 1 {
		t.Errorf("inline style should override class: %s", b.Style)
	}
	if !b.Style.IsSealed() {
		t.Error("resolved styles must be sealed")
	}
	if text := a.Children[0]; text.Style == nil || !text.Style.IsSealed() {
		t.Error("text leaves get a style too")
	}
}

func TestFontSize_Inheritance(t *testing.T) {
	doc, err := Parse(`<style>
div { font-size: 20; }
small { font-scale: 50; }
tall { line-height: 30; }
</style><div id="d"><p id="p">x<span id="s" class="small">y</span></p></div><p id="q" class="tall">z</p>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tests := []struct {
		id         string
		fontSize   int
		lineHeight int
	}{
		{"d", 20, 0},
		{"p", 20, 0},
		{"s", 10, 0},
		{"q", css.DefaultFontSize, 30},
	}
	for _, tt := range tests {
		e := doc.FindByID(tt.id)
		if got := e.FontSize(); got != tt.fontSize {
			t.Errorf("#%s: expected font size %d, got %d", tt.id, tt.fontSize, got)
		}
		if got := e.LineHeight(); got != tt.lineHeight {
			t.Errorf("#%s: expected line height %d, got %d", tt.id, tt.lineHeight, got)
		}
	}
	if got := doc.FindByID("p").Children[0].FontSize(); got != 20 {
		t.Errorf("text should inherit font size 20, got %d", got)
	}
	if got := doc.FindByID("q").Children[0].LineHeight(); got != 30 {
		t.Errorf("text should inherit line height 30, got %d", got)
	}
}

func TestFontSize_ScaleReachesText(t *testing.T) {
	doc, err := Parse(`<style>
div { font-size: 20; }
big { font-scale: 200; }
half { font-scale: 50; }
</style><p id="a" class="big">x</p><div><span id="b" class="half">y<span id="c" class="big">z</span></span></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tests := []struct {
		id   string
		want int
	}{
		{"a", 20},
		{"b", 10},
		{"c", 20},
	}
	for _, tt := range tests {
		e := doc.FindByID(tt.id)
		if got := e.FontSize(); got != tt.want {
			t.Errorf("#%s: expected font size %d, got %d", tt.id, tt.want, got)
		}
		if got := e.Children[0].FontSize(); got != tt.want {
			t.Errorf("text in #%s: expected font size %d, got %d", tt.id, tt.want, got)
		}
	}
}

func TestTextStyle_Inheritance(t *testing.T) {
	doc, err := Parse(`<style>
p { color: 'red'; text-decoration: 'underline'; }
right { text-align: 'right'; color: 'blue'; }
</style><p id="a">x<span class="right">y</span></p><div id="b">z</div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := doc.FindByID("a")
	tests := []struct {
		name       string
		e          *Element
		color      string
		align      string
		decoration string
	}{
		{"text in p", a.Children[0], "red", "", "underline"},
		{"text in span", a.Children[1].Children[0], "blue", "right", "underline"},
		{"unstyled text", doc.FindByID("b").Children[0], "", "", ""},
	}
	for _, tt := range tests {
		s := tt.e.TextStyle()
		if s.GetColor() != tt.color || s.GetTextAlign() != tt.align || s.GetTextDecoration() != tt.decoration {
			t.Errorf("%s: got color=%q align=%q decoration=%q", tt.name, s.GetColor(), s.GetTextAlign(), s.GetTextDecoration())
		}
	}
	if a.Children[0].Style.GetColor() != "" {
		t.Error("TextStyle must not modify the element's own style")
	}
}

func TestApplyAttributeWith_ReportsUnknownStyleKeys(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rules := css.NewSheetParser(css.WithLogger(zap.New(core)))
	e := NewBlock("div")
	if _, err := e.ApplyAttributeWith(rules, "style", "hoge: 1; margin-top: 2;"); err != nil {
		t.Fatalf("style: %v", err)
	}
	if e.InlineStyle.MarginTop != 2 {
		t.Errorf("expected inline margin-top 2, got %d", e.InlineStyle.MarginTop)
	}
	if got := logs.FilterMessage("unknown style key").Len(); got != 1 {
		t.Errorf("expected 1 warning, got %d", got)
	}
}

func TestFontSize_Unstyled(t *testing.T) {
	e := NewText("x")
	if got := e.FontSize(); got != css.DefaultFontSize {
		t.Errorf("expected default font size, got %d", got)
	}
}

func TestLayoutedInner(t *testing.T) {
	e := NewBlock("div")
	e.Style = (&css.Style{PaddingLeft: 1, PaddingRight: 2, PaddingTop: 3, PaddingBottom: 4}).Seal()
	e.LayoutedX, e.LayoutedY = 10, 20
	e.LayoutedWidth, e.LayoutedHeight = 100, 50

	if e.LayoutedInnerX() != 11 || e.LayoutedInnerY() != 23 {
		t.Errorf("inner origin: got (%d,%d)", e.LayoutedInnerX(), e.LayoutedInnerY())
	}
	if e.LayoutedInnerWidth() != 97 || e.LayoutedInnerHeight() != 43 {
		t.Errorf("inner size: got %dx%d", e.LayoutedInnerWidth(), e.LayoutedInnerHeight())
	}
}

func TestDump(t *testing.T) {
	doc, err := Parse(`<div><p>hoge<span>fuga</span></p></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Document\n" +
		"  Block(div)\n" +
		"    Block(p)\n" +
		"      hoge\n" +
		"      Inline(span)\n" +
		"        fuga\n"
	if got := doc.Dump(); got != want {
		t.Errorf("unexpected dump:\n%s\nwant:\n%s", got, want)
	}
}
