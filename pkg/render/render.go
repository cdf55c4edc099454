package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"tml/pkg/css"
	"tml/pkg/html"
)

// Options controls raster output.
type Options struct {
	// Scale multiplies every coordinate. Zero means 1.
	Scale float64
	// Outlines draws a one pixel frame around every fragment.
	Outlines bool
}

// DefaultOptions draws outlines at scale 1.
var DefaultOptions = Options{Scale: 1, Outlines: true}

// Renderer paints a laid-out tree onto a raster image.
type Renderer struct {
	context *gg.Context
	opts    Options
}

// NewRenderer sizes the canvas to root's laid-out box.
func NewRenderer(root *html.Element, opts Options) *Renderer {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	w := int(float64(root.LayoutedWidth) * opts.Scale)
	h := int(float64(root.LayoutedHeight) * opts.Scale)
	return &Renderer{context: gg.NewContext(max(w, 1), max(h, 1)), opts: opts}
}

// Render clears the canvas and paints root and its fragments.
func (r *Renderer) Render(root *html.Element) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()
	r.context.Push()
	r.context.Scale(r.opts.Scale, r.opts.Scale)
	r.drawBox(root, -float64(root.LayoutedX), -float64(root.LayoutedY))
	r.context.Pop()
}

// drawBox paints e whose container's outer box starts at (ox, oy). Fragment
// positions are relative to that origin.
func (r *Renderer) drawBox(e *html.Element, ox, oy float64) {
	x := ox + float64(e.LayoutedX)
	y := oy + float64(e.LayoutedY)
	w := float64(e.LayoutedWidth)
	h := float64(e.LayoutedHeight)

	if !e.IsText() {
		r.drawBackground(e, x, y, w, h)
	}
	if r.opts.Outlines {
		r.context.SetRGB(0, 0, 0)
		r.context.SetLineWidth(1)
		r.context.DrawRectangle(x+0.5, y+0.5, w-1, h-1)
		r.context.Stroke()
	}
	if e.IsText() {
		r.drawText(e, x, y, w)
		return
	}
	for _, f := range e.Fragments {
		r.drawBox(f, x, y)
	}
}

func (r *Renderer) drawBackground(e *html.Element, x, y, w, h float64) {
	g, ok := e.ComputedStyle().BackgroundGradient()
	if !ok || w <= 0 || h <= 0 {
		return
	}
	var fill gg.Gradient
	switch g.Direction {
	case css.ToTop:
		fill = gg.NewLinearGradient(x, y+h, x, y)
	case css.ToRight:
		fill = gg.NewLinearGradient(x, y, x+w, y)
	case css.ToLeft:
		fill = gg.NewLinearGradient(x+w, y, x, y)
	default:
		fill = gg.NewLinearGradient(x, y, x, y+h)
	}
	for _, stop := range g.ColorStops {
		fill.AddColorStop(stop.Offset, toRGBA(stop.Color))
	}
	r.context.SetFillStyle(fill)
	r.context.DrawRectangle(x, y, w, h)
	r.context.Fill()
}

// drawText uses the canvas' built-in face, so glyphs do not follow the
// fragment's font size; the box geometry does.
func (r *Renderer) drawText(e *html.Element, x, y, w float64) {
	if e.Value == "" {
		return
	}
	style := e.TextStyle()
	r.context.SetRGB(style.TextColor().RGB())

	fontSize := float64(e.FontSize())
	textX := x
	switch style.GetTextAlign() {
	case "center":
		tw, _ := r.context.MeasureString(e.Value)
		textX = x + (w-tw)/2
	case "right":
		tw, _ := r.context.MeasureString(e.Value)
		textX = x + w - tw
	}
	textY := y + float64(style.PaddingTop) + fontSize
	r.context.DrawString(e.Value, textX, textY)

	if style.GetTextDecoration() == "underline" {
		tw, _ := r.context.MeasureString(e.Value)
		r.context.SetLineWidth(1)
		r.context.DrawLine(textX, textY+1.5, textX+tw, textY+1.5)
		r.context.Stroke()
	}
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

// EncodePNG writes the canvas as PNG.
func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

func toRGBA(c css.Color) color.Color {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// WritePNG renders root and writes it to w as PNG.
func WritePNG(w io.Writer, root *html.Element, opts Options) error {
	r := NewRenderer(root, opts)
	r.Render(root)
	return r.EncodePNG(w)
}

// SavePNG renders root to a PNG file.
func SavePNG(filename string, root *html.Element, opts Options) error {
	r := NewRenderer(root, opts)
	r.Render(root)
	return r.SavePNG(filename)
}
