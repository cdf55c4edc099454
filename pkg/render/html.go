package render

import (
	"bufio"
	"fmt"
	gohtml "html"
	"io"
	"strings"

	"tml/pkg/html"
)

const htmlHeader = "<html><body><style>.def{ position: absolute; } .inner{ position: relative; }</style>\n"

// WriteHTML writes the laid-out tree below root as nested absolutely
// positioned boxes, one per fragment. Open the result in a browser to
// inspect the computed geometry.
func WriteHTML(w io.Writer, root *html.Element) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(htmlHeader)
	writeHTMLBox(bw, root, 0)
	bw.WriteString("</body></html>\n")
	return bw.Flush()
}

// HTML returns the WriteHTML output as a string.
func HTML(root *html.Element) string {
	var sb strings.Builder
	WriteHTML(&sb, root)
	return sb.String()
}

func writeHTMLBox(w *bufio.Writer, e *html.Element, level int) {
	indent := strings.Repeat("  ", level)
	w.WriteString(indent)
	fmt.Fprintf(w, "<div id='%s' class='def' style='outline: solid black 1px; left:%dpx; top:%dpx; width:%dpx; height:%dpx;",
		gohtml.EscapeString(e.ID), e.LayoutedX, e.LayoutedY, e.LayoutedWidth, e.LayoutedHeight)
	if e.IsText() {
		fmt.Fprintf(w, " font-size: %dpx;'><div class='inner'>\n", e.FontSize())
		w.WriteString(indent)
		w.WriteString(gohtml.EscapeString(e.Value))
		w.WriteByte('\n')
	} else {
		w.WriteString("'><div class='inner'>\n")
		for _, f := range e.Fragments {
			writeHTMLBox(w, f, level+1)
		}
	}
	w.WriteString(indent)
	w.WriteString("</div></div>\n")
}
