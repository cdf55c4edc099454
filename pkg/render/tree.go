package render

import (
	"fmt"

	tp "github.com/xlab/treeprint"

	"tml/pkg/html"
)

// Tree renders the element tree below root. Elements show their kind and
// id, text leaves their quoted content. With geometry set, each node also
// carries its laid-out box.
func Tree(root *html.Element, geometry bool) string {
	printer := tp.New()
	addTreeNode(printer, root, geometry)
	return printer.String()
}

func addTreeNode(printer tp.Tree, e *html.Element, geometry bool) {
	label := e.KindName()
	if e.IsText() {
		label = fmt.Sprintf("%q", e.Value)
	} else if e.ID != "" {
		label += "#" + e.ID
	}
	if geometry {
		label += fmt.Sprintf(" (%d,%d %dx%d)", e.LayoutedX, e.LayoutedY, e.LayoutedWidth, e.LayoutedHeight)
	}
	if len(e.Children) == 0 {
		printer.AddNode(label)
		return
	}
	branch := printer.AddBranch(label)
	for _, child := range e.Children {
		addTreeNode(branch, child, geometry)
	}
}
