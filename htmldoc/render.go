package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/pdfword/model"
)

// Class names carried by rendered elements. Parse recognises them again.
const (
	ClassTable     = "converted"
	ClassPageBreak = "page-break"
)

// Render returns doc as a standalone HTML page for the editor preview.
func Render(doc *model.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderTo(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderTo writes doc as a standalone HTML page to w.
func RenderTo(w io.Writer, doc *model.Document) error {
	if doc == nil {
		doc = model.NewDocument()
	}

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html)
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	if doc.Metadata.Title != "" {
		title := element(atom.Title)
		title.AppendChild(text(doc.Metadata.Title))
		head.AppendChild(title)
	}
	if doc.Metadata.Author != "" {
		head.AppendChild(element(atom.Meta,
			html.Attribute{Key: "name", Val: "author"},
			html.Attribute{Key: "content", Val: doc.Metadata.Author},
		))
	}
	htmlEl.AppendChild(head)

	body := element(atom.Body)
	for _, node := range doc.Nodes {
		if n := renderNode(node); n != nil {
			body.AppendChild(n)
		}
	}
	htmlEl.AppendChild(body)
	root.AppendChild(htmlEl)

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

func renderNode(node model.Node) *html.Node {
	switch n := node.(type) {
	case *model.Paragraph:
		return renderParagraph(n)
	case *model.Table:
		return renderTable(n)
	case *model.PageBreak:
		return element(atom.Hr, html.Attribute{Key: "class", Val: ClassPageBreak})
	}
	return nil
}

func renderParagraph(p *model.Paragraph) *html.Node {
	tag := atom.P
	switch p.Heading {
	case model.Heading1:
		tag = atom.H1
	case model.Heading2:
		tag = atom.H2
	}

	var el *html.Node
	if p.Alignment == model.AlignLeft {
		el = element(tag)
	} else {
		el = element(tag, html.Attribute{Key: "style", Val: "text-align:" + p.Alignment.String()})
	}

	for _, r := range p.Runs {
		el.AppendChild(renderRun(r))
	}
	return el
}

// renderRun nests the run text inside u, em and strong, outermost first,
// and wraps the result in a sized span when the run carries a size.
func renderRun(r model.StyledText) *html.Node {
	n := text(r.Text)
	wrap := func(a atom.Atom) {
		el := element(a)
		el.AppendChild(n)
		n = el
	}
	if r.Underline {
		wrap(atom.U)
	}
	if r.Italic {
		wrap(atom.Em)
	}
	if r.Bold {
		wrap(atom.Strong)
	}
	if r.Size > 0 {
		span := element(atom.Span, html.Attribute{
			Key: "style",
			Val: "font-size:" + strconv.FormatFloat(r.Size, 'f', -1, 64) + "pt",
		})
		span.AppendChild(n)
		n = span
	}
	return n
}

func renderTable(t *model.Table) *html.Node {
	table := element(atom.Table, html.Attribute{Key: "class", Val: ClassTable})
	tbody := element(atom.Tbody)
	cols := t.ColCount()
	for r := range t.Rows {
		tr := element(atom.Tr)
		for c := 0; c < cols; c++ {
			td := element(atom.Td)
			if s := t.Cell(r, c); s != "" {
				td.AppendChild(text(s))
			}
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)
	return table
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
