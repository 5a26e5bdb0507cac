package pdfword

import (
	"github.com/tsawler/pdfword/layout"
	"github.com/tsawler/pdfword/model"
	"github.com/tsawler/pdfword/tables"
)

// PageLayout is one page's reconstructed lines, top to bottom.
type PageLayout struct {
	Number int
	Width  float64
	Lines  []*layout.Line
}

// Assembler turns page layouts into document nodes.
type Assembler struct {
	Tables *tables.Detector
	Styles layout.StyleInferencer
}

// NewAssembler creates an assembler with the default detector and
// inferencer.
func NewAssembler() *Assembler {
	return &Assembler{
		Tables: tables.NewDetector(),
		Styles: layout.NewFontNameInferencer(),
	}
}

// AssemblePage emits one Table node per table candidate and one Paragraph
// per remaining non-blank line, in the lines' vertical order.
func (a *Assembler) AssemblePage(page PageLayout) []model.Node {
	candidates := a.Tables.Detect(page.Lines)

	var nodes []model.Node
	next := 0 // index of the next unvisited candidate
	for i := 0; i < len(page.Lines); i++ {
		if next < len(candidates) && candidates[next].Start == i {
			c := candidates[next]
			nodes = append(nodes, &model.Table{
				Rows:    c.Cells(),
				Columns: c.Columns,
			})
			i = c.End
			next++
			continue
		}

		line := page.Lines[i]
		if line.IsBlank() {
			continue
		}
		style := a.Styles.Infer(line, page.Width)
		nodes = append(nodes, &model.Paragraph{
			Runs:      []model.StyledText{style.StyledText(line.Text())},
			Alignment: style.Alignment,
			Heading:   style.Heading,
		})
	}
	return nodes
}

// Assemble concatenates the pages with a PageBreak between each pair and
// applies the paragraph floor.
func (a *Assembler) Assemble(pages []PageLayout) []model.Node {
	var nodes []model.Node
	for i, p := range pages {
		if i > 0 {
			nodes = append(nodes, &model.PageBreak{})
		}
		nodes = append(nodes, a.AssemblePage(p)...)
	}
	nodes, _ = EnsureParagraph(nodes)
	return nodes
}

// EnsureParagraph appends an empty Paragraph when nodes hold none, so the
// serialised package always has a body paragraph. added reports whether
// the floor paragraph was inserted.
func EnsureParagraph(nodes []model.Node) (out []model.Node, added bool) {
	for _, n := range nodes {
		if n.Kind() == model.KindParagraph {
			return nodes, false
		}
	}
	return append(nodes, &model.Paragraph{}), true
}
