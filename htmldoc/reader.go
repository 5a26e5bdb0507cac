// Package htmldoc converts between the document model and HTML.
//
// [Render] produces the preview the browser editor loads. [Parse] reads the
// edited HTML back into a [model.Document] so it can be saved as DOCX:
//
//	page, _ := htmldoc.Render(doc)
//	// ... user edits page in the browser ...
//	edited, err := htmldoc.Parse(bytes.NewReader(page))
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/pdfword/model"
)

// Open parses an HTML file into a document.
func Open(filename string) (*model.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads HTML into a document. Block elements become paragraphs,
// h1 maps to Heading1 and h2 to h6 map to Heading2, tables keep their cell
// text and an hr with the page-break class becomes a PageBreak. Inline
// formatting comes from tags (strong, b, em, i, u) and from inline styles.
func Parse(r io.Reader) (*model.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc := model.NewDocument()
	if head := findElement(root, "head"); head != nil {
		extractHead(head, &doc.Metadata)
	}

	body := findElement(root, "body")
	if body == nil {
		// No body tag, try to extract from root
		body = root
	}
	p := &parser{doc: doc}
	p.traverseChildren(body)
	p.flushLoose()

	doc.PageCount = doc.Count(model.KindPageBreak) + 1
	return doc, nil
}

// extractHead extracts the title and author meta tag.
func extractHead(head *html.Node, meta *model.Metadata) {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "title":
			meta.Title = getTextContent(c)
		case "meta":
			if strings.EqualFold(getAttr(c, "name"), "author") {
				meta.Author = strings.TrimSpace(getAttr(c, "content"))
			}
		}
	}
}

type parser struct {
	doc *model.Document
	// loose collects inline content met directly inside a container,
	// such as bare text between block elements.
	loose []model.StyledText
}

func (p *parser) traverseChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.traverseNode(c)
	}
}

// traverseNode recursively processes DOM nodes.
func (p *parser) traverseNode(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		p.loose = appendRun(p.loose, model.StyledText{Text: flattenSpace(n.Data)})
		return
	case html.ElementNode:
	default:
		p.traverseChildren(n)
		return
	}

	if shouldSkipElement(n.Data) {
		return
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		para := p.paragraph(n)
		para.Heading = model.Heading2
		if n.Data == "h1" {
			para.Heading = model.Heading1
		}
		p.emit(para)

	case "p", "li", "blockquote", "pre":
		p.emit(p.paragraph(n))

	case "div", "section", "article", "main", "header", "footer", "ul", "ol":
		if isBlockContainer(n) {
			p.flushLoose()
			p.traverseChildren(n)
			p.flushLoose()
			return
		}
		p.emit(p.paragraph(n))

	case "table":
		if table := parseTable(n); table.RowCount() > 0 {
			p.emit(table)
		}

	case "hr":
		if hasClass(n, ClassPageBreak) {
			p.emit(&model.PageBreak{})
		}

	case "br":
		p.flushLoose()

	default:
		// Inline element at block level
		f := format{}.apply(n.Data, parseStyle(getAttr(n, "style")))
		p.loose = collectRuns(n, f, p.loose)
	}
}

// emit appends node after any pending loose content.
func (p *parser) emit(node model.Node) {
	p.flushLoose()
	p.doc.Append(node)
}

func (p *parser) flushLoose() {
	runs := trimRuns(p.loose)
	p.loose = nil
	if len(runs) > 0 {
		p.doc.Append(&model.Paragraph{Runs: runs})
	}
}

// paragraph builds a paragraph from a block element's inline content.
func (p *parser) paragraph(n *html.Node) *model.Paragraph {
	style := parseStyle(getAttr(n, "style"))
	base := format{}.apply(n.Data, style)
	return &model.Paragraph{
		Runs:      trimRuns(collectRuns(n, base, nil)),
		Alignment: model.ParseAlignment(style["text-align"]),
	}
}

// collectRuns walks n's descendants, appending one run per text node with
// the formatting in effect. Adjacent runs with the same formatting merge.
func collectRuns(n *html.Node, f format, runs []model.StyledText) []model.StyledText {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			runs = appendRun(runs, f.run(flattenSpace(c.Data)))
		case html.ElementNode:
			if shouldSkipElement(c.Data) {
				continue
			}
			if c.Data == "br" {
				runs = appendRun(runs, f.run("\n"))
				continue
			}
			runs = collectRuns(c, f.apply(c.Data, parseStyle(getAttr(c, "style"))), runs)
		}
	}
	return runs
}

func appendRun(runs []model.StyledText, r model.StyledText) []model.StyledText {
	if r.Text == "" {
		return runs
	}
	if n := len(runs); n > 0 {
		last := &runs[n-1]
		if last.Bold == r.Bold && last.Italic == r.Italic && last.Underline == r.Underline && last.Size == r.Size {
			last.Text += r.Text
			return runs
		}
	}
	return append(runs, r)
}

// trimRuns collapses whitespace the way a browser displays it and drops
// runs left empty.
func trimRuns(runs []model.StyledText) []model.StyledText {
	out := runs[:0]
	for _, r := range runs {
		r.Text = collapseSpace(r.Text)
		if n := len(out); n > 0 && strings.HasSuffix(out[n-1].Text, " ") {
			r.Text = strings.TrimLeft(r.Text, " ")
		}
		if r.Text != "" {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil
	}
	out[0].Text = strings.TrimLeft(out[0].Text, " ")
	out[len(out)-1].Text = strings.TrimRight(out[len(out)-1].Text, " ")

	kept := out[:0]
	for _, r := range out {
		if r.Text != "" {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// collapseSpace folds runs of whitespace into one space. Newlines in s
// come from <br> and are kept; spaces next to them are dropped.
func collapseSpace(s string) string {
	lines := strings.Split(s, "\n")
	last := len(lines) - 1
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			if line != "" && last == 0 {
				lines[i] = " "
			} else {
				lines[i] = ""
			}
			continue
		}
		joined := strings.Join(fields, " ")
		if i == 0 && isSpace(rune(line[0])) {
			joined = " " + joined
		}
		if i == last && isSpace(rune(line[len(line)-1])) {
			joined += " "
		}
		lines[i] = joined
	}
	return strings.Join(lines, "\n")
}

// flattenSpace turns source newlines into spaces so only <br> breaks lines.
func flattenSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || isSpace(r) {
			return ' '
		}
		return r
	}, s)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\f'
}

// parseTable extracts cell text row by row from thead, tbody and direct tr
// children.
func parseTable(tableNode *html.Node) *model.Table {
	table := &model.Table{}

	for c := tableNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead", "tbody", "tfoot":
			for tr := c.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.Type == html.ElementNode && tr.Data == "tr" {
					table.Rows = append(table.Rows, parseTableRow(tr))
				}
			}
		case "tr":
			table.Rows = append(table.Rows, parseTableRow(c))
		}
	}

	return table
}

// parseTableRow parses a single table row.
func parseTableRow(tr *html.Node) []string {
	row := make([]string, 0)
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			row = append(row, strings.Join(strings.Fields(getTextContent(c)), " "))
		}
	}
	return row
}

// shouldSkipElement returns true if the element should be skipped during content extraction.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "img":
		return true
	}
	return false
}

// isBlockContainer returns true if the element is a block container with block-level children.
func isBlockContainer(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "div", "p", "ul", "ol", "li", "table", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "article", "section", "hr":
				return true
			}
		}
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.TrimSpace(result.String())
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		// Skip script/style content
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			result.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}

// getAttr returns the value of an attribute on a node, or empty string if not found.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
