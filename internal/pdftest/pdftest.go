// Package pdftest builds small uncompressed PDF files for tests.
//
// The files use the three standard Helvetica faces with a flat 500 unit
// glyph width, so a 12pt string advances 6pt per character.
package pdftest

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Font resource names understood by Builder.
const (
	FontRegular = "F1" // Helvetica
	FontBold    = "F2" // Helvetica-Bold
	FontItalic  = "F3" // Helvetica-Oblique
)

// GlyphWidth is the advance of every glyph in thousandths of the font size.
const GlyphWidth = 500

var baseFonts = []struct{ res, name string }{
	{FontRegular, "Helvetica"},
	{FontBold, "Helvetica-Bold"},
	{FontItalic, "Helvetica-Oblique"},
}

// Text is one string drawn at an absolute position.
type Text struct {
	Font string
	Size float64
	X, Y float64
	S    string
}

// At returns a regular 12pt Text.
func At(x, y float64, s string) Text {
	return Text{Font: FontRegular, Size: 12, X: x, Y: y, S: s}
}

type page struct {
	box   []float64 // nil inherits the page tree MediaBox
	texts []Text
}

// Builder accumulates pages and writes them as a PDF.
type Builder struct {
	Title  string
	Author string
	// Width and Height set the MediaBox on the page tree root, which every
	// page inherits unless it sets its own (default: 612x792).
	Width, Height float64
	pages         []page
}

// New creates a Builder for US Letter pages.
func New() *Builder {
	return &Builder{Width: 612, Height: 792}
}

// Page appends a page that inherits the default MediaBox.
func (b *Builder) Page(texts ...Text) *Builder {
	b.pages = append(b.pages, page{texts: texts})
	return b
}

// SizedPage appends a page with its own MediaBox.
func (b *Builder) SizedPage(width, height float64, texts ...Text) *Builder {
	b.pages = append(b.pages, page{box: []float64{0, 0, width, height}, texts: texts})
	return b
}

// Bytes renders the PDF with a valid cross-reference table.
func (b *Builder) Bytes() []byte {
	var objs []string

	// 1 catalog, 2 page tree, 3.. fonts, then info, then page/content pairs.
	fontStart := 3
	infoNum := fontStart + len(baseFonts)
	firstPage := infoNum + 1

	kids := make([]string, len(b.pages))
	for i := range b.pages {
		kids[i] = fmt.Sprintf("%d 0 R", firstPage+2*i)
	}

	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 %s %s] >>",
		strings.Join(kids, " "), len(b.pages), num(b.Width), num(b.Height)))

	widths := strings.TrimSpace(strings.Repeat(fmt.Sprintf("%d ", GlyphWidth), 95))
	var fontRefs []string
	for i, f := range baseFonts {
		objs = append(objs, fmt.Sprintf(
			"<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [%s] >>",
			f.name, widths))
		fontRefs = append(fontRefs, fmt.Sprintf("/%s %d 0 R", f.res, fontStart+i))
	}

	objs = append(objs, fmt.Sprintf("<< /Title (%s) /Author (%s) >>", escape(b.Title), escape(b.Author)))

	for i, p := range b.pages {
		contentNum := firstPage + 2*i + 1
		dict := fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << /Font << %s >> >> /Contents %d 0 R",
			strings.Join(fontRefs, " "), contentNum)
		if p.box != nil {
			dict += fmt.Sprintf(" /MediaBox [%s %s %s %s]", num(p.box[0]), num(p.box[1]), num(p.box[2]), num(p.box[3]))
		}
		objs = append(objs, dict+" >>")

		stream := contentStream(p.texts)
		objs = append(objs, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objs)+1, infoNum, xref)

	return buf.Bytes()
}

func contentStream(texts []Text) string {
	var sb strings.Builder
	for _, t := range texts {
		font := t.Font
		if font == "" {
			font = FontRegular
		}
		size := t.Size
		if size == 0 {
			size = 12
		}
		fmt.Fprintf(&sb, "BT /%s %s Tf 1 0 0 1 %s %s Tm (%s) Tj ET\n",
			font, num(size), num(t.X), num(t.Y), escape(t.S))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
