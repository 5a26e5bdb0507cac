package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdfword/format"
	"github.com/tsawler/pdfword/model"
)

// ErrNotPDF is returned when the input carries no PDF header.
var ErrNotPDF = errors.New("not a PDF file")

// maxInheritDepth bounds the /Parent walk when resolving inherited page
// attributes, so a cyclic page tree cannot loop forever.
const maxInheritDepth = 32

// PDFParser is the default Parser, backed by github.com/ledongthuc/pdf.
// It holds no state between calls and is safe for concurrent use.
type PDFParser struct {
	config Config
}

// NewPDFParser creates a parser with default merge thresholds.
func NewPDFParser() *PDFParser {
	return &PDFParser{config: DefaultConfig()}
}

// NewPDFParserWithConfig creates a parser with custom merge thresholds.
func NewPDFParserWithConfig(config Config) *PDFParser {
	return &PDFParser{config: config}
}

// Config returns the parser's merge thresholds.
func (p *PDFParser) Config() Config {
	return p.config
}

// Parse reads every page of data. The underlying library panics on some
// malformed streams; those panics are returned as errors.
func (p *PDFParser) Parse(data []byte) (src *Source, err error) {
	offset := format.PDFHeaderOffset(data)
	if offset < 0 {
		return nil, ErrNotPDF
	}
	data = data[offset:]

	defer func() {
		if r := recover(); r != nil {
			src = nil
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}

	src = &Source{
		Metadata: readMetadata(reader.Trailer().Key("Info")),
	}

	numPages := reader.NumPage()
	src.Pages = make([]Page, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page, err := p.parsePage(reader.Page(i), i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		src.Pages = append(src.Pages, page)
	}

	return src, nil
}

func (p *PDFParser) parsePage(pg pdf.Page, number int) (page Page, err error) {
	page = Page{
		Number: number,
		Width:  DefaultPageWidth,
		Height: DefaultPageHeight,
	}
	if pg.V.IsNull() {
		return page, nil
	}

	if w, h, ok := mediaBox(pg.V); ok {
		page.Width, page.Height = w, h
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("content stream: %v", r)
		}
	}()

	content := pg.Content()
	glyphs := make([]Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, Glyph{
			Text:     t.S,
			X:        t.X,
			Y:        t.Y,
			Width:    t.W,
			FontSize: t.FontSize,
			FontName: t.Font,
		})
	}
	page.Runs = MergeGlyphs(glyphs, p.config)

	return page, nil
}

// mediaBox resolves the page's MediaBox, following /Parent links since the
// attribute is inheritable from the page tree.
func mediaBox(v pdf.Value) (width, height float64, ok bool) {
	for depth := 0; depth < maxInheritDepth && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() >= 4 {
			llx, lly := box.Index(0).Float64(), box.Index(1).Float64()
			urx, ury := box.Index(2).Float64(), box.Index(3).Float64()
			width, height = urx-llx, ury-lly
			if width < 0 {
				width = -width
			}
			if height < 0 {
				height = -height
			}
			if width == 0 || height == 0 {
				return 0, 0, false
			}
			return width, height, true
		}
		v = v.Key("Parent")
	}
	return 0, 0, false
}

func readMetadata(info pdf.Value) model.Metadata {
	if info.IsNull() {
		return model.Metadata{}
	}
	field := func(key string) string {
		return strings.TrimSpace(info.Key(key).Text())
	}
	return model.Metadata{
		Title:    field("Title"),
		Author:   field("Author"),
		Subject:  field("Subject"),
		Creator:  field("Creator"),
		Producer: field("Producer"),
	}
}
