package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/tsawler/pdfword/model"
)

// Page geometry in twips (A4 with half-inch margins).
const (
	pageWidth    = 11906
	pageHeight   = 16838
	pageMargin   = 720
	contentWidth = pageWidth - 2*pageMargin

	paragraphAfter = 120
	tablePctWidth  = 5000 // fiftieths of a percent, i.e. 100%
)

// Default core property values.
const (
	DefaultCreator     = "pdfword"
	DefaultDescription = "Converted from PDF with preserved formatting"
)

// zipTime is stamped on every entry so identical documents produce
// identical archives.
var zipTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Writer serialises a model.Document into a DOCX package.
type Writer struct {
	Creator     string
	Description string
}

// NewWriter creates a writer with the default core properties.
func NewWriter() *Writer {
	return &Writer{
		Creator:     DefaultCreator,
		Description: DefaultDescription,
	}
}

// part is one named entry of the package.
type part struct {
	name string
	body any
}

// Write encodes doc as a DOCX package onto out. Nothing is written to out
// when any part fails to encode.
func (w *Writer) Write(out io.Writer, doc *model.Document) error {
	data, err := w.Bytes(doc)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("writing package: %w", err)
	}
	return nil
}

// Bytes returns doc encoded as a DOCX package.
func (w *Writer) Bytes(doc *model.Document) ([]byte, error) {
	if doc == nil {
		doc = model.NewDocument()
	}

	parts := []part{
		{"[Content_Types].xml", buildContentTypes()},
		{"_rels/.rels", buildPackageRels()},
		{"word/document.xml", buildDocument(doc.Nodes)},
		{"word/styles.xml", buildStyles()},
		{"word/settings.xml", buildSettings()},
		{"word/_rels/document.xml.rels", buildDocumentRels()},
		{"docProps/core.xml", w.buildCore(doc.Metadata)},
		{"docProps/app.xml", buildApp(doc)},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		if err := writePart(zw, p); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing package: %w", err)
	}
	return buf.Bytes(), nil
}

func writePart(zw *zip.Writer, p part) error {
	data, err := xml.Marshal(p.body)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", p.name, err)
	}
	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:     p.name,
		Method:   zip.Deflate,
		Modified: zipTime,
	})
	if err != nil {
		return fmt.Errorf("creating %s: %w", p.name, err)
	}
	if _, err := io.WriteString(fw, xml.Header); err != nil {
		return fmt.Errorf("writing %s: %w", p.name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", p.name, err)
	}
	return nil
}

func buildContentTypes() *contentTypes {
	const (
		ctRels     = "application/vnd.openxmlformats-package.relationships+xml"
		ctXML      = "application/xml"
		ctDocument = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
		ctStyles   = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
		ctSettings = "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"
		ctCore     = "application/vnd.openxmlformats-package.core-properties+xml"
		ctApp      = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	)
	return &contentTypes{
		Xmlns: nsTypes,
		Defaults: []contentDefault{
			{Extension: "rels", ContentType: ctRels},
			{Extension: "xml", ContentType: ctXML},
		},
		Overrides: []contentOverride{
			{PartName: "/word/document.xml", ContentType: ctDocument},
			{PartName: "/word/styles.xml", ContentType: ctStyles},
			{PartName: "/word/settings.xml", ContentType: ctSettings},
			{PartName: "/docProps/core.xml", ContentType: ctCore},
			{PartName: "/docProps/app.xml", ContentType: ctApp},
		},
	}
}

func buildPackageRels() *relationshipsXML {
	return &relationshipsXML{
		Xmlns: nsPkgRels,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: nsR + "/officeDocument", Target: "word/document.xml"},
			{ID: "rId2", Type: nsCP, Target: "docProps/core.xml"},
			{ID: "rId3", Type: nsR + "/extended-properties", Target: "docProps/app.xml"},
		},
	}
}

func buildDocumentRels() *relationshipsXML {
	return &relationshipsXML{
		Xmlns: nsPkgRels,
		Relationships: []relationshipXML{
			{ID: "rId1", Type: nsR + "/styles", Target: "styles.xml"},
			{ID: "rId2", Type: nsR + "/settings", Target: "settings.xml"},
		},
	}
}

func buildSettings() *wSettings {
	s := &wSettings{
		XmlnsW:         nsW,
		DefaultTabStop: wVal{Val: "720"},
	}
	s.Compat.Setting.Name = "compatibilityMode"
	s.Compat.Setting.URI = "http://schemas.microsoft.com/office/word"
	s.Compat.Setting.Val = "15"
	return s
}

func (w *Writer) buildCore(meta model.Metadata) *coreProperties {
	creator := w.Creator
	if creator == "" {
		creator = DefaultCreator
	}
	return &coreProperties{
		XmlnsCP:        nsCP,
		XmlnsDC:        nsDC,
		XmlnsDCTerms:   nsDCTerms,
		XmlnsDCMIType:  nsDCMIType,
		XmlnsXSI:       nsXSI,
		Title:          meta.Title,
		Subject:        meta.Subject,
		Creator:        creator,
		Description:    w.Description,
		LastModifiedBy: creator,
		Revision:       "1",
	}
}

func buildApp(doc *model.Document) *appProperties {
	pages := doc.PageCount
	if pages < 1 {
		pages = 1
	}
	return &appProperties{
		Xmlns:       nsExtended,
		XmlnsVT:     nsVT,
		Application: DefaultCreator,
		DocSecurity: "0",
		Pages:       strconv.Itoa(pages),
		Paragraphs:  strconv.Itoa(doc.Count(model.KindParagraph)),
	}
}

func buildStyles() *wStyles {
	s := &wStyles{XmlnsW: nsW}
	s.DocDefaults.RPrDefault.RPr = wRPr{
		Fonts:  &wFonts{ASCII: "Calibri", HAnsi: "Calibri", EastAsia: "Calibri", CS: "Calibri"},
		Size:   &wVal{Val: "24"},
		SizeCs: &wVal{Val: "24"},
	}
	s.DocDefaults.PPrDefault.PPr = wPPr{
		Spacing: &wSpacing{After: strconv.Itoa(paragraphAfter), Line: "276", LineRule: "auto"},
	}
	s.Styles = []wStyle{
		{
			Type:    "paragraph",
			Default: "1",
			StyleID: "Normal",
			Name:    wVal{Val: "Normal"},
			QFormat: &wEmpty{},
			PPr:     &wPPr{Spacing: &wSpacing{Line: "276", LineRule: "auto"}},
		},
		headingStyle("Heading1", "heading 1", 0, 36, "240"),
		headingStyle("Heading2", "heading 2", 1, 28, "200"),
		{
			Type:    "table",
			Default: "1",
			StyleID: "TableNormal",
			Name:    wVal{Val: "Normal Table"},
		},
	}
	return s
}

func headingStyle(id, name string, level, halfPoints int, before string) wStyle {
	size := strconv.Itoa(halfPoints)
	return wStyle{
		Type:    "paragraph",
		StyleID: id,
		Name:    wVal{Val: name},
		BasedOn: &wVal{Val: "Normal"},
		Next:    &wVal{Val: "Normal"},
		QFormat: &wEmpty{},
		PPr: &wPPr{
			KeepNext:   &wEmpty{},
			Spacing:    &wSpacing{Before: before, After: strconv.Itoa(paragraphAfter)},
			OutlineLvl: &wVal{Val: strconv.Itoa(level)},
		},
		RPr: &wRPr{
			Bold:   &wEmpty{},
			Size:   &wVal{Val: size},
			SizeCs: &wVal{Val: size},
		},
	}
}

// buildDocument lays out the body. The body always holds at least one
// paragraph and never ends with a table.
func buildDocument(nodes []model.Node) *wDocument {
	var content []any
	for _, node := range nodes {
		switch n := node.(type) {
		case *model.Paragraph:
			content = append(content, buildParagraph(n))
		case *model.Table:
			if t := buildTable(n); t != nil {
				content = append(content, t)
			}
		case *model.PageBreak:
			content = append(content, &wParagraph{
				Runs: []wRun{{Break: &wBreak{Type: "page"}}},
			})
		}
	}

	if len(content) == 0 {
		content = append(content, &wParagraph{})
	} else if _, ok := content[len(content)-1].(*wTable); ok {
		content = append(content, &wParagraph{})
	}

	return &wDocument{
		XmlnsW: nsW,
		XmlnsR: nsR,
		Body: wBody{
			Content: content,
			SectPr: wSectPr{
				PgSz: wPageSize{W: strconv.Itoa(pageWidth), H: strconv.Itoa(pageHeight)},
				PgMar: wPageMargins{
					Top:    strconv.Itoa(pageMargin),
					Right:  strconv.Itoa(pageMargin),
					Bottom: strconv.Itoa(pageMargin),
					Left:   strconv.Itoa(pageMargin),
					Header: "708",
					Footer: "708",
					Gutter: "0",
				},
			},
		},
	}
}

func buildParagraph(p *model.Paragraph) *wParagraph {
	ppr := &wPPr{
		Spacing: &wSpacing{After: strconv.Itoa(paragraphAfter)},
		Jc:      &wVal{Val: p.Alignment.String()},
	}
	if id := p.Heading.StyleID(); id != "" {
		ppr.PStyle = &wVal{Val: id}
	}

	para := &wParagraph{PPr: ppr}
	for _, r := range p.Runs {
		para.Runs = append(para.Runs, buildRun(r))
	}
	return para
}

func buildRun(r model.StyledText) wRun {
	rpr := &wRPr{}
	if r.Bold {
		rpr.Bold = &wEmpty{}
	}
	if r.Italic {
		rpr.Italic = &wEmpty{}
	}
	if hp := r.HalfPoints(); hp > 0 {
		v := strconv.Itoa(hp)
		rpr.Size = &wVal{Val: v}
		rpr.SizeCs = &wVal{Val: v}
	}
	if r.Underline {
		rpr.Underline = &wVal{Val: "single"}
	}
	if *rpr == (wRPr{}) {
		rpr = nil
	}
	return wRun{
		RPr:  rpr,
		Text: &wText{Space: "preserve", Value: r.Text},
	}
}

func cellBorders(inner bool) wBorders {
	b := &wBorder{Val: "single", Sz: "4", Space: "0", Color: "auto"}
	borders := wBorders{Top: b, Left: b, Bottom: b, Right: b}
	if inner {
		borders.InsideH = b
		borders.InsideV = b
	}
	return borders
}

// buildTable returns nil for a table without cells.
func buildTable(t *model.Table) *wTable {
	cols := t.ColCount()
	if cols == 0 {
		return nil
	}
	colWidth := strconv.Itoa(contentWidth / cols)

	tbl := &wTable{
		TblPr: wTblPr{
			Width:   wWidth{W: strconv.Itoa(tablePctWidth), Type: "pct"},
			Borders: cellBorders(true),
			Layout:  wLayout{Type: "fixed"},
		},
	}
	for i := 0; i < cols; i++ {
		tbl.Grid.Cols = append(tbl.Grid.Cols, wGridCol{W: colWidth})
	}

	for r := range t.Rows {
		var row wRow
		for c := 0; c < cols; c++ {
			para := wParagraph{}
			if text := t.Cell(r, c); text != "" {
				para.Runs = []wRun{buildRun(model.StyledText{Text: text})}
			}
			row.Cells = append(row.Cells, wCell{
				TcPr: wTcPr{
					Width:   wWidth{W: colWidth, Type: "dxa"},
					Borders: cellBorders(false),
				},
				Paras: []wParagraph{para},
			})
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}
