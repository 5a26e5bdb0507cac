// Package docx reads and writes DOCX (Office Open XML) word-processing
// packages.
//
// [Writer] serialises a [model.Document] into a package Word opens directly.
// [Reader] parses a package back into the same node model, which keeps
// round trips and document inspection on one representation.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tsawler/pdfword/model"
)

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader *zip.Reader
	body      []bodyElement
	styles    *stylesXML
	coreProps *corePropertiesXML
	appProps  *appPropertiesXML
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return OpenBytes(data)
}

// OpenBytes parses a DOCX package held in memory.
func OpenBytes(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{zipReader: zr}

	if err := r.validate(); err != nil {
		return nil, err
	}

	// Styles first: heading detection in the body depends on them
	r.parseStyles()

	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	r.parseCoreProperties()
	r.parseAppProperties()

	return r, nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		"word/document.xml",
	}

	fileMap := make(map[string]bool)
	for _, f := range r.zipReader.File {
		fileMap[f.Name] = true
	}

	for _, name := range required {
		if !fileMap[name] {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseDocument walks <w:body> in order, keeping paragraphs and tables.
// Other children (sectPr, bookmarks, content controls) are skipped.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	inBody := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("decoding document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !inBody {
				inBody = t.Name.Local == "body"
				continue
			}
			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := dec.DecodeElement(&p, &t); err != nil {
					return fmt.Errorf("decoding paragraph: %w", err)
				}
				r.body = append(r.body, bodyElement{Paragraph: &p})
			case "tbl":
				var tbl tableXML
				if err := dec.DecodeElement(&tbl, &t); err != nil {
					return fmt.Errorf("decoding table: %w", err)
				}
				r.body = append(r.body, bodyElement{Table: &tbl})
			default:
				if err := dec.Skip(); err != nil {
					return fmt.Errorf("decoding document.xml: %w", err)
				}
			}
		case xml.EndElement:
			if inBody && t.Name.Local == "body" {
				return nil
			}
		}
	}

	if !inBody {
		return errors.New("document.xml has no body")
	}
	return nil
}

// parseStyles parses the styles definition file. Styles are optional.
func (r *Reader) parseStyles() {
	data, err := r.getFileContent("word/styles.xml")
	if err != nil {
		return
	}

	styles := &stylesXML{}
	if xml.Unmarshal(data, styles) == nil {
		r.styles = styles
	}
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent("docProps/core.xml")
	if err != nil {
		return
	}

	props := &corePropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.coreProps = props
	}
}

// parseAppProperties parses application metadata.
func (r *Reader) parseAppProperties() {
	data, err := r.getFileContent("docProps/app.xml")
	if err != nil {
		return
	}

	props := &appPropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.appProps = props
	}
}

// Metadata returns document metadata.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{}
	if r.coreProps != nil {
		meta.Title = strings.TrimSpace(r.coreProps.Title)
		meta.Author = strings.TrimSpace(r.coreProps.Creator)
		meta.Subject = strings.TrimSpace(r.coreProps.Subject)
	}
	if r.appProps != nil {
		meta.Creator = r.appProps.Application
	}
	return meta
}

// Document returns the body as a model.Document. A paragraph holding only a
// page break becomes a PageBreak node.
func (r *Reader) Document() (*model.Document, error) {
	doc := model.NewDocument()
	doc.Metadata = r.Metadata()

	for _, el := range r.body {
		switch {
		case el.Paragraph != nil:
			doc.Append(r.convertParagraph(el.Paragraph))
		case el.Table != nil:
			doc.Append(convertTable(el.Table))
		}
	}

	doc.PageCount = doc.Count(model.KindPageBreak) + 1
	if r.appProps != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(r.appProps.Pages)); err == nil && n > 0 {
			doc.PageCount = n
		}
	}
	return doc, nil
}

// Text extracts and returns all text content from the document.
func (r *Reader) Text() (string, error) {
	doc, err := r.Document()
	if err != nil {
		return "", err
	}
	return doc.Text(), nil
}

func (r *Reader) convertParagraph(p *paragraphXML) model.Node {
	runs := p.Runs
	for _, h := range p.Hyperlinks {
		runs = append(runs, h.Runs...)
	}

	para := &model.Paragraph{
		Alignment: model.ParseAlignment(p.Properties.Justification.Val),
		Heading:   r.styles.headingLevel(p.Properties.Style.Val),
	}
	if para.Heading == model.HeadingNone {
		switch p.Properties.OutlineLvl.Val {
		case "0":
			para.Heading = model.Heading1
		case "1":
			para.Heading = model.Heading2
		}
	}

	pageBreak := false
	for _, run := range runs {
		text, brk := extractRunText(run)
		pageBreak = pageBreak || brk
		if text == "" {
			continue
		}
		para.Runs = append(para.Runs, convertRun(run.Properties, text))
	}

	if pageBreak && para.IsEmpty() {
		return &model.PageBreak{}
	}
	return para
}

func convertRun(props runPropsXML, text string) model.StyledText {
	st := model.StyledText{
		Text:      text,
		Bold:      props.Bold.on(),
		Italic:    props.Italic.on(),
		Underline: props.Underline.on(),
	}
	if hp, err := strconv.Atoi(props.FontSize.Val); err == nil && hp > 0 {
		st.Size = float64(hp) / 2
	}
	return st
}

// extractRunText extracts text from a run element and reports whether the
// run holds a page break.
func extractRunText(run runXML) (string, bool) {
	var parts []string

	for _, t := range run.Text {
		parts = append(parts, t.Value)
	}

	// Handle tab characters
	for range run.Tabs {
		parts = append(parts, "\t")
	}

	pageBreak := false
	for _, br := range run.Breaks {
		if br.Type == "page" {
			pageBreak = true
			continue
		}
		parts = append(parts, "\n")
	}

	return strings.Join(parts, ""), pageBreak
}

func convertTable(t *tableXML) *model.Table {
	table := &model.Table{Rows: make([][]string, 0, len(t.Rows))}
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			var texts []string
			for _, p := range cell.Paragraphs {
				var sb strings.Builder
				for _, run := range p.Runs {
					text, _ := extractRunText(run)
					sb.WriteString(text)
				}
				if s := strings.TrimSpace(sb.String()); s != "" {
					texts = append(texts, s)
				}
			}
			cells = append(cells, strings.Join(texts, " "))
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}
