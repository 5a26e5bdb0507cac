package docx

import "encoding/xml"

// XML namespaces used in DOCX files
const (
	nsW        = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPkgRels  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsTypes    = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsDC       = "http://purl.org/dc/elements/1.1/"
	nsDCTerms  = "http://purl.org/dc/terms/"
	nsDCMIType = "http://purl.org/dc/dcmitype/"
	nsCP       = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsXSI      = "http://www.w3.org/2001/XMLSchema-instance"
	nsExtended = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsVT       = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
)

// The structs below decode word/document.xml. Tags use local names only so
// they match whatever prefix the producer chose.

// bodyElement is one child of <w:body> in document order.
type bodyElement struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	XMLName    xml.Name          `xml:"p"`
	Properties paragraphPropsXML `xml:"pPr"`
	Runs       []runXML          `xml:"r"`
	Hyperlinks []hyperlinkXML    `xml:"hyperlink"`
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style         styleRefXML      `xml:"pStyle"`
	Justification justificationXML `xml:"jc"`
	Spacing       spacingXML       `xml:"spacing"`
	OutlineLvl    outlineLvlXML    `xml:"outlineLvl"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// justificationXML represents text justification.
type justificationXML struct {
	Val string `xml:"val,attr"` // left, center, right, both
}

// spacingXML represents paragraph spacing.
type spacingXML struct {
	Before string `xml:"before,attr"` // Space before in twips
	After  string `xml:"after,attr"`  // Space after in twips
	Line   string `xml:"line,attr"`   // Line spacing
}

// outlineLvlXML represents outline level.
type outlineLvlXML struct {
	Val string `xml:"val,attr"`
}

// runXML represents a text run (<w:r>).
type runXML struct {
	XMLName    xml.Name    `xml:"r"`
	Properties runPropsXML `xml:"rPr"`
	Text       []textXML   `xml:"t"`
	Tabs       []tabXML    `xml:"tab"`
	Breaks     []breakXML  `xml:"br"`
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Bold      *boolXML      `xml:"b"`
	Italic    *boolXML      `xml:"i"`
	Underline *underlineXML `xml:"u"`
	FontSize  sizeXML       `xml:"sz"`
}

// boolXML represents an on/off property. A present element with no value
// means on.
type boolXML struct {
	Val string `xml:"val,attr"`
}

// on reports whether the property is present and not switched off.
func (b *boolXML) on() bool {
	if b == nil {
		return false
	}
	switch b.Val {
	case "false", "0", "off":
		return false
	}
	return true
}

// underlineXML represents underline style.
type underlineXML struct {
	Val string `xml:"val,attr"` // single, double, none, etc.
}

func (u *underlineXML) on() bool {
	return u != nil && u.Val != "none"
}

// sizeXML represents font size (in half-points).
type sizeXML struct {
	Val string `xml:"val,attr"`
}

// textXML represents text content (<w:t>).
type textXML struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"space,attr"` // preserve
	Value   string   `xml:",chardata"`
}

// tabXML represents a tab character.
type tabXML struct {
	XMLName xml.Name `xml:"tab"`
}

// breakXML represents a break (line or page).
type breakXML struct {
	XMLName xml.Name `xml:"br"`
	Type    string   `xml:"type,attr"` // page, column, textWrapping
}

// hyperlinkXML represents a hyperlink.
type hyperlinkXML struct {
	ID   string   `xml:"id,attr"`
	Runs []runXML `xml:"r"`
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	XMLName xml.Name      `xml:"tbl"`
	Grid    tableGridXML  `xml:"tblGrid"`
	Rows    []tableRowXML `xml:"tr"`
}

// tableGridXML represents table grid definition.
type tableGridXML struct {
	Cols []gridColXML `xml:"gridCol"`
}

// gridColXML represents a grid column.
type gridColXML struct {
	W string `xml:"w,attr"` // Width in twips
}

// tableRowXML represents a table row (<w:tr>).
type tableRowXML struct {
	XMLName xml.Name       `xml:"tr"`
	Cells   []tableCellXML `xml:"tc"`
}

// tableCellXML represents a table cell (<w:tc>).
type tableCellXML struct {
	XMLName    xml.Name       `xml:"tc"`
	Paragraphs []paragraphXML `xml:"p"`
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata)
type corePropertiesXML struct {
	XMLName     xml.Name `xml:"coreProperties"`
	Title       string   `xml:"title"`
	Subject     string   `xml:"subject"`
	Creator     string   `xml:"creator"`
	Description string   `xml:"description"`
}

// appPropertiesXML represents docProps/app.xml
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Application string   `xml:"Application"`
	Pages       string   `xml:"Pages"`
}
