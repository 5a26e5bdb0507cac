package docx

import "encoding/xml"

// The structs below encode the parts Writer produces. Tags carry the w:
// prefix literally; the namespace is declared on each part's root element.
// Field order follows the OOXML schema sequences.

type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Content []any   `xml:""` // *wParagraph and *wTable in document order
	SectPr  wSectPr `xml:"w:sectPr"`
}

type wSectPr struct {
	PgSz  wPageSize    `xml:"w:pgSz"`
	PgMar wPageMargins `xml:"w:pgMar"`
}

type wPageSize struct {
	W string `xml:"w:w,attr"`
	H string `xml:"w:h,attr"`
}

type wPageMargins struct {
	Top    string `xml:"w:top,attr"`
	Right  string `xml:"w:right,attr"`
	Bottom string `xml:"w:bottom,attr"`
	Left   string `xml:"w:left,attr"`
	Header string `xml:"w:header,attr"`
	Footer string `xml:"w:footer,attr"`
	Gutter string `xml:"w:gutter,attr"`
}

type wParagraph struct {
	XMLName xml.Name `xml:"w:p"`
	PPr     *wPPr    `xml:"w:pPr,omitempty"`
	Runs    []wRun   `xml:"w:r"`
}

type wPPr struct {
	PStyle     *wVal     `xml:"w:pStyle,omitempty"`
	KeepNext   *wEmpty   `xml:"w:keepNext,omitempty"`
	Spacing    *wSpacing `xml:"w:spacing,omitempty"`
	Jc         *wVal     `xml:"w:jc,omitempty"`
	OutlineLvl *wVal     `xml:"w:outlineLvl,omitempty"`
}

type wSpacing struct {
	Before   string `xml:"w:before,attr,omitempty"`
	After    string `xml:"w:after,attr,omitempty"`
	Line     string `xml:"w:line,attr,omitempty"`
	LineRule string `xml:"w:lineRule,attr,omitempty"`
}

type wRun struct {
	RPr   *wRPr   `xml:"w:rPr,omitempty"`
	Break *wBreak `xml:"w:br,omitempty"`
	Text  *wText  `xml:"w:t,omitempty"`
}

type wRPr struct {
	Fonts     *wFonts `xml:"w:rFonts,omitempty"`
	Bold      *wEmpty `xml:"w:b,omitempty"`
	Italic    *wEmpty `xml:"w:i,omitempty"`
	Size      *wVal   `xml:"w:sz,omitempty"`
	SizeCs    *wVal   `xml:"w:szCs,omitempty"`
	Underline *wVal   `xml:"w:u,omitempty"`
}

type wFonts struct {
	ASCII    string `xml:"w:ascii,attr"`
	HAnsi    string `xml:"w:hAnsi,attr"`
	EastAsia string `xml:"w:eastAsia,attr"`
	CS       string `xml:"w:cs,attr"`
}

type wText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type wBreak struct {
	Type string `xml:"w:type,attr,omitempty"`
}

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wEmpty struct{}

type wTable struct {
	XMLName xml.Name `xml:"w:tbl"`
	TblPr   wTblPr   `xml:"w:tblPr"`
	Grid    wTblGrid `xml:"w:tblGrid"`
	Rows    []wRow   `xml:"w:tr"`
}

type wTblPr struct {
	Width   wWidth   `xml:"w:tblW"`
	Borders wBorders `xml:"w:tblBorders"`
	Layout  wLayout  `xml:"w:tblLayout"`
}

type wWidth struct {
	W    string `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type wLayout struct {
	Type string `xml:"w:type,attr"`
}

type wBorders struct {
	Top     *wBorder `xml:"w:top,omitempty"`
	Left    *wBorder `xml:"w:left,omitempty"`
	Bottom  *wBorder `xml:"w:bottom,omitempty"`
	Right   *wBorder `xml:"w:right,omitempty"`
	InsideH *wBorder `xml:"w:insideH,omitempty"`
	InsideV *wBorder `xml:"w:insideV,omitempty"`
}

type wBorder struct {
	Val   string `xml:"w:val,attr"`
	Sz    string `xml:"w:sz,attr"`
	Space string `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

type wTblGrid struct {
	Cols []wGridCol `xml:"w:gridCol"`
}

type wGridCol struct {
	W string `xml:"w:w,attr"`
}

type wRow struct {
	Cells []wCell `xml:"w:tc"`
}

type wCell struct {
	TcPr  wTcPr        `xml:"w:tcPr"`
	Paras []wParagraph `xml:"w:p"`
}

type wTcPr struct {
	Width   wWidth   `xml:"w:tcW"`
	Borders wBorders `xml:"w:tcBorders"`
}

type wStyles struct {
	XMLName     xml.Name     `xml:"w:styles"`
	XmlnsW      string       `xml:"xmlns:w,attr"`
	DocDefaults wDocDefaults `xml:"w:docDefaults"`
	Styles      []wStyle     `xml:"w:style"`
}

type wDocDefaults struct {
	RPrDefault struct {
		RPr wRPr `xml:"w:rPr"`
	} `xml:"w:rPrDefault"`
	PPrDefault struct {
		PPr wPPr `xml:"w:pPr"`
	} `xml:"w:pPrDefault"`
}

type wStyle struct {
	Type    string  `xml:"w:type,attr"`
	Default string  `xml:"w:default,attr,omitempty"`
	StyleID string  `xml:"w:styleId,attr"`
	Name    wVal    `xml:"w:name"`
	BasedOn *wVal   `xml:"w:basedOn,omitempty"`
	Next    *wVal   `xml:"w:next,omitempty"`
	QFormat *wEmpty `xml:"w:qFormat,omitempty"`
	PPr     *wPPr   `xml:"w:pPr,omitempty"`
	RPr     *wRPr   `xml:"w:rPr,omitempty"`
}

type wSettings struct {
	XMLName        xml.Name `xml:"w:settings"`
	XmlnsW         string   `xml:"xmlns:w,attr"`
	DefaultTabStop wVal     `xml:"w:defaultTabStop"`
	Compat         struct {
		Setting struct {
			Name string `xml:"w:name,attr"`
			URI  string `xml:"w:uri,attr"`
			Val  string `xml:"w:val,attr"`
		} `xml:"w:compatSetting"`
	} `xml:"w:compat"`
}

type contentTypes struct {
	XMLName   xml.Name          `xml:"Types"`
	Xmlns     string            `xml:"xmlns,attr"`
	Defaults  []contentDefault  `xml:"Default"`
	Overrides []contentOverride `xml:"Override"`
}

type contentDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// relationshipsXML represents _rels/*.rels files
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Xmlns         string            `xml:"xmlns,attr,omitempty"`
	Relationships []relationshipXML `xml:"Relationship"`
}

// relationshipXML represents a single relationship.
type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type coreProperties struct {
	XMLName        xml.Name `xml:"cp:coreProperties"`
	XmlnsCP        string   `xml:"xmlns:cp,attr"`
	XmlnsDC        string   `xml:"xmlns:dc,attr"`
	XmlnsDCTerms   string   `xml:"xmlns:dcterms,attr"`
	XmlnsDCMIType  string   `xml:"xmlns:dcmitype,attr"`
	XmlnsXSI       string   `xml:"xmlns:xsi,attr"`
	Title          string   `xml:"dc:title"`
	Subject        string   `xml:"dc:subject,omitempty"`
	Creator        string   `xml:"dc:creator"`
	Description    string   `xml:"dc:description,omitempty"`
	LastModifiedBy string   `xml:"cp:lastModifiedBy"`
	Revision       string   `xml:"cp:revision"`
}

type appProperties struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr"`
	XmlnsVT     string   `xml:"xmlns:vt,attr"`
	Application string   `xml:"Application"`
	DocSecurity string   `xml:"DocSecurity"`
	Pages       string   `xml:"Pages"`
	Paragraphs  string   `xml:"Paragraphs"`
}
