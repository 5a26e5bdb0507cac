package docx

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/tsawler/pdfword/model"
)

// stylesXML represents the structure of word/styles.xml
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	XMLName xml.Name          `xml:"style"`
	Type    string            `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string            `xml:"styleId,attr"`
	Name    styleNameXML      `xml:"name"`
	BasedOn styleNameXML      `xml:"basedOn"`
	PPr     paragraphPropsXML `xml:"pPr"`
}

// styleNameXML represents a style name or parent reference.
type styleNameXML struct {
	Val string `xml:"val,attr"`
}

// headingLevel maps a paragraph style to a heading level. Built-in ids are
// recognised directly; other styles are resolved through their outline
// level, following basedOn links.
func (s *stylesXML) headingLevel(styleID string) model.HeadingLevel {
	if styleID == "" {
		return model.HeadingNone
	}
	switch strings.ToLower(styleID) {
	case "heading1", "title":
		return model.Heading1
	case "heading2":
		return model.Heading2
	}
	if s == nil {
		return model.HeadingNone
	}

	seen := make(map[string]bool)
	for id := styleID; id != "" && !seen[id]; {
		seen[id] = true
		def := s.find(id)
		if def == nil {
			break
		}
		if v := def.PPr.OutlineLvl.Val; v != "" {
			switch lvl, err := strconv.Atoi(v); {
			case err != nil:
			case lvl == 0:
				return model.Heading1
			case lvl == 1:
				return model.Heading2
			default:
				return model.HeadingNone
			}
		}
		id = def.BasedOn.Val
	}
	return model.HeadingNone
}

func (s *stylesXML) find(styleID string) *styleDefXML {
	for i := range s.Styles {
		if strings.EqualFold(s.Styles[i].StyleID, styleID) {
			return &s.Styles[i]
		}
	}
	return nil
}
