package model

import "strings"

// NodeKind identifies the concrete type of a Node.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindParagraph
	KindTable
	KindPageBreak
)

func (k NodeKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindTable:
		return "table"
	case KindPageBreak:
		return "page_break"
	default:
		return "unknown"
	}
}

// Node is one structural unit of the reconstructed document.
type Node interface {
	Kind() NodeKind
}

// Alignment is the horizontal alignment of a paragraph.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// String returns the alignment name. The names double as OOXML jc values.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlignment maps an alignment name back to an Alignment. Unknown names
// map to AlignLeft; "both" and "start" are treated as left.
func ParseAlignment(s string) Alignment {
	switch strings.ToLower(s) {
	case "center":
		return AlignCenter
	case "right", "end":
		return AlignRight
	default:
		return AlignLeft
	}
}

// HeadingLevel marks a paragraph as a probable section title.
type HeadingLevel int

const (
	HeadingNone HeadingLevel = iota
	Heading1
	Heading2
)

// StyleID returns the Word paragraph style id for the level, or "" for none.
func (h HeadingLevel) StyleID() string {
	switch h {
	case Heading1:
		return "Heading1"
	case Heading2:
		return "Heading2"
	default:
		return ""
	}
}

// String returns "h1", "h2" or "none".
func (h HeadingLevel) String() string {
	switch h {
	case Heading1:
		return "h1"
	case Heading2:
		return "h2"
	default:
		return "none"
	}
}

// Paragraph is one line of prose.
type Paragraph struct {
	Runs      []StyledText
	Alignment Alignment
	Heading   HeadingLevel
}

func (p *Paragraph) Kind() NodeKind { return KindParagraph }

// Text returns the concatenated text of all runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// IsEmpty reports whether the paragraph carries no visible text.
func (p *Paragraph) IsEmpty() bool {
	return strings.TrimSpace(p.Text()) == ""
}

// PageBreak separates the content of two source pages.
type PageBreak struct{}

func (*PageBreak) Kind() NodeKind { return KindPageBreak }
