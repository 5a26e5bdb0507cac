package model

import "strings"

// Document is the reconstructed document: metadata plus the ordered node
// sequence of every converted page.
type Document struct {
	Metadata  Metadata
	Nodes     []Node
	PageCount int // number of source pages the nodes came from
}

// Metadata contains document-level information
type Metadata struct {
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Author   string `json:"author,omitempty" yaml:"author,omitempty"`
	Subject  string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Creator  string `json:"creator,omitempty" yaml:"creator,omitempty"`
	Producer string `json:"producer,omitempty" yaml:"producer,omitempty"`
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Nodes: make([]Node, 0),
	}
}

// Append adds nodes to the end of the document.
func (d *Document) Append(nodes ...Node) {
	d.Nodes = append(d.Nodes, nodes...)
}

// Count returns how many nodes of the given kind the document holds.
func (d *Document) Count(kind NodeKind) int {
	n := 0
	for _, node := range d.Nodes {
		if node.Kind() == kind {
			n++
		}
	}
	return n
}

// Kinds returns the kind of every node in order.
func (d *Document) Kinds() []NodeKind {
	kinds := make([]NodeKind, len(d.Nodes))
	for i, node := range d.Nodes {
		kinds[i] = node.Kind()
	}
	return kinds
}

// Paragraphs returns all paragraph nodes in order.
func (d *Document) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, node := range d.Nodes {
		if p, ok := node.(*Paragraph); ok {
			paras = append(paras, p)
		}
	}
	return paras
}

// Tables returns all table nodes in order.
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, node := range d.Nodes {
		if t, ok := node.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// Text returns the plain text of the document. Paragraphs end with a newline,
// tables are tab separated and page breaks become a form feed.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, node := range d.Nodes {
		switch n := node.(type) {
		case *Paragraph:
			sb.WriteString(n.Text())
			sb.WriteString("\n")
		case *Table:
			sb.WriteString(n.Text())
			sb.WriteString("\n")
		case *PageBreak:
			sb.WriteString("\f")
		}
	}
	return sb.String()
}
