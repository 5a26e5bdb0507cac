package extract

import "github.com/tsawler/pdfword/model"

// Default page dimensions (US Letter) used when a page has no MediaBox.
const (
	DefaultPageWidth  = 612.0
	DefaultPageHeight = 792.0
)

// Parser turns PDF bytes into per-page positioned text runs.
type Parser interface {
	Parse(data []byte) (*Source, error)
}

// ParserFunc adapts a plain function to the Parser interface.
type ParserFunc func(data []byte) (*Source, error)

// Parse calls f(data).
func (f ParserFunc) Parse(data []byte) (*Source, error) {
	return f(data)
}

// Source is the parsed content of one PDF.
type Source struct {
	Metadata model.Metadata
	Pages    []Page
}

// PageCount returns the number of pages.
func (s *Source) PageCount() int {
	return len(s.Pages)
}

// RunCount returns the number of runs across all pages.
func (s *Source) RunCount() int {
	n := 0
	for _, p := range s.Pages {
		n += len(p.Runs)
	}
	return n
}

// Page holds the text runs of one page in extraction order.
type Page struct {
	Number int // 1-indexed
	Width  float64
	Height float64
	Runs   []model.TextRun
}

// HasText reports whether the page produced any runs.
func (p Page) HasText() bool {
	return len(p.Runs) > 0
}
