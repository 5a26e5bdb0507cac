package pdfword

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"

	"github.com/tsawler/pdfword/docx"
	"github.com/tsawler/pdfword/extract"
	"github.com/tsawler/pdfword/layout"
	"github.com/tsawler/pdfword/model"
	"github.com/tsawler/pdfword/tables"
)

// Converter provides a fluent interface for turning PDFs into Word packages.
// Each configuration method returns a new Converter instance, making it
// safe for concurrent use and allowing method chaining.
type Converter struct {
	parser extract.Parser
	writer *docx.Writer
	logger *slog.Logger

	// Configuration
	options options

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Converter with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (c *Converter) clone() *Converter {
	return &Converter{
		parser:  c.parser,
		writer:  c.writer,
		logger:  c.logger,
		options: c.options.clone(),
		err:     c.err,
	}
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// Parser replaces the PDF parser. A nil parser restores the default.
func (c *Converter) Parser(p extract.Parser) *Converter {
	newConv := c.clone()
	if p == nil {
		p = extract.NewPDFParser()
	}
	newConv.parser = p
	return newConv
}

// Writer replaces the package writer, e.g. to change the core properties.
// A nil writer restores the default.
func (c *Converter) Writer(w *docx.Writer) *Converter {
	newConv := c.clone()
	if w == nil {
		w = docx.NewWriter()
	}
	newConv.writer = w
	return newConv
}

// Logger sets the logger used for debug output. A nil logger discards it.
func (c *Converter) Logger(l *slog.Logger) *Converter {
	newConv := c.clone()
	if l == nil {
		l = discardLogger()
	}
	newConv.logger = l
	return newConv
}

// Pages specifies which pages to convert (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	res, err := pdfword.New().Pages(1, 2).Convert(ctx, data)
func (c *Converter) Pages(pages ...int) *Converter {
	newConv := c.clone()
	for _, p := range pages {
		newConv.options.pages = append(newConv.options.pages, pageRange{start: p, end: p})
	}
	return newConv
}

// PageRange specifies a range of pages to convert (1-indexed, inclusive).
// A reversed range selects nothing.
func (c *Converter) PageRange(start, end int) *Converter {
	newConv := c.clone()
	if start <= end {
		newConv.options.pages = append(newConv.options.pages, pageRange{start: start, end: end})
	}
	return newConv
}

// LineConfig sets the line grouping tolerances.
func (c *Converter) LineConfig(cfg layout.LineConfig) *Converter {
	newConv := c.clone()
	newConv.options.lineConfig = cfg
	return newConv
}

// TableConfig sets the table detection tolerances. An invalid configuration
// is reported by the next terminal operation.
func (c *Converter) TableConfig(cfg tables.Config) *Converter {
	newConv := c.clone()
	if err := cfg.Validate(); err != nil {
		if newConv.err == nil {
			newConv.err = err
		}
		return newConv
	}
	newConv.options.tableConfig = cfg
	return newConv
}

// StyleInferencer replaces the paragraph style heuristic. A nil inferencer
// restores the default.
func (c *Converter) StyleInferencer(s layout.StyleInferencer) *Converter {
	newConv := c.clone()
	if s == nil {
		s = layout.NewFontNameInferencer()
	}
	newConv.options.styles = s
	return newConv
}

// DefaultTitle sets the name used when the PDF has no title.
func (c *Converter) DefaultTitle(title string) *Converter {
	newConv := c.clone()
	newConv.options.defaultTitle = title
	return newConv
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Document parses data and assembles the document without serialising it.
// The context is checked before each page; cancellation returns its error
// wrapped.
func (c *Converter) Document(ctx context.Context, data []byte) (*model.Document, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("conversion cancelled: %w", err)
	}

	src, err := c.parser.Parse(data)
	if err != nil {
		return nil, nil, &DocumentParseError{Message: "failed to parse PDF", Err: err}
	}

	selected, err := c.resolvePages(src.PageCount())
	if err != nil {
		return nil, nil, &DocumentParseError{Message: "invalid page selection", Err: err}
	}

	detector, err := tables.NewDetectorWithConfig(c.options.tableConfig)
	if err != nil {
		return nil, nil, err
	}
	asm := &Assembler{Tables: detector, Styles: c.options.styles}
	builder := layout.NewLineBuilderWithConfig(c.options.lineConfig)

	var (
		nodes    []model.Node
		warnings []Warning
	)
	for i, idx := range selected {
		page := src.Pages[idx]
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("conversion cancelled before page %d: %w", page.Number, err)
		}

		if !page.HasText() {
			warnings = append(warnings, Warning{
				Code:    WarnNoText,
				Page:    page.Number,
				Message: "no extractable text",
			})
		}

		lines := builder.Build(page.Runs)
		pageNodes := asm.AssemblePage(PageLayout{
			Number: page.Number,
			Width:  page.Width,
			Lines:  lines.Lines(),
		})
		c.logger.Debug("page assembled",
			"page", page.Number,
			"runs", len(page.Runs),
			"lines", lines.Len(),
			"nodes", len(pageNodes),
		)

		if i > 0 {
			nodes = append(nodes, &model.PageBreak{})
		}
		nodes = append(nodes, pageNodes...)
	}

	nodes, added := EnsureParagraph(nodes)
	if added && !hasTable(nodes) {
		warnings = append(warnings, Warning{
			Code:    WarnEmptyDocument,
			Message: "no text found; document holds a single empty paragraph",
		})
	}

	doc := model.NewDocument()
	doc.Metadata = src.Metadata
	doc.PageCount = len(selected)
	doc.Append(nodes...)

	c.logger.Debug("document assembled",
		"pages", doc.PageCount,
		"paragraphs", doc.Count(model.KindParagraph),
		"tables", doc.Count(model.KindTable),
		"warnings", len(warnings),
	)
	return doc, warnings, nil
}

// Convert parses data and returns the Word package. No partial output is
// returned on error.
//
// Example:
//
//	res, err := pdfword.New().Convert(ctx, data)
//	if err != nil {
//	    // handle error
//	}
//	os.WriteFile(res.FileName, res.Data, 0o644)
func (c *Converter) Convert(ctx context.Context, data []byte) (*Result, error) {
	doc, warnings, err := c.Document(ctx, data)
	if err != nil {
		return nil, err
	}

	title := doc.Metadata.Title
	if title == "" {
		title = c.options.defaultTitle
		if title == "" {
			title = DefaultTitle
		}
		warnings = append(warnings, Warning{
			Code:    WarnMissingTitle,
			Message: fmt.Sprintf("PDF has no title; using %q", title),
		})
	}

	// The package always carries a title; the returned document keeps the
	// metadata as read.
	out := *doc
	out.Metadata.Title = title

	pkg, err := c.writer.Bytes(&out)
	if err != nil {
		return nil, &SerializationError{Message: "failed to build DOCX package", Err: err, Document: doc}
	}

	res := &Result{
		FileName: FileName(title, c.options.defaultTitle),
		Data:     pkg,
		Document: doc,
		Warnings: warnings,
	}
	c.logger.Debug("package written", "file", res.FileName, "bytes", res.Size())
	return res, nil
}

// ConvertFile reads path and converts it.
func (c *Converter) ConvertFile(ctx context.Context, path string) (*Result, error) {
	if c.err != nil {
		return nil, c.err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return c.Convert(ctx, data)
}

// resolvePages returns 0-indexed page indices to convert, in page order.
func (c *Converter) resolvePages(pageCount int) ([]int, error) {
	// If no pages specified, use all pages
	if len(c.options.pages) == 0 {
		pageIndices := make([]int, pageCount)
		for i := 0; i < pageCount; i++ {
			pageIndices[i] = i
		}
		return pageIndices, nil
	}

	// Validate the bounds before expanding, then convert to 0-indexed
	seen := make(map[int]bool)
	var pageIndices []int
	for _, r := range c.options.pages {
		for _, p := range []int{r.start, r.end} {
			if p < 1 || p > pageCount {
				return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
			}
		}
		for p := r.start; p <= r.end; p++ {
			zeroIndexed := p - 1
			if !seen[zeroIndexed] {
				seen[zeroIndexed] = true
				pageIndices = append(pageIndices, zeroIndexed)
			}
		}
	}

	// Sort pages in order
	sort.Ints(pageIndices)
	return pageIndices, nil
}

func hasTable(nodes []model.Node) bool {
	for _, n := range nodes {
		if n.Kind() == model.KindTable {
			return true
		}
	}
	return false
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
}
