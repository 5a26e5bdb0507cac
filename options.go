package pdfword

import (
	"github.com/tsawler/pdfword/layout"
	"github.com/tsawler/pdfword/tables"
)

// DefaultTitle names the output when the PDF carries no title.
const DefaultTitle = "Converted Document"

// options holds the per-conversion configuration of a Converter.
type options struct {
	// Page selection (1-indexed, nil means all pages)
	pages []pageRange

	// Layout reconstruction
	lineConfig  layout.LineConfig
	tableConfig tables.Config
	styles      layout.StyleInferencer

	// Output naming
	defaultTitle string
}

// pageRange is an inclusive 1-indexed page span. Ranges stay unexpanded
// until the page count is known.
type pageRange struct {
	start, end int
}

// defaultOptions returns the default conversion options.
func defaultOptions() options {
	return options{
		pages:        nil, // nil means all pages
		lineConfig:   layout.DefaultLineConfig(),
		tableConfig:  tables.DefaultConfig(),
		styles:       layout.NewFontNameInferencer(),
		defaultTitle: DefaultTitle,
	}
}

// clone creates a deep copy of options.
func (o options) clone() options {
	newOpts := options{
		lineConfig:   o.lineConfig,
		tableConfig:  o.tableConfig,
		styles:       o.styles,
		defaultTitle: o.defaultTitle,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]pageRange, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
