// Package pdfword converts resume PDFs into editable Word (.docx) packages.
//
// Basic usage:
//
//	res, err := pdfword.New().Convert(ctx, pdfBytes)
//	if err != nil {
//	    // handle error
//	}
//	if len(res.Warnings) > 0 {
//	    log.Println("Warnings:", pdfword.FormatWarnings(res.Warnings))
//	}
//	os.WriteFile(res.FileName, res.Data, 0o644)
//
// With options:
//
//	res, err := pdfword.New().
//	    PageRange(1, 2).
//	    DefaultTitle("Resume").
//	    Logger(logger).
//	    Convert(ctx, pdfBytes)
//
// The pipeline runs in four stages: text runs are extracted from the PDF
// (package extract), grouped into lines (layout), scanned for aligned
// columns (tables), and assembled into paragraphs, tables and page breaks
// that package docx serialises.
package pdfword

import (
	"context"

	"github.com/tsawler/pdfword/docx"
	"github.com/tsawler/pdfword/extract"
)

// New creates a Converter with the default parser, writer and tolerances.
// Debug output is discarded until a logger is set.
func New() *Converter {
	return &Converter{
		parser:  extract.NewPDFParser(),
		writer:  docx.NewWriter(),
		logger:  discardLogger(),
		options: defaultOptions(),
	}
}

// Convert converts data with a default Converter.
func Convert(ctx context.Context, data []byte) (*Result, error) {
	return New().Convert(ctx, data)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	res := pdfword.Must(pdfword.New().ConvertFile(ctx, "resume.pdf"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
