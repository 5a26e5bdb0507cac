// Package extract reads positioned text runs out of PDF files.
//
// The [Parser] interface is the only way the rest of the pipeline touches
// PDF bytes. [PDFParser] implements it on top of github.com/ledongthuc/pdf;
// tests and callers with their own PDF engine can supply any other
// implementation.
//
// # Runs
//
// PDF content streams usually place text glyph by glyph. PDFParser merges
// neighbouring glyphs that share a font, size and baseline into a single
// [model.TextRun], inserting a space where the horizontal gap is wide enough
// to be a word break and starting a new run where the gap is wide enough to be
// a column break:
//
//	src, err := extract.NewPDFParser().Parse(data)
//	if err != nil {
//	    // not a readable PDF
//	}
//	for _, page := range src.Pages {
//	    fmt.Println(page.Number, page.Width, page.Height, len(page.Runs))
//	}
//
// Pages without text (scanned images) produce zero runs, not an error.
package extract
