// Package format identifies the file formats pdfword reads and writes.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a document format known to pdfword.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document, the conversion input.
	PDF
	// DOCX indicates a Word (.docx) package, the conversion output.
	DOCX
	// XLSX indicates an Excel workbook, used for table exports.
	XLSX
	// HTML indicates an HTML preview.
	HTML
)

// headerWindow is how far into a file a PDF header may start. Readers
// tolerate leading junk before %PDF- as long as it is in the first KiB.
const headerWindow = 1024

var pdfMagic = []byte("%PDF-")

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case DOCX:
		return "DOCX"
	case XLSX:
		return "XLSX"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case DOCX:
		return ".docx"
	case XLSX:
		return ".xlsx"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// MIMEType returns the media type served for the format.
func (f Format) MIMEType() string {
	switch f {
	case PDF:
		return "application/pdf"
	case DOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case HTML:
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".docx":
		return DOCX
	case ".xlsx":
		return XLSX
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

// PDFHeaderOffset returns the offset of the %PDF- header, or -1 when the
// data does not carry one within the first KiB.
func PDFHeaderOffset(data []byte) int {
	window := data
	if len(window) > headerWindow {
		window = window[:headerWindow]
	}
	return bytes.Index(window, pdfMagic)
}

// IsPDF reports whether data starts like a PDF file.
func IsPDF(data []byte) bool {
	return PDFHeaderOffset(data) >= 0
}

// DetectFromMagic checks file magic bytes to determine format.
// This provides more reliable detection than extension-based detection.
// ZIP archives return Unknown; use DetectFromReader to tell DOCX from XLSX.
func DetectFromMagic(data []byte) Format {
	if IsPDF(data) {
		return PDF
	}
	if isZIP(data) {
		return Unknown
	}
	if detectHTMLMagic(data) {
		return HTML
	}
	return Unknown
}

// DetectBytes is DetectFromReader over an in-memory buffer.
func DetectBytes(data []byte) Format {
	f, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Unknown
	}
	return f
}

func isZIP(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return false
	}
	if len(data) > 512 {
		data = data[:512]
	}

	upper := strings.ToUpper(string(data))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	return strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML")
}

// DetectFromReader inspects the content to determine format.
// Unlike DetectFromMagic it can distinguish DOCX from XLSX.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, headerWindow)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if IsPDF(magic) {
		return PDF, nil
	}
	if isZIP(magic) {
		return detectZIPFormat(r, size)
	}
	if detectHTMLMagic(magic) {
		return HTML, nil
	}
	return Unknown, nil
}

// detectZIPFormat inspects an Office Open XML archive for its main part.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		}
	}

	return Unknown, nil
}
