package pdfword

import (
	"fmt"
	"strings"
)

// WarningCode classifies a soft degradation. Warnings never stop a
// conversion.
type WarningCode int

const (
	// WarnNoText marks a page that produced no text runs, usually a scan.
	WarnNoText WarningCode = iota + 1
	// WarnEmptyDocument marks output that only holds the placeholder paragraph.
	WarnEmptyDocument
	// WarnMissingTitle marks a PDF without a title; the default name was used.
	WarnMissingTitle
)

// String returns a stable identifier for the code.
func (c WarningCode) String() string {
	switch c {
	case WarnNoText:
		return "no_text"
	case WarnEmptyDocument:
		return "empty_document"
	case WarnMissingTitle:
		return "missing_title"
	default:
		return "unknown"
	}
}

// MarshalText lets warnings serialise their code by name.
func (c WarningCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Warning is a non-fatal issue found during conversion.
type Warning struct {
	Code    WarningCode `json:"code" yaml:"code"`
	Page    int         `json:"page,omitempty" yaml:"page,omitempty"` // 1-indexed, 0 for document-level
	Message string      `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return w.Message
}

// FormatWarnings joins warnings into a single human-readable line.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// HasWarning reports whether any warning carries the given code.
func HasWarning(warnings []Warning, code WarningCode) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
