package pdfword

import (
	"encoding/base64"
	"strings"
	"unicode"

	"github.com/tsawler/pdfword/model"
)

const (
	docxExt         = ".docx"
	maxFileNameBase = 120 // runes, before the extension
)

// Result is a finished conversion.
type Result struct {
	FileName string          `json:"file_name"`
	Data     []byte          `json:"-"`
	Document *model.Document `json:"-"`
	Warnings []Warning       `json:"warnings,omitempty"`
}

// Base64 returns the package encoded with standard base64, the transport
// form the browser editor consumes.
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.Data)
}

// Size returns the package size in bytes.
func (r *Result) Size() int {
	return len(r.Data)
}

// FileName derives a safe .docx file name from a document title. Path
// separators, reserved and control characters become underscores, runs of
// whitespace collapse to one space, and leading or trailing dots and spaces
// are dropped. An empty result falls back to fallback, then DefaultTitle.
func FileName(title, fallback string) string {
	base := sanitize(title)
	if base == "" {
		base = sanitize(fallback)
	}
	if base == "" {
		base = DefaultTitle
	}
	return base + docxExt
}

func sanitize(s string) string {
	if strings.HasSuffix(strings.ToLower(s), docxExt) {
		s = s[:len(s)-len(docxExt)]
	}

	var sb strings.Builder
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
			continue
		case strings.ContainsRune(`/\<>:"|?*`, r) || unicode.IsControl(r):
			r = '_'
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteRune(r)
	}

	out := strings.Trim(sb.String(), ". ")
	if runes := []rune(out); len(runes) > maxFileNameBase {
		out = strings.TrimRight(string(runes[:maxFileNameBase]), ". ")
	}
	return out
}
