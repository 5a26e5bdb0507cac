package htmldoc

import (
	"strconv"
	"strings"

	"github.com/tsawler/pdfword/model"
)

// format is the inline formatting in effect while walking a subtree.
type format struct {
	bold      bool
	italic    bool
	underline bool
	size      float64 // points
}

// apply returns f updated for an element's tag and inline style.
func (f format) apply(tag string, style map[string]string) format {
	switch tag {
	case "strong", "b", "h1", "h2", "h3", "h4", "h5", "h6", "th":
		f.bold = true
	case "em", "i":
		f.italic = true
	case "u", "ins":
		f.underline = true
	}

	switch w := style["font-weight"]; w {
	case "":
	case "bold", "bolder":
		f.bold = true
	case "normal", "lighter":
		f.bold = false
	default:
		if n, err := strconv.Atoi(w); err == nil {
			f.bold = n >= 600
		}
	}

	switch style["font-style"] {
	case "italic", "oblique":
		f.italic = true
	case "normal":
		f.italic = false
	}

	if d, ok := style["text-decoration"]; ok {
		f.underline = strings.Contains(d, "underline")
	}
	if d, ok := style["text-decoration-line"]; ok {
		f.underline = strings.Contains(d, "underline")
	}

	if size := parseFontSize(style["font-size"]); size > 0 {
		f.size = size
	}
	return f
}

func (f format) run(text string) model.StyledText {
	return model.StyledText{
		Text:      text,
		Bold:      f.bold,
		Italic:    f.italic,
		Underline: f.underline,
		Size:      f.size,
	}
}

// parseStyle splits an inline style attribute into lower-cased properties.
func parseStyle(attr string) map[string]string {
	style := make(map[string]string)
	for _, decl := range strings.Split(attr, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.ToLower(strings.TrimSpace(value))
		value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
		if name != "" {
			style[name] = value
		}
	}
	return style
}

// parseFontSize converts a CSS font size to points. Only absolute pt and
// px values are understood; anything else returns 0.
func parseFontSize(v string) float64 {
	var unit float64
	switch {
	case strings.HasSuffix(v, "pt"):
		unit = 1
	case strings.HasSuffix(v, "px"):
		unit = 0.75
	default:
		return 0
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-2]), 64)
	if err != nil || n <= 0 {
		return 0
	}
	return n * unit
}
