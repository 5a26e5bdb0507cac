package model

import "strings"

// TextRun is a contiguous span of text extracted from a PDF page with its
// position and size. Coordinates use the PDF user space, so Y grows towards
// the top of the page.
type TextRun struct {
	Text     string
	X, Y     float64
	Width    float64
	Height   float64 // font size in points
	FontName string
	Bold     bool
	Italic   bool
}

// NewTextRun builds a run and derives Bold and Italic from the font name.
func NewTextRun(text string, x, y, width, height float64, fontName string) TextRun {
	return TextRun{
		Text:     text,
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		FontName: fontName,
		Bold:     FontIsBold(fontName),
		Italic:   FontIsItalic(fontName),
	}
}

// Right returns the X coordinate of the run's right edge.
func (r TextRun) Right() float64 {
	return r.X + r.Width
}

// FontIsBold reports whether a font name looks like a bold face.
func FontIsBold(fontName string) bool {
	return fontHas(fontName, "bold")
}

// FontIsItalic reports whether a font name looks like an italic face.
func FontIsItalic(fontName string) bool {
	return fontHas(fontName, "italic")
}

// FontIsUnderlined reports whether a font name carries an underline marker.
func FontIsUnderlined(fontName string) bool {
	return fontHas(fontName, "underline")
}

func fontHas(fontName, marker string) bool {
	if fontName == "" {
		return false
	}
	return strings.Contains(strings.ToLower(fontName), marker)
}

// StyledText is formatted text inside a paragraph.
type StyledText struct {
	Text      string  `json:"text" yaml:"text"`
	Bold      bool    `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underline bool    `json:"underline,omitempty" yaml:"underline,omitempty"`
	Size      float64 `json:"size,omitempty" yaml:"size,omitempty"` // points; 0 inherits the style
}

// HalfPoints returns the size in the half-point unit Word uses, or 0 when
// the size is unset.
func (s StyledText) HalfPoints() int {
	if s.Size <= 0 {
		return 0
	}
	return int(s.Size*2 + 0.5)
}
