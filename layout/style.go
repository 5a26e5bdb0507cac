package layout

import (
	"math"

	"github.com/tsawler/pdfword/model"
)

// Style is the formatting inferred for one prose line.
type Style struct {
	Alignment model.Alignment
	Heading   model.HeadingLevel
	Bold      bool
	Italic    bool
	Underline bool
	Size      float64 // points
}

// StyledText returns the line text carrying this style.
func (s Style) StyledText(text string) model.StyledText {
	return model.StyledText{
		Text:      text,
		Bold:      s.Bold,
		Italic:    s.Italic,
		Underline: s.Underline,
		Size:      s.Size,
	}
}

// StyleInferencer derives paragraph formatting from a line's run metrics.
// Implementations must be deterministic.
type StyleInferencer interface {
	Infer(line *Line, pageWidth float64) Style
}

// StyleConfig holds the thresholds used by FontNameInferencer
type StyleConfig struct {
	// CenterBand is the half-width of the band around the page centre in
	// which a line's first run counts as centred (default: 50 points)
	CenterBand float64

	// HeadingSize is the font size a line's dominant run must exceed to be
	// tagged as a heading (default: 14 points)
	HeadingSize float64

	// DefaultSize is the size reported when a run carries none (default: 12)
	DefaultSize float64
}

// DefaultStyleConfig returns sensible default configuration
func DefaultStyleConfig() StyleConfig {
	return StyleConfig{
		CenterBand:  50,
		HeadingSize: 14,
		DefaultSize: 12,
	}
}

// FontNameInferencer infers style from run position, font size and font name
// substrings, so "Arial-BoldMT" reads as bold.
type FontNameInferencer struct {
	config StyleConfig
}

// NewFontNameInferencer creates an inferencer with default thresholds
func NewFontNameInferencer() *FontNameInferencer {
	return &FontNameInferencer{config: DefaultStyleConfig()}
}

// NewFontNameInferencerWithConfig creates an inferencer with custom thresholds
func NewFontNameInferencerWithConfig(config StyleConfig) *FontNameInferencer {
	return &FontNameInferencer{config: config}
}

// Config returns the inferencer's thresholds.
func (f *FontNameInferencer) Config() StyleConfig {
	return f.config
}

// Infer implements StyleInferencer.
func (f *FontNameInferencer) Infer(line *Line, pageWidth float64) Style {
	style := Style{
		Alignment: f.Alignment(line.FirstX(), pageWidth),
		Size:      f.config.DefaultSize,
	}

	dominant, ok := line.Dominant()
	if !ok {
		return style
	}

	if dominant.Height > 0 {
		style.Size = math.Round(dominant.Height*2) / 2
	}
	if dominant.Height > f.config.HeadingSize {
		style.Heading = model.Heading1
	}

	style.Bold = model.FontIsBold(dominant.FontName)
	style.Italic = model.FontIsItalic(dominant.FontName)
	style.Underline = model.FontIsUnderlined(dominant.FontName)

	return style
}

// Alignment classifies a line starting at x on a page of the given width.
func (f *FontNameInferencer) Alignment(x, pageWidth float64) model.Alignment {
	mid := pageWidth / 2
	switch {
	case x < mid-f.config.CenterBand:
		return model.AlignLeft
	case x > mid+f.config.CenterBand:
		return model.AlignRight
	default:
		return model.AlignCenter
	}
}
