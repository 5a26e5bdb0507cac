package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsawler/pdfword/model"
)

func TestFontNameInferencer_Alignment(t *testing.T) {
	inf := NewFontNameInferencer()

	tests := []struct {
		name string
		x    float64
		want model.Alignment
	}{
		{"near left edge", 10, model.AlignLeft},
		{"page centre", 300, model.AlignCenter},
		{"near right edge", 590, model.AlignRight},
		{"just inside left band", 250, model.AlignCenter},
		{"just outside left band", 249.9, model.AlignLeft},
		{"just inside right band", 350, model.AlignCenter},
		{"just outside right band", 350.1, model.AlignRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := NewLine(700, makeRun("text", tt.x, 700, 12))
			assert.Equal(t, tt.want, inf.Infer(line, 600).Alignment)
		})
	}
}

func TestFontNameInferencer_AlignmentUsesFirstRun(t *testing.T) {
	line := NewLine(700,
		makeRun("right part", 500, 700, 12),
		makeRun("left part", 20, 700, 12),
	)
	assert.Equal(t, model.AlignLeft, NewFontNameInferencer().Infer(line, 600).Alignment)
}

func TestFontNameInferencer_Heading(t *testing.T) {
	inf := NewFontNameInferencer()

	run := model.NewTextRun("John Smith", 72, 700, 100, 18, "Arial-BoldMT")
	style := inf.Infer(NewLine(700, run), 612)

	assert.Equal(t, model.Heading1, style.Heading)
	assert.True(t, style.Bold)
	assert.False(t, style.Italic)
	assert.False(t, style.Underline)
	assert.Equal(t, 18.0, style.Size)
}

func TestFontNameInferencer_HeadingThreshold(t *testing.T) {
	inf := NewFontNameInferencer()

	tests := []struct {
		size float64
		want model.HeadingLevel
	}{
		{12, model.HeadingNone},
		{14, model.HeadingNone}, // strictly greater than 14
		{14.5, model.Heading1},
		{24, model.Heading1},
	}

	for _, tt := range tests {
		line := NewLine(700, model.NewTextRun("Summary", 72, 700, 50, tt.size, "Helvetica"))
		assert.Equal(t, tt.want, inf.Infer(line, 612).Heading, "size %v", tt.size)
	}
}

func TestFontNameInferencer_FontFlags(t *testing.T) {
	inf := NewFontNameInferencer()

	tests := []struct {
		font                     string
		bold, italic, underlined bool
	}{
		{"Helvetica", false, false, false},
		{"TimesNewRoman-BOLD", true, false, false},
		{"Georgia-Italic", false, true, false},
		{"Calibri-BoldItalic", true, true, false},
		{"Verdana-Underline", false, false, true},
		{"", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.font, func(t *testing.T) {
			line := NewLine(700, model.NewTextRun("text", 72, 700, 20, 12, tt.font))
			s := inf.Infer(line, 612)
			assert.Equal(t, tt.bold, s.Bold, "bold")
			assert.Equal(t, tt.italic, s.Italic, "italic")
			assert.Equal(t, tt.underlined, s.Underline, "underline")
		})
	}
}

func TestFontNameInferencer_DominantRunDecides(t *testing.T) {
	line := NewLine(700,
		model.NewTextRun("Note:", 72, 700, 30, 12, "Helvetica-Bold"),
		model.NewTextRun("a much longer plain sentence", 110, 700, 200, 12, "Helvetica"),
	)
	assert.False(t, NewFontNameInferencer().Infer(line, 612).Bold, "bold follows the longest run")
}

func TestFontNameInferencer_DefaultSize(t *testing.T) {
	line := NewLine(700, model.NewTextRun("text", 72, 700, 20, 0, "Helvetica"))
	assert.Equal(t, 12.0, NewFontNameInferencer().Infer(line, 612).Size)

	empty := NewFontNameInferencer().Infer(NewLine(0), 612)
	assert.Equal(t, 12.0, empty.Size)
	assert.Equal(t, model.HeadingNone, empty.Heading)
}

func TestFontNameInferencer_CustomConfig(t *testing.T) {
	cfg := DefaultStyleConfig()
	cfg.HeadingSize = 20
	cfg.CenterBand = 10
	inf := NewFontNameInferencerWithConfig(cfg)

	line := NewLine(700, model.NewTextRun("Title", 270, 700, 40, 18, "Helvetica"))
	s := inf.Infer(line, 600)
	assert.Equal(t, model.HeadingNone, s.Heading)
	assert.Equal(t, model.AlignLeft, s.Alignment)
	assert.Equal(t, cfg, inf.Config())
}

func TestStyle_StyledText(t *testing.T) {
	s := Style{Bold: true, Underline: true, Size: 11}
	want := model.StyledText{Text: "Skills", Bold: true, Underline: true, Size: 11}
	assert.Equal(t, want, s.StyledText("Skills"))
}

func TestFontNameInferencer_Deterministic(t *testing.T) {
	line := NewLine(700,
		model.NewTextRun("A", 100, 700, 10, 16, "X-Bold"),
		model.NewTextRun("B", 100, 700, 10, 12, "X-Italic"),
	)
	inf := NewFontNameInferencer()
	first := inf.Infer(line, 612)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, inf.Infer(line, 612), "run %d", i)
	}
	assert.True(t, first.Bold, "a tie on length and X keeps extraction order")
}
