package extract

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pdfword/model"
)

// Glyph is a single positioned piece of text as it appears in a content
// stream, before merging.
type Glyph struct {
	Text     string
	X, Y     float64
	Width    float64
	FontSize float64
	FontName string
}

// Config holds the thresholds used to merge glyphs into runs.
type Config struct {
	// BaselineTolerance is the maximum Y difference (points) for two glyphs
	// to sit on the same baseline (default: 0.5)
	BaselineTolerance float64

	// SpaceGapFactor is the gap, as a fraction of the font size, above which
	// a space is inserted between merged glyphs (default: 0.2)
	SpaceGapFactor float64

	// RunGapFactor is the gap, as a fraction of the font size, above which a
	// new run is started instead of merging (default: 1.5)
	RunGapFactor float64

	// OverlapFactor is how far, as a fraction of the font size, a glyph may
	// start left of the previous glyph's end and still merge (default: 0.5)
	OverlapFactor float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		BaselineTolerance: 0.5,
		SpaceGapFactor:    0.2,
		RunGapFactor:      1.5,
		OverlapFactor:     0.5,
	}
}

// fallbackFontSize is used for gap thresholds when a glyph reports no size.
const fallbackFontSize = 10.0

// runBuilder accumulates glyphs for the run in progress.
type runBuilder struct {
	text     strings.Builder
	x, y     float64
	right    float64
	fontSize float64
	fontName string
	active   bool
}

func (b *runBuilder) start(g Glyph) {
	b.text.Reset()
	b.text.WriteString(g.Text)
	b.x = g.X
	b.y = g.Y
	b.right = g.X + g.Width
	b.fontSize = g.FontSize
	b.fontName = g.FontName
	b.active = true
}

func (b *runBuilder) last() rune {
	s := b.text.String()
	if s == "" {
		return 0
	}
	r := []rune(s)
	return r[len(r)-1]
}

// MergeGlyphs combines glyphs, in content-stream order, into text runs.
// Whitespace-only runs are dropped and run text is NFKC normalised so that
// ligatures and compatibility forms come out as plain letters.
func MergeGlyphs(glyphs []Glyph, cfg Config) []model.TextRun {
	var runs []model.TextRun
	var cur runBuilder

	flush := func() {
		if !cur.active {
			return
		}
		text := strings.TrimRightFunc(norm.NFKC.String(cur.text.String()), unicode.IsSpace)
		if text != "" {
			runs = append(runs, model.NewTextRun(text, cur.x, cur.y, cur.right-cur.x, cur.fontSize, cur.fontName))
		}
		cur.active = false
	}

	for _, g := range glyphs {
		if g.Text == "" {
			continue
		}

		blank := strings.TrimSpace(g.Text) == ""
		if !cur.active {
			if blank {
				continue
			}
			cur.start(g)
			continue
		}

		if !cfg.continues(&cur, g) {
			flush()
			if !blank {
				cur.start(g)
			}
			continue
		}

		gap := g.X - cur.right
		if gap > cfg.SpaceGapFactor*sizeOrFallback(cur.fontSize) &&
			!unicode.IsSpace(cur.last()) && !startsWithSpace(g.Text) {
			cur.text.WriteByte(' ')
		}
		cur.text.WriteString(g.Text)
		if right := g.X + g.Width; right > cur.right {
			cur.right = right
		}
	}
	flush()

	return runs
}

// continues reports whether glyph g belongs to the run being built.
func (cfg Config) continues(cur *runBuilder, g Glyph) bool {
	if g.FontName != cur.fontName {
		return false
	}
	if math.Abs(g.FontSize-cur.fontSize) > 0.01 {
		return false
	}
	if math.Abs(g.Y-cur.y) > cfg.BaselineTolerance {
		return false
	}
	size := sizeOrFallback(cur.fontSize)
	gap := g.X - cur.right
	if gap < -cfg.OverlapFactor*size {
		return false
	}
	return gap <= cfg.RunGapFactor*size
}

func sizeOrFallback(size float64) float64 {
	if size <= 0 {
		return fallbackFontSize
	}
	return size
}

func startsWithSpace(s string) bool {
	for _, r := range s {
		return unicode.IsSpace(r)
	}
	return false
}
