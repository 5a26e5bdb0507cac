package layout

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/tsawler/pdfword/model"
)

// LineConfig holds configuration for line reconstruction
type LineConfig struct {
	// Quantum is the grid runs' Y positions are rounded to before grouping
	// (default: 1.0, i.e. nearest whole point)
	Quantum float64

	// Tolerance is the largest key difference that still joins a run to the
	// line above it. It absorbs rounding splits such as 700.49 vs 700.51
	// (default: 1.0; 0 groups by exact key)
	Tolerance float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		Quantum:   1.0,
		Tolerance: 1.0,
	}
}

// Key returns the quantised Y position used to group a run.
func (c LineConfig) Key(y float64) float64 {
	q := c.Quantum
	if q <= 0 {
		q = 1
	}
	return math.Round(y/q) * q
}

// Line is a set of runs sharing a vertical position on a page.
type Line struct {
	// Y is the quantised position of the topmost run in the line
	Y float64

	// Index is the line's position on the page (0-based, top to bottom)
	Index int

	runs []model.TextRun // extraction order
}

// NewLine creates a line from runs in extraction order.
func NewLine(y float64, runs ...model.TextRun) *Line {
	return &Line{Y: y, runs: runs}
}

// Runs returns the line's runs sorted left to right. Runs sharing an X keep
// their extraction order. The returned slice is a copy.
func (l *Line) Runs() []model.TextRun {
	sorted := make([]model.TextRun, len(l.runs))
	copy(sorted, l.runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})
	return sorted
}

// Len returns the number of runs in the line.
func (l *Line) Len() int {
	return len(l.runs)
}

// Text returns the run texts, left to right, joined by single spaces.
func (l *Line) Text() string {
	runs := l.Runs()
	parts := make([]string, 0, len(runs))
	for _, r := range runs {
		if t := strings.TrimSpace(r.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// IsBlank reports whether the line has no visible text.
func (l *Line) IsBlank() bool {
	for _, r := range l.runs {
		if strings.TrimSpace(r.Text) != "" {
			return false
		}
	}
	return true
}

// FirstX returns the X position of the leftmost run, or 0 for an empty line.
func (l *Line) FirstX() float64 {
	if len(l.runs) == 0 {
		return 0
	}
	first := l.runs[0].X
	for _, r := range l.runs[1:] {
		if r.X < first {
			first = r.X
		}
	}
	return first
}

// Dominant returns the run carrying the most visible characters. Ties go to
// the leftmost run. ok is false for an empty line.
func (l *Line) Dominant() (run model.TextRun, ok bool) {
	best := -1
	for _, r := range l.Runs() {
		n := visibleLen(r.Text)
		if n > best {
			run, best = r, n
		}
	}
	return run, best >= 0
}

// DominantSize returns the font size of the dominant run, or 0 when the line
// is empty or the size is unknown.
func (l *Line) DominantSize() float64 {
	r, ok := l.Dominant()
	if !ok {
		return 0
	}
	return r.Height
}

func visibleLen(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// LineMap holds the lines of one page ordered top to bottom.
type LineMap struct {
	lines []*Line
}

// Lines returns the lines top to bottom (descending Y).
func (m *LineMap) Lines() []*Line {
	return m.lines
}

// Len returns the number of lines.
func (m *LineMap) Len() int {
	return len(m.lines)
}

// Get returns the line whose key is y.
func (m *LineMap) Get(y float64) (*Line, bool) {
	for _, l := range m.lines {
		if l.Y == y {
			return l, true
		}
	}
	return nil, false
}

// LineBuilder groups the runs of a page into lines
type LineBuilder struct {
	config LineConfig
}

// NewLineBuilder creates a new line builder with default configuration
func NewLineBuilder() *LineBuilder {
	return &LineBuilder{
		config: DefaultLineConfig(),
	}
}

// NewLineBuilderWithConfig creates a line builder with custom configuration
func NewLineBuilderWithConfig(config LineConfig) *LineBuilder {
	return &LineBuilder{
		config: config,
	}
}

// Config returns the builder's configuration.
func (b *LineBuilder) Config() LineConfig {
	return b.config
}

// Build groups runs into lines. Runs are visited by quantised Y, top first,
// keeping extraction order for equal keys. A run whose key is within
// Tolerance of the current line's key joins that line; anything further
// down starts a new one.
func (b *LineBuilder) Build(runs []model.TextRun) *LineMap {
	if len(runs) == 0 {
		return &LineMap{}
	}

	type keyed struct {
		key float64
		run model.TextRun
	}
	sorted := make([]keyed, len(runs))
	for i, r := range runs {
		sorted[i] = keyed{key: b.config.Key(r.Y), run: r}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].key > sorted[j].key
	})

	var lines []*Line
	var current *Line
	for _, k := range sorted {
		if current != nil && current.Y-k.key <= b.config.Tolerance {
			current.runs = append(current.runs, k.run)
			continue
		}
		current = &Line{Y: k.key, Index: len(lines)}
		current.runs = append(current.runs, k.run)
		lines = append(lines, current)
	}

	return &LineMap{lines: lines}
}
