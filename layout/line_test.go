package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfword/model"
)

// makeRun creates a test text run
func makeRun(txt string, x, y, size float64) model.TextRun {
	return model.NewTextRun(txt, x, y, float64(len(txt))*size*0.5, size, "Helvetica")
}

func lineTexts(m *LineMap) []string {
	var texts []string
	for _, l := range m.Lines() {
		texts = append(texts, l.Text())
	}
	return texts
}

func TestLineBuilder_Empty(t *testing.T) {
	m := NewLineBuilder().Build(nil)
	require.NotNil(t, m)
	assert.Equal(t, 0, m.Len())
}

func TestLineBuilder_SingleLine(t *testing.T) {
	m := NewLineBuilder().Build([]model.TextRun{
		makeRun("World", 145, 700, 12),
		makeRun("Hello", 100, 700, 12),
	})
	require.Equal(t, 1, m.Len())

	line := m.Lines()[0]
	assert.Equal(t, "Hello World", line.Text())
	assert.Equal(t, 700.0, line.Y)
	assert.Equal(t, 2, line.Len())
}

func TestLineBuilder_TopToBottom(t *testing.T) {
	m := NewLineBuilder().Build([]model.TextRun{
		makeRun("middle", 72, 500, 12),
		makeRun("bottom", 72, 100, 12),
		makeRun("top", 72, 700, 12),
	})

	assert.Equal(t, []string{"top", "middle", "bottom"}, lineTexts(m))
	for i, line := range m.Lines() {
		assert.Equal(t, i, line.Index, "line %d", i)
	}
}

func TestLineBuilder_RoundingMerge(t *testing.T) {
	// 700.49 rounds to 700 and 700.51 to 701; they must stay one line.
	m := NewLineBuilder().Build([]model.TextRun{
		makeRun("left", 72, 700.49, 12),
		makeRun("right", 300, 700.51, 12),
	})

	require.Equal(t, 1, m.Len(), "lines: %v", lineTexts(m))
	assert.Equal(t, "left right", m.Lines()[0].Text())
	assert.Equal(t, 701.0, m.Lines()[0].Y)
}

func TestLineBuilder_ExactGrouping(t *testing.T) {
	b := NewLineBuilderWithConfig(LineConfig{Quantum: 1, Tolerance: 0})
	m := b.Build([]model.TextRun{
		makeRun("left", 72, 700.49, 12),
		makeRun("right", 300, 700.51, 12),
	})
	assert.Equal(t, 2, m.Len())
	assert.Zero(t, b.Config().Tolerance)
}

func TestLineBuilder_Quantum(t *testing.T) {
	m := NewLineBuilderWithConfig(LineConfig{Quantum: 5, Tolerance: 0}).Build([]model.TextRun{
		makeRun("a", 72, 701, 12),
		makeRun("b", 100, 702.4, 12),
	})
	assert.Equal(t, 1, m.Len(), "runs on the same 5pt grid share a line")

	_, ok := m.Get(700)
	assert.True(t, ok)
	_, ok = m.Get(705)
	assert.False(t, ok)
}

func TestLineConfig_Key(t *testing.T) {
	tests := []struct {
		cfg  LineConfig
		y    float64
		want float64
	}{
		{DefaultLineConfig(), 700.4, 700},
		{DefaultLineConfig(), 700.5, 701},
		{LineConfig{Quantum: 10}, 704, 700},
		{LineConfig{Quantum: 0}, 12.6, 13},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cfg.Key(tt.y), "Key(%v) with quantum %v", tt.y, tt.cfg.Quantum)
	}
}

func TestLine_RunsStableSort(t *testing.T) {
	line := NewLine(700,
		makeRun("c", 300, 700, 12),
		makeRun("a1", 100, 700, 12),
		makeRun("a2", 100, 700, 12),
		makeRun("b", 200, 700, 12),
	)

	runs := line.Runs()
	texts := make([]string, len(runs))
	for i, r := range runs {
		texts[i] = r.Text
	}
	assert.Equal(t, []string{"a1", "a2", "b", "c"}, texts)

	// Reading sorted runs must not reorder the stored runs.
	runs[0].Text = "changed"
	assert.Equal(t, "a1", line.Runs()[0].Text)
}

func TestLine_Helpers(t *testing.T) {
	line := NewLine(700,
		makeRun("Experience", 250, 700, 16),
		makeRun("2020", 72, 700, 10),
	)

	assert.Equal(t, 72.0, line.FirstX())
	dom, ok := line.Dominant()
	require.True(t, ok)
	assert.Equal(t, "Experience", dom.Text)
	assert.Equal(t, 16.0, line.DominantSize())
	assert.False(t, line.IsBlank())
}

func TestLine_DominantTieGoesLeft(t *testing.T) {
	line := NewLine(700,
		makeRun("bbbb", 300, 700, 10),
		makeRun("aaaa", 100, 700, 20),
	)
	dom, _ := line.Dominant()
	assert.Equal(t, "aaaa", dom.Text)
}

func TestLine_Empty(t *testing.T) {
	line := NewLine(0)
	assert.True(t, line.IsBlank())
	_, ok := line.Dominant()
	assert.False(t, ok)
	assert.Zero(t, line.DominantSize())
	assert.Zero(t, line.FirstX())
	assert.Empty(t, line.Text())

	blank := NewLine(0, makeRun("   ", 10, 0, 12))
	assert.True(t, blank.IsBlank())
}
