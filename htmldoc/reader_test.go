package htmldoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfword/model"
)

func parseString(t *testing.T, s string) *model.Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestParse_Text(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "simple paragraph",
			html:     `<p>Hello World</p>`,
			expected: "Hello World\n",
		},
		{
			name:     "whitespace collapses",
			html:     "<p>  Hello\n\t   World  </p>",
			expected: "Hello World\n",
		},
		{
			name:     "line break",
			html:     `<p>Line one<br>Line two</p>`,
			expected: "Line one\nLine two\n",
		},
		{
			name:     "inline runs keep single spaces",
			html:     `<p>Hello <b> World</b></p>`,
			expected: "Hello World\n",
		},
		{
			name:     "bare text becomes a paragraph",
			html:     `<body>loose text<p>next</p></body>`,
			expected: "loose text\nnext\n",
		},
		{
			name:     "list items",
			html:     `<ul><li>Go</li><li>SQL</li></ul>`,
			expected: "Go\nSQL\n",
		},
		{
			name:     "nested containers",
			html:     `<div><section><p>deep</p></section></div>`,
			expected: "deep\n",
		},
		{
			name:     "div without block children",
			html:     `<div>just <em>text</em></div>`,
			expected: "just text\n",
		},
		{
			name:     "scripts skipped",
			html:     `<p>visible</p><script>var x = 1;</script><style>p{}</style>`,
			expected: "visible\n",
		},
		{
			name:     "empty body",
			html:     ``,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseString(t, tt.html).Text())
		})
	}
}

func TestParse_InlineStyles(t *testing.T) {
	doc := parseString(t, `<p style="text-align: center">`+
		`<span style="font-weight:700; font-size:16px">Bold</span>`+
		`<span style="font-style:italic;text-decoration:underline">Styled</span>`+
		`<strong style="font-weight:normal">Plain</strong>`+
		`</p>`)

	paras := doc.Paragraphs()
	require.Len(t, paras, 1)
	p := paras[0]
	assert.Equal(t, model.AlignCenter, p.Alignment)
	require.Len(t, p.Runs, 3)

	assert.Equal(t, "Bold", p.Runs[0].Text)
	assert.True(t, p.Runs[0].Bold)
	assert.Equal(t, 12.0, p.Runs[0].Size)

	assert.Equal(t, "Styled", p.Runs[1].Text)
	assert.True(t, p.Runs[1].Italic)
	assert.True(t, p.Runs[1].Underline)
	assert.False(t, p.Runs[1].Bold)

	assert.Equal(t, "Plain", p.Runs[2].Text)
	assert.False(t, p.Runs[2].Bold)
}

func TestParse_Headings(t *testing.T) {
	doc := parseString(t, `<h1>Title</h1><h2>Section</h2><h4>Minor</h4><p>Body</p>`)

	want := []model.HeadingLevel{model.Heading1, model.Heading2, model.Heading2, model.HeadingNone}
	paras := doc.Paragraphs()
	require.Len(t, paras, len(want))
	for i, w := range want {
		assert.Equal(t, w, paras[i].Heading, "paragraph %q", paras[i].Text())
	}
	assert.True(t, paras[0].Runs[0].Bold, "heading text is bold")
}

func TestParse_Tables(t *testing.T) {
	doc := parseString(t, `<table>
  <thead><tr><th>Name</th><th>Role</th></tr></thead>
  <tbody>
    <tr><td>Alice</td><td>Senior
      Engineer</td></tr>
  </tbody>
</table>
<table></table>`)

	tables := doc.Tables()
	require.Len(t, tables, 1)
	assert.Equal(t, "Name", tables[0].Cell(0, 0))
	assert.Equal(t, "Senior Engineer", tables[0].Cell(1, 1))
}

func TestParse_PageBreaks(t *testing.T) {
	doc := parseString(t, `<p>one</p><hr class="page-break"><p>two</p><hr>`)

	want := []model.NodeKind{model.KindParagraph, model.KindPageBreak, model.KindParagraph}
	assert.Equal(t, want, doc.Kinds())
	assert.Equal(t, 2, doc.PageCount)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edited.html")
	require.NoError(t, os.WriteFile(path, []byte(`<html><head><title>Resume</title></head><body><p>Hi</p></body></html>`), 0o644))

	doc, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "Resume", doc.Metadata.Title)

	_, err = Open(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}

func TestParseFontSize(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"12pt", 12},
		{"16px", 12},
		{"10.5pt", 10.5},
		{"1.2em", 0},
		{"large", 0},
		{"-3pt", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseFontSize(tt.in), "parseFontSize(%q)", tt.in)
	}
}
