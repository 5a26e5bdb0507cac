package htmldoc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfword/model"
)

func previewDocument() *model.Document {
	doc := model.NewDocument()
	doc.Metadata.Title = "Jane <Doe>"
	doc.Metadata.Author = "Jane"
	doc.Append(
		&model.Paragraph{
			Runs:      []model.StyledText{{Text: "Jane Doe", Bold: true, Size: 18}},
			Alignment: model.AlignCenter,
			Heading:   model.Heading1,
		},
		&model.Paragraph{
			Runs:    []model.StyledText{{Text: "Experience", Bold: true, Size: 14}},
			Heading: model.Heading2,
		},
		&model.Paragraph{
			Runs:      []model.StyledText{{Text: "R&D <lead>", Italic: true, Underline: true, Size: 12}},
			Alignment: model.AlignRight,
		},
		&model.PageBreak{},
		&model.Table{Rows: [][]string{{"Name", "Role"}, {"Alice"}}},
		&model.Paragraph{},
	)
	return doc
}

func TestRender(t *testing.T) {
	out, err := Render(previewDocument())
	require.NoError(t, err)
	page := string(out)

	checks := []string{
		"<!DOCTYPE html>",
		`<meta charset="utf-8"/>`,
		"<title>Jane &lt;Doe&gt;</title>",
		`<meta name="author" content="Jane"/>`,
		`<h1 style="text-align:center"><span style="font-size:18pt"><strong>Jane Doe</strong></span></h1>`,
		`<h2><span style="font-size:14pt"><strong>Experience</strong></span></h2>`,
		`<p style="text-align:right"><span style="font-size:12pt"><em><u>R&amp;D &lt;lead&gt;</u></em></span></p>`,
		`<hr class="page-break"/>`,
		`<table class="converted"><tbody><tr><td>Name</td><td>Role</td></tr><tr><td>Alice</td><td></td></tr></tbody></table>`,
		"<p></p>",
	}
	for _, c := range checks {
		assert.Contains(t, page, c)
	}
}

func TestRender_NilDocument(t *testing.T) {
	out, err := Render(nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<body></body>")
}

func TestRender_RoundTrip(t *testing.T) {
	out, err := Render(previewDocument())
	require.NoError(t, err)

	doc, err := Parse(bytes.NewReader(out))
	require.NoError(t, err)

	want := []model.NodeKind{
		model.KindParagraph,
		model.KindParagraph,
		model.KindParagraph,
		model.KindPageBreak,
		model.KindTable,
		model.KindParagraph,
	}
	require.Equal(t, want, doc.Kinds())

	assert.Equal(t, "Jane <Doe>", doc.Metadata.Title)
	assert.Equal(t, "Jane", doc.Metadata.Author)

	paras := doc.Paragraphs()
	assert.Equal(t, model.Heading1, paras[0].Heading)
	assert.Equal(t, model.AlignCenter, paras[0].Alignment)
	assert.Equal(t, model.StyledText{Text: "Jane Doe", Bold: true, Size: 18}, paras[0].Runs[0])
	assert.Equal(t, model.Heading2, paras[1].Heading)
	assert.Equal(t, model.StyledText{Text: "R&D <lead>", Italic: true, Underline: true, Size: 12}, paras[2].Runs[0])
	assert.Equal(t, model.AlignRight, paras[2].Alignment)

	table := doc.Tables()[0]
	assert.Equal(t, "Role", table.Cell(0, 1))
	assert.Equal(t, "Alice", table.Cell(1, 0))
	assert.Empty(t, table.Cell(1, 1))
	assert.Equal(t, 2, doc.PageCount)
}
