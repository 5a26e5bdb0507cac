package pdfword

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfword/docx"
	"github.com/tsawler/pdfword/extract"
	"github.com/tsawler/pdfword/internal/pdftest"
	"github.com/tsawler/pdfword/layout"
	"github.com/tsawler/pdfword/model"
	"github.com/tsawler/pdfword/tables"
)

const testPageWidth = 600.0

// run builds a regular 12pt run with a width proportional to its text.
func run(text string, x, y float64) model.TextRun {
	return styledRun(text, x, y, 12, "Helvetica")
}

func styledRun(text string, x, y, size float64, font string) model.TextRun {
	return model.NewTextRun(text, x, y, float64(len(text))*size*0.5, size, font)
}

// fakeParser returns one page per runs slice, 600 points wide.
func fakeParser(meta model.Metadata, pages ...[]model.TextRun) extract.Parser {
	return extract.ParserFunc(func([]byte) (*extract.Source, error) {
		src := &extract.Source{Metadata: meta}
		for i, runs := range pages {
			src.Pages = append(src.Pages, extract.Page{
				Number: i + 1,
				Width:  testPageWidth,
				Height: 800,
				Runs:   runs,
			})
		}
		return src, nil
	})
}

func prosePage(texts ...string) []model.TextRun {
	var runs []model.TextRun
	for i, s := range texts {
		runs = append(runs, run(s, 72, 700-float64(i)*20))
	}
	return runs
}

func tablePage(rows ...[2]string) []model.TextRun {
	var runs []model.TextRun
	for i, r := range rows {
		y := 700 - float64(i)*20
		runs = append(runs, run(r[0], 50, y), run(r[1], 300, y))
	}
	return runs
}

func TestConverter_Document_TwoPageScenario(t *testing.T) {
	conv := New().Parser(fakeParser(model.Metadata{Title: "Resume"},
		prosePage("Summary", "Go developer", "Open source"),
		tablePage(
			[2]string{"Skill", "Years"},
			[2]string{"Go", "5"},
			[2]string{"SQL", "3"},
			[2]string{"Docker", "2"},
		),
	))

	doc, warnings, err := conv.Document(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, []model.NodeKind{
		model.KindParagraph,
		model.KindParagraph,
		model.KindParagraph,
		model.KindPageBreak,
		model.KindTable,
	}, doc.Kinds())

	table := doc.Tables()[0]
	assert.Equal(t, 4, table.RowCount())
	assert.Equal(t, 2, table.ColCount())
	assert.Equal(t, []string{"Go", "5"}, table.Rows[1])
	assert.Equal(t, []float64{50, 300}, table.Columns)

	assert.Equal(t, 2, doc.PageCount)
	assert.Equal(t, "Resume", doc.Metadata.Title)
	assert.Equal(t, "Summary", doc.Paragraphs()[0].Text())
}

func TestConverter_Document_PageBreakCount(t *testing.T) {
	for _, pageCount := range []int{1, 2, 3, 5} {
		pages := make([][]model.TextRun, pageCount)
		for i := range pages {
			pages[i] = prosePage("line")
		}

		doc, _, err := New().Parser(fakeParser(model.Metadata{}, pages...)).Document(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, pageCount-1, doc.Count(model.KindPageBreak), "pages=%d", pageCount)
		assert.NotEqual(t, model.KindPageBreak, doc.Nodes[len(doc.Nodes)-1].Kind(), "no trailing break")
	}
}

func TestConverter_Document_EmptyPages(t *testing.T) {
	tests := []struct {
		name  string
		pages [][]model.TextRun
		want  []model.NodeKind
		noTxt int
	}{
		{
			name:  "no pages",
			pages: nil,
			want:  []model.NodeKind{model.KindParagraph},
		},
		{
			name:  "one empty page",
			pages: [][]model.TextRun{nil},
			want:  []model.NodeKind{model.KindParagraph},
			noTxt: 1,
		},
		{
			name:  "three empty pages",
			pages: [][]model.TextRun{nil, nil, nil},
			want:  []model.NodeKind{model.KindPageBreak, model.KindPageBreak, model.KindParagraph},
			noTxt: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, warnings, err := New().Parser(fakeParser(model.Metadata{}, tt.pages...)).Document(context.Background(), nil)
			require.NoError(t, err)

			assert.Equal(t, tt.want, doc.Kinds())
			assert.True(t, doc.Paragraphs()[0].IsEmpty())
			assert.True(t, HasWarning(warnings, WarnEmptyDocument))

			noText := 0
			for _, w := range warnings {
				if w.Code == WarnNoText {
					noText++
					assert.Positive(t, w.Page)
				}
			}
			assert.Equal(t, tt.noTxt, noText)
		})
	}
}

func TestConverter_Document_TableOnlyPage(t *testing.T) {
	conv := New().Parser(fakeParser(model.Metadata{Title: "Skills"},
		tablePage(
			[2]string{"Skill", "Years"},
			[2]string{"Go", "5"},
			[2]string{"SQL", "3"},
		),
	))

	doc, warnings, err := conv.Document(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []model.NodeKind{model.KindTable, model.KindParagraph}, doc.Kinds())
	assert.False(t, HasWarning(warnings, WarnEmptyDocument))
	assert.Empty(t, warnings)
}

func TestConverter_Document_ScannedPageAmongText(t *testing.T) {
	doc, warnings, err := New().Parser(fakeParser(model.Metadata{},
		prosePage("First"),
		nil,
		prosePage("Third"),
	)).Document(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []model.NodeKind{
		model.KindParagraph,
		model.KindPageBreak,
		model.KindPageBreak,
		model.KindParagraph,
	}, doc.Kinds())
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnNoText, warnings[0].Code)
	assert.Equal(t, 2, warnings[0].Page)
}

func TestConverter_Document_Styles(t *testing.T) {
	doc, _, err := New().Parser(fakeParser(model.Metadata{}, []model.TextRun{
		styledRun("Jane Doe", 72, 750, 18, "Arial-BoldMT"),
		run("centred", 280, 720),
		run("right", 590, 700),
		styledRun("note", 10, 680, 0, "Times-Italic"),
	})).Document(context.Background(), nil)
	require.NoError(t, err)

	paras := doc.Paragraphs()
	require.Len(t, paras, 4)

	assert.Equal(t, model.Heading1, paras[0].Heading)
	assert.True(t, paras[0].Runs[0].Bold)
	assert.Equal(t, 18.0, paras[0].Runs[0].Size)
	assert.Equal(t, model.AlignLeft, paras[0].Alignment)

	assert.Equal(t, model.AlignCenter, paras[1].Alignment)
	assert.Equal(t, model.HeadingNone, paras[1].Heading)
	assert.Equal(t, model.AlignRight, paras[2].Alignment)

	assert.True(t, paras[3].Runs[0].Italic)
	assert.Equal(t, 12.0, paras[3].Runs[0].Size, "unknown size falls back to the default")
}

func TestConverter_Document_ParseError(t *testing.T) {
	cause := errors.New("broken xref")
	conv := New().Parser(extract.ParserFunc(func([]byte) (*extract.Source, error) {
		return nil, cause
	}))

	doc, _, err := conv.Document(context.Background(), []byte("junk"))
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrDocumentParse)
	assert.ErrorIs(t, err, cause)

	var parseErr *DocumentParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "failed to parse PDF", parseErr.Message)
}

func TestConverter_Document_NotAPDF(t *testing.T) {
	_, err := New().Convert(context.Background(), []byte("hello, world"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDocumentParse)
	assert.ErrorIs(t, err, extract.ErrNotPDF)
}

func TestConverter_Pages(t *testing.T) {
	parser := fakeParser(model.Metadata{}, prosePage("one"), prosePage("two"), prosePage("three"))

	doc, _, err := New().Parser(parser).Pages(3, 1, 3).Document(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "one\n\fthree\n", doc.Text())
	assert.Equal(t, 2, doc.PageCount)

	doc, _, err = New().Parser(parser).PageRange(2, 3).Document(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "two\n\fthree\n", doc.Text())

	_, _, err = New().Parser(parser).Pages(4).Document(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDocumentParse)
	assert.Contains(t, err.Error(), "page 4 out of range (1-3)")

	_, _, err = New().Parser(parser).Pages(0).Document(context.Background(), nil)
	assert.ErrorIs(t, err, ErrDocumentParse)

	_, _, err = New().Parser(parser).PageRange(2, 2000000000).Document(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2000000000 out of range (1-3)")

	doc, _, err = New().Parser(parser).PageRange(3, 2).Document(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "one\n\ftwo\n\fthree\n", doc.Text())
}

func TestConverter_Immutable(t *testing.T) {
	base := New()
	withPages := base.Pages(1)
	withTitle := withPages.DefaultTitle("Resume")

	assert.Nil(t, base.options.pages)
	assert.Equal(t, []pageRange{{1, 1}}, withPages.options.pages)
	assert.Equal(t, DefaultTitle, withPages.options.defaultTitle)
	assert.Equal(t, "Resume", withTitle.options.defaultTitle)

	more := withPages.PageRange(2, 4)
	assert.Equal(t, []pageRange{{1, 1}}, withPages.options.pages)
	assert.Equal(t, []pageRange{{1, 1}, {2, 4}}, more.options.pages)
}

func TestConverter_TableConfig(t *testing.T) {
	_, _, err := New().TableConfig(tables.Config{}).Document(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, tables.ErrInvalidConfig)

	_, err = New().TableConfig(tables.Config{}).ConvertFile(context.Background(), "unused.pdf")
	assert.ErrorIs(t, err, tables.ErrInvalidConfig)

	// A stricter config needs four shared columns, so the two-column
	// table stays prose.
	cfg := tables.DefaultConfig()
	cfg.MinSharedColumns = 4
	doc, _, err := New().
		Parser(fakeParser(model.Metadata{}, tablePage(
			[2]string{"a", "b"}, [2]string{"c", "d"}, [2]string{"e", "f"},
		))).
		TableConfig(cfg).
		Document(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, doc.Count(model.KindTable))
	assert.Equal(t, 3, doc.Count(model.KindParagraph))
}

func TestConverter_LineConfig(t *testing.T) {
	runs := []model.TextRun{run("left", 72, 700), run("right", 300, 696)}

	doc, _, err := New().Parser(fakeParser(model.Metadata{}, runs)).Document(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Count(model.KindParagraph))

	doc, _, err = New().
		Parser(fakeParser(model.Metadata{}, runs)).
		LineConfig(layout.LineConfig{Quantum: 1, Tolerance: 5}).
		Document(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Count(model.KindParagraph))
	assert.Equal(t, "left right", doc.Paragraphs()[0].Text())
}

type fixedStyle struct{}

func (fixedStyle) Infer(*layout.Line, float64) layout.Style {
	return layout.Style{Alignment: model.AlignRight, Heading: model.Heading2, Underline: true}
}

func TestConverter_StyleInferencer(t *testing.T) {
	conv := New().Parser(fakeParser(model.Metadata{}, prosePage("x")))

	doc, _, err := conv.StyleInferencer(fixedStyle{}).Document(context.Background(), nil)
	require.NoError(t, err)
	p := doc.Paragraphs()[0]
	assert.Equal(t, model.AlignRight, p.Alignment)
	assert.Equal(t, model.Heading2, p.Heading)
	assert.True(t, p.Runs[0].Underline)

	doc, _, err = conv.StyleInferencer(fixedStyle{}).StyleInferencer(nil).Document(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, model.HeadingNone, doc.Paragraphs()[0].Heading)
}

func TestConverter_Cancellation(t *testing.T) {
	parser := fakeParser(model.Metadata{}, prosePage("one"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := New().Parser(parser).Document(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)

	// Cancelled while parsing: the check before the first page stops it.
	ctx, cancel = context.WithCancel(context.Background())
	cancelling := extract.ParserFunc(func(data []byte) (*extract.Source, error) {
		cancel()
		return parser.Parse(data)
	})
	res, err := New().Parser(cancelling).Convert(ctx, nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "before page 1")
}

func TestConverter_Convert(t *testing.T) {
	conv := New().Parser(fakeParser(model.Metadata{Title: "Jane Doe / CV"}, prosePage("Hello")))

	res, err := conv.Convert(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe _ CV.docx", res.FileName)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, len(res.Data), res.Size())
	assert.NotEmpty(t, res.Base64())

	r, err := docx.OpenBytes(res.Data)
	require.NoError(t, err)
	doc, err := r.Document()
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe / CV", doc.Metadata.Title)
	assert.Equal(t, "Hello", doc.Paragraphs()[0].Text())
}

func TestConverter_Convert_MissingTitle(t *testing.T) {
	conv := New().Parser(fakeParser(model.Metadata{}, prosePage("Hello")))

	res, err := conv.Convert(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Converted Document.docx", res.FileName)
	assert.True(t, HasWarning(res.Warnings, WarnMissingTitle))
	assert.Empty(t, res.Document.Metadata.Title, "the returned document keeps the metadata as read")

	r, err := docx.OpenBytes(res.Data)
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, r.Metadata().Title)

	res, err = conv.DefaultTitle("My Resume").Convert(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "My Resume.docx", res.FileName)
}

func TestConverter_Convert_Idempotent(t *testing.T) {
	conv := New().Parser(fakeParser(model.Metadata{Title: "CV"},
		prosePage("Summary", "Go developer"),
		tablePage([2]string{"a", "b"}, [2]string{"c", "d"}, [2]string{"e", "f"}),
	))

	first, err := conv.Convert(context.Background(), []byte("same"))
	require.NoError(t, err)
	second, err := conv.Convert(context.Background(), []byte("same"))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first.Data, second.Data))
}

func TestConverter_ConcurrentUse(t *testing.T) {
	conv := New().Parser(fakeParser(model.Metadata{Title: "CV"}, prosePage("a", "b", "c")))

	want, err := conv.Convert(context.Background(), nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := conv.Convert(context.Background(), nil)
			if err == nil {
				results[i] = res.Data
			}
		}(i)
	}
	wg.Wait()

	for i, data := range results {
		assert.Equal(t, want.Data, data, "result %d", i)
	}
}

func TestConverter_ConvertFile_EndToEnd(t *testing.T) {
	b := pdftest.New()
	b.Title = "Jane Doe Resume"
	b.Page(
		pdftest.Text{Font: pdftest.FontBold, Size: 18, X: 280, Y: 740, S: "Jane Doe"},
		pdftest.At(72, 700, "Experience"),
	)
	var rows []pdftest.Text
	for i, r := range [][2]string{{"Name", "Role"}, {"Alice", "Engineer"}, {"Bob", "Designer"}, {"Carol", "Manager"}} {
		y := 700 - float64(i)*20
		rows = append(rows, pdftest.At(72, y, r[0]), pdftest.At(300, y, r[1]))
	}
	b.Page(rows...)

	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, b.Bytes(), 0o644))

	res, err := New().ConvertFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe Resume.docx", res.FileName)
	assert.Empty(t, res.Warnings)

	doc := res.Document
	assert.Equal(t, []model.NodeKind{
		model.KindParagraph,
		model.KindParagraph,
		model.KindPageBreak,
		model.KindTable,
	}, doc.Kinds())

	heading := doc.Paragraphs()[0]
	assert.Equal(t, "Jane Doe", heading.Text())
	assert.Equal(t, model.Heading1, heading.Heading)
	assert.Equal(t, model.AlignCenter, heading.Alignment)
	assert.True(t, heading.Runs[0].Bold)

	table := doc.Tables()[0]
	assert.Equal(t, [][]string{
		{"Name", "Role"},
		{"Alice", "Engineer"},
		{"Bob", "Designer"},
		{"Carol", "Manager"},
	}, table.Rows)

	r, err := docx.OpenBytes(res.Data)
	require.NoError(t, err)
	back, err := r.Document()
	require.NoError(t, err)
	assert.Equal(t, []model.NodeKind{
		model.KindParagraph,
		model.KindParagraph,
		model.KindPageBreak,
		model.KindTable,
		model.KindParagraph,
	}, back.Kinds())
	assert.Equal(t, 2, back.PageCount)
}

func TestConverter_ConvertFile_Missing(t *testing.T) {
	_, err := New().ConvertFile(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMust(t *testing.T) {
	assert.Equal(t, 3, Must(3, nil))
	assert.Panics(t, func() { Must(0, errors.New("boom")) })
}
