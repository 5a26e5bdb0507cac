package pdfword

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfword/model"
)

func TestDocumentParseError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := fmt.Errorf("converting: %w", &DocumentParseError{Message: "failed to parse PDF", Err: cause})

	assert.ErrorIs(t, err, ErrDocumentParse)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrSerialization)
	assert.EqualError(t, err, "converting: failed to parse PDF: unexpected EOF")

	bare := &DocumentParseError{Message: "empty input"}
	assert.Equal(t, "empty input", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestSerializationError(t *testing.T) {
	doc := model.NewDocument()
	cause := errors.New("disk full")
	var err error = &SerializationError{Message: "failed to build DOCX package", Err: cause, Document: doc}

	assert.ErrorIs(t, err, ErrSerialization)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrDocumentParse)

	var serr *SerializationError
	require.ErrorAs(t, err, &serr)
	assert.Same(t, doc, serr.Document)
	assert.Equal(t, "failed to build DOCX package: disk full", serr.Error())
}

func TestWarnings(t *testing.T) {
	warnings := []Warning{
		{Code: WarnNoText, Page: 2, Message: "no extractable text"},
		{Code: WarnMissingTitle, Message: "PDF has no title"},
	}

	assert.Equal(t, "page 2: no extractable text; PDF has no title", FormatWarnings(warnings))
	assert.True(t, HasWarning(warnings, WarnNoText))
	assert.False(t, HasWarning(warnings, WarnEmptyDocument))
	assert.Empty(t, FormatWarnings(nil))

	assert.Equal(t, "no_text", WarnNoText.String())
	assert.Equal(t, "empty_document", WarnEmptyDocument.String())
	assert.Equal(t, "unknown", WarningCode(0).String())
}
