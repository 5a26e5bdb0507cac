package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tsawler/pdfword"
	"github.com/tsawler/pdfword/docx"
	"github.com/tsawler/pdfword/format"
	"github.com/tsawler/pdfword/htmldoc"
	"github.com/tsawler/pdfword/model"
	"github.com/tsawler/pdfword/xlsx"
)

// ConvertResponse is the data of a successful JSON conversion.
type ConvertResponse struct {
	FileName string            `json:"file_name"`
	Content  string            `json:"content"` // base64 .docx
	Size     int               `json:"size"`
	Pages    int               `json:"pages"`
	Warnings []pdfword.Warning `json:"warnings,omitempty"`
}

// Handler serves the conversion endpoints.
type Handler struct {
	conv      *pdfword.Converter
	writer    *docx.Writer
	logger    *slog.Logger
	maxUpload int64
}

// NewHandler creates a Handler. Uploads above maxUpload bytes are rejected.
func NewHandler(conv *pdfword.Converter, logger *slog.Logger, maxUpload int64) *Handler {
	return &Handler{
		conv:      conv,
		writer:    docx.NewWriter(),
		logger:    logger,
		maxUpload: maxUpload,
	}
}

// Health handles GET /healthz
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Convert handles POST /api/v1/convert
//
// The multipart form carries the PDF as "file" and an optional "pages"
// selection such as "1-2,4". The response is the JSON envelope with the
// package in base64, or the raw .docx when format=docx is given.
func (h *Handler) Convert(c *gin.Context) {
	conv, data, err := h.upload(c)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	res, err := conv.Convert(c.Request.Context(), data)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	if strings.EqualFold(c.Query("format"), "docx") {
		RespondAttachment(c, res.FileName, format.DOCX.MIMEType(), res.Data)
		return
	}

	RespondOK(c, ConvertResponse{
		FileName: res.FileName,
		Content:  res.Base64(),
		Size:     res.Size(),
		Pages:    res.Document.PageCount,
		Warnings: res.Warnings,
	})
}

// ConvertHTML handles POST /api/v1/convert/html
//
// It runs the same pipeline and returns the HTML preview the editor loads.
func (h *Handler) ConvertHTML(c *gin.Context) {
	doc, ok := h.document(c)
	if !ok {
		return
	}

	out, err := htmldoc.Render(doc)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, format.HTML.MIMEType(), out)
}

// ConvertTables handles POST /api/v1/convert/tables
//
// Every detected table becomes one sheet of the returned workbook. A PDF
// without tables gets 422 NO_TABLES.
func (h *Handler) ConvertTables(c *gin.Context) {
	doc, ok := h.document(c)
	if !ok {
		return
	}

	out, err := xlsx.ExportDocument(doc)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	name := strings.TrimSuffix(pdfword.FileName(doc.Metadata.Title, ""), format.DOCX.Extension()) + format.XLSX.Extension()
	RespondAttachment(c, name, format.XLSX.MIMEType(), out)
}

// Export handles POST /api/v1/export
//
// The body is the edited HTML from the browser editor. It is read back into
// a document and returned as a .docx named after the HTML title.
func (h *Handler) Export(c *gin.Context) {
	if c.Request.ContentLength > h.maxUpload {
		HandleError(c, h.logger, ErrFileTooLarge)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload))
	if err != nil {
		HandleError(c, h.logger, uploadError(err))
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		HandleError(c, h.logger, ErrEmptyBody)
		return
	}

	doc, err := htmldoc.Parse(bytes.NewReader(body))
	if err != nil {
		HandleError(c, h.logger, &pdfword.DocumentParseError{Message: "failed to parse HTML", Err: err})
		return
	}

	out, err := h.writer.Bytes(doc)
	if err != nil {
		HandleError(c, h.logger, &pdfword.SerializationError{Message: "failed to build DOCX package", Err: err, Document: doc})
		return
	}
	RespondAttachment(c, pdfword.FileName(doc.Metadata.Title, ""), format.DOCX.MIMEType(), out)
}

// document runs the pipeline without serialising. On failure the error
// response has been written and ok is false.
func (h *Handler) document(c *gin.Context) (doc *model.Document, ok bool) {
	conv, data, err := h.upload(c)
	if err != nil {
		HandleError(c, h.logger, err)
		return nil, false
	}

	doc, _, err = conv.Document(c.Request.Context(), data)
	if err != nil {
		HandleError(c, h.logger, err)
		return nil, false
	}
	return doc, true
}

// upload reads the PDF from the multipart form and returns a converter
// narrowed to the requested pages.
func (h *Handler) upload(c *gin.Context) (*pdfword.Converter, []byte, error) {
	if c.Request.ContentLength > h.maxUpload {
		return nil, nil, ErrFileTooLarge
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		return nil, nil, uploadError(err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, uploadError(err)
	}
	if !format.IsPDF(data) {
		return nil, nil, ErrUnsupportedFileType
	}

	pages, err := pdfword.ParsePages(c.PostForm("pages"))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPages, err)
	}

	conv := h.conv
	if len(pages) > 0 {
		conv = conv.Pages(pages...)
	}
	return conv, data, nil
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return ErrFileTooLarge
	}
	return ErrMissingFile
}
