package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsawler/pdfword"
	"github.com/tsawler/pdfword/xlsx"
)

// Request errors raised before the pipeline runs.
var (
	ErrMissingFile         = errors.New("file field is required")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidPages        = errors.New("invalid page selection")
	ErrEmptyBody           = errors.New("request body is empty")
)

// APIResponse is the standard envelope for all JSON responses.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// RespondAttachment sends data as a download named fileName.
func RespondAttachment(c *gin.Context, fileName, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, contentType, data)
}

// MapError translates pipeline and request errors to HTTP status codes and
// error codes.
func MapError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, ErrMissingFile):
		return http.StatusBadRequest, "MISSING_FILE", "file field is required"
	case errors.Is(err, ErrEmptyBody):
		return http.StatusBadRequest, "EMPTY_BODY", "request body is empty"
	case errors.Is(err, ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf"
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, ErrInvalidPages):
		return http.StatusBadRequest, "INVALID_PAGES", err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "CONVERSION_TIMEOUT", "conversion did not finish in time"
	case errors.Is(err, context.Canceled):
		return 499, "REQUEST_CANCELLED", "request was cancelled"
	case errors.Is(err, pdfword.ErrDocumentParse):
		return http.StatusUnprocessableEntity, "DOCUMENT_PARSE_ERROR", err.Error()
	case errors.Is(err, xlsx.ErrNoTables):
		return http.StatusUnprocessableEntity, "NO_TABLES", "no tables were detected in the document"
	case errors.Is(err, pdfword.ErrSerialization):
		return http.StatusInternalServerError, "SERIALIZATION_ERROR", "failed to build the output package"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps err and sends the matching error response. Server-side
// failures are logged with the request ID.
func HandleError(c *gin.Context, logger *slog.Logger, err error) {
	status, code, msg := MapError(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"request_id", c.GetString(requestIDKey),
			"code", code,
			"error", err,
		)
	}
	RespondError(c, status, code, msg)
}
