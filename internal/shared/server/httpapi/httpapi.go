// Package httpapi holds request parsing and error mapping shared by the
// feature handlers.
package httpapi

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nessydroid1192/may-tejiarte/internal/media"
	"github.com/nessydroid1192/may-tejiarte/internal/mediation"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/server/middleware"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/server/respond"
	"github.com/nessydroid1192/may-tejiarte/internal/viewstate"
)

// ErrMissingFile is returned when a required multipart file is absent.
var ErrMissingFile = errors.New("file is required")

// File is an opened multipart upload.
type File struct {
	io.ReadCloser
	MIMEType string
	Name     string
}

// OpenFile opens the multipart file in field. It returns ErrMissingFile when
// the field is absent.
func OpenFile(c *gin.Context, field string) (*File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, ErrMissingFile
		}
		return nil, err
	}
	return open(header)
}

// OptionalFile is OpenFile that returns nil when the field is absent.
func OptionalFile(c *gin.Context, field string) (*File, error) {
	f, err := OpenFile(c, field)
	if errors.Is(err, ErrMissingFile) {
		return nil, nil
	}
	return f, err
}

func open(header *multipart.FileHeader) (*File, error) {
	rc, err := header.Open()
	if err != nil {
		return nil, err
	}
	return &File{ReadCloser: rc, MIMEType: header.Header.Get("Content-Type"), Name: header.Filename}, nil
}

// EncodeOptional encodes an optional upload; a nil file yields nil media.
func EncodeOptional(f *File, maxBytes int64) (*media.Media, error) {
	if f == nil {
		return nil, nil
	}
	defer f.Close()
	m, err := media.Encode(f, f.MIMEType, maxBytes)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// WriteAnalysis responds with the result of an analysis-kind action.
func WriteAnalysis(c *gin.Context, res viewstate.AnalysisResult, err error) {
	c.Set(middleware.StatusTransitionKey, "loading->"+string(res.Status))
	if err == nil {
		respond.OK(c, res)
		return
	}
	Error(c, err, res)
}

// Error maps domain errors onto the shared error envelope.
func Error(c *gin.Context, err error, details any) {
	switch {
	case errors.Is(err, ErrMissingFile):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), details)
	case errors.Is(err, viewstate.ErrBusy):
		respond.Error(c, http.StatusConflict, "busy", "Another request is still in progress", details)
	case errors.Is(err, viewstate.ErrStale):
		respond.Error(c, http.StatusConflict, "superseded", "The request was reset before it finished", details)
	case errors.Is(err, media.ErrEncoding):
		respond.Error(c, http.StatusUnprocessableEntity, "encoding_error", "Could not process the uploaded file", details)
	case errors.Is(err, mediation.ErrTransport), errors.Is(err, mediation.ErrMalformedResponse):
		respond.Error(c, http.StatusBadGateway, "analysis_failed", "The analysis could not be completed", details)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Unexpected server error", details)
	}
}
