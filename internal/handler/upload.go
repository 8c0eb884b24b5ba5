package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/portfolio-dev/portfolio-server/internal/errors"
	"github.com/portfolio-dev/portfolio-server/internal/media"
)

const (
	uploadField = "file"
	sniffLen    = 512
)

type UploadHandler struct {
	uploader media.Uploader
	maxSize  int64
}

// NewUploadHandler accepts a nil uploader; uploads then fail as unconfigured.
func NewUploadHandler(uploader media.Uploader, maxSize int64) *UploadHandler {
	return &UploadHandler{uploader: uploader, maxSize: maxSize}
}

func (h *UploadHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Upload)
	return r
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		writeError(w, r, apperrors.Configuration("S3_BUCKET"))
		return
	}

	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, apperrors.PayloadTooLarge(h.maxSize))
			return
		}
		writeError(w, r, apperrors.InvalidInput(uploadField, "expected multipart form data"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, r, apperrors.InvalidInput(uploadField, "no file uploaded"))
		return
	}
	defer file.Close()

	if header.Size > h.maxSize {
		writeError(w, r, apperrors.PayloadTooLarge(h.maxSize))
		return
	}

	// The declared part type is client-controlled; trust the content instead.
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		writeError(w, r, apperrors.InvalidInput(uploadField, "unreadable file"))
		return
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, r, apperrors.InvalidInput(uploadField, "only image files are accepted"))
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, r, apperrors.Internal("Failed to rewind upload").WithCause(err))
		return
	}

	url, err := h.uploader.Upload(r.Context(), media.Object{
		Name:        header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		writeError(w, r, apperrors.External("media storage", err))
		return
	}

	log.Info().Str("url", url).Int64("size", header.Size).Msg("image uploaded")
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"url":     url,
	})
}
