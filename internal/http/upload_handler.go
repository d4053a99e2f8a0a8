package http

import (
	"net/http"

	"github.com/ghostshadow526/foodiesandstories/internal/upload"
)

const maxUploadSize = 10 << 20 // 10 MiB

type UploadHandler struct {
	uploader upload.Uploader
}

func NewUploadHandler(uploader upload.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

type UploadResponseDTO struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "expected multipart form with a file field")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing_file", "file field is required")
		return
	}
	defer file.Close()

	result, err := h.uploader.Upload(r.Context(), header.Filename, file)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "upload_failed", "could not upload file, please retry")
		return
	}

	respondJSON(w, http.StatusCreated, UploadResponseDTO{
		URL:    result.URL,
		FileID: result.FileID,
	})
}
