package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gibbs-towing/fleetsite/internal/editor"
	"github.com/gibbs-towing/fleetsite/internal/ingest"
)

const (
	maxUploadRequest = 100 * 1024 * 1024
	multipartMemory  = 32 * 1024 * 1024
)

type uploadFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// handleUpload ingests every file of the "files" field into the working list.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request, session *editor.Session) {
	files, err := h.readUploads(w, r, "files")
	if err != nil {
		h.writeError(w, "Failed to read upload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(files) == 0 {
		h.writeError(w, "No files uploaded", http.StatusBadRequest)
		return
	}

	result, err := session.Upload(r.Context(), files)
	if err != nil {
		h.writeEditorError(w, err)
		return
	}

	failures := make([]uploadFailure, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, uploadFailure{File: f.Name, Error: f.Err.Error()})
	}

	h.writeJSON(w, map[string]any{
		"message":  fmt.Sprintf("Processed %d file(s)", len(files)),
		"images":   len(result.Images),
		"failures": failures,
		"session":  session.Snapshot(),
	})
}

// handleReplaceImage compresses the single "file" field into the open draft.
func (h *Handler) handleReplaceImage(w http.ResponseWriter, r *http.Request, session *editor.Session) {
	files, err := h.readUploads(w, r, "file")
	if err != nil {
		h.writeError(w, "Failed to read upload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(files) != 1 {
		h.writeError(w, "Exactly one file is required", http.StatusBadRequest)
		return
	}

	if err := session.ReplaceDraftImage(r.Context(), files[0]); err != nil {
		h.writeEditorError(w, err)
		return
	}
	h.writeJSON(w, session.Snapshot())
}

func (h *Handler) readUploads(w http.ResponseWriter, r *http.Request, field string) ([]ingest.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadRequest)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, err
	}

	headers := r.MultipartForm.File[field]
	files := make([]ingest.File, 0, len(headers))
	for _, header := range headers {
		data, err := readPart(header)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", header.Filename, err)
		}
		files = append(files, ingest.File{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}

// readPart reads one past the size cap so oversized files are rejected by the pipeline.
func readPart(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, ingest.MaxFileSize+1))
}
