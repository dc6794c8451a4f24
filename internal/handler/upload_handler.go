package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"file-converter-api/internal/config"
	"file-converter-api/internal/domain"

	"github.com/gorilla/mux"
)

// UploadHandler exposes the upload status tracker
type UploadHandler struct {
	container *config.Container
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(container *config.Container) *UploadHandler {
	return &UploadHandler{container: container}
}

type registerUploadRequest struct {
	FileName  string `json:"fileName"`
	FileSize  int64  `json:"fileSize"`
	FileType  string `json:"fileType"`
	FileCount int    `json:"fileCount"`
}

// RegisterUpload creates a pending status entry and returns its id. When
// the client declares the file's size and type they are checked against
// the caller's plan before the entry is created.
func (h *UploadHandler) RegisterUpload(w http.ResponseWriter, r *http.Request) {
	authUser, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var req registerUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FileName == "" {
		writeError(w, http.StatusBadRequest, "fileName is required")
		return
	}

	if req.FileType != "" || req.FileCount > 0 {
		user, err := h.container.QuotaService.GetOrCreateUser(authUser)
		if err != nil {
			writeInternalError(w, h.container.Logger, "Failed to load user for upload validation", err)
			return
		}
		if req.FileType != "" {
			if ok, reason := domain.ValidateFile(req.FileSize, domain.FileCategory(req.FileType), user.Plan); !ok {
				writeError(w, http.StatusBadRequest, reason)
				return
			}
		}
		if req.FileCount > 0 && !domain.ValidateFileCount(req.FileCount, user.Plan) {
			writeError(w, http.StatusBadRequest, "Too many files for the current plan")
			return
		}
	}

	status := h.container.UploadTracker.Create(req.FileName)
	writeJSON(w, http.StatusCreated, status)
}

type updateUploadRequest struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// UpdateUploadStatus transitions a tracked upload.
func (h *UploadHandler) UpdateUploadStatus(w http.ResponseWriter, r *http.Request) {
	uploadID := mux.Vars(r)["uploadId"]
	if uploadID == "" {
		writeError(w, http.StatusBadRequest, "Upload ID is required")
		return
	}

	var req updateUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	state := domain.UploadState(req.Status)
	if !domain.ValidUploadState(state) {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	status, err := h.container.UploadTracker.SetStatus(uploadID, state, req.Error)
	if err != nil {
		if errors.Is(err, domain.ErrUploadNotFound) {
			writeError(w, http.StatusNotFound, "Upload not found")
			return
		}
		writeInternalError(w, h.container.Logger, "Failed to update upload status", err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// GetUploadStatus returns the tracked status for an upload id.
func (h *UploadHandler) GetUploadStatus(w http.ResponseWriter, r *http.Request) {
	uploadID := mux.Vars(r)["uploadId"]
	if uploadID == "" {
		writeError(w, http.StatusBadRequest, "Upload ID is required")
		return
	}

	status, err := h.container.UploadTracker.Get(uploadID)
	if err != nil {
		if errors.Is(err, domain.ErrUploadNotFound) {
			writeError(w, http.StatusNotFound, "Upload not found")
			return
		}
		writeInternalError(w, h.container.Logger, "Failed to get upload status", err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

// Upload is a placeholder for the chunked (TUS-style) upload endpoint.
// Conversion currently happens client-side; the server never receives
// file bytes.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotImplemented, "Direct upload is not implemented")
}
