package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rohits-web03/docdrop/internal/api/middleware"
	"github.com/rohits-web03/docdrop/internal/api/services"
	"github.com/rohits-web03/docdrop/internal/utils"
)

const maxUploadSize = 100 << 20 // 100 MB

// POST /upload-file/
// UploadFile godoc
// @Summary Upload a document (ops only)
// @Description Accepts .pptx, .docx, or .xlsx and returns an opaque download token.
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document to upload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.ErrorPayload
// @Failure 403 {object} utils.ErrorPayload
// @Security BearerAuth
// @Router /upload-file/ [post]
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid file upload form")
		return
	}
	src, header, err := r.FormFile("file")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer src.Close()

	record, err := h.transfers.Upload(r.Context(), user, header.Filename, src)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFileType) {
			utils.JSONError(w, http.StatusBadRequest, "Invalid file type")
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	utils.JSONResponse(w, http.StatusOK, map[string]string{
		"message":        "File uploaded successfully",
		"download_token": record.DownloadToken,
	})
}

// GET /download-file/{file_id}
// GetDownloadLink godoc
// @Summary Get the download link for a file (ops only)
// @Description Maps a numeric file id to its token-based download path.
// @Tags Files
// @Produce json
// @Param file_id path int true "File id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} utils.ErrorPayload
// @Failure 404 {object} utils.ErrorPayload
// @Security BearerAuth
// @Router /download-file/{file_id} [get]
func (h *Handler) GetDownloadLink(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	fileID, err := strconv.ParseUint(r.PathValue("file_id"), 10, 32)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid file id")
		return
	}

	// Existence is checked before the role so an ops-only caller still gets
	// a 404 for an unknown id.
	record, err := h.transfers.FindByID(r.Context(), uint(fileID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "File not found")
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !user.IsOpsUser {
		utils.JSONError(w, http.StatusForbidden, "Access denied")
		return
	}

	utils.JSONResponse(w, http.StatusOK, map[string]string{
		"download-link": "/download/" + record.DownloadToken,
		"message":       "success",
	})
}

// GET /download/{token}
// DownloadFile godoc
// @Summary Download a file by token (non-ops only)
// @Description Streams the stored document with its original filename.
// @Tags Files
// @Produce application/octet-stream
// @Param token path string true "Download token"
// @Success 200 {file} binary
// @Failure 403 {object} utils.ErrorPayload
// @Failure 404 {object} utils.ErrorPayload
// @Security BearerAuth
// @Router /download/{token} [get]
func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	token := r.PathValue("token")
	record, err := h.transfers.FindByToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "File not found")
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Raw downloads are for regular users; ops users get links via
	// /download-file instead.
	if user.IsOpsUser {
		utils.JSONError(w, http.StatusForbidden, "Access denied")
		return
	}

	content, err := h.transfers.OpenContent(r.Context(), record)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "File not found")
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.Filename))
	// Status and headers are already out; a copy failure here can only be
	// logged by the transport.
	_, _ = io.Copy(w, content)
}

// FileListItem is one entry of the /files response.
type FileListItem struct {
	Filename      string `json:"filename"`
	DownloadToken string `json:"download_token"`
}

// GET /files
// ListFiles godoc
// @Summary List visible files
// @Description Ops users see every file; regular users see only their own uploads.
// @Tags Files
// @Produce json
// @Success 200 {array} handlers.FileListItem
// @Security BearerAuth
// @Router /files [get]
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	records, err := h.transfers.ListFor(r.Context(), user)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Database error")
		return
	}

	items := make([]FileListItem, 0, len(records))
	for _, rec := range records {
		items = append(items, FileListItem{
			Filename:      rec.Filename,
			DownloadToken: rec.DownloadToken,
		})
	}
	utils.JSONResponse(w, http.StatusOK, items)
}
