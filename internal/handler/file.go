package handler

import (
	"log/slog"
	"net/http"
	"time"

	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// maxUploadSize caps multipart upload bodies (32 MB)
const maxUploadSize = 32 << 20

// FileHandler handles HTTP requests for file operations
type FileHandler struct {
	fileService      services.FileService
	lifecycleService services.LifecycleService
	logger           *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(
	fileService services.FileService,
	lifecycleService services.LifecycleService,
	logger *slog.Logger,
) *FileHandler {
	return &FileHandler{
		fileService:      fileService,
		lifecycleService: lifecycleService,
		logger:           logger,
	}
}

// UploadFile accepts a multipart upload, stores the content externally,
// and creates the file record
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	content, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer content.Close()

	req := &services.UploadFileRequest{
		FolderID:     r.FormValue("folder_id"),
		Name:         header.Filename,
		Content:      content,
		Size:         header.Size,
		MimeType:     header.Header.Get("Content-Type"),
		Category:     r.FormValue("category"),
		PlaceOfIssue: r.FormValue("place_of_issue"),
	}
	if name := r.FormValue("name"); name != "" {
		req.Name = name
	}
	if req.IssueDate, err = parseDateField(r.FormValue("issue_date")); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid issue_date")
		return
	}
	if req.ExpiryDate, err = parseDateField(r.FormValue("expiry_date")); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid expiry_date")
		return
	}
	if req.RenewalDate, err = parseDateField(r.FormValue("renewal_date")); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid renewal_date")
		return
	}

	caller := httputil.GetCaller(r)

	file, err := h.fileService.UploadFile(r.Context(), caller, req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// GetFile retrieves a file by ID
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	fileID := r.PathValue("id")
	if fileID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	caller := httputil.GetCaller(r)

	file, err := h.fileService.GetFile(r.Context(), caller, fileID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// SoftDeleteFile marks a file deleted without removing it
func (h *FileHandler) SoftDeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID := r.PathValue("id")
	if fileID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	caller := httputil.GetCaller(r)

	file, err := h.lifecycleService.SoftDelete(r.Context(), caller, fileID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// RestoreFile clears a file's soft-delete marker
func (h *FileHandler) RestoreFile(w http.ResponseWriter, r *http.Request) {
	fileID := r.PathValue("id")
	if fileID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	caller := httputil.GetCaller(r)

	file, err := h.lifecycleService.Restore(r.Context(), caller, fileID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// PermanentDeleteFile removes a file's blob and row immediately
func (h *FileHandler) PermanentDeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID := r.PathValue("id")
	if fileID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "File ID is required")
		return
	}

	caller := httputil.GetCaller(r)

	if err := h.lifecycleService.PermanentDelete(r.Context(), caller, fileID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTrash lists the caller's tenant's soft-deleted files
func (h *FileHandler) ListTrash(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetCaller(r)

	files, err := h.fileService.ListDeleted(r.Context(), caller)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"files": files,
	})
}

// parseDateField parses an optional RFC 3339 date form value
func parseDateField(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
