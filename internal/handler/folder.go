package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// FolderHandler handles HTTP requests for folder operations
type FolderHandler struct {
	folderService    services.FolderService
	lockService      services.LockService
	navigator        services.NavigatorService
	statsService     services.StatsService
	lifecycleService services.LifecycleService
	logger           *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(
	folderService services.FolderService,
	lockService services.LockService,
	navigator services.NavigatorService,
	statsService services.StatsService,
	lifecycleService services.LifecycleService,
	logger *slog.Logger,
) *FolderHandler {
	return &FolderHandler{
		folderService:    folderService,
		lockService:      lockService,
		navigator:        navigator,
		statsService:     statsService,
		lifecycleService: lifecycleService,
		logger:           logger,
	}
}

// HealthCheck returns a simple health status
func (h *FolderHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateFolder creates a new folder
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller := httputil.GetCaller(r)

	folder, err := h.folderService.CreateFolder(r.Context(), caller, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder retrieves a folder by ID
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")
	if folderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	caller := httputil.GetCaller(r)

	folder, err := h.folderService.GetFolder(r.Context(), caller, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, newFolderResponse(folder, caller))
}

// RenameFolder renames a folder
func (h *FolderHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")
	if folderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	var req services.RenameFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller := httputil.GetCaller(r)

	folder, err := h.folderService.RenameFolder(r.Context(), caller, folderID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder cascade-deletes a folder and its subtree
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")
	if folderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	caller := httputil.GetCaller(r)

	if err := h.lifecycleService.DeleteFolder(r.Context(), caller, folderID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// OpenFolder returns a folder and its visible contents. An optional
// password can be supplied via the X-Folder-Password header to open a
// locked folder without a standing grant.
func (h *FolderHandler) OpenFolder(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")
	if folderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	caller := httputil.GetCaller(r)
	password := r.Header.Get("X-Folder-Password")

	view, err := h.navigator.Open(r.Context(), caller, folderID, password)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// ListChildren lists folders at one level of the tree. With no parent
// query parameter it lists the tenant's root folders.
func (h *FolderHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetCaller(r)

	var parentID *string
	if parent := r.URL.Query().Get("parent"); parent != "" {
		parentID = &parent
	}
	includeLocked := r.URL.Query().Get("include_locked") == "true"

	folders, err := h.navigator.ListChildren(r.Context(), caller, parentID, includeLocked)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"folders": folders,
	})
}

// GetStats returns direct and recursive counts for a folder's subtree
func (h *FolderHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")
	if folderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	caller := httputil.GetCaller(r)

	stats, err := h.statsService.Stats(r.Context(), caller, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, stats)
}
