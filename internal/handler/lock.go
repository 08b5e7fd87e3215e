package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// LockHandler handles HTTP requests for folder lock operations
type LockHandler struct {
	lockService services.LockService
	logger      *slog.Logger
}

// NewLockHandler creates a new lock handler
func NewLockHandler(lockService services.LockService, logger *slog.Logger) *LockHandler {
	return &LockHandler{
		lockService: lockService,
		logger:      logger,
	}
}

type passwordRequest struct {
	Password string `json:"password"`
}

// LockFolder locks a folder with a password
func (h *LockHandler) LockFolder(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")
	if folderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	var req passwordRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller := httputil.GetCaller(r)

	folder, err := h.lockService.Lock(r.Context(), caller, folderID, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, newFolderResponse(folder, caller))
}

// UnlockFolder unlocks a folder after verifying its password
func (h *LockHandler) UnlockFolder(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")
	if folderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	var req passwordRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller := httputil.GetCaller(r)

	folder, err := h.lockService.Unlock(r.Context(), caller, folderID, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, newFolderResponse(folder, caller))
}

// VerifyPassword checks a folder password without changing lock state
func (h *LockHandler) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")
	if folderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Folder ID is required")
		return
	}

	var req passwordRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller := httputil.GetCaller(r)

	valid, err := h.lockService.Verify(r.Context(), caller, folderID, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}
