package handler

import (
	"log/slog"
	"net/http"
	"time"

	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// SweepHandler exposes the background sweeps for manual runs
type SweepHandler struct {
	lockService      services.LockService
	lifecycleService services.LifecycleService
	retention        time.Duration
	logger           *slog.Logger
}

// NewSweepHandler creates a new sweep handler
func NewSweepHandler(
	lockService services.LockService,
	lifecycleService services.LifecycleService,
	retention time.Duration,
	logger *slog.Logger,
) *SweepHandler {
	return &SweepHandler{
		lockService:      lockService,
		lifecycleService: lifecycleService,
		retention:        retention,
		logger:           logger,
	}
}

// RunPurge purges files soft-deleted longer ago than the retention
// period. The scheduled sweep runs the same operation hourly; this
// endpoint exists for operational use.
func (h *SweepHandler) RunPurge(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetCaller(r)
	if !caller.IsPrivileged {
		httputil.RespondError(w, http.StatusForbidden, "purge requires an admin caller")
		return
	}

	cutoff := time.Now().Add(-h.retention)
	purged, err := h.lifecycleService.Purge(r.Context(), cutoff)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"purged": purged})
}

// RunRelock re-locks folders whose unlock grants have expired
func (h *SweepHandler) RunRelock(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetCaller(r)
	if !caller.IsPrivileged {
		httputil.RespondError(w, http.StatusForbidden, "relock requires an admin caller")
		return
	}

	relocked, err := h.lockService.RelockExpired(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]int{"relocked": relocked})
}
