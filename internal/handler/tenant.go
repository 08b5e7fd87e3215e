package handler

import (
	"log/slog"
	"net/http"

	"docvault/internal/domain/services"
	"docvault/internal/httputil"
)

// TenantHandler handles HTTP requests for tenant provisioning and
// removal
type TenantHandler struct {
	provisionService services.ProvisionService
	lifecycleService services.LifecycleService
	logger           *slog.Logger
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(
	provisionService services.ProvisionService,
	lifecycleService services.LifecycleService,
	logger *slog.Logger,
) *TenantHandler {
	return &TenantHandler{
		provisionService: provisionService,
		lifecycleService: lifecycleService,
		logger:           logger,
	}
}

// CreateTenant provisions a new tenant with its default folder set and
// template files
func (h *TenantHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	caller := httputil.GetCaller(r)
	if !caller.IsPrivileged {
		httputil.RespondError(w, http.StatusForbidden, "tenant provisioning requires an admin caller")
		return
	}

	var req services.CreateTenantRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := h.provisionService.CreateTenant(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, tenant)
}

// DeleteTenant cascade-deletes a tenant and its entire tree
func (h *TenantHandler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("id")
	if tenantID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Tenant ID is required")
		return
	}

	caller := httputil.GetCaller(r)

	if err := h.lifecycleService.DeleteTenant(r.Context(), caller, tenantID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
