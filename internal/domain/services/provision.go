package services

import (
	"context"

	"docvault/internal/domain/models"
)

// ProvisionService seeds new tenants: a tenant-type-specific default
// folder set plus a Templates folder populated from the static template
// manifest. Template blobs are shared across tenants and are never
// deleted as a side effect of any tenant's cascading delete.
type ProvisionService interface {
	// CreateTenant creates the tenant row and seeds its default folders
	// and template files (attributed to no user)
	CreateTenant(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error)
}

// CreateTenantRequest represents a tenant creation request
type CreateTenantRequest struct {
	Name string            `json:"name"`
	Type models.TenantType `json:"type"`
}
