package repositories

import (
	"context"

	"docvault/internal/domain/models"
)

// TenantRepository defines data access operations for tenants
type TenantRepository interface {
	// Create creates a new tenant
	Create(ctx context.Context, tenant *models.Tenant) error

	// GetByID retrieves a tenant by ID
	GetByID(ctx context.Context, id string) (*models.Tenant, error)

	// Delete deletes a tenant row; the database cascades to all of its
	// folders and files
	Delete(ctx context.Context, id string) error
}
