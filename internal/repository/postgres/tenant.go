package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// PostgresTenantRepository implements the TenantRepository interface
type PostgresTenantRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(config *RepositoryConfig) repositories.TenantRepository {
	return &PostgresTenantRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new tenant
func (r *PostgresTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.Tenants)

	err := r.pool.QueryRow(ctx, query,
		tenant.Name,
		tenant.Type,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	).Scan(&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("tenant '%s': %w", tenant.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create tenant: %w", err)
	}

	return nil
}

// GetByID retrieves a tenant by ID
func (r *PostgresTenantRepository) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	query := fmt.Sprintf(`
		SELECT id, name, type, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Tenants)

	var tenant models.Tenant
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Type,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("tenant %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}

	return &tenant, nil
}

// Delete deletes a tenant row. Folders reference tenants with ON DELETE
// CASCADE, so the whole forest goes with it.
func (r *PostgresTenantRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Tenants)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tenant %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
