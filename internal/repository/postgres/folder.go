package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

const folderColumns = "id, tenant_id, parent_id, name, is_locked, password, created_at, updated_at"

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func scanFolder(row interface{ Scan(...any) error }, folder *models.Folder) error {
	return row.Scan(
		&folder.ID,
		&folder.TenantID,
		&folder.ParentID,
		&folder.Name,
		&folder.IsLocked,
		&folder.Password,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (tenant_id, parent_id, name, is_locked, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	err := r.pool.QueryRow(ctx, query,
		folder.TenantID,
		folder.ParentID,
		folder.Name,
		folder.IsLocked,
		folder.Password,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID within a tenant
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, tenantID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND tenant_id = $2
	`, folderColumns, r.tables.Folders)

	var folder models.Folder
	err := scanFolder(r.pool.QueryRow(ctx, query, id, tenantID), &folder)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// GetByIDOnly retrieves a folder by ID without tenant scoping
func (r *PostgresFolderRepository) GetByIDOnly(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, folderColumns, r.tables.Folders)

	var folder models.Folder
	err := scanFolder(r.pool.QueryRow(ctx, query, id), &folder)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// Rename updates a folder's name
func (r *PostgresFolderRepository) Rename(ctx context.Context, id, tenantID, name string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, updated_at = now()
		WHERE id = $2 AND tenant_id = $3
		RETURNING %s
	`, r.tables.Folders, folderColumns)

	var folder models.Folder
	err := scanFolder(r.pool.QueryRow(ctx, query, name, id, tenantID), &folder)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		if isPgDuplicateError(err) {
			return nil, fmt.Errorf("folder '%s': %w", name, domain.ErrConflict)
		}
		return nil, fmt.Errorf("rename folder: %w", err)
	}

	return &folder, nil
}

// SetLockState updates the lock flag and stored password in one
// statement. Per-row atomicity gives the last-writer-wins semantics for
// concurrent lock calls.
func (r *PostgresFolderRepository) SetLockState(ctx context.Context, id string, locked bool, password *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_locked = $1, password = $2, updated_at = now()
		WHERE id = $3
	`, r.tables.Folders)

	result, err := r.pool.Exec(ctx, query, locked, password, id)
	if err != nil {
		return fmt.Errorf("set lock state: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a folder row. The parent_id and files foreign keys are
// declared ON DELETE CASCADE, so the whole subtree is removed with it.
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, tenantID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND tenant_id = $2
	`, r.tables.Folders)

	result, err := r.pool.Exec(ctx, query, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListChildren lists immediate child folders
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, folderID *string, tenantID string) ([]models.Folder, error) {
	var query string
	var args []interface{}

	if folderID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE tenant_id = $1 AND parent_id IS NULL
			ORDER BY name ASC
		`, folderColumns, r.tables.Folders)
		args = append(args, tenantID)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE tenant_id = $1 AND parent_id = $2
			ORDER BY name ASC
		`, folderColumns, r.tables.Folders)
		args = append(args, tenantID, *folderID)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folder children: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := scanFolder(rows, &folder); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// GetAllByTenant retrieves all folders in a tenant (flat list)
func (r *PostgresFolderRepository) GetAllByTenant(ctx context.Context, tenantID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE tenant_id = $1
		ORDER BY created_at ASC
	`, folderColumns, r.tables.Folders)

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("get all folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := scanFolder(rows, &folder); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}
