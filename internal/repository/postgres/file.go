package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

const fileColumns = `id, folder_id, tenant_user_id, name, external_key, url, size,
		mime_type, category, issue_date, expiry_date, renewal_date,
		place_of_issue, deleted_at, created_at, updated_at`

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) repositories.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func scanFile(row interface{ Scan(...any) error }, file *models.File) error {
	return row.Scan(
		&file.ID,
		&file.FolderID,
		&file.TenantUserID,
		&file.Name,
		&file.ExternalKey,
		&file.URL,
		&file.Size,
		&file.MimeType,
		&file.Category,
		&file.IssueDate,
		&file.ExpiryDate,
		&file.RenewalDate,
		&file.PlaceOfIssue,
		&file.DeletedAt,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
}

// Create creates a new file row
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (folder_id, tenant_user_id, name, external_key, url, size,
			mime_type, category, issue_date, expiry_date, renewal_date,
			place_of_issue, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`, r.tables.Files)

	err := r.pool.QueryRow(ctx, query,
		file.FolderID,
		file.TenantUserID,
		file.Name,
		file.ExternalKey,
		file.URL,
		file.Size,
		file.MimeType,
		file.Category,
		file.IssueDate,
		file.ExpiryDate,
		file.RenewalDate,
		file.PlaceOfIssue,
		file.CreatedAt,
		file.UpdatedAt,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder %s: %w", file.FolderID, domain.ErrNotFound)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by ID, soft-deleted rows included
func (r *PostgresFileRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1
	`, fileColumns, r.tables.Files)

	var file models.File
	err := scanFile(r.pool.QueryRow(ctx, query, id), &file)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

// ListByFolder lists live files in a folder
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE folder_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
	`, fileColumns, r.tables.Files)

	return r.queryFiles(ctx, query, folderID)
}

// ListByFolders lists live files across a set of folders in one query
func (r *PostgresFileRepository) ListByFolders(ctx context.Context, folderIDs []string) ([]models.File, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE folder_id = ANY($1) AND deleted_at IS NULL
		ORDER BY name ASC
	`, fileColumns, r.tables.Files)

	return r.queryFiles(ctx, query, folderIDs)
}

// ListAllByFolders lists all files across a set of folders, soft-deleted
// included. Cascading delete uses this to collect external keys for a
// whole subtree in one round trip.
func (r *PostgresFileRepository) ListAllByFolders(ctx context.Context, folderIDs []string) ([]models.File, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE folder_id = ANY($1)
	`, fileColumns, r.tables.Files)

	return r.queryFiles(ctx, query, folderIDs)
}

// ListDeleted lists soft-deleted files for a tenant (trash view)
func (r *PostgresFileRepository) ListDeleted(ctx context.Context, tenantID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT f.id, f.folder_id, f.tenant_user_id, f.name, f.external_key, f.url,
			f.size, f.mime_type, f.category, f.issue_date, f.expiry_date,
			f.renewal_date, f.place_of_issue, f.deleted_at, f.created_at, f.updated_at
		FROM %s f
		JOIN %s fo ON fo.id = f.folder_id
		WHERE fo.tenant_id = $1 AND f.deleted_at IS NOT NULL
		ORDER BY f.deleted_at DESC
	`, r.tables.Files, r.tables.Folders)

	return r.queryFiles(ctx, query, tenantID)
}

// ListDeletedBefore lists files soft-deleted at or before the cutoff
func (r *PostgresFileRepository) ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE deleted_at IS NOT NULL AND deleted_at <= $1
		ORDER BY deleted_at ASC
	`, fileColumns, r.tables.Files)

	return r.queryFiles(ctx, query, cutoff)
}

// CountLiveByFolders returns live file counts keyed by folder ID
func (r *PostgresFileRepository) CountLiveByFolders(ctx context.Context, folderIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(folderIDs))
	if len(folderIDs) == 0 {
		return counts, nil
	}

	query := fmt.Sprintf(`
		SELECT folder_id, COUNT(*)
		FROM %s
		WHERE folder_id = ANY($1) AND deleted_at IS NULL
		GROUP BY folder_id
	`, r.tables.Files)

	rows, err := r.pool.Query(ctx, query, folderIDs)
	if err != nil {
		return nil, fmt.Errorf("count files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var folderID string
		var count int
		if err := rows.Scan(&folderID, &count); err != nil {
			return nil, fmt.Errorf("scan file count: %w", err)
		}
		counts[folderID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file counts: %w", err)
	}

	return counts, nil
}

// SetDeletedAt sets or clears the soft-delete marker
func (r *PostgresFileRepository) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time) (*models.File, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = $1, updated_at = now()
		WHERE id = $2
		RETURNING %s
	`, r.tables.Files, fileColumns)

	var file models.File
	err := scanFile(r.pool.QueryRow(ctx, query, deletedAt, id), &file)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("set deleted_at: %w", err)
	}

	return &file, nil
}

// Delete hard-deletes a file row. Deleting an already-purged row is
// reported as ErrNotFound; purge treats that as success.
func (r *PostgresFileRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Files)

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresFileRepository) queryFiles(ctx context.Context, query string, args ...interface{}) ([]models.File, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var file models.File
		if err := scanFile(rows, &file); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}
