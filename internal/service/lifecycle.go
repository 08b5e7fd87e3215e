package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"docvault/internal/config"
	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
	"docvault/internal/seed"
	"docvault/internal/storage"
)

type lifecycleService struct {
	tenantRepo repositories.TenantRepository
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	grants     repositories.GrantStore
	blobs      storage.BlobStore
	templates  *seed.TemplateSet
	logger     *slog.Logger

	retention time.Duration
	now       func() time.Time
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(
	tenantRepo repositories.TenantRepository,
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	grants repositories.GrantStore,
	blobs storage.BlobStore,
	templates *seed.TemplateSet,
	logger *slog.Logger,
) services.LifecycleService {
	return &lifecycleService{
		tenantRepo: tenantRepo,
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		grants:     grants,
		blobs:      blobs,
		templates:  templates,
		logger:     logger,
		retention:  config.TrashRetention,
		now:        time.Now,
	}
}

// DeleteFolder cascades over the folder's whole subtree: collect every
// external key (no lock gating, soft-deleted files included), subtract
// the shared template set, delete the remaining blobs best-effort, then
// delete the root row and let the database cascade take the rest.
func (s *lifecycleService) DeleteFolder(ctx context.Context, caller models.Caller, folderID string) error {
	if !caller.IsPrivileged {
		return fmt.Errorf("delete folder: %w", domain.ErrForbidden)
	}

	folder, err := s.folderRepo.GetByIDOnly(ctx, folderID)
	if err != nil {
		return err
	}
	if folder.TenantID != caller.TenantID {
		return fmt.Errorf("folder %s: %w", folderID, domain.ErrWrongTenant)
	}

	allFolders, err := s.folderRepo.GetAllByTenant(ctx, folder.TenantID)
	if err != nil {
		return fmt.Errorf("load folder forest: %w", err)
	}
	subtree := collectSubtree(buildChildIndex(allFolders), folderID)

	keys, err := s.collectExternalKeys(ctx, subtree)
	if err != nil {
		return err
	}

	s.deleteBlobs(ctx, keys)
	s.dropGrants(ctx, subtree)

	// A storage leak is acceptable; an orphaned row is not. The
	// structural delete must succeed or the whole operation fails.
	if err := s.folderRepo.Delete(ctx, folderID, folder.TenantID); err != nil {
		return fmt.Errorf("structural delete failed: %w", err)
	}

	s.logger.Info("folder subtree deleted",
		"folder_id", folderID,
		"tenant_id", folder.TenantID,
		"folders", len(subtree),
		"blobs", len(keys),
		"user_id", caller.UserID,
	)

	return nil
}

// DeleteTenant cascades over the tenant's entire forest, then removes
// the tenant row
func (s *lifecycleService) DeleteTenant(ctx context.Context, caller models.Caller, tenantID string) error {
	if !caller.IsPrivileged {
		return fmt.Errorf("delete tenant: %w", domain.ErrForbidden)
	}
	if caller.TenantID != tenantID {
		return fmt.Errorf("tenant %s: %w", tenantID, domain.ErrWrongTenant)
	}

	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		return err
	}

	allFolders, err := s.folderRepo.GetAllByTenant(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("load folder forest: %w", err)
	}

	folderIDs := make([]string, 0, len(allFolders))
	for _, folder := range allFolders {
		folderIDs = append(folderIDs, folder.ID)
	}

	keys, err := s.collectExternalKeys(ctx, folderIDs)
	if err != nil {
		return err
	}

	s.deleteBlobs(ctx, keys)
	s.dropGrants(ctx, folderIDs)

	if err := s.tenantRepo.Delete(ctx, tenantID); err != nil {
		return fmt.Errorf("structural delete failed: %w", err)
	}

	s.logger.Info("tenant deleted",
		"tenant_id", tenantID,
		"folders", len(folderIDs),
		"blobs", len(keys),
		"user_id", caller.UserID,
	)

	return nil
}

// SoftDelete marks a file deleted. Already-deleted files pass through
// unchanged.
func (s *lifecycleService) SoftDelete(ctx context.Context, caller models.Caller, fileID string) (*models.File, error) {
	file, err := s.getTenantFile(ctx, caller, fileID)
	if err != nil {
		return nil, err
	}
	if file.IsDeleted() {
		return file, nil
	}

	deletedAt := s.now()
	updated, err := s.fileRepo.SetDeletedAt(ctx, fileID, &deletedAt)
	if err != nil {
		return nil, err
	}

	s.logger.Info("file soft-deleted",
		"file_id", fileID,
		"name", file.Name,
		"user_id", caller.UserID,
	)

	return updated, nil
}

// Restore clears the soft-delete marker. Live files pass through
// unchanged.
func (s *lifecycleService) Restore(ctx context.Context, caller models.Caller, fileID string) (*models.File, error) {
	file, err := s.getTenantFile(ctx, caller, fileID)
	if err != nil {
		return nil, err
	}
	if !file.IsDeleted() {
		return file, nil
	}

	updated, err := s.fileRepo.SetDeletedAt(ctx, fileID, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Info("file restored",
		"file_id", fileID,
		"name", file.Name,
		"user_id", caller.UserID,
	)

	return updated, nil
}

// PermanentDelete is a single purge step invoked synchronously by a
// user
func (s *lifecycleService) PermanentDelete(ctx context.Context, caller models.Caller, fileID string) error {
	file, err := s.getTenantFile(ctx, caller, fileID)
	if err != nil {
		return err
	}

	if err := s.purgeFile(ctx, file); err != nil {
		return err
	}

	s.logger.Info("file permanently deleted",
		"file_id", fileID,
		"name", file.Name,
		"user_id", caller.UserID,
	)

	return nil
}

// Purge hard-deletes every file soft-deleted at or before the cutoff,
// continuing past per-file failures. Rows already gone count as
// success, which makes back-to-back runs converge on the same state.
func (s *lifecycleService) Purge(ctx context.Context, cutoff time.Time) (int, error) {
	files, err := s.fileRepo.ListDeletedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list expired files: %w", err)
	}

	purged := 0
	for i := range files {
		if err := s.purgeFile(ctx, &files[i]); err != nil {
			s.logger.Warn("purge file failed",
				"file_id", files[i].ID,
				"error", err,
			)
			continue
		}
		purged++
	}

	if len(files) > 0 {
		s.logger.Info("purge sweep complete",
			"cutoff", cutoff,
			"matched", len(files),
			"purged", purged,
		)
	}

	return purged, nil
}

// purgeFile removes one file's blob (best-effort, template keys exempt)
// and hard-deletes the row
func (s *lifecycleService) purgeFile(ctx context.Context, file *models.File) error {
	if key := file.ExternalKey; key != nil && !s.templates.Contains(*key) {
		if err := s.blobs.Delete(ctx, *key); err != nil {
			// A leaked blob is acceptable; the row must still go.
			s.logger.Warn("blob delete failed",
				"file_id", file.ID,
				"key", *key,
				"error", err,
			)
		}
	}

	if err := s.fileRepo.Delete(ctx, file.ID); err != nil {
		if isNotFound(err) {
			return nil // already purged
		}
		return fmt.Errorf("structural delete failed: %w", err)
	}

	return nil
}

// collectExternalKeys gathers every blob key in the given folders,
// soft-deleted files included, with the shared template set subtracted
func (s *lifecycleService) collectExternalKeys(ctx context.Context, folderIDs []string) ([]string, error) {
	files, err := s.fileRepo.ListAllByFolders(ctx, folderIDs)
	if err != nil {
		return nil, fmt.Errorf("collect external keys: %w", err)
	}

	var keys []string
	for _, file := range files {
		if file.ExternalKey == nil {
			continue
		}
		if s.templates.Contains(*file.ExternalKey) {
			continue // shared template blobs are never deleted
		}
		keys = append(keys, *file.ExternalKey)
	}
	return keys, nil
}

// deleteBlobs removes external blobs in parallel, tolerating and
// logging individual failures; nothing here ever fails the logical
// delete
func (s *lifecycleService) deleteBlobs(ctx context.Context, keys []string) {
	var pool errgroup.Group
	pool.SetLimit(config.BlobDeleteConcurrency)

	for _, key := range keys {
		pool.Go(func() error {
			if err := s.blobs.Delete(ctx, key); err != nil {
				s.logger.Warn("blob delete failed", "key", key, "error", err)
			}
			return nil
		})
	}

	_ = pool.Wait()
}

// dropGrants discards unlock grants for folders about to disappear
func (s *lifecycleService) dropGrants(ctx context.Context, folderIDs []string) {
	for _, id := range folderIDs {
		if err := s.grants.Delete(ctx, id); err != nil {
			s.logger.Warn("drop grant failed", "folder_id", id, "error", err)
		}
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// getTenantFile fetches a file and enforces the tenant boundary via its
// folder
func (s *lifecycleService) getTenantFile(ctx context.Context, caller models.Caller, fileID string) (*models.File, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetByIDOnly(ctx, file.FolderID)
	if err != nil {
		return nil, err
	}
	if folder.TenantID != caller.TenantID {
		return nil, fmt.Errorf("file %s: %w", fileID, domain.ErrWrongTenant)
	}

	return file, nil
}
