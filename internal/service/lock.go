package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docvault/internal/config"
	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

type lockService struct {
	folderRepo repositories.FolderRepository
	grants     repositories.GrantStore
	logger     *slog.Logger

	unlockWindow time.Duration
	now          func() time.Time
}

// NewLockService creates a new lock service
func NewLockService(
	folderRepo repositories.FolderRepository,
	grants repositories.GrantStore,
	logger *slog.Logger,
) services.LockService {
	return &lockService{
		folderRepo:   folderRepo,
		grants:       grants,
		logger:       logger,
		unlockWindow: config.UnlockWindow,
		now:          time.Now,
	}
}

// Lock locks a folder with the given password and invalidates any
// existing unlock grant. Locking an already-locked folder is rejected;
// to rotate the password, unlock first. Concurrent lock calls that both
// pass the state check resolve last-writer-wins in storage.
func (s *lockService) Lock(ctx context.Context, caller models.Caller, folderID, password string) (*models.Folder, error) {
	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.getTenantFolder(ctx, caller, folderID)
	if err != nil {
		return nil, err
	}

	if folder.IsLocked {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrAlreadyLocked)
	}

	if err := s.folderRepo.SetLockState(ctx, folderID, true, &password); err != nil {
		return nil, err
	}
	if err := s.grants.Delete(ctx, folderID); err != nil {
		return nil, fmt.Errorf("invalidate grant: %w", err)
	}

	folder.IsLocked = true
	folder.Password = &password

	s.logger.Info("folder locked",
		"folder_id", folderID,
		"tenant_id", folder.TenantID,
		"user_id", caller.UserID,
	)

	return folder, nil
}

// Unlock verifies the password, clears the lock flag, and records an
// unlock grant. The stored password is retained so it can be displayed
// again later.
func (s *lockService) Unlock(ctx context.Context, caller models.Caller, folderID, password string) (*models.Folder, error) {
	folder, err := s.getTenantFolder(ctx, caller, folderID)
	if err != nil {
		return nil, err
	}

	if !folder.IsLocked {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotLocked)
	}
	if !passwordMatches(folder.Password, password) {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrWrongPassword)
	}

	if err := s.folderRepo.SetLockState(ctx, folderID, false, folder.Password); err != nil {
		return nil, err
	}

	grant := &models.UnlockGrant{
		FolderID:   folderID,
		Password:   password,
		UnlockedAt: s.now(),
	}
	if err := s.grants.Put(ctx, grant); err != nil {
		return nil, fmt.Errorf("store grant: %w", err)
	}

	folder.IsLocked = false

	s.logger.Info("folder unlocked",
		"folder_id", folderID,
		"tenant_id", folder.TenantID,
		"user_id", caller.UserID,
		"window", s.unlockWindow,
	)

	return folder, nil
}

// Verify is a pure password check; true if the folder is not locked
func (s *lockService) Verify(ctx context.Context, caller models.Caller, folderID, password string) (bool, error) {
	folder, err := s.getTenantFolder(ctx, caller, folderID)
	if err != nil {
		return false, err
	}

	if !folder.IsLocked {
		return true, nil
	}
	return passwordMatches(folder.Password, password), nil
}

// RelockExpired re-locks every folder whose grant has aged past the
// unlock window, using the grant's retained password. Runs on a timer;
// safe to run concurrently with request handlers since each grant entry
// is replaced or deleted independently.
func (s *lockService) RelockExpired(ctx context.Context) (int, error) {
	grants, err := s.grants.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("list grants: %w", err)
	}

	now := s.now()
	relocked := 0
	for _, grant := range grants {
		if !grant.ExpiredAt(now, s.unlockWindow) {
			continue
		}

		// Claim the grant before touching the folder. A fresh unlock
		// between the snapshot and here replaces the entry; in that
		// case the new grant owns the folder and this pass skips it.
		claimed, err := s.grants.CompareAndDelete(ctx, &grant)
		if err != nil {
			s.logger.Warn("drop expired grant failed",
				"folder_id", grant.FolderID,
				"error", err,
			)
			continue
		}
		if !claimed {
			continue
		}

		password := grant.Password
		if err := s.folderRepo.SetLockState(ctx, grant.FolderID, true, &password); err != nil {
			// Folder may have been deleted since the unlock; the grant
			// is already gone, which is the right end state.
			s.logger.Warn("relock failed",
				"folder_id", grant.FolderID,
				"error", err,
			)
			continue
		}
		relocked++
	}

	if relocked > 0 {
		s.logger.Info("relock sweep complete", "relocked", relocked, "scanned", len(grants))
	}

	return relocked, nil
}

// getTenantFolder fetches a folder and enforces the tenant boundary
func (s *lockService) getTenantFolder(ctx context.Context, caller models.Caller, folderID string) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByIDOnly(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder.TenantID != caller.TenantID {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrWrongTenant)
	}
	return folder, nil
}

// passwordMatches compares the stored secret against the candidate in
// constant time
func passwordMatches(stored *string, candidate string) bool {
	if stored == nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*stored), []byte(candidate)) == 1
}

func validatePassword(password string) error {
	return validation.Validate(password,
		validation.Required,
		validation.Length(1, config.MaxFolderPasswordLength),
	)
}
