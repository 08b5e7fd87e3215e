package service

import (
	"context"
	"fmt"
	"log/slog"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

type navigatorService struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	grants     repositories.GrantStore
	logger     *slog.Logger
}

// NewNavigatorService creates a new navigator service
func NewNavigatorService(
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	grants repositories.GrantStore,
	logger *slog.Logger,
) services.NavigatorService {
	return &navigatorService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		grants:     grants,
		logger:     logger,
	}
}

// Open returns a folder and its immediate children under the gating
// policy: subfolder names stay visible behind a lock, file listings do
// not. Soft-deleted files are never returned.
func (s *navigatorService) Open(ctx context.Context, caller models.Caller, folderID string, providedPassword string) (*services.FolderView, error) {
	folder, err := s.folderRepo.GetByIDOnly(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder.TenantID != caller.TenantID {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrWrongTenant)
	}

	childFolders, err := s.folderRepo.ListChildren(ctx, &folderID, folder.TenantID)
	if err != nil {
		return nil, fmt.Errorf("list child folders: %w", err)
	}

	if folder.IsLocked {
		granted, err := s.hasGrant(ctx, folderID)
		if err != nil {
			return nil, err
		}
		if !granted && !passwordMatches(folder.Password, providedPassword) {
			s.logger.Debug("folder gated",
				"folder_id", folderID,
				"user_id", caller.UserID,
			)
			return &services.FolderView{
				Folder:           folder,
				Folders:          childFolders,
				RequiresPassword: true,
			}, nil
		}
	}

	files, err := s.fileRepo.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return &services.FolderView{
		Folder:  folder,
		Folders: childFolders,
		Files:   files,
	}, nil
}

// ListChildren lists sibling folders at one level, hiding locked
// folders from unprivileged callers entirely
func (s *navigatorService) ListChildren(ctx context.Context, caller models.Caller, parentID *string, includeLocked bool) ([]models.Folder, error) {
	if parentID != nil {
		parent, err := s.folderRepo.GetByIDOnly(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.TenantID != caller.TenantID {
			return nil, fmt.Errorf("folder %s: %w", *parentID, domain.ErrWrongTenant)
		}
	}

	folders, err := s.folderRepo.ListChildren(ctx, parentID, caller.TenantID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}

	if includeLocked && caller.IsPrivileged {
		return folders, nil
	}

	visible := make([]models.Folder, 0, len(folders))
	for _, folder := range folders {
		if !folder.IsLocked {
			visible = append(visible, folder)
		}
	}
	return visible, nil
}

func (s *navigatorService) hasGrant(ctx context.Context, folderID string) (bool, error) {
	grant, err := s.grants.Get(ctx, folderID)
	if err != nil {
		return false, fmt.Errorf("check grant: %w", err)
	}
	return grant != nil, nil
}
