package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docvault/internal/config"
	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
)

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

type folderService struct {
	folderRepo repositories.FolderRepository
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		logger:     logger,
	}
}

// CreateFolder creates a new folder. The parent must already exist in
// the caller's tenant, which is the construction rule that keeps the
// tree acyclic.
func (s *folderService) CreateFolder(ctx context.Context, caller models.Caller, req *services.CreateFolderRequest) (*models.Folder, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if req.ParentID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *req.ParentID, caller.TenantID)
		if err != nil {
			return nil, fmt.Errorf("parent folder not found: %w", err)
		}
		s.logger.Debug("parent folder found",
			"parent_id", parent.ID,
			"parent_name", parent.Name,
		)
	}

	// Check for duplicate name among siblings
	siblings, err := s.folderRepo.ListChildren(ctx, req.ParentID, caller.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	name := strings.TrimSpace(req.Name)
	for _, sibling := range siblings {
		if sibling.Name == name {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
				ResourceType: "folder",
				ResourceID:   sibling.ID,
			}
		}
	}

	folder := &models.Folder{
		TenantID:  caller.TenantID,
		ParentID:  req.ParentID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"tenant_id", caller.TenantID,
		"parent_id", req.ParentID,
	)

	return folder, nil
}

// GetFolder retrieves a folder by ID
func (s *folderService) GetFolder(ctx context.Context, caller models.Caller, id string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id, caller.TenantID)
}

// RenameFolder renames a folder
func (s *folderService) RenameFolder(ctx context.Context, caller models.Caller, id string, req *services.RenameFolderRequest) (*models.Folder, error) {
	if err := s.validateRenameRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, id, caller.TenantID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)

	siblings, err := s.folderRepo.ListChildren(ctx, folder.ParentID, caller.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	for _, sibling := range siblings {
		if sibling.ID != folder.ID && sibling.Name == name {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
				ResourceType: "folder",
				ResourceID:   sibling.ID,
			}
		}
	}

	renamed, err := s.folderRepo.Rename(ctx, id, caller.TenantID, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder renamed",
		"id", id,
		"name", name,
		"tenant_id", caller.TenantID,
	)

	return renamed, nil
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		),
	)
}

// validateRenameRequest validates a folder rename request
func (s *folderService) validateRenameRequest(req *services.RenameFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		),
	)
}
