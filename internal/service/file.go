package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docvault/internal/config"
	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/domain/services"
	"docvault/internal/storage"
)

type fileService struct {
	fileRepo   repositories.FileRepository
	folderRepo repositories.FolderRepository
	blobs      storage.BlobStore
	logger     *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo repositories.FileRepository,
	folderRepo repositories.FolderRepository,
	blobs storage.BlobStore,
	logger *slog.Logger,
) services.FileService {
	return &fileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		blobs:      blobs,
		logger:     logger,
	}
}

// UploadFile stores the content externally and creates the file row. A
// storage failure here is fatal, unlike the suppressed failures on the
// delete path.
func (s *fileService) UploadFile(ctx context.Context, caller models.Caller, req *services.UploadFileRequest) (*models.File, error) {
	if err := s.validateUploadRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Target folder must exist in the caller's tenant
	if _, err := s.folderRepo.GetByID(ctx, req.FolderID, caller.TenantID); err != nil {
		return nil, err
	}

	result, err := s.blobs.Put(ctx, req.Content, req.Size, req.MimeType)
	if err != nil {
		return nil, err
	}

	userID := caller.UserID
	file := &models.File{
		FolderID:     req.FolderID,
		TenantUserID: &userID,
		Name:         req.Name,
		ExternalKey:  &result.Key,
		URL:          result.URL,
		Size:         result.Size,
		MimeType:     req.MimeType,
		Category:     req.Category,
		IssueDate:    req.IssueDate,
		ExpiryDate:   req.ExpiryDate,
		RenewalDate:  req.RenewalDate,
		PlaceOfIssue: req.PlaceOfIssue,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		// The row failed after the blob landed; reclaim the blob so it
		// does not leak unreferenced.
		if delErr := s.blobs.Delete(ctx, result.Key); delErr != nil {
			s.logger.Warn("orphaned blob cleanup failed",
				"key", result.Key,
				"error", delErr,
			)
		}
		return nil, err
	}

	s.logger.Info("file uploaded",
		"id", file.ID,
		"name", file.Name,
		"folder_id", file.FolderID,
		"size", file.Size,
		"user_id", caller.UserID,
	)

	return file, nil
}

// GetFile retrieves a file by ID within the caller's tenant
func (s *fileService) GetFile(ctx context.Context, caller models.Caller, id string) (*models.File, error) {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetByIDOnly(ctx, file.FolderID)
	if err != nil {
		return nil, err
	}
	if folder.TenantID != caller.TenantID {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrWrongTenant)
	}

	return file, nil
}

// ListDeleted lists the caller's tenant's soft-deleted files
func (s *fileService) ListDeleted(ctx context.Context, caller models.Caller) ([]models.File, error) {
	return s.fileRepo.ListDeleted(ctx, caller.TenantID)
}

// validateUploadRequest validates a file upload request
func (s *fileService) validateUploadRequest(req *services.UploadFileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.FolderID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFileNameLength),
		),
		validation.Field(&req.Content, validation.Required),
		validation.Field(&req.MimeType, validation.Required),
	)
}
