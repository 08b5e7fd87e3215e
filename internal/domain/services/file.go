package services

import (
	"context"
	"io"
	"time"

	"docvault/internal/domain/models"
)

// FileService handles file metadata and uploads. Soft-delete, restore,
// and purge live on LifecycleService.
type FileService interface {
	// UploadFile stores the content in external blob storage and
	// creates the file row. A storage failure here is fatal.
	UploadFile(ctx context.Context, caller models.Caller, req *UploadFileRequest) (*models.File, error)

	// GetFile retrieves a file by ID
	GetFile(ctx context.Context, caller models.Caller, id string) (*models.File, error)

	// ListDeleted lists the caller's tenant's soft-deleted files
	ListDeleted(ctx context.Context, caller models.Caller) ([]models.File, error)
}

// UploadFileRequest represents a file upload request
type UploadFileRequest struct {
	FolderID     string
	Name         string
	Content      io.Reader
	Size         int64
	MimeType     string
	Category     string
	IssueDate    *time.Time
	ExpiryDate   *time.Time
	RenewalDate  *time.Time
	PlaceOfIssue string
}
