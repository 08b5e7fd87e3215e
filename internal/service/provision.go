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
	"docvault/internal/seed"
)

// TemplateFolderName is the folder every tenant is provisioned with,
// holding the shared template files.
const TemplateFolderName = "Templates"

type provisionService struct {
	tenantRepo repositories.TenantRepository
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	manifest   *seed.Manifest
	logger     *slog.Logger
}

// NewProvisionService creates a new provisioning service
func NewProvisionService(
	tenantRepo repositories.TenantRepository,
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	manifest *seed.Manifest,
	logger *slog.Logger,
) services.ProvisionService {
	return &provisionService{
		tenantRepo: tenantRepo,
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		manifest:   manifest,
		logger:     logger,
	}
}

// CreateTenant creates the tenant row, seeds its type-specific default
// folders, and fills a Templates folder from the shared manifest. The
// seeded rows are attributed to no user. Template file rows reference
// the shared blob keys; the keys themselves stay exempt from every
// cascading delete.
func (s *provisionService) CreateTenant(ctx context.Context, req *services.CreateTenantRequest) (*models.Tenant, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	tenant := &models.Tenant{
		Name:      req.Name,
		Type:      req.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	for _, name := range s.manifest.FoldersFor(req.Type) {
		if _, err := s.seedFolder(ctx, tenant.ID, name); err != nil {
			return nil, fmt.Errorf("seed folder %q: %w", name, err)
		}
	}

	templateFolder, err := s.seedFolder(ctx, tenant.ID, TemplateFolderName)
	if err != nil {
		return nil, fmt.Errorf("seed template folder: %w", err)
	}

	for _, template := range s.manifest.Templates {
		key := template.Key
		file := &models.File{
			FolderID:    templateFolder.ID,
			Name:        template.Name,
			ExternalKey: &key,
			URL:         template.URL,
			Size:        template.Size,
			MimeType:    "application/pdf",
			Category:    "template",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.fileRepo.Create(ctx, file); err != nil {
			return nil, fmt.Errorf("seed template file %q: %w", template.Name, err)
		}
	}

	s.logger.Info("tenant provisioned",
		"tenant_id", tenant.ID,
		"name", tenant.Name,
		"type", tenant.Type,
		"templates", len(s.manifest.Templates),
	)

	return tenant, nil
}

func (s *provisionService) seedFolder(ctx context.Context, tenantID, name string) (*models.Folder, error) {
	now := time.Now()
	folder := &models.Folder{
		TenantID:  tenantID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// validateCreateRequest validates a tenant creation request
func (s *provisionService) validateCreateRequest(req *services.CreateTenantRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxTenantNameLength),
		),
		validation.Field(&req.Type,
			validation.Required,
			validation.In(
				models.TenantTypeCompany,
				models.TenantTypeAgency,
				models.TenantTypeIndividual,
			),
		),
	)
}
