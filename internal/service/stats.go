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

type statsService struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	logger     *slog.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	logger *slog.Logger,
) services.StatsService {
	return &statsService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		logger:     logger,
	}
}

// Stats batch-loads the tenant's folder forest and per-folder live file
// counts, then walks the subtree in memory. Lock state is ignored;
// stats are a privileged whole-subtree read. Concurrent mutations may
// make the result slightly stale, which is acceptable.
func (s *statsService) Stats(ctx context.Context, caller models.Caller, folderID string) (*models.FolderStats, error) {
	root, err := s.folderRepo.GetByIDOnly(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if root.TenantID != caller.TenantID {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrWrongTenant)
	}

	allFolders, err := s.folderRepo.GetAllByTenant(ctx, root.TenantID)
	if err != nil {
		return nil, fmt.Errorf("load folder forest: %w", err)
	}

	index := buildChildIndex(allFolders)
	subtree := collectSubtree(index, folderID)

	fileCounts, err := s.fileRepo.CountLiveByFolders(ctx, subtree)
	if err != nil {
		return nil, fmt.Errorf("count files: %w", err)
	}

	stats := &models.FolderStats{
		DirectFolderCount: len(index[folderID]),
		DirectFileCount:   fileCounts[folderID],
		FolderCount:       len(subtree) - 1, // exclude the root itself
	}
	for _, id := range subtree {
		stats.FileCount += fileCounts[id]
	}

	return stats, nil
}
