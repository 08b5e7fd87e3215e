package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/storage"
)

// In-memory repository fakes backing the service tests. The folder fake
// emulates the database's cascading delete so lifecycle tests observe
// the same end state as the real schema produces.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeFolderRepo struct {
	mu      sync.Mutex
	seq     int
	folders map[string]*models.Folder
	files   *fakeFileRepo // optional, for cascade emulation
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if folder.ID == "" {
		r.seq++
		folder.ID = fmt.Sprintf("folder-%d", r.seq)
	}
	stored := *folder
	r.folders[folder.ID] = &stored
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id, tenantID string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	folder, ok := r.folders[id]
	if !ok || folder.TenantID != tenantID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	result := *folder
	return &result, nil
}

func (r *fakeFolderRepo) GetByIDOnly(ctx context.Context, id string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	folder, ok := r.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	result := *folder
	return &result, nil
}

func (r *fakeFolderRepo) Rename(ctx context.Context, id, tenantID, name string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	folder, ok := r.folders[id]
	if !ok || folder.TenantID != tenantID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	folder.Name = name
	folder.UpdatedAt = time.Now()
	result := *folder
	return &result, nil
}

func (r *fakeFolderRepo) SetLockState(ctx context.Context, id string, locked bool, password *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	folder, ok := r.folders[id]
	if !ok {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	folder.IsLocked = locked
	folder.Password = password
	folder.UpdatedAt = time.Now()
	return nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id, tenantID string) error {
	r.mu.Lock()
	folder, ok := r.folders[id]
	if !ok || folder.TenantID != tenantID {
		r.mu.Unlock()
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	// Emulate ON DELETE CASCADE: remove the subtree and its files
	removed := []string{id}
	for i := 0; i < len(removed); i++ {
		for childID, child := range r.folders {
			if child.ParentID != nil && *child.ParentID == removed[i] {
				removed = append(removed, childID)
			}
		}
	}
	for _, folderID := range removed {
		delete(r.folders, folderID)
	}
	r.mu.Unlock()

	if r.files != nil {
		r.files.deleteByFolders(removed)
	}
	return nil
}

func (r *fakeFolderRepo) ListChildren(ctx context.Context, folderID *string, tenantID string) ([]models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Folder
	for _, folder := range r.folders {
		if folder.TenantID != tenantID {
			continue
		}
		switch {
		case folderID == nil && folder.ParentID == nil:
			result = append(result, *folder)
		case folderID != nil && folder.ParentID != nil && *folder.ParentID == *folderID:
			result = append(result, *folder)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeFolderRepo) GetAllByTenant(ctx context.Context, tenantID string) ([]models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Folder
	for _, folder := range r.folders {
		if folder.TenantID == tenantID {
			result = append(result, *folder)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type fakeFileRepo struct {
	mu      sync.Mutex
	seq     int
	files   map[string]*models.File
	folders *fakeFolderRepo // for tenant scoping of ListDeleted
}

func newFakeFileRepo(folders *fakeFolderRepo) *fakeFileRepo {
	repo := &fakeFileRepo{files: make(map[string]*models.File), folders: folders}
	if folders != nil {
		folders.files = repo
	}
	return repo
}

func (r *fakeFileRepo) Create(ctx context.Context, file *models.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if file.ID == "" {
		r.seq++
		file.ID = fmt.Sprintf("file-%d", r.seq)
	}
	stored := *file
	r.files[file.ID] = &stored
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	file, ok := r.files[id]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	result := *file
	return &result, nil
}

func (r *fakeFileRepo) ListByFolder(ctx context.Context, folderID string) ([]models.File, error) {
	return r.ListByFolders(ctx, []string{folderID})
}

func (r *fakeFileRepo) ListByFolders(ctx context.Context, folderIDs []string) ([]models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.File
	for _, file := range r.files {
		if file.IsDeleted() {
			continue
		}
		if containsID(folderIDs, file.FolderID) {
			result = append(result, *file)
		}
	}
	sortFiles(result)
	return result, nil
}

func (r *fakeFileRepo) ListAllByFolders(ctx context.Context, folderIDs []string) ([]models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.File
	for _, file := range r.files {
		if containsID(folderIDs, file.FolderID) {
			result = append(result, *file)
		}
	}
	sortFiles(result)
	return result, nil
}

func (r *fakeFileRepo) ListDeleted(ctx context.Context, tenantID string) ([]models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.File
	for _, file := range r.files {
		if !file.IsDeleted() {
			continue
		}
		if r.tenantOf(file.FolderID) == tenantID {
			result = append(result, *file)
		}
	}
	sortFiles(result)
	return result, nil
}

func (r *fakeFileRepo) ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.File
	for _, file := range r.files {
		if file.DeletedAt != nil && !file.DeletedAt.After(cutoff) {
			result = append(result, *file)
		}
	}
	sortFiles(result)
	return result, nil
}

func (r *fakeFileRepo) CountLiveByFolders(ctx context.Context, folderIDs []string) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int)
	for _, file := range r.files {
		if file.IsDeleted() {
			continue
		}
		if containsID(folderIDs, file.FolderID) {
			counts[file.FolderID]++
		}
	}
	return counts, nil
}

func (r *fakeFileRepo) SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	file, ok := r.files[id]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	file.DeletedAt = deletedAt
	file.UpdatedAt = time.Now()
	result := *file
	return &result, nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.files[id]; !ok {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	delete(r.files, id)
	return nil
}

func (r *fakeFileRepo) deleteByFolders(folderIDs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, file := range r.files {
		if containsID(folderIDs, file.FolderID) {
			delete(r.files, id)
		}
	}
}

func (r *fakeFileRepo) tenantOf(folderID string) string {
	if r.folders == nil {
		return ""
	}
	r.folders.mu.Lock()
	defer r.folders.mu.Unlock()
	if folder, ok := r.folders.folders[folderID]; ok {
		return folder.TenantID
	}
	return ""
}

type fakeTenantRepo struct {
	mu      sync.Mutex
	seq     int
	tenants map[string]*models.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[string]*models.Tenant)}
}

func (r *fakeTenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tenant.ID == "" {
		r.seq++
		tenant.ID = fmt.Sprintf("tenant-%d", r.seq)
	}
	stored := *tenant
	r.tenants[tenant.ID] = &stored
	return nil
}

func (r *fakeTenantRepo) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tenant, ok := r.tenants[id]
	if !ok {
		return nil, fmt.Errorf("tenant %s: %w", id, domain.ErrNotFound)
	}
	result := *tenant
	return &result, nil
}

func (r *fakeTenantRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tenants[id]; !ok {
		return fmt.Errorf("tenant %s: %w", id, domain.ErrNotFound)
	}
	delete(r.tenants, id)
	return nil
}

// fakeBlobStore records deletions and can be told to fail specific keys
type fakeBlobStore struct {
	mu       sync.Mutex
	seq      int
	deleted  []string
	failKeys map[string]bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{failKeys: make(map[string]bool)}
}

func (b *fakeBlobStore) Put(ctx context.Context, reader io.Reader, size int64, contentType string) (*storage.PutResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	key := fmt.Sprintf("blob-%d", b.seq)
	return &storage.PutResult{
		Key:  key,
		URL:  "https://blobs.test/" + key,
		Size: size,
	}, nil
}

func (b *fakeBlobStore) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failKeys[key] {
		return fmt.Errorf("delete %s: %w", key, domain.ErrStorage)
	}
	b.deleted = append(b.deleted, key)
	return nil
}

func (b *fakeBlobStore) deletedKeys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := append([]string(nil), b.deleted...)
	sort.Strings(keys)
	return keys
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func sortFiles(files []models.File) {
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
}

func strPtr(s string) *string { return &s }
