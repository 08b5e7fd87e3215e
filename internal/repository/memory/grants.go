package memory

import (
	"context"
	"sync"

	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

// GrantStore keeps unlock grants in an in-process map keyed by folder
// ID. Entries are independent, so a single mutex around map access is
// all the coordination needed; the navigator reads while unlock calls
// and the re-lock sweep write.
type GrantStore struct {
	mu     sync.RWMutex
	grants map[string]models.UnlockGrant
}

// NewGrantStore creates an empty in-memory grant store
func NewGrantStore() repositories.GrantStore {
	return &GrantStore{
		grants: make(map[string]models.UnlockGrant),
	}
}

// Put stores or replaces the grant for a folder
func (s *GrantStore) Put(_ context.Context, grant *models.UnlockGrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants[grant.FolderID] = *grant
	return nil
}

// Get returns the grant for a folder, or nil if none exists
func (s *GrantStore) Get(_ context.Context, folderID string) (*models.UnlockGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grant, ok := s.grants[folderID]
	if !ok {
		return nil, nil
	}
	return &grant, nil
}

// Delete removes the grant for a folder
func (s *GrantStore) Delete(_ context.Context, folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.grants, folderID)
	return nil
}

// CompareAndDelete removes the grant for a folder only if the stored
// entry still carries the snapshot's UnlockedAt
func (s *GrantStore) CompareAndDelete(_ context.Context, grant *models.UnlockGrant) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.grants[grant.FolderID]
	if !ok || !stored.UnlockedAt.Equal(grant.UnlockedAt) {
		return false, nil
	}
	delete(s.grants, grant.FolderID)
	return true, nil
}

// All returns a snapshot of every live grant
func (s *GrantStore) All(_ context.Context) ([]models.UnlockGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grants := make([]models.UnlockGrant, 0, len(s.grants))
	for _, grant := range s.grants {
		grants = append(grants, grant)
	}
	return grants, nil
}
