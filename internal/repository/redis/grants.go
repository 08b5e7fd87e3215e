package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
)

const grantKeyPrefix = "docvault:grant:"

// GrantStore keeps unlock grants in Redis so every replica sees the
// same unlocked set. No TTL is set on the keys: expiry is owned by the
// re-lock sweep, which must re-lock the folder row before the grant
// disappears.
type GrantStore struct {
	client *goredis.Client
}

// NewGrantStore creates a Redis-backed grant store
func NewGrantStore(client *goredis.Client) repositories.GrantStore {
	return &GrantStore{client: client}
}

// Put stores or replaces the grant for a folder
func (s *GrantStore) Put(ctx context.Context, grant *models.UnlockGrant) error {
	payload, err := json.Marshal(grant)
	if err != nil {
		return fmt.Errorf("marshal grant: %w", err)
	}

	if err := s.client.Set(ctx, grantKeyPrefix+grant.FolderID, payload, 0).Err(); err != nil {
		return fmt.Errorf("store grant: %w", err)
	}

	return nil
}

// Get returns the grant for a folder, or nil if none exists
func (s *GrantStore) Get(ctx context.Context, folderID string) (*models.UnlockGrant, error) {
	payload, err := s.client.Get(ctx, grantKeyPrefix+folderID).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get grant: %w", err)
	}

	var grant models.UnlockGrant
	if err := json.Unmarshal(payload, &grant); err != nil {
		return nil, fmt.Errorf("unmarshal grant: %w", err)
	}

	return &grant, nil
}

// Delete removes the grant for a folder
func (s *GrantStore) Delete(ctx context.Context, folderID string) error {
	if err := s.client.Del(ctx, grantKeyPrefix+folderID).Err(); err != nil {
		return fmt.Errorf("delete grant: %w", err)
	}
	return nil
}

// compareAndDeleteScript deletes a grant key only if the stored entry
// still carries the expected unlocked_at timestamp. Scripts execute
// atomically, so a grant refreshed by a concurrent unlock survives.
var compareAndDeleteScript = goredis.NewScript(`
local payload = redis.call('GET', KEYS[1])
if not payload then
	return 0
end
local stored = cjson.decode(payload)
if stored['unlocked_at'] ~= ARGV[1] then
	return 0
end
redis.call('DEL', KEYS[1])
return 1
`)

// CompareAndDelete removes the grant for a folder only if the stored
// entry still carries the snapshot's UnlockedAt
func (s *GrantStore) CompareAndDelete(ctx context.Context, grant *models.UnlockGrant) (bool, error) {
	unlockedAt, err := grant.UnlockedAt.MarshalJSON()
	if err != nil {
		return false, fmt.Errorf("marshal unlocked_at: %w", err)
	}

	deleted, err := compareAndDeleteScript.Run(ctx, s.client,
		[]string{grantKeyPrefix + grant.FolderID},
		string(unlockedAt[1:len(unlockedAt)-1]), // strip JSON quotes
	).Int()
	if err != nil {
		return false, fmt.Errorf("compare-and-delete grant: %w", err)
	}

	return deleted == 1, nil
}

// All returns every live grant by scanning the grant key space
func (s *GrantStore) All(ctx context.Context) ([]models.UnlockGrant, error) {
	var grants []models.UnlockGrant

	iter := s.client.Scan(ctx, 0, grantKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		payload, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, goredis.Nil) {
				continue // deleted between scan and get
			}
			return nil, fmt.Errorf("get grant %s: %w", iter.Val(), err)
		}

		var grant models.UnlockGrant
		if err := json.Unmarshal(payload, &grant); err != nil {
			return nil, fmt.Errorf("unmarshal grant %s: %w", iter.Val(), err)
		}
		grants = append(grants, grant)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan grants: %w", err)
	}

	return grants, nil
}
