package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/repositories"
	"docvault/internal/repository/memory"
)

func newLockFixture(t *testing.T) (*lockService, *fakeFolderRepo) {
	t.Helper()
	folders := newFakeFolderRepo()
	return &lockService{
		folderRepo:   folders,
		grants:       memory.NewGrantStore(),
		logger:       testLogger(),
		unlockWindow: 5 * time.Minute,
		now:          time.Now,
	}, folders
}

func seedFolder(t *testing.T, folders *fakeFolderRepo, tenantID string) *models.Folder {
	t.Helper()
	folder := &models.Folder{TenantID: tenantID, Name: "Contracts"}
	if err := folders.Create(context.Background(), folder); err != nil {
		t.Fatalf("seed folder: %v", err)
	}
	return folder
}

func TestLockUnlockRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, folders := newLockFixture(t)
	caller := models.Caller{UserID: "u1", TenantID: "t1", IsPrivileged: true}
	folder := seedFolder(t, folders, "t1")

	locked, err := svc.Lock(ctx, caller, folder.ID, "secret")
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if !locked.IsLocked {
		t.Error("expected folder to be locked")
	}

	if _, err := svc.Unlock(ctx, caller, folder.ID, "nope"); !errors.Is(err, domain.ErrWrongPassword) {
		t.Errorf("Unlock wrong password: got %v, want ErrWrongPassword", err)
	}

	unlocked, err := svc.Unlock(ctx, caller, folder.ID, "secret")
	if err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if unlocked.IsLocked {
		t.Error("expected folder to be unlocked")
	}

	// The password is retained across the unlock
	stored, err := folders.GetByIDOnly(ctx, folder.ID)
	if err != nil {
		t.Fatalf("GetByIDOnly: %v", err)
	}
	if stored.Password == nil || *stored.Password != "secret" {
		t.Error("expected stored password to be retained after unlock")
	}

	grant, err := svc.grants.Get(ctx, folder.ID)
	if err != nil {
		t.Fatalf("grants.Get: %v", err)
	}
	if grant == nil {
		t.Fatal("expected an unlock grant to be recorded")
	}
}

func TestUnlockNotLocked(t *testing.T) {
	ctx := context.Background()
	svc, folders := newLockFixture(t)
	caller := models.Caller{UserID: "u1", TenantID: "t1"}
	folder := seedFolder(t, folders, "t1")

	if _, err := svc.Unlock(ctx, caller, folder.ID, "secret"); !errors.Is(err, domain.ErrNotLocked) {
		t.Errorf("got %v, want ErrNotLocked", err)
	}
}

func TestLockWrongTenant(t *testing.T) {
	ctx := context.Background()
	svc, folders := newLockFixture(t)
	folder := seedFolder(t, folders, "t1")
	caller := models.Caller{UserID: "u2", TenantID: "t2"}

	if _, err := svc.Lock(ctx, caller, folder.ID, "secret"); !errors.Is(err, domain.ErrWrongTenant) {
		t.Errorf("got %v, want ErrWrongTenant", err)
	}
}

func TestLockValidatesPassword(t *testing.T) {
	ctx := context.Background()
	svc, folders := newLockFixture(t)
	caller := models.Caller{UserID: "u1", TenantID: "t1"}
	folder := seedFolder(t, folders, "t1")

	if _, err := svc.Lock(ctx, caller, folder.ID, ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}

func TestLockAlreadyLocked(t *testing.T) {
	ctx := context.Background()
	svc, folders := newLockFixture(t)
	caller := models.Caller{UserID: "u1", TenantID: "t1"}
	folder := seedFolder(t, folders, "t1")

	if _, err := svc.Lock(ctx, caller, folder.ID, "secret"); err != nil {
		t.Fatalf("Lock: %v", err)
	}

	if _, err := svc.Lock(ctx, caller, folder.ID, "other"); !errors.Is(err, domain.ErrAlreadyLocked) {
		t.Errorf("got %v, want ErrAlreadyLocked", err)
	}

	// The rejected call must not have touched the stored password
	stored, err := folders.GetByIDOnly(ctx, folder.ID)
	if err != nil {
		t.Fatalf("GetByIDOnly: %v", err)
	}
	if stored.Password == nil || *stored.Password != "secret" {
		t.Error("expected original password to survive the rejected lock")
	}
}

func TestLockInvalidatesExistingGrant(t *testing.T) {
	ctx := context.Background()
	svc, folders := newLockFixture(t)
	caller := models.Caller{UserID: "u1", TenantID: "t1"}
	folder := seedFolder(t, folders, "t1")

	if _, err := svc.Lock(ctx, caller, folder.ID, "secret"); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if _, err := svc.Unlock(ctx, caller, folder.ID, "secret"); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if _, err := svc.Lock(ctx, caller, folder.ID, "rotated"); err != nil {
		t.Fatalf("re-Lock: %v", err)
	}

	grant, err := svc.grants.Get(ctx, folder.ID)
	if err != nil {
		t.Fatalf("grants.Get: %v", err)
	}
	if grant != nil {
		t.Error("expected re-lock to invalidate the standing grant")
	}
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	svc, folders := newLockFixture(t)
	caller := models.Caller{UserID: "u1", TenantID: "t1"}
	folder := seedFolder(t, folders, "t1")

	// Unlocked folders verify as true regardless of the candidate
	valid, err := svc.Verify(ctx, caller, folder.ID, "anything")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !valid {
		t.Error("expected Verify to be true for an unlocked folder")
	}

	if _, err := svc.Lock(ctx, caller, folder.ID, "secret"); err != nil {
		t.Fatalf("Lock: %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct password", "secret", true},
		{"wrong password", "guess", false},
		{"empty password", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := svc.Verify(ctx, caller, folder.ID, tt.password)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if valid != tt.want {
				t.Errorf("Verify(%q) = %v, want %v", tt.password, valid, tt.want)
			}
		})
	}
}

func TestRelockExpired(t *testing.T) {
	ctx := context.Background()
	svc, folders := newLockFixture(t)
	caller := models.Caller{UserID: "u1", TenantID: "t1"}
	folder := seedFolder(t, folders, "t1")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	if _, err := svc.Lock(ctx, caller, folder.ID, "secret"); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if _, err := svc.Unlock(ctx, caller, folder.ID, "secret"); err != nil {
		t.Fatalf("Unlock: %v", err)
	}

	// Inside the window: nothing to do
	svc.now = func() time.Time { return base.Add(4 * time.Minute) }
	relocked, err := svc.RelockExpired(ctx)
	if err != nil {
		t.Fatalf("RelockExpired: %v", err)
	}
	if relocked != 0 {
		t.Errorf("relocked = %d, want 0", relocked)
	}

	// Window elapsed: the folder is re-locked with the retained password
	svc.now = func() time.Time { return base.Add(5 * time.Minute) }
	relocked, err = svc.RelockExpired(ctx)
	if err != nil {
		t.Fatalf("RelockExpired: %v", err)
	}
	if relocked != 1 {
		t.Errorf("relocked = %d, want 1", relocked)
	}

	stored, err := folders.GetByIDOnly(ctx, folder.ID)
	if err != nil {
		t.Fatalf("GetByIDOnly: %v", err)
	}
	if !stored.IsLocked {
		t.Error("expected folder to be re-locked")
	}
	if stored.Password == nil || *stored.Password != "secret" {
		t.Error("expected re-lock to restore the grant's password")
	}

	// Sweep converges: a second run finds nothing
	relocked, err = svc.RelockExpired(ctx)
	if err != nil {
		t.Fatalf("RelockExpired: %v", err)
	}
	if relocked != 0 {
		t.Errorf("second sweep relocked = %d, want 0", relocked)
	}
}

// refreshingGrantStore replaces a folder's grant with a newer one right
// after the sweep takes its snapshot, modelling an unlock that lands
// between the scan and the claim.
type refreshingGrantStore struct {
	repositories.GrantStore
	fresh *models.UnlockGrant
}

func (s *refreshingGrantStore) All(ctx context.Context) ([]models.UnlockGrant, error) {
	grants, err := s.GrantStore.All(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.GrantStore.Put(ctx, s.fresh); err != nil {
		return nil, err
	}
	return grants, nil
}

func TestRelockExpiredSkipsRefreshedGrant(t *testing.T) {
	ctx := context.Background()
	svc, folders := newLockFixture(t)
	folder := seedFolder(t, folders, "t1")
	if err := folders.SetLockState(ctx, folder.ID, false, strPtr("secret")); err != nil {
		t.Fatalf("SetLockState: %v", err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base.Add(5 * time.Minute) }

	stale := &models.UnlockGrant{FolderID: folder.ID, Password: "secret", UnlockedAt: base}
	if err := svc.grants.Put(ctx, stale); err != nil {
		t.Fatalf("grants.Put: %v", err)
	}
	fresh := &models.UnlockGrant{FolderID: folder.ID, Password: "secret", UnlockedAt: base.Add(4 * time.Minute)}
	svc.grants = &refreshingGrantStore{GrantStore: svc.grants, fresh: fresh}

	relocked, err := svc.RelockExpired(ctx)
	if err != nil {
		t.Fatalf("RelockExpired: %v", err)
	}
	if relocked != 0 {
		t.Errorf("relocked = %d, want 0", relocked)
	}

	// The refreshed grant owns the folder: still unlocked, grant intact
	stored, err := folders.GetByIDOnly(ctx, folder.ID)
	if err != nil {
		t.Fatalf("GetByIDOnly: %v", err)
	}
	if stored.IsLocked {
		t.Error("expected folder to stay unlocked for the refreshed grant")
	}

	grant, err := svc.grants.Get(ctx, folder.ID)
	if err != nil {
		t.Fatalf("grants.Get: %v", err)
	}
	if grant == nil {
		t.Fatal("expected the refreshed grant to survive the sweep")
	}
	if !grant.UnlockedAt.Equal(fresh.UnlockedAt) {
		t.Errorf("grant UnlockedAt = %v, want %v", grant.UnlockedAt, fresh.UnlockedAt)
	}
}

func TestRelockExpiredDropsGrantForDeletedFolder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLockFixture(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base.Add(10 * time.Minute) }

	// Grant survives for a folder that no longer exists
	grant := &models.UnlockGrant{FolderID: "gone", Password: "secret", UnlockedAt: base}
	if err := svc.grants.Put(ctx, grant); err != nil {
		t.Fatalf("grants.Put: %v", err)
	}

	relocked, err := svc.RelockExpired(ctx)
	if err != nil {
		t.Fatalf("RelockExpired: %v", err)
	}
	if relocked != 0 {
		t.Errorf("relocked = %d, want 0", relocked)
	}

	remaining, err := svc.grants.Get(ctx, "gone")
	if err != nil {
		t.Fatalf("grants.Get: %v", err)
	}
	if remaining != nil {
		t.Error("expected the stale grant to be dropped")
	}
}
