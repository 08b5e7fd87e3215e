package service

import (
	"context"
	"errors"
	"testing"

	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/domain/services"
)

func newFolderFixture(t *testing.T) (services.FolderService, *fakeFolderRepo) {
	t.Helper()
	folders := newFakeFolderRepo()
	return NewFolderService(folders, testLogger()), folders
}

func TestCreateFolder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFolderFixture(t)
	caller := models.Caller{UserID: "u1", TenantID: "t1"}

	folder, err := svc.CreateFolder(ctx, caller, &services.CreateFolderRequest{Name: "Documents"})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if folder.TenantID != "t1" {
		t.Errorf("TenantID = %q, want t1", folder.TenantID)
	}
	if folder.ParentID != nil {
		t.Error("expected a root folder")
	}

	child, err := svc.CreateFolder(ctx, caller, &services.CreateFolderRequest{Name: "Sub", ParentID: &folder.ID})
	if err != nil {
		t.Fatalf("CreateFolder child: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != folder.ID {
		t.Error("expected child to reference its parent")
	}
}

func TestCreateFolderValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFolderFixture(t)
	caller := models.Caller{UserID: "u1", TenantID: "t1"}

	tests := []struct {
		name    string
		reqName string
	}{
		{"empty name", ""},
		{"name with slash", "a/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateFolder(ctx, caller, &services.CreateFolderRequest{Name: tt.reqName})
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateFolderMissingParent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFolderFixture(t)
	caller := models.Caller{UserID: "u1", TenantID: "t1"}

	missing := "no-such-folder"
	_, err := svc.CreateFolder(ctx, caller, &services.CreateFolderRequest{Name: "Sub", ParentID: &missing})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCreateFolderParentInOtherTenant(t *testing.T) {
	ctx := context.Background()
	svc, folders := newFolderFixture(t)

	other := &models.Folder{TenantID: "t2", Name: "Foreign"}
	mustCreateFolder(t, folders, other)

	caller := models.Caller{UserID: "u1", TenantID: "t1"}
	_, err := svc.CreateFolder(ctx, caller, &services.CreateFolderRequest{Name: "Sub", ParentID: &other.ID})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCreateFolderDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFolderFixture(t)
	caller := models.Caller{UserID: "u1", TenantID: "t1"}

	if _, err := svc.CreateFolder(ctx, caller, &services.CreateFolderRequest{Name: "Documents"}); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	_, err := svc.CreateFolder(ctx, caller, &services.CreateFolderRequest{Name: "Documents"})
	var conflictErr *domain.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("got %v, want ConflictError", err)
	}
	if conflictErr.ResourceType != "folder" {
		t.Errorf("ResourceType = %q, want folder", conflictErr.ResourceType)
	}
}

func TestRenameFolder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFolderFixture(t)
	caller := models.Caller{UserID: "u1", TenantID: "t1"}

	folder, err := svc.CreateFolder(ctx, caller, &services.CreateFolderRequest{Name: "Old"})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	renamed, err := svc.RenameFolder(ctx, caller, folder.ID, &services.RenameFolderRequest{Name: "New"})
	if err != nil {
		t.Fatalf("RenameFolder: %v", err)
	}
	if renamed.Name != "New" {
		t.Errorf("Name = %q, want New", renamed.Name)
	}

	// Renaming to itself is allowed (the folder is its own sibling)
	if _, err := svc.RenameFolder(ctx, caller, folder.ID, &services.RenameFolderRequest{Name: "New"}); err != nil {
		t.Errorf("rename to same name: %v", err)
	}
}

func TestRenameFolderDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFolderFixture(t)
	caller := models.Caller{UserID: "u1", TenantID: "t1"}

	if _, err := svc.CreateFolder(ctx, caller, &services.CreateFolderRequest{Name: "A"}); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	folder, err := svc.CreateFolder(ctx, caller, &services.CreateFolderRequest{Name: "B"})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	_, err = svc.RenameFolder(ctx, caller, folder.ID, &services.RenameFolderRequest{Name: "A"})
	var conflictErr *domain.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("got %v, want ConflictError", err)
	}
}
