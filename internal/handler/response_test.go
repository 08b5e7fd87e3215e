package handler

import (
	"encoding/json"
	"strings"
	"testing"

	"docvault/internal/domain/models"
)

func TestFolderResponsePasswordVisibility(t *testing.T) {
	password := "recovery-secret"
	folder := &models.Folder{
		ID:       "folder-1",
		TenantID: "tenant-1",
		Name:     "Sealed",
		IsLocked: true,
		Password: &password,
	}

	t.Run("privileged caller sees the retained password", func(t *testing.T) {
		caller := models.Caller{UserID: "admin-1", TenantID: "tenant-1", IsPrivileged: true}

		payload, err := json.Marshal(newFolderResponse(folder, caller))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !strings.Contains(string(payload), `"password":"recovery-secret"`) {
			t.Errorf("expected password in response, got %s", payload)
		}
	})

	t.Run("regular caller never sees the password", func(t *testing.T) {
		caller := models.Caller{UserID: "user-1", TenantID: "tenant-1"}

		payload, err := json.Marshal(newFolderResponse(folder, caller))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if strings.Contains(string(payload), "recovery-secret") {
			t.Errorf("password leaked to unprivileged caller: %s", payload)
		}
	})

	t.Run("unlocked folder omits the password field", func(t *testing.T) {
		open := &models.Folder{ID: "folder-2", TenantID: "tenant-1", Name: "Open"}
		caller := models.Caller{UserID: "admin-1", TenantID: "tenant-1", IsPrivileged: true}

		payload, err := json.Marshal(newFolderResponse(open, caller))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if strings.Contains(string(payload), `"password"`) {
			t.Errorf("expected no password field, got %s", payload)
		}
	})
}
