package handler

import (
	"docvault/internal/domain/models"
)

// folderResponse augments a folder with its retained lock password.
// The password is stored for recovery display, not as a credential, so
// privileged callers get to see it; everyone else gets the bare folder.
type folderResponse struct {
	*models.Folder
	Password *string `json:"password,omitempty"`
}

func newFolderResponse(folder *models.Folder, caller models.Caller) folderResponse {
	resp := folderResponse{Folder: folder}
	if caller.IsPrivileged {
		resp.Password = folder.Password
	}
	return resp
}
