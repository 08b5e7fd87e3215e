package models

import "time"

// File is a document stored in a folder. ExternalKey identifies the blob
// in external storage; nil for legacy/template rows that never had one.
//
// Files move between live (DeletedAt == nil) and soft-deleted
// (DeletedAt set), and are either restored or purged once their
// soft-delete age exceeds the retention window. Folders have no
// soft-delete tier and are hard-deleted recursively.
type File struct {
	ID           string     `json:"id" db:"id"`
	FolderID     string     `json:"folder_id" db:"folder_id"`
	TenantUserID *string    `json:"tenant_user_id" db:"tenant_user_id"` // nil = seeded by provisioning
	Name         string     `json:"name" db:"name"`
	ExternalKey  *string    `json:"external_key" db:"external_key"`
	URL          string     `json:"url" db:"url"`
	Size         int64      `json:"size" db:"size"`
	MimeType     string     `json:"mime_type" db:"mime_type"`
	Category     string     `json:"category" db:"category"`
	IssueDate    *time.Time `json:"issue_date" db:"issue_date"`
	ExpiryDate   *time.Time `json:"expiry_date" db:"expiry_date"`
	RenewalDate  *time.Time `json:"renewal_date" db:"renewal_date"`
	PlaceOfIssue string     `json:"place_of_issue" db:"place_of_issue"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// IsDeleted reports whether the file is in the soft-deleted state.
func (f *File) IsDeleted() bool {
	return f.DeletedAt != nil
}
