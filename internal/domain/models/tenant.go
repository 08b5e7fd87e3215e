package models

import "time"

// TenantType determines which default folder set a new tenant is seeded with.
type TenantType string

const (
	TenantTypeCompany    TenantType = "company"
	TenantTypeAgency     TenantType = "agency"
	TenantTypeIndividual TenantType = "individual"
)

// Tenant is the isolation boundary. Every folder and file resolves to
// exactly one tenant, directly or via an ancestor folder.
type Tenant struct {
	ID        string     `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Type      TenantType `json:"type" db:"type"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
