package postgres

import "fmt"

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Tenants string
	Folders string
	Files   string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Tenants: fmt.Sprintf("%stenants", prefix),
		Folders: fmt.Sprintf("%sfolders", prefix),
		Files:   fmt.Sprintf("%sfiles", prefix),
	}
}
