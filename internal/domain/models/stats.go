package models

// FolderStats holds recursive folder statistics. Direct counts cover
// immediate children only; FolderCount and FileCount cover the whole
// subtree (excluding the folder itself from FolderCount).
type FolderStats struct {
	DirectFolderCount int `json:"direct_folder_count"`
	DirectFileCount   int `json:"direct_file_count"`
	FolderCount       int `json:"folder_count"`
	FileCount         int `json:"file_count"`
}
