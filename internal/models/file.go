package models

// FileMetadata is a lightweight representation returned by vault listings.
type FileMetadata struct {
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Checksum string `json:"checksum"`
}
