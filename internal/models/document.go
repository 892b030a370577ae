package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is a library entry: metadata only, file storage lives elsewhere.
type Document struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title" validate:"required"`
	Description    string    `json:"description"`
	Tags           []string  `json:"tags"`
	Classification string    `json:"classification" validate:"omitempty,oneof=public internal confidential restricted"`
	SizeBytes      int64     `json:"size" validate:"gte=0"`
	Checksum       string    `json:"checksum"`
	UploadedBy     string    `json:"uploadedBy"`
	UploadDate     time.Time `json:"uploadDate"`
	LastModified   time.Time `json:"lastModified"`
}

// DocumentSortKey selects the comparator for document listings.
type DocumentSortKey string

const (
	SortByTitle        DocumentSortKey = "title"
	SortBySize         DocumentSortKey = "size"
	SortByUploadDate   DocumentSortKey = "uploadDate"
	SortByLastModified DocumentSortKey = "lastModified"
)
