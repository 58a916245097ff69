package models

import (
	"time"

	"github.com/google/uuid"
)

// File categories for uploaded binary objects.
var ValidFileCategories = map[string]bool{
	"evidencia":  true,
	"croqui":     true,
	"assinatura": true,
	"logo":       true,
	"outro":      true,
}

// File is the metadata row for an uploaded object. The bytes themselves live
// in object storage under Path.
type File struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	CompanyID     uuid.UUID  `json:"company_id" db:"company_id"`
	Filename      string     `json:"filename" db:"filename"`
	OriginalName  string     `json:"original_name" db:"original_name"`
	MimeType      string     `json:"mime_type" db:"mime_type"`
	Size          int64      `json:"size" db:"size"`
	Path          string     `json:"path" db:"path"`
	Category      string     `json:"category" db:"category"`
	ApplicationID *uuid.UUID `json:"application_id" db:"application_id"`
	UploadedBy    *uuid.UUID `json:"uploaded_by" db:"uploaded_by"`
	UploadedAt    time.Time  `json:"uploaded_at" db:"uploaded_at"`
}
