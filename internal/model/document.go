package model

import "time"

// DocumentStatus is the review state of a document.
type DocumentStatus string

const (
	StatusDraft           DocumentStatus = "draft"
	StatusPendingApproval DocumentStatus = "pending_approval"
	StatusApproved        DocumentStatus = "approved"
	StatusRejected        DocumentStatus = "rejected"
)

// Document represents a knowledge article with its review workflow state.
// This is a pure domain model with no database-specific dependencies or tags.
// Invariant kept by the approve/reject operations: IsPublished is true only
// when Status is StatusApproved.
type Document struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Content         string         `json:"content"`
	Summary         string         `json:"summary"`
	CategoryID      string         `json:"category_id"`
	Status          DocumentStatus `json:"status"`
	IsPublished     bool           `json:"is_published"`
	CreatedBy       string         `json:"created_by"`
	ViewCount       int64          `json:"view_count"`
	DownloadCount   int64          `json:"download_count"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	ApprovedBy      string         `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Visible reports whether the document may be shown to non-admin users.
func (d *Document) Visible() bool {
	return d.IsPublished
}

// Attachment is a stored file linked to a parent document.
type Attachment struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	FileName    string    `json:"file_name"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}
