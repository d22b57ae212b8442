package repository

import (
	"context"

	"knowledgehub/internal/model"
)

// AttachmentRepository defines data access for attachment metadata rows.
type AttachmentRepository interface {
	// Create inserts a new attachment record.
	Create(ctx context.Context, att *model.Attachment) (*model.Attachment, error)

	// FindByID returns an attachment by its ID.
	FindByID(ctx context.Context, id string) (*model.Attachment, error)

	// ListByDocument returns all attachments of a document, newest first.
	ListByDocument(ctx context.Context, documentID string) ([]model.Attachment, error)

	// Delete removes an attachment by ID. Nil if the row did not exist.
	Delete(ctx context.Context, id string) error
}
