package repository

import (
	"context"
	"time"

	"knowledgehub/internal/model"
)

// DocumentFilter narrows published-document listings.
// Search matches case-insensitively against title and summary. CategoryID is
// an exact category id; empty or the sentinel "all" means no category filter.
type DocumentFilter struct {
	Search     string
	CategoryID string
}

// CategoryAll is the sentinel category filter value meaning "no filter".
const CategoryAll = "all"

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListPublished returns approved, published documents matching the filter.
	ListPublished(ctx context.Context, f DocumentFilter, pq PageQuery) (*PageResult[model.Document], error)

	// ListByCreator returns all documents created by the given user, any status.
	ListByCreator(ctx context.Context, creatorID string, pq PageQuery) (*PageResult[model.Document], error)

	// ListByStatus returns documents in the given review state.
	ListByStatus(ctx context.Context, status model.DocumentStatus, pq PageQuery) (*PageResult[model.Document], error)

	// UpdateContent updates title, content, summary and category of a document.
	UpdateContent(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Approve transitions a pending document to approved and publishes it.
	// Returns sql.ErrNoRows if the document is not currently pending.
	Approve(ctx context.Context, id, adminID string, at time.Time) (*model.Document, error)

	// Reject transitions a pending document to rejected with an optional reason.
	// The publication flag stays false. Returns sql.ErrNoRows if not pending.
	Reject(ctx context.Context, id, reason string) (*model.Document, error)

	// IncrementViewCount bumps the view counter via the DB-side function.
	IncrementViewCount(ctx context.Context, id string) (int64, error)

	// IncrementDownloadCount bumps the download counter via the DB-side function.
	IncrementDownloadCount(ctx context.Context, id string) (int64, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
