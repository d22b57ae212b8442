package repository

import (
	"context"

	"knowledgehub/internal/model"
)

// FAQRepository defines data access for published FAQs.
type FAQRepository interface {
	Create(ctx context.Context, faq *model.FAQ) (*model.FAQ, error)
	FindByID(ctx context.Context, id string) (*model.FAQ, error)

	// ListPublished returns published FAQs, optionally filtered by category id
	// (empty or the CategoryAll sentinel means no filter).
	ListPublished(ctx context.Context, categoryID string, pq PageQuery) (*PageResult[model.FAQ], error)

	// Update replaces question, answer, category and published flag.
	Update(ctx context.Context, faq *model.FAQ) (*model.FAQ, error)

	// Vote increments the helpful or not-helpful counter.
	Vote(ctx context.Context, id string, helpful bool) error

	Delete(ctx context.Context, id string) error
}

// FAQSubmissionRepository defines data access for user-proposed questions.
type FAQSubmissionRepository interface {
	Create(ctx context.Context, sub *model.FAQSubmission) (*model.FAQSubmission, error)
	FindByID(ctx context.Context, id string) (*model.FAQSubmission, error)
	ListBySubmitter(ctx context.Context, submitterID string, pq PageQuery) (*PageResult[model.FAQSubmission], error)
	ListByStatus(ctx context.Context, status model.SubmissionStatus, pq PageQuery) (*PageResult[model.FAQSubmission], error)

	// Decide records a terminal moderation decision. Returns sql.ErrNoRows if
	// the submission is not currently pending.
	Decide(ctx context.Context, id string, status model.SubmissionStatus, answer, notes string) (*model.FAQSubmission, error)
}
