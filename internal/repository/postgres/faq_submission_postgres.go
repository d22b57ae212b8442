package postgres

import (
	"context"
	"database/sql"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
)

const submissionColumns = `id, question, category_id, submitted_by, status, admin_answer, admin_notes, created_at, updated_at`

// FAQSubmissionPostgres is a PostgreSQL implementation of repository.FAQSubmissionRepository.
type FAQSubmissionPostgres struct {
	db *sql.DB
}

// NewFAQSubmissionPostgres creates a new FAQSubmissionPostgres repository.
func NewFAQSubmissionPostgres(db *sql.DB) *FAQSubmissionPostgres {
	return &FAQSubmissionPostgres{db: db}
}

var _ repository.FAQSubmissionRepository = (*FAQSubmissionPostgres)(nil)

func scanSubmission(row rowScanner) (*model.FAQSubmission, error) {
	var (
		s          model.FAQSubmission
		categoryID sql.NullString
	)
	if err := row.Scan(
		&s.ID,
		&s.Question,
		&categoryID,
		&s.SubmittedBy,
		&s.Status,
		&s.AdminAnswer,
		&s.AdminNotes,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.CategoryID = categoryID.String
	return &s, nil
}

// Create inserts a new submission row and returns the stored record.
func (r *FAQSubmissionPostgres) Create(ctx context.Context, sub *model.FAQSubmission) (*model.FAQSubmission, error) {
	const q = `
		INSERT INTO faq_submissions (id, question, category_id, submitted_by, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + submissionColumns
	row := r.db.QueryRowContext(ctx, q,
		sub.ID,
		sub.Question,
		nullable(sub.CategoryID),
		sub.SubmittedBy,
		sub.Status,
		sub.CreatedAt,
		sub.UpdatedAt,
	)
	return scanSubmission(row)
}

// FindByID fetches a single submission by its ID.
func (r *FAQSubmissionPostgres) FindByID(ctx context.Context, id string) (*model.FAQSubmission, error) {
	const q = `SELECT ` + submissionColumns + ` FROM faq_submissions WHERE id = $1`
	return scanSubmission(r.db.QueryRowContext(ctx, q, id))
}

// ListBySubmitter returns a user's own submissions, newest first.
func (r *FAQSubmissionPostgres) ListBySubmitter(ctx context.Context, submitterID string, pq repository.PageQuery) (*repository.PageResult[model.FAQSubmission], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM faq_submissions WHERE submitted_by = $1`, submitterID).Scan(&total); err != nil {
		return nil, err
	}
	const q = `SELECT ` + submissionColumns + ` FROM faq_submissions WHERE submitted_by = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	return r.queryPage(ctx, q, total, submitterID, pq.Limit, pq.Offset)
}

// ListByStatus returns submissions in the given moderation state, oldest first.
func (r *FAQSubmissionPostgres) ListByStatus(ctx context.Context, status model.SubmissionStatus, pq repository.PageQuery) (*repository.PageResult[model.FAQSubmission], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM faq_submissions WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, err
	}
	const q = `SELECT ` + submissionColumns + ` FROM faq_submissions WHERE status = $1
		ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`
	return r.queryPage(ctx, q, total, status, pq.Limit, pq.Offset)
}

// Decide records a terminal moderation decision. The WHERE guard keeps a
// decided submission from being decided twice.
func (r *FAQSubmissionPostgres) Decide(ctx context.Context, id string, status model.SubmissionStatus, answer, notes string) (*model.FAQSubmission, error) {
	const q = `
		UPDATE faq_submissions
		SET status = $2, admin_answer = $3, admin_notes = $4, updated_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + submissionColumns
	return scanSubmission(r.db.QueryRowContext(ctx, q, id, status, answer, notes))
}

func (r *FAQSubmissionPostgres) queryPage(ctx context.Context, q string, total int, args ...any) (*repository.PageResult[model.FAQSubmission], error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FAQSubmission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.FAQSubmission]{Items: items, Total: total}, nil
}
