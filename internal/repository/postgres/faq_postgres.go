package postgres

import (
	"context"
	"database/sql"
	"strconv"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
)

const faqColumns = `id, question, answer, category_id, is_published, helpful_count, not_helpful_count, created_at, updated_at`

// FAQPostgres is a PostgreSQL implementation of repository.FAQRepository.
type FAQPostgres struct {
	db *sql.DB
}

// NewFAQPostgres creates a new FAQPostgres repository.
func NewFAQPostgres(db *sql.DB) *FAQPostgres {
	return &FAQPostgres{db: db}
}

var _ repository.FAQRepository = (*FAQPostgres)(nil)

func scanFAQ(row rowScanner) (*model.FAQ, error) {
	var (
		f          model.FAQ
		categoryID sql.NullString
	)
	if err := row.Scan(
		&f.ID,
		&f.Question,
		&f.Answer,
		&categoryID,
		&f.IsPublished,
		&f.HelpfulCount,
		&f.NotHelpfulCount,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	f.CategoryID = categoryID.String
	return &f, nil
}

// Create inserts a new FAQ row and returns the stored record.
func (r *FAQPostgres) Create(ctx context.Context, faq *model.FAQ) (*model.FAQ, error) {
	const q = `
		INSERT INTO faqs (id, question, answer, category_id, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + faqColumns
	row := r.db.QueryRowContext(ctx, q,
		faq.ID,
		faq.Question,
		faq.Answer,
		nullable(faq.CategoryID),
		faq.IsPublished,
		faq.CreatedAt,
		faq.UpdatedAt,
	)
	return scanFAQ(row)
}

// FindByID fetches a single FAQ by its ID.
func (r *FAQPostgres) FindByID(ctx context.Context, id string) (*model.FAQ, error) {
	const q = `SELECT ` + faqColumns + ` FROM faqs WHERE id = $1`
	return scanFAQ(r.db.QueryRowContext(ctx, q, id))
}

// ListPublished returns published FAQs, optionally filtered by category.
func (r *FAQPostgres) ListPublished(ctx context.Context, categoryID string, pq repository.PageQuery) (*repository.PageResult[model.FAQ], error) {
	where := ` WHERE is_published`
	args := []any{}
	if categoryID != "" && categoryID != repository.CategoryAll {
		where += ` AND category_id = $1`
		args = append(args, categoryID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM faqs`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	limitPos := len(args) + 1
	q := `SELECT ` + faqColumns + ` FROM faqs` + where +
		` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(limitPos) + ` OFFSET $` + strconv.Itoa(limitPos+1)
	args = append(args, pq.Limit, pq.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FAQ, 0)
	for rows.Next() {
		f, err := scanFAQ(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.FAQ]{Items: items, Total: total}, nil
}

// Update replaces question, answer, category and published flag.
func (r *FAQPostgres) Update(ctx context.Context, faq *model.FAQ) (*model.FAQ, error) {
	const q = `
		UPDATE faqs
		SET question = $2, answer = $3, category_id = $4, is_published = $5, updated_at = now()
		WHERE id = $1
		RETURNING ` + faqColumns
	row := r.db.QueryRowContext(ctx, q, faq.ID, faq.Question, faq.Answer, nullable(faq.CategoryID), faq.IsPublished)
	return scanFAQ(row)
}

// Vote increments the helpful or not-helpful counter.
func (r *FAQPostgres) Vote(ctx context.Context, id string, helpful bool) error {
	q := `UPDATE faqs SET not_helpful_count = not_helpful_count + 1 WHERE id = $1`
	if helpful {
		q = `UPDATE faqs SET helpful_count = helpful_count + 1 WHERE id = $1`
	}
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an FAQ by ID. It does not return an error if the row does not exist.
func (r *FAQPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
