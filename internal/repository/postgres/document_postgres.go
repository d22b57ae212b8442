package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
)

const documentColumns = `id, title, content, summary, category_id, status, is_published, created_by,
		view_count, download_count, rejection_reason, approved_by, approved_at, created_at, updated_at`

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var (
		d          model.Document
		categoryID sql.NullString
		reason     sql.NullString
		approvedBy sql.NullString
		approvedAt sql.NullTime
	)
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Content,
		&d.Summary,
		&categoryID,
		&d.Status,
		&d.IsPublished,
		&d.CreatedBy,
		&d.ViewCount,
		&d.DownloadCount,
		&reason,
		&approvedBy,
		&approvedAt,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	d.CategoryID = categoryID.String
	d.RejectionReason = reason.String
	d.ApprovedBy = approvedBy.String
	if approvedAt.Valid {
		t := approvedAt.Time
		d.ApprovedAt = &t
	}
	return &d, nil
}

// nullable maps the empty string to a SQL NULL for optional UUID/text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// escapeLike neutralizes LIKE/ILIKE wildcards in a user-supplied term so a
// search for a literal "100%" does not match everything starting with "100".
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, title, content, summary, category_id, status, is_published, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Content,
		doc.Summary,
		nullable(doc.CategoryID),
		doc.Status,
		doc.IsPublished,
		doc.CreatedBy,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// ListPublished returns approved, published documents matching the filter.
// Search is case-insensitive against title and summary; the category filter is
// exact or absent when the sentinel "all" (or empty) is given.
func (r *DocumentPostgres) ListPublished(ctx context.Context, f repository.DocumentFilter, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	where := ` WHERE status = 'approved' AND is_published`
	args := []any{}
	idx := 1
	if f.Search != "" {
		where += ` AND (title ILIKE '%' || $1 || '%' OR summary ILIKE '%' || $1 || '%')`
		args = append(args, escapeLike(f.Search))
		idx++
	}
	if f.CategoryID != "" && f.CategoryID != repository.CategoryAll {
		where += ` AND category_id = $` + strconv.Itoa(idx)
		args = append(args, f.CategoryID)
		idx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + documentColumns + ` FROM documents` + where +
		` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(idx) + ` OFFSET $` + strconv.Itoa(idx+1)
	args = append(args, pq.Limit, pq.Offset)

	return r.queryPage(ctx, q, total, args...)
}

// ListByCreator returns all documents created by the given user, any status.
func (r *DocumentPostgres) ListByCreator(ctx context.Context, creatorID string, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE created_by = $1`, creatorID).Scan(&total); err != nil {
		return nil, err
	}
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE created_by = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	return r.queryPage(ctx, q, total, creatorID, pq.Limit, pq.Offset)
}

// ListByStatus returns documents in the given review state, oldest first so
// reviewers see the longest-waiting submissions at the top.
func (r *DocumentPostgres) ListByStatus(ctx context.Context, status model.DocumentStatus, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, err
	}
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE status = $1
		ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`
	return r.queryPage(ctx, q, total, status, pq.Limit, pq.Offset)
}

// UpdateContent updates title, content, summary and category of a document.
func (r *DocumentPostgres) UpdateContent(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET title = $2, content = $3, summary = $4, category_id = $5, updated_at = now()
		WHERE id = $1
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q, doc.ID, doc.Title, doc.Content, doc.Summary, nullable(doc.CategoryID))
	return scanDocument(row)
}

// Approve transitions a pending document to approved and publishes it.
// The WHERE guard makes the transition happen exactly once; a second approval
// sees sql.ErrNoRows.
func (r *DocumentPostgres) Approve(ctx context.Context, id, adminID string, at time.Time) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET status = 'approved', is_published = TRUE, approved_by = $2, approved_at = $3, updated_at = now()
		WHERE id = $1 AND status = 'pending_approval'
		RETURNING ` + documentColumns
	return scanDocument(r.db.QueryRowContext(ctx, q, id, adminID, at))
}

// Reject transitions a pending document to rejected; is_published stays false.
func (r *DocumentPostgres) Reject(ctx context.Context, id, reason string) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET status = 'rejected', rejection_reason = $2, updated_at = now()
		WHERE id = $1 AND status = 'pending_approval'
		RETURNING ` + documentColumns
	return scanDocument(r.db.QueryRowContext(ctx, q, id, nullable(reason)))
}

// IncrementViewCount bumps the view counter through the DB-side function.
func (r *DocumentPostgres) IncrementViewCount(ctx context.Context, id string) (int64, error) {
	var n sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT increment_view_count($1)`, id).Scan(&n); err != nil {
		return 0, err
	}
	if !n.Valid {
		return 0, sql.ErrNoRows
	}
	return n.Int64, nil
}

// IncrementDownloadCount bumps the download counter through the DB-side function.
func (r *DocumentPostgres) IncrementDownloadCount(ctx context.Context, id string) (int64, error) {
	var n sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT increment_download_count($1)`, id).Scan(&n); err != nil {
		return 0, err
	}
	if !n.Valid {
		return 0, sql.ErrNoRows
	}
	return n.Int64, nil
}

// Delete removes a document by ID. Attachment rows go with it via ON DELETE CASCADE.
// Returns sql.ErrNoRows when the document does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
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

func (r *DocumentPostgres) queryPage(ctx context.Context, q string, total int, args ...any) (*repository.PageResult[model.Document], error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{Items: items, Total: total}, nil
}
