package postgres

import (
	"context"
	"database/sql"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
)

const attachmentColumns = `id, document_id, file_name, storage_path, size, content_type, uploaded_by, created_at`

// AttachmentPostgres is a PostgreSQL implementation of repository.AttachmentRepository.
type AttachmentPostgres struct {
	db *sql.DB
}

// NewAttachmentPostgres creates a new AttachmentPostgres repository.
func NewAttachmentPostgres(db *sql.DB) *AttachmentPostgres {
	return &AttachmentPostgres{db: db}
}

var _ repository.AttachmentRepository = (*AttachmentPostgres)(nil)

func scanAttachment(row rowScanner) (*model.Attachment, error) {
	var a model.Attachment
	if err := row.Scan(
		&a.ID,
		&a.DocumentID,
		&a.FileName,
		&a.StoragePath,
		&a.Size,
		&a.ContentType,
		&a.UploadedBy,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new attachment row and returns the stored record.
func (r *AttachmentPostgres) Create(ctx context.Context, att *model.Attachment) (*model.Attachment, error) {
	const q = `
		INSERT INTO attachments (id, document_id, file_name, storage_path, size, content_type, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + attachmentColumns
	row := r.db.QueryRowContext(ctx, q,
		att.ID,
		att.DocumentID,
		att.FileName,
		att.StoragePath,
		att.Size,
		att.ContentType,
		att.UploadedBy,
		att.CreatedAt,
	)
	return scanAttachment(row)
}

// FindByID fetches a single attachment by its ID.
func (r *AttachmentPostgres) FindByID(ctx context.Context, id string) (*model.Attachment, error) {
	const q = `SELECT ` + attachmentColumns + ` FROM attachments WHERE id = $1`
	return scanAttachment(r.db.QueryRowContext(ctx, q, id))
}

// ListByDocument returns all attachments of a document, newest first.
func (r *AttachmentPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.Attachment, error) {
	const q = `SELECT ` + attachmentColumns + ` FROM attachments WHERE document_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Attachment, 0)
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes an attachment by ID. It does not return an error if the row does not exist.
func (r *AttachmentPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
