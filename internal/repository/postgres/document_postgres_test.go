package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var documentTestColumns = []string{
	"id", "title", "content", "summary", "category_id", "status", "is_published", "created_by",
	"view_count", "download_count", "rejection_reason", "approved_by", "approved_at", "created_at", "updated_at",
}

func documentRow(id string, status model.DocumentStatus, published bool) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(documentTestColumns).
		AddRow(id, "Onboarding Guide", "content", "summary", nil, status, published, "user-1",
			int64(0), int64(0), nil, nil, nil, now, now)
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		ID:        "doc-1",
		Title:     "Onboarding Guide",
		Content:   "content",
		Summary:   "summary",
		Status:    model.StatusPendingApproval,
		CreatedBy: "user-1",
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.Title, doc.Content, doc.Summary, nil, doc.Status, doc.IsPublished, doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt).
		WillReturnRows(documentRow(doc.ID, model.StatusPendingApproval, false))

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, doc.ID, result.ID)
	assert.Equal(t, model.StatusPendingApproval, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("doc-1").
			WillReturnRows(documentRow("doc-1", model.StatusApproved, true))

		doc, err := repo.FindByID(ctx, "doc-1")

		assert.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Equal(t, "doc-1", doc.ID)
		assert.True(t, doc.IsPublished)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.Error(t, err)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_ListPublished(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("no filter", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE status = 'approved' AND is_published").
			WithArgs(10, 0).
			WillReturnRows(documentRow("doc-1", model.StatusApproved, true))

		res, err := repo.ListPublished(ctx, repository.DocumentFilter{}, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
	})

	t.Run("search and category", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").
			WithArgs("guide", "cat-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE status = 'approved' AND is_published AND \\(title ILIKE").
			WithArgs("guide", "cat-1", 10, 0).
			WillReturnRows(documentRow("doc-1", model.StatusApproved, true))

		f := repository.DocumentFilter{Search: "guide", CategoryID: "cat-1"}
		res, err := repo.ListPublished(ctx, f, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
	})

	t.Run("wildcards in the search term are taken literally", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").
			WithArgs(`100\% \_done\_`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE status = 'approved' AND is_published AND \\(title ILIKE").
			WithArgs(`100\% \_done\_`, 10, 0).
			WillReturnRows(sqlmock.NewRows(documentTestColumns))

		f := repository.DocumentFilter{Search: "100% _done_"}
		_, err := repo.ListPublished(ctx, f, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
	})

	t.Run("all-categories sentinel drops the filter", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE status = 'approved' AND is_published").
			WithArgs(10, 0).
			WillReturnRows(sqlmock.NewRows(documentTestColumns))

		f := repository.DocumentFilter{CategoryID: repository.CategoryAll}
		res, err := repo.ListPublished(ctx, f, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.Empty(t, res.Items)
	})
}

func TestDocumentPostgres_Approve(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()
	at := time.Now().UTC()

	t.Run("pending document is approved", func(t *testing.T) {
		mock.ExpectQuery("UPDATE documents").
			WithArgs("doc-1", "admin-1", at).
			WillReturnRows(documentRow("doc-1", model.StatusApproved, true))

		doc, err := repo.Approve(ctx, "doc-1", "admin-1", at)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusApproved, doc.Status)
		assert.True(t, doc.IsPublished)
	})

	t.Run("already decided returns no rows", func(t *testing.T) {
		mock.ExpectQuery("UPDATE documents").
			WithArgs("doc-1", "admin-1", at).
			WillReturnRows(sqlmock.NewRows(documentTestColumns))

		doc, err := repo.Approve(ctx, "doc-1", "admin-1", at)

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_Reject(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("UPDATE documents").
		WithArgs("doc-1", "missing citations").
		WillReturnRows(documentRow("doc-1", model.StatusRejected, false))

	doc, err := repo.Reject(ctx, "doc-1", "missing citations")

	assert.NoError(t, err)
	assert.Equal(t, model.StatusRejected, doc.Status)
	assert.False(t, doc.IsPublished)
}

func TestDocumentPostgres_Counters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("view count incremented", func(t *testing.T) {
		mock.ExpectQuery("SELECT increment_view_count").
			WithArgs("doc-1").
			WillReturnRows(sqlmock.NewRows([]string{"increment_view_count"}).AddRow(int64(7)))

		n, err := repo.IncrementViewCount(ctx, "doc-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(7), n)
	})

	t.Run("unknown id yields null", func(t *testing.T) {
		mock.ExpectQuery("SELECT increment_download_count").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"increment_download_count"}).AddRow(nil))

		n, err := repo.IncrementDownloadCount(ctx, "missing")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Zero(t, n)
	})
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents").
			WithArgs("doc-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "doc-1"))
	})

	t.Run("unknown id", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, "missing")
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
