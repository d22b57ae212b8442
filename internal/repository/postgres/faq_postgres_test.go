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

var faqTestColumns = []string{
	"id", "question", "answer", "category_id", "is_published", "helpful_count", "not_helpful_count", "created_at", "updated_at",
}

func faqRow(id string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(faqTestColumns).
		AddRow(id, "How do I reset my password?", "Use the reset link.", nil, true, 3, 1, now, now)
}

func TestFAQPostgres_ListPublished(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFAQPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM faqs").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM faqs WHERE is_published").
		WithArgs(10, 0).
		WillReturnRows(faqRow("faq-1"))

	res, err := repo.ListPublished(ctx, "", repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, int64(3), res.Items[0].HelpfulCount)
}

func TestFAQPostgres_Vote(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFAQPostgres(db)
	ctx := context.Background()

	t.Run("helpful", func(t *testing.T) {
		mock.ExpectExec("UPDATE faqs SET helpful_count").
			WithArgs("faq-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Vote(ctx, "faq-1", true))
	})

	t.Run("not helpful", func(t *testing.T) {
		mock.ExpectExec("UPDATE faqs SET not_helpful_count").
			WithArgs("faq-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Vote(ctx, "faq-1", false))
	})

	t.Run("unknown id", func(t *testing.T) {
		mock.ExpectExec("UPDATE faqs SET helpful_count").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Vote(ctx, "missing", true)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}

var submissionTestColumns = []string{
	"id", "question", "category_id", "submitted_by", "status", "admin_answer", "admin_notes", "created_at", "updated_at",
}

func submissionRow(id string, status model.SubmissionStatus) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(submissionTestColumns).
		AddRow(id, "Can I expense a monitor?", nil, "user-1", status, "Yes, up to the budget.", "", now, now)
}

func TestFAQSubmissionPostgres_Decide(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFAQSubmissionPostgres(db)
	ctx := context.Background()

	t.Run("pending submission decided", func(t *testing.T) {
		mock.ExpectQuery("UPDATE faq_submissions").
			WithArgs("sub-1", model.SubmissionApproved, "Yes, up to the budget.", "").
			WillReturnRows(submissionRow("sub-1", model.SubmissionApproved))

		sub, err := repo.Decide(ctx, "sub-1", model.SubmissionApproved, "Yes, up to the budget.", "")

		assert.NoError(t, err)
		assert.Equal(t, model.SubmissionApproved, sub.Status)
	})

	t.Run("already decided returns no rows", func(t *testing.T) {
		mock.ExpectQuery("UPDATE faq_submissions").
			WithArgs("sub-1", model.SubmissionRejected, "", "duplicate").
			WillReturnRows(sqlmock.NewRows(submissionTestColumns))

		sub, err := repo.Decide(ctx, "sub-1", model.SubmissionRejected, "", "duplicate")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, sub)
	})
}

func TestFAQSubmissionPostgres_ListByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFAQSubmissionPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM faq_submissions WHERE status").
		WithArgs(model.SubmissionPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM faq_submissions WHERE status").
		WithArgs(model.SubmissionPending, 10, 0).
		WillReturnRows(submissionRow("sub-1", model.SubmissionPending))

	res, err := repo.ListByStatus(ctx, model.SubmissionPending, repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
}
