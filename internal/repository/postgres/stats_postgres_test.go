package postgres

import (
	"context"
	"testing"

	"knowledgehub/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestStatsPostgres_Dashboard(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStatsPostgres(db)
	ctx := context.Background()

	statusRows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow(model.StatusApproved, 4).
		AddRow(model.StatusPendingApproval, 2)
	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) FROM documents GROUP BY status").
		WillReturnRows(statusRows)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM profiles").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(9))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM faqs").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM faq_submissions WHERE status").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	stats, err := repo.Dashboard(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 4, stats.DocumentsByStatus[model.StatusApproved])
	assert.Equal(t, 2, stats.DocumentsByStatus[model.StatusPendingApproval])
	assert.Equal(t, 9, stats.TotalUsers)
	assert.Equal(t, 5, stats.TotalFAQs)
	assert.Equal(t, 1, stats.PendingFAQs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsPostgres_TopViewed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStatsPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs(5).
		WillReturnRows(documentRow("doc-1", model.StatusApproved, true))

	docs, err := repo.TopViewed(ctx, 5)

	assert.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, "doc-1", docs[0].ID)
}
