package postgres

import (
	"context"
	"database/sql"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
)

// StatsPostgres runs the aggregate queries behind the analytics screens.
type StatsPostgres struct {
	db *sql.DB
}

// NewStatsPostgres creates a new StatsPostgres repository.
func NewStatsPostgres(db *sql.DB) *StatsPostgres {
	return &StatsPostgres{db: db}
}

var _ repository.StatsRepository = (*StatsPostgres)(nil)

// Dashboard collects the admin dashboard counters in a handful of queries.
func (r *StatsPostgres) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	stats := &repository.DashboardStats{
		DocumentsByStatus: make(map[model.DocumentStatus]int),
	}

	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM documents GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			status model.DocumentStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		stats.DocumentsByStatus[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&stats.TotalUsers); err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM faqs`).Scan(&stats.TotalFAQs); err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM faq_submissions WHERE status = 'pending'`).Scan(&stats.PendingFAQs); err != nil {
		return nil, err
	}

	return stats, nil
}

// TopViewed returns the n most viewed published documents.
func (r *StatsPostgres) TopViewed(ctx context.Context, n int) ([]model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents
		WHERE status = 'approved' AND is_published
		ORDER BY view_count DESC, id DESC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0, n)
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
	return items, nil
}
