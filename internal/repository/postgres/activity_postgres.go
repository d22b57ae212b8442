package postgres

import (
	"context"
	"database/sql"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
)

// ActivityLogPostgres is a PostgreSQL implementation of repository.ActivityLogRepository.
type ActivityLogPostgres struct {
	db *sql.DB
}

// NewActivityLogPostgres creates a new ActivityLogPostgres repository.
func NewActivityLogPostgres(db *sql.DB) *ActivityLogPostgres {
	return &ActivityLogPostgres{db: db}
}

var _ repository.ActivityLogRepository = (*ActivityLogPostgres)(nil)

// Create appends an audit record.
func (r *ActivityLogPostgres) Create(ctx context.Context, entry *model.ActivityLog) error {
	const q = `
		INSERT INTO activity_logs (id, actor_id, action, entity_type, entity_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, q,
		entry.ID,
		entry.ActorID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.CreatedAt,
	)
	return err
}

// List returns audit records, newest first, with a total count.
func (r *ActivityLogPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ActivityLog], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity_logs`).Scan(&total); err != nil {
		return nil, err
	}

	const q = `
		SELECT id, actor_id, action, entity_type, entity_id, created_at
		FROM activity_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ActivityLog, 0)
	for rows.Next() {
		var e model.ActivityLog
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ActivityLog]{Items: items, Total: total}, nil
}
