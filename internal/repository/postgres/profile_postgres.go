package postgres

import (
	"context"
	"database/sql"

	"knowledgehub/internal/model"
	"knowledgehub/internal/repository"
)

const profileColumns = `id, email, display_name, role, is_active, avatar_url, password_hash, created_at, updated_at`

// ProfilePostgres is a PostgreSQL implementation of repository.ProfileRepository.
type ProfilePostgres struct {
	db *sql.DB
}

// NewProfilePostgres creates a new ProfilePostgres repository.
func NewProfilePostgres(db *sql.DB) *ProfilePostgres {
	return &ProfilePostgres{db: db}
}

var _ repository.ProfileRepository = (*ProfilePostgres)(nil)

func scanProfile(row rowScanner) (*model.Profile, error) {
	var p model.Profile
	if err := row.Scan(
		&p.ID,
		&p.Email,
		&p.DisplayName,
		&p.Role,
		&p.IsActive,
		&p.AvatarURL,
		&p.PasswordHash,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new profile row and returns the stored record.
func (r *ProfilePostgres) Create(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	const q = `
		INSERT INTO profiles (id, email, display_name, role, is_active, avatar_url, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + profileColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Email,
		p.DisplayName,
		p.Role,
		p.IsActive,
		p.AvatarURL,
		p.PasswordHash,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return scanProfile(row)
}

// FindByID fetches a single profile by its ID.
func (r *ProfilePostgres) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches a single profile by its email address.
func (r *ProfilePostgres) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return scanProfile(r.db.QueryRowContext(ctx, q, email))
}

// List returns profiles using LIMIT/OFFSET pagination and a total count.
func (r *ProfilePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Profile], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&total); err != nil {
		return nil, err
	}

	const q = `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Profile]{Items: items, Total: total}, nil
}

// UpdateProfile replaces display name and avatar URL.
func (r *ProfilePostgres) UpdateProfile(ctx context.Context, id, displayName, avatarURL string) (*model.Profile, error) {
	const q = `
		UPDATE profiles
		SET display_name = $2, avatar_url = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + profileColumns
	return scanProfile(r.db.QueryRowContext(ctx, q, id, displayName, avatarURL))
}

// UpdateRole changes a profile's role.
func (r *ProfilePostgres) UpdateRole(ctx context.Context, id string, role model.Role) error {
	return r.exec(ctx, `UPDATE profiles SET role = $2, updated_at = now() WHERE id = $1`, id, role)
}

// SetActive toggles a profile's active flag.
func (r *ProfilePostgres) SetActive(ctx context.Context, id string, active bool) error {
	return r.exec(ctx, `UPDATE profiles SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
}

// UpdatePassword replaces a profile's password hash.
func (r *ProfilePostgres) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.exec(ctx, `UPDATE profiles SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
}

func (r *ProfilePostgres) exec(ctx context.Context, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
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
