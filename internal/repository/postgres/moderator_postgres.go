package postgres

import (
	"context"
	"database/sql"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

// ModeratorPostgres is a PostgreSQL implementation of repository.ModeratorRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ModeratorPostgres struct {
	db *sql.DB
}

// NewModeratorPostgres creates a new ModeratorPostgres repository.
func NewModeratorPostgres(db *sql.DB) *ModeratorPostgres {
	return &ModeratorPostgres{db: db}
}

var _ repository.ModeratorRepository = (*ModeratorPostgres)(nil)

// Create inserts a new moderator row and returns the stored record.
func (r *ModeratorPostgres) Create(ctx context.Context, m *model.Moderator) (*model.Moderator, error) {
	const q = `
		INSERT INTO moderators (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, password_hash, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		m.ID,
		m.Username,
		m.PasswordHash,
		m.CreatedAt,
	)
	var out model.Moderator
	if err := row.Scan(
		&out.ID,
		&out.Username,
		&out.PasswordHash,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single moderator by its ID.
func (r *ModeratorPostgres) FindByID(ctx context.Context, id string) (*model.Moderator, error) {
	const q = `
		SELECT id, username, password_hash, created_at
		FROM moderators
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// FindByUsername fetches a single moderator by its unique username.
func (r *ModeratorPostgres) FindByUsername(ctx context.Context, username string) (*model.Moderator, error) {
	const q = `
		SELECT id, username, password_hash, created_at
		FROM moderators
		WHERE username = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, username))
}

// List returns all moderators ordered by creation time.
func (r *ModeratorPostgres) List(ctx context.Context) ([]model.Moderator, error) {
	const q = `
		SELECT id, username, password_hash, created_at
		FROM moderators
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Moderator, 0)
	for rows.Next() {
		var m model.Moderator
		if err := rows.Scan(
			&m.ID,
			&m.Username,
			&m.PasswordHash,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a moderator by ID. Papers and attachments owned by the
// moderator are removed by the database via ON DELETE CASCADE.
func (r *ModeratorPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM moderators WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

func (r *ModeratorPostgres) scanOne(row *sql.Row) (*model.Moderator, error) {
	var m model.Moderator
	if err := row.Scan(
		&m.ID,
		&m.Username,
		&m.PasswordHash,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}
