package postgres

import (
	"context"
	"database/sql"
	"time"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

// PaperPostgres is a PostgreSQL implementation of repository.PaperRepository.
// Papers and their attachment rows are read and mutated together so callers
// always see the full current document.
type PaperPostgres struct {
	db *sql.DB
}

// NewPaperPostgres creates a new PaperPostgres repository.
func NewPaperPostgres(db *sql.DB) *PaperPostgres {
	return &PaperPostgres{db: db}
}

var _ repository.PaperRepository = (*PaperPostgres)(nil)

// Create inserts a new paper row and returns the stored record without attachments.
func (r *PaperPostgres) Create(ctx context.Context, p *model.Paper) (*model.Paper, error) {
	const q = `
		INSERT INTO papers (id, moderator_id, title, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, moderator_id, title, note, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.ModeratorID,
		p.Title,
		p.Note,
		p.CreatedAt,
		p.UpdatedAt,
	)
	var out model.Paper
	if err := row.Scan(
		&out.ID,
		&out.ModeratorID,
		&out.Title,
		&out.Note,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	out.Attachments = make([]model.Attachment, 0)
	return &out, nil
}

// FindByID fetches a paper and its attachments in position order.
func (r *PaperPostgres) FindByID(ctx context.Context, id string) (*model.Paper, error) {
	const q = `
		SELECT id, moderator_id, title, note, created_at, updated_at
		FROM papers
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var p model.Paper
	if err := row.Scan(
		&p.ID,
		&p.ModeratorID,
		&p.Title,
		&p.Note,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	atts, err := r.attachmentsFor(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Attachments = atts
	return &p, nil
}

// ListByModerator returns all papers owned by the moderator, newest first,
// each with its attachments in position order.
func (r *PaperPostgres) ListByModerator(ctx context.Context, moderatorID string) ([]model.Paper, error) {
	const q = `
		SELECT id, moderator_id, title, note, created_at, updated_at
		FROM papers
		WHERE moderator_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, moderatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	papers := make([]model.Paper, 0)
	for rows.Next() {
		var p model.Paper
		if err := rows.Scan(
			&p.ID,
			&p.ModeratorID,
			&p.Title,
			&p.Note,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range papers {
		atts, err := r.attachmentsFor(ctx, papers[i].ID)
		if err != nil {
			return nil, err
		}
		papers[i].Attachments = atts
	}
	return papers, nil
}

// UpdateNote replaces the note and refreshes updated_at.
func (r *PaperPostgres) UpdateNote(ctx context.Context, id, note string, updatedAt time.Time) error {
	const q = `UPDATE papers SET note = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, note, updatedAt)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// AppendAttachment inserts an attachment at the next free position and
// refreshes the paper's updated_at within one transaction.
func (r *PaperPostgres) AppendAttachment(ctx context.Context, paperID string, att *model.Attachment, updatedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const qInsert = `
		INSERT INTO attachments (id, paper_id, position, original_name, locator, remote_id, created_at)
		SELECT $1, $2, COALESCE(MAX(position) + 1, 0), $3, $4, $5, $6
		FROM attachments
		WHERE paper_id = $2
	`
	if _, err := tx.ExecContext(ctx, qInsert,
		att.ID,
		paperID,
		att.OriginalName,
		att.Locator,
		att.RemoteID,
		att.CreatedAt,
	); err != nil {
		return err
	}

	const qTouch = `UPDATE papers SET updated_at = $2 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, qTouch, paperID, updatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// RemoveAttachment deletes one attachment row and refreshes the paper's
// updated_at within one transaction. Positions of remaining attachments are
// left untouched; ordering only needs to be stable, not dense.
func (r *PaperPostgres) RemoveAttachment(ctx context.Context, paperID, attachmentID string, updatedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const qDelete = `DELETE FROM attachments WHERE id = $1 AND paper_id = $2`
	if _, err := tx.ExecContext(ctx, qDelete, attachmentID, paperID); err != nil {
		return err
	}

	const qTouch = `UPDATE papers SET updated_at = $2 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, qTouch, paperID, updatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a paper by ID; attachment rows are removed by the database
// via ON DELETE CASCADE. It does not return an error if the row does not exist.
func (r *PaperPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM papers WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

func (r *PaperPostgres) attachmentsFor(ctx context.Context, paperID string) ([]model.Attachment, error) {
	const q = `
		SELECT id, original_name, locator, remote_id, created_at
		FROM attachments
		WHERE paper_id = $1
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, q, paperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	atts := make([]model.Attachment, 0)
	for rows.Next() {
		var a model.Attachment
		if err := rows.Scan(
			&a.ID,
			&a.OriginalName,
			&a.Locator,
			&a.RemoteID,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		atts = append(atts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return atts, nil
}
