package repository

import (
	"context"
	"time"

	"reviewapi/internal/model"
)

// PaperRepository defines data access for papers and their attachment rows.
// Attachments are an owned, ordered container: every mutation of the sequence
// goes through a repository method on the owning paper, never through direct
// row manipulation from other layers.
type PaperRepository interface {
	// Create inserts a new paper row without attachments.
	Create(ctx context.Context, p *model.Paper) (*model.Paper, error)

	// FindByID returns a paper with its attachments in position order.
	FindByID(ctx context.Context, id string) (*model.Paper, error)

	// ListByModerator returns all papers owned by the given moderator, each
	// with its attachments in position order.
	ListByModerator(ctx context.Context, moderatorID string) ([]model.Paper, error)

	// UpdateNote replaces the paper's note and refreshes updated_at.
	UpdateNote(ctx context.Context, id, note string, updatedAt time.Time) error

	// AppendAttachment adds an attachment at the end of the paper's sequence
	// (next free position) and refreshes the paper's updated_at, atomically.
	AppendAttachment(ctx context.Context, paperID string, att *model.Attachment, updatedAt time.Time) error

	// RemoveAttachment deletes one attachment row by ID and refreshes the
	// paper's updated_at, atomically. Removing a row that does not exist is
	// not an error; callers check existence beforehand.
	RemoveAttachment(ctx context.Context, paperID, attachmentID string, updatedAt time.Time) error

	// Delete removes a paper by ID; attachment rows go with it via FK cascade.
	// It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
