package repository

import (
	"context"

	"reviewapi/internal/model"
)

// ModeratorRepository defines data access for moderator accounts using SQL
// queries only. No business logic here, strictly persistence operations.
type ModeratorRepository interface {
	// Create inserts a new moderator row. The caller provides ID, PasswordHash
	// and CreatedAt. Returns the stored moderator.
	Create(ctx context.Context, m *model.Moderator) (*model.Moderator, error)

	// FindByID returns a moderator by its ID.
	FindByID(ctx context.Context, id string) (*model.Moderator, error)

	// FindByUsername returns a moderator by its unique username.
	FindByUsername(ctx context.Context, username string) (*model.Moderator, error)

	// List returns all moderators ordered by creation time.
	List(ctx context.Context) ([]model.Moderator, error)

	// Delete removes a moderator by ID. Owned papers and their attachment rows
	// are removed by the database through FK cascades. It returns nil if the
	// row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
