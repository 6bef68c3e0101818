// Package model contains domain models/data structures.
// These are pure domain types with no database-specific dependencies or tags;
// they can be used across layers (HTTP, service, storage) without coupling to
// persistence.
package model

import "time"

// Moderator is an account that can be assigned papers.
// PasswordHash is never serialized in responses.
type Moderator struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Paper is a reviewed document with metadata and an ordered list of file
// attachments. ModeratorID is immutable after creation; UpdatedAt is refreshed
// on every mutation, including attachment changes.
type Paper struct {
	ID          string       `json:"id"`
	ModeratorID string       `json:"moderator_id"`
	Title       string       `json:"title"`
	Note        string       `json:"note"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Attachment is a metadata record pointing to one stored file, owned by
// exactly one Paper. Locator is the public path (local backend) or object URL
// (remote backend). RemoteID is the object key and is set only when the file
// lives in the remote store; blob deletion uses RemoteID when present and
// falls back to Locator otherwise.
type Attachment struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	Locator      string    `json:"locator"`
	RemoteID     string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// DeleteKey returns the blob-store key to use when removing the backing file.
func (a Attachment) DeleteKey() string {
	if a.RemoteID != "" {
		return a.RemoteID
	}
	return a.Locator
}
