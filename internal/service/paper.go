package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
	"reviewapi/internal/storage"
)

var (
	ErrIDRequired         = errors.New("id is required")
	ErrReaderNil          = errors.New("reader is nil")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title exceeds 100 characters")
	ErrNoteRequired       = errors.New("note is required")
	ErrNoteTooLong        = errors.New("note exceeds 500 characters")
	ErrPaperNotFound      = errors.New("paper not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
)

const (
	maxTitleLen = 100
	maxNoteLen  = 500
)

// Upload is one incoming file in a create/update request.
// OriginalFilename is used for display and to extract the stored extension;
// the stored name is always UUID + extension.
type Upload struct {
	Reader           io.Reader
	OriginalFilename string
	ContentType      string
	Size             int64
}

// CascadeFailure records one blob that could not be removed during a cascade
// delete.
type CascadeFailure struct {
	Key string `json:"key"`
	Err error  `json:"-"`
}

// CascadeResult enumerates the outcome of a cascade delete: how many blobs
// were removed and which ones failed. Failures are reported, not fatal: the
// metadata delete proceeds so the system never holds an undeletable record.
type CascadeResult struct {
	Deleted int              `json:"deleted"`
	Failed  []CascadeFailure `json:"failed,omitempty"`
}

// PaperService defines the use cases for papers and their file attachments.
type PaperService interface {
	// Create makes a new paper owned by moderatorID and stores the initial
	// attachments in arrival order. The owner must exist.
	Create(ctx context.Context, moderatorID, title, note string, files []Upload) (*model.Paper, error)

	// Update replaces the note (when non-nil) and/or appends attachments in
	// arrival order. Existing attachments are untouched.
	Update(ctx context.Context, id string, note *string, files []Upload) (*model.Paper, error)

	// RemoveAttachment deletes one attachment by ID: blob first, then the
	// metadata row. A blob-store failure aborts the metadata removal.
	RemoveAttachment(ctx context.Context, paperID, attachmentID string) (*model.Paper, error)

	// ListByModerator returns all papers owned by the given moderator.
	ListByModerator(ctx context.Context, moderatorID string) ([]model.Paper, error)

	// Delete removes a paper and, best-effort, every attachment's blob.
	Delete(ctx context.Context, id string) (*CascadeResult, error)

	// DeleteByOwner removes every paper owned by the moderator, with the same
	// best-effort blob cleanup as Delete.
	DeleteByOwner(ctx context.Context, moderatorID string) (*CascadeResult, error)
}

// paperService is a concrete implementation of PaperService.
type paperService struct {
	store  storage.Storage
	papers repository.PaperRepository
	mods   repository.ModeratorRepository
}

// NewPaperService constructs a new PaperService.
func NewPaperService(store storage.Storage, papers repository.PaperRepository, mods repository.ModeratorRepository) PaperService {
	return &paperService{store: store, papers: papers, mods: mods}
}

func validateTitle(title string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if len([]rune(title)) > maxTitleLen {
		return ErrTitleTooLong
	}
	return nil
}

func validateNote(note string) error {
	if note == "" {
		return ErrNoteRequired
	}
	if len([]rune(note)) > maxNoteLen {
		return ErrNoteTooLong
	}
	return nil
}

func (s *paperService) Create(ctx context.Context, moderatorID, title, note string, files []Upload) (*model.Paper, error) {
	if moderatorID == "" {
		return nil, ErrIDRequired
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateNote(note); err != nil {
		return nil, err
	}

	// The owner must reference an existing moderator at creation time.
	if _, err := s.mods.FindByID(ctx, moderatorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrModeratorNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	paper, err := s.papers.Create(ctx, &model.Paper{
		ID:          uuid.New().String(),
		ModeratorID: moderatorID,
		Title:       title,
		Note:        note,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	if err := s.addAttachments(ctx, paper.ID, files); err != nil {
		return nil, err
	}

	return s.papers.FindByID(ctx, paper.ID)
}

func (s *paperService) Update(ctx context.Context, id string, note *string, files []Upload) (*model.Paper, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	if _, err := s.findPaper(ctx, id); err != nil {
		return nil, err
	}

	if note != nil {
		if err := validateNote(*note); err != nil {
			return nil, err
		}
		if err := s.papers.UpdateNote(ctx, id, *note, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("db save failed: %w", err)
		}
	}

	if err := s.addAttachments(ctx, id, files); err != nil {
		return nil, err
	}

	return s.papers.FindByID(ctx, id)
}

// addAttachments stores each file in the blob store and appends a metadata
// row, preserving arrival order. If an upload or persist step fails mid-batch,
// attachments appended earlier in the same call stay in place; only the
// current file's blob is rolled back.
func (s *paperService) addAttachments(ctx context.Context, paperID string, files []Upload) error {
	for _, f := range files {
		if f.Reader == nil {
			return ErrReaderNil
		}

		ext := filepath.Ext(f.OriginalFilename)
		key := filepath.ToSlash(filepath.Join("papers", uuid.New().String()+ext))

		info, err := s.store.Put(ctx, key, f.Reader, storage.PutObjectOptions{
			Size:        f.Size,
			ContentType: f.ContentType,
			Metadata: map[string]string{
				"original-filename": f.OriginalFilename,
			},
		})
		if err != nil {
			return fmt.Errorf("upload to storage: %w", err)
		}

		now := time.Now().UTC()
		att := &model.Attachment{
			ID:           uuid.New().String(),
			OriginalName: f.OriginalFilename,
			CreatedAt:    now,
		}
		if info.URL != "" {
			att.Locator = info.URL
			att.RemoteID = info.Key
		} else {
			att.Locator = info.Key
		}

		if err := s.papers.AppendAttachment(ctx, paperID, att, now); err != nil {
			// Roll back this file's blob; earlier appends in the batch stand.
			if delErr := s.store.Delete(ctx, att.DeleteKey()); delErr != nil {
				return fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
			}
			return fmt.Errorf("db save failed: %w", err)
		}
	}
	return nil
}

// RemoveAttachment deletes the blob first and only then persists the metadata
// removal, so a blob-store failure blocks the removal instead of leaking a
// dangling locator.
func (s *paperService) RemoveAttachment(ctx context.Context, paperID, attachmentID string) (*model.Paper, error) {
	if paperID == "" || attachmentID == "" {
		return nil, ErrIDRequired
	}

	paper, err := s.findPaper(ctx, paperID)
	if err != nil {
		return nil, err
	}

	var target *model.Attachment
	for i := range paper.Attachments {
		if paper.Attachments[i].ID == attachmentID {
			target = &paper.Attachments[i]
			break
		}
	}
	if target == nil {
		return nil, ErrAttachmentNotFound
	}

	if err := s.store.Delete(ctx, target.DeleteKey()); err != nil {
		return nil, fmt.Errorf("delete storage: %w", err)
	}

	if err := s.papers.RemoveAttachment(ctx, paperID, attachmentID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	return s.papers.FindByID(ctx, paperID)
}

func (s *paperService) ListByModerator(ctx context.Context, moderatorID string) ([]model.Paper, error) {
	if moderatorID == "" {
		return nil, ErrIDRequired
	}
	return s.papers.ListByModerator(ctx, moderatorID)
}

func (s *paperService) Delete(ctx context.Context, id string) (*CascadeResult, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	paper, err := s.findPaper(ctx, id)
	if err != nil {
		return nil, err
	}

	res := &CascadeResult{}
	s.deleteBlobs(ctx, paper, res)

	if err := s.papers.Delete(ctx, id); err != nil {
		return res, fmt.Errorf("db delete failed: %w", err)
	}
	return res, nil
}

func (s *paperService) DeleteByOwner(ctx context.Context, moderatorID string) (*CascadeResult, error) {
	if moderatorID == "" {
		return nil, ErrIDRequired
	}

	papers, err := s.papers.ListByModerator(ctx, moderatorID)
	if err != nil {
		return nil, err
	}

	res := &CascadeResult{}
	for i := range papers {
		s.deleteBlobs(ctx, &papers[i], res)
		if err := s.papers.Delete(ctx, papers[i].ID); err != nil {
			return res, fmt.Errorf("db delete failed: %w", err)
		}
	}
	return res, nil
}

// deleteBlobs removes every attachment's blob, recording failures instead of
// aborting: the metadata delete must still proceed or the record becomes
// undeletable.
func (s *paperService) deleteBlobs(ctx context.Context, paper *model.Paper, res *CascadeResult) {
	for _, att := range paper.Attachments {
		key := att.DeleteKey()
		if err := s.store.Delete(ctx, key); err != nil {
			res.Failed = append(res.Failed, CascadeFailure{Key: key, Err: err})
			continue
		}
		res.Deleted++
	}
}

func (s *paperService) findPaper(ctx context.Context, id string) (*model.Paper, error) {
	paper, err := s.papers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaperNotFound
		}
		return nil, err
	}
	return paper, nil
}
