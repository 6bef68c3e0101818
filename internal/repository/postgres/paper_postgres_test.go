package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"reviewapi/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var (
	paperCols      = []string{"id", "moderator_id", "title", "note", "created_at", "updated_at"}
	attachmentCols = []string{"id", "original_name", "locator", "remote_id", "created_at"}
)

func TestPaperPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPaperPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	p := &model.Paper{
		ID:          "paper-uuid",
		ModeratorID: "mod-uuid",
		Title:       "T",
		Note:        "N",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	rows := sqlmock.NewRows(paperCols).
		AddRow(p.ID, p.ModeratorID, p.Title, p.Note, p.CreatedAt, p.UpdatedAt)

	mock.ExpectQuery("INSERT INTO papers").
		WithArgs(p.ID, p.ModeratorID, p.Title, p.Note, p.CreatedAt, p.UpdatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, p)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, p.ID, result.ID)
	assert.NotNil(t, result.Attachments)
	assert.Empty(t, result.Attachments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaperPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPaperPostgres(db)
	ctx := context.Background()

	t.Run("found with attachments in position order", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM papers WHERE id = ?").
			WithArgs("paper-id").
			WillReturnRows(sqlmock.NewRows(paperCols).
				AddRow("paper-id", "mod-id", "T", "N", time.Now(), time.Now()))

		mock.ExpectQuery("SELECT (.+) FROM attachments WHERE paper_id = ?").
			WithArgs("paper-id").
			WillReturnRows(sqlmock.NewRows(attachmentCols).
				AddRow("att-1", "a.pdf", "papers/a.pdf", "", time.Now()).
				AddRow("att-2", "b.pdf", "papers/b.pdf", "", time.Now()))

		p, err := repo.FindByID(ctx, "paper-id")

		assert.NoError(t, err)
		assert.NotNil(t, p)
		assert.Len(t, p.Attachments, 2)
		assert.Equal(t, "att-1", p.Attachments[0].ID)
		assert.Equal(t, "att-2", p.Attachments[1].ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM papers WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.FindByID(ctx, "missing")

		assert.Error(t, err)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, p)
	})
}

func TestPaperPostgres_ListByModerator(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPaperPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM papers WHERE moderator_id = ?").
			WithArgs("mod-id").
			WillReturnRows(sqlmock.NewRows(paperCols).
				AddRow("paper-1", "mod-id", "T1", "N1", time.Now(), time.Now()))

		mock.ExpectQuery("SELECT (.+) FROM attachments WHERE paper_id = ?").
			WithArgs("paper-1").
			WillReturnRows(sqlmock.NewRows(attachmentCols).
				AddRow("att-1", "a.pdf", "papers/a.pdf", "", time.Now()))

		papers, err := repo.ListByModerator(ctx, "mod-id")

		assert.NoError(t, err)
		assert.Len(t, papers, 1)
		assert.Len(t, papers[0].Attachments, 1)
	})

	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM papers WHERE moderator_id = ?").
			WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows(paperCols))

		papers, err := repo.ListByModerator(ctx, "nobody")

		assert.NoError(t, err)
		assert.Empty(t, papers)
		assert.NotNil(t, papers)
	})
}

func TestPaperPostgres_UpdateNote(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPaperPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectExec("UPDATE papers SET note = (.+), updated_at = (.+) WHERE id = ?").
		WithArgs("paper-id", "new note", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateNote(ctx, "paper-id", "new note", now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaperPostgres_AppendAttachment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPaperPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	att := &model.Attachment{
		ID:           "att-id",
		OriginalName: "a.pdf",
		Locator:      "papers/a.pdf",
		RemoteID:     "",
		CreatedAt:    now,
	}

	t.Run("inserts row and touches paper in one tx", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO attachments").
			WithArgs(att.ID, "paper-id", att.OriginalName, att.Locator, att.RemoteID, att.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE papers SET updated_at = (.+) WHERE id = ?").
			WithArgs("paper-id", now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.AppendAttachment(ctx, "paper-id", att, now))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on insert error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO attachments").
			WillReturnError(errors.New("insert failed"))
		mock.ExpectRollback()

		assert.Error(t, repo.AppendAttachment(ctx, "paper-id", att, now))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaperPostgres_RemoveAttachment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPaperPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM attachments WHERE id = (.+) AND paper_id = ?").
		WithArgs("att-id", "paper-id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE papers SET updated_at = (.+) WHERE id = ?").
		WithArgs("paper-id", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.RemoveAttachment(ctx, "paper-id", "att-id", now))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaperPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewPaperPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM papers WHERE id = ?").
		WithArgs("paper-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(ctx, "paper-id"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
