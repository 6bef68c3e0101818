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

var moderatorCols = []string{"id", "username", "password_hash", "created_at"}

func TestModeratorPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewModeratorPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	mod := &model.Moderator{
		ID:           "mod-uuid",
		Username:     "alice",
		PasswordHash: "$argon2id$hash",
		CreatedAt:    now,
	}

	rows := sqlmock.NewRows(moderatorCols).
		AddRow(mod.ID, mod.Username, mod.PasswordHash, mod.CreatedAt)

	mock.ExpectQuery("INSERT INTO moderators").
		WithArgs(mod.ID, mod.Username, mod.PasswordHash, mod.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, mod)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, mod.Username, result.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModeratorPostgres_FindByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewModeratorPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(moderatorCols).
			AddRow("mod-id", "alice", "hash", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM moderators WHERE username = ?").
			WithArgs("alice").
			WillReturnRows(rows)

		mod, err := repo.FindByUsername(ctx, "alice")

		assert.NoError(t, err)
		assert.NotNil(t, mod)
		assert.Equal(t, "mod-id", mod.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM moderators WHERE username = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		mod, err := repo.FindByUsername(ctx, "missing")

		assert.Error(t, err)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, mod)
	})
}

func TestModeratorPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewModeratorPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(moderatorCols).
		AddRow("mod-id", "alice", "hash", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM moderators WHERE id = ?").
		WithArgs("mod-id").
		WillReturnRows(rows)

	mod, err := repo.FindByID(ctx, "mod-id")

	assert.NoError(t, err)
	assert.Equal(t, "alice", mod.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModeratorPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewModeratorPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows(moderatorCols).
			AddRow("id-1", "alice", "hash-1", time.Now()).
			AddRow("id-2", "bob", "hash-2", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM moderators ORDER BY created_at").
			WillReturnRows(rows)

		mods, err := repo.List(ctx)

		assert.NoError(t, err)
		assert.Len(t, mods, 2)
		assert.Equal(t, "alice", mods[0].Username)
		assert.Equal(t, "bob", mods[1].Username)
	})

	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM moderators ORDER BY created_at").
			WillReturnRows(sqlmock.NewRows(moderatorCols))

		mods, err := repo.List(ctx)

		assert.NoError(t, err)
		assert.Empty(t, mods)
		assert.NotNil(t, mods)
	})
}

func TestModeratorPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewModeratorPostgres(db)
	ctx := context.Background()

	t.Run("deletes existing row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM moderators WHERE id = ?").
			WithArgs("mod-id").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "mod-id"))
	})

	t.Run("missing row is not an error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM moderators WHERE id = ?").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Delete(ctx, "missing"))
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM moderators WHERE id = ?").
			WithArgs("mod-id").
			WillReturnError(errors.New("db down"))

		assert.Error(t, repo.Delete(ctx, "mod-id"))
	})
}
