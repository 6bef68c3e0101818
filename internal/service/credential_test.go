package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"reviewapi/internal/auth"
	"reviewapi/internal/model"
	repoMocks "reviewapi/internal/repository/mocks"
	storeMocks "reviewapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testSigner(t *testing.T) *auth.Signer {
	t.Helper()
	signer, err := auth.NewSigner("test-secret", time.Hour)
	require.NoError(t, err)
	return signer
}

func TestCredentialService_AdminLogin(t *testing.T) {
	ctx := context.Background()
	signer := testSigner(t)
	svc := NewCredentialService(nil, nil, signer, "admin-secret")

	t.Run("valid credentials issue admin claims", func(t *testing.T) {
		token, err := svc.AdminLogin(ctx, "admin", "admin-secret")
		require.NoError(t, err)

		claims, err := signer.Parse(token)
		require.NoError(t, err)
		assert.True(t, claims.Admin)
		assert.Equal(t, "admin", claims.Subject)
	})

	t.Run("any other credential pair fails", func(t *testing.T) {
		tests := []struct {
			name     string
			username string
			password string
		}{
			{"wrong username", "root", "admin-secret"},
			{"wrong password", "admin", "nope"},
			{"both wrong", "root", "nope"},
			{"empty password", "admin", ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.AdminLogin(ctx, tt.username, tt.password)
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			})
		}
	})

	t.Run("unset admin secret disables admin login", func(t *testing.T) {
		disabled := NewCredentialService(nil, nil, signer, "")
		_, err := disabled.AdminLogin(ctx, "admin", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestCredentialService_ModeratorLogin(t *testing.T) {
	ctx := context.Background()
	signer := testSigner(t)

	hash, err := auth.HashPassword("alice-pass")
	require.NoError(t, err)
	stored := &model.Moderator{ID: "alice-id", Username: "alice", PasswordHash: hash}

	t.Run("correct password issues moderator claims", func(t *testing.T) {
		mMods := new(repoMocks.MockModeratorRepository)
		svc := NewCredentialService(mMods, nil, signer, "admin-secret")

		found := *stored
		mMods.On("FindByUsername", ctx, "alice").Return(&found, nil)

		token, mod, err := svc.ModeratorLogin(ctx, "alice", "alice-pass")
		require.NoError(t, err)
		assert.Empty(t, mod.PasswordHash)
		assert.Equal(t, "alice", mod.Username)

		claims, err := signer.Parse(token)
		require.NoError(t, err)
		assert.False(t, claims.Admin)
		assert.Equal(t, "alice-id", claims.Subject)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		mMods := new(repoMocks.MockModeratorRepository)
		svc := NewCredentialService(mMods, nil, signer, "admin-secret")

		found := *stored
		mMods.On("FindByUsername", ctx, "alice").Return(&found, nil)

		_, _, err := svc.ModeratorLogin(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		mMods := new(repoMocks.MockModeratorRepository)
		svc := NewCredentialService(mMods, nil, signer, "admin-secret")

		mMods.On("FindByUsername", ctx, "ghost").Return(nil, sql.ErrNoRows)

		_, _, err := svc.ModeratorLogin(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("repository error surfaces", func(t *testing.T) {
		mMods := new(repoMocks.MockModeratorRepository)
		svc := NewCredentialService(mMods, nil, signer, "admin-secret")

		mMods.On("FindByUsername", ctx, "alice").Return(nil, errors.New("db down"))

		_, _, err := svc.ModeratorLogin(ctx, "alice", "alice-pass")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestCredentialService_Register(t *testing.T) {
	ctx := context.Background()
	signer := testSigner(t)

	t.Run("success strips hash and stores verifiable password", func(t *testing.T) {
		mMods := new(repoMocks.MockModeratorRepository)
		svc := NewCredentialService(mMods, nil, signer, "admin-secret")

		mMods.On("FindByUsername", ctx, "alice").Return(nil, sql.ErrNoRows)

		var storedHash string
		mMods.On("Create", ctx, mock.MatchedBy(func(m *model.Moderator) bool {
			storedHash = m.PasswordHash
			return m.Username == "alice" && m.ID != "" && m.PasswordHash != "" && m.PasswordHash != "alice-pass"
		})).Return(&model.Moderator{ID: "gen-id", Username: "alice", PasswordHash: "stored"}, nil)

		mod, err := svc.Register(ctx, "alice", "alice-pass")
		require.NoError(t, err)
		assert.Empty(t, mod.PasswordHash)

		match, err := auth.VerifyPassword("alice-pass", storedHash)
		require.NoError(t, err)
		assert.True(t, match)
	})

	t.Run("taken username fails without modifying the store", func(t *testing.T) {
		mMods := new(repoMocks.MockModeratorRepository)
		svc := NewCredentialService(mMods, nil, signer, "admin-secret")

		mMods.On("FindByUsername", ctx, "alice").Return(&model.Moderator{ID: "alice-id"}, nil)

		_, err := svc.Register(ctx, "alice", "pass")
		assert.ErrorIs(t, err, ErrUsernameTaken)
		mMods.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewCredentialService(nil, nil, signer, "admin-secret")

		_, err := svc.Register(ctx, "", "pass")
		assert.ErrorIs(t, err, ErrUsernameRequired)

		_, err = svc.Register(ctx, "alice", "")
		assert.ErrorIs(t, err, ErrPasswordRequired)
	})
}

func TestCredentialService_List(t *testing.T) {
	ctx := context.Background()
	mMods := new(repoMocks.MockModeratorRepository)
	svc := NewCredentialService(mMods, nil, testSigner(t), "admin-secret")

	mMods.On("List", ctx).Return([]model.Moderator{
		{ID: "a", Username: "alice", PasswordHash: "hash-a"},
		{ID: "b", Username: "bob", PasswordHash: "hash-b"},
	}, nil)

	mods, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, mods, 2)
	for _, m := range mods {
		assert.Empty(t, m.PasswordHash)
	}
}

func TestCredentialService_Delete(t *testing.T) {
	ctx := context.Background()
	signer := testSigner(t)

	t.Run("cascades papers and blobs before the account", func(t *testing.T) {
		mMods := new(repoMocks.MockModeratorRepository)
		mPapers := new(repoMocks.MockPaperRepository)
		mStore := new(storeMocks.MockStorage)
		paperSvc := NewPaperService(mStore, mPapers, mMods)
		svc := NewCredentialService(mMods, paperSvc, signer, "admin-secret")

		mMods.On("FindByID", ctx, "alice-id").Return(&model.Moderator{ID: "alice-id"}, nil)
		mPapers.On("ListByModerator", ctx, "alice-id").Return([]model.Paper{
			{ID: "paper-1", Attachments: []model.Attachment{{ID: "att-a", Locator: "papers/a.pdf"}}},
		}, nil)
		mStore.On("Delete", ctx, "papers/a.pdf").Return(nil)
		mPapers.On("Delete", ctx, "paper-1").Return(nil)
		mMods.On("Delete", ctx, "alice-id").Return(nil)

		res, err := svc.Delete(ctx, "alice-id")
		require.NoError(t, err)
		assert.Equal(t, 1, res.Deleted)
		mMods.AssertExpectations(t)
		mPapers.AssertExpectations(t)
		mStore.AssertExpectations(t)
	})

	t.Run("missing moderator", func(t *testing.T) {
		mMods := new(repoMocks.MockModeratorRepository)
		svc := NewCredentialService(mMods, nil, signer, "admin-secret")

		mMods.On("FindByID", ctx, "ghost").Return(nil, sql.ErrNoRows)

		_, err := svc.Delete(ctx, "ghost")
		assert.ErrorIs(t, err, ErrModeratorNotFound)
	})
}
