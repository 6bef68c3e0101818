package service

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"reviewapi/internal/auth"
	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrModeratorNotFound  = errors.New("moderator not found")
)

// CredentialService verifies admin and moderator logins, issues session
// tokens, and manages moderator accounts.
type CredentialService interface {
	// AdminLogin succeeds only for the fixed "admin" username with the
	// configured secret and returns a signed admin token.
	AdminLogin(ctx context.Context, username, password string) (string, error)

	// ModeratorLogin verifies a moderator's password against the stored hash
	// and returns a signed token plus the account (hash stripped).
	ModeratorLogin(ctx context.Context, username, password string) (string, *model.Moderator, error)

	// Register creates a new moderator account with a salted password hash.
	// The returned model never carries the hash.
	Register(ctx context.Context, username, password string) (*model.Moderator, error)

	// List returns all moderators with password hashes stripped.
	List(ctx context.Context) ([]model.Moderator, error)

	// Delete removes a moderator and cascades to every owned paper, including
	// best-effort blob cleanup. The result enumerates blob deletes that failed.
	Delete(ctx context.Context, id string) (*CascadeResult, error)
}

// credentialService is a concrete implementation of CredentialService.
type credentialService struct {
	mods          repository.ModeratorRepository
	papers        PaperService
	signer        *auth.Signer
	adminPassword string
}

// NewCredentialService constructs a new CredentialService.
func NewCredentialService(mods repository.ModeratorRepository, papers PaperService, signer *auth.Signer, adminPassword string) CredentialService {
	return &credentialService{
		mods:          mods,
		papers:        papers,
		signer:        signer,
		adminPassword: adminPassword,
	}
}

func (s *credentialService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	// An unset admin secret disables admin login entirely rather than
	// accepting an empty password.
	if s.adminPassword == "" {
		return "", ErrInvalidCredentials
	}
	if username != auth.AdminUsername {
		return "", ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) != 1 {
		return "", ErrInvalidCredentials
	}

	token, err := s.signer.Sign(auth.AdminClaims())
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *credentialService) ModeratorLogin(ctx context.Context, username, password string) (string, *model.Moderator, error) {
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	mod, err := s.mods.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	match, err := auth.VerifyPassword(password, mod.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.signer.Sign(auth.ModeratorClaims(mod.ID, mod.Username))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	mod.PasswordHash = ""
	return token, mod, nil
}

func (s *credentialService) Register(ctx context.Context, username, password string) (*model.Moderator, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	_, err := s.mods.FindByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	stored, err := s.mods.Create(ctx, &model.Moderator{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	stored.PasswordHash = ""
	return stored, nil
}

func (s *credentialService) List(ctx context.Context) ([]model.Moderator, error) {
	mods, err := s.mods.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range mods {
		mods[i].PasswordHash = ""
	}
	return mods, nil
}

func (s *credentialService) Delete(ctx context.Context, id string) (*CascadeResult, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	if _, err := s.mods.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrModeratorNotFound
		}
		return nil, err
	}

	// Blob cleanup and paper rows first; the moderator row goes last so a
	// failure midway leaves the account and remaining papers intact.
	res, err := s.papers.DeleteByOwner(ctx, id)
	if err != nil {
		return res, err
	}

	if err := s.mods.Delete(ctx, id); err != nil {
		return res, fmt.Errorf("db delete failed: %w", err)
	}
	return res, nil
}
