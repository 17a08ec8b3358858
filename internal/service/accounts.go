package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventhub/internal/common"
	"eventhub/internal/model"

	"github.com/google/uuid"
)

var newID = uuid.NewString

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User      model.User
	Token     string
	ExpiresAt time.Time
}

// Profile is a user with resume references resolved.
type Profile struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	IsAdmin   bool           `json:"is_admin"`
	Resumes   []model.Resume `json:"resumes"`
	CreatedAt time.Time      `json:"created_at"`
}

// Accounts handles registration, login and profile lookups.
type Accounts struct {
	users   UserRepository
	resumes ResumeRepository
	tokens  *Tokens
	log     *slog.Logger
}

func NewAccounts(users UserRepository, resumes ResumeRepository, tokens *Tokens, log *slog.Logger) *Accounts {
	return &Accounts{users: users, resumes: resumes, tokens: tokens, log: log}
}

// Register creates a non-admin user. The admin flag can only be raised out
// of band.
func (a *Accounts) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	const op = "service.Accounts.Register"

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%s: %w: name, email and password are required", op, common.ErrValidation)
	}

	existing, err := a.users.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, fmt.Errorf("%s: %w", op, common.ErrConflict)
	case err != nil && !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: hash password: %w", op, err)
	}

	u := &model.User{
		ID:           newID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      false,
		ResumeIDs:    []string{},
		CreatedAt:    timeNow().UTC(),
	}
	if err := a.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.log.InfoContext(ctx, "user registered", slog.String("user_id", u.ID))

	return a.issue(*u)
}

// Login checks the credentials. Unknown email and wrong password look the
// same to the caller.
func (a *Accounts) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	const op = "service.Accounts.Login"

	email = strings.ToLower(strings.TrimSpace(email))
	u, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, common.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ComparePassword(u.PasswordHash, password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, common.ErrUnauthorized)
	}
	return a.issue(*u)
}

func (a *Accounts) issue(u model.User) (*AuthResult, error) {
	token, exp, err := a.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: u, Token: token, ExpiresAt: exp}, nil
}

// Profile returns the user with its resumes in list order. Ids whose resume
// row is gone are skipped.
func (a *Accounts) Profile(ctx context.Context, userID string) (*Profile, error) {
	const op = "service.Accounts.Profile"

	u, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resumes := []model.Resume{}
	if len(u.ResumeIDs) > 0 {
		found, err := a.resumes.ListByIDs(ctx, u.ResumeIDs)
		if err != nil {
			return nil, fmt.Errorf("%s: resumes: %w", op, err)
		}
		byID := make(map[string]model.Resume, len(found))
		for _, r := range found {
			byID[r.ID] = r
		}
		for _, id := range u.ResumeIDs {
			if r, ok := byID[id]; ok {
				resumes = append(resumes, r)
			}
		}
	}

	return &Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		Resumes:   resumes,
		CreatedAt: u.CreatedAt,
	}, nil
}

// CountUsers is served without authentication.
func (a *Accounts) CountUsers(ctx context.Context) (int64, error) {
	n, err := a.users.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("service.Accounts.CountUsers: %w", err)
	}
	return n, nil
}
