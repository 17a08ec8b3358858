package store

import (
	"context"

	"eventhub/internal/common"
	"eventhub/internal/database"
	"eventhub/internal/model"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password_hash, is_admin, resume_ids, created_at`

type UserStore struct {
	db database.DB
}

func NewUserStore(db database.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.ResumeIDs,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	if u.ResumeIDs == nil {
		u.ResumeIDs = []string{}
	}
	return u, nil
}

func (s *UserStore) Create(ctx context.Context, u *model.User) error {
	if u.ResumeIDs == nil {
		u.ResumeIDs = []string{}
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, is_admin, resume_ids, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.IsAdmin,
		u.ResumeIDs,
		u.CreatedAt,
	)
	if err != nil {
		return mapErr("CreateUser", err)
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr("GetUserByID", err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, mapErr("GetUserByEmail", err)
	}
	return u, nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, mapErr("CountUsers", err)
	}
	return n, nil
}

func (s *UserStore) AppendResume(ctx context.Context, userID, resumeID string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE users SET resume_ids = array_append(resume_ids, $2) WHERE id = $1`,
		userID,
		resumeID,
	)
	if err != nil {
		return mapErr("AppendResume", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("AppendResume", common.ErrNotFound)
	}
	return nil
}

// SetAdmin raises or clears the admin flag. Only the operator CLI calls it.
func (s *UserStore) SetAdmin(ctx context.Context, email string, admin bool) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE users SET is_admin = $2 WHERE email = $1`,
		email,
		admin,
	)
	if err != nil {
		return mapErr("SetAdmin", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("SetAdmin", common.ErrNotFound)
	}
	return nil
}
