package service

import (
	"context"

	"eventhub/internal/model"
)

// UserRepository is implemented by store.UserStore. Lookups return
// common.ErrNotFound for missing rows; Create returns common.ErrConflict for
// a duplicate email.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Count(ctx context.Context) (int64, error)
	AppendResume(ctx context.Context, userID, resumeID string) error
}

// EventRepository lists newest first. Delete returns common.ErrNotFound when
// nothing was removed.
type EventRepository interface {
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	Create(ctx context.Context, e *model.Event) error
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id string) error
}

type ResumeRepository interface {
	Create(ctx context.Context, r *model.Resume) error
	ListByUser(ctx context.Context, userID string) ([]model.Resume, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Resume, error)
}
