package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"eventhub/internal/common"
	"eventhub/internal/model"
)

// FakeUsers is an in-memory UserStore for tests and local wiring.
type FakeUsers struct {
	mu    sync.Mutex
	users map[string]model.User
}

func NewFakeUsers() *FakeUsers {
	return &FakeUsers{users: map[string]model.User{}}
}

func (f *FakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return fmt.Errorf("CreateUser: %w", common.ErrConflict)
		}
	}
	c := *u
	c.ResumeIDs = append([]string{}, u.ResumeIDs...)
	f.users[u.ID] = c
	return nil
}

func (f *FakeUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("GetUserByID: %w", common.ErrNotFound)
	}
	return cloneUser(u), nil
}

func (f *FakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, fmt.Errorf("GetUserByEmail: %w", common.ErrNotFound)
}

func (f *FakeUsers) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

func (f *FakeUsers) AppendResume(_ context.Context, userID, resumeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("AppendResume: %w", common.ErrNotFound)
	}
	u.ResumeIDs = append(u.ResumeIDs, resumeID)
	f.users[userID] = u
	return nil
}

func (f *FakeUsers) SetAdmin(_ context.Context, email string, admin bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if u.Email == email {
			u.IsAdmin = admin
			f.users[id] = u
			return nil
		}
	}
	return fmt.Errorf("SetAdmin: %w", common.ErrNotFound)
}

func cloneUser(u model.User) *model.User {
	u.ResumeIDs = append([]string{}, u.ResumeIDs...)
	return &u
}

// FakeEvents is an in-memory EventStore. List orders by CreatedAt, newest
// first, with later inserts winning ties.
type FakeEvents struct {
	mu     sync.Mutex
	seq    int
	events map[string]fakeEvent
}

type fakeEvent struct {
	seq   int
	event model.Event
}

func NewFakeEvents() *FakeEvents {
	return &FakeEvents{events: map[string]fakeEvent{}}
}

func (f *FakeEvents) List(context.Context) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]fakeEvent, 0, len(f.events))
	for _, e := range f.events {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].event.CreatedAt.Equal(all[j].event.CreatedAt) {
			return all[i].event.CreatedAt.After(all[j].event.CreatedAt)
		}
		return all[i].seq > all[j].seq
	})
	out := make([]model.Event, 0, len(all))
	for _, e := range all {
		out = append(out, e.event)
	}
	return out, nil
}

func (f *FakeEvents) GetByID(_ context.Context, id string) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, fmt.Errorf("GetEventByID: %w", common.ErrNotFound)
	}
	ev := e.event
	return &ev, nil
}

func (f *FakeEvents) Create(_ context.Context, e *model.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[e.ID]; ok {
		return fmt.Errorf("CreateEvent: %w", common.ErrConflict)
	}
	f.seq++
	f.events[e.ID] = fakeEvent{seq: f.seq, event: *e}
	return nil
}

func (f *FakeEvents) Update(_ context.Context, e *model.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.events[e.ID]
	if !ok {
		return fmt.Errorf("UpdateEvent: %w", common.ErrNotFound)
	}
	updated := *e
	updated.CreatedAt = cur.event.CreatedAt
	f.events[e.ID] = fakeEvent{seq: cur.seq, event: updated}
	return nil
}

func (f *FakeEvents) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return fmt.Errorf("DeleteEvent: %w", common.ErrNotFound)
	}
	delete(f.events, id)
	return nil
}

// Len reports how many events are stored.
func (f *FakeEvents) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

// FakeResumes is an in-memory ResumeStore.
type FakeResumes struct {
	mu      sync.Mutex
	resumes []model.Resume
}

func NewFakeResumes() *FakeResumes {
	return &FakeResumes{}
}

func (f *FakeResumes) Create(_ context.Context, r *model.Resume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.resumes {
		if existing.ID == r.ID {
			return fmt.Errorf("CreateResume: %w", common.ErrConflict)
		}
	}
	f.resumes = append(f.resumes, *r)
	return nil
}

func (f *FakeResumes) ListByUser(_ context.Context, userID string) ([]model.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Resume{}
	for _, r := range f.resumes {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *FakeResumes) ListByIDs(_ context.Context, ids []string) ([]model.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := []model.Resume{}
	for _, r := range f.resumes {
		if _, ok := want[r.ID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Len reports how many resumes are stored.
func (f *FakeResumes) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.resumes)
}
