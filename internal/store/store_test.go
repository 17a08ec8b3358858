package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"eventhub/internal/common"
	"eventhub/internal/database"
	"eventhub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

/* ---------- fakes ---------- */

// fakeRow implements pgx.Row over a fixed list of column values.
type fakeRow struct {
	scanErr error
	values  []any
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	return assign(dest, r.values)
}

// fakeRows implements pgx.Rows over a list of rows.
type fakeRows struct {
	data    [][]any
	idx     int
	scanErr error
	err     error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool                                   { return r.idx < len(r.data) }
func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	row := r.data[r.idx]
	r.idx++
	return assign(dest, row)
}
func (r *fakeRows) Values() ([]any, error) { return nil, nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

func assign(dest, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d dest, %d values", len(dest), len(values))
	}
	for i, v := range values {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *bool:
			*d = v.(bool)
		case *int64:
			*d = v.(int64)
		case *[]string:
			if v == nil {
				*d = nil
			} else {
				*d = v.([]string)
			}
		case *[]byte:
			if v == nil {
				*d = nil
			} else {
				*d = v.([]byte)
			}
		case *time.Time:
			*d = v.(time.Time)
		default:
			panic(fmt.Sprintf("assign: unexpected dest %T", dest[i]))
		}
	}
	return nil
}

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func userValues(u model.User) []any {
	return []any{u.ID, u.Name, u.Email, u.PasswordHash, u.IsAdmin, u.ResumeIDs, u.CreatedAt}
}

func eventValues(e model.Event) []any {
	return []any{e.ID, e.Title, e.Type, e.Date, e.Description, e.Image, e.Link, e.CreatedAt, e.UpdatedAt}
}

/* ---------- mapErr ---------- */

func TestMapErr(t *testing.T) {
	require.ErrorIs(t, mapErr("op", pgx.ErrNoRows), common.ErrNotFound)
	require.ErrorIs(t, mapErr("op", &pgconn.PgError{Code: "23505"}), common.ErrConflict)

	other := errors.New("boom")
	err := mapErr("op", other)
	require.ErrorIs(t, err, other)
	require.NotErrorIs(t, err, common.ErrNotFound)
}

/* ---------- users ---------- */

func TestUserStore_Create(t *testing.T) {
	ctx := context.Background()
	u := &model.User{ID: "u1", Name: "Ann", Email: "ann@x.io", PasswordHash: "h", CreatedAt: now}

	t.Run("success", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				require.Contains(t, sql, "INSERT INTO users")
				gotArgs = args
				return pgconn.NewCommandTag("INSERT 0 1"), nil
			},
		}
		require.NoError(t, NewUserStore(db).Create(ctx, u))
		require.Equal(t, "ann@x.io", gotArgs[2])
		require.Equal(t, []string{}, gotArgs[5])
	})

	t.Run("duplicate email", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, &pgconn.PgError{Code: uniqueViolation}
			},
		}
		err := NewUserStore(db).Create(ctx, u)
		require.ErrorIs(t, err, common.ErrConflict)
	})
}

func TestUserStore_GetByEmail(t *testing.T) {
	ctx := context.Background()
	want := model.User{ID: "u1", Name: "Ann", Email: "ann@x.io", PasswordHash: "h", ResumeIDs: []string{"r1"}, CreatedAt: now}

	t.Run("found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "WHERE email = $1")
				require.Equal(t, "ann@x.io", args[0])
				return &fakeRow{values: userValues(want)}
			},
		}
		got, err := NewUserStore(db).GetByEmail(ctx, "ann@x.io")
		require.NoError(t, err)
		require.Equal(t, want, *got)
	})

	t.Run("null resume list", func(t *testing.T) {
		u := want
		u.ResumeIDs = nil
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{values: userValues(u)}
			},
		}
		got, err := NewUserStore(db).GetByID(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, []string{}, got.ResumeIDs)
	})

	t.Run("missing", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: pgx.ErrNoRows}
			},
		}
		_, err := NewUserStore(db).GetByEmail(ctx, "nobody@x.io")
		require.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestUserStore_Count(t *testing.T) {
	db := &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
			require.Contains(t, sql, "COUNT(*)")
			return &fakeRow{values: []any{int64(42)}}
		},
	}
	n, err := NewUserStore(db).Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(42), n)
}

func TestUserStore_AppendResumeAndSetAdmin(t *testing.T) {
	ctx := context.Background()
	tag := "UPDATE 1"
	db := &database.FakeDB{
		ExecFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
			require.True(t, strings.HasPrefix(sql, "UPDATE users"))
			return pgconn.NewCommandTag(tag), nil
		},
	}
	s := NewUserStore(db)

	require.NoError(t, s.AppendResume(ctx, "u1", "r1"))
	require.NoError(t, s.SetAdmin(ctx, "ann@x.io", true))

	tag = "UPDATE 0"
	require.ErrorIs(t, s.AppendResume(ctx, "ghost", "r1"), common.ErrNotFound)
	require.ErrorIs(t, s.SetAdmin(ctx, "ghost@x.io", true), common.ErrNotFound)
}

/* ---------- events ---------- */

func TestEventStore_List(t *testing.T) {
	ctx := context.Background()
	e1 := model.Event{ID: "e1", Title: "A", Type: "hackathon", Date: "2025-04-01", Description: "d", Link: "l", CreatedAt: now, UpdatedAt: now}
	e2 := model.Event{ID: "e2", Title: "B", Type: "internship", Date: "2025-05-01", Description: "d", Link: "l", CreatedAt: now.Add(-time.Hour), UpdatedAt: now}

	t.Run("rows", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
				require.Contains(t, sql, "ORDER BY created_at DESC")
				return &fakeRows{data: [][]any{eventValues(e1), eventValues(e2)}}, nil
			},
		}
		got, err := NewEventStore(db).List(ctx)
		require.NoError(t, err)
		require.Equal(t, []model.Event{e1, e2}, got)
	})

	t.Run("empty is not nil", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return &fakeRows{}, nil
			},
		}
		got, err := NewEventStore(db).List(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	t.Run("iteration error", func(t *testing.T) {
		boom := errors.New("conn reset")
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return &fakeRows{err: boom}, nil
			},
		}
		_, err := NewEventStore(db).List(ctx)
		require.ErrorIs(t, err, boom)
	})
}

func TestEventStore_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	affected := "1"
	db := &database.FakeDB{
		ExecFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
			verb := strings.Fields(sql)[0]
			return pgconn.NewCommandTag(verb + " " + affected), nil
		},
	}
	s := NewEventStore(db)
	e := &model.Event{ID: "e1", Title: "A", UpdatedAt: now}

	require.NoError(t, s.Update(ctx, e))
	require.NoError(t, s.Delete(ctx, "e1"))

	affected = "0"
	require.ErrorIs(t, s.Update(ctx, e), common.ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, "e1"), common.ErrNotFound)
}

/* ---------- resumes ---------- */

func TestResumeStore_CreateAndList(t *testing.T) {
	ctx := context.Background()
	r := &model.Resume{
		ID:         "r1",
		UserID:     "u1",
		Filename:   "1700000000000-cv.docx",
		Filepath:   "uploads/1700000000000-cv.docx",
		ParsedData: map[string]any{"skills": []any{"go"}},
		CreatedAt:  now,
	}

	var stored []byte
	db := &database.FakeDB{
		ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			require.Contains(t, sql, "INSERT INTO resumes")
			stored = args[4].([]byte)
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
		QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			if strings.Contains(sql, "ANY($1)") {
				require.Equal(t, []string{"r1"}, args[0])
			} else {
				require.Equal(t, "u1", args[0])
			}
			return &fakeRows{data: [][]any{{r.ID, r.UserID, r.Filename, r.Filepath, stored, r.CreatedAt}}}, nil
		},
	}
	s := NewResumeStore(db)

	require.NoError(t, s.Create(ctx, r))
	require.JSONEq(t, `{"skills":["go"]}`, string(stored))

	byUser, err := s.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, []model.Resume{*r}, byUser)

	byIDs, err := s.ListByIDs(ctx, []string{"r1"})
	require.NoError(t, err)
	require.Equal(t, []model.Resume{*r}, byIDs)
}

func TestResumeStore_ListByIDsEmpty(t *testing.T) {
	// no query expected
	s := NewResumeStore(&database.FakeDB{})
	got, err := s.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestResumeStore_NullParsedData(t *testing.T) {
	db := &database.FakeDB{
		QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return &fakeRows{data: [][]any{{"r1", "u1", "f", "p", nil, now}}}, nil
		},
	}
	got, err := NewResumeStore(db).ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Nil(t, got[0].ParsedData)
}
