package main

import (
	"context"
	"errors"
	"io"
	"testing"

	"eventhub/internal/common"
	"eventhub/internal/database"
	"eventhub/internal/model"
	"eventhub/internal/store"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/stretchr/testify/require"
)

func restoreGlobals() {
	readEnv = cleanenv.ReadEnv
	newPgxPool = database.NewPgxPool
	newSetter = func(db database.DB) adminSetter { return store.NewUserStore(db) }
	exitFunc = func(int) {}
}

func TestRun(t *testing.T) {
	t.Cleanup(restoreGlobals)
	t.Setenv("DATABASE_URL", "postgres://x")

	users := store.NewFakeUsers()
	require.NoError(t, users.Create(context.Background(), &model.User{ID: "u1", Email: "ann@x.io"}))

	closed := false
	newPgxPool = func(_ context.Context, url string) (database.DB, error) {
		require.Equal(t, "postgres://x", url)
		return &database.FakeDB{CloseFn: func() { closed = true }}, nil
	}
	newSetter = func(database.DB) adminSetter { return users }

	require.NoError(t, run([]string{"-email", " ANN@x.io "}, io.Discard))
	u, err := users.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, u.IsAdmin)
	require.True(t, closed)

	require.NoError(t, run([]string{"-email", "ann@x.io", "-revoke"}, io.Discard))
	u, err = users.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	require.False(t, u.IsAdmin)

	err = run([]string{"-email", "ghost@x.io"}, io.Discard)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestRunErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)

	require.Error(t, run([]string{}, io.Discard))
	require.Error(t, run([]string{"-bogus"}, io.Discard))

	t.Setenv("DATABASE_URL", "postgres://x")
	newPgxPool = func(context.Context, string) (database.DB, error) { return nil, errors.New("db") }
	require.Error(t, run([]string{"-email", "a@x.io"}, io.Discard))

	readEnv = func(any) error { return errors.New("env") }
	require.Error(t, run([]string{"-email", "a@x.io"}, io.Discard))
}

func TestMainExit(t *testing.T) {
	t.Cleanup(restoreGlobals)
	code := 0
	exitFunc = func(c int) { code = c }
	readEnv = func(any) error { return errors.New("env") }
	main()
	require.Equal(t, 1, code)
}
