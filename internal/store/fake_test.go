package store

import (
	"context"
	"testing"
	"time"

	"eventhub/internal/common"
	"eventhub/internal/model"

	"github.com/stretchr/testify/require"
)

func TestFakeUsers(t *testing.T) {
	ctx := context.Background()
	f := NewFakeUsers()

	require.NoError(t, f.Create(ctx, &model.User{ID: "u1", Email: "a@x.io"}))
	require.ErrorIs(t, f.Create(ctx, &model.User{ID: "u2", Email: "a@x.io"}), common.ErrConflict)

	n, err := f.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.NoError(t, f.AppendResume(ctx, "u1", "r1"))
	require.NoError(t, f.SetAdmin(ctx, "a@x.io", true))

	u, err := f.GetByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	require.True(t, u.IsAdmin)
	require.Equal(t, []string{"r1"}, u.ResumeIDs)

	// returned copies do not alias the stored slice
	u.ResumeIDs[0] = "changed"
	again, err := f.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"r1"}, again.ResumeIDs)

	_, err = f.GetByID(ctx, "ghost")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestFakeEvents_Order(t *testing.T) {
	ctx := context.Background()
	f := NewFakeEvents()
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, f.Create(ctx, &model.Event{ID: "old", CreatedAt: t0}))
	require.NoError(t, f.Create(ctx, &model.Event{ID: "new", CreatedAt: t0.Add(time.Minute)}))
	require.NoError(t, f.Create(ctx, &model.Event{ID: "tie", CreatedAt: t0.Add(time.Minute)}))

	list, err := f.List(ctx)
	require.NoError(t, err)
	ids := []string{}
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	require.Equal(t, []string{"tie", "new", "old"}, ids)

	require.NoError(t, f.Delete(ctx, "old"))
	require.ErrorIs(t, f.Delete(ctx, "old"), common.ErrNotFound)
	require.Equal(t, 2, f.Len())
}

func TestFakeResumes(t *testing.T) {
	ctx := context.Background()
	f := NewFakeResumes()
	require.NoError(t, f.Create(ctx, &model.Resume{ID: "r1", UserID: "u1"}))
	require.NoError(t, f.Create(ctx, &model.Resume{ID: "r2", UserID: "u2"}))

	mine, err := f.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	byIDs, err := f.ListByIDs(ctx, []string{"r2", "missing"})
	require.NoError(t, err)
	require.Len(t, byIDs, 1)
	require.Equal(t, "r2", byIDs[0].ID)
}
