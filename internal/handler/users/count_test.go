package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventhub/internal/logging"
	"eventhub/internal/model"
	"eventhub/internal/service"
	"eventhub/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestCountUsersHandler(t *testing.T) {
	tokens, err := service.NewTokens("secret", time.Hour)
	require.NoError(t, err)
	users := store.NewFakeUsers()
	accounts := service.NewAccounts(users, store.NewFakeResumes(), tokens, logging.Discard())

	e := echo.New()
	e.GET("/api/users/count", CountUsersHandler(accounts))

	get := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/count", nil))
		return rec
	}

	rec := get()
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"totalUsers":0}`, rec.Body.String())

	require.NoError(t, users.Create(context.Background(), &model.User{ID: "u1", Email: "a@x.io"}))
	require.NoError(t, users.Create(context.Background(), &model.User{ID: "u2", Email: "b@x.io"}))
	rec = get()
	require.JSONEq(t, `{"totalUsers":2}`, rec.Body.String())
}
