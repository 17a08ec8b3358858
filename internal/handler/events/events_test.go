package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventhub/internal/logging"
	"eventhub/internal/model"
	"eventhub/internal/service"
	"eventhub/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type testValidator struct{ v *validator.Validate }

func (tv testValidator) Validate(i any) error { return tv.v.Struct(i) }

func setup(t *testing.T) (*echo.Echo, *service.Events, *store.FakeEvents) {
	t.Helper()
	events := store.NewFakeEvents()
	svc := service.NewEvents(events, store.NewFakeUsers(), logging.Discard())
	e := echo.New()
	e.Validator = testValidator{v: validator.New()}
	e.GET("/api/events", ListEventsHandler(svc))
	e.GET("/api/events/stats", StatsHandler(svc))
	e.GET("/api/events/:id", GetEventHandler(svc))
	e.POST("/api/events", CreateEventHandler(svc))
	e.PUT("/api/events/:id", UpdateEventHandler(svc))
	e.DELETE("/api/events/:id", DeleteEventHandler(svc))
	return e, svc, events
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"title":"Hack Night","type":"hackathon","date":"2025-04-01","desc":"build","link":"https://x.io"}`

func TestCreateAndGet(t *testing.T) {
	e, _, _ := setup(t)

	rec := do(e, http.MethodPost, "/api/events", validBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "build", created.Description)

	rec = do(e, http.MethodGet, "/api/events/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"desc":"build"`)

	rec = do(e, http.MethodGet, "/api/events/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Event not found")
}

func TestCreateValidation(t *testing.T) {
	e, _, events := setup(t)

	rec := do(e, http.MethodPost, "/api/events", `{"title":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/events", `{"title":" ","type":"t","date":"d","desc":"d","link":"l"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "missing title")
	require.Zero(t, events.Len())
}

func TestListEmptyIsArray(t *testing.T) {
	e, _, _ := setup(t)
	rec := do(e, http.MethodGet, "/api/events", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestUpdatePartial(t *testing.T) {
	e, _, _ := setup(t)
	var created model.Event
	require.NoError(t, json.Unmarshal(do(e, http.MethodPost, "/api/events", validBody).Body.Bytes(), &created))

	rec := do(e, http.MethodPut, "/api/events/"+created.ID, `{"title":"Hack Day"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated model.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, "Hack Day", updated.Title)
	require.Equal(t, created.Type, updated.Type)
	require.Equal(t, created.Date, updated.Date)
	require.Equal(t, created.Description, updated.Description)
	require.Equal(t, created.Link, updated.Link)

	rec = do(e, http.MethodPut, "/api/events/missing", `{"title":"x"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodPut, "/api/events/"+created.ID, `{"title":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDelete(t *testing.T) {
	e, _, events := setup(t)
	var created model.Event
	require.NoError(t, json.Unmarshal(do(e, http.MethodPost, "/api/events", validBody).Body.Bytes(), &created))

	rec := do(e, http.MethodDelete, "/api/events/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, 1, events.Len())

	rec = do(e, http.MethodDelete, "/api/events/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Event removed"}`, rec.Body.String())
	require.Zero(t, events.Len())
}

func TestStats(t *testing.T) {
	orig := timeNow
	t.Cleanup(func() { timeNow = orig })
	timeNow = func() time.Time { return time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC) }

	e, _, _ := setup(t)
	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/events", validBody).Code)

	rec := do(e, http.MethodGet, "/api/events/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var stats model.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Equal(t, 1, stats.TotalEvents)
	require.Len(t, stats.ByMonth, 8)
	require.Equal(t, 1, stats.Upcoming)
	require.Equal(t, "Hack Night", stats.Latest.Title)
}
