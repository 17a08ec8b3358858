package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"eventhub/internal/common"
	"eventhub/internal/model"
)

// EventInput holds the fields of a new event. Image is optional.
type EventInput struct {
	Title       string
	Type        string
	Date        string
	Description string
	Image       string
	Link        string
}

// Events is the event catalog. Any admin may change any event; concurrent
// updates are last-write-wins.
type Events struct {
	events EventRepository
	users  UserRepository
	log    *slog.Logger
}

func NewEvents(events EventRepository, users UserRepository, log *slog.Logger) *Events {
	return &Events{events: events, users: users, log: log}
}

func (s *Events) List(ctx context.Context) ([]model.Event, error) {
	list, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Events.List: %w", err)
	}
	if list == nil {
		list = []model.Event{}
	}
	return list, nil
}

func (s *Events) Get(ctx context.Context, id string) (*model.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.Events.Get: %w", err)
	}
	return e, nil
}

func (s *Events) Create(ctx context.Context, in EventInput) (*model.Event, error) {
	const op = "service.Events.Create"

	now := timeNow().UTC()
	e := &model.Event{
		ID:          newID(),
		Title:       strings.TrimSpace(in.Title),
		Type:        strings.TrimSpace(in.Type),
		Date:        strings.TrimSpace(in.Date),
		Description: in.Description,
		Image:       strings.TrimSpace(in.Image),
		Link:        strings.TrimSpace(in.Link),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := checkRequired(e); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.InfoContext(ctx, "event created", slog.String("event_id", e.ID))
	return e, nil
}

// Update merges the non-nil fields of patch onto the stored event.
func (s *Events) Update(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	const op = "service.Events.Update"

	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	patch.Apply(e)
	if err := checkRequired(e); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	e.UpdatedAt = timeNow().UTC()
	if err := s.events.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

func (s *Events) Delete(ctx context.Context, id string) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.Events.Delete: %w", err)
	}
	s.log.InfoContext(ctx, "event deleted", slog.String("event_id", id))
	return nil
}

func checkRequired(e *model.Event) error {
	var missing []string
	for _, f := range []struct{ name, val string }{
		{"title", e.Title},
		{"type", e.Type},
		{"date", e.Date},
		{"desc", e.Description},
		{"link", e.Link},
	} {
		if strings.TrimSpace(f.val) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", common.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

const statsMonths = 8

// Stats aggregates the catalog for the admin dashboard.
func (s *Events) Stats(ctx context.Context, now time.Time) (*model.DashboardStats, error) {
	const op = "service.Events.Stats"

	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stats := &model.DashboardStats{
		TotalEvents: len(events),
		TotalUsers:  users,
		ByType:      countByType(events),
		ByMonth:     countByMonth(events, now),
	}
	stats.GrowthPercent = growth(stats.ByMonth)
	for _, e := range events {
		if d, ok := parseEventDate(e.Date, now.Location()); ok && d.After(now) {
			stats.Upcoming++
		}
	}
	if len(events) > 0 {
		latest := events[0]
		stats.Latest = &latest
	}
	return stats, nil
}

func countByType(events []model.Event) []model.TypeCount {
	counts := map[string]int{}
	for _, e := range events {
		t := e.Type
		if t == "" {
			t = "Other"
		}
		counts[t]++
	}
	out := make([]model.TypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, model.TypeCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// countByMonth buckets events into the last statsMonths calendar months,
// oldest first. The event date is used when present, creation time
// otherwise; unparseable dates are skipped.
func countByMonth(events []model.Event, now time.Time) []model.MonthCount {
	type bucket struct {
		year  int
		month time.Month
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	index := make(map[bucket]int, statsMonths)
	out := make([]model.MonthCount, statsMonths)
	for i := 0; i < statsMonths; i++ {
		d := first.AddDate(0, i-(statsMonths-1), 0)
		index[bucket{d.Year(), d.Month()}] = i
		out[i] = model.MonthCount{Month: d.Format("Jan")}
	}

	for _, e := range events {
		var when time.Time
		if e.Date != "" {
			d, ok := parseEventDate(e.Date, now.Location())
			if !ok {
				continue
			}
			when = d
		} else {
			when = e.CreatedAt.In(now.Location())
		}
		if i, ok := index[bucket{when.Year(), when.Month()}]; ok {
			out[i].Count++
		}
	}
	return out
}

func growth(months []model.MonthCount) float64 {
	if len(months) < 2 {
		return 0
	}
	last := months[len(months)-1].Count
	prev := months[len(months)-2].Count
	if prev == 0 {
		if last == 0 {
			return 0
		}
		return 100
	}
	// halves round toward +Inf, as the dashboard's Math.round does
	return math.Floor(float64(last-prev)/float64(prev)*100 + 0.5)
}

var eventDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
	"01/02/2006",
}

// parseEventDate accepts the date formats admins actually type.
func parseEventDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range eventDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
