package store

import (
	"context"

	"eventhub/internal/common"
	"eventhub/internal/database"
	"eventhub/internal/model"

	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, title, type, date, description, image, link, created_at, updated_at`

type EventStore struct {
	db database.DB
}

func NewEventStore(db database.DB) *EventStore {
	return &EventStore{db: db}
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	e := &model.Event{}
	if err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Type,
		&e.Date,
		&e.Description,
		&e.Image,
		&e.Link,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns every event, newest first.
func (s *EventStore) List(ctx context.Context) ([]model.Event, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, mapErr("ListEvents", err)
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, mapErr("ListEvents", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("ListEvents", err)
	}
	return events, nil
}

func (s *EventStore) GetByID(ctx context.Context, id string) (*model.Event, error) {
	e, err := scanEvent(s.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr("GetEventByID", err)
	}
	return e, nil
}

func (s *EventStore) Create(ctx context.Context, e *model.Event) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO events (`+eventColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID,
		e.Title,
		e.Type,
		e.Date,
		e.Description,
		e.Image,
		e.Link,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return mapErr("CreateEvent", err)
	}
	return nil
}

func (s *EventStore) Update(ctx context.Context, e *model.Event) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE events
		 SET title = $2, type = $3, date = $4, description = $5, image = $6, link = $7, updated_at = $8
		 WHERE id = $1`,
		e.ID,
		e.Title,
		e.Type,
		e.Date,
		e.Description,
		e.Image,
		e.Link,
		e.UpdatedAt,
	)
	if err != nil {
		return mapErr("UpdateEvent", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("UpdateEvent", common.ErrNotFound)
	}
	return nil
}

func (s *EventStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return mapErr("DeleteEvent", err)
	}
	if tag.RowsAffected() == 0 {
		return mapErr("DeleteEvent", common.ErrNotFound)
	}
	return nil
}
