package store

import (
	"context"
	"encoding/json"
	"fmt"

	"eventhub/internal/database"
	"eventhub/internal/model"

	"github.com/jackc/pgx/v5"
)

const resumeColumns = `id, user_id, filename, filepath, parsed_data, created_at`

type ResumeStore struct {
	db database.DB
}

func NewResumeStore(db database.DB) *ResumeStore {
	return &ResumeStore{db: db}
}

func scanResume(row pgx.Row) (*model.Resume, error) {
	r := &model.Resume{}
	var parsed []byte
	if err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Filename,
		&r.Filepath,
		&parsed,
		&r.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(parsed) > 0 {
		if err := json.Unmarshal(parsed, &r.ParsedData); err != nil {
			return nil, fmt.Errorf("parsed_data: %w", err)
		}
	}
	return r, nil
}

func (s *ResumeStore) Create(ctx context.Context, r *model.Resume) error {
	var parsed []byte
	if r.ParsedData != nil {
		b, err := json.Marshal(r.ParsedData)
		if err != nil {
			return fmt.Errorf("CreateResume: parsed_data: %w", err)
		}
		parsed = b
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO resumes (`+resumeColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID,
		r.UserID,
		r.Filename,
		r.Filepath,
		parsed,
		r.CreatedAt,
	)
	if err != nil {
		return mapErr("CreateResume", err)
	}
	return nil
}

func (s *ResumeStore) ListByUser(ctx context.Context, userID string) ([]model.Resume, error) {
	return s.list(ctx, "ListResumesByUser",
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY created_at, id`, userID)
}

func (s *ResumeStore) ListByIDs(ctx context.Context, ids []string) ([]model.Resume, error) {
	if len(ids) == 0 {
		return []model.Resume{}, nil
	}
	return s.list(ctx, "ListResumesByIDs",
		`SELECT `+resumeColumns+` FROM resumes WHERE id = ANY($1) ORDER BY created_at, id`, ids)
}

func (s *ResumeStore) list(ctx context.Context, op, sql string, args ...any) ([]model.Resume, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	resumes := []model.Resume{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, mapErr(op, err)
		}
		resumes = append(resumes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(op, err)
	}
	return resumes, nil
}
