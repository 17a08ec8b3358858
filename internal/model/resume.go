package model

import "time"

// Resume is an uploaded resume file owned by a user. ParsedData is written by
// the external analyzer and kept as an opaque JSON object.
type Resume struct {
	ID         string         `db:"id" json:"id"`
	UserID     string         `db:"user_id" json:"user"`
	Filename   string         `db:"filename" json:"filename"`
	Filepath   string         `db:"filepath" json:"filepath"`
	ParsedData map[string]any `db:"parsed_data" json:"parsed_data,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}
