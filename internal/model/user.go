package model

import "time"

type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	ResumeIDs    []string  `db:"resume_ids" json:"resumes"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
