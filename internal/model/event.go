package model

import "time"

// Event is a catalog entry (hackathon, internship, ...). Date is free text.
type Event struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Type        string    `db:"type" json:"type"`
	Date        string    `db:"date" json:"date"`
	Description string    `db:"description" json:"desc"`
	Image       string    `db:"image" json:"image,omitempty"`
	Link        string    `db:"link" json:"link"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// EventPatch carries a partial update. Nil fields are left untouched.
type EventPatch struct {
	Title       *string `json:"title"`
	Type        *string `json:"type"`
	Date        *string `json:"date"`
	Description *string `json:"desc"`
	Image       *string `json:"image"`
	Link        *string `json:"link"`
}

// Apply copies every non-nil field of p onto e.
func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Image != nil {
		e.Image = *p.Image
	}
	if p.Link != nil {
		e.Link = *p.Link
	}
}
