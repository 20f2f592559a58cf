package models

import (
	"time"

	"github.com/google/uuid"
)

// Lecture is a session students check into with a six digit code.
type Lecture struct {
	ID        uuid.UUID  `json:"id"`
	Topic     string     `json:"topic"`
	Date      string     `json:"date"`
	Code      string     `json:"-"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// Overview is what the lecturer sees on the admin page.
type Overview struct {
	Lecture *Lecture
	Total   int
}
