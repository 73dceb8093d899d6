package models

import (
	"database/sql"
	"time"
)

type User struct {
	ID         int64
	Login      string
	FirstName  string
	LastName   string
	Type       string
	Status     string
	UILanguage sql.NullString
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
