package models

import (
	"database/sql"
	"time"
)

type Project struct {
	ID          int64
	ParentID    sql.NullInt64
	Identifier  string
	Name        string
	Description string
	Lft         int
	Rgt         int
	Public      bool
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Version struct {
	ID            int64
	ProjectID     int64
	Name          string
	Description   string
	Sharing       string
	Status        string
	EffectiveDate sql.NullTime
	CreatedAt     time.Time
}

type Member struct {
	ID        int64
	ProjectID int64
	UserID    int64
	Roles     []string
	CreatedAt time.Time
}
