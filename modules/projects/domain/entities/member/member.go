package member

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrAlreadyMember = errors.New("user is already a member of the project")
	ErrUnknownRole   = errors.New("unknown role")
)

// Member binds a user to a project with a set of role names.
type Member struct {
	ProjectID int64
	UserID    int64
	Roles     []string
	CreatedAt time.Time
}

type CreateDTO struct {
	ProjectID int64    `json:"project_id" validate:"required,gt=0"`
	UserID    int64    `json:"user_id" validate:"required,gt=0"`
	Roles     []string `json:"roles" validate:"required,min=1,dive,required"`
}

func (d *CreateDTO) Normalize() {
	roles := make([]string, 0, len(d.Roles))
	seen := make(map[string]struct{}, len(d.Roles))
	for _, r := range d.Roles {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		roles = append(roles, r)
	}
	d.Roles = roles
}

func (d *CreateDTO) ToEntity() Member {
	return Member{
		ProjectID: d.ProjectID,
		UserID:    d.UserID,
		Roles:     d.Roles,
	}
}

type Repository interface {
	// GetAll is used to seed authorization policies at startup.
	GetAll(ctx context.Context) ([]Member, error)
	Create(ctx context.Context, m Member) (Member, error)
}

// AddedEvent is published after a membership was persisted.
type AddedEvent struct {
	Member Member
}
