package project

import (
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("project not found")

type Option func(p *Project)

func WithParentID(id int64) Option {
	return func(p *Project) { p.parentID = &id }
}

func WithDescription(description string) Option {
	return func(p *Project) { p.description = description }
}

// WithBounds sets the nested set interval of the project.
func WithBounds(lft, rgt int) Option {
	return func(p *Project) {
		p.lft = lft
		p.rgt = rgt
	}
}

func WithPublic(public bool) Option {
	return func(p *Project) { p.public = public }
}

func WithActive(active bool) Option {
	return func(p *Project) { p.active = active }
}

func WithTimestamps(createdAt, updatedAt time.Time) Option {
	return func(p *Project) {
		p.createdAt = createdAt
		p.updatedAt = updatedAt
	}
}

type Project struct {
	id          int64
	parentID    *int64
	identifier  string
	name        string
	description string
	lft         int
	rgt         int
	public      bool
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

func New(id int64, identifier, name string, opts ...Option) Project {
	p := Project{
		id:         id,
		identifier: strings.TrimSpace(identifier),
		name:       strings.TrimSpace(name),
		active:     true,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func (p Project) ID() int64            { return p.id }
func (p Project) ParentID() *int64     { return p.parentID }
func (p Project) Identifier() string   { return p.identifier }
func (p Project) Name() string         { return p.name }
func (p Project) Description() string  { return p.description }
func (p Project) Lft() int             { return p.lft }
func (p Project) Rgt() int             { return p.rgt }
func (p Project) IsPublic() bool       { return p.public }
func (p Project) IsActive() bool       { return p.active }
func (p Project) CreatedAt() time.Time { return p.createdAt }
func (p Project) UpdatedAt() time.Time { return p.updatedAt }
func (p Project) String() string       { return p.name }
func (p Project) IsZero() bool         { return p.id == 0 && p.identifier == "" }

func (p Project) hasBounds() bool {
	return p.lft > 0 && p.rgt > p.lft
}

// IsDescendantOf reports whether p lies strictly inside other's nested set interval.
// Projects without persisted bounds are never descendants of anything.
func (p Project) IsDescendantOf(other Project) bool {
	if !p.hasBounds() || !other.hasBounds() {
		return false
	}
	return other.lft < p.lft && p.rgt < other.rgt
}

func (p Project) IsAncestorOf(other Project) bool {
	return other.IsDescendantOf(p)
}

// IsLeaf reports whether the project has no children.
func (p Project) IsLeaf() bool {
	return !p.hasBounds() || p.rgt-p.lft == 1
}

func (p Project) IsChildOf(other Project) bool {
	return p.parentID != nil && *p.parentID == other.id
}
