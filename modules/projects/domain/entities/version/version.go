package version

import (
	"errors"
	"strings"
	"time"

	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
)

var ErrNotFound = errors.New("version not found")

// Sharing controls which projects besides the owning one may use a version.
type Sharing string

const (
	SharingNone        Sharing = "none"
	SharingDescendants Sharing = "descendants"
	SharingHierarchy   Sharing = "hierarchy"
	SharingTree        Sharing = "tree"
	SharingSystem      Sharing = "system"
)

func NewSharing(v string) Sharing {
	switch s := Sharing(strings.ToLower(strings.TrimSpace(v))); s {
	case SharingDescendants, SharingHierarchy, SharingTree, SharingSystem:
		return s
	default:
		return SharingNone
	}
}

func (s Sharing) IsSystemWide() bool { return s == SharingSystem }

type Status string

const (
	StatusOpen   Status = "open"
	StatusLocked Status = "locked"
	StatusClosed Status = "closed"
)

type Option func(v *Version)

func WithSharing(s Sharing) Option {
	return func(v *Version) { v.sharing = s }
}

func WithStatus(s Status) Option {
	return func(v *Version) { v.status = s }
}

func WithDescription(d string) Option {
	return func(v *Version) { v.description = d }
}

func WithEffectiveDate(d time.Time) Option {
	return func(v *Version) { v.effectiveDate = &d }
}

type Version struct {
	id            int64
	project       project.Project
	name          string
	description   string
	sharing       Sharing
	status        Status
	effectiveDate *time.Time
}

func New(id int64, p project.Project, name string, opts ...Option) Version {
	v := Version{
		id:      id,
		project: p,
		name:    strings.TrimSpace(name),
		sharing: SharingNone,
		status:  StatusOpen,
	}
	for _, opt := range opts {
		opt(&v)
	}
	return v
}

func (v Version) ID() int64                 { return v.id }
func (v Version) Project() project.Project  { return v.project }
func (v Version) ProjectID() int64          { return v.project.ID() }
func (v Version) Name() string              { return v.name }
func (v Version) Description() string       { return v.description }
func (v Version) Sharing() Sharing          { return v.sharing }
func (v Version) Status() Status            { return v.status }
func (v Version) EffectiveDate() *time.Time { return v.effectiveDate }
func (v Version) String() string            { return v.name }
func (v Version) IsOpen() bool              { return v.status == StatusOpen }
