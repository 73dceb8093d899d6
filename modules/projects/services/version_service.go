package services

import (
	"cmp"
	"context"
	"slices"

	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
	"github.com/iota-uz/iota-projects/modules/projects/domain/entities/version"
)

type VersionService struct {
	repo        version.Repository
	projectRepo project.Repository
}

func NewVersionService(repo version.Repository, projectRepo project.Repository) *VersionService {
	return &VersionService{repo: repo, projectRepo: projectRepo}
}

func (s *VersionService) GetByID(ctx context.Context, id int64) (version.Version, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *VersionService) GetByProject(ctx context.Context, projectID int64) ([]version.Version, error) {
	return s.repo.GetByProject(ctx, projectID)
}

// SharedWith returns the versions usable by the project: its own versions followed
// by the versions other projects share with it, ordered by project then name.
func (s *VersionService) SharedWith(ctx context.Context, projectID int64) ([]version.Version, error) {
	target, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	own, err := s.repo.GetByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	shared, err := s.repo.GetShared(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.projectRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	rootOf := func(p project.Project) int64 {
		root := p
		for _, candidate := range all {
			if p.IsDescendantOf(candidate) && candidate.Lft() < root.Lft() {
				root = candidate
			}
		}
		return root.ID()
	}

	out := make([]version.Version, 0, len(own)+len(shared))
	out = append(out, own...)
	foreign := make([]version.Version, 0, len(shared))
	for _, v := range shared {
		if v.ProjectID() == projectID {
			continue
		}
		if IsSharedWith(v, target, rootOf) {
			foreign = append(foreign, v)
		}
	}
	slices.SortStableFunc(foreign, func(a, b version.Version) int {
		return cmp.Or(
			cmp.Compare(a.Project().Name(), b.Project().Name()),
			cmp.Compare(a.Name(), b.Name()),
			cmp.Compare(a.ID(), b.ID()),
		)
	})
	return append(out, foreign...), nil
}

// IsSharedWith reports whether v may be used by p. rootOf returns the id of the
// tree root a project belongs to.
func IsSharedWith(v version.Version, p project.Project, rootOf func(project.Project) int64) bool {
	owner := v.Project()
	if owner.ID() == p.ID() {
		return true
	}
	switch v.Sharing() {
	case version.SharingSystem:
		return true
	case version.SharingDescendants:
		return p.IsDescendantOf(owner)
	case version.SharingHierarchy:
		return p.IsDescendantOf(owner) || p.IsAncestorOf(owner)
	case version.SharingTree:
		return rootOf(owner) == rootOf(p)
	default:
		return false
	}
}
