package services

import (
	"context"

	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
)

const (
	scopeAll    = "all"
	scopeMember = "member"
)

type ProjectService struct {
	repo project.Repository
}

func NewProjectService(repo project.Repository) *ProjectService {
	return &ProjectService{repo: repo}
}

func (s *ProjectService) GetByID(ctx context.Context, id int64) (project.Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProjectService) GetAll(ctx context.Context) ([]project.Project, error) {
	return s.repo.GetAll(ctx)
}

func (s *ProjectService) GetByMember(ctx context.Context, userID int64) ([]project.Project, error) {
	return s.repo.GetByMember(ctx, userID)
}

// LevelList returns the projects accepted by every filter paired with their level
// in nested set order. Levels are computed after filtering.
func (s *ProjectService) LevelList(ctx context.Context, filters ...func(project.Project) bool) ([]Leveled[project.Project], error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return levelList(scopeAll, filterProjects(items, filters)), nil
}

// MemberLevelList is LevelList restricted to the projects the user is a member of.
// Levels are relative to that subset, so a project whose parent is not in the
// subset starts at level 0.
func (s *ProjectService) MemberLevelList(ctx context.Context, userID int64) ([]Leveled[project.Project], error) {
	items, err := s.repo.GetByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	return levelList(scopeMember, items), nil
}

func filterProjects(items []project.Project, filters []func(project.Project) bool) []project.Project {
	if len(filters) == 0 {
		return items
	}
	out := make([]project.Project, 0, len(items))
	for _, p := range items {
		keep := true
		for _, f := range filters {
			if !f(p) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, p)
		}
	}
	return out
}

func levelList(scope string, items []project.Project) []Leveled[project.Project] {
	out := CollectLeveled(WithLevel(items))
	maxLevel := 0
	for _, l := range out {
		maxLevel = max(maxLevel, l.Level)
	}
	recordLevelList(scope, len(out), maxLevel)
	return out
}
