package services

import (
	"context"

	"github.com/iota-uz/iota-projects/modules/core/domain/aggregates/user"
)

type UserService struct {
	repo user.Repository
}

func NewUserService(repo user.Repository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByProjectIDs returns the members of the projects. Users that belong to more
// than one of them are returned once, in the order they were first seen.
func (s *UserService) GetByProjectIDs(ctx context.Context, projectIDs []int64) ([]user.User, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	users, err := s.repo.GetByProjectIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(users))
	out := make([]user.User, 0, len(users))
	for _, u := range users {
		if _, ok := seen[u.ID()]; ok {
			continue
		}
		seen[u.ID()] = struct{}{}
		out = append(out, u)
	}
	return out, nil
}
