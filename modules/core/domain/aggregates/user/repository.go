package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (User, error)
	// GetByProjectIDs returns the members of the given projects. A user that is a
	// member of several of them may be returned more than once.
	GetByProjectIDs(ctx context.Context, projectIDs []int64) ([]User, error)
}
