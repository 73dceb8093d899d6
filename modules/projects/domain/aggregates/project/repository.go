package project

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (Project, error)
	// GetAll returns every active project in nested set order.
	GetAll(ctx context.Context) ([]Project, error)
	// GetByMember returns the active projects the user is a member of, in nested set order.
	GetByMember(ctx context.Context, userID int64) ([]Project, error)
}
