package version

import "context"

type Repository interface {
	GetByID(ctx context.Context, id int64) (Version, error)
	// GetByProject returns the versions owned by the project, ordered by name.
	GetByProject(ctx context.Context, projectID int64) ([]Version, error)
	// GetShared returns every version whose sharing is wider than its own project.
	GetShared(ctx context.Context) ([]Version, error)
}
