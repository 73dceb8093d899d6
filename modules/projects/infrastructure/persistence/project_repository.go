package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
	"github.com/iota-uz/iota-projects/modules/projects/infrastructure/persistence/models"
	"github.com/iota-uz/iota-projects/pkg/composables"
)

const (
	projectFindQuery = `
        SELECT
            p.id,
            p.parent_id,
            p.identifier,
            p.name,
            p.description,
            p.lft,
            p.rgt,
            p.public,
            p.active,
            p.created_at,
            p.updated_at
        FROM projects p`

	projectByIDQuery = projectFindQuery + ` WHERE p.id = $1`

	projectAllQuery = projectFindQuery + ` WHERE p.active ORDER BY p.lft`

	projectByMemberQuery = projectFindQuery + `
        WHERE p.active AND EXISTS (
            SELECT 1 FROM members m WHERE m.project_id = p.id AND m.user_id = $1
        )
        ORDER BY p.lft`
)

type PgProjectRepository struct{}

func NewProjectRepository() project.Repository {
	return &PgProjectRepository{}
}

func (g *PgProjectRepository) GetByID(ctx context.Context, id int64) (project.Project, error) {
	projects, err := g.queryProjects(ctx, projectByIDQuery, id)
	if err != nil {
		return project.Project{}, errors.Wrap(err, fmt.Sprintf("failed to query project with id: %d", id))
	}
	if len(projects) == 0 {
		return project.Project{}, errors.Wrap(project.ErrNotFound, fmt.Sprintf("id: %d", id))
	}
	return projects[0], nil
}

func (g *PgProjectRepository) GetAll(ctx context.Context) ([]project.Project, error) {
	projects, err := g.queryProjects(ctx, projectAllQuery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query projects")
	}
	return projects, nil
}

func (g *PgProjectRepository) GetByMember(ctx context.Context, userID int64) ([]project.Project, error) {
	projects, err := g.queryProjects(ctx, projectByMemberQuery, userID)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query projects of user: %d", userID))
	}
	return projects, nil
}

func (g *PgProjectRepository) queryProjects(ctx context.Context, query string, args ...interface{}) ([]project.Project, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	entities := make([]project.Project, 0)
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(
			&p.ID,
			&p.ParentID,
			&p.Identifier,
			&p.Name,
			&p.Description,
			&p.Lft,
			&p.Rgt,
			&p.Public,
			&p.Active,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan project row")
		}
		entities = append(entities, ToDomainProject(&p))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return entities, nil
}
