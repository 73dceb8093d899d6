package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/iota-uz/iota-projects/modules/projects/domain/entities/version"
	"github.com/iota-uz/iota-projects/modules/projects/infrastructure/persistence/models"
	"github.com/iota-uz/iota-projects/pkg/composables"
)

const (
	versionFindQuery = `
        SELECT
            v.id,
            v.project_id,
            v.name,
            v.description,
            v.sharing,
            v.status,
            v.effective_date,
            v.created_at,
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
        FROM versions v
        JOIN projects p ON p.id = v.project_id`

	versionByIDQuery = versionFindQuery + ` WHERE v.id = $1`

	versionByProjectQuery = versionFindQuery + ` WHERE v.project_id = $1 ORDER BY v.name, v.id`

	versionSharedQuery = versionFindQuery + ` WHERE v.sharing <> 'none' AND p.active ORDER BY p.lft, v.name, v.id`
)

type PgVersionRepository struct{}

func NewVersionRepository() version.Repository {
	return &PgVersionRepository{}
}

func (g *PgVersionRepository) GetByID(ctx context.Context, id int64) (version.Version, error) {
	versions, err := g.queryVersions(ctx, versionByIDQuery, id)
	if err != nil {
		return version.Version{}, errors.Wrap(err, fmt.Sprintf("failed to query version with id: %d", id))
	}
	if len(versions) == 0 {
		return version.Version{}, errors.Wrap(version.ErrNotFound, fmt.Sprintf("id: %d", id))
	}
	return versions[0], nil
}

func (g *PgVersionRepository) GetByProject(ctx context.Context, projectID int64) ([]version.Version, error) {
	versions, err := g.queryVersions(ctx, versionByProjectQuery, projectID)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query versions of project: %d", projectID))
	}
	return versions, nil
}

func (g *PgVersionRepository) GetShared(ctx context.Context) ([]version.Version, error) {
	versions, err := g.queryVersions(ctx, versionSharedQuery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query shared versions")
	}
	return versions, nil
}

func (g *PgVersionRepository) queryVersions(ctx context.Context, query string, args ...interface{}) ([]version.Version, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	entities := make([]version.Version, 0)
	for rows.Next() {
		var v models.Version
		var p models.Project
		if err := rows.Scan(
			&v.ID,
			&v.ProjectID,
			&v.Name,
			&v.Description,
			&v.Sharing,
			&v.Status,
			&v.EffectiveDate,
			&v.CreatedAt,
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
			return nil, errors.Wrap(err, "failed to scan version row")
		}
		entities = append(entities, ToDomainVersion(&v, ToDomainProject(&p)))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return entities, nil
}
