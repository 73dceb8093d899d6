package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/iota-uz/iota-projects/modules/core/domain/aggregates/user"
	"github.com/iota-uz/iota-projects/modules/core/infrastructure/persistence/models"
	"github.com/iota-uz/iota-projects/pkg/composables"
)

const (
	userFindQuery = `
        SELECT
            u.id,
            u.login,
            u.first_name,
            u.last_name,
            u.type,
            u.status,
            u.ui_language,
            u.created_at,
            u.updated_at
        FROM users u`

	userByProjectsQuery = userFindQuery + `
        JOIN members m ON m.user_id = u.id
        WHERE m.project_id = ANY($1)
        ORDER BY u.id`
)

type PgUserRepository struct{}

func NewUserRepository() user.Repository {
	return &PgUserRepository{}
}

func (g *PgUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	users, err := g.queryUsers(ctx, userFindQuery+" WHERE u.id = $1", id)
	if err != nil {
		return user.User{}, errors.Wrap(err, fmt.Sprintf("failed to query user with id: %d", id))
	}
	if len(users) == 0 {
		return user.User{}, errors.Wrap(user.ErrNotFound, fmt.Sprintf("id: %d", id))
	}
	return users[0], nil
}

func (g *PgUserRepository) GetByProjectIDs(ctx context.Context, projectIDs []int64) ([]user.User, error) {
	if len(projectIDs) == 0 {
		return []user.User{}, nil
	}
	users, err := g.queryUsers(ctx, userByProjectsQuery, projectIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query project members")
	}
	return users, nil
}

func (g *PgUserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var entities []user.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID,
			&u.Login,
			&u.FirstName,
			&u.LastName,
			&u.Type,
			&u.Status,
			&u.UILanguage,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan user row")
		}
		entities = append(entities, ToDomainUser(&u))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return entities, nil
}
