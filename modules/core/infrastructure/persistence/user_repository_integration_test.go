package persistence_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-projects/modules/core"
	"github.com/iota-uz/iota-projects/modules/core/domain/aggregates/user"
	"github.com/iota-uz/iota-projects/modules/core/infrastructure/persistence"
	"github.com/iota-uz/iota-projects/modules/projects"
	"github.com/iota-uz/iota-projects/pkg/itf"
)

func TestUserRepository(t *testing.T) {
	env := itf.Setup(t, core.NewModule(), projects.NewModule(nil))
	env.Exec(t, `INSERT INTO users (id, login, first_name, last_name, type, status, ui_language) VALUES
		(10, 'ann', 'Ann', 'Archer', 'admin', 'active', 'zh'),
		(11, 'bob', 'Bob', 'Baker', 'user', 'locked', NULL)`)
	env.Exec(t, `INSERT INTO projects (id, identifier, name, lft, rgt) VALUES
		(1, 'one', 'One', 1, 2), (2, 'two', 'Two', 3, 4)`)
	env.Exec(t, `INSERT INTO members (project_id, user_id, roles) VALUES
		(1, 11, '{member}'), (1, 10, '{member}'), (2, 10, '{reader}')`)
	repo := persistence.NewUserRepository()

	t.Run("GetByID", func(t *testing.T) {
		u, err := repo.GetByID(env.Ctx, 10)
		require.NoError(t, err)
		require.Equal(t, "ann", u.Login())
		require.Equal(t, "Ann Archer", u.Name())
		require.True(t, u.IsAdmin())
		require.Equal(t, user.UILanguage("zh"), u.UILanguage())

		system, err := repo.GetByID(env.Ctx, 1)
		require.NoError(t, err)
		require.False(t, system.IsSelectable())

		_, err = repo.GetByID(env.Ctx, 404)
		require.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("GetByProjectIDs", func(t *testing.T) {
		users, err := repo.GetByProjectIDs(env.Ctx, []int64{1, 2})
		require.NoError(t, err)
		ids := make([]int64, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID())
		}
		// One row per membership.
		require.Equal(t, []int64{10, 10, 11}, ids)

		users, err = repo.GetByProjectIDs(env.Ctx, nil)
		require.NoError(t, err)
		require.Empty(t, users)
	})
}
