package composables

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-projects/modules/core/domain/aggregates/user"
	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
)

func TestUseUser(t *testing.T) {
	ctx := context.Background()
	_, err := UseUser(ctx)
	require.ErrorIs(t, err, ErrNoUser)
	require.False(t, UseAuthenticated(ctx))
	require.Equal(t, user.TypeAnonymous, UseUserOrAnonymous(ctx).Type())

	ctx = WithUser(ctx, user.New(3, "Ada", "Lovelace"))
	u, err := UseUser(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), u.ID())
	require.True(t, UseAuthenticated(ctx))
}

func TestUseProject(t *testing.T) {
	ctx := context.Background()
	_, err := UseProject(ctx)
	require.ErrorIs(t, err, ErrNoProject)

	ctx = WithProject(ctx, project.New(1, "p", "P"))
	p, err := UseProject(ctx)
	require.NoError(t, err)
	require.Equal(t, "P", p.Name())
}

func TestUseTx_NoPool(t *testing.T) {
	_, err := UseTx(context.Background())
	require.ErrorIs(t, err, ErrNoPool)
}

func TestUseLogger_Fallback(t *testing.T) {
	require.NotNil(t, UseLogger(context.Background()))
}
