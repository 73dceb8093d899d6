package composables

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAfterCommit_RunsImmediatelyWithoutOwner(t *testing.T) {
	t.Parallel()
	ran := false
	AfterCommit(context.Background(), func() { ran = true })
	require.True(t, ran)
}

func TestAfterCommit_DeferredUntilRun(t *testing.T) {
	t.Parallel()
	ctx, hooks := WithCommitHooks(context.Background())

	var order []int
	AfterCommit(ctx, func() { order = append(order, 1) })
	AfterCommit(ctx, func() { order = append(order, 2) })
	require.Empty(t, order)

	hooks.Run()
	require.Equal(t, []int{1, 2}, order)

	hooks.Run()
	require.Equal(t, []int{1, 2}, order)
}

func TestInTx_RequiresPool(t *testing.T) {
	t.Parallel()
	ran := false
	err := InTx(context.Background(), func(context.Context) error {
		ran = true
		return nil
	})
	require.ErrorIs(t, err, ErrNoPool)
	require.False(t, ran)
}
