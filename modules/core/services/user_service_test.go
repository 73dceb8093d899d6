package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-projects/modules/core/domain/aggregates/user"
	"github.com/iota-uz/iota-projects/modules/core/services"
)

type stubUserRepo struct {
	users   map[int64]user.User
	members map[int64][]int64
	err     error
	calls   int
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrNotFound
}

func (r *stubUserRepo) GetByProjectIDs(_ context.Context, projectIDs []int64) ([]user.User, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	var out []user.User
	for _, pid := range projectIDs {
		for _, uid := range r.members[pid] {
			out = append(out, r.users[uid])
		}
	}
	return out, nil
}

func TestUserService_GetByProjectIDs(t *testing.T) {
	repo := &stubUserRepo{
		users: map[int64]user.User{
			1: user.New(1, "Ann", "A"),
			2: user.New(2, "Bob", "B"),
			3: user.New(3, "Cid", "C"),
		},
		members: map[int64][]int64{10: {2, 1}, 11: {1, 3}},
	}
	svc := services.NewUserService(repo)

	got, err := svc.GetByProjectIDs(context.Background(), []int64{10, 11})
	require.NoError(t, err)
	ids := make([]int64, 0, len(got))
	for _, u := range got {
		ids = append(ids, u.ID())
	}
	require.Equal(t, []int64{2, 1, 3}, ids)
}

func TestUserService_GetByProjectIDs_Empty(t *testing.T) {
	repo := &stubUserRepo{}
	got, err := services.NewUserService(repo).GetByProjectIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, got)
	require.Zero(t, repo.calls)
}

func TestUserService_GetByProjectIDs_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := services.NewUserService(&stubUserRepo{err: boom}).GetByProjectIDs(context.Background(), []int64{1})
	require.ErrorIs(t, err, boom)
}

func TestUserService_GetByID(t *testing.T) {
	svc := services.NewUserService(&stubUserRepo{users: map[int64]user.User{5: user.New(5, "E", "F")}})
	u, err := svc.GetByID(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, "E F", u.Name())

	_, err = svc.GetByID(context.Background(), 6)
	require.ErrorIs(t, err, user.ErrNotFound)
}
