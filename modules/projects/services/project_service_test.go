package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
)

func TestProjectService_LevelList(t *testing.T) {
	svc := NewProjectService(&stubProjectRepo{projects: projectTree()})

	got, err := svc.LevelList(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 2, 3, 1, 0}, levelsOf(got))
	require.Equal(t, "Root", got[0].Item.Name())
	require.Equal(t, "Other", got[6].Item.Name())
}

func TestProjectService_LevelListFiltered(t *testing.T) {
	svc := NewProjectService(&stubProjectRepo{projects: projectTree()})

	got, err := svc.LevelList(context.Background(), func(p project.Project) bool {
		return p.ID() != 2
	})
	require.NoError(t, err)
	require.Len(t, got, 6)
	// child1 is filtered out; its descendants still nest under root
	require.Equal(t, []int{0, 1, 1, 2, 1, 0}, levelsOf(got))
}

func TestProjectService_MemberLevelList(t *testing.T) {
	repo := &stubProjectRepo{
		projects: projectTree(),
		members:  map[int64][]int64{10: {2, 4, 5, 7}},
	}
	svc := NewProjectService(repo)

	got, err := svc.MemberLevelList(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 0}, levelsOf(got))

	got, err = svc.MemberLevelList(context.Background(), 99)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestProjectService_Errors(t *testing.T) {
	svc := NewProjectService(&stubProjectRepo{err: errBoom})

	_, err := svc.LevelList(context.Background())
	require.ErrorIs(t, err, errBoom)
	_, err = svc.MemberLevelList(context.Background(), 1)
	require.ErrorIs(t, err, errBoom)
}
