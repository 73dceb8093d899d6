package version

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
)

func TestNewSharing(t *testing.T) {
	t.Parallel()
	require.Equal(t, SharingSystem, NewSharing("system"))
	require.Equal(t, SharingTree, NewSharing(" TREE "))
	require.Equal(t, SharingNone, NewSharing(""))
	require.Equal(t, SharingNone, NewSharing("galaxy"))
}

func TestVersion_Defaults(t *testing.T) {
	t.Parallel()
	p := project.New(3, "p", "Project")
	v := New(9, p, " 1.0 ")

	require.Equal(t, "1.0", v.Name())
	require.Equal(t, "1.0", v.String())
	require.Equal(t, int64(3), v.ProjectID())
	require.Equal(t, SharingNone, v.Sharing())
	require.True(t, v.IsOpen())
	require.False(t, v.Sharing().IsSystemWide())
}
