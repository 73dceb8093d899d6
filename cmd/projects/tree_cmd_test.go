package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
	"github.com/iota-uz/iota-projects/modules/projects/services"
)

func TestRenderTree(t *testing.T) {
	items := []project.Project{
		project.New(1, "root", "Root", project.WithBounds(1, 6)),
		project.New(2, "child", "Child", project.WithBounds(2, 5)),
		project.New(3, "leaf", "Leaf", project.WithBounds(3, 4)),
		project.New(4, "other", "Other", project.WithBounds(7, 8)),
	}

	var buf bytes.Buffer
	require.NoError(t, renderTree(&buf, services.WithLevel(items)))
	require.Equal(t, "Root (root)\n  Child (child)\n    Leaf (leaf)\nOther (other)\n", buf.String())
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	require.ElementsMatch(t, []string{"migrate", "tree", "users", "members"}, names)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"users"})
	require.Error(t, root.Execute())
	require.Contains(t, buf.String(), `required flag(s) "owner" not set`)
}
