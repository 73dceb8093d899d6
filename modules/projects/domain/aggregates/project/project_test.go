package project

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProject_IsDescendantOf(t *testing.T) {
	t.Parallel()
	root := New(1, "root", "Root", WithBounds(1, 10))
	child := New(2, "child", "Child", WithParentID(1), WithBounds(2, 7))
	grandchild := New(3, "grandchild", "Grandchild", WithParentID(2), WithBounds(3, 4))
	sibling := New(4, "sibling", "Sibling", WithParentID(1), WithBounds(8, 9))

	require.True(t, child.IsDescendantOf(root))
	require.True(t, grandchild.IsDescendantOf(root))
	require.True(t, grandchild.IsDescendantOf(child))
	require.False(t, root.IsDescendantOf(child))
	require.False(t, sibling.IsDescendantOf(child))
	require.False(t, root.IsDescendantOf(root))
	require.True(t, root.IsAncestorOf(grandchild))
	require.True(t, child.IsChildOf(root))
	require.False(t, grandchild.IsChildOf(root))
}

func TestProject_IsDescendantOf_Unsaved(t *testing.T) {
	t.Parallel()
	root := New(1, "root", "Root", WithBounds(1, 4))
	unsaved := New(0, "new", "New", WithParentID(1))

	require.False(t, unsaved.IsDescendantOf(root))
	require.False(t, root.IsDescendantOf(unsaved))
}

func TestProject_IsLeaf(t *testing.T) {
	t.Parallel()
	require.True(t, New(1, "a", "A", WithBounds(1, 2)).IsLeaf())
	require.False(t, New(1, "a", "A", WithBounds(1, 4)).IsLeaf())
	require.True(t, New(1, "a", "A").IsLeaf())
}

func TestProject_New_TrimsAndDefaults(t *testing.T) {
	t.Parallel()
	p := New(5, " ident ", " Name ")
	require.Equal(t, "ident", p.Identifier())
	require.Equal(t, "Name", p.Name())
	require.Equal(t, "Name", p.String())
	require.True(t, p.IsActive())
	require.Nil(t, p.ParentID())
}
