package services

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
)

type stubNode struct {
	name      string
	ancestors []*stubNode
	calls     *int
}

func (n *stubNode) IsDescendantOf(other *stubNode) bool {
	if n.calls != nil {
		*n.calls++
	}
	return slices.Contains(n.ancestors, other)
}

type stubTree struct {
	root, child1, grandchild1, grandchild2, grandgrandchild1, child2 *stubNode
}

func newStubTree(calls *int) stubTree {
	var tr stubTree
	tr.root = &stubNode{name: "root", calls: calls}
	tr.child1 = &stubNode{name: "child1", ancestors: []*stubNode{tr.root}, calls: calls}
	tr.grandchild1 = &stubNode{name: "grandchild1", ancestors: []*stubNode{tr.root, tr.child1}, calls: calls}
	tr.grandchild2 = &stubNode{name: "grandchild2", ancestors: []*stubNode{tr.root, tr.child1}, calls: calls}
	tr.grandgrandchild1 = &stubNode{
		name:      "grandgrandchild1",
		ancestors: []*stubNode{tr.root, tr.child1, tr.grandchild2},
		calls:     calls,
	}
	tr.child2 = &stubNode{name: "child2", ancestors: []*stubNode{tr.root}, calls: calls}
	return tr
}

func levelsOf[T any](seq []Leveled[T]) []int {
	out := make([]int, len(seq))
	for i, l := range seq {
		out[i] = l.Level
	}
	return out
}

func TestWithLevel_HierarchyOrder(t *testing.T) {
	t.Parallel()
	tr := newStubTree(nil)
	items := []*stubNode{tr.root, tr.child1, tr.grandchild1, tr.grandchild2, tr.grandgrandchild1, tr.child2}

	got := CollectLeveled(WithLevel(items))
	require.Len(t, got, len(items))
	for i := range items {
		require.Same(t, items[i], got[i].Item)
	}
	require.Equal(t, []int{0, 1, 2, 2, 3, 1}, levelsOf(got))
}

func TestWithLevel_ArbitraryOrder(t *testing.T) {
	t.Parallel()
	tr := newStubTree(nil)
	items := []*stubNode{tr.grandchild1, tr.child1, tr.grandchild2, tr.grandgrandchild1, tr.child2, tr.root}

	got := CollectLeveled(WithLevel(items))
	require.Len(t, got, len(items))
	for i := range items {
		require.Same(t, items[i], got[i].Item)
	}
	require.Equal(t, []int{0, 0, 1, 2, 0, 0}, levelsOf(got))
}

func TestWithLevel_Empty(t *testing.T) {
	t.Parallel()
	got := CollectLeveled(WithLevel([]*stubNode{}))
	require.NotNil(t, got)
	require.Empty(t, got)

	require.Empty(t, CollectLeveled(WithLevel[*stubNode](nil)))
}

func TestWithLevel_SingleItem(t *testing.T) {
	t.Parallel()
	tr := newStubTree(nil)
	for _, n := range []*stubNode{tr.root, tr.grandgrandchild1} {
		got := CollectLeveled(WithLevel([]*stubNode{n}))
		require.Len(t, got, 1)
		require.Equal(t, 0, got[0].Level)
	}
}

func TestWithLevel_StopsEarly(t *testing.T) {
	t.Parallel()
	calls := 0
	tr := newStubTree(&calls)
	items := []*stubNode{tr.root, tr.child1, tr.grandchild1, tr.grandchild2, tr.grandgrandchild1, tr.child2}

	seq := WithLevel(items)
	require.Zero(t, calls)

	seen := 0
	for range seq {
		seen++
		if seen == 2 {
			break
		}
	}
	require.Equal(t, 2, seen)
	// child1 needs a single lookup against root; nothing after it is evaluated.
	require.Equal(t, 1, calls)
}

func TestWithLevel_Restartable(t *testing.T) {
	t.Parallel()
	tr := newStubTree(nil)
	seq := WithLevel([]*stubNode{tr.root, tr.child1, tr.child2})

	first := levelsOf(CollectLeveled(seq))
	second := levelsOf(CollectLeveled(seq))
	require.Equal(t, first, second)
	require.Equal(t, []int{0, 1, 1}, first)
}

func TestWithLevel_PredicatePanicPropagates(t *testing.T) {
	t.Parallel()
	items := []int{1, 2}
	seq := WithLevelFunc(items, func(item, candidate int) bool {
		panic("lookup failed")
	})
	require.PanicsWithValue(t, "lookup failed", func() {
		CollectLeveled(seq)
	})
}

func TestWithLevel_Projects(t *testing.T) {
	t.Parallel()
	parentID := int64(1)
	root := project.New(1, "root", "Root", project.WithBounds(1, 8))
	child := project.New(2, "child", "Child", project.WithParentID(parentID), project.WithBounds(2, 5))
	leaf := project.New(3, "leaf", "Leaf", project.WithParentID(2), project.WithBounds(3, 4))
	other := project.New(4, "other", "Other", project.WithParentID(parentID), project.WithBounds(6, 7))
	orphan := project.New(5, "orphan", "Orphan")

	got := CollectLeveled(WithLevel([]project.Project{root, child, leaf, other, orphan}))
	require.Equal(t, []int{0, 1, 2, 1, 0}, levelsOf(got))
}
