package services

import (
	"iter"
)

// Descendant is implemented by entities that can answer whether they sit below
// another entity of the same kind in a hierarchy.
type Descendant[T any] interface {
	IsDescendantOf(other T) bool
}

// Leveled pairs an entity with its nesting level relative to the list it came from.
type Leveled[T any] struct {
	Item  T
	Level int
}

// WithLevel lazily pairs every item with its level. The level of an item is one more
// than the level of the nearest preceding item it descends from, or 0 when no
// preceding item is an ancestor. Input order is preserved and items are never modified.
//
// Levels are relative to the given order: the same items in a different order may
// yield different levels. The predicate is consulted on demand and never cached,
// and consumers that stop early skip the remaining lookups.
func WithLevel[T Descendant[T]](items []T) iter.Seq2[T, int] {
	return WithLevelFunc(items, func(item, candidate T) bool {
		return item.IsDescendantOf(candidate)
	})
}

// WithLevelFunc is WithLevel with an explicit descendant predicate.
func WithLevelFunc[T any](items []T, isDescendantOf func(item, candidate T) bool) iter.Seq2[T, int] {
	return func(yield func(T, int) bool) {
		levels := make([]int, 0, len(items))
		for i, item := range items {
			level := 0
			for j := i - 1; j >= 0; j-- {
				if isDescendantOf(item, items[j]) {
					level = levels[j] + 1
					break
				}
			}
			levels = append(levels, level)
			if !yield(item, level) {
				return
			}
		}
	}
}

// CollectLeveled materializes a leveled sequence in order.
func CollectLeveled[T any](seq iter.Seq2[T, int]) []Leveled[T] {
	out := make([]Leveled[T], 0)
	for item, level := range seq {
		out = append(out, Leveled[T]{Item: item, Level: level})
	}
	return out
}
