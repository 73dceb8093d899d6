package mappers

import (
	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
	"github.com/iota-uz/iota-projects/modules/projects/presentation/viewmodels"
	"github.com/iota-uz/iota-projects/modules/projects/services"
)

func ProjectToRef(p project.Project) *viewmodels.ProjectRef {
	return &viewmodels.ProjectRef{
		ID:         p.ID(),
		Name:       p.Name(),
		Identifier: p.Identifier(),
	}
}

// LeveledProjectsToLevelList keeps the order and levels of items. Parents are only
// referenced when they are part of items.
func LeveledProjectsToLevelList(items []services.Leveled[project.Project]) *viewmodels.ProjectLevelList {
	byID := make(map[int64]project.Project, len(items))
	hasChild := make(map[int64]bool, len(items))
	for _, it := range items {
		byID[it.Item.ID()] = it.Item
		if parentID := it.Item.ParentID(); parentID != nil {
			hasChild[*parentID] = true
		}
	}

	out := &viewmodels.ProjectLevelList{
		Projects: make([]viewmodels.ProjectLevelItem, 0, len(items)),
	}
	for _, it := range items {
		p := it.Item
		entry := viewmodels.ProjectLevelItem{
			ID:          p.ID(),
			Name:        p.Name(),
			Identifier:  p.Identifier(),
			HasChildren: !p.IsLeaf() || hasChild[p.ID()],
			Level:       it.Level,
		}
		if parentID := p.ParentID(); parentID != nil {
			if parent, ok := byID[*parentID]; ok {
				entry.Parent = ProjectToRef(parent)
			}
		}
		out.Projects = append(out.Projects, entry)
	}
	return out
}
