package helpers

import (
	"context"
	"encoding/json"
	"iter"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/iota-projects/modules/core/domain/aggregates/user"
	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
	"github.com/iota-uz/iota-projects/modules/projects/domain/entities/version"
	"github.com/iota-uz/iota-projects/modules/projects/permissions"
	"github.com/iota-uz/iota-projects/modules/projects/presentation/mappers"
	"github.com/iota-uz/iota-projects/modules/projects/presentation/viewmodels"
	"github.com/iota-uz/iota-projects/modules/projects/services"
	"github.com/iota-uz/iota-projects/pkg/composables"
)

const DefaultDescriptionLength = 255

// Authorizer answers project permission questions. *authz.Service satisfies it.
type Authorizer interface {
	Allowed(ctx context.Context, userID, projectID int64, permission string) (bool, error)
	AllowedAnywhere(ctx context.Context, userID int64, permission string) (bool, error)
}

// ViewContext carries what the helpers render relative to: the project the page is
// scoped to (nil outside a project) and the viewing user.
type ViewContext struct {
	Project    *project.Project
	User       user.User
	Authorizer Authorizer
}

// NewViewContext reads the current project and user from ctx. A missing user is
// treated as anonymous.
func NewViewContext(ctx context.Context, authorizer Authorizer) ViewContext {
	vc := ViewContext{
		User:       composables.UseUserOrAnonymous(ctx),
		Authorizer: authorizer,
	}
	if p, err := composables.UseProject(ctx); err == nil {
		vc.Project = &p
	}
	return vc
}

func (vc ViewContext) inProject(p project.Project) bool {
	return vc.Project != nil && vc.Project.ID() == p.ID()
}

// FormatVersionName returns the escaped display name of v. Versions of other
// projects than the current one are prefixed with their project name.
func (vc ViewContext) FormatVersionName(v version.Version) string {
	if vc.inProject(v.Project()) {
		return templ.EscapeString(v.Name())
	}
	return templ.EscapeString(v.Project().Name() + " - " + v.Name())
}

// CanViewProject reports whether the viewing user may see p. Public projects are
// visible to everyone.
func (vc ViewContext) CanViewProject(ctx context.Context, p project.Project) bool {
	if p.IsPublic() || vc.User.IsAdmin() {
		return true
	}
	if vc.Authorizer == nil {
		return false
	}
	allowed, err := vc.Authorizer.Allowed(ctx, vc.User.ID(), p.ID(), permissions.ViewProject)
	if err != nil {
		composables.UseLogger(ctx).WithFields(logrus.Fields{
			"component":  "projects.helpers",
			"project_id": p.ID(),
		}).WithError(err).Warn("project visibility check failed")
		return false
	}
	return allowed
}

// CanViewVersion reports whether the viewing user may open the version page.
func (vc ViewContext) CanViewVersion(ctx context.Context, v version.Version) bool {
	if vc.User.IsAdmin() {
		return true
	}
	if vc.Authorizer == nil {
		return false
	}
	allowed, err := vc.Authorizer.Allowed(ctx, vc.User.ID(), v.ProjectID(), permissions.ViewWorkPackages)
	if err == nil && !allowed && v.Sharing().IsSystemWide() {
		allowed, err = vc.Authorizer.AllowedAnywhere(ctx, vc.User.ID(), permissions.ViewWorkPackages)
	}
	if err != nil {
		composables.UseLogger(ctx).WithFields(logrus.Fields{
			"component":  "projects.helpers",
			"version_id": v.ID(),
		}).WithError(err).Warn("version visibility check failed")
		return false
	}
	return allowed
}

// LinkToVersion renders a link to the version page, or the plain version name when
// the user cannot view it. Anything that is not a persisted version renders as "".
func (vc ViewContext) LinkToVersion(ctx context.Context, x any) string {
	var v version.Version
	switch val := x.(type) {
	case version.Version:
		v = val
	case *version.Version:
		if val == nil {
			return ""
		}
		v = *val
	default:
		return ""
	}
	if v.ID() == 0 {
		return ""
	}

	name := vc.FormatVersionName(v)
	if !vc.CanViewVersion(ctx, v) {
		return name
	}
	return `<a href="` + VersionPath(v.ID()) + `">` + name + `</a>`
}

func VersionPath(id int64) string {
	return "/versions/" + strconv.FormatInt(id, 10)
}

// GroupVersionOptions appends selected to versions when missing, drops duplicate ids
// and groups the result by project name in order of first appearance.
func GroupVersionOptions(versions []version.Version, selected *version.Version) []viewmodels.VersionOptionGroup {
	all := versions
	if selected != nil {
		all = append(append(make([]version.Version, 0, len(versions)+1), versions...), *selected)
	}

	seen := make(map[int64]struct{}, len(all))
	index := map[string]int{}
	var groups []viewmodels.VersionOptionGroup
	for _, v := range all {
		if _, ok := seen[v.ID()]; ok {
			continue
		}
		seen[v.ID()] = struct{}{}

		label := v.Project().Name()
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, viewmodels.VersionOptionGroup{Label: label})
		}
		groups[i].Options = append(groups[i].Options, viewmodels.VersionOption{
			ID:       v.ID(),
			Name:     v.Name(),
			Selected: selected != nil && selected.ID() == v.ID(),
		})
	}
	return groups
}

// VersionOptionsForSelect renders option tags for a version select box. Versions of
// more than one project are wrapped in optgroups.
func VersionOptionsForSelect(versions []version.Version, selected *version.Version) string {
	groups := GroupVersionOptions(versions, selected)
	if len(groups) == 0 {
		return ""
	}
	if len(groups) == 1 {
		return renderOptions(groups[0].Options)
	}

	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, `<optgroup label="`+templ.EscapeString(g.Label)+`">`+renderOptions(g.Options)+`</optgroup>`)
	}
	return strings.Join(parts, "\n")
}

func renderOptions(options []viewmodels.VersionOption) string {
	lines := make([]string, 0, len(options))
	for _, o := range options {
		var b strings.Builder
		b.WriteString("<option ")
		if o.Selected {
			b.WriteString(`selected="selected" `)
		}
		b.WriteString(`value="`)
		b.WriteString(strconv.FormatInt(o.ID, 10))
		b.WriteString(`">`)
		b.WriteString(templ.EscapeString(o.Name))
		b.WriteString("</option>")
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// ShortProjectDescription shortens the description to length runes. The cut is moved
// forward to the end of the line it falls into and marked with "...". Descriptions
// that fit are returned unchanged apart from surrounding whitespace.
func ShortProjectDescription(p project.Project, length int) string {
	if length <= 0 {
		length = DefaultDescriptionLength
	}
	runes := []rune(p.Description())
	if len(runes) <= length {
		return strings.TrimSpace(p.Description())
	}

	cut := length
	for cut < len(runes) && runes[cut] != '\n' && runes[cut] != '\r' {
		cut++
	}
	if strings.TrimSpace(string(runes[cut:])) == "" {
		return strings.TrimSpace(p.Description())
	}
	return strings.TrimSpace(string(runes[:cut]) + "...")
}

// ProjectsWithLevel pairs projects with their level relative to the given order.
func ProjectsWithLevel(projects []project.Project) iter.Seq2[project.Project, int] {
	return services.WithLevel(projects)
}

// ProjectsLevelListJSON encodes leveled projects as the level list document.
func ProjectsLevelListJSON(items []services.Leveled[project.Project]) ([]byte, error) {
	return json.Marshal(mappers.LeveledProjectsToLevelList(items))
}
