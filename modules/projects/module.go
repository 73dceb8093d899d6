package projects

import (
	"embed"

	"github.com/iota-uz/iota-projects/modules/projects/infrastructure/persistence"
	"github.com/iota-uz/iota-projects/modules/projects/presentation/controllers"
	"github.com/iota-uz/iota-projects/modules/projects/presentation/helpers"
	"github.com/iota-uz/iota-projects/modules/projects/services"
	"github.com/iota-uz/iota-projects/pkg/application"
	"github.com/iota-uz/iota-projects/pkg/authz"
)

//go:embed presentation/locales/*.json
var LocaleFiles embed.FS

//go:embed infrastructure/persistence/schema/*.sql
var MigrationFiles embed.FS

type ModuleOptions struct {
	UserIDHeader      string
	DescriptionLength int
	// Authz receives the roles of new members and rejects unknown role names.
	// Without it only public projects are visible to non-admins.
	Authz *authz.Service
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(m.Name(), &MigrationFiles)
	app.RegisterLocaleFiles(&LocaleFiles)

	var (
		authorizer helpers.Authorizer
		roles      services.RoleCatalog
	)
	if m.options.Authz != nil {
		authorizer = m.options.Authz
		roles = m.options.Authz
		app.EventPublisher().Subscribe(services.GrantOnMemberAdded(m.options.Authz, app.Logger()))
	}

	projectRepo := persistence.NewProjectRepository()
	app.RegisterServices(
		services.NewProjectService(projectRepo),
		services.NewVersionService(persistence.NewVersionRepository(), projectRepo),
		services.NewMemberService(persistence.NewMemberRepository(), app.EventPublisher(), roles),
	)
	app.RegisterControllers(
		controllers.NewProjectsAPIController(app, controllers.ProjectsAPIControllerOptions{
			UserIDHeader:      m.options.UserIDHeader,
			DescriptionLength: m.options.DescriptionLength,
			Authorizer:        authorizer,
		}),
	)
	return nil
}

func (m *Module) Name() string {
	return "projects"
}
