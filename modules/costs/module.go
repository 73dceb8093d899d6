package costs

import (
	"embed"

	coreservices "github.com/iota-uz/iota-projects/modules/core/services"
	"github.com/iota-uz/iota-projects/modules/costs/presentation/controllers"
	"github.com/iota-uz/iota-projects/modules/costs/services"
	projectservices "github.com/iota-uz/iota-projects/modules/projects/services"
	"github.com/iota-uz/iota-projects/pkg/application"
)

//go:embed presentation/locales/*.json
var LocaleFiles embed.FS

type ModuleOptions struct {
	UserIDHeader string
}

// NewModule builds the costs module. It reads projects and users through the
// services of the core and projects modules, which must be registered first.
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
	app.RegisterLocaleFiles(&LocaleFiles)
	app.RegisterServices(
		services.NewUserFilterService(
			app.Service(projectservices.ProjectService{}).(*projectservices.ProjectService),
			app.Service(coreservices.UserService{}).(*coreservices.UserService),
		),
	)
	app.RegisterControllers(
		controllers.NewCostQueryAPIController(app, m.options.UserIDHeader),
	)
	return nil
}

func (m *Module) Name() string {
	return "costs"
}
