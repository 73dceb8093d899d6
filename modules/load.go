package modules

import (
	"github.com/iota-uz/iota-projects/modules/core"
	"github.com/iota-uz/iota-projects/modules/costs"
	"github.com/iota-uz/iota-projects/modules/projects"
	"github.com/iota-uz/iota-projects/pkg/application"
	"github.com/iota-uz/iota-projects/pkg/authz"
	"github.com/iota-uz/iota-projects/pkg/configuration"
)

// BuiltInModules returns the modules of the service in registration order. Later
// modules resolve the services of earlier ones.
func BuiltInModules(conf *configuration.Configuration, az *authz.Service) []application.Module {
	return []application.Module{
		core.NewModule(),
		projects.NewModule(&projects.ModuleOptions{
			UserIDHeader:      conf.UserIDHeader,
			DescriptionLength: conf.Projects.DescriptionLength,
			Authz:             az,
		}),
		costs.NewModule(&costs.ModuleOptions{
			UserIDHeader: conf.UserIDHeader,
		}),
	}
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
