package core

import (
	"embed"

	"github.com/iota-uz/iota-projects/modules/core/infrastructure/persistence"
	"github.com/iota-uz/iota-projects/modules/core/services"
	"github.com/iota-uz/iota-projects/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(m.Name(), &MigrationFiles)
	app.RegisterServices(
		services.NewUserService(persistence.NewUserRepository()),
	)
	return nil
}

func (m *Module) Name() string {
	return "core"
}
