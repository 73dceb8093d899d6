package modules_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-projects/modules"
	coreservices "github.com/iota-uz/iota-projects/modules/core/services"
	costservices "github.com/iota-uz/iota-projects/modules/costs/services"
	"github.com/iota-uz/iota-projects/modules/projects/services"
	"github.com/iota-uz/iota-projects/pkg/application"
	"github.com/iota-uz/iota-projects/pkg/authz"
	"github.com/iota-uz/iota-projects/pkg/configuration"
)

func TestLoadBuiltInModules(t *testing.T) {
	conf := &configuration.Configuration{
		UserIDHeader: "X-User-Id",
		Projects:     configuration.ProjectsOptions{DescriptionLength: 100},
	}
	az, err := authz.NewService(authz.Config{Mode: authz.ModeEnforce, Logger: logrus.New()})
	require.NoError(t, err)

	app := application.New(&application.ApplicationOptions{Logger: logrus.New()})
	require.NoError(t, modules.Load(app, modules.BuiltInModules(conf, az)...))

	keys := make([]string, 0, len(app.Controllers()))
	for _, c := range app.Controllers() {
		keys = append(keys, c.Key())
	}
	require.Equal(t, []string{"/api/cost-query", "/api/projects"}, keys)

	require.NotNil(t, app.Service(coreservices.UserService{}))
	require.NotNil(t, app.Service(services.ProjectService{}))
	require.NotNil(t, app.Service(services.VersionService{}))
	require.NotNil(t, app.Service(services.MemberService{}))
	require.NotNil(t, app.Service(costservices.UserFilterService{}))
	require.Equal(t, 1, app.EventPublisher().SubscribersCount())
}

func TestLoad_OrderMatters(t *testing.T) {
	conf := &configuration.Configuration{UserIDHeader: "X-User-Id"}
	app := application.New(&application.ApplicationOptions{Logger: logrus.New()})

	// costs resolves services of core and projects during registration.
	require.Panics(t, func() {
		_ = modules.Load(app, modules.BuiltInModules(conf, nil)[2])
	})
}
