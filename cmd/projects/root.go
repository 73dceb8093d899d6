package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/iota-uz/iota-projects/modules"
	"github.com/iota-uz/iota-projects/pkg/application"
	"github.com/iota-uz/iota-projects/pkg/authz"
	"github.com/iota-uz/iota-projects/pkg/configuration"
	"github.com/iota-uz/iota-projects/pkg/eventbus"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "projects",
		Short:         "Project hierarchy maintenance tools",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.AddCommand(
		newMigrateCmd(),
		newTreeCmd(),
		newUsersCmd(),
		newMembersCmd(),
	)
	return cmd
}

func connectDB(ctx context.Context, conf *configuration.Configuration) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	return pool, nil
}

// loadApp connects to the database and registers every module against it.
// The role catalog is loaded so that memberships are checked like in the server.
func loadApp(ctx context.Context) (application.Application, func(), error) {
	conf := configuration.Use()
	az, err := authz.NewService(authz.DefaultConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("authz: %w", err)
	}
	pool, err := connectDB(ctx, conf)
	if err != nil {
		return nil, nil, err
	}
	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(conf.Logger()),
		Logger:   conf.Logger(),
	})
	if err := modules.Load(app, modules.BuiltInModules(conf, az)...); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return app, pool.Close, nil
}
