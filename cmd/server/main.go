package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	internalserver "github.com/iota-uz/iota-projects/internal/server"
	"github.com/iota-uz/iota-projects/modules"
	"github.com/iota-uz/iota-projects/modules/projects/services"
	"github.com/iota-uz/iota-projects/pkg/application"
	"github.com/iota-uz/iota-projects/pkg/authz"
	"github.com/iota-uz/iota-projects/pkg/composables"
	"github.com/iota-uz/iota-projects/pkg/configuration"
	"github.com/iota-uz/iota-projects/pkg/eventbus"
	"github.com/iota-uz/iota-projects/pkg/logging"
	"github.com/iota-uz/iota-projects/pkg/metrics"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(ctx, conf.OpenTelemetry.ServiceName, conf.OpenTelemetry.TempoURL)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(connectCtx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	az, err := authz.NewService(authz.DefaultConfig())
	if err != nil {
		log.Fatalf("failed to initialize authz: %v", err)
	}

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	if err := modules.Load(app, modules.BuiltInModules(conf, az)...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	memberService := app.Service(services.MemberService{}).(*services.MemberService)
	syncCtx := composables.WithLogger(composables.WithPool(ctx, pool), logrus.NewEntry(logger))
	if err := memberService.SyncPolicies(syncCtx, az); err != nil {
		log.Fatalf("failed to load memberships: %v", err)
	}

	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	serverInstance := internalserver.Default(&internalserver.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
	})
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(ctx, conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
