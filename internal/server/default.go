package server

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/iota-projects/pkg/application"
	"github.com/iota-uz/iota-projects/pkg/configuration"
	"github.com/iota-uz/iota-projects/pkg/httpapi"
	"github.com/iota-uz/iota-projects/pkg/middleware"
	"github.com/iota-uz/iota-projects/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

// Default registers the global middleware stack and builds the HTTP server.
func Default(options *DefaultOptions) *server.HTTPServer {
	app := options.Application

	loggerOpts := middleware.DefaultLoggerOptions()
	if options.Configuration != nil {
		loggerOpts.RequestIDHeader = options.Configuration.RequestIDHeader
		loggerOpts.RealIPHeader = options.Configuration.RealIPHeader
	}
	app.RegisterMiddleware(
		middleware.WithLogger(options.Logger, loggerOpts),
		middleware.ProvidePool(options.Pool),
	)

	return server.NewHTTPServer(app, NotFound(), MethodNotAllowed())
}

func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpapi.WriteAPIError(w, r, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
}

func MethodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpapi.WriteAPIError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})
}

