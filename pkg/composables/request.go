package composables

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/iota-projects/modules/core/domain/aggregates/user"
	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
	"github.com/iota-uz/iota-projects/pkg/constants"
)

var (
	ErrNoUser    = errors.New("user not found in context")
	ErrNoProject = errors.New("project not found in context")
)

type Params struct {
	IP            string
	UserAgent     string
	RequestID     string
	Authenticated bool
	Request       *http.Request
	Writer        http.ResponseWriter
}

// UseParams returns the request parameters from the context.
// If the parameters are not found, the second return value will be false.
func UseParams(ctx context.Context) (*Params, bool) {
	params, ok := ctx.Value(constants.ParamsKey).(*Params)
	return params, ok
}

// WithParams returns a new context with the request parameters.
func WithParams(ctx context.Context, params *Params) context.Context {
	return context.WithValue(ctx, constants.ParamsKey, params)
}

// UseRequestID returns the request id assigned by the logging middleware, if any.
func UseRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(constants.RequestIDKey).(string); ok {
		return id
	}
	return ""
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constants.RequestIDKey, id)
}

// UseLogger returns the request-scoped logger, or a standard logger entry when none is bound.
func UseLogger(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry); ok && logger != nil {
		return logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, constants.UserKey, u)
}

// UseUser returns the user bound to the request.
func UseUser(ctx context.Context) (user.User, error) {
	u, ok := ctx.Value(constants.UserKey).(user.User)
	if !ok {
		return user.User{}, ErrNoUser
	}
	return u, nil
}

// UseUserOrAnonymous returns the request user, falling back to the anonymous user.
func UseUserOrAnonymous(ctx context.Context) user.User {
	u, err := UseUser(ctx)
	if err != nil {
		return user.Anonymous()
	}
	return u
}

// UseAuthenticated reports whether the request user is a logged-in account.
func UseAuthenticated(ctx context.Context) bool {
	u, err := UseUser(ctx)
	return err == nil && u.IsLogged()
}

// WithProject scopes the request to a project; view helpers render relative to it.
func WithProject(ctx context.Context, p project.Project) context.Context {
	return context.WithValue(ctx, constants.ProjectKey, p)
}

func UseProject(ctx context.Context) (project.Project, error) {
	p, ok := ctx.Value(constants.ProjectKey).(project.Project)
	if !ok {
		return project.Project{}, ErrNoProject
	}
	return p, nil
}
