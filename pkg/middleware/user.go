package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/iota-projects/modules/core/domain/aggregates/user"
	"github.com/iota-uz/iota-projects/pkg/composables"
)

// ProvideUser resolves the current user from the header set by the authenticating
// proxy. Requests without a usable header, or naming an unknown user, run as the
// anonymous user.
func ProvideUser(repo user.Repository, header string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			current := user.Anonymous()

			if raw := strings.TrimSpace(r.Header.Get(header)); raw != "" {
				id, err := strconv.ParseInt(raw, 10, 64)
				switch {
				case err != nil || id <= 0:
					composables.UseLogger(ctx).WithField("header", header).Warn("ignoring malformed user id header")
				default:
					u, err := repo.GetByID(ctx, id)
					switch {
					case err == nil:
						current = u
					case errors.Is(err, user.ErrNotFound):
						composables.UseLogger(ctx).WithField("user-id", id).Warn("unknown user in header")
					default:
						composables.UseLogger(ctx).WithError(err).Error("failed to load current user")
						http.Error(w, "failed to load current user", http.StatusInternalServerError)
						return
					}
				}
			}

			ctx = composables.WithUser(ctx, current)
			if params, ok := composables.UseParams(ctx); ok {
				params.Authenticated = current.IsLogged()
			}
			logger := composables.UseLogger(ctx).WithFields(logrus.Fields{"user-id": current.ID()})
			ctx = composables.WithLogger(ctx, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
