package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
	"github.com/iota-uz/iota-projects/pkg/composables"
	"github.com/iota-uz/iota-projects/pkg/httpapi"
)

// ProvideProject scopes the request to the project named by the route variable.
func ProvideProject(repo project.Repository, routeVar string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := mux.Vars(r)[routeVar]
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				httpapi.WriteAPIError(w, r, http.StatusBadRequest, "PROJECT_INVALID_ID", "invalid project id")
				return
			}
			p, err := repo.GetByID(r.Context(), id)
			if err != nil {
				if errors.Is(err, project.ErrNotFound) {
					httpapi.WriteAPIError(w, r, http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found")
					return
				}
				composables.UseLogger(r.Context()).WithError(err).Error("failed to load project")
				httpapi.WriteAPIError(w, r, http.StatusInternalServerError, "PROJECT_INTERNAL", "internal error")
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithProject(r.Context(), p)))
		})
	}
}
