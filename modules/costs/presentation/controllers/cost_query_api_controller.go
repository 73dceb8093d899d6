package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	coreservices "github.com/iota-uz/iota-projects/modules/core/services"
	"github.com/iota-uz/iota-projects/modules/costs/services"
	"github.com/iota-uz/iota-projects/pkg/application"
	"github.com/iota-uz/iota-projects/pkg/composables"
	"github.com/iota-uz/iota-projects/pkg/httpapi"
	"github.com/iota-uz/iota-projects/pkg/intl"
	"github.com/iota-uz/iota-projects/pkg/middleware"
)

type FilterValuesResponse struct {
	Values []services.FilterValue `json:"values"`
}

// CostQueryAPIController serves the values of cost query filters.
type CostQueryAPIController struct {
	app          application.Application
	basePath     string
	userIDHeader string

	filterService *services.UserFilterService
	userService   *coreservices.UserService
}

func NewCostQueryAPIController(app application.Application, userIDHeader string) application.Controller {
	return &CostQueryAPIController{
		app:           app,
		basePath:      "/api/cost-query",
		userIDHeader:  userIDHeader,
		filterService: app.Service(services.UserFilterService{}).(*services.UserFilterService),
		userService:   app.Service(coreservices.UserService{}).(*coreservices.UserService),
	}
}

func (c *CostQueryAPIController) Key() string {
	return c.basePath
}

func (c *CostQueryAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(
		middleware.ProvideUser(c.userService, c.userIDHeader),
		middleware.ProvideLocalizer(c.app),
	)
	router.HandleFunc("/filters/user-id/values", c.userValues).Methods(http.MethodGet)
}

// userValues lists the users of the requester's projects. Admins may pass
// ?owner= to list the users of another account's projects.
func (c *CostQueryAPIController) userValues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requester := composables.UseUserOrAnonymous(ctx)

	ownerID := requester.ID()
	if raw := strings.TrimSpace(r.URL.Query().Get("owner")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.writeError(w, r, http.StatusBadRequest, "COST_QUERY_INVALID_OWNER", "invalid owner id")
			return
		}
		if id != requester.ID() && !requester.IsAdmin() {
			c.writeError(w, r, http.StatusForbidden, "COST_QUERY_FORBIDDEN", "not allowed to inspect other users")
			return
		}
		ownerID = id
	}

	values, err := c.filterService.AvailableValues(ctx, services.AvailableValuesRequest{
		OwnerID:   ownerID,
		Requester: requester,
	})
	if err != nil {
		c.writeError(w, r, http.StatusInternalServerError, "COST_QUERY_ERROR", "failed to load filter values")
		return
	}
	if values == nil {
		values = []services.FilterValue{}
	}
	if err := httpapi.WriteJSON(w, http.StatusOK, &FilterValuesResponse{Values: values}); err != nil {
		composables.UseLogger(ctx).WithError(err).Error("failed to write response")
	}
}

func (c *CostQueryAPIController) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	httpapi.WriteAPIError(w, r, status, code, intl.T(r.Context(), "Errors."+code, message))
}
