package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	coreservices "github.com/iota-uz/iota-projects/modules/core/services"
	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
	"github.com/iota-uz/iota-projects/modules/projects/domain/entities/member"
	"github.com/iota-uz/iota-projects/modules/projects/domain/entities/version"
	"github.com/iota-uz/iota-projects/modules/projects/permissions"
	"github.com/iota-uz/iota-projects/modules/projects/presentation/helpers"
	"github.com/iota-uz/iota-projects/modules/projects/presentation/mappers"
	"github.com/iota-uz/iota-projects/modules/projects/presentation/viewmodels"
	"github.com/iota-uz/iota-projects/modules/projects/services"
	"github.com/iota-uz/iota-projects/pkg/application"
	"github.com/iota-uz/iota-projects/pkg/composables"
	"github.com/iota-uz/iota-projects/pkg/httpapi"
	"github.com/iota-uz/iota-projects/pkg/intl"
	"github.com/iota-uz/iota-projects/pkg/middleware"
)

type ProjectsAPIControllerOptions struct {
	// Header carrying the id of the authenticated user.
	UserIDHeader      string
	DescriptionLength int
	Authorizer        helpers.Authorizer
}

// ProjectsAPIController serves the project pickers, version selects and links.
type ProjectsAPIController struct {
	app      application.Application
	basePath string
	opts     ProjectsAPIControllerOptions

	projectService *services.ProjectService
	versionService *services.VersionService
	memberService  *services.MemberService
	userService    *coreservices.UserService
}

func NewProjectsAPIController(app application.Application, opts ProjectsAPIControllerOptions) application.Controller {
	if opts.DescriptionLength <= 0 {
		opts.DescriptionLength = helpers.DefaultDescriptionLength
	}
	return &ProjectsAPIController{
		app:            app,
		basePath:       "/api",
		opts:           opts,
		projectService: app.Service(services.ProjectService{}).(*services.ProjectService),
		versionService: app.Service(services.VersionService{}).(*services.VersionService),
		memberService:  app.Service(services.MemberService{}).(*services.MemberService),
		userService:    app.Service(coreservices.UserService{}).(*coreservices.UserService),
	}
}

// Key implements application.Controller.
func (c *ProjectsAPIController) Key() string {
	return c.basePath + "/projects"
}

// Register registers routes.
func (c *ProjectsAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(
		middleware.ProvideUser(c.userService, c.opts.UserIDHeader),
		middleware.ProvideLocalizer(c.app),
	)

	router.HandleFunc("/projects/level-list", c.levelList).Methods(http.MethodGet)
	router.HandleFunc("/projects/mine/level-list", c.memberLevelList).Methods(http.MethodGet)
	router.HandleFunc("/versions/{id}/link", c.versionLink).Methods(http.MethodGet)

	projectRouter := router.PathPrefix("/projects/{id:[0-9]+}").Subrouter()
	projectRouter.Use(middleware.ProvideProject(c.projectService, "id"))
	projectRouter.HandleFunc("/versions/options", c.versionOptions).Methods(http.MethodGet)
	projectRouter.HandleFunc("/description", c.description).Methods(http.MethodGet)

	membersRouter := projectRouter.PathPrefix("/members").Subrouter()
	membersRouter.Use(c.requirePermission(permissions.ManageMembers), middleware.WithTransaction())
	membersRouter.HandleFunc("", c.addMember).Methods(http.MethodPost)
}

// requirePermission rejects requests of users lacking permission in the current project.
func (c *ProjectsAPIController) requirePermission(permission string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			p, err := composables.UseProject(ctx)
			if err != nil {
				c.writeError(w, r, http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found")
				return
			}
			u := composables.UseUserOrAnonymous(ctx)
			allowed := u.IsAdmin()
			if !allowed && u.IsLogged() && c.opts.Authorizer != nil {
				allowed, err = c.opts.Authorizer.Allowed(ctx, u.ID(), p.ID(), permission)
				if err != nil {
					c.logger(r).WithError(err).Error("permission check failed")
					c.writeError(w, r, http.StatusInternalServerError, "PROJECT_INTERNAL", "internal error")
					return
				}
			}
			if !allowed {
				c.writeError(w, r, http.StatusForbidden, "PERMISSION_DENIED", "permission denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (c *ProjectsAPIController) logger(r *http.Request) *logrus.Entry {
	return composables.UseLogger(r.Context()).WithField("component", "projects.api")
}

func (c *ProjectsAPIController) levelList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vc := helpers.NewViewContext(ctx, c.opts.Authorizer)
	items, err := c.projectService.LevelList(ctx, func(p project.Project) bool {
		return vc.CanViewProject(ctx, p)
	})
	if err != nil {
		c.logger(r).WithError(err).Error("failed to build project level list")
		c.writeError(w, r, http.StatusInternalServerError, "PROJECTS_LEVEL_LIST_ERROR", "failed to load projects")
		return
	}
	c.writeJSON(w, r, mappers.LeveledProjectsToLevelList(items))
}

func (c *ProjectsAPIController) memberLevelList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u := composables.UseUserOrAnonymous(ctx)
	if !u.IsLogged() {
		c.writeJSON(w, r, mappers.LeveledProjectsToLevelList(nil))
		return
	}
	items, err := c.projectService.MemberLevelList(ctx, u.ID())
	if err != nil {
		c.logger(r).WithError(err).Error("failed to build member level list")
		c.writeError(w, r, http.StatusInternalServerError, "PROJECTS_LEVEL_LIST_ERROR", "failed to load projects")
		return
	}
	c.writeJSON(w, r, mappers.LeveledProjectsToLevelList(items))
}

func (c *ProjectsAPIController) versionOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := composables.UseProject(ctx)
	if err != nil {
		c.writeError(w, r, http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found")
		return
	}
	if !helpers.NewViewContext(ctx, c.opts.Authorizer).CanViewProject(ctx, p) {
		c.writeError(w, r, http.StatusForbidden, "PROJECT_FORBIDDEN", "project not visible")
		return
	}

	versions, err := c.versionService.SharedWith(ctx, p.ID())
	if err != nil {
		c.logger(r).WithError(err).Error("failed to load shared versions")
		c.writeError(w, r, http.StatusInternalServerError, "VERSIONS_ERROR", "failed to load versions")
		return
	}

	var selected *version.Version
	if raw := strings.TrimSpace(r.URL.Query().Get("selected")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.writeError(w, r, http.StatusBadRequest, "VERSION_INVALID_ID", "invalid version id")
			return
		}
		v, err := c.versionService.GetByID(ctx, id)
		switch {
		case err == nil:
			selected = &v
		case errors.Is(err, version.ErrNotFound):
		default:
			c.logger(r).WithError(err).Error("failed to load selected version")
			c.writeError(w, r, http.StatusInternalServerError, "VERSIONS_ERROR", "failed to load versions")
			return
		}
	}

	templ.Handler(
		helpers.VersionOptions(versions, selected),
		templ.WithContentType("text/html; charset=utf-8"),
	).ServeHTTP(w, r)
}

func (c *ProjectsAPIController) description(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := composables.UseProject(ctx)
	if err != nil {
		c.writeError(w, r, http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found")
		return
	}
	if !helpers.NewViewContext(ctx, c.opts.Authorizer).CanViewProject(ctx, p) {
		c.writeError(w, r, http.StatusForbidden, "PROJECT_FORBIDDEN", "project not visible")
		return
	}
	c.writeJSON(w, r, &viewmodels.ProjectDescription{
		ID:          p.ID(),
		Description: helpers.ShortProjectDescription(p, c.opts.DescriptionLength),
	})
}

func (c *ProjectsAPIController) versionLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		c.writeError(w, r, http.StatusBadRequest, "VERSION_INVALID_ID", "invalid version id")
		return
	}
	v, err := c.versionService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, version.ErrNotFound) {
			c.writeError(w, r, http.StatusNotFound, "VERSION_NOT_FOUND", "version not found")
			return
		}
		c.logger(r).WithError(err).Error("failed to load versions")
		c.writeError(w, r, http.StatusInternalServerError, "VERSIONS_ERROR", "failed to load versions")
		return
	}

	// ?project= renders the name relative to that project.
	if raw := strings.TrimSpace(r.URL.Query().Get("project")); raw != "" {
		pid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.writeError(w, r, http.StatusBadRequest, "PROJECT_INVALID_ID", "invalid project id")
			return
		}
		p, err := c.projectService.GetByID(ctx, pid)
		switch {
		case err == nil:
			ctx = composables.WithProject(ctx, p)
		case errors.Is(err, project.ErrNotFound):
		default:
			c.logger(r).WithError(err).Error("failed to load project")
			c.writeError(w, r, http.StatusInternalServerError, "PROJECT_INTERNAL", "internal error")
			return
		}
	}

	vc := helpers.NewViewContext(ctx, c.opts.Authorizer)
	c.writeJSON(w, r, &viewmodels.VersionLink{ID: v.ID(), HTML: vc.LinkToVersion(ctx, v)})
}

func (c *ProjectsAPIController) addMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := composables.UseProject(ctx)
	if err != nil {
		c.writeError(w, r, http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found")
		return
	}
	var dto member.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		c.writeError(w, r, http.StatusBadRequest, "MEMBER_INVALID", "invalid membership")
		return
	}

	created, err := c.memberService.Add(ctx, p.ID(), dto.UserID, dto.Roles...)
	if err != nil {
		var verrs validator.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			c.writeError(w, r, http.StatusBadRequest, "MEMBER_INVALID", "invalid membership")
		case errors.Is(err, member.ErrUnknownRole):
			c.writeError(w, r, http.StatusBadRequest, "MEMBER_UNKNOWN_ROLE", "unknown role")
		case errors.Is(err, member.ErrAlreadyMember):
			c.writeError(w, r, http.StatusConflict, "MEMBER_EXISTS", "user is already a member")
		default:
			c.logger(r).WithError(err).Error("failed to add member")
			c.writeError(w, r, http.StatusInternalServerError, "PROJECT_INTERNAL", "internal error")
		}
		return
	}
	if err := httpapi.WriteJSON(w, http.StatusCreated, &viewmodels.Member{
		ProjectID: created.ProjectID,
		UserID:    created.UserID,
		Roles:     created.Roles,
	}); err != nil {
		c.logger(r).WithError(err).Error("failed to write response")
	}
}

func (c *ProjectsAPIController) writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	if err := httpapi.WriteJSON(w, http.StatusOK, payload); err != nil {
		c.logger(r).WithError(err).Error("failed to write response")
	}
}

// writeError localizes message under the "Errors.<code>" message id.
func (c *ProjectsAPIController) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	httpapi.WriteAPIError(w, r, status, code, intl.T(r.Context(), "Errors."+code, message))
}
