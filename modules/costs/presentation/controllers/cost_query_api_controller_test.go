package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-projects/modules/core/domain/aggregates/user"
	coreservices "github.com/iota-uz/iota-projects/modules/core/services"
	"github.com/iota-uz/iota-projects/modules/costs"
	"github.com/iota-uz/iota-projects/modules/costs/presentation/controllers"
	"github.com/iota-uz/iota-projects/modules/costs/services"
	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
	projectservices "github.com/iota-uz/iota-projects/modules/projects/services"
	"github.com/iota-uz/iota-projects/pkg/application"
)

type stubUserRepo struct {
	users     map[int64]user.User
	byProject map[int64][]int64
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrNotFound
}

func (r *stubUserRepo) GetByProjectIDs(_ context.Context, ids []int64) ([]user.User, error) {
	var out []user.User
	for _, pid := range ids {
		for _, uid := range r.byProject[pid] {
			out = append(out, r.users[uid])
		}
	}
	return out, nil
}

type stubProjectRepo struct {
	members map[int64][]int64
}

func (r *stubProjectRepo) GetByID(context.Context, int64) (project.Project, error) {
	return project.Project{}, project.ErrNotFound
}

func (r *stubProjectRepo) GetAll(context.Context) ([]project.Project, error) { return nil, nil }

func (r *stubProjectRepo) GetByMember(_ context.Context, userID int64) ([]project.Project, error) {
	var out []project.Project
	for _, id := range r.members[userID] {
		out = append(out, project.New(id, "p"+strconv.FormatInt(id, 10), "P"))
	}
	return out, nil
}

func newRouter(t *testing.T) *mux.Router {
	t.Helper()
	users := &stubUserRepo{
		users: map[int64]user.User{
			1: user.New(1, "Olga", "Owner"),
			2: user.New(2, "Bob", "Builder"),
			3: user.New(3, "", "System", user.WithType(user.TypeSystem)),
			9: user.New(9, "Ad", "Min", user.WithType(user.TypeAdmin)),
		},
		byProject: map[int64][]int64{10: {1, 2, 3}},
	}
	projects := &stubProjectRepo{members: map[int64][]int64{1: {10}}}

	app := application.New(&application.ApplicationOptions{Logger: logrus.New()})
	app.RegisterServices(
		coreservices.NewUserService(users),
		projectservices.NewProjectService(projects),
	)
	require.NoError(t, costs.NewModule(&costs.ModuleOptions{UserIDHeader: "X-User-Id"}).Register(app))

	r := mux.NewRouter()
	for _, c := range app.Controllers() {
		c.Register(r)
	}
	return r
}

func userValues(t *testing.T, r http.Handler, query string, userID int64) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/cost-query/filters/user-id/values"+query, nil)
	if userID != 0 {
		req.Header.Set("X-User-Id", strconv.FormatInt(userID, 10))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeValues(t *testing.T, rec *httptest.ResponseRecorder) []services.FilterValue {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp controllers.FilterValuesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Values
}

func TestUserValues(t *testing.T) {
	r := newRouter(t)

	require.Equal(t, []services.FilterValue{
		{Label: "<< me >>", Value: "1"},
		{Label: "Bob Builder", Value: "2"},
		{Label: "Olga Owner", Value: "1"},
	}, decodeValues(t, userValues(t, r, "", 1)))

	require.Equal(t, "<< 我 >>", decodeValues(t, userValues(t, r, "?lang=zh", 1))[0].Label)
}

func TestUserValues_Anonymous(t *testing.T) {
	r := newRouter(t)

	rec := userValues(t, r, "", 0)
	require.JSONEq(t, `{"values":[]}`, rec.Body.String())
}

func TestUserValues_Owner(t *testing.T) {
	r := newRouter(t)

	values := decodeValues(t, userValues(t, r, "?owner=1", 9))
	require.Equal(t, []services.FilterValue{
		{Label: "<< me >>", Value: "9"},
		{Label: "Bob Builder", Value: "2"},
		{Label: "Olga Owner", Value: "1"},
	}, values)

	require.Equal(t, http.StatusForbidden, userValues(t, r, "?owner=1", 2).Code)
	require.Equal(t, http.StatusOK, userValues(t, r, "?owner=2", 2).Code)
	require.Equal(t, http.StatusBadRequest, userValues(t, r, "?owner=x", 2).Code)
}
