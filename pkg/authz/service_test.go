package authz

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, mode Mode) *Service {
	t.Helper()
	svc, err := NewService(Config{Mode: mode})
	require.NoError(t, err)
	require.NoError(t, svc.Grant(5, 1, "member"))
	require.NoError(t, svc.Grant(6, 2, "reader"))
	return svc
}

func TestServiceAuthorize(t *testing.T) {
	svc := newTestService(t, ModeEnforce)
	require.NoError(t, svc.Authorize(context.Background(), NewRequest(5, 1, "view_work_packages")))
}

func TestServiceAuthorizeDenied(t *testing.T) {
	svc := newTestService(t, ModeEnforce)

	err := svc.Authorize(context.Background(), NewRequest(5, 2, "view_work_packages"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrForbidden))

	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	require.Equal(t, "project:2", forbidden.Request.Domain)

	err = svc.Authorize(context.Background(), NewRequest(6, 2, "log_time"))
	require.ErrorIs(t, err, ErrForbidden)
}

func TestServiceAuthorizeShadowMode(t *testing.T) {
	svc := newTestService(t, ModeShadow)
	require.NoError(t, svc.Authorize(context.Background(), NewRequest(5, 2, "view_work_packages")))
}

func TestServiceDisabledMode(t *testing.T) {
	svc := newTestService(t, ModeDisabled)
	require.Equal(t, ModeDisabled, svc.Mode())

	allowed, err := svc.Allowed(context.Background(), 99, 99, "anything")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestServiceWildcardRole(t *testing.T) {
	svc := newTestService(t, ModeEnforce)
	require.NoError(t, svc.Grant(7, 3, "project_admin"))

	allowed, err := svc.Allowed(context.Background(), 7, 3, "manage_versions")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = svc.Allowed(context.Background(), 7, 1, "manage_versions")
	require.NoError(t, err)
	require.False(t, allowed)
}

func TestServiceAllowedAnywhere(t *testing.T) {
	svc := newTestService(t, ModeEnforce)
	ctx := context.Background()

	allowed, err := svc.AllowedAnywhere(ctx, 6, "view_work_packages")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = svc.AllowedAnywhere(ctx, 6, "log_time")
	require.NoError(t, err)
	require.False(t, allowed)

	allowed, err = svc.AllowedAnywhere(ctx, 0, "view_work_packages")
	require.NoError(t, err)
	require.False(t, allowed)
}

func TestServiceGrantUnknownRole(t *testing.T) {
	svc := newTestService(t, ModeEnforce)
	require.Error(t, svc.Grant(5, 1, "overlord"))
}

func TestServiceKnownRole(t *testing.T) {
	svc := newTestService(t, ModeEnforce)
	require.True(t, svc.KnownRole("member"))
	require.True(t, svc.KnownRole(" Project_Admin "))
	require.False(t, svc.KnownRole("overlord"))
	require.False(t, svc.KnownRole(""))
}

func TestNewServiceRolesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roles:\n  Watcher:\n    - View_Project\n"), 0o644))

	svc, err := NewService(Config{RolesPath: path})
	require.NoError(t, err)
	require.NoError(t, svc.Grant(1, 1, "watcher"))

	allowed, err := svc.Allowed(context.Background(), 1, 1, "view_project")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestParseRoles_Invalid(t *testing.T) {
	_, err := ParseRoles([]byte("roles: {}"))
	require.Error(t, err)

	_, err = ParseRoles([]byte(":::"))
	require.Error(t, err)
}

func TestSubjectForUser(t *testing.T) {
	require.Equal(t, "user:anonymous", SubjectForUser(0))
	require.Equal(t, "user:42", SubjectForUser(42))
	require.Equal(t, "project:3", DomainForProject(3))
	require.Equal(t, "role:member", RoleSubject(" Member "))
}
