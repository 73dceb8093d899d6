package persistence

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-projects/modules/core/domain/aggregates/user"
	"github.com/iota-uz/iota-projects/modules/core/infrastructure/persistence/models"
)

func TestToDomainUser(t *testing.T) {
	t.Parallel()
	u := ToDomainUser(&models.User{
		ID:         4,
		Login:      "jdoe",
		FirstName:  "John",
		LastName:   "Doe",
		Type:       "admin",
		Status:     "active",
		UILanguage: sql.NullString{String: "zh", Valid: true},
	})
	require.Equal(t, int64(4), u.ID())
	require.Equal(t, "John Doe", u.Name())
	require.True(t, u.IsAdmin())
	require.Equal(t, "zh", u.UILanguage().String())

	u = ToDomainUser(&models.User{ID: 1, Login: "system", Type: "system", UILanguage: sql.NullString{String: "xx", Valid: true}})
	require.False(t, u.IsSelectable())
	require.Equal(t, user.TypeSystem, u.Type())
}
