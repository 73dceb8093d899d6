package persistence

import (
	"github.com/iota-uz/iota-projects/modules/core/domain/aggregates/user"
	"github.com/iota-uz/iota-projects/modules/core/infrastructure/persistence/models"
)

func ToDomainUser(dbUser *models.User) user.User {
	opts := []user.Option{
		user.WithLogin(dbUser.Login),
		user.WithType(user.Type(dbUser.Type)),
		user.WithStatus(user.Status(dbUser.Status)),
	}
	if dbUser.UILanguage.Valid {
		if lang, err := user.NewUILanguage(dbUser.UILanguage.String); err == nil {
			opts = append(opts, user.WithUILanguage(lang))
		}
	}
	return user.New(dbUser.ID, dbUser.FirstName, dbUser.LastName, opts...)
}
