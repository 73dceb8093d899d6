package persistence

import (
	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
	"github.com/iota-uz/iota-projects/modules/projects/domain/entities/member"
	"github.com/iota-uz/iota-projects/modules/projects/domain/entities/version"
	"github.com/iota-uz/iota-projects/modules/projects/infrastructure/persistence/models"
)

func ToDomainProject(dbProject *models.Project) project.Project {
	opts := []project.Option{
		project.WithDescription(dbProject.Description),
		project.WithBounds(dbProject.Lft, dbProject.Rgt),
		project.WithPublic(dbProject.Public),
		project.WithActive(dbProject.Active),
		project.WithTimestamps(dbProject.CreatedAt, dbProject.UpdatedAt),
	}
	if dbProject.ParentID.Valid {
		opts = append(opts, project.WithParentID(dbProject.ParentID.Int64))
	}
	return project.New(dbProject.ID, dbProject.Identifier, dbProject.Name, opts...)
}

func ToDomainVersion(dbVersion *models.Version, p project.Project) version.Version {
	opts := []version.Option{
		version.WithSharing(version.NewSharing(dbVersion.Sharing)),
		version.WithStatus(version.Status(dbVersion.Status)),
		version.WithDescription(dbVersion.Description),
	}
	if dbVersion.EffectiveDate.Valid {
		opts = append(opts, version.WithEffectiveDate(dbVersion.EffectiveDate.Time))
	}
	return version.New(dbVersion.ID, p, dbVersion.Name, opts...)
}

func ToDomainMember(dbMember *models.Member) member.Member {
	roles := dbMember.Roles
	if roles == nil {
		roles = []string{}
	}
	return member.Member{
		ProjectID: dbMember.ProjectID,
		UserID:    dbMember.UserID,
		Roles:     roles,
		CreatedAt: dbMember.CreatedAt,
	}
}
