package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iota-uz/iota-projects/modules/projects/domain/entities/member"
	"github.com/iota-uz/iota-projects/modules/projects/infrastructure/persistence/models"
	"github.com/iota-uz/iota-projects/pkg/composables"
)

const (
	memberFindQuery = `
        SELECT m.id, m.project_id, m.user_id, m.roles, m.created_at
        FROM members m
        ORDER BY m.project_id, m.user_id`

	memberInsertQuery = `
        INSERT INTO members (project_id, user_id, roles)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	pgUniqueViolation = "23505"
)

type PgMemberRepository struct{}

func NewMemberRepository() member.Repository {
	return &PgMemberRepository{}
}

func (g *PgMemberRepository) GetAll(ctx context.Context) ([]member.Member, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, memberFindQuery)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	entities := make([]member.Member, 0)
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Roles, &m.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan member row")
		}
		entities = append(entities, ToDomainMember(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return entities, nil
}

func (g *PgMemberRepository) Create(ctx context.Context, data member.Member) (member.Member, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return member.Member{}, errors.Wrap(err, "failed to get transaction")
	}

	dbMember := models.Member{ProjectID: data.ProjectID, UserID: data.UserID, Roles: data.Roles}
	if err := tx.QueryRow(ctx, memberInsertQuery, dbMember.ProjectID, dbMember.UserID, dbMember.Roles).
		Scan(&dbMember.ID, &dbMember.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return member.Member{}, member.ErrAlreadyMember
		}
		return member.Member{}, errors.Wrap(err, fmt.Sprintf("failed to add user %d to project %d", data.UserID, data.ProjectID))
	}
	return ToDomainMember(&dbMember), nil
}
