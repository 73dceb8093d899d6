package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/iota-projects/modules/projects/domain/entities/member"
	"github.com/iota-uz/iota-projects/pkg/composables"
	"github.com/iota-uz/iota-projects/pkg/constants"
	"github.com/iota-uz/iota-projects/pkg/eventbus"
)

// PolicyGranter receives memberships so that permission checks see them.
type PolicyGranter interface {
	Grant(userID, projectID int64, roles ...string) error
}

// RoleCatalog answers whether a role name can be granted.
type RoleCatalog interface {
	KnownRole(role string) bool
}

type MemberService struct {
	repo      member.Repository
	publisher eventbus.EventBus
	roles     RoleCatalog
}

// NewMemberService builds the service. A nil roles catalog accepts any role name.
func NewMemberService(repo member.Repository, publisher eventbus.EventBus, roles RoleCatalog) *MemberService {
	return &MemberService{repo: repo, publisher: publisher, roles: roles}
}

func (s *MemberService) GetAll(ctx context.Context) ([]member.Member, error) {
	return s.repo.GetAll(ctx)
}

// Add persists a membership. member.AddedEvent is published once the surrounding
// transaction commits, or right away when ctx carries no transaction owner.
func (s *MemberService) Add(ctx context.Context, projectID, userID int64, roles ...string) (member.Member, error) {
	dto := &member.CreateDTO{ProjectID: projectID, UserID: userID, Roles: roles}
	dto.Normalize()
	if err := constants.Validate.Struct(dto); err != nil {
		recordMemberAdded(err)
		return member.Member{}, fmt.Errorf("invalid membership: %w", err)
	}
	if err := s.checkRoles(dto.Roles); err != nil {
		recordMemberAdded(err)
		return member.Member{}, err
	}

	created, err := s.repo.Create(ctx, dto.ToEntity())
	recordMemberAdded(err)
	if err != nil {
		return member.Member{}, err
	}

	composables.AfterCommit(ctx, func() {
		s.publisher.Publish(&member.AddedEvent{Member: created})
	})
	return created, nil
}

func (s *MemberService) checkRoles(roles []string) error {
	if s.roles == nil {
		return nil
	}
	for _, r := range roles {
		if !s.roles.KnownRole(r) {
			return fmt.Errorf("%w: %q", member.ErrUnknownRole, r)
		}
	}
	return nil
}

// SyncPolicies grants every stored membership to g. Memberships that cannot be
// granted are logged and skipped; only a failing read is returned.
func (s *MemberService) SyncPolicies(ctx context.Context, g PolicyGranter) error {
	members, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	logger := composables.UseLogger(ctx).WithField("component", "projects.members")
	for _, m := range members {
		if err := g.Grant(m.UserID, m.ProjectID, m.Roles...); err != nil {
			logger.WithFields(logrus.Fields{
				"project_id": m.ProjectID,
				"user_id":    m.UserID,
				"roles":      m.Roles,
			}).WithError(err).Warn("skipping membership that cannot be granted")
		}
	}
	return nil
}

// GrantOnMemberAdded returns an event handler forwarding new memberships to g.
func GrantOnMemberAdded(g PolicyGranter, logger *logrus.Logger) func(*member.AddedEvent) {
	return func(e *member.AddedEvent) {
		if err := g.Grant(e.Member.UserID, e.Member.ProjectID, e.Member.Roles...); err != nil {
			logger.WithFields(logrus.Fields{
				"component":  "projects.members",
				"project_id": e.Member.ProjectID,
				"user_id":    e.Member.UserID,
			}).WithError(err).Error("failed to grant membership roles")
		}
	}
}
