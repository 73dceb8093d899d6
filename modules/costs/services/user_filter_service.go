package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/iota-projects/modules/core/domain/aggregates/user"
	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
	"github.com/iota-uz/iota-projects/pkg/composables"
	"github.com/iota-uz/iota-projects/pkg/intl"
)

// FilterValue is one selectable entry of a cost query filter.
type FilterValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type AvailableValuesRequest struct {
	// OwnerID is the user whose projects are scanned for members.
	OwnerID int64
	// Requester gets a leading "me" entry when logged in.
	Requester user.User
}

type UserFilterService struct {
	projects project.Repository
	users    user.Repository
}

func NewUserFilterService(projects project.Repository, users user.Repository) *UserFilterService {
	return &UserFilterService{projects: projects, users: users}
}

// AvailableValues lists the users a cost query can be filtered by: the members of
// the owner's projects, without the system and anonymous accounts, ordered by name.
func (s *UserFilterService) AvailableValues(ctx context.Context, req AvailableValuesRequest) ([]FilterValue, error) {
	logger := composables.UseLogger(ctx).WithFields(logrus.Fields{
		"component": "costs.user_filter",
		"owner_id":  req.OwnerID,
	})

	var values []FilterValue
	if req.Requester.IsLogged() {
		values = append(values, FilterValue{
			Label: "<< " + intl.T(ctx, "CostQuery.Filters.Me", "me") + " >>",
			Value: strconv.FormatInt(req.Requester.ID(), 10),
		})
	}

	members, err := s.members(ctx, req.OwnerID)
	if err != nil {
		recordUserFilter(err, 0)
		logger.WithError(err).Error("failed to list selectable users")
		return nil, err
	}
	recordUserFilter(nil, len(members))
	logger.WithField("users", len(members)).Debug("listed selectable users")

	return append(values, members...), nil
}

func (s *UserFilterService) members(ctx context.Context, ownerID int64) ([]FilterValue, error) {
	if ownerID == 0 {
		return nil, nil
	}
	projects, err := s.projects.GetByMember(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load projects of user %d: %w", ownerID, err)
	}
	if len(projects) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID())
	}
	users, err := s.users.GetByProjectIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load members of projects: %w", err)
	}

	type entry struct {
		id    int64
		label string
	}
	seen := make(map[int64]struct{}, len(users))
	entries := make([]entry, 0, len(users))
	for _, u := range users {
		if !u.IsSelectable() {
			continue
		}
		if _, ok := seen[u.ID()]; ok {
			continue
		}
		seen[u.ID()] = struct{}{}
		entries = append(entries, entry{id: u.ID(), label: u.Name()})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Or(cmp.Compare(a.label, b.label), cmp.Compare(a.id, b.id))
	})

	out := make([]FilterValue, 0, len(entries))
	for _, e := range entries {
		out = append(out, FilterValue{Label: e.label, Value: strconv.FormatInt(e.id, 10)})
	}
	return out, nil
}
