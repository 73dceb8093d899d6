package services

import (
	"context"
	"errors"

	"github.com/iota-uz/iota-projects/modules/projects/domain/aggregates/project"
	"github.com/iota-uz/iota-projects/modules/projects/domain/entities/member"
	"github.com/iota-uz/iota-projects/modules/projects/domain/entities/version"
)

type stubProjectRepo struct {
	projects []project.Project
	members  map[int64][]int64
	err      error
}

func (r *stubProjectRepo) GetByID(_ context.Context, id int64) (project.Project, error) {
	if r.err != nil {
		return project.Project{}, r.err
	}
	for _, p := range r.projects {
		if p.ID() == id {
			return p, nil
		}
	}
	return project.Project{}, project.ErrNotFound
}

func (r *stubProjectRepo) GetAll(context.Context) ([]project.Project, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.projects, nil
}

func (r *stubProjectRepo) GetByMember(_ context.Context, userID int64) ([]project.Project, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []project.Project
	for _, id := range r.members[userID] {
		for _, p := range r.projects {
			if p.ID() == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

type stubVersionRepo struct {
	versions []version.Version
}

func (r *stubVersionRepo) GetByID(_ context.Context, id int64) (version.Version, error) {
	for _, v := range r.versions {
		if v.ID() == id {
			return v, nil
		}
	}
	return version.Version{}, version.ErrNotFound
}

func (r *stubVersionRepo) GetByProject(_ context.Context, projectID int64) ([]version.Version, error) {
	var out []version.Version
	for _, v := range r.versions {
		if v.ProjectID() == projectID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubVersionRepo) GetShared(context.Context) ([]version.Version, error) {
	var out []version.Version
	for _, v := range r.versions {
		if v.Sharing() != version.SharingNone {
			out = append(out, v)
		}
	}
	return out, nil
}

type stubMemberRepo struct {
	members []member.Member
	err     error
}

func (r *stubMemberRepo) GetAll(context.Context) ([]member.Member, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.members, nil
}

func (r *stubMemberRepo) Create(_ context.Context, m member.Member) (member.Member, error) {
	for _, existing := range r.members {
		if existing.ProjectID == m.ProjectID && existing.UserID == m.UserID {
			return member.Member{}, member.ErrAlreadyMember
		}
	}
	r.members = append(r.members, m)
	return m, nil
}

type grant struct {
	userID, projectID int64
	roles             []string
}

type stubGranter struct {
	grants []grant
	err    error
}

func (g *stubGranter) Grant(userID, projectID int64, roles ...string) error {
	if g.err != nil {
		return g.err
	}
	g.grants = append(g.grants, grant{userID: userID, projectID: projectID, roles: roles})
	return nil
}

var errBoom = errors.New("boom")

// projectTree builds:
//
//	1 root (1..12)
//	  2 child1 (2..9)
//	    3 grandchild1 (3..4)
//	    4 grandchild2 (5..8)
//	      5 grandgrandchild1 (6..7)
//	  6 child2 (10..11)
//	7 other (13..14)
func projectTree() []project.Project {
	return []project.Project{
		project.New(1, "root", "Root", project.WithBounds(1, 12)),
		project.New(2, "child1", "Child 1", project.WithParentID(1), project.WithBounds(2, 9)),
		project.New(3, "grandchild1", "Grandchild 1", project.WithParentID(2), project.WithBounds(3, 4)),
		project.New(4, "grandchild2", "Grandchild 2", project.WithParentID(2), project.WithBounds(5, 8)),
		project.New(5, "grandgrandchild1", "Grandgrandchild 1", project.WithParentID(4), project.WithBounds(6, 7)),
		project.New(6, "child2", "Child 2", project.WithParentID(1), project.WithBounds(10, 11)),
		project.New(7, "other", "Other", project.WithBounds(13, 14)),
	}
}
