package authz

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/sirupsen/logrus"
)

// Roles are granted per project: g(user, role, project) and p(role, permission).
const modelText = `
[request_definition]
r = sub, dom, act

[policy_definition]
p = sub, act

[role_definition]
g = _, _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub, r.dom) && (r.act == p.act || p.act == "*")
`

// Service provides helpers for enforcing project permission decisions.
type Service struct {
	mode     Mode
	enforcer *casbin.Enforcer
	logger   *logrus.Entry
	roles    RoleSet

	mu sync.RWMutex
	// projects per subject, used to answer "allowed in any project" questions.
	domains map[string]map[string]struct{}
}

// NewService constructs a Service with the provided config.
func NewService(cfg Config) (*Service, error) {
	roles, err := cfg.roles()
	if err != nil {
		return nil, err
	}

	var logger *logrus.Entry
	if cfg.Logger != nil {
		logger = cfg.Logger.WithField("component", "authz")
	} else {
		logger = logrus.WithField("component", "authz")
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("authz: invalid model: %w", err)
	}
	enf, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: failed to initialize enforcer: %w", err)
	}

	names := make([]string, 0, len(roles))
	for name := range roles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, perm := range roles[name] {
			if _, err := enf.AddPolicy(RoleSubject(name), perm); err != nil {
				return nil, fmt.Errorf("authz: failed to add policy for role %q: %w", name, err)
			}
		}
	}

	return &Service{
		mode:     sanitizeMode(cfg.Mode),
		enforcer: enf,
		logger:   logger,
		roles:    roles,
		domains:  map[string]map[string]struct{}{},
	}, nil
}

func (s *Service) Mode() Mode {
	return s.mode
}

// KnownRole reports whether the role is defined in the role set.
func (s *Service) KnownRole(role string) bool {
	_, ok := s.roles[NormalizeName(role)]
	return ok
}

// Grant gives the user the roles inside the project. Unknown roles are rejected.
func (s *Service) Grant(userID, projectID int64, roles ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := SubjectForUser(userID)
	dom := DomainForProject(projectID)
	for _, role := range roles {
		name := NormalizeName(role)
		if _, ok := s.roles[name]; !ok {
			return configError("unknown role %q", role)
		}
		if _, err := s.enforcer.AddGroupingPolicy(sub, RoleSubject(name), dom); err != nil {
			return fmt.Errorf("authz: failed to grant role %q: %w", name, err)
		}
	}
	if _, ok := s.domains[sub]; !ok {
		s.domains[sub] = map[string]struct{}{}
	}
	s.domains[sub][dom] = struct{}{}
	return nil
}

// Check evaluates a request without returning an authorization error.
func (s *Service) Check(ctx context.Context, req Request) (bool, error) {
	if s.mode == ModeDisabled {
		return true, nil
	}

	start := time.Now()
	s.mu.RLock()
	res, err := s.enforcer.Enforce(req.Subject, req.Domain, req.Action)
	s.mu.RUnlock()
	if err != nil {
		return false, fmt.Errorf("authz: enforce failed: %w", err)
	}
	recordCheckMetrics(s.mode, res, time.Since(start))

	if !res && s.mode == ModeShadow {
		s.logger.WithContext(ctx).WithFields(logrus.Fields{
			"subject": req.Subject,
			"domain":  req.Domain,
			"action":  req.Action,
			"mode":    ModeShadow,
		}).Warn("authz shadow deny")
		return true, nil
	}
	return res, nil
}

// Authorize returns an error if the request is denied.
func (s *Service) Authorize(ctx context.Context, req Request) error {
	allowed, err := s.Check(ctx, req)
	if err != nil {
		return err
	}
	if !allowed {
		s.logger.WithContext(ctx).WithFields(logrus.Fields{
			"subject": req.Subject,
			"domain":  req.Domain,
			"action":  req.Action,
		}).Info("authz denied request")
		return forbiddenError(req)
	}
	return nil
}

// Allowed reports whether the user holds the permission in the project.
func (s *Service) Allowed(ctx context.Context, userID, projectID int64, permission string) (bool, error) {
	return s.Check(ctx, NewRequest(userID, projectID, permission))
}

// AllowedAnywhere reports whether the user holds the permission in at least one project.
func (s *Service) AllowedAnywhere(ctx context.Context, userID int64, permission string) (bool, error) {
	if s.mode == ModeDisabled {
		return true, nil
	}

	sub := SubjectForUser(userID)
	s.mu.RLock()
	domains := make([]string, 0, len(s.domains[sub]))
	for dom := range s.domains[sub] {
		domains = append(domains, dom)
	}
	s.mu.RUnlock()
	sort.Strings(domains)

	for _, dom := range domains {
		allowed, err := s.Check(ctx, Request{Subject: sub, Domain: dom, Action: NormalizeName(permission)})
		if err != nil {
			return false, err
		}
		if allowed {
			return true, nil
		}
	}
	return false, nil
}

// Enforcer exposes the underlying casbin enforcer (read-only usage only).
func (s *Service) Enforcer() *casbin.Enforcer {
	return s.enforcer
}
