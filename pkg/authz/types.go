package authz

import (
	"strconv"
	"strings"
)

const (
	subjectUserPrefix   = "user"
	rolePrefix          = "role"
	domainProjectPrefix = "project"
	separator           = ":"
	actionWildcard      = "*"
)

// Request encapsulates all parameters required to evaluate a Casbin rule.
type Request struct {
	Subject string
	Domain  string
	Action  string
}

// NewRequest builds the request for a user acting inside a project.
func NewRequest(userID, projectID int64, permission string) Request {
	return Request{
		Subject: SubjectForUser(userID),
		Domain:  DomainForProject(projectID),
		Action:  NormalizeName(permission),
	}
}

// SubjectForUser builds a subject identifier in the form user:{id}; id 0 is anonymous.
func SubjectForUser(userID int64) string {
	if userID == 0 {
		return subjectUserPrefix + separator + "anonymous"
	}
	return subjectUserPrefix + separator + strconv.FormatInt(userID, 10)
}

func DomainForProject(projectID int64) string {
	return domainProjectPrefix + separator + strconv.FormatInt(projectID, 10)
}

func RoleSubject(role string) string {
	return rolePrefix + separator + NormalizeName(role)
}

// NormalizeName lowercases and trims role and permission names.
func NormalizeName(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
