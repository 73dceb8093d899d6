package user

import (
	"errors"
	"strings"
)

var ErrNotFound = errors.New("user not found")

type Type string

const (
	TypeUser      Type = "user"
	TypeAdmin     Type = "admin"
	TypeSystem    Type = "system"
	TypeAnonymous Type = "anonymous"
	TypeDeleted   Type = "deleted"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusRegistered Status = "registered"
	StatusLocked     Status = "locked"
)

type Option func(u *User)

func WithLogin(login string) Option {
	return func(u *User) { u.login = strings.TrimSpace(login) }
}

func WithType(t Type) Option {
	return func(u *User) { u.userType = t }
}

func WithStatus(s Status) Option {
	return func(u *User) { u.status = s }
}

func WithUILanguage(l UILanguage) Option {
	return func(u *User) { u.uiLanguage = l }
}

type User struct {
	id         int64
	login      string
	firstName  string
	lastName   string
	userType   Type
	status     Status
	uiLanguage UILanguage
}

func New(id int64, firstName, lastName string, opts ...Option) User {
	u := User{
		id:         id,
		firstName:  strings.TrimSpace(firstName),
		lastName:   strings.TrimSpace(lastName),
		userType:   TypeUser,
		status:     StatusActive,
		uiLanguage: UILanguageEN,
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

// Anonymous is the user bound to requests without an authenticated identity.
func Anonymous() User {
	return New(0, "", "Anonymous", WithType(TypeAnonymous))
}

func (u User) ID() int64              { return u.id }
func (u User) Login() string          { return u.login }
func (u User) FirstName() string      { return u.firstName }
func (u User) LastName() string       { return u.lastName }
func (u User) Type() Type             { return u.userType }
func (u User) Status() Status         { return u.status }
func (u User) UILanguage() UILanguage { return u.uiLanguage }
func (u User) IsAdmin() bool          { return u.userType == TypeAdmin }

// IsLogged reports whether the user is a real, authenticated account.
func (u User) IsLogged() bool {
	return u.id != 0 && u.userType != TypeAnonymous
}

// IsSelectable reports whether the account may be offered as a person to pick,
// which excludes the system and anonymous accounts.
func (u User) IsSelectable() bool {
	switch u.userType {
	case TypeSystem, TypeAnonymous:
		return false
	}
	return true
}

// Name is the display name: "First Last", or the login when both are blank.
func (u User) Name() string {
	name := strings.TrimSpace(u.firstName + " " + u.lastName)
	if name == "" {
		return u.login
	}
	return name
}
