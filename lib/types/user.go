package types

import "time"

// UserStatus is the account state of a user
type UserStatus int

const (
	UserStatusNone       UserStatus = 0
	UserStatusActive     UserStatus = 1
	UserStatusRegistered UserStatus = 2
	UserStatusLocked     UserStatus = 3
)

// String returns the string representation of a UserStatus
func (s UserStatus) String() string {
	switch s {
	case UserStatusActive:
		return "active"
	case UserStatusRegistered:
		return "registered"
	case UserStatusLocked:
		return "locked"
	default:
		return "none"
	}
}

// User is a Redmine user account
type User struct {
	ID                   int
	Login                string
	Password             string // request only
	FirstName            string
	LastName             string
	Email                string
	IsAdmin              bool
	Status               UserStatus
	AuthenticationModeID *int
	MailNotification     string
	MustChangePassword   bool
	GeneratePassword     bool
	TwoFactorScheme      string
	APIKey               string
	AvatarURL            string
	CreatedOn            *time.Time
	UpdatedOn            *time.Time
	LastLoginOn          *time.Time
	PasswordChangedOn    *time.Time

	CustomFields []IssueCustomField
	Memberships  []Membership
	Groups       []UserGroup
}

// MyAccount is the account of the user the API key belongs to
type MyAccount struct {
	ID           int
	Login        string
	IsAdmin      bool
	FirstName    string
	LastName     string
	Email        string
	CreatedOn    *time.Time
	LastLoginOn  *time.Time
	APIKey       string
	CustomFields []MyAccountCustomField
}

// MyAccountCustomField is a single valued custom field of the current account
type MyAccountCustomField struct {
	ID    int
	Name  string
	Value string
}

// Group is a group of users
type Group struct {
	ID           int
	Name         string
	Users        []GroupUser
	CustomFields []IssueCustomField
	Memberships  []Membership
}

// Role is a set of permissions granted through memberships
type Role struct {
	ID                    int
	Name                  string
	IsAssignable          *bool
	IssuesVisibility      string
	TimeEntriesVisibility string
	UsersVisibility       string
	Permissions           []Permission
}

// Permission wraps a permission name, e.g. "add_issues"
type Permission struct {
	Info string
}
