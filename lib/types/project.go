package types

import "time"

// ProjectStatus is the lifecycle state of a project
type ProjectStatus int

const (
	ProjectStatusNone     ProjectStatus = 0
	ProjectStatusActive   ProjectStatus = 1
	ProjectStatusClosed   ProjectStatus = 5
	ProjectStatusArchived ProjectStatus = 9
)

// String returns the string representation of a ProjectStatus
func (s ProjectStatus) String() string {
	switch s {
	case ProjectStatusActive:
		return "active"
	case ProjectStatusClosed:
		return "closed"
	case ProjectStatusArchived:
		return "archived"
	default:
		return "none"
	}
}

// Project is a Redmine project
type Project struct {
	ID              int
	Name            string
	Identifier      string
	Description     string
	Homepage        string
	Parent          *IdentifiableName
	Status          ProjectStatus
	IsPublic        bool
	InheritMembers  bool
	DefaultVersion  *IdentifiableName
	DefaultAssignee *IdentifiableName
	CreatedOn       *time.Time
	UpdatedOn       *time.Time

	Trackers            []ProjectTracker
	IssueCategories     []ProjectIssueCategory
	TimeEntryActivities []ProjectTimeEntryActivity
	EnabledModules      []ProjectEnabledModule
	IssueCustomFields   []IssueCustomField
	CustomFields        []IssueCustomField
}

// ProjectMembership is a user or group membership as listed under /projects/:id/memberships
type ProjectMembership struct {
	ID      int
	Project *IdentifiableName
	User    *IdentifiableName
	Group   *IdentifiableName
	Roles   []MembershipRole
}

// Membership is a project membership as embedded in a user or group
type Membership struct {
	ID      int
	Project *IdentifiableName
	Roles   []MembershipRole
}

// MembershipRole is a role held through a membership
type MembershipRole struct {
	ID        int
	Name      string
	Inherited bool // granted through a group
}

// IssueCategory is an issue category of a project
type IssueCategory struct {
	ID         int
	Project    *IdentifiableName
	AssignedTo *IdentifiableName
	Name       string
}

// --------------------------------------------------------------------------
// Versions
// --------------------------------------------------------------------------

// VersionStatus is the state of a version
type VersionStatus string

const (
	VersionOpen   VersionStatus = "open"
	VersionLocked VersionStatus = "locked"
	VersionClosed VersionStatus = "closed"
)

// VersionSharing controls which projects may use a version
type VersionSharing string

const (
	SharingNone        VersionSharing = "none"
	SharingDescendants VersionSharing = "descendants"
	SharingHierarchy   VersionSharing = "hierarchy"
	SharingTree        VersionSharing = "tree"
	SharingSystem      VersionSharing = "system"
)

// Version is a project version (milestone)
type Version struct {
	ID             int
	Project        *IdentifiableName
	Name           string
	Description    string
	Status         VersionStatus
	DueDate        *time.Time // date only
	Sharing        VersionSharing
	WikiPageTitle  string
	EstimatedHours *float64
	SpentHours     *float64
	CreatedOn      *time.Time
	UpdatedOn      *time.Time
	CustomFields   []IssueCustomField
}

// --------------------------------------------------------------------------
// News, wiki & files
// --------------------------------------------------------------------------

// News is a news item of a project
type News struct {
	ID          int
	Project     *IdentifiableName
	Author      *IdentifiableName
	Title       string
	Summary     string
	Description string
	CreatedOn   *time.Time
	Attachments []Attachment
	Comments    []NewsComment
	Uploads     []Upload
}

// NewsComment is a comment on a news item
type NewsComment struct {
	ID      int
	Author  *IdentifiableName
	Content string
}

// WikiPage is a page of a project wiki. Pages are addressed by title.
type WikiPage struct {
	Title       string
	ParentTitle string
	Text        string
	Version     int
	Author      *IdentifiableName
	Comments    string
	CreatedOn   *time.Time
	UpdatedOn   *time.Time
	Attachments []Attachment
	Uploads     []Upload
}

// File is a file published in the files section of a project
type File struct {
	ID          int
	FileName    string
	FileSize    int
	ContentType string
	Description string
	ContentURL  string
	Author      *IdentifiableName
	CreatedOn   *time.Time
	Version     *IdentifiableName
	Digest      string
	Downloads   int
	Token       string // upload token, request only
}
