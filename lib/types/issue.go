package types

import "time"

// --------------------------------------------------------------------------
// Issue
// --------------------------------------------------------------------------

// Issue is the central entity of the tracker.
// Fields only meaningful in requests (Notes, PrivateNotes, Uploads) are kept on
// the same struct so updates can be built from a fetched issue.
type Issue struct {
	ID           int
	Project      *IdentifiableName
	Tracker      *IdentifiableName
	Status       *IssueStatus
	Priority     *IdentifiableName
	Author       *IdentifiableName
	Category     *IdentifiableName
	FixedVersion *IdentifiableName
	AssignedTo   *IdentifiableName
	Parent       *IdentifiableName // only the id is sent by the server

	Subject     string
	Description string
	StartDate   *time.Time // date only
	DueDate     *time.Time // date only
	DoneRatio   *int
	IsPrivate   bool

	EstimatedHours      *float64
	TotalEstimatedHours *float64
	SpentHours          *float64
	TotalSpentHours     *float64

	CustomFields []IssueCustomField
	CreatedOn    *time.Time
	UpdatedOn    *time.Time
	ClosedOn     *time.Time

	// Request only
	Notes        string
	PrivateNotes bool
	Uploads      []Upload

	// Included on demand (?include=...)
	Journals        []Journal
	ChangeSets      []ChangeSet
	Attachments     []Attachment
	Relations       []IssueRelation
	Children        []IssueChild
	Watchers        []Watcher
	AllowedStatuses []IssueAllowedStatus
}

// IssueChild is a sub task as listed in the children of an issue
type IssueChild struct {
	ID       int
	Tracker  *IdentifiableName
	Subject  string
	Children []IssueChild
}

// RelationType is the kind of link between two issues
type RelationType string

const (
	RelationRelates    RelationType = "relates"
	RelationDuplicates RelationType = "duplicates"
	RelationDuplicated RelationType = "duplicated"
	RelationBlocks     RelationType = "blocks"
	RelationBlocked    RelationType = "blocked"
	RelationPrecedes   RelationType = "precedes"
	RelationFollows    RelationType = "follows"
	RelationCopiedTo   RelationType = "copied_to"
	RelationCopiedFrom RelationType = "copied_from"
)

// IssueRelation links two issues
type IssueRelation struct {
	ID        int
	IssueID   int
	IssueToID int
	Type      RelationType
	Delay     *int // days, only for precedes/follows
}

// IssueCustomField is the value of a custom field on an issue, project, user, ...
// Values is always a collection, whether the server sent one value or many.
type IssueCustomField struct {
	ID       int
	Name     string
	Multiple bool
	Values   []CustomFieldValue
}

// CustomFieldValue wraps a single custom field value
type CustomFieldValue struct {
	Info string
}

// IssueAllowedStatus is a status the current user may move the issue to
type IssueAllowedStatus struct {
	ID       int
	Name     string
	IsClosed bool
}

// --------------------------------------------------------------------------
// History
// --------------------------------------------------------------------------

// Journal is one entry in the history of an issue
type Journal struct {
	ID           int
	User         *IdentifiableName
	Notes        string
	CreatedOn    *time.Time
	UpdatedOn    *time.Time
	UpdatedBy    *IdentifiableName
	PrivateNotes bool
	Details      []Detail
}

// Detail is a single attribute change recorded in a journal
type Detail struct {
	Property string // attr, cf, attachment, relation
	Name     string
	OldValue string
	NewValue string
}

// ChangeSet is a repository revision associated with an issue
type ChangeSet struct {
	Revision    string
	User        *IdentifiableName
	Comments    string
	CommittedOn *time.Time
}

// --------------------------------------------------------------------------
// Files
// --------------------------------------------------------------------------

// Attachment is a file attached to an issue, wiki page, news item, ...
type Attachment struct {
	ID           int
	FileName     string
	FileSize     int
	ContentType  string
	Description  string
	ContentURL   string
	ThumbnailURL string
	Author       *IdentifiableName
	CreatedOn    *time.Time
}

// Upload is the token returned after posting raw file content to /uploads.
// It is referenced when attaching the file to another entity.
type Upload struct {
	ID          int
	Token       string
	FileName    string
	ContentType string
	Description string
}
