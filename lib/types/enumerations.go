package types

import "time"

// --------------------------------------------------------------------------
// Trackers, statuses and enumerations
// --------------------------------------------------------------------------

// Tracker is an issue type (Bug, Feature, ...)
type Tracker struct {
	ID                    int
	Name                  string
	DefaultStatus         *IdentifiableName
	Description           string
	EnabledStandardFields []TrackerCoreField
}

// TrackerCoreField wraps the name of a standard issue field enabled on a tracker
type TrackerCoreField struct {
	Name string
}

// IssueStatus is a workflow state of an issue
type IssueStatus struct {
	ID          int
	Name        string
	IsDefault   bool
	IsClosed    bool
	Description string
}

// IssuePriority is an entry of the issue priority enumeration
type IssuePriority struct {
	ID        int
	Name      string
	IsDefault bool
	IsActive  bool
}

// TimeEntryActivity is an entry of the time entry activity enumeration
type TimeEntryActivity struct {
	ID        int
	Name      string
	IsDefault bool
	IsActive  bool
}

// DocumentCategory is an entry of the document category enumeration
type DocumentCategory struct {
	ID        int
	Name      string
	IsDefault bool
	IsActive  bool
}

// --------------------------------------------------------------------------
// Time tracking
// --------------------------------------------------------------------------

// TimeEntry is time spent on a project or issue
type TimeEntry struct {
	ID           int
	Project      *IdentifiableName
	Issue        *IdentifiableName // only the id is sent by the server
	User         *IdentifiableName
	Activity     *IdentifiableName
	Hours        float64
	Comments     string
	SpentOn      *time.Time // date only
	CreatedOn    *time.Time
	UpdatedOn    *time.Time
	CustomFields []IssueCustomField
}

// --------------------------------------------------------------------------
// Custom field definitions
// --------------------------------------------------------------------------

// CustomField is the definition of a custom field (admin only)
type CustomField struct {
	ID             int
	Name           string
	Description    string
	CustomizedType string // issue, project, user, ...
	FieldFormat    string // string, list, date, ...
	Regexp         string
	MinLength      *int
	MaxLength      *int
	IsRequired     bool
	IsFilter       bool
	Searchable     bool
	Multiple       bool
	DefaultValue   string
	Visible        bool
	Editable       bool
	PossibleValues []CustomFieldPossibleValue
	Trackers       []TrackerCustomField
	Roles          []CustomFieldRole
}

// CustomFieldPossibleValue is one entry of a list custom field
type CustomFieldPossibleValue struct {
	Value string
	Label string
}

// --------------------------------------------------------------------------
// Misc
// --------------------------------------------------------------------------

// Query is a saved issue query
type Query struct {
	ID        int
	Name      string
	IsPublic  bool
	ProjectID *int
}

// Search is a single search hit
type Search struct {
	ID          int
	Title       string
	Type        string
	URL         string
	Description string
	DateTime    *time.Time
}

// Error wraps one message of an error response
type Error struct {
	Info string
}

func (e Error) String() string {
	return e.Info
}
