package types

import "fmt"

// IdentifiableName is an id + display name snapshot of another entity, taken at
// the time the containing entity was fetched. It is never fetched or mutated on
// its own. Two references are equal iff id and name match.
type IdentifiableName struct {
	ID   int
	Name string
}

// NewIdentifiableName creates a reference with the given id and name
func NewIdentifiableName(id int, name string) *IdentifiableName {
	return &IdentifiableName{ID: id, Name: name}
}

// NewReference creates a reference that only carries an id, as used in request bodies
func NewReference(id int) *IdentifiableName {
	return &IdentifiableName{ID: id}
}

func (n IdentifiableName) String() string {
	if n.Name == "" {
		return fmt.Sprintf("#%d", n.ID)
	}
	return fmt.Sprintf("#%d %s", n.ID, n.Name)
}

// --------------------------------------------------------------------------
// Reference-like entities
// --------------------------------------------------------------------------

// The following types share the shape of IdentifiableName but carry their own
// wire key (e.g. <user id="" name=""/> inside <watchers>).

// Watcher is a user watching an issue
type Watcher IdentifiableName

// GroupUser is a member of a group
type GroupUser IdentifiableName

// UserGroup is a group a user belongs to
type UserGroup IdentifiableName

// ProjectTracker is a tracker enabled on a project
type ProjectTracker IdentifiableName

// ProjectIssueCategory is an issue category defined on a project
type ProjectIssueCategory IdentifiableName

// ProjectEnabledModule is a module enabled on a project
type ProjectEnabledModule IdentifiableName

// ProjectTimeEntryActivity is a time entry activity available in a project
type ProjectTimeEntryActivity IdentifiableName

// TrackerCustomField is a tracker a custom field is enabled for
type TrackerCustomField IdentifiableName

// CustomFieldRole is a role a custom field is visible to
type CustomFieldRole IdentifiableName
