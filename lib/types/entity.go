package types

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Entity Type Definition
// --------------------------------------------------------------------------

// EntityType tags every entity type the codec can read and write.
type EntityType uint8

// entityTypeNames is indexed by EntityType
var entityTypeNames = [...]string{
	EntityUnknown:                  "unknown",
	EntityAttachment:               "Attachment",
	EntityChangeSet:                "ChangeSet",
	EntityCustomField:              "CustomField",
	EntityCustomFieldPossibleValue: "CustomFieldPossibleValue",
	EntityCustomFieldRole:          "CustomFieldRole",
	EntityCustomFieldValue:         "CustomFieldValue",
	EntityDetail:                   "Detail",
	EntityDocumentCategory:         "DocumentCategory",
	EntityError:                    "Error",
	EntityFile:                     "File",
	EntityGroup:                    "Group",
	EntityGroupUser:                "GroupUser",
	EntityIdentifiableName:         "IdentifiableName",
	EntityIssue:                    "Issue",
	EntityIssueAllowedStatus:       "IssueAllowedStatus",
	EntityIssueCategory:            "IssueCategory",
	EntityIssueChild:               "IssueChild",
	EntityIssueCustomField:         "IssueCustomField",
	EntityIssuePriority:            "IssuePriority",
	EntityIssueRelation:            "IssueRelation",
	EntityIssueStatus:              "IssueStatus",
	EntityJournal:                  "Journal",
	EntityMembership:               "Membership",
	EntityMembershipRole:           "MembershipRole",
	EntityMyAccount:                "MyAccount",
	EntityMyAccountCustomField:     "MyAccountCustomField",
	EntityNews:                     "News",
	EntityNewsComment:              "NewsComment",
	EntityPermission:               "Permission",
	EntityProject:                  "Project",
	EntityProjectEnabledModule:     "ProjectEnabledModule",
	EntityProjectIssueCategory:     "ProjectIssueCategory",
	EntityProjectMembership:        "ProjectMembership",
	EntityProjectTimeEntryActivity: "ProjectTimeEntryActivity",
	EntityProjectTracker:           "ProjectTracker",
	EntityQuery:                    "Query",
	EntityRole:                     "Role",
	EntitySearch:                   "Search",
	EntityTimeEntry:                "TimeEntry",
	EntityTimeEntryActivity:        "TimeEntryActivity",
	EntityTracker:                  "Tracker",
	EntityTrackerCoreField:         "TrackerCoreField",
	EntityTrackerCustomField:       "TrackerCustomField",
	EntityUpload:                   "Upload",
	EntityUser:                     "User",
	EntityUserGroup:                "UserGroup",
	EntityVersion:                  "Version",
	EntityWatcher:                  "Watcher",
	EntityWikiPage:                 "WikiPage",
}

// String returns the Go type name of the entity, or "unknown".
func (t EntityType) String() string {
	if int(t) < len(entityTypeNames) && entityTypeNames[t] != "" {
		return entityTypeNames[t]
	}
	return "unknown"
}

// Valid reports whether t names a concrete entity type.
func (t EntityType) Valid() bool {
	return t > EntityUnknown && t < entityTypeEnd
}

// MarshalJSON implements the json.Marshaller interface for EntityType.
// This allows EntityType to be serialized as a string in JSON.
func (t EntityType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for EntityType.
func (t *EntityType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseEntityType(s)
	if !ok {
		return fmt.Errorf("unknown entity type: %s", s)
	}
	*t = parsed
	return nil
}

// ParseEntityType resolves a Go type name (e.g. "Issue") to its EntityType.
func ParseEntityType(name string) (EntityType, bool) {
	for t := EntityUnknown + 1; t < entityTypeEnd; t++ {
		if entityTypeNames[t] == name {
			return t, true
		}
	}
	return EntityUnknown, false
}

// EntityTypes returns every concrete entity type in declaration order.
func EntityTypes() []EntityType {
	all := make([]EntityType, 0, int(entityTypeEnd)-1)
	for t := EntityUnknown + 1; t < entityTypeEnd; t++ {
		all = append(all, t)
	}
	return all
}

// --------------------------------------------------------------------------
// Entity Type Constants
// --------------------------------------------------------------------------

const (
	EntityUnknown EntityType = iota

	EntityAttachment
	EntityChangeSet
	EntityCustomField
	EntityCustomFieldPossibleValue
	EntityCustomFieldRole
	EntityCustomFieldValue
	EntityDetail
	EntityDocumentCategory
	EntityError
	EntityFile
	EntityGroup
	EntityGroupUser
	EntityIdentifiableName
	EntityIssue
	EntityIssueAllowedStatus
	EntityIssueCategory
	EntityIssueChild
	EntityIssueCustomField
	EntityIssuePriority
	EntityIssueRelation
	EntityIssueStatus
	EntityJournal
	EntityMembership
	EntityMembershipRole
	EntityMyAccount
	EntityMyAccountCustomField
	EntityNews
	EntityNewsComment
	EntityPermission
	EntityProject
	EntityProjectEnabledModule
	EntityProjectIssueCategory
	EntityProjectMembership
	EntityProjectTimeEntryActivity
	EntityProjectTracker
	EntityQuery
	EntityRole
	EntitySearch
	EntityTimeEntry
	EntityTimeEntryActivity
	EntityTracker
	EntityTrackerCoreField
	EntityTrackerCustomField
	EntityUpload
	EntityUser
	EntityUserGroup
	EntityVersion
	EntityWatcher
	EntityWikiPage

	entityTypeEnd // sentinel, keep last
)
