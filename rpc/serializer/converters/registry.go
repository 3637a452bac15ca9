package converters

import (
	"fmt"
	"slices"

	"github.com/ValentinKolb/redmine/lib/types"
)

// IRegistry is a closed, immutable table from entity type to converter.
// It is safe for concurrent use.
type IRegistry interface {
	// Types returns the registered entity types in declaration order
	Types() []types.EntityType
	// Has reports whether t has a converter
	Has(t types.EntityType) bool
	// Key returns the wire names of t
	Key(t types.EntityType) (Key, bool)

	lookup(t types.EntityType) (any, bool)
}

type registryImpl struct {
	entries map[types.EntityType]entry
}

type entry struct {
	key       Key
	converter any // IConverter[T] for the T tagged by the map key
}

// NewRegistry returns a registry covering every entity type
func NewRegistry() IRegistry {
	return NewRegistryOf(types.EntityTypes()...)
}

// NewRegistryOf returns a registry restricted to the given entity types.
// Unknown tags are ignored.
func NewRegistryOf(entityTypes ...types.EntityType) IRegistry {
	all := converters()
	reg := &registryImpl{entries: make(map[types.EntityType]entry, len(entityTypes))}
	for _, t := range entityTypes {
		if e, ok := all[t]; ok {
			reg.entries[t] = e
		}
	}
	return reg
}

// Lookup resolves the converter of T in reg. A type outside the entity
// catalogue or missing from reg yields a *ConfigurationError.
func Lookup[T any](reg IRegistry) (IConverter[T], error) {
	t := TypeOf[T]()
	if reg != nil {
		if c, ok := reg.lookup(t); ok {
			if conv, ok := c.(IConverter[T]); ok {
				return conv, nil
			}
		}
	}
	return nil, &ConfigurationError{Type: typeName[T](t)}
}

func typeName[T any](t types.EntityType) string {
	if t.Valid() {
		return t.String()
	}
	return fmt.Sprintf("%T", *new(T))
}

// --------------------------------------------------------------------------
// Interface Methods (docu see converters.IRegistry)
// --------------------------------------------------------------------------

func (r *registryImpl) Types() []types.EntityType {
	list := make([]types.EntityType, 0, len(r.entries))
	for t := range r.entries {
		list = append(list, t)
	}
	slices.Sort(list)
	return list
}

func (r *registryImpl) Has(t types.EntityType) bool {
	_, ok := r.entries[t]
	return ok
}

func (r *registryImpl) Key(t types.EntityType) (Key, bool) {
	e, ok := r.entries[t]
	return e.key, ok
}

func (r *registryImpl) lookup(t types.EntityType) (any, bool) {
	e, ok := r.entries[t]
	return e.converter, ok
}

// --------------------------------------------------------------------------
// Catalogue
// --------------------------------------------------------------------------

func register[T any](m map[types.EntityType]entry, c IConverter[T]) {
	m[c.Type()] = entry{key: c.Key(), converter: c}
}

// converters builds the full catalogue
func converters() map[types.EntityType]entry {
	m := make(map[types.EntityType]entry, len(types.EntityTypes()))

	register(m, newConverter(types.EntityAttachment, "attachment", "attachments", readAttachment, writeAttachment))
	register(m, newConverter(types.EntityChangeSet, "changeset", "changesets", readChangeSet, writeChangeSet))
	register(m, newConverter(types.EntityCustomField, "custom_field", "custom_fields", readCustomField, writeCustomField))
	register(m, newConverter(types.EntityCustomFieldPossibleValue, "possible_value", "possible_values", readCustomFieldPossibleValue, writeCustomFieldPossibleValue))
	register(m, newConverter(types.EntityCustomFieldRole, "role", "roles", readRefAs[types.CustomFieldRole], writeRefAs[types.CustomFieldRole]))
	register(m, newConverter(types.EntityCustomFieldValue, "value", "values", readCustomFieldValue, writeCustomFieldValue))
	register(m, newConverter(types.EntityDetail, "detail", "details", readDetail, writeDetail))
	register(m, newConverter(types.EntityDocumentCategory, "document_category", "document_categories", readEnumeration[types.DocumentCategory], writeEnumeration[types.DocumentCategory]))
	register(m, newConverter(types.EntityError, "error", "errors", readError, writeError))
	register(m, newConverter(types.EntityFile, "file", "files", readFile, writeFile))
	register(m, newConverter(types.EntityGroup, "group", "groups", readGroup, writeGroup))
	register(m, newConverter(types.EntityGroupUser, "user", "users", readRefAs[types.GroupUser], writeRefAs[types.GroupUser]))
	register(m, newConverter(types.EntityIdentifiableName, "identifiable_name", "identifiable_names", readRefAs[types.IdentifiableName], writeRefAs[types.IdentifiableName]))
	register(m, newConverter(types.EntityIssue, "issue", "issues", readIssue, writeIssue))
	register(m, newConverter(types.EntityIssueAllowedStatus, "status", "allowed_statuses", readIssueAllowedStatus, writeIssueAllowedStatus))
	register(m, newConverter(types.EntityIssueCategory, "issue_category", "issue_categories", readIssueCategory, writeIssueCategory))
	register(m, newConverter(types.EntityIssueChild, "issue", "children", readIssueChild, writeIssueChild))
	register(m, newConverter(types.EntityIssueCustomField, "custom_field", "custom_fields", readIssueCustomField, writeIssueCustomField))
	register(m, newConverter(types.EntityIssuePriority, "issue_priority", "issue_priorities", readEnumeration[types.IssuePriority], writeEnumeration[types.IssuePriority]))
	register(m, newConverter(types.EntityIssueRelation, "relation", "relations", readIssueRelation, writeIssueRelation))
	register(m, newConverter(types.EntityIssueStatus, "issue_status", "issue_statuses", readIssueStatus, writeIssueStatus))
	register(m, newConverter(types.EntityJournal, "journal", "journals", readJournal, writeJournal))
	register(m, newConverter(types.EntityMembership, "membership", "memberships", readMembership, writeMembership))
	register(m, newConverter(types.EntityMembershipRole, "role", "roles", readMembershipRole, writeMembershipRole))
	register(m, newConverter(types.EntityMyAccount, "user", "users", readMyAccount, writeMyAccount))
	register(m, newConverter(types.EntityMyAccountCustomField, "custom_field", "custom_fields", readMyAccountCustomField, writeMyAccountCustomField))
	register(m, newConverter(types.EntityNews, "news", "news", readNews, writeNews))
	register(m, newConverter(types.EntityNewsComment, "comment", "comments", readNewsComment, writeNewsComment))
	register(m, newConverter(types.EntityPermission, "permission", "permissions", readPermission, writePermission))
	register(m, newConverter(types.EntityProject, "project", "projects", readProject, writeProject))
	register(m, newConverter(types.EntityProjectEnabledModule, "enabled_module", "enabled_modules", readRefAs[types.ProjectEnabledModule], writeRefAs[types.ProjectEnabledModule]))
	register(m, newConverter(types.EntityProjectIssueCategory, "issue_category", "issue_categories", readRefAs[types.ProjectIssueCategory], writeRefAs[types.ProjectIssueCategory]))
	register(m, newConverter(types.EntityProjectMembership, "membership", "memberships", readProjectMembership, writeProjectMembership))
	register(m, newConverter(types.EntityProjectTimeEntryActivity, "time_entry_activity", "time_entry_activities", readRefAs[types.ProjectTimeEntryActivity], writeRefAs[types.ProjectTimeEntryActivity]))
	register(m, newConverter(types.EntityProjectTracker, "tracker", "trackers", readRefAs[types.ProjectTracker], writeRefAs[types.ProjectTracker]))
	register(m, newConverter(types.EntityQuery, "query", "queries", readQuery, writeQuery))
	register(m, newConverter(types.EntityRole, "role", "roles", readRole, writeRole))
	register(m, newConverter(types.EntitySearch, "result", "results", readSearch, writeSearch))
	register(m, newConverter(types.EntityTimeEntry, "time_entry", "time_entries", readTimeEntry, writeTimeEntry))
	register(m, newConverter(types.EntityTimeEntryActivity, "time_entry_activity", "time_entry_activities", readEnumeration[types.TimeEntryActivity], writeEnumeration[types.TimeEntryActivity]))
	register(m, newConverter(types.EntityTracker, "tracker", "trackers", readTracker, writeTracker))
	register(m, newConverter(types.EntityTrackerCoreField, "field", "enabled_standard_fields", readTrackerCoreField, writeTrackerCoreField))
	register(m, newConverter(types.EntityTrackerCustomField, "tracker", "trackers", readRefAs[types.TrackerCustomField], writeRefAs[types.TrackerCustomField]))
	register(m, newConverter(types.EntityUpload, "upload", "uploads", readUpload, writeUpload))
	register(m, newConverter(types.EntityUser, "user", "users", readUser, writeUser))
	register(m, newConverter(types.EntityUserGroup, "group", "groups", readRefAs[types.UserGroup], writeRefAs[types.UserGroup]))
	register(m, newConverter(types.EntityVersion, "version", "versions", readVersion, writeVersion))
	register(m, newConverter(types.EntityWatcher, "user", "watchers", readRefAs[types.Watcher], writeRefAs[types.Watcher]))
	register(m, newConverter(types.EntityWikiPage, "wiki_page", "wiki_pages", readWikiPage, writeWikiPage))

	return m
}

// TypeOf returns the entity tag of T, EntityUnknown for types outside the catalogue
func TypeOf[T any]() types.EntityType {
	switch any(new(T)).(type) {
	case *types.Attachment:
		return types.EntityAttachment
	case *types.ChangeSet:
		return types.EntityChangeSet
	case *types.CustomField:
		return types.EntityCustomField
	case *types.CustomFieldPossibleValue:
		return types.EntityCustomFieldPossibleValue
	case *types.CustomFieldRole:
		return types.EntityCustomFieldRole
	case *types.CustomFieldValue:
		return types.EntityCustomFieldValue
	case *types.Detail:
		return types.EntityDetail
	case *types.DocumentCategory:
		return types.EntityDocumentCategory
	case *types.Error:
		return types.EntityError
	case *types.File:
		return types.EntityFile
	case *types.Group:
		return types.EntityGroup
	case *types.GroupUser:
		return types.EntityGroupUser
	case *types.IdentifiableName:
		return types.EntityIdentifiableName
	case *types.Issue:
		return types.EntityIssue
	case *types.IssueAllowedStatus:
		return types.EntityIssueAllowedStatus
	case *types.IssueCategory:
		return types.EntityIssueCategory
	case *types.IssueChild:
		return types.EntityIssueChild
	case *types.IssueCustomField:
		return types.EntityIssueCustomField
	case *types.IssuePriority:
		return types.EntityIssuePriority
	case *types.IssueRelation:
		return types.EntityIssueRelation
	case *types.IssueStatus:
		return types.EntityIssueStatus
	case *types.Journal:
		return types.EntityJournal
	case *types.Membership:
		return types.EntityMembership
	case *types.MembershipRole:
		return types.EntityMembershipRole
	case *types.MyAccount:
		return types.EntityMyAccount
	case *types.MyAccountCustomField:
		return types.EntityMyAccountCustomField
	case *types.News:
		return types.EntityNews
	case *types.NewsComment:
		return types.EntityNewsComment
	case *types.Permission:
		return types.EntityPermission
	case *types.Project:
		return types.EntityProject
	case *types.ProjectEnabledModule:
		return types.EntityProjectEnabledModule
	case *types.ProjectIssueCategory:
		return types.EntityProjectIssueCategory
	case *types.ProjectMembership:
		return types.EntityProjectMembership
	case *types.ProjectTimeEntryActivity:
		return types.EntityProjectTimeEntryActivity
	case *types.ProjectTracker:
		return types.EntityProjectTracker
	case *types.Query:
		return types.EntityQuery
	case *types.Role:
		return types.EntityRole
	case *types.Search:
		return types.EntitySearch
	case *types.TimeEntry:
		return types.EntityTimeEntry
	case *types.TimeEntryActivity:
		return types.EntityTimeEntryActivity
	case *types.Tracker:
		return types.EntityTracker
	case *types.TrackerCoreField:
		return types.EntityTrackerCoreField
	case *types.TrackerCustomField:
		return types.EntityTrackerCustomField
	case *types.Upload:
		return types.EntityUpload
	case *types.User:
		return types.EntityUser
	case *types.UserGroup:
		return types.EntityUserGroup
	case *types.Version:
		return types.EntityVersion
	case *types.Watcher:
		return types.EntityWatcher
	case *types.WikiPage:
		return types.EntityWikiPage
	default:
		return types.EntityUnknown
	}
}
