package client

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ValentinKolb/redmine/lib/types"
)

// RequestOptions adjusts a single call
type RequestOptions struct {
	// Path replaces the collection path of the entity type, e.g.
	// "projects/1/memberships" for the memberships of one project
	Path string
	// Query holds additional parameters (filters, include=..., offset, limit)
	Query url.Values
}

// resourcePaths maps entity types to their collection path. Types that only
// appear nested in other entities have no entry.
var resourcePaths = map[types.EntityType]string{
	types.EntityAttachment:        "attachments",
	types.EntityCustomField:       "custom_fields",
	types.EntityDocumentCategory:  "enumerations/document_categories",
	types.EntityFile:              "files",
	types.EntityGroup:             "groups",
	types.EntityIssue:             "issues",
	types.EntityIssueCategory:     "issue_categories",
	types.EntityIssuePriority:     "enumerations/issue_priorities",
	types.EntityIssueRelation:     "relations",
	types.EntityIssueStatus:       "issue_statuses",
	types.EntityMembership:        "memberships",
	types.EntityMyAccount:         "my/account",
	types.EntityNews:              "news",
	types.EntityProject:           "projects",
	types.EntityProjectMembership: "memberships",
	types.EntityQuery:             "queries",
	types.EntityRole:              "roles",
	types.EntitySearch:            "search",
	types.EntityTimeEntry:         "time_entries",
	types.EntityTimeEntryActivity: "enumerations/time_entry_activities",
	types.EntityTracker:           "trackers",
	types.EntityUpload:            "uploads",
	types.EntityUser:              "users",
	types.EntityVersion:           "versions",
	types.EntityWatcher:           "watchers",
	types.EntityWikiPage:          "wiki",
}

// singletons are resources without an id in the path
var singletons = map[types.EntityType]bool{
	types.EntityMyAccount: true,
}

// ResourcePath returns the collection path of t
func ResourcePath(t types.EntityType) (string, bool) {
	path, ok := resourcePaths[t]
	return path, ok
}

// collectionPath returns the path of the collection of t, without format suffix
func collectionPath(t types.EntityType, opts *RequestOptions) (string, error) {
	if opts != nil && opts.Path != "" {
		return strings.Trim(opts.Path, "/"), nil
	}
	path, ok := resourcePaths[t]
	if !ok {
		return "", fmt.Errorf("%w for %s", ErrNoResourcePath, t)
	}
	return path, nil
}

// entityPath returns the path of one entity of t, without format suffix
func entityPath(t types.EntityType, id string, opts *RequestOptions) (string, error) {
	path, err := collectionPath(t, opts)
	if err != nil {
		return "", err
	}
	if singletons[t] || id == "" {
		return path, nil
	}
	return path + "/" + url.PathEscape(id), nil
}

// withFormat appends the format suffix (.json or .xml) to a path
func withFormat(path, format string) string {
	return path + "." + format
}

// queryOf copies the query of opts so callers' values are never modified
func queryOf(opts *RequestOptions) url.Values {
	query := url.Values{}
	if opts != nil {
		for key, values := range opts.Query {
			query[key] = append([]string(nil), values...)
		}
	}
	return query
}
