package util

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/lib/types/samples"
	"github.com/ValentinKolb/redmine/rpc/client"
	"github.com/ValentinKolb/redmine/rpc/serializer"
	"github.com/ValentinKolb/redmine/rpc/serializer/converters"
)

// --------------------------------------------------------------------------
// Entity Handler
// --------------------------------------------------------------------------

// EntityHandler binds the generic codec and client operations to one entity type,
// so commands can dispatch on a type name given at runtime. Values are passed as
// any and are always *T or *types.PagedResults[T].
type EntityHandler struct {
	Type types.EntityType

	// Decode reads a single entity (nil for an empty document), DecodePage a list envelope
	Decode     func(s serializer.ISerializer, data []byte) (any, error)
	DecodePage func(s serializer.ISerializer, data []byte) (any, error)
	// Encode writes a single entity or a page
	Encode func(s serializer.ISerializer, v any) ([]byte, error)
	// Sample returns a fully populated example entity
	Sample func() any

	Get    func(ctx context.Context, c *client.RedmineClient, id string, opts *client.RequestOptions) (any, error)
	List   func(ctx context.Context, c *client.RedmineClient, opts *client.RequestOptions, all bool) (any, error)
	Count  func(ctx context.Context, c *client.RedmineClient, opts *client.RequestOptions) (int, error)
	Create func(ctx context.Context, c *client.RedmineClient, v any, opts *client.RequestOptions) (any, error)
	Update func(ctx context.Context, c *client.RedmineClient, id string, v any, opts *client.RequestOptions) error
	Delete func(ctx context.Context, c *client.RedmineClient, id string, opts *client.RequestOptions) error
}

// Name returns the type name of the handled entity
func (h *EntityHandler) Name() string {
	return h.Type.String()
}

func newEntityHandler[T any](sample func() *T) *EntityHandler {
	return &EntityHandler{
		Type: converters.TypeOf[T](),
		Decode: func(s serializer.ISerializer, data []byte) (any, error) {
			v, err := serializer.Deserialize[T](s, data)
			if err != nil || v == nil {
				return nil, err
			}
			return v, nil
		},
		DecodePage: func(s serializer.ISerializer, data []byte) (any, error) {
			return serializer.DeserializeToPagedResults[T](s, data)
		},
		Encode: func(s serializer.ISerializer, v any) ([]byte, error) {
			switch v := v.(type) {
			case *T:
				return serializer.Serialize(s, v)
			case *types.PagedResults[T]:
				return serializer.SerializePagedResults(s, v)
			default:
				return nil, fmt.Errorf("cannot encode %T as %s", v, converters.TypeOf[T]())
			}
		},
		Sample: func() any {
			return sample()
		},
		Get: func(ctx context.Context, c *client.RedmineClient, id string, opts *client.RequestOptions) (any, error) {
			return client.Get[T](ctx, c, id, opts)
		},
		List: func(ctx context.Context, c *client.RedmineClient, opts *client.RequestOptions, all bool) (any, error) {
			if !all {
				return client.List[T](ctx, c, opts)
			}
			items, err := client.ListAll[T](ctx, c, opts)
			if err != nil {
				return nil, err
			}
			return &types.PagedResults[T]{Items: items, TotalItems: len(items), Limit: len(items)}, nil
		},
		Count: func(ctx context.Context, c *client.RedmineClient, opts *client.RequestOptions) (int, error) {
			return client.Count[T](ctx, c, opts)
		},
		Create: func(ctx context.Context, c *client.RedmineClient, v any, opts *client.RequestOptions) (any, error) {
			entity, ok := v.(*T)
			if !ok {
				return nil, fmt.Errorf("cannot create %T as %s", v, converters.TypeOf[T]())
			}
			return client.Create(ctx, c, entity, opts)
		},
		Update: func(ctx context.Context, c *client.RedmineClient, id string, v any, opts *client.RequestOptions) error {
			entity, ok := v.(*T)
			if !ok {
				return fmt.Errorf("cannot update %T as %s", v, converters.TypeOf[T]())
			}
			return client.Update(ctx, c, id, entity, opts)
		},
		Delete: func(ctx context.Context, c *client.RedmineClient, id string, opts *client.RequestOptions) error {
			return client.Delete[T](ctx, c, id, opts)
		},
	}
}

// --------------------------------------------------------------------------
// Handler Table
// --------------------------------------------------------------------------

var entityHandlers = buildEntityHandlers()

func buildEntityHandlers() map[types.EntityType]*EntityHandler {
	all := []*EntityHandler{
		newEntityHandler(samples.Attachment),
		newEntityHandler(samples.ChangeSet),
		newEntityHandler(samples.CustomField),
		newEntityHandler(samples.CustomFieldPossibleValue),
		newEntityHandler(samples.CustomFieldRole),
		newEntityHandler(samples.CustomFieldValue),
		newEntityHandler(samples.Detail),
		newEntityHandler(samples.DocumentCategory),
		newEntityHandler(samples.Error),
		newEntityHandler(samples.File),
		newEntityHandler(samples.Group),
		newEntityHandler(samples.GroupUser),
		newEntityHandler(samples.IdentifiableName),
		newEntityHandler(samples.Issue),
		newEntityHandler(samples.IssueAllowedStatus),
		newEntityHandler(samples.IssueCategory),
		newEntityHandler(samples.IssueChild),
		newEntityHandler(samples.IssueCustomField),
		newEntityHandler(samples.IssuePriority),
		newEntityHandler(samples.IssueRelation),
		newEntityHandler(samples.IssueStatus),
		newEntityHandler(samples.Journal),
		newEntityHandler(samples.Membership),
		newEntityHandler(samples.MembershipRole),
		newEntityHandler(samples.MyAccount),
		newEntityHandler(samples.MyAccountCustomField),
		newEntityHandler(samples.News),
		newEntityHandler(samples.NewsComment),
		newEntityHandler(samples.Permission),
		newEntityHandler(samples.Project),
		newEntityHandler(samples.ProjectEnabledModule),
		newEntityHandler(samples.ProjectIssueCategory),
		newEntityHandler(samples.ProjectMembership),
		newEntityHandler(samples.ProjectTimeEntryActivity),
		newEntityHandler(samples.ProjectTracker),
		newEntityHandler(samples.Query),
		newEntityHandler(samples.Role),
		newEntityHandler(samples.Search),
		newEntityHandler(samples.TimeEntry),
		newEntityHandler(samples.TimeEntryActivity),
		newEntityHandler(samples.Tracker),
		newEntityHandler(samples.TrackerCoreField),
		newEntityHandler(samples.TrackerCustomField),
		newEntityHandler(samples.Upload),
		newEntityHandler(samples.User),
		newEntityHandler(samples.UserGroup),
		newEntityHandler(samples.Version),
		newEntityHandler(samples.Watcher),
		newEntityHandler(samples.WikiPage),
	}

	m := make(map[types.EntityType]*EntityHandler, len(all))
	for _, h := range all {
		m[h.Type] = h
	}
	return m
}

// Handler returns the handler of t
func Handler(t types.EntityType) (*EntityHandler, bool) {
	h, ok := entityHandlers[t]
	return h, ok
}

// LookupEntity resolves a type name given on the command line. It accepts the
// type name in any case ("Issue", "issue") and the collection path of the
// resource ("issues", "time_entries", "enumerations/issue_priorities").
func LookupEntity(name string) (*EntityHandler, error) {
	if t, ok := types.ParseEntityType(name); ok {
		if h, ok := entityHandlers[t]; ok {
			return h, nil
		}
	}

	for _, t := range types.EntityTypes() {
		if strings.EqualFold(t.String(), name) {
			if h, ok := entityHandlers[t]; ok {
				return h, nil
			}
		}
	}

	// entity types are visited in declaration order, the first type with the path wins
	for _, t := range types.EntityTypes() {
		if path, ok := client.ResourcePath(t); ok && path == strings.Trim(name, "/") {
			if h, ok := entityHandlers[t]; ok {
				return h, nil
			}
		}
	}

	return nil, fmt.Errorf("unknown entity type %q (see 'redmine types')", name)
}

// EntityNames returns the sorted names of all entity types the CLI can handle
func EntityNames() []string {
	names := make([]string, 0, len(entityHandlers))
	for _, h := range entityHandlers {
		names = append(names, h.Name())
	}
	sort.Strings(names)
	return names
}
