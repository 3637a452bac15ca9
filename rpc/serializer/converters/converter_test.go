package converters

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/lib/types/samples"
	"github.com/ValentinKolb/redmine/rpc/serializer/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWriters = map[string]func() wire.IWriter{
	wire.FormatXML:  func() wire.IWriter { return wire.NewXMLWriter(wire.WriterOptions{}) },
	wire.FormatJSON: func() wire.IWriter { return wire.NewJSONWriter(wire.WriterOptions{}) },
}

var testReaders = map[string]func([]byte) wire.IReader{
	wire.FormatXML:  wire.NewXMLReader,
	wire.FormatJSON: wire.NewJSONReader,
}

// roundTrip writes v with its converter, reads it back and compares
func roundTrip[T any](v *T) func(t *testing.T, format string) {
	return func(t *testing.T, format string) {
		conv, err := Lookup[T](NewRegistry())
		require.NoError(t, err)

		w := testWriters[format]()
		require.NoError(t, conv.Write(w, "", v))
		data, err := w.Bytes()
		require.NoError(t, err)

		r := testReaders[format](data)
		require.NoError(t, r.Root(conv.Key().Singular))
		got, err := conv.Read(r)
		require.NoError(t, err)
		assert.Equal(t, v, got, string(data))
	}
}

var roundTrips = map[types.EntityType]func(t *testing.T, format string){
	types.EntityAttachment:               roundTrip(samples.Attachment()),
	types.EntityChangeSet:                roundTrip(samples.ChangeSet()),
	types.EntityCustomField:              roundTrip(samples.CustomField()),
	types.EntityCustomFieldPossibleValue: roundTrip(samples.CustomFieldPossibleValue()),
	types.EntityCustomFieldRole:          roundTrip(samples.CustomFieldRole()),
	types.EntityCustomFieldValue:         roundTrip(samples.CustomFieldValue()),
	types.EntityDetail:                   roundTrip(samples.Detail()),
	types.EntityDocumentCategory:         roundTrip(samples.DocumentCategory()),
	types.EntityError:                    roundTrip(samples.Error()),
	types.EntityFile:                     roundTrip(samples.File()),
	types.EntityGroup:                    roundTrip(samples.Group()),
	types.EntityGroupUser:                roundTrip(samples.GroupUser()),
	types.EntityIdentifiableName:         roundTrip(samples.IdentifiableName()),
	types.EntityIssue:                    roundTrip(samples.Issue()),
	types.EntityIssueAllowedStatus:       roundTrip(samples.IssueAllowedStatus()),
	types.EntityIssueCategory:            roundTrip(samples.IssueCategory()),
	types.EntityIssueChild:               roundTrip(samples.IssueChild()),
	types.EntityIssueCustomField:         roundTrip(samples.IssueCustomField()),
	types.EntityIssuePriority:            roundTrip(samples.IssuePriority()),
	types.EntityIssueRelation:            roundTrip(samples.IssueRelation()),
	types.EntityIssueStatus:              roundTrip(samples.IssueStatus()),
	types.EntityJournal:                  roundTrip(samples.Journal()),
	types.EntityMembership:               roundTrip(samples.Membership()),
	types.EntityMembershipRole:           roundTrip(samples.MembershipRole()),
	types.EntityMyAccount:                roundTrip(samples.MyAccount()),
	types.EntityMyAccountCustomField:     roundTrip(samples.MyAccountCustomField()),
	types.EntityNews:                     roundTrip(samples.News()),
	types.EntityNewsComment:              roundTrip(samples.NewsComment()),
	types.EntityPermission:               roundTrip(samples.Permission()),
	types.EntityProject:                  roundTrip(samples.Project()),
	types.EntityProjectEnabledModule:     roundTrip(samples.ProjectEnabledModule()),
	types.EntityProjectIssueCategory:     roundTrip(samples.ProjectIssueCategory()),
	types.EntityProjectMembership:        roundTrip(samples.ProjectMembership()),
	types.EntityProjectTimeEntryActivity: roundTrip(samples.ProjectTimeEntryActivity()),
	types.EntityProjectTracker:           roundTrip(samples.ProjectTracker()),
	types.EntityQuery:                    roundTrip(samples.Query()),
	types.EntityRole:                     roundTrip(samples.Role()),
	types.EntitySearch:                   roundTrip(samples.Search()),
	types.EntityTimeEntry:                roundTrip(samples.TimeEntry()),
	types.EntityTimeEntryActivity:        roundTrip(samples.TimeEntryActivity()),
	types.EntityTracker:                  roundTrip(samples.Tracker()),
	types.EntityTrackerCoreField:         roundTrip(samples.TrackerCoreField()),
	types.EntityTrackerCustomField:       roundTrip(samples.TrackerCustomField()),
	types.EntityUpload:                   roundTrip(samples.Upload()),
	types.EntityUser:                     roundTrip(samples.User()),
	types.EntityUserGroup:                roundTrip(samples.UserGroup()),
	types.EntityVersion:                  roundTrip(samples.Version()),
	types.EntityWatcher:                  roundTrip(samples.Watcher()),
	types.EntityWikiPage:                 roundTrip(samples.WikiPage()),
}

func TestRoundTrip(t *testing.T) {
	for _, typ := range types.EntityTypes() {
		run, ok := roundTrips[typ]
		if !assert.True(t, ok, "no round trip case for %s", typ) {
			continue
		}
		for format := range testWriters {
			t.Run(typ.String()+"/"+format, func(t *testing.T) {
				run(t, format)
			})
		}
	}
}

// read reads one T from a literal document
func read[T any](t *testing.T, format, doc string) *T {
	t.Helper()
	conv, err := Lookup[T](NewRegistry())
	require.NoError(t, err)
	r := testReaders[format]([]byte(doc))
	require.NoError(t, r.Root(conv.Key().Singular))
	v, err := conv.Read(r)
	require.NoError(t, err)
	return v
}

func TestReadIssueExample(t *testing.T) {
	doc := `{"issue":{"id":5,"subject":"#380","status":{"id":1,"name":"New","is_closed":true},
		"watchers":[{"id":91,"name":"Normal User"},{"id":90,"name":"Admin User"}]}}`

	issue := read[types.Issue](t, wire.FormatJSON, doc)
	require.NotNil(t, issue)
	assert.Equal(t, 5, issue.ID)
	assert.Equal(t, "#380", issue.Subject)
	require.NotNil(t, issue.Status)
	assert.True(t, issue.Status.IsClosed)
	assert.Equal(t, []types.Watcher{{ID: 91, Name: "Normal User"}, {ID: 90, Name: "Admin User"}}, issue.Watchers)
}

func TestReadIssueXML(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<issue>
  <id>4326</id>
  <project name="Redmine" id="1"/>
  <tracker name="Feature" id="2"/>
  <status name="New" id="1" is_closed="false"/>
  <parent id="4300"/>
  <subject>Aggregate Multiple Issue Changes for Email Notifications</subject>
  <start_date>2009-12-03</start_date>
  <due_date></due_date>
  <done_ratio>0</done_ratio>
  <estimated_hours></estimated_hours>
  <custom_fields type="array">
    <custom_field name="Resolution" id="2"><value>Duplicate</value></custom_field>
    <custom_field name="Platforms" id="3" multiple="true">
      <value type="array"><value>Linux</value><value>Mac</value></value>
    </custom_field>
  </custom_fields>
  <created_on>2009-12-03T15:02:12+01:00</created_on>
  <journals type="array">
    <journal id="1">
      <user name="Jean-Philippe Lang" id="1"/>
      <notes>Fixed</notes>
      <created_on>2009-12-03 14:02:12 UTC</created_on>
      <details type="array">
        <detail property="attr" name="status_id"><old_value>1</old_value><new_value>5</new_value></detail>
      </details>
    </journal>
  </journals>
</issue>`

	issue := read[types.Issue](t, wire.FormatXML, doc)
	require.NotNil(t, issue)
	assert.Equal(t, 4326, issue.ID)
	assert.Equal(t, types.NewIdentifiableName(1, "Redmine"), issue.Project)
	assert.Equal(t, types.NewReference(4300), issue.Parent)
	assert.Equal(t, &types.IssueStatus{ID: 1, Name: "New"}, issue.Status)
	assert.Equal(t, "2009-12-03", issue.StartDate.Format(wire.DateLayout))
	assert.Nil(t, issue.DueDate)
	require.NotNil(t, issue.DoneRatio)
	assert.Equal(t, 0, *issue.DoneRatio)
	assert.Nil(t, issue.EstimatedHours)

	require.Len(t, issue.CustomFields, 2)
	assert.Equal(t, []types.CustomFieldValue{{Info: "Duplicate"}}, issue.CustomFields[0].Values)
	assert.True(t, issue.CustomFields[1].Multiple)
	assert.Equal(t, []types.CustomFieldValue{{Info: "Linux"}, {Info: "Mac"}}, issue.CustomFields[1].Values)

	want := time.Date(2009, 12, 3, 14, 2, 12, 0, time.UTC)
	assert.True(t, want.Equal(*issue.CreatedOn))
	require.Len(t, issue.Journals, 1)
	assert.True(t, want.Equal(*issue.Journals[0].CreatedOn))
	assert.Equal(t, []types.Detail{{Property: "attr", Name: "status_id", OldValue: "1", NewValue: "5"}}, issue.Journals[0].Details)
}

func TestCustomFieldValueShapes(t *testing.T) {
	cases := []struct {
		format string
		doc    string
		want   []types.CustomFieldValue
	}{
		{wire.FormatJSON, `{"custom_field":{"id":1,"value":"x"}}`, []types.CustomFieldValue{{Info: "x"}}},
		{wire.FormatJSON, `{"custom_field":{"id":1,"value":["x","y"]}}`, []types.CustomFieldValue{{Info: "x"}, {Info: "y"}}},
		{wire.FormatJSON, `{"custom_field":{"id":1,"value":[]}}`, nil},
		{wire.FormatJSON, `{"custom_field":{"id":1,"value":null}}`, nil},
		{wire.FormatJSON, `{"custom_field":{"id":1}}`, nil},
		{wire.FormatXML, `<custom_field id="1"><value>x</value></custom_field>`, []types.CustomFieldValue{{Info: "x"}}},
		{wire.FormatXML, `<custom_field id="1"><value type="array"><value>x</value><value>y</value></value></custom_field>`, []types.CustomFieldValue{{Info: "x"}, {Info: "y"}}},
		{wire.FormatXML, `<custom_field id="1"><value type="array"></value></custom_field>`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.format+" "+tc.doc, func(t *testing.T) {
			cf := read[types.IssueCustomField](t, tc.format, tc.doc)
			require.NotNil(t, cf)
			assert.Equal(t, 1, cf.ID)
			assert.Equal(t, tc.want, cf.Values)
		})
	}
}

func TestWriteCustomFieldShapes(t *testing.T) {
	write := func(cf *types.IssueCustomField) string {
		w := testWriters[wire.FormatJSON]()
		writeIssueCustomField(w, "custom_field", cf)
		data, err := w.Bytes()
		require.NoError(t, err)
		return string(data)
	}

	assert.Equal(t, `{"custom_field":{"id":1,"value":"x"}}`,
		write(&types.IssueCustomField{ID: 1, Values: []types.CustomFieldValue{{Info: "x"}}}))
	assert.Equal(t, `{"custom_field":{"id":1,"value":["x","y"]}}`,
		write(&types.IssueCustomField{ID: 1, Values: []types.CustomFieldValue{{Info: "x"}, {Info: "y"}}}))
	assert.Equal(t, `{"custom_field":{"id":1,"multiple":true,"value":["x"]}}`,
		write(&types.IssueCustomField{ID: 1, Multiple: true, Values: []types.CustomFieldValue{{Info: "x"}}}))
	assert.Equal(t, `{"custom_field":{"id":1}}`,
		write(&types.IssueCustomField{ID: 1}))
}

func TestLeniency(t *testing.T) {
	docs := map[string]string{
		wire.FormatJSON: `{"issue":{"id":"","done_ratio":null,"start_date":"","due_date":"not a date",
			"estimated_hours":"abc","is_private":"maybe","project":null,"custom_fields":null}}`,
		wire.FormatXML: `<issue><id></id><done_ratio/><start_date></start_date><due_date>not a date</due_date>
			<estimated_hours>abc</estimated_hours><is_private>maybe</is_private><project nil="true"/></issue>`,
	}
	for format, doc := range docs {
		t.Run(format, func(t *testing.T) {
			issue := read[types.Issue](t, format, doc)
			require.NotNil(t, issue)
			assert.Equal(t, &types.Issue{}, issue)
		})
	}
}

func TestUnknownFieldsAreIgnored(t *testing.T) {
	docs := map[string]string{
		wire.FormatJSON: `{"project":{"id":1,"future":{"nested":[1,{"a":[]}]},"name":"p","flags":[true,false]}}`,
		wire.FormatXML:  `<project><id>1</id><future><nested type="array"><a/><b>x</b></nested></future><name>p</name></project>`,
	}
	for format, doc := range docs {
		t.Run(format, func(t *testing.T) {
			project := read[types.Project](t, format, doc)
			require.NotNil(t, project)
			assert.Equal(t, &types.Project{ID: 1, Name: "p"}, project)
		})
	}
}

func TestNullItemsAreDropped(t *testing.T) {
	issue := read[types.Issue](t, wire.FormatJSON, `{"issue":{"watchers":[null,{"id":1}],"journals":{"id":2}}}`)
	require.NotNil(t, issue)
	assert.Equal(t, []types.Watcher{{ID: 1}}, issue.Watchers)
	require.Len(t, issue.Journals, 1)
	assert.Equal(t, 2, issue.Journals[0].ID)
}

func TestXMLAttributeConventions(t *testing.T) {
	conv, err := Lookup[types.Issue](NewRegistry())
	require.NoError(t, err)

	w := testWriters[wire.FormatXML]()
	require.NoError(t, conv.Write(w, "", samples.Issue()))
	data, err := w.Bytes()
	require.NoError(t, err)
	doc := string(data)

	for _, fragment := range []string{
		`<issue><id>380</id>`,
		`<project id="1" name="Redmine"></project>`,
		`<status id="2" name="In Progress"></status>`,
		`<parent id="377"></parent>`,
		`<custom_field id="2" name="Platforms" multiple="true"><value type="array"><value>Linux</value><value>Windows</value></value></custom_field>`,
		`<journal id="1044">`,
		`<detail property="attr" name="status_id">`,
		`<changeset revision="a1b2c3d">`,
		`<watchers type="array"><user id="91" name="Normal User"></user>`,
		`<allowed_statuses type="array"><status id="1" name="New" is_closed="false"></status>`,
		`<watcher_user_ids type="array"><watcher_user_id>91</watcher_user_id><watcher_user_id>90</watcher_user_id></watcher_user_ids>`,
		`<assigned_to_id>5</assigned_to_id>`,
		`<start_date>2024-02-15</start_date>`,
		`<created_on>2024-02-12T09:30:15Z</created_on>`,
	} {
		assert.Contains(t, doc, fragment)
	}
}

func TestWriteClearsOptionalAssociations(t *testing.T) {
	conv, err := Lookup[types.Issue](NewRegistry())
	require.NoError(t, err)

	w := testWriters[wire.FormatJSON]()
	require.NoError(t, conv.Write(w, "", &types.Issue{Subject: "s"}))
	data, err := w.Bytes()
	require.NoError(t, err)

	doc := string(data)
	assert.True(t, strings.HasPrefix(doc, `{"issue":{"subject":"s",`), doc)
	assert.Contains(t, doc, `"start_date":""`)
	assert.Contains(t, doc, `"assigned_to_id":""`)
	assert.Contains(t, doc, `"is_private":false`)
	assert.NotContains(t, doc, `"id"`)
	assert.NotContains(t, doc, `"watchers"`)
}

func TestWriteNil(t *testing.T) {
	conv, err := Lookup[types.Project](NewRegistry())
	require.NoError(t, err)
	assert.ErrorIs(t, conv.Write(testWriters[wire.FormatJSON](), "", nil), ErrNilEntity)
}

func TestRegistry(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		reg := NewRegistry()
		assert.Equal(t, types.EntityTypes(), reg.Types())
		for _, typ := range types.EntityTypes() {
			key, ok := reg.Key(typ)
			assert.True(t, ok, typ.String())
			assert.NotEmpty(t, key.Singular, typ.String())
			assert.NotEmpty(t, key.Plural, typ.String())
		}
	})

	t.Run("restricted", func(t *testing.T) {
		reg := NewRegistryOf(types.EntityProject, types.EntityUnknown)
		assert.Equal(t, []types.EntityType{types.EntityProject}, reg.Types())
		assert.True(t, reg.Has(types.EntityProject))
		assert.False(t, reg.Has(types.EntityIssue))

		_, err := Lookup[types.Project](reg)
		assert.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err = Lookup[types.Issue](reg)
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "Issue", cfgErr.Type)
			assert.ErrorIs(t, err, ErrNoConverter)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := Lookup[time.Time](NewRegistry())
		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "time.Time", cfgErr.Type)

		_, err = Lookup[types.Issue](nil)
		assert.ErrorIs(t, err, ErrNoConverter)
	})

	t.Run("keys", func(t *testing.T) {
		news, err := Lookup[types.News](NewRegistry())
		require.NoError(t, err)
		assert.Equal(t, Key{Singular: "news", Plural: "news"}, news.Key())

		watcher, err := Lookup[types.Watcher](NewRegistry())
		require.NoError(t, err)
		assert.Equal(t, Key{Singular: "user", Plural: "watchers"}, watcher.Key())
		assert.Equal(t, types.EntityWatcher, watcher.Type())
	})
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, types.EntityIssue, TypeOf[types.Issue]())
	assert.Equal(t, types.EntityWatcher, TypeOf[types.Watcher]())
	assert.Equal(t, types.EntityIdentifiableName, TypeOf[types.IdentifiableName]())
	assert.Equal(t, types.EntityUnknown, TypeOf[*types.Issue]())
	assert.Equal(t, types.EntityUnknown, TypeOf[string]())

	// every registered converter is reachable through its tag
	reg := NewRegistry()
	for _, typ := range types.EntityTypes() {
		c, ok := reg.lookup(typ)
		require.True(t, ok)
		assert.Equal(t, typ, c.(interface{ Type() types.EntityType }).Type())
	}
}

func BenchmarkIssue(b *testing.B) {
	conv, _ := Lookup[types.Issue](NewRegistry())
	issue := samples.Issue()
	for format, newWriter := range testWriters {
		b.Run("Write/"+format, func(b *testing.B) {
			var size int
			for i := 0; i < b.N; i++ {
				w := newWriter()
				_ = conv.Write(w, "", issue)
				data, _ := w.Bytes()
				size = len(data)
			}
			b.ReportMetric(float64(size), "bytes")
		})

		w := newWriter()
		_ = conv.Write(w, "", issue)
		data, _ := w.Bytes()
		b.Run("Read/"+format, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				r := testReaders[format](data)
				_ = r.Root("issue")
				_, _ = conv.Read(r)
			}
		})
	}
}
