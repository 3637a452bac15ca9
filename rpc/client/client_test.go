package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/lib/types/samples"
	"github.com/ValentinKolb/redmine/rpc/common"
	"github.com/ValentinKolb/redmine/rpc/serializer"
	"github.com/ValentinKolb/redmine/rpc/serializer/converters"
	httptransport "github.com/ValentinKolb/redmine/rpc/transport/http"
	"github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSerializers is a map of format name to serializer factory
var testSerializers = map[string]func() serializer.ISerializer{
	"XML":  func() serializer.ISerializer { return serializer.NewXMLSerializer() },
	"JSON": func() serializer.ISerializer { return serializer.NewJSONSerializer() },
}

const totalIssues = 5

// fakeRedmine answers a small subset of the Redmine REST API in both formats
type fakeRedmine struct {
	t        *testing.T
	requests atomic.Int32
	lastBody atomic.Value
}

func newFakeRedmine(t *testing.T) (*fakeRedmine, *httptest.Server) {
	f := &fakeRedmine{t: t}
	mux := http.NewServeMux()
	for _, ext := range []string{"json", "xml"} {
		mux.HandleFunc("GET /issues."+ext, f.listIssues)
		mux.HandleFunc("POST /issues."+ext, f.createIssue)
		mux.HandleFunc("GET /my/account."+ext, f.myAccount)
		mux.HandleFunc("POST /uploads."+ext, f.upload)
		mux.HandleFunc("GET /projects/1/memberships."+ext, f.memberships)
	}
	mux.HandleFunc("GET /issues/{file}", f.getIssue)
	mux.HandleFunc("PUT /issues/{file}", f.noContent)
	mux.HandleFunc("DELETE /issues/{file}", f.noContent)
	mux.HandleFunc("GET /users.json", f.forbidden)
	mux.HandleFunc("GET /attachments/download/5/log.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("log content"))
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	return f, server
}

// format returns the serializer matching the suffix of the request path
func format(r *http.Request) serializer.ISerializer {
	if strings.HasSuffix(r.URL.Path, ".xml") {
		return serializer.NewXMLSerializer()
	}
	return serializer.NewJSONSerializer()
}

func write[T any](f *fakeRedmine, w http.ResponseWriter, r *http.Request, status int, v *T) {
	s := format(r)
	data, err := serializer.Serialize(s, v)
	require.NoError(f.t, err)
	w.Header().Set("Content-Type", s.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (f *fakeRedmine) getIssue(w http.ResponseWriter, r *http.Request) {
	id, _, _ := strings.Cut(r.PathValue("file"), ".")
	if id != "380" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	write(f, w, r, http.StatusOK, samples.Issue())
}

func (f *fakeRedmine) listIssues(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	end := min(offset+limit, totalIssues)

	var sb strings.Builder
	if strings.HasSuffix(r.URL.Path, ".xml") {
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprintf(&sb, `<issues total_count="%d" offset="%d" limit="%d" type="array">`, totalIssues, offset, limit)
		for id := offset + 1; id <= end; id++ {
			fmt.Fprintf(&sb, `<issue><id>%d</id><subject>Issue %d</subject></issue>`, id, id)
		}
		sb.WriteString(`</issues>`)
	} else {
		w.Header().Set("Content-Type", "application/json")
		sb.WriteString(`{"issues":[`)
		for id := offset + 1; id <= end; id++ {
			if id > offset+1 {
				sb.WriteString(",")
			}
			fmt.Fprintf(&sb, `{"id":%d,"subject":"Issue %d"}`, id, id)
		}
		fmt.Fprintf(&sb, `],"total_count":%d,"offset":%d,"limit":%d}`, totalIssues, offset, limit)
	}
	_, _ = w.Write([]byte(sb.String()))
}

func (f *fakeRedmine) createIssue(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	issue, err := serializer.Deserialize[types.Issue](format(r), body)
	require.NoError(f.t, err)
	require.NotNil(f.t, issue)

	if issue.Subject == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"errors":["Subject cannot be blank"]}`))
		return
	}
	issue.ID = 1
	write(f, w, r, http.StatusCreated, issue)
}

func (f *fakeRedmine) noContent(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.lastBody.Store(string(body))
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeRedmine) myAccount(w http.ResponseWriter, r *http.Request) {
	write(f, w, r, http.StatusOK, samples.MyAccount())
}

func (f *fakeRedmine) upload(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	assert.Equal(f.t, "application/octet-stream", r.Header.Get("Content-Type"))
	assert.Equal(f.t, "file content", string(body))
	write(f, w, r, http.StatusCreated, &types.Upload{ID: 9, Token: "9.0123abcd"})
}

func (f *fakeRedmine) memberships(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"memberships":[{"id":1,"project":{"id":1,"name":"Redmine"},"user":{"id":5,"name":"Jane Doe"}}],"total_count":1}`))
}

func (f *fakeRedmine) forbidden(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("<html><body>Forbidden</body></html>"))
}

func newTestClient(t *testing.T, baseURL string, s serializer.ISerializer) *RedmineClient {
	t.Helper()
	config := common.DefaultClientConfig()
	config.BaseURL = baseURL
	config.APIKey = "0123456789abcdef"
	config.Format = s.Format()

	c, err := NewRedmineClient(config, httptransport.NewHttpClientTransport(), s)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// --------------------------------------------------------------------------
// Tests
// --------------------------------------------------------------------------

func TestGet(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			_, server := newFakeRedmine(t)
			c := newTestClient(t, server.URL, factory())

			issue, err := Get[types.Issue](context.Background(), c, "380", nil)
			require.NoError(t, err)
			assert.Equal(t, samples.Issue(), issue)

			_, err = Get[types.Issue](context.Background(), c, "999", nil)
			assert.ErrorIs(t, err, ErrNotFound)
			var rerr *RedmineError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, http.StatusNotFound, rerr.StatusCode)
			assert.Empty(t, rerr.Messages)

			account, err := Get[types.MyAccount](context.Background(), c, "", nil)
			require.NoError(t, err)
			assert.Equal(t, samples.MyAccount(), account)
		})
	}
}

func TestList(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			_, server := newFakeRedmine(t)
			c := newTestClient(t, server.URL, factory())

			opts := &RequestOptions{Query: url.Values{"offset": {"2"}, "limit": {"2"}}}
			page, err := List[types.Issue](context.Background(), c, opts)
			require.NoError(t, err)

			require.Len(t, page.Items, 2)
			assert.Equal(t, 3, page.Items[0].ID)
			assert.Equal(t, "Issue 4", page.Items[1].Subject)
			assert.Equal(t, totalIssues, page.TotalItems)
			assert.Equal(t, 2, page.CurrentPage())
			assert.True(t, page.HasMore())

			// caller options stay untouched
			assert.Equal(t, url.Values{"offset": {"2"}, "limit": {"2"}}, opts.Query)
		})
	}
}

func TestListAll(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			fake, server := newFakeRedmine(t)
			c := newTestClient(t, server.URL, factory())
			c.config.PageSize = 2

			issues, err := ListAll[types.Issue](context.Background(), c, nil)
			require.NoError(t, err)
			require.Len(t, issues, totalIssues)
			for i, issue := range issues {
				assert.Equal(t, i+1, issue.ID)
			}
			assert.Equal(t, int32(3), fake.requests.Load())
		})
	}
}

func TestCount(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			_, server := newFakeRedmine(t)
			c := newTestClient(t, server.URL, factory())

			count, err := Count[types.Issue](context.Background(), c, &RequestOptions{Query: url.Values{"limit": {"50"}}})
			require.NoError(t, err)
			assert.Equal(t, totalIssues, count)
		})
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			fake, server := newFakeRedmine(t)
			c := newTestClient(t, server.URL, factory())
			ctx := context.Background()

			created, err := Create(ctx, c, &types.Issue{Project: types.NewReference(1), Subject: "New issue"}, nil)
			require.NoError(t, err)
			assert.Equal(t, 1, created.ID)
			assert.Equal(t, "New issue", created.Subject)

			require.NoError(t, Update(ctx, c, "1", &types.Issue{Notes: "Fixed in r42"}, nil))
			assert.Contains(t, fake.lastBody.Load(), "Fixed in r42")

			require.NoError(t, Delete[types.Issue](ctx, c, "1", nil))
		})
	}
}

func TestCreateValidationError(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			_, server := newFakeRedmine(t)
			c := newTestClient(t, server.URL, factory())

			_, err := Create(context.Background(), c, &types.Issue{Project: types.NewReference(1)}, nil)
			assert.ErrorIs(t, err, ErrUnprocessable)
			assert.NotErrorIs(t, err, ErrNotFound)

			var rerr *RedmineError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, []string{"Subject cannot be blank"}, rerr.Messages)
			assert.Equal(t, "redmine: 422 Unprocessable Entity: Subject cannot be blank", rerr.Error())
		})
	}
}

func TestForbiddenHTML(t *testing.T) {
	_, server := newFakeRedmine(t)
	c := newTestClient(t, server.URL, serializer.NewJSONSerializer())

	_, err := List[types.User](context.Background(), c, nil)
	assert.ErrorIs(t, err, ErrForbidden)
	var rerr *RedmineError
	require.ErrorAs(t, err, &rerr)
	assert.Empty(t, rerr.Messages)
}

func TestNestedPath(t *testing.T) {
	_, server := newFakeRedmine(t)
	c := newTestClient(t, server.URL, serializer.NewJSONSerializer())

	page, err := List[types.ProjectMembership](context.Background(), c, &RequestOptions{Path: "/projects/1/memberships"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Jane Doe", page.Items[0].User.Name)
}

func TestNoResourcePath(t *testing.T) {
	c := newTestClient(t, "https://redmine.invalid", serializer.NewJSONSerializer())

	_, err := Get[types.Detail](context.Background(), c, "1", nil)
	assert.ErrorIs(t, err, ErrNoResourcePath)

	_, err = List[types.Journal](context.Background(), c, nil)
	assert.ErrorIs(t, err, ErrNoResourcePath)
}

func TestUploadDownload(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			_, server := newFakeRedmine(t)
			c := newTestClient(t, server.URL, factory())

			upload, err := Upload(context.Background(), c, []byte("file content"), "log.txt")
			require.NoError(t, err)
			assert.Equal(t, "9.0123abcd", upload.Token)
			assert.Equal(t, "log.txt", upload.FileName)

			data, err := Download(context.Background(), c, server.URL+"/attachments/download/5/log.txt")
			require.NoError(t, err)
			assert.Equal(t, "log content", string(data))

			data, err = Download(context.Background(), c, "attachments/download/5/log.txt")
			require.NoError(t, err)
			assert.Equal(t, "log content", string(data))
		})
	}
}

func TestMetrics(t *testing.T) {
	_, server := newFakeRedmine(t)
	c := newTestClient(t, server.URL, serializer.NewJSONSerializer())
	ctx := context.Background()

	_, err := Get[types.Issue](ctx, c, "380", nil)
	require.NoError(t, err)
	_, err = Get[types.Issue](ctx, c, "999", nil)
	require.Error(t, err)
	_, err = Create(ctx, c, &types.Issue{Subject: "Metrics"}, nil)
	require.NoError(t, err)

	timer, ok := c.Metrics().Get(MetricRequestPrefix + "get").(metrics.Timer)
	require.True(t, ok)
	assert.Equal(t, int64(2), timer.Count())

	meter, ok := c.Metrics().Get(MetricErrors).(metrics.Meter)
	require.True(t, ok)
	assert.Equal(t, int64(1), meter.Count())

	sent, ok := c.Metrics().Get(MetricRequestPayload).(metrics.Histogram)
	require.True(t, ok)
	assert.Equal(t, int64(1), sent.Count())

	received, ok := c.Metrics().Get(MetricResponsePayload).(metrics.Histogram)
	require.True(t, ok)
	assert.Equal(t, int64(3), received.Count())
}

// --------------------------------------------------------------------------
// Construction
// --------------------------------------------------------------------------

// fakeTransport fails or answers every request with a fixed result
type fakeTransport struct {
	connectErr error
	sendErr    error
	resp       *common.Response
	last       *common.Request
}

func (f *fakeTransport) Connect(common.ClientConfig) error { return f.connectErr }
func (f *fakeTransport) Close() error                      { return nil }
func (f *fakeTransport) Send(_ context.Context, req *common.Request) (*common.Response, error) {
	f.last = req
	return f.resp, f.sendErr
}

func TestNewRedmineClient(t *testing.T) {
	config := common.DefaultClientConfig()
	_, err := NewRedmineClient(config, &fakeTransport{}, serializer.NewJSONSerializer())
	assert.ErrorContains(t, err, "base url is required")

	config.BaseURL = "https://redmine.example.com"
	connectErr := errors.New("connection refused")
	_, err = NewRedmineClient(config, &fakeTransport{connectErr: connectErr}, serializer.NewJSONSerializer())
	assert.ErrorIs(t, err, connectErr)

	c, err := NewRedmineClient(config, &fakeTransport{}, serializer.NewXMLSerializer())
	require.NoError(t, err)
	assert.Equal(t, common.FormatXML, c.Config().Format)
	assert.Equal(t, "xml", c.Serializer().Format())
}

func TestTransportError(t *testing.T) {
	sendErr := errors.New("connection reset")
	ft := &fakeTransport{sendErr: sendErr}
	config := common.DefaultClientConfig()
	config.BaseURL = "https://redmine.example.com"
	c, err := NewRedmineClient(config, ft, serializer.NewJSONSerializer())
	require.NoError(t, err)

	_, err = Get[types.Project](context.Background(), c, "redmine", &RequestOptions{Query: url.Values{"include": {"trackers"}}})
	assert.ErrorIs(t, err, sendErr)
	assert.Equal(t, "projects/redmine.json", ft.last.Path)
	assert.Equal(t, "trackers", ft.last.Query.Get("include"))
}

func TestErrorPayloadFormats(t *testing.T) {
	d := newErrorDecoder(serializer.NewJSONSerializer())

	rerr := d.newRedmineError(&common.Response{
		StatusCode:  http.StatusUnprocessableEntity,
		ContentType: "application/xml; charset=utf-8",
		Body:        []byte(`<errors type="array"><error>Name is too long</error></errors>`),
	})
	assert.Equal(t, []string{"Name is too long"}, rerr.Messages)

	// no content type: the client format is used
	rerr = d.newRedmineError(&common.Response{
		StatusCode: http.StatusConflict,
		Body:       []byte(`{"errors":["Stale object"]}`),
	})
	assert.Equal(t, []string{"Stale object"}, rerr.Messages)
	assert.ErrorIs(t, rerr, ErrConflict)

	rerr = d.newRedmineError(&common.Response{StatusCode: http.StatusUnauthorized, Body: []byte("not json")})
	assert.Empty(t, rerr.Messages)
	assert.ErrorIs(t, rerr, ErrUnauthorized)
	assert.Equal(t, "redmine: 401 Unauthorized", rerr.Error())

	rerr = d.newRedmineError(&common.Response{
		StatusCode:  http.StatusInternalServerError,
		ContentType: "text/html",
		Body:        []byte(`<html><body>boom</body></html>`),
	})
	assert.Empty(t, rerr.Messages)
}

func TestErrorDecoderSerializers(t *testing.T) {
	reg := converters.NewRegistryOf(types.EntityIssue, types.EntityError)
	s := serializer.NewXMLSerializer(serializer.WithRegistry(reg))
	d := newErrorDecoder(s)

	// built once, shared registry
	assert.Same(t, s, d.serializerFor("application/xml"))
	assert.Same(t, s, d.serializerFor(""))
	jsonSerializer := d.serializerFor("application/json")
	require.NotNil(t, jsonSerializer)
	assert.Equal(t, common.FormatJSON, jsonSerializer.Format())
	assert.Same(t, jsonSerializer, d.serializerFor("application/json; charset=utf-8"))
	assert.Same(t, reg, jsonSerializer.Registry())
	assert.Nil(t, d.serializerFor("text/plain"))

	rerr := d.newRedmineError(&common.Response{
		StatusCode:  http.StatusUnprocessableEntity,
		ContentType: "application/json",
		Body:        []byte(`{"errors":["Subject cannot be blank"]}`),
	})
	assert.Equal(t, []string{"Subject cannot be blank"}, rerr.Messages)
}

func TestPaths(t *testing.T) {
	path, err := entityPath(types.EntityWikiPage, "Start Page", &RequestOptions{Path: "projects/redmine/wiki"})
	require.NoError(t, err)
	assert.Equal(t, "projects/redmine/wiki/Start%20Page", path)

	path, err = entityPath(types.EntityMyAccount, "5", nil)
	require.NoError(t, err)
	assert.Equal(t, "my/account", path)

	assert.Equal(t, "issues.xml", withFormat("issues", "xml"))

	p, ok := ResourcePath(types.EntityIssuePriority)
	assert.True(t, ok)
	assert.Equal(t, "enumerations/issue_priorities", p)
}
