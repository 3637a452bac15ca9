package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/rpc/common"
	"github.com/ValentinKolb/redmine/rpc/serializer"
)

// Sentinels matched by *RedmineError through errors.Is
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrUnprocessable = errors.New("unprocessable entity")
)

// ErrNoResourcePath is returned for entity types without a REST endpoint of their own
var ErrNoResourcePath = errors.New("no resource path")

// RedmineError is a non-2xx answer of the server. Messages holds the entries of
// the error payload ({"errors":[...]} or <errors>), if the server sent one.
type RedmineError struct {
	StatusCode int
	Messages   []string
}

func (e *RedmineError) Error() string {
	msg := fmt.Sprintf("redmine: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if len(e.Messages) > 0 {
		msg += ": " + strings.Join(e.Messages, "; ")
	}
	return msg
}

// Is maps the status code to the sentinel errors
func (e *RedmineError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrUnprocessable:
		return e.StatusCode == http.StatusUnprocessableEntity
	}
	return false
}

// errorDecoder reads error payloads in either wire format. Both serializers
// share the converter registry of the client serializer.
type errorDecoder struct {
	fallback serializer.ISerializer
	byFormat map[string]serializer.ISerializer
}

func newErrorDecoder(s serializer.ISerializer) *errorDecoder {
	d := &errorDecoder{
		fallback: s,
		byFormat: map[string]serializer.ISerializer{s.Format(): s},
	}
	for _, format := range []string{common.FormatXML, common.FormatJSON} {
		if _, ok := d.byFormat[format]; !ok {
			d.byFormat[format], _ = serializer.New(format, serializer.WithRegistry(s.Registry()))
		}
	}
	return d
}

// serializerFor picks the serializer announced by the response content type,
// the client serializer when there is none, and nil for other content types
func (d *errorDecoder) serializerFor(contentType string) serializer.ISerializer {
	switch {
	case strings.Contains(contentType, common.FormatXML):
		return d.byFormat[common.FormatXML]
	case strings.Contains(contentType, common.FormatJSON):
		return d.byFormat[common.FormatJSON]
	case contentType == "":
		return d.fallback
	}
	return nil
}

// newRedmineError decodes the error payload of resp. Bodies that are no error
// payload (html pages, empty bodies) leave Messages empty.
func (d *errorDecoder) newRedmineError(resp *common.Response) *RedmineError {
	rerr := &RedmineError{StatusCode: resp.StatusCode}
	if len(resp.Body) == 0 {
		return rerr
	}
	s := d.serializerFor(resp.ContentType)
	if s == nil {
		return rerr
	}

	page, err := serializer.DeserializeToPagedResults[types.Error](s, resp.Body)
	if err != nil {
		Logger.Debugf("response body of status %d is no error payload: %v", resp.StatusCode, err)
		return rerr
	}
	for _, e := range page.Items {
		rerr.Messages = append(rerr.Messages, e.Info)
	}
	return rerr
}
