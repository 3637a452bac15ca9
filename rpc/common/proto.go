package common

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// --------------------------------------------------------------------------
// Request / Response Structure
// --------------------------------------------------------------------------

// Request is a single call to the REST API. Path is relative to the base url and
// already carries the format suffix (e.g. "issues/1.json").
type Request struct {
	Method      Method     `json:"method"`
	Path        string     `json:"path"`
	Query       url.Values `json:"query,omitempty"`
	Body        []byte     `json:"body,omitempty"`
	ContentType string     `json:"content_type,omitempty"`
}

// Response is the raw answer of the server. Non-2xx answers are responses too,
// interpreting them is up to the caller.
type Response struct {
	StatusCode  int    `json:"status_code"`
	Body        []byte `json:"body,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// IsSuccess reports a 2xx status code
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// --------------------------------------------------------------------------
// Request Factory Functions
// --------------------------------------------------------------------------

// NewGetRequest creates a new GET request
func NewGetRequest(path string, query url.Values) *Request {
	return &Request{
		Method: MethodGet,
		Path:   path,
		Query:  query,
	}
}

// NewPostRequest creates a new POST request with a body
func NewPostRequest(path string, body []byte, contentType string) *Request {
	return &Request{
		Method:      MethodPost,
		Path:        path,
		Body:        body,
		ContentType: contentType,
	}
}

// NewPutRequest creates a new PUT request with a body
func NewPutRequest(path string, body []byte, contentType string) *Request {
	return &Request{
		Method:      MethodPut,
		Path:        path,
		Body:        body,
		ContentType: contentType,
	}
}

// NewDeleteRequest creates a new DELETE request
func NewDeleteRequest(path string) *Request {
	return &Request{
		Method: MethodDelete,
		Path:   path,
	}
}

// --------------------------------------------------------------------------
// Method Definition
// --------------------------------------------------------------------------

// Method is the HTTP verb of a request
type Method uint8

// String returns the string representation of a Method.
func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	case MethodPut:
		return "PUT"
	case MethodDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON implements the json.Marshaller interface for Method.
// This allows Method to be serialized as a string in JSON.
func (m Method) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for Method.
func (m *Method) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "GET":
		*m = MethodGet
	case "POST":
		*m = MethodPost
	case "PUT":
		*m = MethodPut
	case "DELETE":
		*m = MethodDelete
	default:
		return fmt.Errorf("unknown method: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Method Constants
// --------------------------------------------------------------------------

const (
	MethodUnknown Method = iota
	MethodGet
	MethodPost
	MethodPut
	MethodDelete
)
