package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ValentinKolb/redmine/rpc/common"
	"github.com/ValentinKolb/redmine/rpc/transport"
	"github.com/pkg/errors"
)

var Logger = common.GetLogger("transport")

// Headers understood by Redmine
const (
	HeaderAPIKey     = "X-Redmine-API-Key"
	HeaderSwitchUser = "X-Redmine-Switch-User"
)

func NewHttpClientTransport() transport.IClientTransport {
	return &httpClientTransport{}
}

// NewHttpClientTransportWithClient uses the given http.Client instead of creating one
func NewHttpClientTransportWithClient(client *http.Client) transport.IClientTransport {
	return &httpClientTransport{client: client, external: true}
}

type httpClientTransport struct {
	baseURL  *url.URL
	client   *http.Client
	external bool
	config   common.ClientConfig
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientTransport)
// --------------------------------------------------------------------------

func (t *httpClientTransport) Connect(config common.ClientConfig) error {
	baseURL, err := url.Parse(strings.TrimRight(config.BaseURL, "/"))
	if err != nil {
		return errors.Wrapf(err, "invalid base url %q", config.BaseURL)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return errors.Errorf("base url %q is not absolute", config.BaseURL)
	}

	if !t.external {
		t.client = &http.Client{
			Timeout: time.Duration(config.TimeoutSecond) * time.Second,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	t.baseURL = baseURL
	t.config = config
	Logger.Debugf("http transport connected to %s", baseURL)
	return nil
}

func (t *httpClientTransport) Send(ctx context.Context, req *common.Request) (*common.Response, error) {
	if t.client == nil || t.baseURL == nil {
		return nil, errors.New("http transport not initialized")
	}

	target, err := t.resolve(req)
	if err != nil {
		return nil, err
	}

	// Send the request (with retries). The body reader is rebuilt for every attempt.
	var httpResponse *http.Response
	attempts := max(t.config.RetryCount, 0) + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = ctx.Err(); err != nil {
			break
		}

		var httpRequest *http.Request
		httpRequest, err = t.newRequest(ctx, req, target)
		if err != nil {
			return nil, err
		}

		httpResponse, err = t.client.Do(httpRequest)
		if err == nil {
			break
		}
		Logger.Warningf("%s %s failed (attempt %d/%d): %v", req.Method, req.Path, attempt, attempts, err)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", req.Method, req.Path)
	}
	defer func() {
		if err := httpResponse.Body.Close(); err != nil {
			Logger.Errorf("Failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read response of %s %s", req.Method, req.Path)
	}

	Logger.Debugf("%s %s -> %d (%d bytes)", req.Method, req.Path, httpResponse.StatusCode, len(body))
	return &common.Response{
		StatusCode:  httpResponse.StatusCode,
		Body:        body,
		ContentType: httpResponse.Header.Get("Content-Type"),
	}, nil
}

func (t *httpClientTransport) Close() error {
	if t.client != nil && !t.external {
		t.client.CloseIdleConnections()
		t.client = nil
	}
	t.baseURL = nil
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// resolve builds the absolute url of a request. Absolute paths (attachment
// content urls) are used as they are.
func (t *httpClientTransport) resolve(req *common.Request) (string, error) {
	var u *url.URL
	var err error
	if strings.HasPrefix(req.Path, "http://") || strings.HasPrefix(req.Path, "https://") {
		u, err = url.Parse(req.Path)
	} else {
		u, err = url.Parse(t.baseURL.String() + "/" + strings.TrimLeft(req.Path, "/"))
	}
	if err != nil {
		return "", errors.Wrapf(err, "invalid request path %q", req.Path)
	}

	if len(req.Query) > 0 {
		query := u.Query()
		for key, values := range req.Query {
			query[key] = values
		}
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// newRequest creates the http request with authentication and content headers
func (t *httpClientTransport) newRequest(ctx context.Context, req *common.Request, target string) (*http.Request, error) {
	if req.Method == common.MethodUnknown {
		return nil, errors.Errorf("unsupported method %s", req.Method)
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, req.Method.String(), target, body)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	h := httpRequest.Header
	if req.ContentType != "" && req.Body != nil {
		h.Set("Content-Type", req.ContentType)
	}
	switch t.config.Format {
	case common.FormatXML:
		h.Set("Accept", "application/xml")
	case common.FormatJSON:
		h.Set("Accept", "application/json")
	}
	if t.config.APIKey != "" {
		h.Set(HeaderAPIKey, t.config.APIKey)
	}
	if t.config.Username != "" {
		httpRequest.SetBasicAuth(t.config.Username, t.config.Password)
	}
	if t.config.ImpersonateUser != "" {
		h.Set(HeaderSwitchUser, t.config.ImpersonateUser)
	}
	if t.config.UserAgent != "" {
		h.Set("User-Agent", t.config.UserAgent)
	}
	return httpRequest, nil
}
