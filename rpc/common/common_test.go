package common

import (
	"encoding/json"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() ClientConfig {
	c := DefaultClientConfig()
	c.BaseURL = "https://redmine.example.com"
	c.APIKey = "0123456789abcdef"
	return c
}

func TestClientConfigValidate(t *testing.T) {
	c := validConfig()
	assert.NoError(t, c.Validate())

	c = ClientConfig{Password: "secret", Format: "yaml", PageSize: 500, RetryCount: -1, LogLevel: "loud"}
	err := c.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	// base url, password, format, timeout, retries, page size, log level
	assert.Len(t, merr.Errors, 7)

	c = validConfig()
	c.BaseURL = "redmine.example.com"
	assert.ErrorContains(t, c.Validate(), "not an absolute url")
}

func TestClientConfigString(t *testing.T) {
	c := validConfig()
	c.ImpersonateUser = "jdoe"
	s := c.String()

	assert.Contains(t, s, "SERVER")
	assert.Contains(t, s, "https://redmine.example.com")
	assert.Contains(t, s, "************cdef")
	assert.NotContains(t, s, "0123456789abcdef")
	assert.Contains(t, s, "jdoe")
}

func TestMask(t *testing.T) {
	assert.Equal(t, "-", mask(""))
	assert.Equal(t, "****", mask("abc"))
	assert.Equal(t, "**cdef", mask("abcdef"))
}

func TestMethodJSON(t *testing.T) {
	for m := MethodGet; m <= MethodDelete; m++ {
		data, err := json.Marshal(m)
		require.NoError(t, err)

		var got Method
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, m, got)
	}

	var m Method
	assert.Error(t, json.Unmarshal([]byte(`"PATCH"`), &m))
	assert.Equal(t, "UNKNOWN", MethodUnknown.String())
}

func TestRequestFactories(t *testing.T) {
	get := NewGetRequest("issues.json", nil)
	assert.Equal(t, MethodGet, get.Method)

	post := NewPostRequest("issues.json", []byte("{}"), "application/json")
	assert.Equal(t, MethodPost, post.Method)
	assert.Equal(t, "application/json", post.ContentType)

	assert.Equal(t, MethodPut, NewPutRequest("issues/1.json", nil, "").Method)
	assert.Equal(t, MethodDelete, NewDeleteRequest("issues/1.json").Method)

	assert.True(t, (&Response{StatusCode: 204}).IsSuccess())
	assert.False(t, (&Response{StatusCode: 422}).IsSuccess())
}

func TestLoggers(t *testing.T) {
	l := GetLogger("test")
	assert.Same(t, l, GetLogger("test"))

	InitLoggers(ClientConfig{LogLevel: "debug"})
	assert.Equal(t, logrus.DebugLevel, l.(*redmineLogger).base.GetLevel())
	assert.Equal(t, logrus.DebugLevel, GetLogger("created-after-init").(*redmineLogger).base.GetLevel())

	InitLoggers(ClientConfig{LogLevel: "warn"})
	assert.Equal(t, logrus.WarnLevel, l.(*redmineLogger).base.GetLevel())

	assert.Panics(t, func() { parseLogLevel("verbose") })
	InitLoggers(ClientConfig{LogLevel: "info"})
}
