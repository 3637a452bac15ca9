package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it printed
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	defer RootCmd.SetArgs(nil)

	err := RootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "redmine v"+Version+"\n", out)
}

func TestTypesCommand(t *testing.T) {
	out, err := execute(t, "types")
	require.NoError(t, err)
	assert.Contains(t, out, "TYPE")
	assert.Regexp(t, `Issue\s+issues`, out)
	assert.Regexp(t, `MyAccount\s+my/account`, out)
}

func TestResourceCommands(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /issues/380.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Redmine-API-Key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"issue":{"id":380,"subject":"Crash on save"}}`))
	})
	mux.HandleFunc("GET /issues.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("status_id") == "open" {
			_, _ = w.Write([]byte(`{"issues":[{"id":380}],"total_count":17,"offset":0,"limit":1}`))
			return
		}
		_, _ = w.Write([]byte(`{"issues":[],"total_count":0,"offset":0,"limit":1}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	connection := []string{"--base-url", srv.URL, "--api-key", "secret", "--log-level", "error"}

	t.Run("Get", func(t *testing.T) {
		out, err := execute(t, append([]string{"resource", "get", "issue", "380", "--output", "yaml"}, connection...)...)
		require.NoError(t, err)
		assert.Contains(t, out, "subject: Crash on save")
		assert.Contains(t, out, "id: 380")
	})

	t.Run("Count", func(t *testing.T) {
		out, err := execute(t, append([]string{"resource", "count", "issues", "--query", "status_id=open"}, connection...)...)
		require.NoError(t, err)
		assert.Equal(t, "17\n", out)
	})

	t.Run("InvalidQuery", func(t *testing.T) {
		_, err := execute(t, append([]string{"resource", "count", "issues", "--query", "status_id"}, connection...)...)
		assert.ErrorContains(t, err, "expected key=value")
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, err := execute(t, append([]string{"resource", "get", "tickets", "1"}, connection...)...)
		assert.ErrorContains(t, err, "unknown entity type")
	})
}
