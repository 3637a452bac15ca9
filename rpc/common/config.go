package common

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Wire formats a client can talk
const (
	FormatXML  = "xml"
	FormatJSON = "json"
)

// Limits of the server side pagination
const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds all parameters needed to talk to a Redmine server
type ClientConfig struct {
	// BaseURL of the server, e.g. https://redmine.example.com
	BaseURL string

	// Authentication: either an API key or username/password (basic auth)
	APIKey   string
	Username string
	Password string

	// ImpersonateUser is the login sent as X-Redmine-Switch-User (admin keys only)
	ImpersonateUser string

	// Format is the wire format, "xml" or "json"
	Format string

	TimeoutSecond int
	RetryCount    int
	PageSize      int

	// Logging configuration
	LogLevel string

	UserAgent string
}

// DefaultClientConfig returns a configuration with every optional value set
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Format:        FormatJSON,
		TimeoutSecond: 30,
		RetryCount:    2,
		PageSize:      DefaultPageSize,
		LogLevel:      "info",
		UserAgent:     "redmine-go",
	}
}

// Validate checks the configuration and reports every problem at once
func (c *ClientConfig) Validate() error {
	var result *multierror.Error

	if c.BaseURL == "" {
		result = multierror.Append(result, fmt.Errorf("base url is required"))
	} else if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		result = multierror.Append(result, fmt.Errorf("base url %q is not an absolute url", c.BaseURL))
	}
	if c.Password != "" && c.Username == "" {
		result = multierror.Append(result, fmt.Errorf("password given without username"))
	}
	if c.Format != FormatXML && c.Format != FormatJSON {
		result = multierror.Append(result, fmt.Errorf("format must be %q or %q, got %q", FormatXML, FormatJSON, c.Format))
	}
	if c.TimeoutSecond <= 0 {
		result = multierror.Append(result, fmt.Errorf("timeout must be positive, got %d", c.TimeoutSecond))
	}
	if c.RetryCount < 0 {
		result = multierror.Append(result, fmt.Errorf("retry count must not be negative, got %d", c.RetryCount))
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		result = multierror.Append(result, fmt.Errorf("page size must be between 1 and %d, got %d", MaxPageSize, c.PageSize))
	}
	if !ValidLogLevel(c.LogLevel) {
		result = multierror.Append(result, fmt.Errorf("invalid log level %q", c.LogLevel))
	}

	return result.ErrorOrNil()
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// Server
	addSection("Server")
	addField("Base URL", c.BaseURL)
	addField("Format", c.Format)
	addField("User Agent", c.UserAgent)

	// Authentication
	addSection("Authentication")
	addField("API Key", mask(c.APIKey))
	addField("Username", c.Username)
	addField("Password", mask(c.Password))
	if c.ImpersonateUser != "" {
		addField("Impersonate User", c.ImpersonateUser)
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.RetryCount))
	addField("Page Size", strconv.Itoa(c.PageSize))

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// mask hides all but the last four characters of a secret
func mask(secret string) string {
	switch {
	case secret == "":
		return "-"
	case len(secret) <= 4:
		return "****"
	default:
		return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
	}
}
