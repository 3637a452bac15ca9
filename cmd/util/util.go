package util

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/redmine/rpc/common"
	"github.com/ValentinKolb/redmine/rpc/serializer"
	"github.com/ValentinKolb/redmine/rpc/transport"
	"github.com/ValentinKolb/redmine/rpc/transport/http"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupClientFlags adds the connection flags of the Redmine client to a command
func SetupClientFlags(cmd *cobra.Command) {
	defaults := common.DefaultClientConfig()

	key := "base-url"
	cmd.PersistentFlags().String(key, "http://localhost:3000", WrapString("The base url of the Redmine server"))

	key = "api-key"
	cmd.PersistentFlags().String(key, "", WrapString("The API key of the user (sent as X-Redmine-API-Key)"))

	key = "username"
	cmd.PersistentFlags().String(key, "", WrapString("Login for basic authentication, used instead of an API key"))

	key = "password"
	cmd.PersistentFlags().String(key, "", WrapString("Password for basic authentication"))

	key = "impersonate"
	cmd.PersistentFlags().String(key, "", WrapString("Login of the user to act as (requires an admin API key)"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, defaults.TimeoutSecond, WrapString("The timeout in seconds of a single request"))

	key = "retries"
	cmd.PersistentFlags().Int(key, defaults.RetryCount, WrapString("How many times to retry a request that got no answer"))

	key = "page-size"
	cmd.PersistentFlags().Int(key, defaults.PageSize, WrapString(fmt.Sprintf("Items per page for list requests (at most %d)", common.MaxPageSize)))

	key = "user-agent"
	cmd.PersistentFlags().String(key, defaults.UserAgent, WrapString("The User-Agent header sent with every request"))
}

// SetupFormatFlags adds the flags that control wire format and logging. They are
// registered on the root command and shared by every subcommand.
func SetupFormatFlags(cmd *cobra.Command) {
	key := "format"
	cmd.PersistentFlags().String(key, common.FormatJSON, WrapString("Wire format to talk and print (json, xml)"))

	key = "output"
	cmd.PersistentFlags().String(key, "", WrapString("Print results as yaml instead of the wire format (yaml)"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "warn", WrapString("Log level (debug, info, warn, error)"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("redmine")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	conf := &common.ClientConfig{
		BaseURL:         viper.GetString("base-url"),
		APIKey:          viper.GetString("api-key"),
		Username:        viper.GetString("username"),
		Password:        viper.GetString("password"),
		ImpersonateUser: viper.GetString("impersonate"),
		Format:          viper.GetString("format"),
		TimeoutSecond:   viper.GetInt("timeout"),
		RetryCount:      viper.GetInt("retries"),
		PageSize:        viper.GetInt("page-size"),
		LogLevel:        viper.GetString("log-level"),
		UserAgent:       viper.GetString("user-agent"),
	}

	return conf
}

// GetSerializer creates the serializer the client talks to the server with
func GetSerializer() (serializer.ISerializer, error) {
	return serializer.New(viper.GetString("format"))
}

// GetOutputSerializer creates an indented serializer for printing documents in format
func GetOutputSerializer(format string) (serializer.ISerializer, error) {
	return serializer.New(format, serializer.WithIndent("  "), serializer.WithXMLDeclaration())
}

// GetTransport creates the transport used to reach the server
func GetTransport() (transport.IClientTransport, error) {
	return http.NewHttpClientTransport(), nil
}

// InitLoggers applies the configured log level
func InitLoggers() error {
	config := common.DefaultClientConfig()
	config.LogLevel = viper.GetString("log-level")
	if !common.ValidLogLevel(config.LogLevel) {
		return fmt.Errorf("invalid log level %q", config.LogLevel)
	}
	common.InitLoggers(config)
	return nil
}

// UseYAML reports whether results are printed as yaml
func UseYAML() bool {
	return strings.EqualFold(viper.GetString("output"), "yaml")
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
