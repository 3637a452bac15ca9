// Package client implements the Redmine REST client. It combines a transport
// (see rpc/transport) with a serializer (see rpc/serializer) and offers typed,
// generic operations on all entities of lib/types.
//
// The package focuses on:
//   - Typed access to the REST resources (issues, projects, users, ...)
//   - Turning error answers into *RedmineError values that match sentinel errors
//   - Request metrics (timers, error meter, payload sizes) per client
//
// Key Components:
//
//   - RedmineClient: Holds the configuration, transport, serializer and a
//     go-metrics registry. Created with NewRedmineClient, which connects the transport.
//
//   - Get, List, ListAll, Count, Create, Update, Delete: Generic operations. The
//     resource path is derived from the entity type and can be replaced through
//     RequestOptions for nested resources (e.g. "projects/1/memberships").
//
//   - Upload, Download: Raw file content for attachments.
//
//   - RedmineError: Status code and messages of an error answer. errors.Is matches
//     ErrNotFound, ErrUnauthorized, ErrForbidden, ErrConflict and ErrUnprocessable.
//
// Usage Example:
//
//	// Configure the client
//	config := common.DefaultClientConfig()
//	config.BaseURL = "https://redmine.example.com"
//	config.APIKey = os.Getenv("REDMINE_API_KEY")
//
//	// Create the client
//	c, _ := client.NewRedmineClient(config, http.NewHttpClientTransport(), serializer.NewJSONSerializer())
//	defer c.Close()
//
//	// Use the client
//	issue, err := client.Get[types.Issue](ctx, c, "380", nil)
//	if errors.Is(err, client.ErrNotFound) {
//	  // ...
//	}
//	open, _ := client.Count[types.Issue](ctx, c, &client.RequestOptions{Query: url.Values{"status_id": {"open"}}})
package client
