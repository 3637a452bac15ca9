// Package http implements the HTTP transport of the Redmine client. It provides
// the concrete implementation of transport.IClientTransport on top of net/http.
//
// The package focuses on:
//   - Building request urls from the configured base url, the request path and
//     query parameters
//   - Authentication headers (X-Redmine-API-Key or basic auth) and user
//     impersonation (X-Redmine-Switch-User)
//   - Retrying requests that failed without any answer
//
// Key Components:
//
//   - httpClientTransport: Implements IClientTransport. Responses with an error
//     status are handed back to the caller unchanged so the client can decode
//     the error payload. Only requests without an answer (connection refused,
//     reset, timeout) are retried, RetryCount times at most, with a fresh body
//     for every attempt.
//
// Thread Safety:
//
//	After Connect the transport is safe for concurrent use. The underlying
//	http.Client pools connections across goroutines.
package http
