// Package common provides core data structures and utilities shared across
// the Redmine client. It defines the request/response envelope, the client
// configuration and the logging facade used by the other packages.
//
// The package focuses on:
//   - Request/response definition between the client and the transport layer
//   - Configuration of the client (server, authentication, format, limits)
//   - A named logger facade backed by logrus
//
// Key Components:
//
//   - Request / Response: the raw REST call and its answer. Built through the
//     NewGetRequest, NewPostRequest, NewPutRequest and NewDeleteRequest factories.
//
//   - Method: Enumeration of the HTTP verbs used by the API, with string and
//     JSON representations.
//
//   - ClientConfig: Base url, credentials, wire format, timeouts, retries and page
//     size. Validate reports all problems at once, String masks secrets.
//
//   - Logger: GetLogger returns a cached logrus-backed logger per package name,
//     InitLoggers applies the configured level to all of them.
package common
