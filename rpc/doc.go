// Package rpc provides the communication layer of the Redmine client. It turns
// typed entities into REST calls against a Redmine server and the answers back
// into entities.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures and utilities used across the client,
//     including the request/response envelope, configuration structures, and logging.
//
//   - transport: Network communication abstraction with an HTTP implementation
//     (authentication headers, retries, timeouts).
//
//   - serializer: The xml and json codec. Hand-written converters for every entity
//     type (serializer/converters) on top of a token reader/writer per format
//     (serializer/wire), plus the paged list decoder.
//
//   - client: The generic Redmine client (Get, List, ListAll, Count, Create, Update,
//     Delete, Upload, Download) with error mapping and request metrics.
package rpc
