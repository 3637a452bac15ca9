// Package cmd implements the command-line interface of the Redmine client.
// It provides a hierarchical command structure for talking to a server and for
// working with the codec offline.
//
// The package is organized into several subpackages:
//
//   - resource: Commands for server operations (get, list, count, create, update,
//     delete, upload, download)
//   - convert: Converts entity documents between xml, json and yaml without a server
//   - bench: Throughput and payload size benchmarks of the codec
//   - util: Shared utilities for command-line processing, configuration and the
//     entity type dispatch table (internal use)
//
// Configuration is read from flags, REDMINE_* environment variables and .env files.
//
// See redmine -help for a list of all commands.
package cmd
