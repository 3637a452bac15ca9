// Package transport defines the transport abstraction of the Redmine client.
// It provides the contract that concrete transports fulfill so the client can
// be tested and extended without depending on net/http directly.
//
// The package focuses on:
//   - Defining a clear interface for the client transport layer
//   - Keeping wire format concerns out of the transport (requests and responses
//     carry opaque bodies)
//
// Key Components:
//
//   - IClientTransport: Interface for client-side transport implementations that
//     handles connection setup, request sending and teardown.
//
// Implementations live in sub packages (see transport/http).
package transport
