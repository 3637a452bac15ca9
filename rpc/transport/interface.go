package transport

import (
	"context"

	"github.com/ValentinKolb/redmine/rpc/common"
)

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IClientTransport is the interface for the client side of the REST transport
type IClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send sends a request to the server and returns the response.
	// Responses with a non-2xx status are returned as responses, errors are
	// reserved for requests that did not produce any answer.
	Send(ctx context.Context, req *common.Request) (*common.Response, error)
	// Close closes the transport connection
	Close() error
}
