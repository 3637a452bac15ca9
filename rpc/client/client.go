package client

import (
	"context"
	"strings"
	"time"

	"github.com/ValentinKolb/redmine/rpc/common"
	"github.com/ValentinKolb/redmine/rpc/serializer"
	"github.com/ValentinKolb/redmine/rpc/transport"
	"github.com/rcrowley/go-metrics"
)

var (
	Logger = common.GetLogger("client")
)

// Metric names of the client registry
const (
	MetricRequestPrefix   = "request."
	MetricErrors          = "errors"
	MetricRequestPayload  = "payload.bytes.request"
	MetricResponsePayload = "payload.bytes.response"
)

// RedmineClient stores all data needed to talk to one Redmine server. Entity
// operations are the generic package functions (Get, List, Create, ...) since
// methods cannot have type parameters.
//
// A RedmineClient is safe for concurrent use.
type RedmineClient struct {
	config     common.ClientConfig
	transport  transport.IClientTransport
	serializer serializer.ISerializer
	errDecoder *errorDecoder
	metrics    metrics.Registry
}

// NewRedmineClient validates the configuration and connects the transport.
// The format of the serializer wins over config.Format.
func NewRedmineClient(
	config common.ClientConfig,
	transport transport.IClientTransport,
	serializer serializer.ISerializer,
) (*RedmineClient, error) {

	// Validate the configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if serializer.Format() != config.Format {
		Logger.Warningf("serializer format %s overrides configured format %s", serializer.Format(), config.Format)
		config.Format = serializer.Format()
	}

	// Connect the transport
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	return &RedmineClient{
		config:     config,
		transport:  transport,
		serializer: serializer,
		errDecoder: newErrorDecoder(serializer),
		metrics:    metrics.NewRegistry(),
	}, nil
}

// Config returns the configuration the client was created with
func (c *RedmineClient) Config() common.ClientConfig {
	return c.config
}

// Serializer returns the serializer used for request and response bodies
func (c *RedmineClient) Serializer() serializer.ISerializer {
	return c.serializer
}

// Metrics returns the registry holding request timers, the error meter and
// payload size histograms
func (c *RedmineClient) Metrics() metrics.Registry {
	return c.metrics
}

// Close closes the transport
func (c *RedmineClient) Close() error {
	return c.transport.Close()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// invoke sends a request and turns non-2xx answers into a *RedmineError
func (c *RedmineClient) invoke(ctx context.Context, req *common.Request) (*common.Response, error) {
	start := time.Now()
	timer := metrics.GetOrRegisterTimer(MetricRequestPrefix+strings.ToLower(req.Method.String()), c.metrics)
	defer timer.UpdateSince(start)

	if req.Body != nil {
		c.histogram(MetricRequestPayload).Update(int64(len(req.Body)))
	}

	// Send the request
	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		c.markError()
		Logger.Errorf("%s %s: %v", req.Method, req.Path, err)
		return nil, err
	}
	c.histogram(MetricResponsePayload).Update(int64(len(resp.Body)))

	// Check if the response is an error response
	if !resp.IsSuccess() {
		c.markError()
		rerr := c.errDecoder.newRedmineError(resp)
		Logger.Debugf("%s %s: %v", req.Method, req.Path, rerr)
		return nil, rerr
	}
	return resp, nil
}

func (c *RedmineClient) histogram(name string) metrics.Histogram {
	return metrics.GetOrRegisterHistogram(name, c.metrics, metrics.NewUniformSample(1028))
}

func (c *RedmineClient) markError() {
	metrics.GetOrRegisterMeter(MetricErrors, c.metrics).Mark(1)
}
