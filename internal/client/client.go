// Package client exposes the tenant-scoped API surface the dashboard
// programs against. Generic verbs pass straight through to the gateway;
// typed convenience methods decode envelopes into domain structs.
package client

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/bizdash/bizdash/internal/domain/shared"
	"github.com/bizdash/bizdash/internal/gateway"
)

// APIClient wraps a backend gateway for one tenant
type APIClient struct {
	gw       gateway.BackendGateway
	tenantID string
	logger   *zap.Logger
}

// Option is a functional option for configuring the client
type Option func(*APIClient)

// WithLogger sets the logger for the client
func WithLogger(logger *zap.Logger) Option {
	return func(c *APIClient) {
		c.logger = logger
	}
}

// New creates an API client over the given gateway
func New(gw gateway.BackendGateway, tenantID string, opts ...Option) *APIClient {
	c := &APIClient{
		gw:       gw,
		tenantID: tenantID,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TenantID returns the tenant the client is scoped to
func (c *APIClient) TenantID() string {
	return c.tenantID
}

// Mode reports the underlying gateway mode
func (c *APIClient) Mode() gateway.Mode {
	return c.gw.Mode()
}

// Get issues a raw GET through the gateway
func (c *APIClient) Get(ctx context.Context, endpoint string, params url.Values) gateway.Envelope {
	return c.gw.Get(ctx, endpoint, params)
}

// Post issues a raw POST through the gateway
func (c *APIClient) Post(ctx context.Context, endpoint string, body any) gateway.Envelope {
	return c.gw.Post(ctx, endpoint, body)
}

// Put issues a raw PUT through the gateway
func (c *APIClient) Put(ctx context.Context, endpoint string, body any) gateway.Envelope {
	return c.gw.Put(ctx, endpoint, body)
}

// Delete issues a raw DELETE through the gateway
func (c *APIClient) Delete(ctx context.Context, endpoint string) gateway.Envelope {
	return c.gw.Delete(ctx, endpoint)
}

// The typed convenience surface is only wired against the mock dataset.
// Raw verbs work in either mode; the typed helpers report the backend as
// not configured when a live gateway is attached, and callers must not
// retry that condition.

func (c *APIClient) typedReady() error {
	if c.gw.Mode() == gateway.ModeLive {
		return shared.ErrBackendNotConfigured
	}
	return nil
}

func list[E any](ctx context.Context, c *APIClient, endpoint string, f shared.Filter) (shared.Paginated[E], error) {
	if err := c.typedReady(); err != nil {
		var zero shared.Paginated[E]
		return zero, err
	}
	env := c.gw.Get(ctx, endpoint, f.Values())
	return gateway.Decode[shared.Paginated[E]](env)
}

func getOne[E any](ctx context.Context, c *APIClient, endpoint string) (E, error) {
	var zero E
	if err := c.typedReady(); err != nil {
		return zero, err
	}
	env := c.gw.Get(ctx, endpoint, nil)
	return gateway.Decode[E](env)
}

func create[E any](ctx context.Context, c *APIClient, endpoint string, body E) (E, error) {
	var zero E
	if err := c.typedReady(); err != nil {
		return zero, err
	}
	env := c.gw.Post(ctx, endpoint, body)
	return gateway.Decode[E](env)
}

func update[E any](ctx context.Context, c *APIClient, endpoint string, body E) (E, error) {
	var zero E
	if err := c.typedReady(); err != nil {
		return zero, err
	}
	env := c.gw.Put(ctx, endpoint, body)
	return gateway.Decode[E](env)
}

func del(ctx context.Context, c *APIClient, endpoint string) error {
	if err := c.typedReady(); err != nil {
		return err
	}
	env := c.gw.Delete(ctx, endpoint)
	return gateway.EnvelopeError(env)
}
