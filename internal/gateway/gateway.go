// Package gateway abstracts the dashboard's backend transport. Two
// implementations exist behind one interface: HTTPGateway performs real
// HTTP calls with bearer-token auth, MockGateway synthesizes responses
// from in-memory fixtures. Which one a process uses is decided once at
// construction time and never changes.
package gateway

import (
	"context"
	"net/url"
)

// Mode identifies which gateway flavor a client was constructed with
type Mode string

const (
	ModeMock Mode = "mock"
	ModeLive Mode = "live"
)

// BackendGateway is the transport contract consumed by the API client.
// Every verb returns a normalized Envelope; transport faults never
// surface as errors.
type BackendGateway interface {
	Mode() Mode
	Get(ctx context.Context, endpoint string, params url.Values) Envelope
	Post(ctx context.Context, endpoint string, body any) Envelope
	Put(ctx context.Context, endpoint string, body any) Envelope
	Delete(ctx context.Context, endpoint string) Envelope
}
