package gateway

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"regexp"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bizdash/bizdash/internal/fixtures"
	"github.com/bizdash/bizdash/internal/infrastructure/telemetry"
)

// Default artificial latency window. The delay exists to make the demo feel
// like a real network, not to throttle anything.
const (
	defaultMockDelayMin = 300 * time.Millisecond
	defaultMockDelayMax = 1200 * time.Millisecond
)

// mockHandler serves one matched route. match holds the regexp capture
// groups, body the raw JSON request body (nil for GET/DELETE).
type mockHandler func(ctx context.Context, match []string, params url.Values, body []byte) Envelope

type mockRoute struct {
	method  string
	pattern *regexp.Regexp
	handle  mockHandler
}

// MockGateway synthesizes backend responses from an in-memory fixture
// store. Calls are routed through a (method, path pattern) dispatcher;
// unmatched routes fall through to a generic echo response.
type MockGateway struct {
	store  *fixtures.Store
	routes []mockRoute

	delayMin time.Duration
	delayMax time.Duration

	mu  sync.Mutex
	rng *rand.Rand

	logger *zap.Logger
}

// MockGatewayOption is a functional option for configuring the gateway
type MockGatewayOption func(*MockGateway)

// WithMockDelay sets the artificial latency window. Equal zero bounds
// disable the delay, which is what tests want.
func WithMockDelay(min, max time.Duration) MockGatewayOption {
	return func(g *MockGateway) {
		g.delayMin = min
		g.delayMax = max
	}
}

// WithMockLogger sets the logger for the gateway
func WithMockLogger(logger *zap.Logger) MockGatewayOption {
	return func(g *MockGateway) {
		g.logger = logger
	}
}

// NewMockGateway creates a mock gateway over the given fixture store
func NewMockGateway(store *fixtures.Store, opts ...MockGatewayOption) *MockGateway {
	g := &MockGateway{
		store:    store,
		delayMin: defaultMockDelayMin,
		delayMax: defaultMockDelayMax,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.routes = buildRoutes(store)
	return g
}

// Mode reports ModeMock
func (g *MockGateway) Mode() Mode {
	return ModeMock
}

// Get dispatches a GET call
func (g *MockGateway) Get(ctx context.Context, endpoint string, params url.Values) Envelope {
	return g.dispatch(ctx, "GET", endpoint, params, nil)
}

// Post dispatches a POST call
func (g *MockGateway) Post(ctx context.Context, endpoint string, body any) Envelope {
	return g.dispatchBody(ctx, "POST", endpoint, body)
}

// Put dispatches a PUT call
func (g *MockGateway) Put(ctx context.Context, endpoint string, body any) Envelope {
	return g.dispatchBody(ctx, "PUT", endpoint, body)
}

// Delete dispatches a DELETE call
func (g *MockGateway) Delete(ctx context.Context, endpoint string) Envelope {
	return g.dispatch(ctx, "DELETE", endpoint, nil, nil)
}

func (g *MockGateway) dispatchBody(ctx context.Context, method, endpoint string, body any) Envelope {
	raw, err := marshalBody(body)
	if err != nil {
		return FailErr("ENCODE_FAILED", err)
	}
	return g.dispatch(ctx, method, endpoint, nil, raw)
}

func (g *MockGateway) dispatch(ctx context.Context, method, endpoint string, params url.Values, body []byte) Envelope {
	start := time.Now()
	env := g.serve(ctx, method, endpoint, params, body)
	telemetry.Gateway().Record(ctx, string(ModeMock), method, env.Success, time.Since(start))
	return env
}

func (g *MockGateway) serve(ctx context.Context, method, endpoint string, params url.Values, body []byte) Envelope {
	if err := g.sleep(ctx); err != nil {
		return FailErr("CANCELLED", err)
	}

	for _, route := range g.routes {
		if route.method != method {
			continue
		}
		match := route.pattern.FindStringSubmatch(endpoint)
		if match == nil {
			continue
		}
		g.logger.Debug("mock route matched",
			zap.String("method", method),
			zap.String("endpoint", endpoint))
		return route.handle(ctx, match, params, body)
	}

	// Generic echo fallback for routes no fixture handler claims.
	g.logger.Debug("mock route fallthrough",
		zap.String("method", method),
		zap.String("endpoint", endpoint))
	return OK(map[string]any{
		"message": fmt.Sprintf("Mock %s response for %s", method, endpoint),
		"data":    map[string]any{},
	})
}

// sleep blocks for a random duration inside the latency window, honoring
// context cancellation
func (g *MockGateway) sleep(ctx context.Context) error {
	d := g.delay()
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (g *MockGateway) delay() time.Duration {
	if g.delayMax <= g.delayMin {
		return g.delayMin
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.delayMin + time.Duration(g.rng.Int63n(int64(g.delayMax-g.delayMin)))
}

// Ensure MockGateway implements BackendGateway
var _ BackendGateway = (*MockGateway)(nil)
