package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/bizdash/bizdash/internal/infrastructure/telemetry"
)

const defaultHTTPTimeout = 30 * time.Second

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty token means the Authorization header is omitted.
type TokenSource interface {
	Token() string
}

// HTTPGateway issues real HTTP calls against a configured backend.
// It performs no retries; any retry policy belongs to the caller.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	logger  *zap.Logger
	tracer  trace.Tracer
}

// HTTPGatewayOption is a functional option for configuring the gateway
type HTTPGatewayOption func(*HTTPGateway)

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(c *http.Client) HTTPGatewayOption {
	return func(g *HTTPGateway) {
		g.client = c
	}
}

// WithTokenSource sets the bearer token source
func WithTokenSource(ts TokenSource) HTTPGatewayOption {
	return func(g *HTTPGateway) {
		g.tokens = ts
	}
}

// WithHTTPLogger sets the logger for the gateway
func WithHTTPLogger(logger *zap.Logger) HTTPGatewayOption {
	return func(g *HTTPGateway) {
		g.logger = logger
	}
}

// WithRateLimit caps outgoing requests per second on the client side.
// Zero or negative disables limiting.
func WithRateLimit(rps float64, burst int) HTTPGatewayOption {
	return func(g *HTTPGateway) {
		if rps > 0 {
			g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewHTTPGateway creates a live gateway rooted at baseURL
func NewHTTPGateway(baseURL string, opts ...HTTPGatewayOption) *HTTPGateway {
	g := &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		logger:  zap.NewNop(),
		tracer:  otel.Tracer("bizdash/gateway"),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Mode reports ModeLive
func (g *HTTPGateway) Mode() Mode {
	return ModeLive
}

// Get issues a GET request
func (g *HTTPGateway) Get(ctx context.Context, endpoint string, params url.Values) Envelope {
	return g.do(ctx, http.MethodGet, endpoint, params, nil)
}

// Post issues a POST request with a JSON body
func (g *HTTPGateway) Post(ctx context.Context, endpoint string, body any) Envelope {
	return g.do(ctx, http.MethodPost, endpoint, nil, body)
}

// Put issues a PUT request with a JSON body
func (g *HTTPGateway) Put(ctx context.Context, endpoint string, body any) Envelope {
	return g.do(ctx, http.MethodPut, endpoint, nil, body)
}

// Delete issues a DELETE request
func (g *HTTPGateway) Delete(ctx context.Context, endpoint string) Envelope {
	return g.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (g *HTTPGateway) do(ctx context.Context, method, endpoint string, params url.Values, body any) Envelope {
	start := time.Now()
	env := g.roundTrip(ctx, method, endpoint, params, body)
	telemetry.Gateway().Record(ctx, string(ModeLive), method, env.Success, time.Since(start))
	return env
}

func (g *HTTPGateway) roundTrip(ctx context.Context, method, endpoint string, params url.Values, body any) Envelope {
	ctx, span := g.tracer.Start(ctx, "gateway.request",
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", endpoint),
		))
	defer span.End()

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return FailErr("RATE_LIMITED", err)
		}
	}

	target := g.baseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return FailErr("ENCODE_FAILED", fmt.Errorf("encode request body: %w", err))
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return FailErr("BAD_REQUEST", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if g.tokens != nil {
		if token := g.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return FailErr("NETWORK_ERROR", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return FailErr("READ_FAILED", err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return g.failureFromResponse(resp.StatusCode, raw)
	}

	return g.successFromResponse(raw)
}

// failureFromResponse normalizes a non-2xx response, carrying the server's
// message field when one can be extracted.
func (g *HTTPGateway) failureFromResponse(status int, raw []byte) Envelope {
	code := fmt.Sprintf("HTTP_%d", status)

	var parsed struct {
		Message string `json:"message"`
		Error   any    `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Message != "" {
			return Fail(code, parsed.Message)
		}
		switch e := parsed.Error.(type) {
		case string:
			if e != "" {
				return Fail(code, e)
			}
		case map[string]any:
			if msg, ok := e["message"].(string); ok && msg != "" {
				return Fail(code, msg)
			}
		}
	}
	return Fail(code, http.StatusText(status))
}

// successFromResponse interprets the response body. A body carrying a
// data field is treated as an envelope; any other shape is the payload
// itself.
func (g *HTTPGateway) successFromResponse(raw []byte) Envelope {
	if len(raw) == 0 {
		return Envelope{Success: true}
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err == nil {
		if data, ok := probe["data"]; ok {
			env := Envelope{Success: true, Data: data}
			if msg, ok := probe["message"]; ok {
				_ = json.Unmarshal(msg, &env.Message)
			}
			if meta, ok := probe["pagination"]; ok {
				var pm PageMeta
				if json.Unmarshal(meta, &pm) == nil {
					env.Pagination = &pm
				}
			}
			return env
		}
	}

	return Envelope{Success: true, Data: raw}
}

// Ensure HTTPGateway implements BackendGateway
var _ BackendGateway = (*HTTPGateway)(nil)
