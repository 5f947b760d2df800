package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/bizdash/bizdash"

// GatewayMetrics counts backend gateway requests and measures latency
type GatewayMetrics struct {
	requests metric.Int64Counter
	latency  metric.Float64Histogram
}

// CacheMetrics counts query-cache hits and misses per entity
type CacheMetrics struct {
	hits   metric.Int64Counter
	misses metric.Int64Counter
}

var (
	gatewayOnce    sync.Once
	gatewayMetrics *GatewayMetrics

	cacheOnce    sync.Once
	cacheMetrics *CacheMetrics
)

// Gateway returns the process-wide gateway instruments, created lazily
// against whatever meter provider is installed at first use.
func Gateway() *GatewayMetrics {
	gatewayOnce.Do(func() {
		meter := otel.Meter(meterName)
		requests, _ := meter.Int64Counter("bizdash.gateway.requests",
			metric.WithDescription("Backend gateway requests by mode, method and outcome"))
		latency, _ := meter.Float64Histogram("bizdash.gateway.duration",
			metric.WithDescription("Backend gateway request duration"),
			metric.WithUnit("ms"))
		gatewayMetrics = &GatewayMetrics{requests: requests, latency: latency}
	})
	return gatewayMetrics
}

// Record registers one gateway request
func (m *GatewayMetrics) Record(ctx context.Context, mode, method string, success bool, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("method", method),
		attribute.Bool("success", success),
	)
	m.requests.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(elapsed.Milliseconds()), attrs)
}

// Cache returns the process-wide query-cache instruments
func Cache() *CacheMetrics {
	cacheOnce.Do(func() {
		meter := otel.Meter(meterName)
		hits, _ := meter.Int64Counter("bizdash.cache.hits",
			metric.WithDescription("Query cache hits by entity"))
		misses, _ := meter.Int64Counter("bizdash.cache.misses",
			metric.WithDescription("Query cache misses by entity"))
		cacheMetrics = &CacheMetrics{hits: hits, misses: misses}
	})
	return cacheMetrics
}

// Hit registers a cache hit for the given entity namespace
func (m *CacheMetrics) Hit(ctx context.Context, entity string) {
	m.hits.Add(ctx, 1, metric.WithAttributes(attribute.String("entity", entity)))
}

// Miss registers a cache miss for the given entity namespace
func (m *CacheMetrics) Miss(ctx context.Context, entity string) {
	m.misses.Add(ctx, 1, metric.WithAttributes(attribute.String("entity", entity)))
}
