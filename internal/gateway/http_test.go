package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestHTTPGatewayHeaders(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, WithTokenSource(staticToken("tok-123")))
	env := g.Get(context.Background(), "/clients", url.Values{"page": {"1"}})
	require.True(t, env.Success)

	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "Bearer tok-123", got.Header.Get("Authorization"))
	assert.Equal(t, "/clients", got.URL.Path)
	assert.Equal(t, "1", got.URL.Query().Get("page"))
}

func TestHTTPGatewayEmptyTokenOmitsHeader(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, WithTokenSource(staticToken("")))
	env := g.Get(context.Background(), "/clients", nil)
	require.True(t, env.Success)
	assert.Empty(t, auth)
}

func TestHTTPGatewayEnvelopeShapes(t *testing.T) {
	t.Run("data field is unwrapped as an envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"id":"c1"},"message":"fetched","pagination":{"total":1,"page":1,"limit":20,"totalPages":1}}`))
		}))
		defer srv.Close()

		env := NewHTTPGateway(srv.URL).Get(context.Background(), "/clients/c1", nil)
		require.True(t, env.Success)
		assert.Equal(t, "fetched", env.Message)
		require.NotNil(t, env.Pagination)
		assert.Equal(t, int64(1), env.Pagination.Total)

		payload, err := Decode[map[string]string](env)
		require.NoError(t, err)
		assert.Equal(t, "c1", payload["id"])
	})

	t.Run("bare body is the payload itself", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"id":"c1","name":"Acme"}`))
		}))
		defer srv.Close()

		env := NewHTTPGateway(srv.URL).Get(context.Background(), "/clients/c1", nil)
		require.True(t, env.Success)

		payload, err := Decode[map[string]string](env)
		require.NoError(t, err)
		assert.Equal(t, "Acme", payload["name"])
	})

	t.Run("empty body is success without payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		env := NewHTTPGateway(srv.URL).Delete(context.Background(), "/clients/c1")
		assert.True(t, env.Success)
		assert.Empty(t, env.Data)
	})
}

func TestHTTPGatewayFailures(t *testing.T) {
	t.Run("message field wins", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"client not found"}`))
		}))
		defer srv.Close()

		env := NewHTTPGateway(srv.URL).Get(context.Background(), "/clients/x", nil)
		assert.False(t, env.Success)
		assert.Equal(t, "HTTP_404", env.Error)
		assert.Equal(t, "client not found", env.Message)
	})

	t.Run("nested error object message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error":{"code":"VALIDATION","message":"gst is invalid"}}`))
		}))
		defer srv.Close()

		env := NewHTTPGateway(srv.URL).Post(context.Background(), "/clients", map[string]string{})
		assert.False(t, env.Success)
		assert.Equal(t, "gst is invalid", env.Message)
	})

	t.Run("unparseable body falls back to status text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`<html>oops</html>`))
		}))
		defer srv.Close()

		env := NewHTTPGateway(srv.URL).Get(context.Background(), "/clients", nil)
		assert.False(t, env.Success)
		assert.Equal(t, "HTTP_502", env.Error)
		assert.Equal(t, http.StatusText(http.StatusBadGateway), env.Message)
	})

	t.Run("unreachable backend folds into a failure envelope", func(t *testing.T) {
		g := NewHTTPGateway("http://127.0.0.1:1")
		env := g.Get(context.Background(), "/clients", nil)
		assert.False(t, env.Success)
		assert.Equal(t, "NETWORK_ERROR", env.Error)
		assert.NotEmpty(t, env.Message)
	})
}

func TestHTTPGatewayPostBody(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&received)
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	env := NewHTTPGateway(srv.URL).Post(context.Background(), "/clients", map[string]string{"clientName": "Acme"})
	require.True(t, env.Success)
	assert.Equal(t, "Acme", received["clientName"])
}

func TestHTTPGatewayRateLimit(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, WithRateLimit(1000, 1))
	for i := 0; i < 3; i++ {
		env := g.Get(context.Background(), "/clients", nil)
		require.True(t, env.Success)
	}
	assert.Equal(t, 3, calls)

	t.Run("cancelled wait surfaces as rate limited", func(t *testing.T) {
		g := NewHTTPGateway(srv.URL, WithRateLimit(0.0001, 1))
		ctx, cancel := context.WithCancel(context.Background())

		env := g.Get(ctx, "/clients", nil)
		require.True(t, env.Success, "burst token covers the first call")

		cancel()
		env = g.Get(ctx, "/clients", nil)
		assert.False(t, env.Success)
		assert.Equal(t, "RATE_LIMITED", env.Error)
	})
}
