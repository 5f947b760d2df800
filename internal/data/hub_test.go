package data

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizdash/bizdash/internal/client"
	"github.com/bizdash/bizdash/internal/domain/crm"
	"github.com/bizdash/bizdash/internal/domain/messaging"
	"github.com/bizdash/bizdash/internal/domain/shared"
	"github.com/bizdash/bizdash/internal/domain/trade"
	"github.com/bizdash/bizdash/internal/fixtures"
	"github.com/bizdash/bizdash/internal/gateway"
)

func newHub(t *testing.T) (*Hub, *fixtures.Store) {
	t.Helper()
	store := fixtures.NewStore("tenant-test")
	gw := gateway.NewMockGateway(store, gateway.WithMockDelay(0, 0))
	h := NewHub(client.New(gw, "tenant-test"))
	t.Cleanup(func() { _ = h.Close() })
	return h, store
}

func TestHubResourceRoundTrip(t *testing.T) {
	ctx := context.Background()
	h, _ := newHub(t)

	created, err := h.Clients.Create(ctx, crm.Client{ClientName: "Acme Corp"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	page, err := h.Clients.List(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	t.Run("cached list survives a cache stats read", func(t *testing.T) {
		_, err := h.Clients.List(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		hits, _ := h.CacheStats()
		assert.Positive(t, hits)
	})

	t.Run("invalidate all forces refetch", func(t *testing.T) {
		h.InvalidateAll()
		_, misses := h.CacheStats()
		_, err := h.Clients.List(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		_, after := h.CacheStats()
		assert.Greater(t, after, misses)
	})
}

func TestHubMarkNotificationRead(t *testing.T) {
	ctx := context.Background()
	h, store := newHub(t)
	store.Notifications.Insert(messaging.Notification{
		ID: "n1", Title: "Hello", Status: messaging.DeliveryDelivered,
	})

	// Warm the notification list cache.
	_, err := h.Notifications.List(ctx, shared.DefaultFilter())
	require.NoError(t, err)

	n, err := h.MarkNotificationRead(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, messaging.DeliveryRead, n.Status)

	page, err := h.Notifications.List(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, messaging.DeliveryRead, page.Data[0].Status,
		"list cache was invalidated by the mark-read")
}

func TestHubAggregates(t *testing.T) {
	ctx := context.Background()
	h, store := newHub(t)
	fixtures.NewGenerator("tenant-test", 3).Seed(store, fixtures.Counts{
		Clients: 4, Orders: 3, Transactions: 5, Notifications: 2,
	})

	stats, err := h.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalClients)

	t.Run("aggregate is cached", func(t *testing.T) {
		// Mutate the store behind the cache; the cached value must win
		// until its window lapses.
		store.Clients.Insert(crm.Client{ID: "extra", ClientName: "Late"})

		again, err := h.DashboardStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, stats.TotalClients, again.TotalClients)
	})

	summary, err := h.FinanceSummary(ctx)
	require.NoError(t, err)
	assert.True(t, summary.NetProfit.Equal(summary.TotalIncome.Sub(summary.TotalExpense)))

	snapshot, err := h.AnalyticsSnapshot(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, snapshot.Period)
}

func TestReduceClients(t *testing.T) {
	stats := ReduceClients([]crm.Client{
		{Status: crm.ClientStatusActive},
		{Status: crm.ClientStatusActive},
		{Status: crm.ClientStatusInactive},
	})
	assert.Equal(t, ClientStats{Total: 3, Active: 2, Inactive: 1}, stats)
}

func TestReduceLeads(t *testing.T) {
	stats := ReduceLeads([]crm.Lead{
		{Status: crm.LeadStatusNew, Priority: crm.LeadPriorityHigh},
		{Status: crm.LeadStatusCallFollowup},
		{Status: crm.LeadStatusConvert},
		{Status: crm.LeadStatusUnqualified},
	})
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Open)
	assert.Equal(t, 1, stats.New)
	assert.Equal(t, 1, stats.Converted)
	assert.Equal(t, 1, stats.HighPriority)
	assert.InDelta(t, 0.25, stats.ConversionRate, 1e-9)

	assert.Zero(t, ReduceLeads(nil).ConversionRate, "no division by zero on empty input")
}

func TestReduceOrders(t *testing.T) {
	d := decimal.RequireFromString
	orders := []trade.Order{
		{Status: trade.OrderStatusPending, NetAmount: d("100"), PaidAmount: d("0"), BalanceAmount: d("100")},
		{Status: trade.OrderStatusCompleted, NetAmount: d("200"), PaidAmount: d("200"), BalanceAmount: d("0")},
		{Status: trade.OrderStatusInProgress, NetAmount: d("50"), PaidAmount: d("25"), BalanceAmount: d("25")},
	}

	stats := ReduceOrders(orders)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.InProgress)
	assert.True(t, stats.TotalValue.Equal(d("350")))
	assert.True(t, stats.Collected.Equal(d("225")))
	assert.True(t, stats.Outstanding.Equal(d("125")))
}

func TestReduceNotifications(t *testing.T) {
	read := messaging.Notification{Status: messaging.DeliveryRead}
	unread := messaging.Notification{Status: messaging.DeliveryDelivered}

	stats := ReduceNotifications([]messaging.Notification{read, unread, unread})
	assert.Equal(t, NotificationStats{Total: 3, Unread: 2}, stats)
}
