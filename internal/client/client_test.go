package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizdash/bizdash/internal/domain/crm"
	"github.com/bizdash/bizdash/internal/domain/shared"
	"github.com/bizdash/bizdash/internal/fixtures"
	"github.com/bizdash/bizdash/internal/gateway"
)

func newMockClient(t *testing.T) (*APIClient, *fixtures.Store) {
	t.Helper()
	store := fixtures.NewStore("tenant-test")
	gw := gateway.NewMockGateway(store, gateway.WithMockDelay(0, 0))
	return New(gw, "tenant-test"), store
}

func TestClientScope(t *testing.T) {
	c, _ := newMockClient(t)
	assert.Equal(t, "tenant-test", c.TenantID())
	assert.Equal(t, gateway.ModeMock, c.Mode())
}

func TestTypedSurfaceAgainstMock(t *testing.T) {
	ctx := context.Background()
	c, _ := newMockClient(t)

	created, err := c.CreateClient(ctx, crm.Client{ClientName: "Acme Corp"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	t.Run("list", func(t *testing.T) {
		page, err := c.ListClients(ctx, shared.Filter{Page: 1, Limit: 20})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, created.ID, page.Data[0].ID)
	})

	t.Run("get", func(t *testing.T) {
		got, err := c.GetClient(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", got.ClientName)
	})

	t.Run("update", func(t *testing.T) {
		created.ClientName = "Acme Industries"
		got, err := c.UpdateClient(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, "Acme Industries", got.ClientName)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, c.DeleteClient(ctx, created.ID))
		_, err := c.GetClient(ctx, created.ID)
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	c, _ := newMockClient(t)

	session, err := c.Login(ctx, "admin@acme.example", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "tenant-test", session.User.TenantID)
	assert.Equal(t, "admin", session.User.Role)

	_, err = c.Login(ctx, "", "secret")
	assert.Error(t, err)
}

func TestDashboardAggregates(t *testing.T) {
	ctx := context.Background()
	c, store := newMockClient(t)
	fixtures.NewGenerator("tenant-test", 11).Seed(store, fixtures.Counts{Clients: 3, Orders: 2, Transactions: 4})

	stats, err := c.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalClients)
	assert.Equal(t, 2, stats.TotalOrders)

	summary, err := c.FinanceSummary(ctx)
	require.NoError(t, err)
	assert.True(t, summary.TotalIncome.Sub(summary.TotalExpense).Equal(summary.NetProfit))
}

func TestTypedSurfaceRequiresMockBackend(t *testing.T) {
	ctx := context.Background()
	c := New(gateway.NewHTTPGateway("http://backend.invalid"), "tenant-live")

	_, err := c.ListClients(ctx, shared.DefaultFilter())
	assert.ErrorIs(t, err, shared.ErrBackendNotConfigured)

	_, err = c.GetClient(ctx, "c1")
	assert.ErrorIs(t, err, shared.ErrBackendNotConfigured)

	_, err = c.CreateClient(ctx, crm.Client{ClientName: "x"})
	assert.ErrorIs(t, err, shared.ErrBackendNotConfigured)

	assert.ErrorIs(t, c.DeleteClient(ctx, "c1"), shared.ErrBackendNotConfigured)

	_, err = c.Login(ctx, "a@b.c", "pw")
	assert.ErrorIs(t, err, shared.ErrBackendNotConfigured)
}
