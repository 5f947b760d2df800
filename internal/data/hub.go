// Package data wires the per-entity resources the dashboard reads and
// writes through. The Hub owns one query cache and one notifier and hands
// out typed resources bound to the API client.
package data

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bizdash/bizdash/internal/client"
	"github.com/bizdash/bizdash/internal/domain/analytics"
	"github.com/bizdash/bizdash/internal/domain/content"
	"github.com/bizdash/bizdash/internal/domain/crm"
	"github.com/bizdash/bizdash/internal/domain/finance"
	"github.com/bizdash/bizdash/internal/domain/hr"
	"github.com/bizdash/bizdash/internal/domain/messaging"
	"github.com/bizdash/bizdash/internal/domain/security"
	"github.com/bizdash/bizdash/internal/domain/trade"
	"github.com/bizdash/bizdash/internal/query"
)

// Staleness windows by volatility. Dashboard numbers and notifications go
// stale fast; reference data barely moves.
const (
	volatileTTL  = 45 * time.Second
	standardTTL  = 2 * time.Minute
	referenceTTL = 10 * time.Minute

	detailTTL = 2 * time.Minute
)

// Hub aggregates every resource for one tenant session
type Hub struct {
	api      *client.APIClient
	cache    *query.Cache
	notifier query.Notifier
	logger   *zap.Logger

	Clients        *query.Resource[crm.Client]
	Leads          *query.Resource[crm.Lead]
	Orders         *query.Resource[trade.Order]
	Transactions   *query.Resource[finance.Transaction]
	Employees      *query.Resource[hr.Employee]
	Consultants    *query.Resource[hr.Consultant]
	Documents      *query.Resource[content.Document]
	Templates      *query.Resource[content.Template]
	Notifications  *query.Resource[messaging.Notification]
	Channels       *query.Resource[messaging.CommunicationChannel]
	SecurityEvents *query.Resource[security.Event]
}

// HubOption is a functional option for configuring the hub
type HubOption func(*Hub)

// WithNotifier sets the mutation notifier
func WithNotifier(n query.Notifier) HubOption {
	return func(h *Hub) {
		h.notifier = n
	}
}

// WithHubLogger sets the logger for the hub and its cache
func WithHubLogger(logger *zap.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

// NewHub builds the resource set over an API client
func NewHub(api *client.APIClient, opts ...HubOption) *Hub {
	h := &Hub{
		api:      api,
		notifier: query.NopNotifier{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.cache = query.NewCache(query.WithCacheLogger(h.logger))

	h.Clients = query.NewResource("clients", "Client", h.cache, h.notifier, query.Funcs[crm.Client]{
		ID:     func(c crm.Client) string { return c.ID },
		List:   api.ListClients,
		Get:    api.GetClient,
		Create: api.CreateClient,
		Update: api.UpdateClient,
		Delete: api.DeleteClient,
	}, query.WithTTL[crm.Client](standardTTL, detailTTL))

	h.Leads = query.NewResource("leads", "Lead", h.cache, h.notifier, query.Funcs[crm.Lead]{
		ID:     func(l crm.Lead) string { return l.ID },
		List:   api.ListLeads,
		Get:    api.GetLead,
		Create: api.CreateLead,
		Update: api.UpdateLead,
		Delete: api.DeleteLead,
	}, query.WithTTL[crm.Lead](standardTTL, detailTTL))

	h.Orders = query.NewResource("orders", "Order", h.cache, h.notifier, query.Funcs[trade.Order]{
		ID:     func(o trade.Order) string { return o.OrderNumber },
		List:   api.ListOrders,
		Get:    api.GetOrder,
		Create: api.CreateOrder,
		Update: api.UpdateOrder,
		Delete: api.DeleteOrder,
	}, query.WithTTL[trade.Order](standardTTL, detailTTL))

	h.Transactions = query.NewResource("transactions", "Transaction", h.cache, h.notifier, query.Funcs[finance.Transaction]{
		ID:     func(t finance.Transaction) string { return t.ID },
		List:   api.ListTransactions,
		Get:    api.GetTransaction,
		Create: api.CreateTransaction,
		Update: api.UpdateTransaction,
		Delete: api.DeleteTransaction,
	}, query.WithTTL[finance.Transaction](standardTTL, detailTTL))

	h.Employees = query.NewResource("employees", "Employee", h.cache, h.notifier, query.Funcs[hr.Employee]{
		ID:     func(e hr.Employee) string { return e.ID },
		List:   api.ListEmployees,
		Get:    api.GetEmployee,
		Create: api.CreateEmployee,
		Update: api.UpdateEmployee,
		Delete: api.DeleteEmployee,
	}, query.WithTTL[hr.Employee](referenceTTL, detailTTL))

	h.Consultants = query.NewResource("consultants", "Consultant", h.cache, h.notifier, query.Funcs[hr.Consultant]{
		ID:     func(c hr.Consultant) string { return c.ID },
		List:   api.ListConsultants,
		Get:    api.GetConsultant,
		Create: api.CreateConsultant,
		Update: api.UpdateConsultant,
		Delete: api.DeleteConsultant,
	}, query.WithTTL[hr.Consultant](referenceTTL, detailTTL))

	h.Documents = query.NewResource("documents", "Document", h.cache, h.notifier, query.Funcs[content.Document]{
		ID:     func(d content.Document) string { return d.ID },
		List:   api.ListDocuments,
		Get:    api.GetDocument,
		Create: api.CreateDocument,
		Update: api.UpdateDocument,
		Delete: api.DeleteDocument,
	}, query.WithTTL[content.Document](standardTTL, detailTTL))

	h.Templates = query.NewResource("templates", "Template", h.cache, h.notifier, query.Funcs[content.Template]{
		ID:     func(t content.Template) string { return t.ID },
		List:   api.ListTemplates,
		Get:    api.GetTemplate,
		Create: api.CreateTemplate,
		Update: api.UpdateTemplate,
		Delete: api.DeleteTemplate,
	}, query.WithTTL[content.Template](referenceTTL, detailTTL))

	h.Notifications = query.NewResource("notifications", "Notification", h.cache, h.notifier, query.Funcs[messaging.Notification]{
		ID:     func(n messaging.Notification) string { return n.ID },
		List:   api.ListNotifications,
		Get:    api.GetNotification,
		Delete: api.DeleteNotification,
	}, query.WithTTL[messaging.Notification](volatileTTL, detailTTL))

	h.Channels = query.NewResource("channels", "Channel", h.cache, h.notifier, query.Funcs[messaging.CommunicationChannel]{
		ID:     func(c messaging.CommunicationChannel) string { return c.ID },
		List:   api.ListChannels,
		Get:    api.GetChannel,
		Update: api.UpdateChannel,
	}, query.WithTTL[messaging.CommunicationChannel](referenceTTL, detailTTL))

	h.SecurityEvents = query.NewResource("security-events", "Security event", h.cache, h.notifier, query.Funcs[security.Event]{
		ID:   func(e security.Event) string { return e.ID },
		List: api.ListSecurityEvents,
		Get:  api.GetSecurityEvent,
	}, query.WithTTL[security.Event](standardTTL, detailTTL))

	return h
}

// MarkNotificationRead marks one notification read and fixes up the cache
// the same way a resource update does.
func (h *Hub) MarkNotificationRead(ctx context.Context, id string) (messaging.Notification, error) {
	n, err := h.api.MarkNotificationRead(ctx, id)
	if err != nil {
		return messaging.Notification{}, err
	}
	h.Notifications.Invalidate()
	return n, nil
}

// DashboardStats fetches the headline numbers, cached on the volatile window
func (h *Hub) DashboardStats(ctx context.Context) (analytics.DashboardStats, error) {
	return aggregate(ctx, h, "dashboard", h.api.DashboardStats)
}

// FinanceSummary fetches the ledger reduction, cached on the volatile window
func (h *Hub) FinanceSummary(ctx context.Context) (finance.Summary, error) {
	return aggregate(ctx, h, "finance-summary", h.api.FinanceSummary)
}

// AnalyticsSnapshot fetches the analytics view, cached on the volatile window
func (h *Hub) AnalyticsSnapshot(ctx context.Context) (analytics.Snapshot, error) {
	return aggregate(ctx, h, "analytics", h.api.AnalyticsSnapshot)
}

// aggregate caches a singleton endpoint under <name>|detail|current
func aggregate[T any](ctx context.Context, h *Hub, name string, fetch func(context.Context) (T, error)) (T, error) {
	key := query.DetailKey(name, "current")
	if cached, ok := h.cache.Get(ctx, key); ok {
		if v, ok := cached.(T); ok {
			return v, nil
		}
	}
	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	h.cache.Set(key, v, volatileTTL)
	return v, nil
}

// CacheStats exposes the cache hit/miss counters
func (h *Hub) CacheStats() (hits, misses int64) {
	return h.cache.Stats()
}

// InvalidateAll clears every cached entry for the session
func (h *Hub) InvalidateAll() {
	h.cache.Clear()
}

// Close stops the cache cleanup goroutine
func (h *Hub) Close() error {
	return h.cache.Close()
}
