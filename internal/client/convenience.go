package client

import (
	"context"

	"github.com/bizdash/bizdash/internal/domain/analytics"
	"github.com/bizdash/bizdash/internal/domain/content"
	"github.com/bizdash/bizdash/internal/domain/crm"
	"github.com/bizdash/bizdash/internal/domain/finance"
	"github.com/bizdash/bizdash/internal/domain/hr"
	"github.com/bizdash/bizdash/internal/domain/messaging"
	"github.com/bizdash/bizdash/internal/domain/security"
	"github.com/bizdash/bizdash/internal/domain/shared"
	"github.com/bizdash/bizdash/internal/domain/trade"
	"github.com/bizdash/bizdash/internal/gateway"
)

// Session is the payload returned by a successful login
type Session struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// SessionUser describes the authenticated user
type SessionUser struct {
	Email    string `json:"email"`
	TenantID string `json:"tenantId"`
	Role     string `json:"role"`
}

// Login authenticates against the backend and returns a session
func (c *APIClient) Login(ctx context.Context, email, password string) (Session, error) {
	var zero Session
	if err := c.typedReady(); err != nil {
		return zero, err
	}
	env := c.gw.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	return gateway.Decode[Session](env)
}

// Clients

func (c *APIClient) ListClients(ctx context.Context, f shared.Filter) (shared.Paginated[crm.Client], error) {
	return list[crm.Client](ctx, c, "/clients", f)
}

func (c *APIClient) GetClient(ctx context.Context, id string) (crm.Client, error) {
	return getOne[crm.Client](ctx, c, "/clients/"+id)
}

func (c *APIClient) CreateClient(ctx context.Context, client crm.Client) (crm.Client, error) {
	return create(ctx, c, "/clients", client)
}

func (c *APIClient) UpdateClient(ctx context.Context, client crm.Client) (crm.Client, error) {
	return update(ctx, c, "/clients/"+client.ID, client)
}

func (c *APIClient) DeleteClient(ctx context.Context, id string) error {
	return del(ctx, c, "/clients/"+id)
}

// Leads

func (c *APIClient) ListLeads(ctx context.Context, f shared.Filter) (shared.Paginated[crm.Lead], error) {
	return list[crm.Lead](ctx, c, "/leads", f)
}

func (c *APIClient) GetLead(ctx context.Context, id string) (crm.Lead, error) {
	return getOne[crm.Lead](ctx, c, "/leads/"+id)
}

func (c *APIClient) CreateLead(ctx context.Context, lead crm.Lead) (crm.Lead, error) {
	return create(ctx, c, "/leads", lead)
}

func (c *APIClient) UpdateLead(ctx context.Context, lead crm.Lead) (crm.Lead, error) {
	return update(ctx, c, "/leads/"+lead.ID, lead)
}

func (c *APIClient) DeleteLead(ctx context.Context, id string) error {
	return del(ctx, c, "/leads/"+id)
}

// Orders

func (c *APIClient) ListOrders(ctx context.Context, f shared.Filter) (shared.Paginated[trade.Order], error) {
	return list[trade.Order](ctx, c, "/orders", f)
}

func (c *APIClient) GetOrder(ctx context.Context, orderNumber string) (trade.Order, error) {
	return getOne[trade.Order](ctx, c, "/orders/"+orderNumber)
}

func (c *APIClient) CreateOrder(ctx context.Context, order trade.Order) (trade.Order, error) {
	return create(ctx, c, "/orders", order)
}

func (c *APIClient) UpdateOrder(ctx context.Context, order trade.Order) (trade.Order, error) {
	return update(ctx, c, "/orders/"+order.OrderNumber, order)
}

func (c *APIClient) DeleteOrder(ctx context.Context, orderNumber string) error {
	return del(ctx, c, "/orders/"+orderNumber)
}

// Transactions

func (c *APIClient) ListTransactions(ctx context.Context, f shared.Filter) (shared.Paginated[finance.Transaction], error) {
	return list[finance.Transaction](ctx, c, "/transactions", f)
}

func (c *APIClient) GetTransaction(ctx context.Context, id string) (finance.Transaction, error) {
	return getOne[finance.Transaction](ctx, c, "/transactions/"+id)
}

func (c *APIClient) CreateTransaction(ctx context.Context, tx finance.Transaction) (finance.Transaction, error) {
	return create(ctx, c, "/transactions", tx)
}

func (c *APIClient) UpdateTransaction(ctx context.Context, tx finance.Transaction) (finance.Transaction, error) {
	return update(ctx, c, "/transactions/"+tx.ID, tx)
}

func (c *APIClient) DeleteTransaction(ctx context.Context, id string) error {
	return del(ctx, c, "/transactions/"+id)
}

// Employees

func (c *APIClient) ListEmployees(ctx context.Context, f shared.Filter) (shared.Paginated[hr.Employee], error) {
	return list[hr.Employee](ctx, c, "/employees", f)
}

func (c *APIClient) GetEmployee(ctx context.Context, id string) (hr.Employee, error) {
	return getOne[hr.Employee](ctx, c, "/employees/"+id)
}

func (c *APIClient) CreateEmployee(ctx context.Context, e hr.Employee) (hr.Employee, error) {
	return create(ctx, c, "/employees", e)
}

func (c *APIClient) UpdateEmployee(ctx context.Context, e hr.Employee) (hr.Employee, error) {
	return update(ctx, c, "/employees/"+e.ID, e)
}

func (c *APIClient) DeleteEmployee(ctx context.Context, id string) error {
	return del(ctx, c, "/employees/"+id)
}

// Consultants

func (c *APIClient) ListConsultants(ctx context.Context, f shared.Filter) (shared.Paginated[hr.Consultant], error) {
	return list[hr.Consultant](ctx, c, "/consultants", f)
}

func (c *APIClient) GetConsultant(ctx context.Context, id string) (hr.Consultant, error) {
	return getOne[hr.Consultant](ctx, c, "/consultants/"+id)
}

func (c *APIClient) CreateConsultant(ctx context.Context, co hr.Consultant) (hr.Consultant, error) {
	return create(ctx, c, "/consultants", co)
}

func (c *APIClient) UpdateConsultant(ctx context.Context, co hr.Consultant) (hr.Consultant, error) {
	return update(ctx, c, "/consultants/"+co.ID, co)
}

func (c *APIClient) DeleteConsultant(ctx context.Context, id string) error {
	return del(ctx, c, "/consultants/"+id)
}

// Documents and templates

func (c *APIClient) ListDocuments(ctx context.Context, f shared.Filter) (shared.Paginated[content.Document], error) {
	return list[content.Document](ctx, c, "/documents", f)
}

func (c *APIClient) GetDocument(ctx context.Context, id string) (content.Document, error) {
	return getOne[content.Document](ctx, c, "/documents/"+id)
}

func (c *APIClient) CreateDocument(ctx context.Context, d content.Document) (content.Document, error) {
	return create(ctx, c, "/documents", d)
}

func (c *APIClient) UpdateDocument(ctx context.Context, d content.Document) (content.Document, error) {
	return update(ctx, c, "/documents/"+d.ID, d)
}

func (c *APIClient) DeleteDocument(ctx context.Context, id string) error {
	return del(ctx, c, "/documents/"+id)
}

func (c *APIClient) ListTemplates(ctx context.Context, f shared.Filter) (shared.Paginated[content.Template], error) {
	return list[content.Template](ctx, c, "/templates", f)
}

func (c *APIClient) GetTemplate(ctx context.Context, id string) (content.Template, error) {
	return getOne[content.Template](ctx, c, "/templates/"+id)
}

func (c *APIClient) CreateTemplate(ctx context.Context, t content.Template) (content.Template, error) {
	return create(ctx, c, "/templates", t)
}

func (c *APIClient) UpdateTemplate(ctx context.Context, t content.Template) (content.Template, error) {
	return update(ctx, c, "/templates/"+t.ID, t)
}

func (c *APIClient) DeleteTemplate(ctx context.Context, id string) error {
	return del(ctx, c, "/templates/"+id)
}

// Notifications and channels

func (c *APIClient) ListNotifications(ctx context.Context, f shared.Filter) (shared.Paginated[messaging.Notification], error) {
	return list[messaging.Notification](ctx, c, "/notifications", f)
}

func (c *APIClient) GetNotification(ctx context.Context, id string) (messaging.Notification, error) {
	return getOne[messaging.Notification](ctx, c, "/notifications/"+id)
}

func (c *APIClient) MarkNotificationRead(ctx context.Context, id string) (messaging.Notification, error) {
	var zero messaging.Notification
	if err := c.typedReady(); err != nil {
		return zero, err
	}
	env := c.gw.Put(ctx, "/notifications/"+id+"/read", nil)
	return gateway.Decode[messaging.Notification](env)
}

func (c *APIClient) DeleteNotification(ctx context.Context, id string) error {
	return del(ctx, c, "/notifications/"+id)
}

func (c *APIClient) ListChannels(ctx context.Context, f shared.Filter) (shared.Paginated[messaging.CommunicationChannel], error) {
	return list[messaging.CommunicationChannel](ctx, c, "/communications/channels", f)
}

func (c *APIClient) GetChannel(ctx context.Context, id string) (messaging.CommunicationChannel, error) {
	return getOne[messaging.CommunicationChannel](ctx, c, "/communications/channels/"+id)
}

func (c *APIClient) UpdateChannel(ctx context.Context, ch messaging.CommunicationChannel) (messaging.CommunicationChannel, error) {
	return update(ctx, c, "/communications/channels/"+ch.ID, ch)
}

// Security events

func (c *APIClient) ListSecurityEvents(ctx context.Context, f shared.Filter) (shared.Paginated[security.Event], error) {
	return list[security.Event](ctx, c, "/security/events", f)
}

func (c *APIClient) GetSecurityEvent(ctx context.Context, id string) (security.Event, error) {
	return getOne[security.Event](ctx, c, "/security/events/"+id)
}

// Aggregates

func (c *APIClient) DashboardStats(ctx context.Context) (analytics.DashboardStats, error) {
	return getOne[analytics.DashboardStats](ctx, c, "/dashboard/stats")
}

func (c *APIClient) FinanceSummary(ctx context.Context) (finance.Summary, error) {
	return getOne[finance.Summary](ctx, c, "/finance/summary")
}

func (c *APIClient) AnalyticsSnapshot(ctx context.Context) (analytics.Snapshot, error) {
	return getOne[analytics.Snapshot](ctx, c, "/analytics/snapshot")
}
