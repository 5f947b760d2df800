// Package fixtures holds the in-memory data set the mock gateway serves.
// The content is synthetic; only its shape and the list/filter semantics
// matter.
package fixtures

import (
	"github.com/bizdash/bizdash/internal/domain/analytics"
	"github.com/bizdash/bizdash/internal/domain/content"
	"github.com/bizdash/bizdash/internal/domain/crm"
	"github.com/bizdash/bizdash/internal/domain/finance"
	"github.com/bizdash/bizdash/internal/domain/hr"
	"github.com/bizdash/bizdash/internal/domain/messaging"
	"github.com/bizdash/bizdash/internal/domain/security"
	"github.com/bizdash/bizdash/internal/domain/shared"
	"github.com/bizdash/bizdash/internal/domain/trade"
)

// Store aggregates every fixture collection for one tenant
type Store struct {
	TenantID string

	Clients        *Collection[crm.Client]
	Leads          *Collection[crm.Lead]
	Orders         *Collection[trade.Order]
	Transactions   *Collection[finance.Transaction]
	Employees      *Collection[hr.Employee]
	Consultants    *Collection[hr.Consultant]
	Documents      *Collection[content.Document]
	Templates      *Collection[content.Template]
	Notifications  *Collection[messaging.Notification]
	Channels       *Collection[messaging.CommunicationChannel]
	SecurityEvents *Collection[security.Event]
}

// NewStore creates an empty store for the given tenant
func NewStore(tenantID string) *Store {
	return &Store{
		TenantID: tenantID,

		Clients: NewCollection(
			func(c crm.Client) string { return c.ID },
			func(c *crm.Client, id string) { c.ID = id },
			matchClient),
		Leads: NewCollection(
			func(l crm.Lead) string { return l.ID },
			func(l *crm.Lead, id string) { l.ID = id },
			matchLead),
		Orders: NewCollection(
			func(o trade.Order) string { return o.OrderNumber },
			func(o *trade.Order, id string) { o.OrderNumber = id },
			matchOrder),
		Transactions: NewCollection(
			func(t finance.Transaction) string { return t.ID },
			func(t *finance.Transaction, id string) { t.ID = id },
			matchTransaction),
		Employees: NewCollection(
			func(e hr.Employee) string { return e.ID },
			func(e *hr.Employee, id string) { e.ID = id },
			matchEmployee),
		Consultants: NewCollection(
			func(c hr.Consultant) string { return c.ID },
			func(c *hr.Consultant, id string) { c.ID = id },
			matchConsultant),
		Documents: NewCollection(
			func(d content.Document) string { return d.ID },
			func(d *content.Document, id string) { d.ID = id },
			matchDocument),
		Templates: NewCollection(
			func(t content.Template) string { return t.ID },
			func(t *content.Template, id string) { t.ID = id },
			matchTemplate),
		Notifications: NewCollection(
			func(n messaging.Notification) string { return n.ID },
			func(n *messaging.Notification, id string) { n.ID = id },
			matchNotification),
		Channels: NewCollection(
			func(c messaging.CommunicationChannel) string { return c.ID },
			func(c *messaging.CommunicationChannel, id string) { c.ID = id },
			matchChannel),
		SecurityEvents: NewCollection(
			func(e security.Event) string { return e.ID },
			func(e *security.Event, id string) { e.ID = id },
			matchSecurityEvent),
	}
}

func matchClient(c crm.Client, f shared.Filter) bool {
	if f.Status != "" && string(c.Status) != f.Status {
		return false
	}
	if f.Search != "" &&
		!containsFold(c.ClientName, f.Search) &&
		!containsFold(c.ClientEmail, f.Search) &&
		!containsFold(c.ClientContact, f.Search) {
		return false
	}
	return true
}

func matchLead(l crm.Lead, f shared.Filter) bool {
	if f.Status != "" && string(l.Status) != f.Status {
		return false
	}
	if p := f.Filters["priority"]; p != "" && string(l.Priority) != p {
		return false
	}
	if f.Search != "" && !containsFold(l.Name, f.Search) && !containsFold(l.Contact, f.Search) {
		return false
	}
	return true
}

func matchOrder(o trade.Order, f shared.Filter) bool {
	if f.Status != "" && string(o.Status) != f.Status {
		return false
	}
	if ps := f.Filters["paymentStatus"]; ps != "" && string(o.PaymentStatus) != ps {
		return false
	}
	if cid := f.Filters["clientId"]; cid != "" && o.ClientID != cid {
		return false
	}
	if f.Search != "" && !containsFold(o.OrderNumber, f.Search) {
		return false
	}
	return true
}

func matchTransaction(t finance.Transaction, f shared.Filter) bool {
	if kind := f.Filters["type"]; kind != "" && string(t.Type) != kind {
		return false
	}
	if f.Search != "" &&
		!containsFold(t.Category, f.Search) &&
		!containsFold(t.Description, f.Search) &&
		!containsFold(t.OrderNumber, f.Search) {
		return false
	}
	return true
}

func matchEmployee(e hr.Employee, f shared.Filter) bool {
	if f.Status != "" && string(e.Status) != f.Status {
		return false
	}
	if dep := f.Filters["department"]; dep != "" && e.Department != dep {
		return false
	}
	if f.Search != "" && !containsFold(e.Name, f.Search) && !containsFold(e.Email, f.Search) {
		return false
	}
	return true
}

func matchConsultant(c hr.Consultant, f shared.Filter) bool {
	if f.Status != "" && string(c.Status) != f.Status {
		return false
	}
	if f.Search != "" && !containsFold(c.Name, f.Search) && !containsFold(c.Specialization, f.Search) {
		return false
	}
	return true
}

func matchDocument(d content.Document, f shared.Filter) bool {
	if cat := f.Filters["category"]; cat != "" && d.Category != cat {
		return false
	}
	if kind := f.Filters["type"]; kind != "" && d.Type != kind {
		return false
	}
	if f.Search != "" && !containsFold(d.Name, f.Search) {
		return false
	}
	return true
}

func matchTemplate(t content.Template, f shared.Filter) bool {
	if ch := f.Filters["channel"]; ch != "" && t.Channel != ch {
		return false
	}
	if f.Search != "" && !containsFold(t.Name, f.Search) {
		return false
	}
	return true
}

func matchNotification(n messaging.Notification, f shared.Filter) bool {
	if f.Status != "" && string(n.Status) != f.Status {
		return false
	}
	if ch := f.Filters["channel"]; ch != "" && string(n.Channel) != ch {
		return false
	}
	if f.Search != "" && !containsFold(n.Title, f.Search) && !containsFold(n.Message, f.Search) {
		return false
	}
	return true
}

func matchChannel(c messaging.CommunicationChannel, f shared.Filter) bool {
	if kind := f.Filters["type"]; kind != "" && string(c.Type) != kind {
		return false
	}
	if f.Search != "" && !containsFold(c.Name, f.Search) {
		return false
	}
	return true
}

func matchSecurityEvent(e security.Event, f shared.Filter) bool {
	if sev := f.Filters["severity"]; sev != "" && string(e.Severity) != sev {
		return false
	}
	if f.Search != "" && !containsFold(e.Actor, f.Search) && !containsFold(e.Action, f.Search) {
		return false
	}
	return true
}

// DashboardStats reduces the current fixture state into headline numbers
func (s *Store) DashboardStats() analytics.DashboardStats {
	stats := analytics.DashboardStats{}

	for _, c := range s.Clients.All() {
		stats.TotalClients++
		if c.IsActive() {
			stats.ActiveClients++
		}
	}
	for _, o := range s.Orders.All() {
		stats.TotalOrders++
		if o.Status == trade.OrderStatusPending {
			stats.PendingOrders++
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(o.PaidAmount)
		stats.OutstandingBalance = stats.OutstandingBalance.Add(o.BalanceAmount)
	}
	for _, l := range s.Leads.All() {
		if l.Status == crm.LeadStatusNew {
			stats.NewLeads++
		}
	}
	for _, n := range s.Notifications.All() {
		if n.IsUnread() {
			stats.UnreadNotifications++
		}
	}
	return stats
}

// FinanceSummary reduces the transaction ledger
func (s *Store) FinanceSummary() finance.Summary {
	return finance.Summarize(s.Transactions.All())
}
