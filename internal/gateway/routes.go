package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/bizdash/bizdash/internal/domain/content"
	"github.com/bizdash/bizdash/internal/domain/crm"
	"github.com/bizdash/bizdash/internal/domain/finance"
	"github.com/bizdash/bizdash/internal/domain/hr"
	"github.com/bizdash/bizdash/internal/domain/messaging"
	"github.com/bizdash/bizdash/internal/domain/security"
	"github.com/bizdash/bizdash/internal/domain/shared"
	"github.com/bizdash/bizdash/internal/domain/trade"
	"github.com/bizdash/bizdash/internal/fixtures"
)

// marshalBody normalizes a request body into raw JSON
func marshalBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return raw, nil
	}
}

// filterFromParams rebuilds the list filter from query parameters.
// Unknown parameters become domain-specific filters so two different
// filter combinations never collide downstream.
func filterFromParams(params url.Values) shared.Filter {
	f := shared.DefaultFilter()
	for key, values := range params {
		if len(values) == 0 {
			continue
		}
		value := values[0]
		switch key {
		case "page":
			if n, err := strconv.Atoi(value); err == nil {
				f.Page = n
			}
		case "limit":
			if n, err := strconv.Atoi(value); err == nil {
				f.Limit = n
			}
		case "search":
			f.Search = value
		case "status":
			f.Status = value
		default:
			if f.Filters == nil {
				f.Filters = make(map[string]string)
			}
			f.Filters[key] = value
		}
	}
	return f.Normalize()
}

// crudRoutes wires the five standard operations for one fixture
// collection under the given base path. onWrite runs on decoded bodies
// before they are stored (id assignment, derived fields).
func crudRoutes[E any](base string, col *fixtures.Collection[E], onWrite func(*E)) []mockRoute {
	listPattern := regexp.MustCompile("^" + base + "$")
	itemPattern := regexp.MustCompile("^" + base + "/([^/]+)$")

	decode := func(body []byte) (E, error) {
		var v E
		if len(body) == 0 {
			return v, shared.ErrInvalidInput
		}
		if err := json.Unmarshal(body, &v); err != nil {
			return v, fmt.Errorf("%s: %w", shared.ErrInvalidInput.Message, err)
		}
		return v, nil
	}

	return []mockRoute{
		{"GET", listPattern, func(_ context.Context, _ []string, params url.Values, _ []byte) Envelope {
			return OK(col.List(filterFromParams(params)))
		}},
		{"POST", listPattern, func(_ context.Context, _ []string, _ url.Values, body []byte) Envelope {
			v, err := decode(body)
			if err != nil {
				return FailErr("INVALID_INPUT", err)
			}
			if onWrite != nil {
				onWrite(&v)
			}
			return OK(col.Insert(v))
		}},
		{"GET", itemPattern, func(_ context.Context, match []string, _ url.Values, _ []byte) Envelope {
			v, err := col.Get(match[1])
			if err != nil {
				return FailErr("NOT_FOUND", err)
			}
			return OK(v)
		}},
		{"PUT", itemPattern, func(_ context.Context, match []string, _ url.Values, body []byte) Envelope {
			v, err := decode(body)
			if err != nil {
				return FailErr("INVALID_INPUT", err)
			}
			if onWrite != nil {
				onWrite(&v)
			}
			updated, err := col.Update(match[1], v)
			if err != nil {
				return FailErr("NOT_FOUND", err)
			}
			return OK(updated)
		}},
		{"DELETE", itemPattern, func(_ context.Context, match []string, _ url.Values, _ []byte) Envelope {
			if err := col.Delete(match[1]); err != nil {
				return FailErr("NOT_FOUND", err)
			}
			return OKMessage("deleted")
		}},
	}
}

// buildRoutes assembles the full mock route table over a fixture store
func buildRoutes(store *fixtures.Store) []mockRoute {
	var routes []mockRoute

	routes = append(routes, crudRoutes("/clients", store.Clients, func(c *crm.Client) {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.TenantID == "" {
			c.TenantID = store.TenantID
		}
		if c.EntryDate.IsZero() {
			c.EntryDate = time.Now()
		}
		if c.Status == "" {
			c.Status = crm.ClientStatusActive
		}
		c.SyncAliases()
	})...)

	routes = append(routes, crudRoutes("/leads", store.Leads, func(l *crm.Lead) {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		if l.TenantID == "" {
			l.TenantID = store.TenantID
		}
		if l.Status == "" {
			l.Status = crm.LeadStatusNew
		}
		if l.Priority == "" {
			l.Priority = crm.LeadPriorityMedium
		}
		if l.CreatedAt.IsZero() {
			l.CreatedAt = time.Now()
		}
	})...)

	routes = append(routes, crudRoutes("/orders", store.Orders, func(o *trade.Order) {
		if o.OrderNumber == "" {
			o.OrderNumber = trade.NewOrderNumber(time.Now())
		}
		if o.TenantID == "" {
			o.TenantID = store.TenantID
		}
		if o.OrderDate.IsZero() {
			o.OrderDate = time.Now()
		}
		if o.Status == "" {
			o.Status = trade.OrderStatusPending
		}
		o.Recalculate()
	})...)

	routes = append(routes, crudRoutes("/transactions", store.Transactions, func(t *finance.Transaction) {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.TenantID == "" {
			t.TenantID = store.TenantID
		}
		if t.Date.IsZero() {
			t.Date = time.Now()
		}
	})...)

	routes = append(routes, crudRoutes("/employees", store.Employees, func(e *hr.Employee) {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.TenantID == "" {
			e.TenantID = store.TenantID
		}
		if e.Status == "" {
			e.Status = hr.EmployeeStatusActive
		}
	})...)

	routes = append(routes, crudRoutes("/consultants", store.Consultants, func(c *hr.Consultant) {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.TenantID == "" {
			c.TenantID = store.TenantID
		}
		if c.Status == "" {
			c.Status = hr.EmployeeStatusActive
		}
	})...)

	routes = append(routes, crudRoutes("/documents", store.Documents, func(d *content.Document) {
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		if d.TenantID == "" {
			d.TenantID = store.TenantID
		}
		if d.CreatedAt.IsZero() {
			d.CreatedAt = time.Now()
		}
	})...)

	routes = append(routes, crudRoutes("/templates", store.Templates, func(t *content.Template) {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.TenantID == "" {
			t.TenantID = store.TenantID
		}
	})...)

	routes = append(routes, crudRoutes("/notifications", store.Notifications, func(n *messaging.Notification) {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if n.TenantID == "" {
			n.TenantID = store.TenantID
		}
		if n.Status == "" {
			n.Status = messaging.DeliveryPending
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = time.Now()
		}
	})...)

	routes = append(routes, crudRoutes("/communications/channels", store.Channels, func(c *messaging.CommunicationChannel) {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.TenantID == "" {
			c.TenantID = store.TenantID
		}
	})...)

	routes = append(routes, crudRoutes("/security/events", store.SecurityEvents, func(e *security.Event) {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.TenantID == "" {
			e.TenantID = store.TenantID
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now()
		}
	})...)

	// Mark-read shortcut the notification bell uses.
	routes = append(routes, mockRoute{
		"PUT", regexp.MustCompile(`^/notifications/([^/]+)/read$`),
		func(_ context.Context, match []string, _ url.Values, _ []byte) Envelope {
			n, err := store.Notifications.Get(match[1])
			if err != nil {
				return FailErr("NOT_FOUND", err)
			}
			n.MarkRead(time.Now())
			updated, err := store.Notifications.Update(n.ID, n)
			if err != nil {
				return FailErr("NOT_FOUND", err)
			}
			return OK(updated)
		},
	})

	routes = append(routes, mockRoute{
		"POST", regexp.MustCompile(`^/auth/login$`),
		func(_ context.Context, _ []string, _ url.Values, body []byte) Envelope {
			var creds struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			if err := json.Unmarshal(body, &creds); err != nil || creds.Email == "" {
				return Fail("INVALID_CREDENTIALS", "Email and password are required")
			}
			return OK(map[string]any{
				"token": "mock-token-" + uuid.NewString(),
				"user": map[string]any{
					"email":    creds.Email,
					"tenantId": store.TenantID,
					"role":     "admin",
				},
			})
		},
	})

	routes = append(routes, mockRoute{
		"GET", regexp.MustCompile(`^/dashboard/stats$`),
		func(_ context.Context, _ []string, _ url.Values, _ []byte) Envelope {
			return OK(store.DashboardStats())
		},
	})

	routes = append(routes, mockRoute{
		"GET", regexp.MustCompile(`^/finance/summary$`),
		func(_ context.Context, _ []string, _ url.Values, _ []byte) Envelope {
			return OK(store.FinanceSummary())
		},
	})

	routes = append(routes, mockRoute{
		"GET", regexp.MustCompile(`^/analytics/snapshot$`),
		func(_ context.Context, _ []string, _ url.Values, _ []byte) Envelope {
			return OK(store.AnalyticsSnapshot(time.Now()))
		},
	})

	return routes
}
