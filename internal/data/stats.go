package data

import (
	"github.com/shopspring/decimal"

	"github.com/bizdash/bizdash/internal/domain/crm"
	"github.com/bizdash/bizdash/internal/domain/messaging"
	"github.com/bizdash/bizdash/internal/domain/trade"
)

// Pure reductions over fetched lists. These never touch the network; the
// caller decides which page (or full set) to reduce.

// ClientStats summarizes a client list
type ClientStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// ReduceClients counts clients by status
func ReduceClients(clients []crm.Client) ClientStats {
	var s ClientStats
	for _, c := range clients {
		s.Total++
		switch c.Status {
		case crm.ClientStatusActive:
			s.Active++
		case crm.ClientStatusInactive:
			s.Inactive++
		}
	}
	return s
}

// LeadStats summarizes a lead list
type LeadStats struct {
	Total          int     `json:"total"`
	Open           int     `json:"open"`
	New            int     `json:"new"`
	Converted      int     `json:"converted"`
	HighPriority   int     `json:"highPriority"`
	ConversionRate float64 `json:"conversionRate"`
}

// ReduceLeads counts leads by funnel stage and priority
func ReduceLeads(leads []crm.Lead) LeadStats {
	var s LeadStats
	for _, l := range leads {
		s.Total++
		if l.IsOpen() {
			s.Open++
		}
		if l.Status == crm.LeadStatusNew {
			s.New++
		}
		if l.Status == crm.LeadStatusConvert {
			s.Converted++
		}
		if l.Priority == crm.LeadPriorityHigh {
			s.HighPriority++
		}
	}
	if s.Total > 0 {
		s.ConversionRate = float64(s.Converted) / float64(s.Total)
	}
	return s
}

// OrderStats summarizes an order list with decimal sums
type OrderStats struct {
	Total       int             `json:"total"`
	Pending     int             `json:"pending"`
	InProgress  int             `json:"inProgress"`
	Completed   int             `json:"completed"`
	Cancelled   int             `json:"cancelled"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	Collected   decimal.Decimal `json:"collected"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// ReduceOrders counts orders by status and sums the money columns
func ReduceOrders(orders []trade.Order) OrderStats {
	var s OrderStats
	for _, o := range orders {
		s.Total++
		switch o.Status {
		case trade.OrderStatusPending:
			s.Pending++
		case trade.OrderStatusInProgress:
			s.InProgress++
		case trade.OrderStatusCompleted:
			s.Completed++
		case trade.OrderStatusCancelled:
			s.Cancelled++
		}
		s.TotalValue = s.TotalValue.Add(o.NetAmount)
		s.Collected = s.Collected.Add(o.PaidAmount)
		s.Outstanding = s.Outstanding.Add(o.BalanceAmount)
	}
	return s
}

// NotificationStats summarizes a notification list
type NotificationStats struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}

// ReduceNotifications counts unread notifications
func ReduceNotifications(notifications []messaging.Notification) NotificationStats {
	var s NotificationStats
	for _, n := range notifications {
		s.Total++
		if n.IsUnread() {
			s.Unread++
		}
	}
	return s
}
