package analytics

import (
	"github.com/shopspring/decimal"
)

// RevenuePoint is one month on the revenue/expense chart
type RevenuePoint struct {
	Month    string          `json:"month"` // "2026-08"
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
}

// ClientRevenue ranks a client by billed revenue
type ClientRevenue struct {
	ClientID   string          `json:"clientId"`
	ClientName string          `json:"clientName"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// Snapshot is the analytics view for one reporting period
type Snapshot struct {
	Period             string          `json:"period"`
	Revenue            decimal.Decimal `json:"revenue"`
	Expenses           decimal.Decimal `json:"expenses"`
	LeadConversionRate float64         `json:"leadConversionRate"`
	RevenueSeries      []RevenuePoint  `json:"revenueSeries"`
	TopClients         []ClientRevenue `json:"topClients"`
}

// DashboardStats is the headline card set on the landing dashboard
type DashboardStats struct {
	TotalClients        int             `json:"totalClients"`
	ActiveClients       int             `json:"activeClients"`
	TotalOrders         int             `json:"totalOrders"`
	PendingOrders       int             `json:"pendingOrders"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	OutstandingBalance  decimal.Decimal `json:"outstandingBalance"`
	NewLeads            int             `json:"newLeads"`
	UnreadNotifications int             `json:"unreadNotifications"`
}
