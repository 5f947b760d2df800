package fixtures

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizdash/bizdash/internal/domain/analytics"
	"github.com/bizdash/bizdash/internal/domain/crm"
	"github.com/bizdash/bizdash/internal/domain/finance"
)

// revenueSeriesMonths is the chart window served by the analytics endpoint
const revenueSeriesMonths = 6

// AnalyticsSnapshot reduces the fixture state into the analytics view:
// a monthly revenue/expense series, the lead conversion rate and the top
// clients by billed revenue.
func (s *Store) AnalyticsSnapshot(now time.Time) analytics.Snapshot {
	snap := analytics.Snapshot{
		Period: now.Format("2006-01"),
	}

	byMonth := make(map[string]*analytics.RevenuePoint)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(revenueSeriesMonths - 1), 0)
	for i := 0; i < revenueSeriesMonths; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		point := &analytics.RevenuePoint{Month: month}
		byMonth[month] = point
	}

	for _, tx := range s.Transactions.All() {
		point, ok := byMonth[tx.Date.Format("2006-01")]
		if !ok {
			continue
		}
		switch tx.Type {
		case finance.TransactionTypeIncome:
			point.Revenue = point.Revenue.Add(tx.Amount)
			snap.Revenue = snap.Revenue.Add(tx.Amount)
		case finance.TransactionTypeExpense:
			point.Expenses = point.Expenses.Add(tx.Amount)
			snap.Expenses = snap.Expenses.Add(tx.Amount)
		}
	}
	for i := 0; i < revenueSeriesMonths; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		snap.RevenueSeries = append(snap.RevenueSeries, *byMonth[month])
	}

	var total, converted int
	for _, l := range s.Leads.All() {
		total++
		if l.Status == crm.LeadStatusConvert {
			converted++
		}
	}
	if total > 0 {
		snap.LeadConversionRate = float64(converted) / float64(total)
	}

	snap.TopClients = s.topClients(5)
	return snap
}

// topClients ranks clients by paid order revenue
func (s *Store) topClients(n int) []analytics.ClientRevenue {
	names := make(map[string]string)
	for _, c := range s.Clients.All() {
		names[c.ID] = c.ClientName
	}

	revenue := make(map[string]decimal.Decimal)
	for _, o := range s.Orders.All() {
		if o.ClientID == "" {
			continue
		}
		revenue[o.ClientID] = revenue[o.ClientID].Add(o.PaidAmount)
	}

	ranked := make([]analytics.ClientRevenue, 0, len(revenue))
	for id, amount := range revenue {
		ranked = append(ranked, analytics.ClientRevenue{
			ClientID:   id,
			ClientName: names[id],
			Revenue:    amount,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Revenue.Equal(ranked[j].Revenue) {
			return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
		}
		return ranked[i].ClientID < ranked[j].ClientID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
