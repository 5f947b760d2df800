package trade

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOrderRecalculate(t *testing.T) {
	t.Run("totals derive from items", func(t *testing.T) {
		o := Order{
			Items: []OrderItem{
				{Quantity: d("2"), Rate: d("100"), GSTRate: d("18")},
				{Quantity: d("1"), Rate: d("50"), GSTRate: d("18")},
			},
		}
		o.Recalculate()

		assert.True(t, o.TotalAmount.Equal(d("250")), "total %s", o.TotalAmount)
		assert.True(t, o.GSTAmount.Equal(d("45")), "gst %s", o.GSTAmount)
		assert.True(t, o.NetAmount.Equal(d("295")), "net %s", o.NetAmount)
		assert.True(t, o.BalanceAmount.Equal(d("295")))
		assert.Equal(t, PaymentStatusUnpaid, o.PaymentStatus)
	})

	t.Run("balance equals net minus paid", func(t *testing.T) {
		o := Order{
			PaidAmount: d("100"),
			Items:      []OrderItem{{Quantity: d("2"), Rate: d("100"), GSTRate: d("18")}},
		}
		o.Recalculate()

		assert.True(t, o.BalanceAmount.Equal(d("136")), "balance %s", o.BalanceAmount)
		assert.Equal(t, PaymentStatusPartial, o.PaymentStatus)
	})

	t.Run("full payment flips status", func(t *testing.T) {
		o := Order{Items: []OrderItem{{Quantity: d("1"), Rate: d("100"), GSTRate: d("0")}}}
		o.Recalculate()
		o.RecordPayment(d("100"))

		assert.Equal(t, PaymentStatusPaid, o.PaymentStatus)
		assert.True(t, o.BalanceAmount.IsZero())
	})

	t.Run("no items zeroes totals", func(t *testing.T) {
		o := Order{TotalAmount: d("999")}
		o.Recalculate()
		assert.True(t, o.TotalAmount.IsZero())
	})
}

func TestNewOrderNumber(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	n := NewOrderNumber(at)

	assert.True(t, strings.HasPrefix(n, "ORD-20260828-"), n)
	assert.Len(t, n, len("ORD-20260828-")+6)

	assert.NotEqual(t, n, NewOrderNumber(at), "order numbers must not collide")
}
