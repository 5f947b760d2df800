package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus represents how much of the order has been paid
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// OrderItem is a single line entry on an order with its GST breakdown
type OrderItem struct {
	ID          string          `json:"id" gorm:"type:varchar(36);primaryKey"`
	OrderNumber string          `json:"orderNumber" gorm:"type:varchar(30);index"`
	Description string          `json:"description" gorm:"type:varchar(500)"`
	Quantity    decimal.Decimal `json:"quantity" gorm:"type:decimal(18,4);not null;default:0"`
	Rate        decimal.Decimal `json:"rate" gorm:"type:decimal(18,4);not null;default:0"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(18,4);not null;default:0"`
	GSTRate     decimal.Decimal `json:"gstRate" gorm:"type:decimal(5,2);not null;default:0"`
	GSTAmount   decimal.Decimal `json:"gstAmount" gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Recalculate derives the line amounts from quantity, rate and GST rate
func (i *OrderItem) Recalculate() {
	i.Amount = i.Quantity.Mul(i.Rate)
	i.GSTAmount = i.Amount.Mul(i.GSTRate).Div(decimal.NewFromInt(100))
}

// Order represents a client order. OrderNumber is the identity.
// BalanceAmount always equals NetAmount minus PaidAmount after
// Recalculate; the invariant is not enforced on raw decoded records.
type Order struct {
	OrderNumber   string          `json:"orderNumber" gorm:"type:varchar(30);primaryKey"`
	TenantID      string          `json:"tenantId" gorm:"type:varchar(36);index"`
	ClientID      string          `json:"clientId" gorm:"type:varchar(36);index"`
	OrderDate     time.Time       `json:"orderDate"`
	Status        OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentStatus PaymentStatus   `json:"paymentStatus" gorm:"type:varchar(20);not null;default:'unpaid'"`
	TotalAmount   decimal.Decimal `json:"totalAmount" gorm:"type:decimal(18,4);not null;default:0"`
	GSTAmount     decimal.Decimal `json:"gstAmount" gorm:"type:decimal(18,4);not null;default:0"`
	NetAmount     decimal.Decimal `json:"netAmount" gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmount    decimal.Decimal `json:"paidAmount" gorm:"type:decimal(18,4);not null;default:0"`
	BalanceAmount decimal.Decimal `json:"balanceAmount" gorm:"type:decimal(18,4);not null;default:0"`
	Items         []OrderItem     `json:"items" gorm:"foreignKey:OrderNumber;references:OrderNumber"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrderNumber generates an order identity like ORD-20260828-1A2B3C
func NewOrderNumber(at time.Time) string {
	suffix := uuid.New().String()[:6]
	return fmt.Sprintf("ORD-%s-%s", at.Format("20060102"), suffix)
}

// NewOrder creates an order for the given client
func NewOrder(tenantID, clientID string) *Order {
	now := time.Now()
	return &Order{
		OrderNumber:   NewOrderNumber(now),
		TenantID:      tenantID,
		ClientID:      clientID,
		OrderDate:     now,
		Status:        OrderStatusPending,
		PaymentStatus: PaymentStatusUnpaid,
		CreatedAt:     now,
	}
}

// Recalculate recomputes item amounts, order totals, the outstanding
// balance and the payment status
func (o *Order) Recalculate() {
	total := decimal.Zero
	gst := decimal.Zero
	for idx := range o.Items {
		o.Items[idx].Recalculate()
		total = total.Add(o.Items[idx].Amount)
		gst = gst.Add(o.Items[idx].GSTAmount)
	}
	o.TotalAmount = total
	o.GSTAmount = gst
	o.NetAmount = total.Add(gst)
	o.BalanceAmount = o.NetAmount.Sub(o.PaidAmount)

	switch {
	case o.PaidAmount.IsZero():
		o.PaymentStatus = PaymentStatusUnpaid
	case o.PaidAmount.GreaterThanOrEqual(o.NetAmount):
		o.PaymentStatus = PaymentStatusPaid
	default:
		o.PaymentStatus = PaymentStatusPartial
	}
}

// RecordPayment adds a payment and recomputes the balance
func (o *Order) RecordPayment(amount decimal.Decimal) {
	o.PaidAmount = o.PaidAmount.Add(amount)
	o.Recalculate()
}
