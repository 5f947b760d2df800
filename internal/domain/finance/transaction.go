package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is a ledger entry, optionally tied to an order
type Transaction struct {
	ID          string          `json:"id" gorm:"type:varchar(36);primaryKey"`
	TenantID    string          `json:"tenantId" gorm:"type:varchar(36);index"`
	Type        TransactionType `json:"type" gorm:"type:varchar(10);not null"`
	Category    string          `json:"category" gorm:"type:varchar(100)"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(18,4);not null;default:0"`
	OrderNumber string          `json:"orderNumber,omitempty" gorm:"type:varchar(30);index"`
	Description string          `json:"description" gorm:"type:varchar(500)"`
	Date        time.Time       `json:"date"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewTransaction creates a ledger entry dated now
func NewTransaction(tenantID string, kind TransactionType, category string, amount decimal.Decimal) *Transaction {
	return &Transaction{
		ID:       uuid.New().String(),
		TenantID: tenantID,
		Type:     kind,
		Category: category,
		Amount:   amount,
		Date:     time.Now(),
	}
}

// Signed returns the amount with expenses negated
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// CategoryTotal is one slice of the income/expense breakdown
type CategoryTotal struct {
	Category string          `json:"category"`
	Type     TransactionType `json:"type"`
	Total    decimal.Decimal `json:"total"`
}

// Summary is the aggregated view of a set of transactions
type Summary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetProfit    decimal.Decimal `json:"netProfit"`
	ByCategory   []CategoryTotal `json:"byCategory"`
}

// Summarize reduces transactions into totals and a per-category breakdown.
// Category order follows first appearance in the input.
func Summarize(txs []Transaction) Summary {
	s := Summary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	index := make(map[string]int)
	for _, tx := range txs {
		switch tx.Type {
		case TransactionTypeIncome:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
		case TransactionTypeExpense:
			s.TotalExpense = s.TotalExpense.Add(tx.Amount)
		}
		key := string(tx.Type) + ":" + tx.Category
		if i, ok := index[key]; ok {
			s.ByCategory[i].Total = s.ByCategory[i].Total.Add(tx.Amount)
		} else {
			index[key] = len(s.ByCategory)
			s.ByCategory = append(s.ByCategory, CategoryTotal{
				Category: tx.Category,
				Type:     tx.Type,
				Total:    tx.Amount,
			})
		}
	}
	s.NetProfit = s.TotalIncome.Sub(s.TotalExpense)
	return s
}
