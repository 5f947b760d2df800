package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSigned(t *testing.T) {
	income := Transaction{Type: TransactionTypeIncome, Amount: d("100")}
	expense := Transaction{Type: TransactionTypeExpense, Amount: d("40")}

	assert.True(t, income.Signed().Equal(d("100")))
	assert.True(t, expense.Signed().Equal(d("-40")))
}

func TestSummarize(t *testing.T) {
	txs := []Transaction{
		{Type: TransactionTypeIncome, Category: "sales", Amount: d("1000")},
		{Type: TransactionTypeExpense, Category: "rent", Amount: d("300")},
		{Type: TransactionTypeIncome, Category: "sales", Amount: d("500")},
		{Type: TransactionTypeExpense, Category: "salary", Amount: d("400")},
	}

	s := Summarize(txs)

	assert.True(t, s.TotalIncome.Equal(d("1500")), "income %s", s.TotalIncome)
	assert.True(t, s.TotalExpense.Equal(d("700")), "expense %s", s.TotalExpense)
	assert.True(t, s.NetProfit.Equal(d("800")), "profit %s", s.NetProfit)

	require.Len(t, s.ByCategory, 3)
	assert.Equal(t, "sales", s.ByCategory[0].Category)
	assert.True(t, s.ByCategory[0].Total.Equal(d("1500")))
	assert.Equal(t, "rent", s.ByCategory[1].Category)
	assert.Equal(t, "salary", s.ByCategory[2].Category)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpense.IsZero())
	assert.True(t, s.NetProfit.IsZero())
	assert.Empty(t, s.ByCategory)
}
