package domain

import "github.com/shopspring/decimal"

// MonthlySummary totals a calendar month across both entry types.
type MonthlySummary struct {
	Month            int
	Year             int
	TotalExpenses    decimal.Decimal
	TotalIncome      decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int64
}

// CategoryAggregate is one row of a grouped-by-category query. Only
// entries with a resolvable category join participate.
type CategoryAggregate struct {
	CategoryID   int32
	CategoryName string
	Color        string
	Icon         string
	Total        decimal.Decimal
	Count        int64
}

// CategoryBreakdownItem adds the share of the overall total.
type CategoryBreakdownItem struct {
	CategoryAggregate
	Percentage decimal.Decimal
}

type CategoryBreakdown struct {
	Month        int
	Year         int
	Type         EntryType
	TotalOverall decimal.Decimal
	Categories   []*CategoryBreakdownItem
}

// PaymentMethodAggregate is one row of a grouped-by-payment-method
// query. Method is empty when the entry had none recorded.
type PaymentMethodAggregate struct {
	Method string
	Total  decimal.Decimal
	Count  int64
}

type PaymentMethodBreakdownItem struct {
	Method     string
	Total      decimal.Decimal
	Count      int64
	Percentage decimal.Decimal
}

type PaymentMethodBreakdown struct {
	Month        int
	Year         int
	TotalOverall decimal.Decimal
	Methods      []*PaymentMethodBreakdownItem
}

// EvolutionPoint is one month of the spending evolution series. With a
// type filter only Value is set; otherwise Expenses, Income and
// Balance are.
type EvolutionPoint struct {
	Month    int
	Year     int
	Label    string
	Value    *decimal.Decimal
	Expenses *decimal.Decimal
	Income   *decimal.Decimal
	Balance  *decimal.Decimal
}

// BudgetUsage compares one category's monthly budget against the
// expenses actually recorded in the period.
type BudgetUsage struct {
	BudgetID     int32
	CategoryID   int32
	CategoryName string
	Color        string
	Icon         string
	Limit        decimal.Decimal
	Spent        decimal.Decimal
	Remaining    decimal.Decimal
	PercentUsed  decimal.Decimal
}

type BudgetReport struct {
	Month      int
	Year       int
	TotalLimit decimal.Decimal
	TotalSpent decimal.Decimal
	Budgets    []*BudgetUsage
}
