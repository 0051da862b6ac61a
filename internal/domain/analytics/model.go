package analytics

import "time"

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// OverviewSummary is the period-scoped aggregate for one user. Savings
// and SavingsRate are derived; SavingsRate is a percentage rounded to
// 2 decimals and 0 when there is no income.
type OverviewSummary struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpense     float64 `json:"total_expense"`
	Savings          float64 `json:"savings"`
	SavingsRate      float64 `json:"savings_rate"`
	TransactionCount int64   `json:"transaction_count"`
}

// CategoryBreakdownEntry carries one category's share of the period.
// Percentage is the share of total expense for expense rows and 0 for
// income rows.
type CategoryBreakdownEntry struct {
	CategoryID       string  `json:"-"`
	CategoryName     string  `json:"category_name"`
	Type             string  `json:"type"`
	TotalAmount      float64 `json:"total_amount"`
	TransactionCount int64   `json:"transaction_count"`
	Percentage       float64 `json:"percentage"`
}

// TrendPeriod selects the bucket width for spending trends.
type TrendPeriod string

const (
	PeriodDaily   TrendPeriod = "daily"
	PeriodWeekly  TrendPeriod = "weekly"
	PeriodMonthly TrendPeriod = "monthly"
)

type TrendPoint struct {
	Period           string  `json:"period"`
	Income           float64 `json:"income"`
	Expense          float64 `json:"expense"`
	Savings          float64 `json:"savings"`
	TransactionCount int64   `json:"transaction_count"`
}

type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

type Insight struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

// NoExpensesCategory is the sentinel highest-spending-category value
// when the period has no expense rows.
const NoExpensesCategory = "No expenses"

// InsightsReport carries the overview it was derived from so callers
// do not re-query the store to echo it.
type InsightsReport struct {
	Overview                OverviewSummary `json:"overview"`
	Insights                []Insight       `json:"insights"`
	HighestSpendingCategory string          `json:"highest_spending_category"`
	AverageDailySpending    float64         `json:"average_daily_spending"`
	FinancialHealth         string          `json:"financial_health"`
}

type MonthlySummary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

type MonthlyReport struct {
	Summary          MonthlySummary           `json:"summary"`
	CategorySpending []CategoryBreakdownEntry `json:"category_spending"`
	Year             int                      `json:"year"`
	Month            int                      `json:"month"`
}

// Row types returned by the Repository.

type OverviewRow struct {
	TotalIncome      float64
	TotalExpense     float64
	TransactionCount int64
}

type CategoryTotalRow struct {
	CategoryID       string
	CategoryName     string
	Type             string
	TotalAmount      float64
	TransactionCount int64
}

type TransactionRow struct {
	Date   time.Time
	Amount float64
	Type   string
}
