package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"
)

const (
	// DefaultTrendWindow is the number of trailing buckets reported
	// when the caller does not specify one.
	DefaultTrendWindow = 6

	// avgWindowDays is the fixed divisor behind average-daily-spending
	// and the frequency insight. It deliberately ignores the actual
	// range length; see DESIGN.md.
	avgWindowDays = 30
)

// Service computes period-scoped aggregates over a user's transactions.
// Every call is stateless and read-only; store failures propagate to
// the caller unchanged.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Overview sums the user's transactions in [from, to] by type and
// derives savings and the savings rate. The rate is 0 when there is no
// income and is never clamped, so it exceeds 100 when expenses outgrow
// income the other way around.
func (s *Service) Overview(ctx context.Context, userID string, from, to time.Time) (OverviewSummary, error) {
	if to.Before(from) {
		return OverviewSummary{}, ErrInvalidRange
	}

	row, err := s.repo.Overview(ctx, userID, from, to)
	if err != nil {
		return OverviewSummary{}, err
	}

	savings := row.TotalIncome - row.TotalExpense
	rate := 0.0
	if row.TotalIncome > 0 {
		rate = round2(savings / row.TotalIncome * 100)
	}

	return OverviewSummary{
		TotalIncome:      row.TotalIncome,
		TotalExpense:     row.TotalExpense,
		Savings:          savings,
		SavingsRate:      rate,
		TransactionCount: row.TransactionCount,
	}, nil
}

// CategoryBreakdown joins every category visible to the user against
// transactions in range. Categories without matching amounts are
// absent, not zero-filled. Expense percentages are normalized against
// the period's total expense; income rows always carry 0.
func (s *Service) CategoryBreakdown(ctx context.Context, userID string, from, to time.Time) ([]CategoryBreakdownEntry, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	rows, err := s.repo.CategoryTotals(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	totalExpenses, err := s.repo.TotalExpenses(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	entries := make([]CategoryBreakdownEntry, 0, len(rows))
	for _, row := range rows {
		percentage := 0.0
		if row.Type == TypeExpense && totalExpenses > 0 {
			percentage = round2(row.TotalAmount / totalExpenses * 100)
		}
		entries = append(entries, CategoryBreakdownEntry{
			CategoryID:       row.CategoryID,
			CategoryName:     row.CategoryName,
			Type:             row.Type,
			TotalAmount:      row.TotalAmount,
			TransactionCount: row.TransactionCount,
			Percentage:       percentage,
		})
	}

	// Largest first; category id breaks ties so the order does not
	// depend on store iteration.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalAmount != entries[j].TotalAmount {
			return entries[i].TotalAmount > entries[j].TotalAmount
		}
		return entries[i].CategoryID < entries[j].CategoryID
	})

	return entries, nil
}

// SpendingTrends groups the trailing window of transactions into
// day / ISO-week / month buckets. Buckets with no transactions are not
// synthesized; output is ascending by bucket date.
func (s *Service) SpendingTrends(ctx context.Context, userID string, period TrendPeriod, windowSize int) ([]TrendPoint, error) {
	if period == "" {
		period = PeriodMonthly
	}
	if period != PeriodDaily && period != PeriodWeekly && period != PeriodMonthly {
		return nil, ErrInvalidPeriod
	}
	if windowSize <= 0 {
		windowSize = DefaultTrendWindow
	}

	today := truncateToDay(s.now().UTC())
	rows, err := s.repo.TransactionsSince(ctx, userID, lookbackStart(today, period, windowSize))
	if err != nil {
		return nil, err
	}

	buckets := make(map[time.Time]*TrendPoint)
	for _, row := range rows {
		key := truncateToBucket(period, row.Date)
		point, ok := buckets[key]
		if !ok {
			point = &TrendPoint{Period: bucketLabel(period, key)}
			buckets[key] = point
		}
		switch row.Type {
		case TypeIncome:
			point.Income += row.Amount
		case TypeExpense:
			point.Expense += row.Amount
		}
		point.TransactionCount++
	}

	keys := make([]time.Time, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	points := make([]TrendPoint, 0, len(keys))
	for _, key := range keys {
		point := *buckets[key]
		point.Savings = point.Income - point.Expense
		points = append(points, point)
	}

	return points, nil
}

// FinancialInsights composes the overview and the category breakdown
// for the range and applies the insight rules.
func (s *Service) FinancialInsights(ctx context.Context, userID string, from, to time.Time) (InsightsReport, error) {
	summary, err := s.Overview(ctx, userID, from, to)
	if err != nil {
		return InsightsReport{}, err
	}

	breakdown, err := s.CategoryBreakdown(ctx, userID, from, to)
	if err != nil {
		return InsightsReport{}, err
	}

	topExpense := topExpenseEntry(breakdown)

	highest := NoExpensesCategory
	if topExpense != nil {
		highest = topExpense.CategoryName
	}

	averageDaily := 0.0
	if summary.TotalExpense > 0 {
		averageDaily = round2(summary.TotalExpense / avgWindowDays)
	}

	return InsightsReport{
		Overview:                summary,
		Insights:                BuildInsights(summary, topExpense),
		HighestSpendingCategory: highest,
		AverageDailySpending:    averageDaily,
		FinancialHealth:         HealthScore(summary.SavingsRate),
	}, nil
}

// MonthlyReport aggregates one calendar month: income/expense/balance
// plus expense-only category spending.
func (s *Service) MonthlyReport(ctx context.Context, userID string, year, month int) (MonthlyReport, error) {
	if month < 1 || month > 12 {
		return MonthlyReport{}, ErrInvalidMonth
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	summary, err := s.Overview(ctx, userID, from, to)
	if err != nil {
		return MonthlyReport{}, err
	}

	breakdown, err := s.CategoryBreakdown(ctx, userID, from, to)
	if err != nil {
		return MonthlyReport{}, err
	}

	spending := make([]CategoryBreakdownEntry, 0, len(breakdown))
	for _, entry := range breakdown {
		if entry.Type == TypeExpense {
			spending = append(spending, entry)
		}
	}

	return MonthlyReport{
		Summary: MonthlySummary{
			Income:  summary.TotalIncome,
			Expense: summary.TotalExpense,
			Balance: summary.Savings,
		},
		CategorySpending: spending,
		Year:             year,
		Month:            month,
	}, nil
}

func topExpenseEntry(entries []CategoryBreakdownEntry) *CategoryBreakdownEntry {
	for i := range entries {
		if entries[i].Type == TypeExpense {
			return &entries[i]
		}
	}
	return nil
}

// lookbackStart approximates the window in calendar time: 30 days per
// daily bucket, 4 weeks per weekly bucket, one calendar month per
// monthly bucket. Not calendar-exact, matching the report contract.
func lookbackStart(today time.Time, period TrendPeriod, windowSize int) time.Time {
	switch period {
	case PeriodDaily:
		return today.AddDate(0, 0, -windowSize*30)
	case PeriodWeekly:
		return today.AddDate(0, 0, -windowSize*28)
	default:
		return today.AddDate(0, -windowSize, 0)
	}
}

func truncateToBucket(period TrendPeriod, date time.Time) time.Time {
	day := truncateToDay(date)
	switch period {
	case PeriodDaily:
		return day
	case PeriodWeekly:
		// Back to Monday, the ISO week start.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	default:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

func bucketLabel(period TrendPeriod, bucket time.Time) string {
	switch period {
	case PeriodDaily:
		return bucket.Format("2006-01-02")
	case PeriodWeekly:
		year, week := bucket.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	default:
		return bucket.Format("2006-01")
	}
}

func truncateToDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
