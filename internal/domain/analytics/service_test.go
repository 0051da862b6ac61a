package analytics

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeAnalyticsRepo struct {
	overview       OverviewRow
	overviewErr    error
	categoryTotals []CategoryTotalRow
	totalExpenses  float64
	transactions   []TransactionRow

	overviewCalls int
}

func (f *fakeAnalyticsRepo) Overview(ctx context.Context, userID string, from, to time.Time) (OverviewRow, error) {
	f.overviewCalls++
	if f.overviewErr != nil {
		return OverviewRow{}, f.overviewErr
	}
	return f.overview, nil
}

func (f *fakeAnalyticsRepo) CategoryTotals(ctx context.Context, userID string, from, to time.Time) ([]CategoryTotalRow, error) {
	rows := make([]CategoryTotalRow, len(f.categoryTotals))
	copy(rows, f.categoryTotals)
	return rows, nil
}

func (f *fakeAnalyticsRepo) TotalExpenses(ctx context.Context, userID string, from, to time.Time) (float64, error) {
	return f.totalExpenses, nil
}

func (f *fakeAnalyticsRepo) TransactionsSince(ctx context.Context, userID string, from time.Time) ([]TransactionRow, error) {
	rows := make([]TransactionRow, len(f.transactions))
	copy(rows, f.transactions)
	return rows, nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestOverviewDerivesSavings(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		overview: OverviewRow{TotalIncome: 100, TotalExpense: 40, TransactionCount: 2},
	}
	svc := NewService(repo)

	got, err := svc.Overview(context.Background(), "user-1", day(2024, 1, 1), day(2024, 1, 31))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Savings != 60 {
		t.Fatalf("expected savings 60, got %v", got.Savings)
	}
	if got.SavingsRate != 60.00 {
		t.Fatalf("expected savings rate 60.00, got %v", got.SavingsRate)
	}
	if got.TransactionCount != 2 {
		t.Fatalf("expected 2 transactions, got %d", got.TransactionCount)
	}
}

func TestOverviewZeroIncome(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		overview: OverviewRow{TotalIncome: 0, TotalExpense: 250, TransactionCount: 5},
	}
	svc := NewService(repo)

	got, err := svc.Overview(context.Background(), "user-1", day(2024, 1, 1), day(2024, 1, 31))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.SavingsRate != 0 {
		t.Fatalf("expected rate 0 with no income, got %v", got.SavingsRate)
	}
	if got.Savings != -250 {
		t.Fatalf("expected savings -250, got %v", got.Savings)
	}
}

func TestOverviewRateNotClamped(t *testing.T) {
	// Refunds can push expenses negative; the rate then exceeds 100.
	repo := &fakeAnalyticsRepo{
		overview: OverviewRow{TotalIncome: 100, TotalExpense: -20, TransactionCount: 3},
	}
	svc := NewService(repo)

	got, err := svc.Overview(context.Background(), "user-1", day(2024, 1, 1), day(2024, 1, 31))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.SavingsRate != 120 {
		t.Fatalf("expected rate 120, got %v", got.SavingsRate)
	}
}

func TestOverviewInvalidRange(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := NewService(repo)

	_, err := svc.Overview(context.Background(), "user-1", day(2024, 2, 1), day(2024, 1, 1))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if repo.overviewCalls != 0 {
		t.Fatalf("expected no repo call on invalid range, got %d", repo.overviewCalls)
	}
}

func TestOverviewSingleDayRange(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		overview: OverviewRow{TotalIncome: 10, TotalExpense: 5, TransactionCount: 1},
	}
	svc := NewService(repo)

	if _, err := svc.Overview(context.Background(), "user-1", day(2024, 1, 15), day(2024, 1, 15)); err != nil {
		t.Fatalf("expected from == to to be valid, got %v", err)
	}
}

func TestCategoryBreakdownPercentages(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		categoryTotals: []CategoryTotalRow{
			{CategoryID: "cat-1", CategoryName: "Rent", Type: TypeExpense, TotalAmount: 900, TransactionCount: 1},
			{CategoryID: "cat-2", CategoryName: "Groceries", Type: TypeExpense, TotalAmount: 300, TransactionCount: 6},
			{CategoryID: "cat-3", CategoryName: "Salary", Type: TypeIncome, TotalAmount: 3000, TransactionCount: 1},
		},
		totalExpenses: 1200,
	}
	svc := NewService(repo)

	entries, err := svc.CategoryBreakdown(context.Background(), "user-1", day(2024, 1, 1), day(2024, 1, 31))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Sorted by amount descending.
	if entries[0].CategoryName != "Salary" || entries[1].CategoryName != "Rent" || entries[2].CategoryName != "Groceries" {
		t.Fatalf("unexpected order: %+v", entries)
	}

	if entries[0].Percentage != 0 {
		t.Fatalf("expected income percentage 0, got %v", entries[0].Percentage)
	}
	if entries[1].Percentage != 75 {
		t.Fatalf("expected rent percentage 75, got %v", entries[1].Percentage)
	}
	if entries[2].Percentage != 25 {
		t.Fatalf("expected groceries percentage 25, got %v", entries[2].Percentage)
	}

	sum := entries[1].Percentage + entries[2].Percentage
	if sum != 100 {
		t.Fatalf("expected expense percentages to sum to 100, got %v", sum)
	}
}

func TestCategoryBreakdownTieBreaksOnID(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		categoryTotals: []CategoryTotalRow{
			{CategoryID: "cat-b", CategoryName: "Transport", Type: TypeExpense, TotalAmount: 50, TransactionCount: 2},
			{CategoryID: "cat-a", CategoryName: "Dining Out", Type: TypeExpense, TotalAmount: 50, TransactionCount: 1},
		},
		totalExpenses: 100,
	}
	svc := NewService(repo)

	entries, err := svc.CategoryBreakdown(context.Background(), "user-1", day(2024, 1, 1), day(2024, 1, 31))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entries[0].CategoryID != "cat-a" || entries[1].CategoryID != "cat-b" {
		t.Fatalf("expected id-ascending tie break, got %+v", entries)
	}
}

func TestCategoryBreakdownNoExpenses(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		categoryTotals: []CategoryTotalRow{
			{CategoryID: "cat-1", CategoryName: "Salary", Type: TypeIncome, TotalAmount: 3000, TransactionCount: 1},
		},
		totalExpenses: 0,
	}
	svc := NewService(repo)

	entries, err := svc.CategoryBreakdown(context.Background(), "user-1", day(2024, 1, 1), day(2024, 1, 31))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 1 || entries[0].Percentage != 0 {
		t.Fatalf("expected a single entry with percentage 0, got %+v", entries)
	}
}

func TestSpendingTrendsMonthlyBuckets(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		transactions: []TransactionRow{
			{Date: day(2024, 1, 5), Amount: 100, Type: TypeIncome},
			{Date: day(2024, 1, 10), Amount: 40, Type: TypeExpense},
			{Date: day(2024, 3, 2), Amount: 75, Type: TypeExpense},
		},
	}
	svc := NewService(repo)
	svc.now = func() time.Time { return day(2024, 3, 15) }

	points, err := svc.SpendingTrends(context.Background(), "user-1", PeriodMonthly, 6)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 buckets with no empty fill, got %d: %+v", len(points), points)
	}
	if points[0].Period != "2024-01" || points[1].Period != "2024-03" {
		t.Fatalf("expected ascending labeled buckets, got %+v", points)
	}
	if points[0].Income != 100 || points[0].Expense != 40 || points[0].Savings != 60 || points[0].TransactionCount != 2 {
		t.Fatalf("unexpected january bucket: %+v", points[0])
	}
	if points[1].Savings != -75 {
		t.Fatalf("expected march savings -75, got %v", points[1].Savings)
	}
}

func TestSpendingTrendsWeeklyLabels(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		transactions: []TransactionRow{
			// Both fall in ISO week 2024-W02 (Mon Jan 8 .. Sun Jan 14).
			{Date: day(2024, 1, 8), Amount: 10, Type: TypeExpense},
			{Date: day(2024, 1, 14), Amount: 20, Type: TypeExpense},
			{Date: day(2024, 1, 15), Amount: 5, Type: TypeExpense},
		},
	}
	svc := NewService(repo)
	svc.now = func() time.Time { return day(2024, 1, 20) }

	points, err := svc.SpendingTrends(context.Background(), "user-1", PeriodWeekly, 4)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 week buckets, got %+v", points)
	}
	if points[0].Period != "2024-W02" {
		t.Fatalf("expected label 2024-W02, got %s", points[0].Period)
	}
	if points[0].Expense != 30 || points[0].TransactionCount != 2 {
		t.Fatalf("unexpected first week bucket: %+v", points[0])
	}
	if points[1].Period != "2024-W03" {
		t.Fatalf("expected label 2024-W03, got %s", points[1].Period)
	}
}

func TestSpendingTrendsDailyIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 2, 3, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2024, 2, 3, 22, 0, 0, 0, time.UTC)
	repo := &fakeAnalyticsRepo{
		transactions: []TransactionRow{
			{Date: morning, Amount: 10, Type: TypeExpense},
			{Date: evening, Amount: 15, Type: TypeExpense},
		},
	}
	svc := NewService(repo)
	svc.now = func() time.Time { return day(2024, 2, 10) }

	points, err := svc.SpendingTrends(context.Background(), "user-1", PeriodDaily, 7)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected one day bucket, got %+v", points)
	}
	if points[0].Period != "2024-02-03" || points[0].Expense != 25 {
		t.Fatalf("unexpected bucket: %+v", points[0])
	}
}

func TestSpendingTrendsDefaults(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time { return day(2024, 6, 1) }

	points, err := svc.SpendingTrends(context.Background(), "user-1", "", 0)
	if err != nil {
		t.Fatalf("expected monthly default, got %v", err)
	}
	if len(points) != 0 {
		t.Fatalf("expected empty result for no transactions, got %+v", points)
	}
}

func TestSpendingTrendsRejectsUnknownPeriod(t *testing.T) {
	svc := NewService(&fakeAnalyticsRepo{})

	_, err := svc.SpendingTrends(context.Background(), "user-1", "yearly", 6)
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestFinancialInsightsComposition(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		overview: OverviewRow{TotalIncome: 2000, TotalExpense: 1500, TransactionCount: 10},
		categoryTotals: []CategoryTotalRow{
			{CategoryID: "cat-1", CategoryName: "Rent", Type: TypeExpense, TotalAmount: 900, TransactionCount: 1},
			{CategoryID: "cat-2", CategoryName: "Groceries", Type: TypeExpense, TotalAmount: 600, TransactionCount: 9},
		},
		totalExpenses: 1500,
	}
	svc := NewService(repo)

	report, err := svc.FinancialInsights(context.Background(), "user-1", day(2024, 1, 1), day(2024, 1, 31))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.HighestSpendingCategory != "Rent" {
		t.Fatalf("expected Rent as top category, got %s", report.HighestSpendingCategory)
	}
	if report.Overview.SavingsRate != 25 || report.Overview.TotalExpense != 1500 {
		t.Fatalf("expected the composed overview in the report, got %+v", report.Overview)
	}
	if repo.overviewCalls != 1 {
		t.Fatalf("expected a single overview query, got %d", repo.overviewCalls)
	}
	if report.AverageDailySpending != 50 {
		t.Fatalf("expected average daily 50, got %v", report.AverageDailySpending)
	}
	// savings rate 25 sits in the silent band and grades B.
	if report.FinancialHealth != "B - Good" {
		t.Fatalf("expected B - Good, got %s", report.FinancialHealth)
	}
	for _, insight := range report.Insights {
		if insight.Title == "Excellent Savings" || insight.Title == "Low Savings Rate" {
			t.Fatalf("expected no savings insight at rate 25, got %+v", insight)
		}
	}
	// Rent carries 60% of expenses, above the concentration threshold.
	found := false
	for _, insight := range report.Insights {
		if insight.Title == "High Spending Concentration" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected concentration insight, got %+v", report.Insights)
	}
}

func TestFinancialInsightsNoExpenses(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		overview: OverviewRow{TotalIncome: 500, TotalExpense: 0, TransactionCount: 1},
		categoryTotals: []CategoryTotalRow{
			{CategoryID: "cat-1", CategoryName: "Salary", Type: TypeIncome, TotalAmount: 500, TransactionCount: 1},
		},
	}
	svc := NewService(repo)

	report, err := svc.FinancialInsights(context.Background(), "user-1", day(2024, 1, 1), day(2024, 1, 31))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.HighestSpendingCategory != NoExpensesCategory {
		t.Fatalf("expected %q, got %q", NoExpensesCategory, report.HighestSpendingCategory)
	}
	if report.AverageDailySpending != 0 {
		t.Fatalf("expected average daily 0, got %v", report.AverageDailySpending)
	}
}

func TestMonthlyReportBounds(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		overview: OverviewRow{TotalIncome: 1000, TotalExpense: 400, TransactionCount: 4},
		categoryTotals: []CategoryTotalRow{
			{CategoryID: "cat-1", CategoryName: "Groceries", Type: TypeExpense, TotalAmount: 400, TransactionCount: 3},
			{CategoryID: "cat-2", CategoryName: "Salary", Type: TypeIncome, TotalAmount: 1000, TransactionCount: 1},
		},
		totalExpenses: 400,
	}
	svc := NewService(repo)

	report, err := svc.MonthlyReport(context.Background(), "user-1", 2024, 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Summary.Balance != 600 {
		t.Fatalf("expected balance 600, got %v", report.Summary.Balance)
	}
	if report.Year != 2024 || report.Month != 2 {
		t.Fatalf("unexpected report period: %d-%d", report.Year, report.Month)
	}
	if len(report.CategorySpending) != 1 || report.CategorySpending[0].CategoryName != "Groceries" {
		t.Fatalf("expected expense-only spending, got %+v", report.CategorySpending)
	}
}

func TestMonthlyReportRejectsBadMonth(t *testing.T) {
	svc := NewService(&fakeAnalyticsRepo{})

	for _, month := range []int{0, 13, -1} {
		if _, err := svc.MonthlyReport(context.Background(), "user-1", 2024, month); !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("expected ErrInvalidMonth for month %d, got %v", month, err)
		}
	}
}

func TestTruncateToBucketWeeklyStartsMonday(t *testing.T) {
	// Sunday 2024-01-14 belongs to the week starting Monday 2024-01-08.
	sunday := day(2024, 1, 14)
	got := truncateToBucket(PeriodWeekly, sunday)
	if !got.Equal(day(2024, 1, 8)) {
		t.Fatalf("expected monday 2024-01-08, got %v", got)
	}

	monday := day(2024, 1, 8)
	if got := truncateToBucket(PeriodWeekly, monday); !got.Equal(monday) {
		t.Fatalf("expected monday to map to itself, got %v", got)
	}
}
