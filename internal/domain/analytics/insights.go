package analytics

import "fmt"

// Health grade thresholds over the savings rate, highest first.
const (
	gradeExcellentRate = 30
	gradeGoodRate      = 20
	gradeAverageRate   = 10
)

// HealthScore maps a savings rate to an ordinal letter grade. Pure and
// monotonic in the rate.
func HealthScore(savingsRate float64) string {
	switch {
	case savingsRate >= gradeExcellentRate:
		return "A - Excellent"
	case savingsRate >= gradeGoodRate:
		return "B - Good"
	case savingsRate >= gradeAverageRate:
		return "C - Average"
	case savingsRate > 0:
		return "D - Needs Improvement"
	default:
		return "F - Critical"
	}
}

// BuildInsights applies the qualitative rules to an overview and the
// top expense category. The rules are independent; any subset can fire.
// Savings rates strictly between 10 and 30 produce no savings insight.
func BuildInsights(summary OverviewSummary, topExpense *CategoryBreakdownEntry) []Insight {
	insights := make([]Insight, 0, 3)

	switch {
	case summary.SavingsRate >= 30:
		insights = append(insights, Insight{
			Severity: SeverityPositive,
			Title:    "Excellent Savings",
			Message:  fmt.Sprintf("Your savings rate is %.2f%% - keep it up!", summary.SavingsRate),
		})
	case summary.SavingsRate <= 10:
		insights = append(insights, Insight{
			Severity: SeverityWarning,
			Title:    "Low Savings Rate",
			Message:  fmt.Sprintf("Your savings rate is %.2f%%. Consider reducing expenses.", summary.SavingsRate),
		})
	}

	if topExpense != nil && topExpense.Percentage > 40 {
		insights = append(insights, Insight{
			Severity: SeverityInfo,
			Title:    "High Spending Concentration",
			Message:  fmt.Sprintf("You're spending %.2f%% of your expenses on %s.", topExpense.Percentage, topExpense.CategoryName),
		})
	}

	if float64(summary.TransactionCount)/avgWindowDays > 3 {
		insights = append(insights, Insight{
			Severity: SeverityInfo,
			Title:    "Frequent Transactions",
			Message:  fmt.Sprintf("You're making %d transactions this period.", summary.TransactionCount),
		})
	}

	return insights
}
