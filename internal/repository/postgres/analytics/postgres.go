package analytics

import (
	"context"
	"time"

	analyticsdomain "fintrack/internal/domain/analytics"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Overview(ctx context.Context, userID string, from, to time.Time) (analyticsdomain.OverviewRow, error) {
	query := `SELECT
		COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE 0 END), 0) AS total_income,
		COALESCE(SUM(CASE WHEN t.type = 'expense' THEN t.amount ELSE 0 END), 0) AS total_expense,
		COUNT(*) AS transaction_count
	FROM transactions t
	WHERE t.user_id = ? AND t.date BETWEEN ? AND ?`

	var row struct {
		TotalIncome      float64 `gorm:"column:total_income"`
		TotalExpense     float64 `gorm:"column:total_expense"`
		TransactionCount int64   `gorm:"column:transaction_count"`
	}

	if err := r.db.WithContext(ctx).Raw(query, userID, from, to).Scan(&row).Error; err != nil {
		return analyticsdomain.OverviewRow{}, err
	}

	return analyticsdomain.OverviewRow{
		TotalIncome:      row.TotalIncome,
		TotalExpense:     row.TotalExpense,
		TransactionCount: row.TransactionCount,
	}, nil
}

// CategoryTotals joins every category visible to the user (global plus
// owned) against the user's transactions in range. Categories with no
// matching amount are filtered by the HAVING clause, not zero-filled.
func (r *PostgresRepository) CategoryTotals(ctx context.Context, userID string, from, to time.Time) ([]analyticsdomain.CategoryTotalRow, error) {
	query := `SELECT
		c.id AS category_id,
		c.name AS category_name,
		c.type,
		COALESCE(SUM(t.amount), 0) AS total_amount,
		COUNT(t.id) AS transaction_count
	FROM categories c
	LEFT JOIN transactions t ON t.category_id = c.id
		AND t.user_id = ?
		AND t.date BETWEEN ? AND ?
	WHERE c.owner_id IS NULL OR c.owner_id = ?
	GROUP BY c.id, c.name, c.type
	HAVING COALESCE(SUM(t.amount), 0) > 0
	ORDER BY total_amount DESC, c.id ASC`

	var rows []struct {
		CategoryID       string  `gorm:"column:category_id"`
		CategoryName     string  `gorm:"column:category_name"`
		Type             string  `gorm:"column:type"`
		TotalAmount      float64 `gorm:"column:total_amount"`
		TransactionCount int64   `gorm:"column:transaction_count"`
	}

	if err := r.db.WithContext(ctx).Raw(query, userID, from, to, userID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]analyticsdomain.CategoryTotalRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, analyticsdomain.CategoryTotalRow{
			CategoryID:       row.CategoryID,
			CategoryName:     row.CategoryName,
			Type:             row.Type,
			TotalAmount:      row.TotalAmount,
			TransactionCount: row.TransactionCount,
		})
	}

	return result, nil
}

func (r *PostgresRepository) TotalExpenses(ctx context.Context, userID string, from, to time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) AS total
	FROM transactions
	WHERE user_id = ? AND type = 'expense' AND date BETWEEN ? AND ?`

	var row struct {
		Total float64 `gorm:"column:total"`
	}

	if err := r.db.WithContext(ctx).Raw(query, userID, from, to).Scan(&row).Error; err != nil {
		return 0, err
	}

	return row.Total, nil
}

func (r *PostgresRepository) TransactionsSince(ctx context.Context, userID string, from time.Time) ([]analyticsdomain.TransactionRow, error) {
	query := `SELECT t.date, t.amount, t.type
	FROM transactions t
	WHERE t.user_id = ? AND t.date >= ?
	ORDER BY t.date ASC`

	var rows []struct {
		Date   time.Time `gorm:"column:date"`
		Amount float64   `gorm:"column:amount"`
		Type   string    `gorm:"column:type"`
	}

	if err := r.db.WithContext(ctx).Raw(query, userID, from).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]analyticsdomain.TransactionRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, analyticsdomain.TransactionRow{
			Date:   row.Date,
			Amount: row.Amount,
			Type:   row.Type,
		})
	}

	return result, nil
}
