package transactions

import (
	"context"
	"errors"
	"time"

	transactionsdomain "fintrack/internal/domain/transactions"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]transactionsdomain.TransactionWithCategory, error) {
	query := `SELECT
		t.id, t.user_id, t.category_id, t.amount, t.type, t.date, t.note, t.created_at,
		c.name AS category_name
	FROM transactions t
	LEFT JOIN categories c ON c.id = t.category_id
	WHERE t.user_id = ?
	ORDER BY t.date DESC, t.created_at DESC`

	var rows []struct {
		ID           string    `gorm:"column:id"`
		UserID       string    `gorm:"column:user_id"`
		CategoryID   string    `gorm:"column:category_id"`
		Amount       float64   `gorm:"column:amount"`
		Type         string    `gorm:"column:type"`
		Date         time.Time `gorm:"column:date"`
		Note         string    `gorm:"column:note"`
		CreatedAt    time.Time `gorm:"column:created_at"`
		CategoryName string    `gorm:"column:category_name"`
	}

	if err := r.db.WithContext(ctx).Raw(query, userID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]transactionsdomain.TransactionWithCategory, 0, len(rows))
	for _, row := range rows {
		items = append(items, transactionsdomain.TransactionWithCategory{
			Transaction: transactionsdomain.Transaction{
				ID:         row.ID,
				UserID:     row.UserID,
				CategoryID: row.CategoryID,
				Amount:     row.Amount,
				Type:       row.Type,
				Date:       row.Date,
				Note:       row.Note,
				CreatedAt:  row.CreatedAt,
			},
			CategoryName: row.CategoryName,
		})
	}

	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, transactionID string) (*transactionsdomain.Transaction, error) {
	var transaction transactionsdomain.Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, transactionID).
		Take(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transactionsdomain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *PostgresRepository) Create(ctx context.Context, transaction *transactionsdomain.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *PostgresRepository) Update(ctx context.Context, transaction *transactionsdomain.Transaction) error {
	return r.db.WithContext(ctx).
		Model(&transactionsdomain.Transaction{}).
		Where("id = ? AND user_id = ?", transaction.ID, transaction.UserID).
		Updates(map[string]interface{}{
			"category_id": transaction.CategoryID,
			"amount":      transaction.Amount,
			"type":        transaction.Type,
			"date":        transaction.Date,
			"note":        transaction.Note,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, transactionID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&transactionsdomain.Transaction{}, "user_id = ? AND id = ?", userID, transactionID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) GetVisibleCategory(ctx context.Context, userID, categoryID string) (*transactionsdomain.CategoryRef, error) {
	return r.findCategory(ctx, "id = ? AND (owner_id IS NULL OR owner_id = ?)", categoryID, userID)
}

func (r *PostgresRepository) FindVisibleCategoryByName(ctx context.Context, userID, name string) (*transactionsdomain.CategoryRef, error) {
	return r.findCategory(ctx, "LOWER(name) = LOWER(?) AND (owner_id IS NULL OR owner_id = ?)", name, userID)
}

func (r *PostgresRepository) findCategory(ctx context.Context, condition string, args ...interface{}) (*transactionsdomain.CategoryRef, error) {
	var row struct {
		ID   string `gorm:"column:id"`
		Name string `gorm:"column:name"`
		Type string `gorm:"column:type"`
	}

	if err := r.db.WithContext(ctx).
		Table("categories").
		Select("id, name, type").
		Where(condition, args...).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transactionsdomain.ErrCategoryNotFound
		}
		return nil, err
	}

	return &transactionsdomain.CategoryRef{ID: row.ID, Name: row.Name, Type: row.Type}, nil
}
