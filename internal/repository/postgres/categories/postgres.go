package categories

import (
	"context"
	"errors"
	"time"

	categoriesdomain "fintrack/internal/domain/categories"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListVisible(ctx context.Context, ownerID string) ([]categoriesdomain.Category, error) {
	var items []categoriesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("owner_id IS NULL OR owner_id = ?", ownerID).
		Order("type, name").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) ListVisibleWithUsage(ctx context.Context, ownerID string) ([]categoriesdomain.CategoryWithUsage, error) {
	query := `SELECT
		c.id, c.owner_id, c.name, c.type, c.created_at,
		COUNT(t.id) AS transaction_count,
		COALESCE(SUM(t.amount), 0) AS total_amount
	FROM categories c
	LEFT JOIN transactions t ON t.category_id = c.id AND t.user_id = ?
	WHERE c.owner_id IS NULL OR c.owner_id = ?
	GROUP BY c.id, c.owner_id, c.name, c.type, c.created_at
	ORDER BY c.type, c.name`

	var rows []struct {
		ID               string    `gorm:"column:id"`
		OwnerID          *string   `gorm:"column:owner_id"`
		Name             string    `gorm:"column:name"`
		Type             string    `gorm:"column:type"`
		CreatedAt        time.Time `gorm:"column:created_at"`
		TransactionCount int64     `gorm:"column:transaction_count"`
		TotalAmount      float64   `gorm:"column:total_amount"`
	}

	if err := r.db.WithContext(ctx).Raw(query, ownerID, ownerID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]categoriesdomain.CategoryWithUsage, 0, len(rows))
	for _, row := range rows {
		result = append(result, categoriesdomain.CategoryWithUsage{
			Category: categoriesdomain.Category{
				ID:        row.ID,
				OwnerID:   row.OwnerID,
				Name:      row.Name,
				Type:      row.Type,
				CreatedAt: row.CreatedAt,
			},
			TransactionCount: row.TransactionCount,
			TotalAmount:      row.TotalAmount,
		})
	}

	return result, nil
}

func (r *PostgresRepository) FindVisibleByName(ctx context.Context, ownerID, name string) (*categoriesdomain.Category, error) {
	var category categoriesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?) AND (owner_id IS NULL OR owner_id = ?)", name, ownerID).
		Take(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categoriesdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, categoryID string) (*categoriesdomain.Category, error) {
	var category categoriesdomain.Category
	if err := r.db.WithContext(ctx).
		Where("id = ?", categoryID).
		Take(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, categoriesdomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) Create(ctx context.Context, category *categoriesdomain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, categoryID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&categoriesdomain.Category{}, "id = ?", categoryID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountTransactionsByCategory(ctx context.Context, categoryID, ownerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("transactions").
		Where("category_id = ? AND user_id = ?", categoryID, ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
