package categories

import "context"

type Repository interface {
	ListVisible(ctx context.Context, ownerID string) ([]Category, error)
	ListVisibleWithUsage(ctx context.Context, ownerID string) ([]CategoryWithUsage, error)
	FindVisibleByName(ctx context.Context, ownerID, name string) (*Category, error)
	GetByID(ctx context.Context, categoryID string) (*Category, error)
	Create(ctx context.Context, category *Category) error
	Delete(ctx context.Context, categoryID string) (bool, error)
	CountTransactionsByCategory(ctx context.Context, categoryID, ownerID string) (int64, error)
}
