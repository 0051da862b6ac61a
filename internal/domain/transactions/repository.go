package transactions

import "context"

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]TransactionWithCategory, error)
	GetByID(ctx context.Context, userID, transactionID string) (*Transaction, error)
	Create(ctx context.Context, transaction *Transaction) error
	Update(ctx context.Context, transaction *Transaction) error
	Delete(ctx context.Context, userID, transactionID string) (bool, error)
	GetVisibleCategory(ctx context.Context, userID, categoryID string) (*CategoryRef, error)
	FindVisibleCategoryByName(ctx context.Context, userID, name string) (*CategoryRef, error)
}
