package transactions

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context, userID string) ([]TransactionWithCategory, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*TransactionWithCategory, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if input.Type != TypeIncome && input.Type != TypeExpense {
		return nil, ErrInvalidType
	}

	category, err := s.resolveCategory(ctx, input.UserID, input.CategoryID, input.CategoryName)
	if err != nil {
		return nil, err
	}

	date := s.today()
	if input.Date != nil {
		date = truncateToDay(*input.Date)
	}

	transaction := Transaction{
		ID:         uuid.NewString(),
		UserID:     input.UserID,
		CategoryID: category.ID,
		Amount:     input.Amount,
		Type:       input.Type,
		Date:       date,
		Note:       strings.TrimSpace(input.Note),
	}

	if err := s.repo.Create(ctx, &transaction); err != nil {
		return nil, err
	}

	return &TransactionWithCategory{Transaction: transaction, CategoryName: category.Name}, nil
}

func (s *Service) Update(ctx context.Context, input UpdateInput) (*Transaction, error) {
	transaction, err := s.repo.GetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		transaction.Amount = *input.Amount
	}
	if input.Type != nil {
		if *input.Type != TypeIncome && *input.Type != TypeExpense {
			return nil, ErrInvalidType
		}
		transaction.Type = *input.Type
	}
	if input.Date != nil {
		transaction.Date = truncateToDay(*input.Date)
	}
	if input.Note != nil {
		transaction.Note = strings.TrimSpace(*input.Note)
	}

	if input.CategoryID != nil || input.CategoryName != nil {
		categoryID := ""
		categoryName := ""
		if input.CategoryID != nil {
			categoryID = *input.CategoryID
		}
		if input.CategoryName != nil {
			categoryName = *input.CategoryName
		}
		category, err := s.resolveCategory(ctx, input.UserID, categoryID, categoryName)
		if err != nil {
			return nil, err
		}
		transaction.CategoryID = category.ID
	}

	if err := s.repo.Update(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

func (s *Service) Delete(ctx context.Context, userID, transactionID string) error {
	deleted, err := s.repo.Delete(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionNotFound
	}
	return nil
}

// resolveCategory accepts an id or a case-insensitive name and returns
// a category visible to the user (global or owned).
func (s *Service) resolveCategory(ctx context.Context, userID, categoryID, categoryName string) (*CategoryRef, error) {
	categoryID = strings.TrimSpace(categoryID)
	categoryName = strings.TrimSpace(categoryName)

	switch {
	case categoryID != "":
		return s.repo.GetVisibleCategory(ctx, userID, categoryID)
	case categoryName != "":
		return s.repo.FindVisibleCategoryByName(ctx, userID, categoryName)
	default:
		return nil, ErrCategoryRequired
	}
}

func (s *Service) today() time.Time {
	return truncateToDay(s.now().UTC())
}

func truncateToDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
