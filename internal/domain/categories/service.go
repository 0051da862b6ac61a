package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const maxNameLength = 50

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListVisible returns the global defaults unioned with the owner's
// custom categories.
func (s *Service) ListVisible(ctx context.Context, ownerID string) ([]Category, error) {
	return s.repo.ListVisible(ctx, ownerID)
}

// ListWithUsage annotates every visible category with the owner's
// transaction count and total amount against it.
func (s *Service) ListWithUsage(ctx context.Context, ownerID string) ([]CategoryWithUsage, error) {
	return s.repo.ListVisibleWithUsage(ctx, ownerID)
}

// FindVisibleByName resolves a category by case-insensitive name within
// the owner's visible set.
func (s *Service) FindVisibleByName(ctx context.Context, ownerID, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNotFound
	}
	return s.repo.FindVisibleByName(ctx, ownerID, name)
}

func (s *Service) CreateCustom(ctx context.Context, input CreateInput) (*Category, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if !ValidType(input.Type) {
		return nil, ErrInvalidType
	}

	existing, err := s.repo.FindVisibleByName(ctx, input.OwnerID, name)
	if err != nil && !errors.Is(err, ErrCategoryNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	ownerID := input.OwnerID
	category := Category{
		ID:      uuid.NewString(),
		OwnerID: &ownerID,
		Name:    name,
		Type:    input.Type,
	}

	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

// DeleteCustom removes one of the owner's custom categories. Global
// categories and categories still referenced by transactions are
// refused.
func (s *Service) DeleteCustom(ctx context.Context, ownerID, categoryID string) error {
	category, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.OwnerID == nil {
		return ErrCategoryGlobal
	}
	if *category.OwnerID != ownerID {
		return ErrCategoryNotFound
	}

	inUse, err := s.repo.CountTransactionsByCategory(ctx, categoryID, ownerID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}

	deleted, err := s.repo.Delete(ctx, categoryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	if len([]rune(name)) > maxNameLength {
		return "", fmt.Errorf("%w: at most %d characters", ErrInvalidName, maxNameLength)
	}
	return name, nil
}
