package transactions

import "errors"

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryRequired    = errors.New("category id or name is required")
	ErrInvalidAmount       = errors.New("amount must be greater than 0")
	ErrInvalidType         = errors.New("type must be income or expense")
)
