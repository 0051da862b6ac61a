package transactions

import "time"

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction records a single income or expense row. Amount is always
// positive; the direction is carried by Type.
type Transaction struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	UserID     string    `gorm:"type:uuid;index;not null"`
	CategoryID string    `gorm:"type:uuid;index;not null"`
	Amount     float64   `gorm:"type:numeric(12,2);not null"`
	Type       string    `gorm:"size:7;not null"`
	Date       time.Time `gorm:"type:date;not null"`
	Note       string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

type TransactionWithCategory struct {
	Transaction
	CategoryName string
}

// CategoryRef is the slice of a category the transaction service needs
// for visibility checks.
type CategoryRef struct {
	ID   string
	Name string
	Type string
}

// CreateInput accepts the category by id or by name; exactly one is
// required.
type CreateInput struct {
	UserID       string
	CategoryID   string
	CategoryName string
	Amount       float64
	Type         string
	Date         *time.Time
	Note         string
}

// UpdateInput carries a partial update; nil fields keep their stored
// value.
type UpdateInput struct {
	UserID       string
	ID           string
	CategoryID   *string
	CategoryName *string
	Amount       *float64
	Type         *string
	Date         *time.Time
	Note         *string
}
