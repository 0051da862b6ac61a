package categories

import "time"

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Category is either a global default (OwnerID nil, visible to every
// user) or a custom entry owned by a single user. Global rows are never
// mutated by user-facing operations.
type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	OwnerID   *string   `gorm:"type:uuid;index"`
	Name      string    `gorm:"not null"`
	Type      string    `gorm:"size:7;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type CategoryWithUsage struct {
	Category
	TransactionCount int64
	TotalAmount      float64
}

type CreateInput struct {
	OwnerID string
	Name    string
	Type    string
}

func ValidType(value string) bool {
	return value == TypeIncome || value == TypeExpense
}
