package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a per-category spending limit for one calendar month,
// unique on (category, month, year).
type Budget struct {
	ID         int32           `json:"id"`
	CategoryID int32           `json:"categoria_id"`
	Category   *Category       `json:"categoria,omitempty"`
	Month      int             `json:"mes"`
	Year       int             `json:"ano"`
	Limit      decimal.Decimal `json:"valor_limite"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type BudgetRepository interface {
	Create(budget *Budget) (*Budget, error)
	GetByID(id int32) (*Budget, error)
	GetByPeriod(month, year int) ([]*Budget, error)
	UpdateLimit(id int32, limit decimal.Decimal) (*Budget, error)
	Delete(id int32) error
}
