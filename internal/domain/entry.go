package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the transaction direction. The wire values are the
// Portuguese strings used by the API and stored in the database.
type EntryType string

const (
	EntryTypeExpense EntryType = "despesa"
	EntryTypeIncome  EntryType = "receita"
)

// Valid reports whether t is one of the two accepted entry types.
func (t EntryType) Valid() bool {
	return t == EntryTypeExpense || t == EntryTypeIncome
}

// Entry is a single financial transaction ("gasto"). Amount is always a
// fixed-precision decimal with 2 fractional digits; the category
// reference is optional and survives category deactivation.
type Entry struct {
	ID            int32           `json:"id"`
	Description   string          `json:"descricao"`
	Amount        decimal.Decimal `json:"valor"`
	Date          time.Time       `json:"data"`
	CategoryID    *int32          `json:"categoria_id"`
	Category      *Category       `json:"categoria,omitempty"`
	Type          EntryType       `json:"tipo"`
	PaymentMethod *string         `json:"forma_pagamento"`
	Notes         *string         `json:"observacao"`
	Receipt       *string         `json:"comprovante"`
	Recurring     bool            `json:"recorrente"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// EntryFilters narrow a ledger listing; nil fields are ignored and the
// remaining ones combine with AND. When Month and Year are both set
// they take precedence over the date range.
type EntryFilters struct {
	CategoryID *int32
	Type       *EntryType
	StartDate  *time.Time
	EndDate    *time.Time
	Month      *int
	Year       *int
}

// EntryPatch carries a partial update; nil fields are left untouched.
// A CategoryID of 0 clears the category reference.
type EntryPatch struct {
	Description   *string
	Amount        *decimal.Decimal
	Date          *time.Time
	CategoryID    *int32
	Type          *EntryType
	PaymentMethod *string
	Notes         *string
	Receipt       *string
	Recurring     *bool
}

// IsEmpty reports whether the patch would change nothing.
func (p *EntryPatch) IsEmpty() bool {
	return p.Description == nil && p.Amount == nil && p.Date == nil &&
		p.CategoryID == nil && p.Type == nil && p.PaymentMethod == nil &&
		p.Notes == nil && p.Receipt == nil && p.Recurring == nil
}

type EntryRepository interface {
	Create(entry *Entry) (*Entry, error)
	GetByID(id int32) (*Entry, error)
	GetAll(filters *EntryFilters) ([]*Entry, error)
	Update(id int32, patch *EntryPatch) (*Entry, error)
	Delete(id int32) error

	// Aggregate queries backing the reporting engine.
	SumByTypeAndPeriod(month, year int, entryType EntryType) (decimal.Decimal, error)
	CountByPeriod(month, year int) (int64, error)
	GroupByCategory(month, year int, entryType EntryType) ([]*CategoryAggregate, error)
	TopExpenses(month, year, limit int) ([]*Entry, error)
	GroupByPaymentMethod(month, year int) ([]*PaymentMethodAggregate, error)
}
