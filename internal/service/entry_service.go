package service

import (
	"strings"
	"time"

	"github.com/controle-gastos/gastos-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// EntryService handles ledger business logic
type EntryService struct {
	entryRepo    domain.EntryRepository
	categoryRepo domain.CategoryRepository
}

// NewEntryService creates a new EntryService
func NewEntryService(entryRepo domain.EntryRepository, categoryRepo domain.CategoryRepository) *EntryService {
	return &EntryService{entryRepo: entryRepo, categoryRepo: categoryRepo}
}

// CreateEntryInput holds the fields accepted when creating an entry
type CreateEntryInput struct {
	Description   string
	Amount        *decimal.Decimal
	Date          *time.Time
	CategoryID    *int32
	Type          *domain.EntryType
	PaymentMethod *string
	Notes         *string
	Receipt       *string
	Recurring     *bool
}

// ListEntries retrieves entries matching the filters, newest first
func (s *EntryService) ListEntries(filters *domain.EntryFilters) ([]*domain.Entry, error) {
	if filters != nil && filters.Type != nil && !filters.Type.Valid() {
		return nil, domain.ErrInvalidEntryType
	}
	return s.entryRepo.GetAll(filters)
}

// GetEntry retrieves an entry by ID
func (s *EntryService) GetEntry(id int32) (*domain.Entry, error) {
	return s.entryRepo.GetByID(id)
}

// CreateEntry validates and creates a new entry. The date defaults to
// today and the type to despesa.
func (s *EntryService) CreateEntry(input CreateEntryInput) (*domain.Entry, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domain.ErrDescriptionRequired
	}
	if input.Amount == nil {
		return nil, domain.ErrAmountRequired
	}

	entryType := domain.EntryTypeExpense
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, domain.ErrInvalidEntryType
		}
		entryType = *input.Type
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if input.Date != nil {
		date = *input.Date
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*input.CategoryID); err != nil {
			return nil, err
		}
	}

	entry := &domain.Entry{
		Description:   description,
		Amount:        input.Amount.Round(2),
		Date:          date,
		CategoryID:    input.CategoryID,
		Type:          entryType,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
		Receipt:       input.Receipt,
		Recurring:     input.Recurring != nil && *input.Recurring,
	}

	return s.entryRepo.Create(entry)
}

// UpdateEntry applies a partial update to an entry
func (s *EntryService) UpdateEntry(id int32, patch *domain.EntryPatch) (*domain.Entry, error) {
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return nil, domain.ErrDescriptionRequired
		}
		patch.Description = &description
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, domain.ErrInvalidEntryType
	}
	if patch.Amount != nil {
		rounded := patch.Amount.Round(2)
		patch.Amount = &rounded
	}
	if patch.CategoryID != nil && *patch.CategoryID != 0 {
		if _, err := s.categoryRepo.GetByID(*patch.CategoryID); err != nil {
			return nil, err
		}
	}
	return s.entryRepo.Update(id, patch)
}

// DeleteEntry permanently removes an entry
func (s *EntryService) DeleteEntry(id int32) error {
	return s.entryRepo.Delete(id)
}
