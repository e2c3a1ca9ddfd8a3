package service

import (
	"github.com/controle-gastos/gastos-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// BudgetService handles monthly budget business logic
type BudgetService struct {
	budgetRepo   domain.BudgetRepository
	categoryRepo domain.CategoryRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, categoryRepo domain.CategoryRepository) *BudgetService {
	return &BudgetService{budgetRepo: budgetRepo, categoryRepo: categoryRepo}
}

// ListBudgets retrieves the budgets of one calendar month
func (s *BudgetService) ListBudgets(month, year int) ([]*domain.Budget, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	return s.budgetRepo.GetByPeriod(month, year)
}

// GetBudget retrieves a budget by ID
func (s *BudgetService) GetBudget(id int32) (*domain.Budget, error) {
	return s.budgetRepo.GetByID(id)
}

// CreateBudget validates and creates a monthly budget for a category
func (s *BudgetService) CreateBudget(categoryID int32, month, year int, limit *decimal.Decimal) (*domain.Budget, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	if limit == nil {
		return nil, domain.ErrBudgetLimitRequired
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return nil, err
	}

	return s.budgetRepo.Create(&domain.Budget{
		CategoryID: categoryID,
		Month:      month,
		Year:       year,
		Limit:      limit.Round(2),
	})
}

// UpdateBudgetLimit changes a budget's spending limit
func (s *BudgetService) UpdateBudgetLimit(id int32, limit *decimal.Decimal) (*domain.Budget, error) {
	if limit == nil {
		return nil, domain.ErrBudgetLimitRequired
	}
	return s.budgetRepo.UpdateLimit(id, limit.Round(2))
}

// DeleteBudget permanently removes a budget
func (s *BudgetService) DeleteBudget(id int32) error {
	return s.budgetRepo.Delete(id)
}
