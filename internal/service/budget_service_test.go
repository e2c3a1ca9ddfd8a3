package service

import (
	"errors"
	"testing"

	"github.com/controle-gastos/gastos-backend/internal/domain"
	"github.com/controle-gastos/gastos-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestCreateBudget_Success(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	budgetService := NewBudgetService(budgetRepo, categoryRepo)

	category, err := categoryRepo.Create(&domain.Category{Name: "Alimentação", Active: true})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	budgetRepo.AddCategory(category)

	budget, err := budgetService.CreateBudget(category.ID, 3, 2024, decimalPtr(decimal.NewFromFloat(500.005)))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if budget.ID == 0 {
		t.Error("Expected budget to receive an ID")
	}
	if budget.Month != 3 || budget.Year != 2024 {
		t.Errorf("Expected period 3/2024, got %d/%d", budget.Month, budget.Year)
	}
	if !budget.Limit.Equal(decimal.NewFromFloat(500.01)) {
		t.Errorf("Expected limit rounded to 500.01, got %s", budget.Limit.String())
	}
	if budget.Category == nil || budget.Category.Name != "Alimentação" {
		t.Error("Expected joined category details on the budget")
	}
}

func TestCreateBudget_MissingLimit(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	budgetService := NewBudgetService(budgetRepo, categoryRepo)

	_, err := budgetService.CreateBudget(1, 3, 2024, nil)
	if !errors.Is(err, domain.ErrBudgetLimitRequired) {
		t.Errorf("Expected ErrBudgetLimitRequired, got %v", err)
	}
}

func TestCreateBudget_InvalidPeriod(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	budgetService := NewBudgetService(budgetRepo, categoryRepo)

	_, err := budgetService.CreateBudget(1, 0, 2024, decimalPtr(decimal.NewFromInt(100)))
	if !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}
}

func TestCreateBudget_CategoryNotFound(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	budgetService := NewBudgetService(budgetRepo, categoryRepo)

	_, err := budgetService.CreateBudget(42, 3, 2024, decimalPtr(decimal.NewFromInt(100)))
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCreateBudget_DuplicatePeriod(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	budgetService := NewBudgetService(budgetRepo, categoryRepo)

	category, err := categoryRepo.Create(&domain.Category{Name: "Transporte", Active: true})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	budgetRepo.AddCategory(category)

	if _, err := budgetService.CreateBudget(category.ID, 3, 2024, decimalPtr(decimal.NewFromInt(300))); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = budgetService.CreateBudget(category.ID, 3, 2024, decimalPtr(decimal.NewFromInt(400)))
	if !errors.Is(err, domain.ErrBudgetAlreadyExists) {
		t.Errorf("Expected ErrBudgetAlreadyExists, got %v", err)
	}
}

func TestListBudgets_SortedByCategoryName(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	budgetService := NewBudgetService(budgetRepo, categoryRepo)

	for _, name := range []string{"Transporte", "Alimentação"} {
		category, err := categoryRepo.Create(&domain.Category{Name: name, Active: true})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		budgetRepo.AddCategory(category)
		if _, err := budgetService.CreateBudget(category.ID, 5, 2024, decimalPtr(decimal.NewFromInt(100))); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	budgets, err := budgetService.ListBudgets(5, 2024)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(budgets) != 2 {
		t.Fatalf("Expected 2 budgets, got %d", len(budgets))
	}
	if budgets[0].Category.Name != "Alimentação" || budgets[1].Category.Name != "Transporte" {
		t.Errorf("Expected budgets sorted by category name, got %s then %s",
			budgets[0].Category.Name, budgets[1].Category.Name)
	}
}

func TestUpdateBudgetLimit_Success(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	budgetService := NewBudgetService(budgetRepo, categoryRepo)

	category, err := categoryRepo.Create(&domain.Category{Name: "Lazer", Active: true})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	budgetRepo.AddCategory(category)

	budget, err := budgetService.CreateBudget(category.ID, 6, 2024, decimalPtr(decimal.NewFromInt(200)))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	updated, err := budgetService.UpdateBudgetLimit(budget.ID, decimalPtr(decimal.NewFromInt(350)))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !updated.Limit.Equal(decimal.NewFromInt(350)) {
		t.Errorf("Expected limit 350, got %s", updated.Limit.String())
	}
}

func TestUpdateBudgetLimit_NotFound(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	budgetService := NewBudgetService(budgetRepo, categoryRepo)

	_, err := budgetService.UpdateBudgetLimit(999, decimalPtr(decimal.NewFromInt(100)))
	if !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Errorf("Expected ErrBudgetNotFound, got %v", err)
	}
}

func TestDeleteBudget_NotFound(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	budgetService := NewBudgetService(budgetRepo, categoryRepo)

	err := budgetService.DeleteBudget(999)
	if !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Errorf("Expected ErrBudgetNotFound, got %v", err)
	}
}
