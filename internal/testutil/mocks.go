package testutil

import (
	"sort"
	"time"

	"github.com/controle-gastos/gastos-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// MockCategoryRepository is an in-memory implementation of
// domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int32]*domain.Category
	NextID     int32
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
		NextID:     1,
	}
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.Categories[category.ID] = category
	if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	for _, existing := range m.Categories {
		if existing.Name == category.Name {
			return nil, domain.ErrCategoryAlreadyExists
		}
	}
	category.ID = m.NextID
	m.NextID++
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id int32) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetByName retrieves a category by exact name
func (m *MockCategoryRepository) GetByName(name string) (*domain.Category, error) {
	for _, category := range m.Categories {
		if category.Name == name {
			return category, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll retrieves categories ordered by name ascending
func (m *MockCategoryRepository) GetAll(activeOnly bool) ([]*domain.Category, error) {
	var categories []*domain.Category
	for _, category := range m.Categories {
		if activeOnly && !category.Active {
			continue
		}
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// Update applies non-nil patch fields to a category
func (m *MockCategoryRepository) Update(id int32, patch *domain.CategoryPatch) (*domain.Category, error) {
	category, ok := m.Categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	if patch.Name != nil {
		for _, existing := range m.Categories {
			if existing.ID != id && existing.Name == *patch.Name {
				return nil, domain.ErrCategoryAlreadyExists
			}
		}
		category.Name = *patch.Name
	}
	if patch.Description != nil {
		category.Description = patch.Description
	}
	if patch.Color != nil {
		category.Color = *patch.Color
	}
	if patch.Icon != nil {
		category.Icon = *patch.Icon
	}
	if patch.Active != nil {
		category.Active = *patch.Active
	}
	category.UpdatedAt = time.Now()
	return category, nil
}

// Deactivate clears the active flag; idempotent
func (m *MockCategoryRepository) Deactivate(id int32) error {
	category, ok := m.Categories[id]
	if !ok {
		return domain.ErrCategoryNotFound
	}
	category.Active = false
	category.UpdatedAt = time.Now()
	return nil
}

// MockEntryRepository is an in-memory implementation of
// domain.EntryRepository. Entries keep insertion order so the
// aggregate queries reproduce the stable ordering the SQL layer gives.
type MockEntryRepository struct {
	Entries        []*domain.Entry
	CategoriesByID map[int32]*domain.Category
	NextID         int32
}

// NewMockEntryRepository creates a new MockEntryRepository
func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		CategoriesByID: make(map[int32]*domain.Category),
		NextID:         1,
	}
}

// AddCategory registers a category so entries can join against it
func (m *MockEntryRepository) AddCategory(category *domain.Category) {
	m.CategoriesByID[category.ID] = category
}

// AddEntry adds an entry to the mock repository (helper for tests)
func (m *MockEntryRepository) AddEntry(entry *domain.Entry) {
	if entry.ID == 0 {
		entry.ID = m.NextID
	}
	if entry.ID >= m.NextID {
		m.NextID = entry.ID + 1
	}
	m.resolveCategory(entry)
	m.Entries = append(m.Entries, entry)
}

func (m *MockEntryRepository) resolveCategory(entry *domain.Entry) {
	entry.Category = nil
	if entry.CategoryID != nil {
		if category, ok := m.CategoriesByID[*entry.CategoryID]; ok {
			entry.Category = category
		}
	}
}

// Create creates a new entry
func (m *MockEntryRepository) Create(entry *domain.Entry) (*domain.Entry, error) {
	entry.ID = m.NextID
	m.NextID++
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	m.resolveCategory(entry)
	m.Entries = append(m.Entries, entry)
	return entry, nil
}

// GetByID retrieves an entry by ID
func (m *MockEntryRepository) GetByID(id int32) (*domain.Entry, error) {
	for _, entry := range m.Entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func inPeriod(entry *domain.Entry, month, year int) bool {
	return int(entry.Date.Month()) == month && entry.Date.Year() == year
}

// GetAll retrieves entries matching the filters, newest date first
func (m *MockEntryRepository) GetAll(filters *domain.EntryFilters) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	for _, entry := range m.Entries {
		if filters != nil {
			if filters.CategoryID != nil && (entry.CategoryID == nil || *entry.CategoryID != *filters.CategoryID) {
				continue
			}
			if filters.Type != nil && entry.Type != *filters.Type {
				continue
			}
			if filters.Month != nil && filters.Year != nil {
				if !inPeriod(entry, *filters.Month, *filters.Year) {
					continue
				}
			} else {
				if filters.StartDate != nil && entry.Date.Before(*filters.StartDate) {
					continue
				}
				if filters.EndDate != nil && entry.Date.After(*filters.EndDate) {
					continue
				}
			}
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}

// Update applies non-nil patch fields to an entry
func (m *MockEntryRepository) Update(id int32, patch *domain.EntryPatch) (*domain.Entry, error) {
	entry, err := m.GetByID(id)
	if err != nil {
		return nil, err
	}
	if patch.Description != nil {
		entry.Description = *patch.Description
	}
	if patch.Amount != nil {
		entry.Amount = *patch.Amount
	}
	if patch.Date != nil {
		entry.Date = *patch.Date
	}
	if patch.CategoryID != nil {
		if *patch.CategoryID == 0 {
			entry.CategoryID = nil
		} else {
			entry.CategoryID = patch.CategoryID
		}
		m.resolveCategory(entry)
	}
	if patch.Type != nil {
		entry.Type = *patch.Type
	}
	if patch.PaymentMethod != nil {
		entry.PaymentMethod = patch.PaymentMethod
	}
	if patch.Notes != nil {
		entry.Notes = patch.Notes
	}
	if patch.Receipt != nil {
		entry.Receipt = patch.Receipt
	}
	if patch.Recurring != nil {
		entry.Recurring = *patch.Recurring
	}
	entry.UpdatedAt = time.Now()
	return entry, nil
}

// Delete permanently removes an entry
func (m *MockEntryRepository) Delete(id int32) error {
	for i, entry := range m.Entries {
		if entry.ID == id {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

// SumByTypeAndPeriod sums amounts of one type within a calendar month
func (m *MockEntryRepository) SumByTypeAndPeriod(month, year int, entryType domain.EntryType) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, entry := range m.Entries {
		if entry.Type == entryType && inPeriod(entry, month, year) {
			total = total.Add(entry.Amount)
		}
	}
	return total, nil
}

// CountByPeriod counts entries of any type within a calendar month
func (m *MockEntryRepository) CountByPeriod(month, year int) (int64, error) {
	var count int64
	for _, entry := range m.Entries {
		if inPeriod(entry, month, year) {
			count++
		}
	}
	return count, nil
}

// GroupByCategory aggregates entries of one type within a calendar
// month by resolvable category, total descending
func (m *MockEntryRepository) GroupByCategory(month, year int, entryType domain.EntryType) ([]*domain.CategoryAggregate, error) {
	byCategory := make(map[int32]*domain.CategoryAggregate)
	var order []int32
	for _, entry := range m.Entries {
		if entry.Type != entryType || !inPeriod(entry, month, year) {
			continue
		}
		if entry.CategoryID == nil {
			continue
		}
		category, ok := m.CategoriesByID[*entry.CategoryID]
		if !ok {
			continue
		}
		aggregate, ok := byCategory[category.ID]
		if !ok {
			aggregate = &domain.CategoryAggregate{
				CategoryID:   category.ID,
				CategoryName: category.Name,
				Color:        category.Color,
				Icon:         category.Icon,
				Total:        decimal.Zero,
			}
			byCategory[category.ID] = aggregate
			order = append(order, category.ID)
		}
		aggregate.Total = aggregate.Total.Add(entry.Amount)
		aggregate.Count++
	}

	aggregates := make([]*domain.CategoryAggregate, 0, len(order))
	for _, id := range order {
		aggregates = append(aggregates, byCategory[id])
	}
	sort.SliceStable(aggregates, func(i, j int) bool {
		return aggregates[i].Total.GreaterThan(aggregates[j].Total)
	})
	return aggregates, nil
}

// TopExpenses returns the highest-valued expenses of a calendar month
func (m *MockEntryRepository) TopExpenses(month, year, limit int) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	for _, entry := range m.Entries {
		if entry.Type == domain.EntryTypeExpense && inPeriod(entry, month, year) {
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount.GreaterThan(entries[j].Amount)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// GroupByPaymentMethod aggregates expenses of a calendar month by
// payment method, total descending; missing methods come back empty
func (m *MockEntryRepository) GroupByPaymentMethod(month, year int) ([]*domain.PaymentMethodAggregate, error) {
	byMethod := make(map[string]*domain.PaymentMethodAggregate)
	var order []string
	for _, entry := range m.Entries {
		if entry.Type != domain.EntryTypeExpense || !inPeriod(entry, month, year) {
			continue
		}
		method := ""
		if entry.PaymentMethod != nil {
			method = *entry.PaymentMethod
		}
		aggregate, ok := byMethod[method]
		if !ok {
			aggregate = &domain.PaymentMethodAggregate{Method: method, Total: decimal.Zero}
			byMethod[method] = aggregate
			order = append(order, method)
		}
		aggregate.Total = aggregate.Total.Add(entry.Amount)
		aggregate.Count++
	}

	aggregates := make([]*domain.PaymentMethodAggregate, 0, len(order))
	for _, method := range order {
		aggregates = append(aggregates, byMethod[method])
	}
	sort.SliceStable(aggregates, func(i, j int) bool {
		return aggregates[i].Total.GreaterThan(aggregates[j].Total)
	})
	return aggregates, nil
}

// MockBudgetRepository is an in-memory implementation of
// domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets        map[int32]*domain.Budget
	CategoriesByID map[int32]*domain.Category
	NextID         int32
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets:        make(map[int32]*domain.Budget),
		CategoriesByID: make(map[int32]*domain.Category),
		NextID:         1,
	}
}

// AddCategory registers a category so budgets can join against it
func (m *MockBudgetRepository) AddCategory(category *domain.Category) {
	m.CategoriesByID[category.ID] = category
}

// AddBudget adds a budget to the mock repository (helper for tests)
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) {
	if budget.ID == 0 {
		budget.ID = m.NextID
	}
	if budget.ID >= m.NextID {
		m.NextID = budget.ID + 1
	}
	if budget.Category == nil {
		budget.Category = m.CategoriesByID[budget.CategoryID]
	}
	m.Budgets[budget.ID] = budget
}

// Create creates a new budget
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	for _, existing := range m.Budgets {
		if existing.CategoryID == budget.CategoryID && existing.Month == budget.Month && existing.Year == budget.Year {
			return nil, domain.ErrBudgetAlreadyExists
		}
	}
	budget.ID = m.NextID
	m.NextID++
	budget.CreatedAt = time.Now()
	budget.UpdatedAt = budget.CreatedAt
	budget.Category = m.CategoriesByID[budget.CategoryID]
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// GetByID retrieves a budget by ID
func (m *MockBudgetRepository) GetByID(id int32) (*domain.Budget, error) {
	if budget, ok := m.Budgets[id]; ok {
		return budget, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// GetByPeriod retrieves the budgets of one calendar month ordered by
// category name
func (m *MockBudgetRepository) GetByPeriod(month, year int) ([]*domain.Budget, error) {
	var budgets []*domain.Budget
	for _, budget := range m.Budgets {
		if budget.Month == month && budget.Year == year {
			budgets = append(budgets, budget)
		}
	}
	sort.Slice(budgets, func(i, j int) bool {
		var ni, nj string
		if budgets[i].Category != nil {
			ni = budgets[i].Category.Name
		}
		if budgets[j].Category != nil {
			nj = budgets[j].Category.Name
		}
		return ni < nj
	})
	return budgets, nil
}

// UpdateLimit changes a budget's spending limit
func (m *MockBudgetRepository) UpdateLimit(id int32, limit decimal.Decimal) (*domain.Budget, error) {
	budget, ok := m.Budgets[id]
	if !ok {
		return nil, domain.ErrBudgetNotFound
	}
	budget.Limit = limit
	budget.UpdatedAt = time.Now()
	return budget, nil
}

// Delete permanently removes a budget
func (m *MockBudgetRepository) Delete(id int32) error {
	if _, ok := m.Budgets[id]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}
