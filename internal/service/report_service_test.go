package service

import (
	"testing"
	"time"

	"github.com/controle-gastos/gastos-backend/internal/domain"
	"github.com/controle-gastos/gastos-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportFixture() (*ReportService, *testutil.MockEntryRepository, *testutil.MockBudgetRepository) {
	entryRepo := testutil.NewMockEntryRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	return NewReportService(entryRepo, budgetRepo), entryRepo, budgetRepo
}

func addExpense(repo *testutil.MockEntryRepository, description string, amount float64, date time.Time) *domain.Entry {
	entry := &domain.Entry{
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
		Date:        date,
		Type:        domain.EntryTypeExpense,
	}
	repo.AddEntry(entry)
	return entry
}

func addIncome(repo *testutil.MockEntryRepository, description string, amount float64, date time.Time) *domain.Entry {
	entry := &domain.Entry{
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
		Date:        date,
		Type:        domain.EntryTypeIncome,
	}
	repo.AddEntry(entry)
	return entry
}

func TestMonthlySummary_SingleExpense(t *testing.T) {
	reportService, entryRepo, _ := newReportFixture()

	addExpense(entryRepo, "Mercado", 150.00, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	summary, err := reportService.MonthlySummary(3, 2024)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Month)
	assert.Equal(t, 2024, summary.Year)
	assert.True(t, summary.TotalExpenses.Equal(decimal.NewFromFloat(150.00)),
		"expected total expenses 150.00, got %s", summary.TotalExpenses)
	assert.True(t, summary.TotalIncome.IsZero())
	assert.True(t, summary.Balance.Equal(decimal.NewFromFloat(-150.00)),
		"expected balance -150.00, got %s", summary.Balance)
	assert.Equal(t, int64(1), summary.TransactionCount)
}

func TestMonthlySummary_MixedTypes(t *testing.T) {
	reportService, entryRepo, _ := newReportFixture()

	period := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)
	addExpense(entryRepo, "Aluguel", 1200.00, period)
	addExpense(entryRepo, "Mercado", 430.55, period)
	addIncome(entryRepo, "Salário", 5000.00, period)

	summary, err := reportService.MonthlySummary(7, 2024)
	require.NoError(t, err)

	assert.True(t, summary.TotalExpenses.Equal(decimal.NewFromFloat(1630.55)))
	assert.True(t, summary.TotalIncome.Equal(decimal.NewFromFloat(5000.00)))
	assert.True(t, summary.Balance.Equal(decimal.NewFromFloat(3369.45)))
	assert.Equal(t, int64(3), summary.TransactionCount)
}

func TestMonthlySummary_EmptyPeriodYieldsZeros(t *testing.T) {
	reportService, _, _ := newReportFixture()

	summary, err := reportService.MonthlySummary(1, 2030)
	require.NoError(t, err)

	assert.True(t, summary.TotalExpenses.IsZero())
	assert.True(t, summary.TotalIncome.IsZero())
	assert.True(t, summary.Balance.IsZero())
	assert.Equal(t, int64(0), summary.TransactionCount)
}

func TestMonthlySummary_InvalidPeriod(t *testing.T) {
	reportService, _, _ := newReportFixture()

	for _, period := range []struct{ month, year int }{
		{0, 2024}, {13, 2024}, {6, 0}, {6, -1},
	} {
		_, err := reportService.MonthlySummary(period.month, period.year)
		assert.ErrorIs(t, err, domain.ErrInvalidPeriod, "month=%d year=%d", period.month, period.year)
	}
}

func TestByCategory_TotalsAndPercentages(t *testing.T) {
	reportService, entryRepo, _ := newReportFixture()

	food := &domain.Category{ID: 1, Name: "Alimentação", Color: "#14b8a6", Icon: "●", Active: true}
	transport := &domain.Category{ID: 2, Name: "Transporte", Color: "#0ea5e9", Icon: "●", Active: true}
	entryRepo.AddCategory(food)
	entryRepo.AddCategory(transport)

	period := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	mercado := addExpense(entryRepo, "Mercado", 300.00, period)
	mercado.CategoryID = &food.ID
	padaria := addExpense(entryRepo, "Padaria", 100.00, period)
	padaria.CategoryID = &food.ID
	uber := addExpense(entryRepo, "Uber", 100.00, period)
	uber.CategoryID = &transport.ID
	addExpense(entryRepo, "Sem categoria", 50.00, period)

	breakdown, err := reportService.ByCategory(3, 2024, domain.EntryTypeExpense)
	require.NoError(t, err)

	require.Len(t, breakdown.Categories, 2)
	assert.True(t, breakdown.TotalOverall.Equal(decimal.NewFromFloat(500.00)),
		"expected overall total 500.00, got %s", breakdown.TotalOverall)

	first := breakdown.Categories[0]
	assert.Equal(t, "Alimentação", first.CategoryName)
	assert.True(t, first.Total.Equal(decimal.NewFromFloat(400.00)))
	assert.Equal(t, int64(2), first.Count)
	assert.True(t, first.Percentage.Equal(decimal.NewFromFloat(80.00)),
		"expected 80.00%%, got %s", first.Percentage)

	second := breakdown.Categories[1]
	assert.Equal(t, "Transporte", second.CategoryName)
	assert.True(t, second.Percentage.Equal(decimal.NewFromFloat(20.00)))

	sum := decimal.Zero
	percentSum := decimal.Zero
	for _, item := range breakdown.Categories {
		sum = sum.Add(item.Total)
		percentSum = percentSum.Add(item.Percentage)
	}
	assert.True(t, sum.Equal(breakdown.TotalOverall), "category totals must sum to the overall total")
	assert.True(t, percentSum.Equal(decimal.NewFromFloat(100.00)),
		"percentages must sum to 100, got %s", percentSum)
}

func TestByCategory_EmptyPeriod(t *testing.T) {
	reportService, _, _ := newReportFixture()

	breakdown, err := reportService.ByCategory(2, 2031, domain.EntryTypeExpense)
	require.NoError(t, err)

	assert.Empty(t, breakdown.Categories)
	assert.True(t, breakdown.TotalOverall.IsZero())
}

func TestByCategory_InvalidType(t *testing.T) {
	reportService, _, _ := newReportFixture()

	_, err := reportService.ByCategory(3, 2024, domain.EntryType("transferencia"))
	assert.ErrorIs(t, err, domain.ErrInvalidEntryType)
}

func TestEvolution_SixPointsOldestFirst(t *testing.T) {
	reportService, entryRepo, _ := newReportFixture()
	reportService.now = func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}

	addExpense(entryRepo, "Mercado junho", 200.00, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	addExpense(entryRepo, "Mercado maio", 100.00, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))

	expenseType := domain.EntryTypeExpense
	points, err := reportService.Evolution(6, &expenseType)
	require.NoError(t, err)
	require.Len(t, points, 6)

	// Stepping 30 days back from mid-June lands on Jan..Jun 2024.
	expectedMonths := []int{1, 2, 3, 4, 5, 6}
	for i, point := range points {
		assert.Equal(t, expectedMonths[i], point.Month, "point %d", i)
		assert.Equal(t, 2024, point.Year, "point %d", i)
		require.NotNil(t, point.Value, "point %d", i)
		assert.Nil(t, point.Expenses, "point %d", i)
	}

	assert.Equal(t, "Jan/2024", points[0].Label)
	assert.Equal(t, "Jun/2024", points[5].Label)
	assert.True(t, points[4].Value.Equal(decimal.NewFromFloat(100.00)))
	assert.True(t, points[5].Value.Equal(decimal.NewFromFloat(200.00)))
	assert.True(t, points[0].Value.IsZero())
}

func TestEvolution_WithoutTypeCarriesBalance(t *testing.T) {
	reportService, entryRepo, _ := newReportFixture()
	reportService.now = func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	}

	period := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	addExpense(entryRepo, "Mercado", 150.00, period)
	addIncome(entryRepo, "Salário", 1000.00, period)

	points, err := reportService.Evolution(1, nil)
	require.NoError(t, err)
	require.Len(t, points, 1)

	point := points[0]
	assert.Nil(t, point.Value)
	require.NotNil(t, point.Expenses)
	require.NotNil(t, point.Income)
	require.NotNil(t, point.Balance)
	assert.True(t, point.Expenses.Equal(decimal.NewFromFloat(150.00)))
	assert.True(t, point.Income.Equal(decimal.NewFromFloat(1000.00)))
	assert.True(t, point.Balance.Equal(decimal.NewFromFloat(850.00)))
}

func TestEvolution_InvalidMonthCount(t *testing.T) {
	reportService, _, _ := newReportFixture()

	for _, monthsCount := range []int{0, -3} {
		_, err := reportService.Evolution(monthsCount, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidMonthCount, "meses=%d", monthsCount)
	}
}

func TestTopExpenses_OrderedByAmount(t *testing.T) {
	reportService, entryRepo, _ := newReportFixture()

	period := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	for _, amount := range []float64{50, 200, 10, 999, 5} {
		addExpense(entryRepo, "Gasto", amount, period)
	}
	addIncome(entryRepo, "Salário", 5000.00, period)

	entries, err := reportService.TopExpenses(3, 2024, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	expected := []float64{999, 200, 50}
	for i, amount := range expected {
		assert.True(t, entries[i].Amount.Equal(decimal.NewFromFloat(amount)),
			"expected position %d to be %.0f, got %s", i, amount, entries[i].Amount)
	}
}

func TestTopExpenses_LimitBeyondAvailable(t *testing.T) {
	reportService, entryRepo, _ := newReportFixture()

	period := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	addExpense(entryRepo, "Mercado", 80.00, period)

	entries, err := reportService.TopExpenses(3, 2024, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTopExpenses_InvalidLimit(t *testing.T) {
	reportService, _, _ := newReportFixture()

	_, err := reportService.TopExpenses(3, 2024, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)
}

func TestByPaymentMethod_PlaceholderForMissing(t *testing.T) {
	reportService, entryRepo, _ := newReportFixture()

	period := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	pix := "PIX"
	mercado := addExpense(entryRepo, "Mercado", 300.00, period)
	mercado.PaymentMethod = &pix
	addExpense(entryRepo, "Padaria", 100.00, period)

	breakdown, err := reportService.ByPaymentMethod(3, 2024)
	require.NoError(t, err)
	require.Len(t, breakdown.Methods, 2)

	assert.Equal(t, "PIX", breakdown.Methods[0].Method)
	assert.True(t, breakdown.Methods[0].Percentage.Equal(decimal.NewFromFloat(75.00)))
	assert.Equal(t, "Não informado", breakdown.Methods[1].Method)
	assert.True(t, breakdown.Methods[1].Percentage.Equal(decimal.NewFromFloat(25.00)))
	assert.True(t, breakdown.TotalOverall.Equal(decimal.NewFromFloat(400.00)))
}

func TestByPaymentMethod_IgnoresIncome(t *testing.T) {
	reportService, entryRepo, _ := newReportFixture()

	period := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	addIncome(entryRepo, "Salário", 5000.00, period)

	breakdown, err := reportService.ByPaymentMethod(3, 2024)
	require.NoError(t, err)
	assert.Empty(t, breakdown.Methods)
	assert.True(t, breakdown.TotalOverall.IsZero())
}

func TestBudgetUsage_ComparesLimitsAgainstSpend(t *testing.T) {
	reportService, entryRepo, budgetRepo := newReportFixture()

	food := &domain.Category{ID: 1, Name: "Alimentação", Color: "#14b8a6", Icon: "●", Active: true}
	leisure := &domain.Category{ID: 2, Name: "Lazer", Color: "#ec4899", Icon: "●", Active: true}
	entryRepo.AddCategory(food)
	entryRepo.AddCategory(leisure)
	budgetRepo.AddCategory(food)
	budgetRepo.AddCategory(leisure)

	budgetRepo.AddBudget(&domain.Budget{
		CategoryID: food.ID, Month: 3, Year: 2024, Limit: decimal.NewFromInt(500),
	})
	budgetRepo.AddBudget(&domain.Budget{
		CategoryID: leisure.ID, Month: 3, Year: 2024, Limit: decimal.NewFromInt(200),
	})

	period := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	mercado := addExpense(entryRepo, "Mercado", 250.00, period)
	mercado.CategoryID = &food.ID

	report, err := reportService.BudgetUsage(3, 2024)
	require.NoError(t, err)
	require.Len(t, report.Budgets, 2)

	foodUsage := report.Budgets[0]
	assert.Equal(t, "Alimentação", foodUsage.CategoryName)
	assert.True(t, foodUsage.Spent.Equal(decimal.NewFromFloat(250.00)))
	assert.True(t, foodUsage.Remaining.Equal(decimal.NewFromFloat(250.00)))
	assert.True(t, foodUsage.PercentUsed.Equal(decimal.NewFromFloat(50.00)))

	leisureUsage := report.Budgets[1]
	assert.Equal(t, "Lazer", leisureUsage.CategoryName)
	assert.True(t, leisureUsage.Spent.IsZero())
	assert.True(t, leisureUsage.Remaining.Equal(decimal.NewFromInt(200)))
	assert.True(t, leisureUsage.PercentUsed.IsZero())

	assert.True(t, report.TotalLimit.Equal(decimal.NewFromInt(700)))
	assert.True(t, report.TotalSpent.Equal(decimal.NewFromFloat(250.00)))
}

func TestBudgetUsage_InvalidPeriod(t *testing.T) {
	reportService, _, _ := newReportFixture()

	_, err := reportService.BudgetUsage(13, 2024)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestPercentage_ZeroWhole(t *testing.T) {
	result := percentage(decimal.NewFromInt(50), decimal.Zero)
	assert.True(t, result.IsZero())
}
