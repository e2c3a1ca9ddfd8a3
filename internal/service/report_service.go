package service

import (
	"time"

	"github.com/controle-gastos/gastos-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Placeholder label for expenses with no payment method recorded.
const paymentMethodNotInformed = "Não informado"

var oneHundred = decimal.NewFromInt(100)

// ReportService is the reporting engine: every report operates over
// the entries of a single calendar month selected by (month, year).
// All money math is done in fixed-precision decimals; floats appear
// only at the serialization boundary.
//
// Accepted inputs: month must be in 1..12 and year positive, otherwise
// domain.ErrInvalidPeriod is returned. Callers apply the
// current-month default before calling in.
type ReportService struct {
	entryRepo  domain.EntryRepository
	budgetRepo domain.BudgetRepository
	now        func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(entryRepo domain.EntryRepository, budgetRepo domain.BudgetRepository) *ReportService {
	return &ReportService{
		entryRepo:  entryRepo,
		budgetRepo: budgetRepo,
		now:        time.Now,
	}
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 || year < 1 {
		return domain.ErrInvalidPeriod
	}
	return nil
}

// MonthlySummary totals expenses, income, balance and transaction
// count for one calendar month. Empty periods yield zeros, not errors.
func (s *ReportService) MonthlySummary(month, year int) (*domain.MonthlySummary, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	expenses, err := s.entryRepo.SumByTypeAndPeriod(month, year, domain.EntryTypeExpense)
	if err != nil {
		return nil, err
	}
	income, err := s.entryRepo.SumByTypeAndPeriod(month, year, domain.EntryTypeIncome)
	if err != nil {
		return nil, err
	}
	count, err := s.entryRepo.CountByPeriod(month, year)
	if err != nil {
		return nil, err
	}

	return &domain.MonthlySummary{
		Month:            month,
		Year:             year,
		TotalExpenses:    expenses,
		TotalIncome:      income,
		Balance:          income.Sub(expenses),
		TransactionCount: count,
	}, nil
}

// ByCategory breaks one calendar month down by category for a single
// entry type. Entries without a resolvable category are excluded.
// Percentages are shares of the overall total, rounded to 2 decimal
// places, and 0 when the overall total is 0.
func (s *ReportService) ByCategory(month, year int, entryType domain.EntryType) (*domain.CategoryBreakdown, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	if !entryType.Valid() {
		return nil, domain.ErrInvalidEntryType
	}

	aggregates, err := s.entryRepo.GroupByCategory(month, year, entryType)
	if err != nil {
		return nil, err
	}

	totalOverall := decimal.Zero
	for _, a := range aggregates {
		totalOverall = totalOverall.Add(a.Total)
	}

	items := make([]*domain.CategoryBreakdownItem, len(aggregates))
	for i, a := range aggregates {
		items[i] = &domain.CategoryBreakdownItem{
			CategoryAggregate: *a,
			Percentage:        percentage(a.Total, totalOverall),
		}
	}

	return &domain.CategoryBreakdown{
		Month:        month,
		Year:         year,
		Type:         entryType,
		TotalOverall: totalOverall,
		Categories:   items,
	}, nil
}

// Evolution returns one point per month for the given number of
// consecutive months ending at the current one, oldest first. When
// entryType is non-nil each point carries a single value; otherwise
// expenses, income and balance.
//
// Month selection steps back from now in fixed 30-day increments and
// takes each stepped date's calendar month. This is not
// calendar-accurate month arithmetic and can drift near 28/31-day
// month boundaries; it reproduces the established report behavior.
func (s *ReportService) Evolution(monthsCount int, entryType *domain.EntryType) ([]*domain.EvolutionPoint, error) {
	if monthsCount < 1 {
		return nil, domain.ErrInvalidMonthCount
	}
	if entryType != nil && !entryType.Valid() {
		return nil, domain.ErrInvalidEntryType
	}

	now := s.now()
	points := make([]*domain.EvolutionPoint, 0, monthsCount)

	for i := monthsCount - 1; i >= 0; i-- {
		ref := now.AddDate(0, 0, -i*30)
		month := int(ref.Month())
		year := ref.Year()

		point := &domain.EvolutionPoint{
			Month: month,
			Year:  year,
			Label: ref.Format("Jan/2006"),
		}

		if entryType != nil {
			value, err := s.entryRepo.SumByTypeAndPeriod(month, year, *entryType)
			if err != nil {
				return nil, err
			}
			point.Value = &value
		} else {
			expenses, err := s.entryRepo.SumByTypeAndPeriod(month, year, domain.EntryTypeExpense)
			if err != nil {
				return nil, err
			}
			income, err := s.entryRepo.SumByTypeAndPeriod(month, year, domain.EntryTypeIncome)
			if err != nil {
				return nil, err
			}
			balance := income.Sub(expenses)
			point.Expenses = &expenses
			point.Income = &income
			point.Balance = &balance
		}

		points = append(points, point)
	}

	return points, nil
}

// TopExpenses returns the limit highest-valued expense entries of one
// calendar month, amount descending.
func (s *ReportService) TopExpenses(month, year, limit int) ([]*domain.Entry, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, domain.ErrInvalidLimit
	}
	return s.entryRepo.TopExpenses(month, year, limit)
}

// ByPaymentMethod breaks one calendar month's expenses down by payment
// method. Entries with no method recorded are grouped under the
// "Não informado" placeholder rather than excluded.
func (s *ReportService) ByPaymentMethod(month, year int) (*domain.PaymentMethodBreakdown, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	aggregates, err := s.entryRepo.GroupByPaymentMethod(month, year)
	if err != nil {
		return nil, err
	}

	totalOverall := decimal.Zero
	for _, a := range aggregates {
		totalOverall = totalOverall.Add(a.Total)
	}

	items := make([]*domain.PaymentMethodBreakdownItem, len(aggregates))
	for i, a := range aggregates {
		method := a.Method
		if method == "" {
			method = paymentMethodNotInformed
		}
		items[i] = &domain.PaymentMethodBreakdownItem{
			Method:     method,
			Total:      a.Total,
			Count:      a.Count,
			Percentage: percentage(a.Total, totalOverall),
		}
	}

	return &domain.PaymentMethodBreakdown{
		Month:        month,
		Year:         year,
		TotalOverall: totalOverall,
		Methods:      items,
	}, nil
}

// BudgetUsage compares each category budget of one calendar month
// against the expenses actually recorded. Budgeted categories with no
// spend still appear, with zero usage.
func (s *ReportService) BudgetUsage(month, year int) (*domain.BudgetReport, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	budgets, err := s.budgetRepo.GetByPeriod(month, year)
	if err != nil {
		return nil, err
	}
	aggregates, err := s.entryRepo.GroupByCategory(month, year, domain.EntryTypeExpense)
	if err != nil {
		return nil, err
	}

	spentByCategory := make(map[int32]decimal.Decimal, len(aggregates))
	for _, a := range aggregates {
		spentByCategory[a.CategoryID] = a.Total
	}

	report := &domain.BudgetReport{
		Month:      month,
		Year:       year,
		TotalLimit: decimal.Zero,
		TotalSpent: decimal.Zero,
		Budgets:    make([]*domain.BudgetUsage, 0, len(budgets)),
	}

	for _, b := range budgets {
		spent := spentByCategory[b.CategoryID]
		usage := &domain.BudgetUsage{
			BudgetID:    b.ID,
			CategoryID:  b.CategoryID,
			Limit:       b.Limit,
			Spent:       spent,
			Remaining:   b.Limit.Sub(spent),
			PercentUsed: percentage(spent, b.Limit),
		}
		if b.Category != nil {
			usage.CategoryName = b.Category.Name
			usage.Color = b.Category.Color
			usage.Icon = b.Category.Icon
		}
		report.TotalLimit = report.TotalLimit.Add(b.Limit)
		report.TotalSpent = report.TotalSpent.Add(spent)
		report.Budgets = append(report.Budgets, usage)
	}

	return report, nil
}

// percentage computes part/whole*100 rounded to 2 decimal places,
// returning zero for a zero whole.
func percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(oneHundred).Round(2)
}
