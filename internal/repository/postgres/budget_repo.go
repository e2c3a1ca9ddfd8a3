package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/controle-gastos/gastos-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetSelect = `
	SELECT o.id, o.categoria_id, o.mes, o.ano, o.valor_limite, o.created_at, o.updated_at,
	       c.id, c.nome, c.descricao, c.cor, c.icone, c.ativo, c.created_at, c.updated_at
	FROM orcamentos_mensais o
	JOIN categorias c ON c.id = o.categoria_id`

// Create inserts a new monthly budget
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()

	limit, err := decimalToPgNumeric(budget.Limit)
	if err != nil {
		return nil, fmt.Errorf("invalid limit: %w", err)
	}

	query := `
		INSERT INTO orcamentos_mensais (categoria_id, mes, ano, valor_limite)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int32
	err = r.pool.QueryRow(ctx, query, budget.CategoryID, budget.Month, budget.Year, limit).Scan(&id)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrBudgetAlreadyExists
		}
		return nil, err
	}
	return r.GetByID(id)
}

// GetByID retrieves a budget by its ID, with its category joined in
func (r *BudgetRepository) GetByID(id int32) (*domain.Budget, error) {
	ctx := context.Background()

	budget, err := scanBudget(r.pool.QueryRow(ctx, budgetSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// GetByPeriod retrieves all budgets for a calendar month, ordered by
// category name
func (r *BudgetRepository) GetByPeriod(month, year int) ([]*domain.Budget, error) {
	ctx := context.Background()

	query := budgetSelect + ` WHERE o.mes = $1 AND o.ano = $2 ORDER BY c.nome ASC`

	rows, err := r.pool.Query(ctx, query, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// UpdateLimit changes a budget's spending limit
func (r *BudgetRepository) UpdateLimit(id int32, limit decimal.Decimal) (*domain.Budget, error) {
	ctx := context.Background()

	value, err := decimalToPgNumeric(limit)
	if err != nil {
		return nil, fmt.Errorf("invalid limit: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE orcamentos_mensais SET valor_limite = $1, updated_at = now() WHERE id = $2`,
		value, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrBudgetNotFound
	}
	return r.GetByID(id)
}

// Delete permanently removes a budget
func (r *BudgetRepository) Delete(id int32) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM orcamentos_mensais WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	var limit pgtype.Numeric
	var cat domain.Category
	var catDescription pgtype.Text

	err := row.Scan(
		&b.ID, &b.CategoryID, &b.Month, &b.Year, &limit, &b.CreatedAt, &b.UpdatedAt,
		&cat.ID, &cat.Name, &catDescription, &cat.Color, &cat.Icon, &cat.Active, &cat.CreatedAt, &cat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Limit = pgNumericToDecimal(limit)
	cat.Description = textToStringPtr(catDescription)
	b.Category = &cat
	return &b, nil
}
