package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/controle-gastos/gastos-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// EntryRepository implements domain.EntryRepository using PostgreSQL
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entrySelect = `
	SELECT g.id, g.descricao, g.valor, g.data, g.categoria_id, g.tipo,
	       g.forma_pagamento, g.observacao, g.comprovante, g.recorrente,
	       g.created_at, g.updated_at,
	       c.id, c.nome, c.descricao, c.cor, c.icone, c.ativo, c.created_at, c.updated_at
	FROM gastos g
	LEFT JOIN categorias c ON c.id = g.categoria_id`

// Create inserts a new entry
func (r *EntryRepository) Create(entry *domain.Entry) (*domain.Entry, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(entry.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	var categoryID pgtype.Int4
	if entry.CategoryID != nil {
		categoryID = pgtype.Int4{Int32: *entry.CategoryID, Valid: true}
	}

	query := `
		INSERT INTO gastos (descricao, valor, data, categoria_id, tipo,
		                    forma_pagamento, observacao, comprovante, recorrente)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id int32
	err = r.pool.QueryRow(ctx, query,
		entry.Description,
		amount,
		pgtype.Date{Time: entry.Date, Valid: true},
		categoryID,
		string(entry.Type),
		stringPtrToText(entry.PaymentMethod),
		stringPtrToText(entry.Notes),
		stringPtrToText(entry.Receipt),
		entry.Recurring,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// GetByID retrieves an entry by its ID, with its category joined in
func (r *EntryRepository) GetByID(id int32) (*domain.Entry, error) {
	ctx := context.Background()

	entry, err := scanEntry(r.pool.QueryRow(ctx, entrySelect+` WHERE g.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

// GetAll retrieves entries matching the filters, newest date first
func (r *EntryRepository) GetAll(filters *domain.EntryFilters) ([]*domain.Entry, error) {
	ctx := context.Background()

	conds := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters != nil {
		if filters.CategoryID != nil {
			conds = append(conds, "g.categoria_id = "+arg(*filters.CategoryID))
		}
		if filters.Type != nil {
			conds = append(conds, "g.tipo = "+arg(string(*filters.Type)))
		}
		if filters.Month != nil && filters.Year != nil {
			// Exact month+year match takes precedence over the date range.
			conds = append(conds, "EXTRACT(MONTH FROM g.data) = "+arg(*filters.Month))
			conds = append(conds, "EXTRACT(YEAR FROM g.data) = "+arg(*filters.Year))
		} else {
			if filters.StartDate != nil {
				conds = append(conds, "g.data >= "+arg(pgtype.Date{Time: *filters.StartDate, Valid: true}))
			}
			if filters.EndDate != nil {
				conds = append(conds, "g.data <= "+arg(pgtype.Date{Time: *filters.EndDate, Valid: true}))
			}
		}
	}

	query := entrySelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY g.data DESC, g.id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Update applies the non-nil patch fields to an entry
func (r *EntryRepository) Update(id int32, patch *domain.EntryPatch) (*domain.Entry, error) {
	ctx := context.Background()

	if patch.IsEmpty() {
		return r.GetByID(id)
	}

	sets := []string{}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if patch.Description != nil {
		sets = append(sets, "descricao = "+arg(*patch.Description))
	}
	if patch.Amount != nil {
		amount, err := decimalToPgNumeric(*patch.Amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount: %w", err)
		}
		sets = append(sets, "valor = "+arg(amount))
	}
	if patch.Date != nil {
		sets = append(sets, "data = "+arg(pgtype.Date{Time: *patch.Date, Valid: true}))
	}
	if patch.CategoryID != nil {
		// Zero clears the category reference.
		var categoryID pgtype.Int4
		if *patch.CategoryID != 0 {
			categoryID = pgtype.Int4{Int32: *patch.CategoryID, Valid: true}
		}
		sets = append(sets, "categoria_id = "+arg(categoryID))
	}
	if patch.Type != nil {
		sets = append(sets, "tipo = "+arg(string(*patch.Type)))
	}
	if patch.PaymentMethod != nil {
		sets = append(sets, "forma_pagamento = "+arg(*patch.PaymentMethod))
	}
	if patch.Notes != nil {
		sets = append(sets, "observacao = "+arg(*patch.Notes))
	}
	if patch.Receipt != nil {
		sets = append(sets, "comprovante = "+arg(*patch.Receipt))
	}
	if patch.Recurring != nil {
		sets = append(sets, "recorrente = "+arg(*patch.Recurring))
	}
	sets = append(sets, "updated_at = "+arg(time.Now().UTC()))

	query := `UPDATE gastos SET ` + strings.Join(sets, ", ") + ` WHERE id = ` + arg(id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrEntryNotFound
	}
	return r.GetByID(id)
}

// Delete permanently removes an entry
func (r *EntryRepository) Delete(id int32) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM gastos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// SumByTypeAndPeriod sums entry amounts of one type within a calendar month
func (r *EntryRepository) SumByTypeAndPeriod(month, year int, entryType domain.EntryType) (decimal.Decimal, error) {
	ctx := context.Background()

	query := `
		SELECT COALESCE(SUM(valor), 0)
		FROM gastos
		WHERE tipo = $1
		  AND EXTRACT(MONTH FROM data) = $2
		  AND EXTRACT(YEAR FROM data) = $3`

	var total pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, string(entryType), month, year).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(total), nil
}

// CountByPeriod counts entries of any type within a calendar month
func (r *EntryRepository) CountByPeriod(month, year int) (int64, error) {
	ctx := context.Background()

	query := `
		SELECT COUNT(*)
		FROM gastos
		WHERE EXTRACT(MONTH FROM data) = $1
		  AND EXTRACT(YEAR FROM data) = $2`

	var count int64
	if err := r.pool.QueryRow(ctx, query, month, year).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// GroupByCategory aggregates entries of one type within a calendar
// month by category. Entries without a category are excluded by the
// inner join.
func (r *EntryRepository) GroupByCategory(month, year int, entryType domain.EntryType) ([]*domain.CategoryAggregate, error) {
	ctx := context.Background()

	query := `
		SELECT c.id, c.nome, c.cor, c.icone, SUM(g.valor) AS total, COUNT(g.id)
		FROM categorias c
		JOIN gastos g ON g.categoria_id = c.id
		WHERE g.tipo = $1
		  AND EXTRACT(MONTH FROM g.data) = $2
		  AND EXTRACT(YEAR FROM g.data) = $3
		GROUP BY c.id, c.nome, c.cor, c.icone
		ORDER BY total DESC, c.id ASC`

	rows, err := r.pool.Query(ctx, query, string(entryType), month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aggregates []*domain.CategoryAggregate
	for rows.Next() {
		var a domain.CategoryAggregate
		var total pgtype.Numeric
		if err := rows.Scan(&a.CategoryID, &a.CategoryName, &a.Color, &a.Icon, &total, &a.Count); err != nil {
			return nil, err
		}
		a.Total = pgNumericToDecimal(total)
		aggregates = append(aggregates, &a)
	}
	return aggregates, rows.Err()
}

// TopExpenses returns the highest-valued expense entries of a calendar month
func (r *EntryRepository) TopExpenses(month, year, limit int) ([]*domain.Entry, error) {
	ctx := context.Background()

	query := entrySelect + `
		WHERE g.tipo = $1
		  AND EXTRACT(MONTH FROM g.data) = $2
		  AND EXTRACT(YEAR FROM g.data) = $3
		ORDER BY g.valor DESC, g.id ASC
		LIMIT $4`

	rows, err := r.pool.Query(ctx, query, string(domain.EntryTypeExpense), month, year, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GroupByPaymentMethod aggregates expense entries of a calendar month
// by payment method. Entries with no method recorded come back with an
// empty Method.
func (r *EntryRepository) GroupByPaymentMethod(month, year int) ([]*domain.PaymentMethodAggregate, error) {
	ctx := context.Background()

	query := `
		SELECT COALESCE(forma_pagamento, ''), SUM(valor) AS total, COUNT(id)
		FROM gastos
		WHERE tipo = $1
		  AND EXTRACT(MONTH FROM data) = $2
		  AND EXTRACT(YEAR FROM data) = $3
		GROUP BY COALESCE(forma_pagamento, '')
		ORDER BY total DESC`

	rows, err := r.pool.Query(ctx, query, string(domain.EntryTypeExpense), month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aggregates []*domain.PaymentMethodAggregate
	for rows.Next() {
		var a domain.PaymentMethodAggregate
		var total pgtype.Numeric
		if err := rows.Scan(&a.Method, &total, &a.Count); err != nil {
			return nil, err
		}
		a.Total = pgNumericToDecimal(total)
		aggregates = append(aggregates, &a)
	}
	return aggregates, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var e domain.Entry
	var amount pgtype.Numeric
	var date pgtype.Date
	var categoryID pgtype.Int4
	var paymentMethod, notes, receipt pgtype.Text

	var catID pgtype.Int4
	var catName, catColor, catIcon pgtype.Text
	var catDescription pgtype.Text
	var catActive pgtype.Bool
	var catCreatedAt, catUpdatedAt pgtype.Timestamptz

	err := row.Scan(
		&e.ID, &e.Description, &amount, &date, &categoryID, &e.Type,
		&paymentMethod, &notes, &receipt, &e.Recurring,
		&e.CreatedAt, &e.UpdatedAt,
		&catID, &catName, &catDescription, &catColor, &catIcon, &catActive, &catCreatedAt, &catUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Amount = pgNumericToDecimal(amount)
	e.Date = date.Time
	e.PaymentMethod = textToStringPtr(paymentMethod)
	e.Notes = textToStringPtr(notes)
	e.Receipt = textToStringPtr(receipt)
	if categoryID.Valid {
		id := categoryID.Int32
		e.CategoryID = &id
	}
	if catID.Valid {
		e.Category = &domain.Category{
			ID:          catID.Int32,
			Name:        catName.String,
			Description: textToStringPtr(catDescription),
			Color:       catColor.String,
			Icon:        catIcon.String,
			Active:      catActive.Bool,
			CreatedAt:   catCreatedAt.Time,
			UpdatedAt:   catUpdatedAt.Time,
		}
	}
	return &e, nil
}
