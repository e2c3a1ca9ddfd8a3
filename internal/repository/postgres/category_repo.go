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
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = "id, nome, descricao, cor, icone, ativo, created_at, updated_at"

// Create inserts a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()

	query := `
		INSERT INTO categorias (nome, descricao, cor, icone, ativo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + categoryColumns

	row := r.pool.QueryRow(ctx, query,
		category.Name,
		stringPtrToText(category.Description),
		category.Color,
		category.Icon,
		category.Active,
	)
	created, err := scanCategory(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrCategoryAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(id int32) (*domain.Category, error) {
	ctx := context.Background()

	query := `SELECT ` + categoryColumns + ` FROM categorias WHERE id = $1`

	category, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetByName retrieves a category by its exact name (case-sensitive)
func (r *CategoryRepository) GetByName(name string) (*domain.Category, error) {
	ctx := context.Background()

	query := `SELECT ` + categoryColumns + ` FROM categorias WHERE nome = $1`

	category, err := scanCategory(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetAll retrieves categories ordered by name ascending, optionally
// restricted to active ones
func (r *CategoryRepository) GetAll(activeOnly bool) ([]*domain.Category, error) {
	ctx := context.Background()

	query := `SELECT ` + categoryColumns + ` FROM categorias`
	if activeOnly {
		query += ` WHERE ativo = TRUE`
	}
	query += ` ORDER BY nome ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update applies the non-nil patch fields to a category
func (r *CategoryRepository) Update(id int32, patch *domain.CategoryPatch) (*domain.Category, error) {
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

	if patch.Name != nil {
		sets = append(sets, "nome = "+arg(*patch.Name))
	}
	if patch.Description != nil {
		sets = append(sets, "descricao = "+arg(*patch.Description))
	}
	if patch.Color != nil {
		sets = append(sets, "cor = "+arg(*patch.Color))
	}
	if patch.Icon != nil {
		sets = append(sets, "icone = "+arg(*patch.Icon))
	}
	if patch.Active != nil {
		sets = append(sets, "ativo = "+arg(*patch.Active))
	}
	sets = append(sets, "updated_at = "+arg(time.Now().UTC()))

	query := `UPDATE categorias SET ` + strings.Join(sets, ", ") +
		` WHERE id = ` + arg(id) + ` RETURNING ` + categoryColumns

	category, err := scanCategory(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		if isPgUniqueViolation(err) {
			return nil, domain.ErrCategoryAlreadyExists
		}
		return nil, err
	}
	return category, nil
}

// Deactivate soft-deletes a category by clearing its active flag.
// Deactivating an already inactive category is not an error.
func (r *CategoryRepository) Deactivate(id int32) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`UPDATE categorias SET ativo = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	var descricao pgtype.Text
	err := row.Scan(&c.ID, &c.Name, &descricao, &c.Color, &c.Icon, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Description = textToStringPtr(descricao)
	return &c, nil
}
