package service

import (
	"errors"
	"strings"

	"github.com/controle-gastos/gastos-backend/internal/domain"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput holds the fields accepted when creating a category
type CreateCategoryInput struct {
	Name        string
	Description *string
	Color       *string
	Icon        *string
	Active      *bool
}

// seedCategory is one entry of the fixed default set
type seedCategory struct {
	name        string
	description string
	color       string
}

// Default categories covering the common budget areas. The seed
// operation skips any whose name already exists.
var defaultCategories = []seedCategory{
	{"Alimentação", "Supermercado, restaurantes, lanches", "#14b8a6"},
	{"Transporte", "Combustível, transporte público, apps", "#0ea5e9"},
	{"Moradia", "Aluguel, condomínio, manutenção", "#8b5cf6"},
	{"Saúde", "Médicos, remédios, plano de saúde", "#10b981"},
	{"Educação", "Cursos, livros, material escolar", "#f59e0b"},
	{"Lazer", "Cinema, viagens, entretenimento", "#ec4899"},
	{"Vestuário", "Roupas, calçados, acessórios", "#f43f5e"},
	{"Contas Fixas", "Água, luz, internet, telefone", "#64748b"},
	{"Salário", "Rendimentos mensais", "#22c55e"},
	{"Investimentos", "Rendimentos de investimentos", "#eab308"},
	{"Outros", "Gastos diversos", "#6b7280"},
}

const seedIcon = "●"

// ListCategories retrieves categories sorted by name, optionally only active ones
func (s *CategoryService) ListCategories(activeOnly bool) ([]*domain.Category, error) {
	return s.categoryRepo.GetAll(activeOnly)
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(id int32) (*domain.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// CreateCategory validates and creates a new category, filling in
// display defaults for omitted fields
func (s *CategoryService) CreateCategory(input CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	category := &domain.Category{
		Name:        name,
		Description: input.Description,
		Color:       domain.DefaultCategoryColor,
		Icon:        domain.DefaultCategoryIcon,
		Active:      true,
	}
	if input.Color != nil {
		category.Color = *input.Color
	}
	if input.Icon != nil {
		category.Icon = *input.Icon
	}
	if input.Active != nil {
		category.Active = *input.Active
	}

	return s.categoryRepo.Create(category)
}

// UpdateCategory applies a partial update to a category
func (s *CategoryService) UpdateCategory(id int32, patch *domain.CategoryPatch) (*domain.Category, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.ErrNameRequired
		}
		patch.Name = &name
	}
	return s.categoryRepo.Update(id, patch)
}

// DeactivateCategory soft-deletes a category. Deactivating an already
// inactive category succeeds.
func (s *CategoryService) DeactivateCategory(id int32) error {
	return s.categoryRepo.Deactivate(id)
}

// SeedDefaults inserts the standard categories, skipping existing
// names, and returns how many were created
func (s *CategoryService) SeedDefaults() (int, error) {
	created := 0
	for _, seed := range defaultCategories {
		_, err := s.categoryRepo.GetByName(seed.name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrCategoryNotFound) {
			return created, err
		}

		description := seed.description
		_, err = s.categoryRepo.Create(&domain.Category{
			Name:        seed.name,
			Description: &description,
			Color:       seed.color,
			Icon:        seedIcon,
			Active:      true,
		})
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
