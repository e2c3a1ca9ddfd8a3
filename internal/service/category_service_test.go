package service

import (
	"errors"
	"testing"

	"github.com/controle-gastos/gastos-backend/internal/domain"
	"github.com/controle-gastos/gastos-backend/internal/testutil"
)

func TestCreateCategory_Success(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	description := "Supermercado e restaurantes"
	category, err := categoryService.CreateCategory(CreateCategoryInput{
		Name:        "Alimentação",
		Description: &description,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if category.ID == 0 {
		t.Error("Expected category to receive an ID")
	}
	if category.Name != "Alimentação" {
		t.Errorf("Expected name 'Alimentação', got %s", category.Name)
	}
	if category.Description == nil || *category.Description != description {
		t.Errorf("Expected description %q, got %v", description, category.Description)
	}
	if !category.Active {
		t.Error("Expected new category to be active")
	}
}

func TestCreateCategory_DisplayDefaults(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	category, err := categoryService.CreateCategory(CreateCategoryInput{Name: "Lazer"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if category.Color != domain.DefaultCategoryColor {
		t.Errorf("Expected default color %s, got %s", domain.DefaultCategoryColor, category.Color)
	}
	if category.Icon != domain.DefaultCategoryIcon {
		t.Errorf("Expected default icon %s, got %s", domain.DefaultCategoryIcon, category.Icon)
	}
}

func TestCreateCategory_TrimsName(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	category, err := categoryService.CreateCategory(CreateCategoryInput{Name: "  Transporte  "})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if category.Name != "Transporte" {
		t.Errorf("Expected trimmed name 'Transporte', got %q", category.Name)
	}
}

func TestCreateCategory_EmptyName(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	_, err := categoryService.CreateCategory(CreateCategoryInput{Name: ""})
	if !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}

	_, err = categoryService.CreateCategory(CreateCategoryInput{Name: "   "})
	if !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("Expected ErrNameRequired for whitespace name, got %v", err)
	}
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	_, err := categoryService.CreateCategory(CreateCategoryInput{Name: "Saúde"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	_, err = categoryService.CreateCategory(CreateCategoryInput{Name: "Saúde"})
	if !errors.Is(err, domain.ErrCategoryAlreadyExists) {
		t.Errorf("Expected ErrCategoryAlreadyExists, got %v", err)
	}
}

func TestListCategories_SortedByName(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	for _, name := range []string{"Transporte", "Alimentação", "Moradia"} {
		if _, err := categoryService.CreateCategory(CreateCategoryInput{Name: name}); err != nil {
			t.Fatalf("Expected no error creating %s, got %v", name, err)
		}
	}

	categories, err := categoryService.ListCategories(true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(categories) != 3 {
		t.Fatalf("Expected 3 categories, got %d", len(categories))
	}
	expected := []string{"Alimentação", "Moradia", "Transporte"}
	for i, name := range expected {
		if categories[i].Name != name {
			t.Errorf("Expected category %d to be %s, got %s", i, name, categories[i].Name)
		}
	}
}

func TestListCategories_ActiveOnlyExcludesDeactivated(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	kept, err := categoryService.CreateCategory(CreateCategoryInput{Name: "Educação"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	removed, err := categoryService.CreateCategory(CreateCategoryInput{Name: "Vestuário"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := categoryService.DeactivateCategory(removed.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	active, err := categoryService.ListCategories(true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(active) != 1 || active[0].ID != kept.ID {
		t.Errorf("Expected only %d in active list, got %d categories", kept.ID, len(active))
	}

	all, err := categoryService.ListCategories(false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 categories in full list, got %d", len(all))
	}
}

func TestDeactivateCategory_Idempotent(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	category, err := categoryService.CreateCategory(CreateCategoryInput{Name: "Contas Fixas"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := categoryService.DeactivateCategory(category.ID); err != nil {
		t.Fatalf("Expected no error on first deactivation, got %v", err)
	}
	if err := categoryService.DeactivateCategory(category.ID); err != nil {
		t.Errorf("Expected no error on repeated deactivation, got %v", err)
	}
}

func TestDeactivateCategory_NotFound(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	err := categoryService.DeactivateCategory(999)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}

func TestUpdateCategory_PartialPatch(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	category, err := categoryService.CreateCategory(CreateCategoryInput{Name: "Lazer"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	newColor := "#ff0000"
	updated, err := categoryService.UpdateCategory(category.ID, &domain.CategoryPatch{Color: &newColor})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if updated.Color != newColor {
		t.Errorf("Expected color %s, got %s", newColor, updated.Color)
	}
	if updated.Name != "Lazer" {
		t.Errorf("Expected name to be untouched, got %s", updated.Name)
	}
}

func TestUpdateCategory_EmptyNameRejected(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	category, err := categoryService.CreateCategory(CreateCategoryInput{Name: "Outros"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	blank := "   "
	_, err = categoryService.UpdateCategory(category.ID, &domain.CategoryPatch{Name: &blank})
	if !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
}

func TestSeedDefaults_CreatesStandardSet(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	created, err := categoryService.SeedDefaults()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if created != 11 {
		t.Errorf("Expected 11 categories created, got %d", created)
	}

	if _, err := categoryRepo.GetByName("Alimentação"); err != nil {
		t.Errorf("Expected seeded 'Alimentação' to exist, got %v", err)
	}
	if _, err := categoryRepo.GetByName("Salário"); err != nil {
		t.Errorf("Expected seeded 'Salário' to exist, got %v", err)
	}
}

func TestSeedDefaults_SkipsExisting(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	if _, err := categoryService.CreateCategory(CreateCategoryInput{Name: "Transporte"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	created, err := categoryService.SeedDefaults()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if created != 10 {
		t.Errorf("Expected 10 categories created, got %d", created)
	}

	created, err = categoryService.SeedDefaults()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if created != 0 {
		t.Errorf("Expected rerun to create 0 categories, got %d", created)
	}
}
