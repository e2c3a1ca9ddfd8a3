package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/controle-gastos/gastos-backend/internal/domain"
	"github.com/controle-gastos/gastos-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoriaRequest represents the create/update category request body.
// On update, only the supplied fields change.
type CategoriaRequest struct {
	Nome      *string `json:"nome"`
	Descricao *string `json:"descricao"`
	Cor       *string `json:"cor"`
	Icone     *string `json:"icone"`
	Ativo     *bool   `json:"ativo"`
}

// ListCategories handles GET /api/categorias?ativas=<bool>
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	activeOnly := true
	if raw := c.QueryParam("ativas"); raw != "" {
		activeOnly = strings.EqualFold(raw, "true")
	}

	categories, err := h.categoryService.ListCategories(activeOnly)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories")
		return InternalError(c, err.Error())
	}

	response := make([]*CategoriaResponse, len(categories))
	for i, category := range categories {
		response[i] = toCategoriaResponse(category)
	}
	return OKList(c, response, len(response))
}

// GetCategory handles GET /api/categorias/:id
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return BadRequest(c, "ID inválido")
	}

	category, err := h.categoryService.GetCategory(id)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NotFound(c, "Categoria não encontrada")
		}
		log.Error().Err(err).Int32("category_id", id).Msg("Failed to get category")
		return InternalError(c, err.Error())
	}
	return OK(c, toCategoriaResponse(category))
}

// CreateCategory handles POST /api/categorias
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CategoriaRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "Dados não fornecidos")
	}
	if req.Nome == nil {
		return BadRequest(c, "Nome é obrigatório")
	}

	category, err := h.categoryService.CreateCategory(service.CreateCategoryInput{
		Name:        *req.Nome,
		Description: req.Descricao,
		Color:       req.Cor,
		Icon:        req.Icone,
		Active:      req.Ativo,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return BadRequest(c, "Nome é obrigatório")
		}
		if errors.Is(err, domain.ErrCategoryAlreadyExists) {
			return BadRequest(c, "Já existe uma categoria com este nome")
		}
		log.Error().Err(err).Msg("Failed to create category")
		return InternalError(c, err.Error())
	}

	log.Info().Int32("category_id", category.ID).Str("name", category.Name).Msg("Category created")
	return Created(c, toCategoriaResponse(category), "Categoria criada com sucesso")
}

// UpdateCategory handles PUT /api/categorias/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return BadRequest(c, "ID inválido")
	}

	var req CategoriaRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "Dados não fornecidos")
	}

	category, err := h.categoryService.UpdateCategory(id, &domain.CategoryPatch{
		Name:        req.Nome,
		Description: req.Descricao,
		Color:       req.Cor,
		Icon:        req.Icone,
		Active:      req.Ativo,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NotFound(c, "Categoria não encontrada")
		}
		if errors.Is(err, domain.ErrNameRequired) {
			return BadRequest(c, "Nome é obrigatório")
		}
		if errors.Is(err, domain.ErrCategoryAlreadyExists) {
			return BadRequest(c, "Já existe uma categoria com este nome")
		}
		log.Error().Err(err).Int32("category_id", id).Msg("Failed to update category")
		return InternalError(c, err.Error())
	}

	return OK(c, toCategoriaResponse(category))
}

// DeactivateCategory handles DELETE /api/categorias/:id (soft delete)
func (h *CategoryHandler) DeactivateCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return BadRequest(c, "ID inválido")
	}

	if err := h.categoryService.DeactivateCategory(id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NotFound(c, "Categoria não encontrada")
		}
		log.Error().Err(err).Int32("category_id", id).Msg("Failed to deactivate category")
		return InternalError(c, err.Error())
	}

	log.Info().Int32("category_id", id).Msg("Category deactivated")
	return OKMessage(c, "Categoria desativada com sucesso")
}

// SeedCategories handles POST /api/categorias/seed
func (h *CategoryHandler) SeedCategories(c echo.Context) error {
	created, err := h.categoryService.SeedDefaults()
	if err != nil {
		log.Error().Err(err).Msg("Failed to seed categories")
		return InternalError(c, err.Error())
	}

	log.Info().Int("created", created).Msg("Default categories seeded")
	return OKMessage(c, fmt.Sprintf("%d categorias criadas com sucesso", created))
}
