package handler

import (
	"errors"
	"time"

	"github.com/controle-gastos/gastos-backend/internal/domain"
	"github.com/controle-gastos/gastos-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles monthly budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// OrcamentoRequest represents the create/update budget request body
type OrcamentoRequest struct {
	CategoriaID *int32           `json:"categoria_id"`
	Mes         *int             `json:"mes"`
	Ano         *int             `json:"ano"`
	ValorLimite *decimal.Decimal `json:"valor_limite"`
}

// ListBudgets handles GET /api/orcamentos?mes&ano
func (h *BudgetHandler) ListBudgets(c echo.Context) error {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if value, ok, err := queryInt(c, "mes"); err != nil {
		return BadRequest(c, "Parâmetro mes inválido")
	} else if ok {
		month = value
	}
	if value, ok, err := queryInt(c, "ano"); err != nil {
		return BadRequest(c, "Parâmetro ano inválido")
	} else if ok {
		year = value
	}

	budgets, err := h.budgetService.ListBudgets(month, year)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return BadRequest(c, "Período inválido: mes deve estar entre 1 e 12 e ano deve ser positivo")
		}
		log.Error().Err(err).Msg("Failed to list budgets")
		return InternalError(c, err.Error())
	}

	response := make([]*OrcamentoResponse, len(budgets))
	for i, budget := range budgets {
		response[i] = toOrcamentoResponse(budget)
	}
	return OKList(c, response, len(response))
}

// CreateBudget handles POST /api/orcamentos
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	var req OrcamentoRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "Dados não fornecidos")
	}
	if req.CategoriaID == nil {
		return BadRequest(c, "categoria_id é obrigatório")
	}
	if req.Mes == nil || req.Ano == nil {
		return BadRequest(c, "mes e ano são obrigatórios")
	}

	budget, err := h.budgetService.CreateBudget(*req.CategoriaID, *req.Mes, *req.Ano, req.ValorLimite)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPeriod):
			return BadRequest(c, "Período inválido: mes deve estar entre 1 e 12 e ano deve ser positivo")
		case errors.Is(err, domain.ErrBudgetLimitRequired):
			return BadRequest(c, "valor_limite é obrigatório")
		case errors.Is(err, domain.ErrCategoryNotFound):
			return BadRequest(c, "Categoria não encontrada")
		case errors.Is(err, domain.ErrBudgetAlreadyExists):
			return BadRequest(c, "Já existe um orçamento para esta categoria neste período")
		}
		log.Error().Err(err).Msg("Failed to create budget")
		return InternalError(c, err.Error())
	}

	log.Info().Int32("budget_id", budget.ID).Int32("category_id", budget.CategoryID).Msg("Budget created")
	return Created(c, toOrcamentoResponse(budget), "Orçamento criado com sucesso")
}

// UpdateBudget handles PUT /api/orcamentos/:id
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return BadRequest(c, "ID inválido")
	}

	var req OrcamentoRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "Dados não fornecidos")
	}

	budget, err := h.budgetService.UpdateBudgetLimit(id, req.ValorLimite)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBudgetNotFound):
			return NotFound(c, "Orçamento não encontrado")
		case errors.Is(err, domain.ErrBudgetLimitRequired):
			return BadRequest(c, "valor_limite é obrigatório")
		}
		log.Error().Err(err).Int32("budget_id", id).Msg("Failed to update budget")
		return InternalError(c, err.Error())
	}

	return OK(c, toOrcamentoResponse(budget))
}

// DeleteBudget handles DELETE /api/orcamentos/:id
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return BadRequest(c, "ID inválido")
	}

	if err := h.budgetService.DeleteBudget(id); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NotFound(c, "Orçamento não encontrado")
		}
		log.Error().Err(err).Int32("budget_id", id).Msg("Failed to delete budget")
		return InternalError(c, err.Error())
	}

	log.Info().Int32("budget_id", id).Msg("Budget deleted")
	return OKMessage(c, "Orçamento deletado com sucesso")
}
