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

// EntryHandler handles ledger HTTP requests
type EntryHandler struct {
	entryService *service.EntryService
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// GastoRequest represents the create/update entry request body. On
// update, only the supplied fields change; categoria_id 0 clears the
// category reference.
type GastoRequest struct {
	Descricao      *string          `json:"descricao"`
	Valor          *decimal.Decimal `json:"valor"`
	Data           *string          `json:"data"`
	CategoriaID    *int32           `json:"categoria_id"`
	Tipo           *string          `json:"tipo"`
	FormaPagamento *string          `json:"forma_pagamento"`
	Observacao     *string          `json:"observacao"`
	Comprovante    *string          `json:"comprovante"`
	Recorrente     *bool            `json:"recorrente"`
}

// ListEntries handles GET /api/gastos with optional AND-combined filters
func (h *EntryHandler) ListEntries(c echo.Context) error {
	filters := &domain.EntryFilters{}

	if id, ok, err := queryInt(c, "categoria_id"); err != nil {
		return BadRequest(c, "categoria_id inválido")
	} else if ok {
		categoryID := int32(id)
		filters.CategoryID = &categoryID
	}
	if raw := c.QueryParam("tipo"); raw != "" {
		entryType := domain.EntryType(raw)
		filters.Type = &entryType
	}
	if raw := c.QueryParam("data_inicio"); raw != "" {
		start, err := time.Parse(dateLayout, raw)
		if err != nil {
			return BadRequest(c, "data_inicio inválida, use YYYY-MM-DD")
		}
		filters.StartDate = &start
	}
	if raw := c.QueryParam("data_fim"); raw != "" {
		end, err := time.Parse(dateLayout, raw)
		if err != nil {
			return BadRequest(c, "data_fim inválida, use YYYY-MM-DD")
		}
		filters.EndDate = &end
	}
	if month, ok, err := queryInt(c, "mes"); err != nil {
		return BadRequest(c, "mes inválido")
	} else if ok {
		filters.Month = &month
	}
	if year, ok, err := queryInt(c, "ano"); err != nil {
		return BadRequest(c, "ano inválido")
	} else if ok {
		filters.Year = &year
	}

	entries, err := h.entryService.ListEntries(filters)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEntryType) {
			return BadRequest(c, "Tipo inválido, use 'despesa' ou 'receita'")
		}
		log.Error().Err(err).Msg("Failed to list entries")
		return InternalError(c, err.Error())
	}

	response := make([]*GastoResponse, len(entries))
	for i, entry := range entries {
		response[i] = toGastoResponse(entry)
	}
	return OKList(c, response, len(response))
}

// GetEntry handles GET /api/gastos/:id
func (h *EntryHandler) GetEntry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return BadRequest(c, "ID inválido")
	}

	entry, err := h.entryService.GetEntry(id)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return NotFound(c, "Gasto não encontrado")
		}
		log.Error().Err(err).Int32("entry_id", id).Msg("Failed to get entry")
		return InternalError(c, err.Error())
	}
	return OK(c, toGastoResponse(entry))
}

// CreateEntry handles POST /api/gastos
func (h *EntryHandler) CreateEntry(c echo.Context) error {
	var req GastoRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "Dados não fornecidos")
	}
	if req.Descricao == nil {
		return BadRequest(c, "Descrição é obrigatória")
	}

	input := service.CreateEntryInput{
		Description:   *req.Descricao,
		Amount:        req.Valor,
		CategoryID:    req.CategoriaID,
		PaymentMethod: req.FormaPagamento,
		Notes:         req.Observacao,
		Receipt:       req.Comprovante,
		Recurring:     req.Recorrente,
	}
	if req.Tipo != nil {
		entryType := domain.EntryType(*req.Tipo)
		input.Type = &entryType
	}
	if req.Data != nil {
		date, err := time.Parse(dateLayout, *req.Data)
		if err != nil {
			return BadRequest(c, "Data inválida, use YYYY-MM-DD")
		}
		input.Date = &date
	}

	entry, err := h.entryService.CreateEntry(input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDescriptionRequired):
			return BadRequest(c, "Descrição é obrigatória")
		case errors.Is(err, domain.ErrAmountRequired):
			return BadRequest(c, "Valor é obrigatório")
		case errors.Is(err, domain.ErrInvalidEntryType):
			return BadRequest(c, "Tipo inválido, use 'despesa' ou 'receita'")
		case errors.Is(err, domain.ErrCategoryNotFound):
			return BadRequest(c, "Categoria não encontrada")
		}
		log.Error().Err(err).Msg("Failed to create entry")
		return InternalError(c, err.Error())
	}

	log.Info().Int32("entry_id", entry.ID).Str("tipo", string(entry.Type)).Msg("Entry created")
	return Created(c, toGastoResponse(entry), "Gasto criado com sucesso")
}

// UpdateEntry handles PUT /api/gastos/:id
func (h *EntryHandler) UpdateEntry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return BadRequest(c, "ID inválido")
	}

	var req GastoRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest(c, "Dados não fornecidos")
	}

	patch := &domain.EntryPatch{
		Description:   req.Descricao,
		Amount:        req.Valor,
		CategoryID:    req.CategoriaID,
		PaymentMethod: req.FormaPagamento,
		Notes:         req.Observacao,
		Receipt:       req.Comprovante,
		Recurring:     req.Recorrente,
	}
	if req.Tipo != nil {
		entryType := domain.EntryType(*req.Tipo)
		patch.Type = &entryType
	}
	if req.Data != nil {
		date, err := time.Parse(dateLayout, *req.Data)
		if err != nil {
			return BadRequest(c, "Data inválida, use YYYY-MM-DD")
		}
		patch.Date = &date
	}

	entry, err := h.entryService.UpdateEntry(id, patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEntryNotFound):
			return NotFound(c, "Gasto não encontrado")
		case errors.Is(err, domain.ErrDescriptionRequired):
			return BadRequest(c, "Descrição é obrigatória")
		case errors.Is(err, domain.ErrInvalidEntryType):
			return BadRequest(c, "Tipo inválido, use 'despesa' ou 'receita'")
		case errors.Is(err, domain.ErrCategoryNotFound):
			return BadRequest(c, "Categoria não encontrada")
		}
		log.Error().Err(err).Int32("entry_id", id).Msg("Failed to update entry")
		return InternalError(c, err.Error())
	}

	return OK(c, toGastoResponse(entry))
}

// DeleteEntry handles DELETE /api/gastos/:id (hard delete)
func (h *EntryHandler) DeleteEntry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return BadRequest(c, "ID inválido")
	}

	if err := h.entryService.DeleteEntry(id); err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return NotFound(c, "Gasto não encontrado")
		}
		log.Error().Err(err).Int32("entry_id", id).Msg("Failed to delete entry")
		return InternalError(c, err.Error())
	}

	log.Info().Int32("entry_id", id).Msg("Entry deleted")
	return OKMessage(c, "Gasto deletado com sucesso")
}
