package handler

import (
	"time"

	"github.com/controle-gastos/gastos-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// CategoriaResponse represents a category in API responses
type CategoriaResponse struct {
	ID        int32   `json:"id"`
	Nome      string  `json:"nome"`
	Descricao *string `json:"descricao"`
	Cor       string  `json:"cor"`
	Icone     string  `json:"icone"`
	Ativo     bool    `json:"ativo"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// GastoResponse represents a ledger entry in API responses. Amounts
// leave the decimal domain only here, already rounded to 2 places.
type GastoResponse struct {
	ID             int32              `json:"id"`
	Descricao      string             `json:"descricao"`
	Valor          float64            `json:"valor"`
	Data           string             `json:"data"`
	CategoriaID    *int32             `json:"categoria_id"`
	Categoria      *CategoriaResponse `json:"categoria"`
	Tipo           string             `json:"tipo"`
	FormaPagamento *string            `json:"forma_pagamento"`
	Observacao     *string            `json:"observacao"`
	Comprovante    *string            `json:"comprovante"`
	Recorrente     bool               `json:"recorrente"`
	CreatedAt      string             `json:"created_at"`
	UpdatedAt      string             `json:"updated_at"`
}

// OrcamentoResponse represents a monthly budget in API responses
type OrcamentoResponse struct {
	ID          int32              `json:"id"`
	CategoriaID int32              `json:"categoria_id"`
	Categoria   *CategoriaResponse `json:"categoria"`
	Mes         int                `json:"mes"`
	Ano         int                `json:"ano"`
	ValorLimite float64            `json:"valor_limite"`
	CreatedAt   string             `json:"created_at"`
	UpdatedAt   string             `json:"updated_at"`
}

func toCategoriaResponse(category *domain.Category) *CategoriaResponse {
	return &CategoriaResponse{
		ID:        category.ID,
		Nome:      category.Name,
		Descricao: category.Description,
		Cor:       category.Color,
		Icone:     category.Icon,
		Ativo:     category.Active,
		CreatedAt: category.CreatedAt.Format(time.RFC3339),
		UpdatedAt: category.UpdatedAt.Format(time.RFC3339),
	}
}

func toGastoResponse(entry *domain.Entry) *GastoResponse {
	resp := &GastoResponse{
		ID:             entry.ID,
		Descricao:      entry.Description,
		Valor:          entry.Amount.Round(2).InexactFloat64(),
		Data:           entry.Date.Format(dateLayout),
		CategoriaID:    entry.CategoryID,
		Tipo:           string(entry.Type),
		FormaPagamento: entry.PaymentMethod,
		Observacao:     entry.Notes,
		Comprovante:    entry.Receipt,
		Recorrente:     entry.Recurring,
		CreatedAt:      entry.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      entry.UpdatedAt.Format(time.RFC3339),
	}
	if entry.Category != nil {
		resp.Categoria = toCategoriaResponse(entry.Category)
	}
	return resp
}

func toOrcamentoResponse(budget *domain.Budget) *OrcamentoResponse {
	resp := &OrcamentoResponse{
		ID:          budget.ID,
		CategoriaID: budget.CategoryID,
		Mes:         budget.Month,
		Ano:         budget.Year,
		ValorLimite: budget.Limit.Round(2).InexactFloat64(),
		CreatedAt:   budget.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   budget.UpdatedAt.Format(time.RFC3339),
	}
	if budget.Category != nil {
		resp.Categoria = toCategoriaResponse(budget.Category)
	}
	return resp
}
