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

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ResumoMensalResponse is the monthly summary payload
type ResumoMensalResponse struct {
	Mes                  int     `json:"mes"`
	Ano                  int     `json:"ano"`
	TotalDespesas        float64 `json:"total_despesas"`
	TotalReceitas        float64 `json:"total_receitas"`
	Saldo                float64 `json:"saldo"`
	QuantidadeTransacoes int64   `json:"quantidade_transacoes"`
}

// CategoriaBreakdownItem is one grouped row of the by-category report
type CategoriaBreakdownItem struct {
	CategoriaID   int32   `json:"categoria_id"`
	CategoriaNome string  `json:"categoria_nome"`
	Cor           string  `json:"cor"`
	Icone         string  `json:"icone"`
	Total         float64 `json:"total"`
	Quantidade    int64   `json:"quantidade"`
	Percentual    float64 `json:"percentual"`
}

// PorCategoriaResponse is the by-category report payload
type PorCategoriaResponse struct {
	Mes        int                       `json:"mes"`
	Ano        int                       `json:"ano"`
	Tipo       string                    `json:"tipo"`
	TotalGeral float64                   `json:"total_geral"`
	Categorias []*CategoriaBreakdownItem `json:"categorias"`
}

// EvolucaoPonto is one month of the evolution series. Valor is set
// when a type filter is given; otherwise despesas/receitas/saldo are.
type EvolucaoPonto struct {
	Mes      int      `json:"mes"`
	Ano      int      `json:"ano"`
	MesNome  string   `json:"mes_nome"`
	Valor    *float64 `json:"valor,omitempty"`
	Despesas *float64 `json:"despesas,omitempty"`
	Receitas *float64 `json:"receitas,omitempty"`
	Saldo    *float64 `json:"saldo,omitempty"`
}

// MaioresGastosResponse is the top expenses payload
type MaioresGastosResponse struct {
	Mes    int              `json:"mes"`
	Ano    int              `json:"ano"`
	Gastos []*GastoResponse `json:"gastos"`
}

// FormaPagamentoItem is one grouped row of the by-payment-method report
type FormaPagamentoItem struct {
	FormaPagamento string  `json:"forma_pagamento"`
	Total          float64 `json:"total"`
	Quantidade     int64   `json:"quantidade"`
	Percentual     float64 `json:"percentual"`
}

// PorFormaPagamentoResponse is the by-payment-method report payload
type PorFormaPagamentoResponse struct {
	Mes             int                   `json:"mes"`
	Ano             int                   `json:"ano"`
	TotalGeral      float64               `json:"total_geral"`
	FormasPagamento []*FormaPagamentoItem `json:"formas_pagamento"`
}

// OrcamentoUsoItem is one category row of the budget report
type OrcamentoUsoItem struct {
	OrcamentoID     int32   `json:"orcamento_id"`
	CategoriaID     int32   `json:"categoria_id"`
	CategoriaNome   string  `json:"categoria_nome"`
	Cor             string  `json:"cor"`
	Icone           string  `json:"icone"`
	ValorLimite     float64 `json:"valor_limite"`
	GastoTotal      float64 `json:"gasto_total"`
	Restante        float64 `json:"restante"`
	PercentualUsado float64 `json:"percentual_usado"`
}

// RelatorioOrcamentoResponse is the budget report payload
type RelatorioOrcamentoResponse struct {
	Mes         int                 `json:"mes"`
	Ano         int                 `json:"ano"`
	TotalLimite float64             `json:"total_limite"`
	TotalGasto  float64             `json:"total_gasto"`
	Orcamentos  []*OrcamentoUsoItem `json:"orcamentos"`
}

// periodParams reads mes/ano query parameters, defaulting to the
// current calendar month
func periodParams(c echo.Context) (int, int, error) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if value, ok, err := queryInt(c, "mes"); err != nil {
		return 0, 0, err
	} else if ok {
		month = value
	}
	if value, ok, err := queryInt(c, "ano"); err != nil {
		return 0, 0, err
	} else if ok {
		year = value
	}
	return month, year, nil
}

func reportError(c echo.Context, err error, report string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidPeriod):
		return BadRequest(c, "Período inválido: mes deve estar entre 1 e 12 e ano deve ser positivo")
	case errors.Is(err, domain.ErrInvalidEntryType):
		return BadRequest(c, "Tipo inválido, use 'despesa' ou 'receita'")
	case errors.Is(err, domain.ErrInvalidMonthCount):
		return BadRequest(c, "meses deve ser no mínimo 1")
	case errors.Is(err, domain.ErrInvalidLimit):
		return BadRequest(c, "limite deve ser no mínimo 1")
	}
	log.Error().Err(err).Str("report", report).Msg("Failed to build report")
	return InternalError(c, err.Error())
}

func toFloat(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// MonthlySummary handles GET /api/relatorios/resumo-mensal?mes&ano
func (h *ReportHandler) MonthlySummary(c echo.Context) error {
	month, year, err := periodParams(c)
	if err != nil {
		return BadRequest(c, "Parâmetros mes/ano inválidos")
	}

	summary, err := h.reportService.MonthlySummary(month, year)
	if err != nil {
		return reportError(c, err, "resumo-mensal")
	}

	return OK(c, &ResumoMensalResponse{
		Mes:                  summary.Month,
		Ano:                  summary.Year,
		TotalDespesas:        toFloat(summary.TotalExpenses),
		TotalReceitas:        toFloat(summary.TotalIncome),
		Saldo:                toFloat(summary.Balance),
		QuantidadeTransacoes: summary.TransactionCount,
	})
}

// ByCategory handles GET /api/relatorios/por-categoria?mes&ano&tipo
func (h *ReportHandler) ByCategory(c echo.Context) error {
	month, year, err := periodParams(c)
	if err != nil {
		return BadRequest(c, "Parâmetros mes/ano inválidos")
	}

	entryType := domain.EntryTypeExpense
	if raw := c.QueryParam("tipo"); raw != "" {
		entryType = domain.EntryType(raw)
	}

	breakdown, err := h.reportService.ByCategory(month, year, entryType)
	if err != nil {
		return reportError(c, err, "por-categoria")
	}

	items := make([]*CategoriaBreakdownItem, len(breakdown.Categories))
	for i, item := range breakdown.Categories {
		items[i] = &CategoriaBreakdownItem{
			CategoriaID:   item.CategoryID,
			CategoriaNome: item.CategoryName,
			Cor:           item.Color,
			Icone:         item.Icon,
			Total:         toFloat(item.Total),
			Quantidade:    item.Count,
			Percentual:    toFloat(item.Percentage),
		}
	}

	return OK(c, &PorCategoriaResponse{
		Mes:        breakdown.Month,
		Ano:        breakdown.Year,
		Tipo:       string(breakdown.Type),
		TotalGeral: toFloat(breakdown.TotalOverall),
		Categorias: items,
	})
}

// Evolution handles GET /api/relatorios/evolucao?meses&tipo
func (h *ReportHandler) Evolution(c echo.Context) error {
	monthsCount := 6
	if value, ok, err := queryInt(c, "meses"); err != nil {
		return BadRequest(c, "Parâmetro meses inválido")
	} else if ok {
		monthsCount = value
	}

	var entryType *domain.EntryType
	if raw := c.QueryParam("tipo"); raw != "" {
		value := domain.EntryType(raw)
		entryType = &value
	}

	points, err := h.reportService.Evolution(monthsCount, entryType)
	if err != nil {
		return reportError(c, err, "evolucao")
	}

	response := make([]*EvolucaoPonto, len(points))
	for i, point := range points {
		item := &EvolucaoPonto{
			Mes:     point.Month,
			Ano:     point.Year,
			MesNome: point.Label,
		}
		if point.Value != nil {
			value := toFloat(*point.Value)
			item.Valor = &value
		} else {
			expenses := toFloat(*point.Expenses)
			income := toFloat(*point.Income)
			balance := toFloat(*point.Balance)
			item.Despesas = &expenses
			item.Receitas = &income
			item.Saldo = &balance
		}
		response[i] = item
	}

	return OK(c, response)
}

// TopExpenses handles GET /api/relatorios/maiores-gastos?mes&ano&limite
func (h *ReportHandler) TopExpenses(c echo.Context) error {
	month, year, err := periodParams(c)
	if err != nil {
		return BadRequest(c, "Parâmetros mes/ano inválidos")
	}

	limit := 10
	if value, ok, err := queryInt(c, "limite"); err != nil {
		return BadRequest(c, "Parâmetro limite inválido")
	} else if ok {
		limit = value
	}

	entries, err := h.reportService.TopExpenses(month, year, limit)
	if err != nil {
		return reportError(c, err, "maiores-gastos")
	}

	gastos := make([]*GastoResponse, len(entries))
	for i, entry := range entries {
		gastos[i] = toGastoResponse(entry)
	}

	return OK(c, &MaioresGastosResponse{Mes: month, Ano: year, Gastos: gastos})
}

// ByPaymentMethod handles GET /api/relatorios/por-forma-pagamento?mes&ano
func (h *ReportHandler) ByPaymentMethod(c echo.Context) error {
	month, year, err := periodParams(c)
	if err != nil {
		return BadRequest(c, "Parâmetros mes/ano inválidos")
	}

	breakdown, err := h.reportService.ByPaymentMethod(month, year)
	if err != nil {
		return reportError(c, err, "por-forma-pagamento")
	}

	items := make([]*FormaPagamentoItem, len(breakdown.Methods))
	for i, item := range breakdown.Methods {
		items[i] = &FormaPagamentoItem{
			FormaPagamento: item.Method,
			Total:          toFloat(item.Total),
			Quantidade:     item.Count,
			Percentual:     toFloat(item.Percentage),
		}
	}

	return OK(c, &PorFormaPagamentoResponse{
		Mes:             breakdown.Month,
		Ano:             breakdown.Year,
		TotalGeral:      toFloat(breakdown.TotalOverall),
		FormasPagamento: items,
	})
}

// BudgetUsage handles GET /api/relatorios/orcamento?mes&ano
func (h *ReportHandler) BudgetUsage(c echo.Context) error {
	month, year, err := periodParams(c)
	if err != nil {
		return BadRequest(c, "Parâmetros mes/ano inválidos")
	}

	report, err := h.reportService.BudgetUsage(month, year)
	if err != nil {
		return reportError(c, err, "orcamento")
	}

	items := make([]*OrcamentoUsoItem, len(report.Budgets))
	for i, usage := range report.Budgets {
		items[i] = &OrcamentoUsoItem{
			OrcamentoID:     usage.BudgetID,
			CategoriaID:     usage.CategoryID,
			CategoriaNome:   usage.CategoryName,
			Cor:             usage.Color,
			Icone:           usage.Icon,
			ValorLimite:     toFloat(usage.Limit),
			GastoTotal:      toFloat(usage.Spent),
			Restante:        toFloat(usage.Remaining),
			PercentualUsado: toFloat(usage.PercentUsed),
		}
	}

	return OK(c, &RelatorioOrcamentoResponse{
		Mes:         report.Month,
		Ano:         report.Year,
		TotalLimite: toFloat(report.TotalLimit),
		TotalGasto:  toFloat(report.TotalSpent),
		Orcamentos:  items,
	})
}
