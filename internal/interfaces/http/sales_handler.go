package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/nibso-dashboard/internal/application/analytics"
	"github.com/jhoicas/nibso-dashboard/internal/application/dto"
	"github.com/jhoicas/nibso-dashboard/internal/application/ports"
	"github.com/jhoicas/nibso-dashboard/internal/application/pos"
	"github.com/jhoicas/nibso-dashboard/internal/application/sales"
	"github.com/jhoicas/nibso-dashboard/internal/application/usecase"
)

// SalesHandler reportes de ventas y recibos.
type SalesHandler struct {
	ledger    *sales.Ledger
	journal   *sales.Journal
	dashboard *analytics.DashboardUseCase
	ai        *usecase.AIUseCase
	pdf       ports.ReceiptPDFGenerator
	receipts  pos.Receipts
	now       func() time.Time
}

// SalesHandlerDeps dependencias del handler. ai, pdf y receipts pueden ser nil.
type SalesHandlerDeps struct {
	Ledger    *sales.Ledger
	Journal   *sales.Journal
	Dashboard *analytics.DashboardUseCase
	AI        *usecase.AIUseCase
	PDF       ports.ReceiptPDFGenerator
	Receipts  pos.Receipts
}

// NewSalesHandler construye el handler.
func NewSalesHandler(d SalesHandlerDeps) *SalesHandler {
	return &SalesHandler{
		ledger: d.Ledger, journal: d.Journal, dashboard: d.Dashboard,
		ai: d.AI, pdf: d.PDF, receipts: d.Receipts, now: time.Now,
	}
}

// Daily godoc
// @Summary      Registros diarios de ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DailySaleDTO
// @Router       /api/sales/daily [get]
func (h *SalesHandler) Daily(c *fiber.Ctx) error {
	recs := h.ledger.Records()
	out := make([]dto.DailySaleDTO, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.DailySaleDTO{Date: r.Date, Revenue: r.Revenue.Round(2), Transactions: r.Transactions})
	}
	return c.JSON(out)
}

// Chart godoc
// @Summary      Gráfica de ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "daily (7 días) | weekly (4 semanas)"
// @Success      200  {array}  dto.ChartPointDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/chart [get]
func (h *SalesHandler) Chart(c *fiber.Ctx) error {
	period, err := sales.ParsePeriod(c.Query("period"))
	if err != nil {
		return writeError(c, err)
	}
	buckets := h.ledger.Chart(period, h.now())
	out := make([]dto.ChartPointDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.ChartPointDTO{
			Label: b.Label, From: b.From, To: b.To,
			Revenue: b.Revenue.Round(2), Transactions: b.Transactions,
		})
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen del tablero
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/sales/summary [get]
func (h *SalesHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.dashboard.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// Transactions godoc
// @Summary      Ventas recientes (más reciente primero)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo (por defecto 20, tope 100)"
// @Success      200  {array}  dto.SaleDTO
// @Router       /api/sales/transactions [get]
func (h *SalesHandler) Transactions(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20)}
	page.DefaultPage()
	events := h.journal.Recent(page.Limit)
	out := make([]dto.SaleDTO, 0, len(events))
	for _, e := range events {
		out = append(out, dto.SaleFromEntity(e))
	}
	return c.JSON(out)
}

// Transaction godoc
// @Summary      Venta por ID de transacción
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "TRX-..."
// @Success      200  {object}  dto.SaleDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/transactions/{id} [get]
func (h *SalesHandler) Transaction(c *fiber.Ctx) error {
	sale, ok := h.journal.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	return c.JSON(dto.SaleFromEntity(sale))
}

// ReceiptPDF godoc
// @Summary      Recibo PDF de una venta
// @Description  ai=true pide el texto del recibo al LLM; si falla el PDF sale sin ese texto.
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path   string  true   "TRX-..."
// @Param        ai   query  bool    false  "incluir texto generado por IA"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/transactions/{id}/receipt.pdf [get]
func (h *SalesHandler) ReceiptPDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PDF_UNAVAILABLE", Message: "generador de PDF no configurado"})
	}
	sale, ok := h.journal.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	text := ""
	if c.QueryBool("ai") && h.receipts != nil {
		if res := h.receipts.Generate(c.Context(), sale); res.OK() {
			text = res.Text
		}
	}
	doc, err := h.pdf.GenerateReceiptPDF(c.Context(), sale, text)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+sale.TransactionID+`.pdf"`)
	return c.Send(doc)
}

// Insights godoc
// @Summary      Análisis de ventas con IA
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "ventana en días (1-90, por defecto 7)"
// @Success      200  {object}  dto.SalesInsightDTO
// @Failure      408  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/sales/insights [get]
func (h *SalesHandler) Insights(c *fiber.Ctx) error {
	if h.ai == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "AI_UNAVAILABLE", Message: "el servicio de IA no está configurado"})
	}
	out, err := h.ai.SalesInsight(c.Context(), c.QueryInt("days", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
