package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/sales/summary.
type DashboardSummaryDTO struct {
	TodaySales        decimal.Decimal `json:"today_sales"`
	TodayTransactions int             `json:"today_transactions"`
	WeekSales         decimal.Decimal `json:"week_sales"` // últimos 7 días incluyendo hoy
	WeekTransactions  int             `json:"week_transactions"`
	AverageTicket     decimal.Decimal `json:"average_ticket"` // WeekSales / WeekTransactions
	LowStockCount     int             `json:"low_stock_count"`
	TopItems          []TopItemDTO    `json:"top_items"`
	DateLabel         string          `json:"date_label"`
}

// TopItemDTO artículo más vendido (del diario de ventas).
type TopItemDTO struct {
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name"`
	QuantitySold int             `json:"quantity_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// ChartPointDTO punto de la gráfica de ventas.
type ChartPointDTO struct {
	Label        string          `json:"label"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	Revenue      decimal.Decimal `json:"revenue"`
	Transactions int             `json:"transactions"`
}

// DailySaleDTO registro diario de ventas.
type DailySaleDTO struct {
	Date         string          `json:"date"`
	Revenue      decimal.Decimal `json:"revenue"`
	Transactions int             `json:"transactions"`
}

// SalesInsightDTO texto generado por IA a partir de las ventas recientes.
type SalesInsightDTO struct {
	Insight string `json:"insight"`
	Days    int    `json:"days"`
}
