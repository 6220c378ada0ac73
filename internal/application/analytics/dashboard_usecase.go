// Package analytics arma el resumen del tablero de ventas a partir de los ledgers.
package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/application/dto"
	"github.com/jhoicas/nibso-dashboard/internal/application/sales"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const dashboardTopItems = 5 // número de artículos en el widget del tablero

// SalesTotals lectura de los totales diarios.
type SalesTotals interface {
	Sum(from, to string) (decimal.Decimal, int)
}

// TopSellers lectura del diario de ventas.
type TopSellers interface {
	TopItems(since time.Time, n int) []sales.TopItem
}

// StockAlerts artículos bajo su nivel de reorden.
type StockAlerts interface {
	BelowReorderLevel() []entity.InventoryItem
}

// DashboardUseCase genera el resumen de hoy y de los últimos 7 días.
type DashboardUseCase struct {
	src Sources
	now func() time.Time
}

// Sources agrupa las tres fuentes del resumen.
type Sources struct {
	Sales SalesTotals
	Top   TopSellers
	Stock StockAlerts
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(src Sources) *DashboardUseCase {
	return &DashboardUseCase{src: src, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
//  1. Sum(hoy, hoy)        → TodaySales
//  2. Sum(hoy-6, hoy)      → WeekSales + AverageTicket
//  3. TopItems(7 días, 5)  → TopItems
//  4. BelowReorderLevel    → LowStockCount
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -6)
	today := sales.DateOf(now)

	todaySales, todayTx := uc.src.Sales.Sum(today, today)
	weekSales, weekTx := uc.src.Sales.Sum(sales.DateOf(weekStart), today)

	avg := decimal.Zero
	if weekTx > 0 {
		avg = weekSales.Div(decimal.NewFromInt(int64(weekTx)))
	}

	top := uc.src.Top.TopItems(weekStart, dashboardTopItems)
	items := make([]dto.TopItemDTO, 0, len(top))
	for _, t := range top {
		items = append(items, dto.TopItemDTO{
			ItemID:       t.ItemID,
			ItemName:     t.Name,
			QuantitySold: t.Quantity,
			TotalRevenue: t.Revenue.Round(2),
		})
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:        todaySales.Round(2),
		TodayTransactions: todayTx,
		WeekSales:         weekSales.Round(2),
		WeekTransactions:  weekTx,
		AverageTicket:     avg.Round(2),
		LowStockCount:     len(uc.src.Stock.BelowReorderLevel()),
		TopItems:          items,
		DateLabel:         now.Format("Monday, 2 January 2006"),
	}, nil
}
