package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/application/dto"
	domaininv "github.com/jhoicas/nibso-dashboard/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// SalesHistory unidades vendidas por artículo desde una fecha (lo implementa el diario de ventas).
type SalesHistory interface {
	UnitsSoldSince(since time.Time) map[string]int
}

// ReplenishmentUseCase genera la lista de reposición: artículos bajo punto de reorden
// priorizados por volumen de ventas reciente y déficit.
type ReplenishmentUseCase struct {
	ledger  *Ledger
	history SalesHistory
	now     func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición. history puede ser nil.
func NewReplenishmentUseCase(ledger *Ledger, history SalesHistory) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{ledger: ledger, history: history, now: time.Now}
}

// GenerateReplenishmentList devuelve los artículos con stock en o bajo el punto de reorden
// con la cantidad sugerida de pedido (ReorderLevel*1.5 - Stock).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items := uc.ledger.BelowReorderLevel()
	if len(items) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	var sold map[string]int
	if uc.history != nil {
		sold = uc.history.UnitsSoldSince(uc.now().AddDate(0, 0, -30))
	}

	ideal := decimal.NewFromFloat(1.5)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(items))
	for _, it := range items {
		reorder := *it.ReorderLevel
		qty := domaininv.SuggestedOrderQuantity(it.Stock, reorder)
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ItemID:            it.ID,
			ItemName:          it.Name,
			Category:          it.Category,
			SupplierID:        it.SupplierID,
			CurrentStock:      it.Stock,
			ReorderLevel:      reorder,
			IdealStock:        reorder.Mul(ideal),
			SuggestedOrderQty: qty,
			EstimatedCost:     qty.Mul(it.Price),
			UnitsSoldLast30d:  sold[it.ID],
		})
	}

	// Primero mayor volumen vendido, luego mayor déficit.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.UnitsSoldLast30d != b.UnitsSoldLast30d {
			return a.UnitsSoldLast30d > b.UnitsSoldLast30d
		}
		defA := domaininv.Deficit(a.CurrentStock, a.ReorderLevel)
		defB := domaininv.Deficit(b.CurrentStock, b.ReorderLevel)
		return defA.GreaterThan(defB)
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
