package entity

import "github.com/shopspring/decimal"

// InventoryItem representa un artículo vendible del catálogo.
// ID es único e inmutable una vez creado; Stock lo modifica solo el ledger de inventario.
type InventoryItem struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Price        decimal.Decimal  `json:"price"`
	Stock        decimal.Decimal  `json:"stock"`
	Category     string           `json:"category"`
	ImageURL     string           `json:"imageUrl,omitempty"`
	ReorderLevel *decimal.Decimal `json:"reorderLevel,omitempty"`
	SupplierID   string           `json:"supplierId,omitempty"`
	Department   string           `json:"department,omitempty"`
}

// Sellable indica si hay al menos una unidad entera disponible.
func (i InventoryItem) Sellable() bool {
	return i.MaxSellable() > 0
}

// MaxSellable es la cantidad entera máxima que se puede poner en un carrito.
func (i InventoryItem) MaxSellable() int {
	if !i.Stock.IsPositive() {
		return 0
	}
	return int(i.Stock.Floor().IntPart())
}

// BelowReorderLevel indica si el stock está en o por debajo del punto de reorden.
func (i InventoryItem) BelowReorderLevel() bool {
	return i.ReorderLevel != nil && i.Stock.LessThanOrEqual(*i.ReorderLevel)
}

// StockDeduction es una salida de stock por venta.
type StockDeduction struct {
	ItemID   string
	Quantity int
}
