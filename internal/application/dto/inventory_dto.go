package dto

import (
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ItemRequest body para POST /api/inventory y PUT /api/inventory/:id.
type ItemRequest struct {
	ID           string           `json:"id,omitempty"`
	Name         string           `json:"name"`
	Price        decimal.Decimal  `json:"price"`
	Stock        decimal.Decimal  `json:"stock"`
	Category     string           `json:"category"`
	ImageURL     string           `json:"image_url,omitempty"`
	ReorderLevel *decimal.Decimal `json:"reorder_level,omitempty"`
	SupplierID   string           `json:"supplier_id,omitempty"`
	Department   string           `json:"department,omitempty"`
}

// ToEntity convierte la petición en artículo de dominio.
func (r ItemRequest) ToEntity() entity.InventoryItem {
	return entity.InventoryItem{
		ID:           r.ID,
		Name:         r.Name,
		Price:        r.Price,
		Stock:        r.Stock,
		Category:     r.Category,
		ImageURL:     r.ImageURL,
		ReorderLevel: r.ReorderLevel,
		SupplierID:   r.SupplierID,
		Department:   r.Department,
	}
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Price        decimal.Decimal  `json:"price"`
	Stock        decimal.Decimal  `json:"stock"`
	Category     string           `json:"category"`
	ImageURL     string           `json:"image_url,omitempty"`
	ReorderLevel *decimal.Decimal `json:"reorder_level,omitempty"`
	SupplierID   string           `json:"supplier_id,omitempty"`
	Department   string           `json:"department,omitempty"`
	Sellable     bool             `json:"sellable"`
}

// ItemFromEntity mapea entidad a respuesta.
func ItemFromEntity(it entity.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:           it.ID,
		Name:         it.Name,
		Price:        it.Price,
		Stock:        it.Stock,
		Category:     it.Category,
		ImageURL:     it.ImageURL,
		ReorderLevel: it.ReorderLevel,
		SupplierID:   it.SupplierID,
		Department:   it.Department,
		Sellable:     it.Sellable(),
	}
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un artículo bajo su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	ItemID            string          `json:"item_id"`
	ItemName          string          `json:"item_name"`
	Category          string          `json:"category"`
	SupplierID        string          `json:"supplier_id,omitempty"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	ReorderLevel      decimal.Decimal `json:"reorder_level"`
	IdealStock        decimal.Decimal `json:"ideal_stock"`         // ReorderLevel * 1.5
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // IdealStock - CurrentStock
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`      // SuggestedOrderQty * Price
	UnitsSoldLast30d  int             `json:"units_sold_last_30d"`
	Priority          int             `json:"priority"` // 1 = más urgente
}
