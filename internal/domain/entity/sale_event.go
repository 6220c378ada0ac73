package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLine línea vendida tal como quedó en el cierre.
type SaleLine struct {
	ItemID         string          `json:"itemId"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	EffectivePrice decimal.Decimal `json:"effectivePrice"`
	LineDiscount   decimal.Decimal `json:"lineDiscount"`
	PromotionID    string          `json:"promotionId,omitempty"`
}

// SaleFinalized evento append-only de una venta cerrada (diario de ventas).
type SaleFinalized struct {
	TransactionID string           `json:"transactionId"`
	Date          string           `json:"date"` // YYYY-MM-DD local
	Lines         []SaleLine       `json:"lines"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	TotalDiscount decimal.Decimal  `json:"totalDiscount"`
	TaxRate       decimal.Decimal  `json:"taxRate"`
	TaxAmount     decimal.Decimal  `json:"taxAmount"`
	DeliveryFee   decimal.Decimal  `json:"deliveryFee"`
	Total         decimal.Decimal  `json:"total"`
	MemberID      string           `json:"memberId,omitempty"`
	PointsEarned  int64            `json:"pointsEarned,omitempty"`
	Delivery      *DeliveryDetails `json:"delivery,omitempty"`
	CashierID     string           `json:"cashierId,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}
