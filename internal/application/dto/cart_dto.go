package dto

import (
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AddItemRequest body para POST /api/pos/cart/items.
type AddItemRequest struct {
	ItemID string `json:"item_id"`
}

// SetQuantityRequest body para PUT /api/pos/cart/items/:id.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// DeliveryRequest body para PUT /api/pos/cart/delivery. Fee nil = aún no capturado.
type DeliveryRequest struct {
	CustomerName string           `json:"customer_name"`
	Address      string           `json:"address"`
	Fee          *decimal.Decimal `json:"fee"`
}

// ToEntity convierte la petición.
func (r DeliveryRequest) ToEntity() *entity.DeliveryDetails {
	return &entity.DeliveryDetails{CustomerName: r.CustomerName, Address: r.Address, Fee: r.Fee}
}

// AttachMemberRequest body para PUT /api/pos/cart/member.
type AttachMemberRequest struct {
	MemberID string `json:"member_id"`
}

// CartLineDTO línea del carrito con precios resueltos (redondeados a 2 decimales).
type CartLineDTO struct {
	ItemID         string          `json:"item_id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	LineDiscount   decimal.Decimal `json:"line_discount"`
	LineTotal      decimal.Decimal `json:"line_total"`
	PromotionID    string          `json:"promotion_id,omitempty"`
	Promotion      string          `json:"promotion,omitempty"`
}

// TotalsDTO totales del carrito.
type TotalsDTO struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
	Total         decimal.Decimal `json:"total"`
}

// DeliveryDTO datos de domicilio.
type DeliveryDTO struct {
	CustomerName string           `json:"customer_name"`
	Address      string           `json:"address"`
	Fee          *decimal.Decimal `json:"fee,omitempty"`
	Complete     bool             `json:"complete"`
}

// CartResponse respuesta de GET /api/pos/cart.
type CartResponse struct {
	Lines      []CartLineDTO   `json:"lines"`
	Totals     TotalsDTO       `json:"totals"`
	Delivery   *DeliveryDTO    `json:"delivery,omitempty"`
	Member     *MemberResponse `json:"member,omitempty"`
	Finalizing bool            `json:"finalizing"`
}

// CartFromTotals arma la respuesta a partir de los totales del motor.
func CartFromTotals(t entity.Totals, delivery *entity.DeliveryDetails, member *entity.LoyaltyMember, finalizing bool) CartResponse {
	r := t.Rounded()
	out := CartResponse{
		Lines: make([]CartLineDTO, 0, len(r.Lines)),
		Totals: TotalsDTO{
			Subtotal:      r.Subtotal,
			TotalDiscount: r.TotalDiscount,
			TaxRate:       r.TaxRate,
			TaxAmount:     r.TaxAmount,
			DeliveryFee:   r.DeliveryFee,
			Total:         r.Total,
		},
		Finalizing: finalizing,
	}
	for _, l := range r.Lines {
		line := CartLineDTO{
			ItemID:         l.Item.ID,
			Name:           l.Item.Name,
			Category:       l.Item.Category,
			Quantity:       l.Quantity,
			UnitPrice:      l.Item.Price,
			EffectivePrice: l.EffectivePrice,
			LineDiscount:   l.LineDiscount,
			LineTotal:      l.LineTotal,
		}
		if l.Promotion != nil {
			line.PromotionID = l.Promotion.ID
			line.Promotion = l.Promotion.Description
		}
		out.Lines = append(out.Lines, line)
	}
	if delivery != nil {
		out.Delivery = &DeliveryDTO{
			CustomerName: delivery.CustomerName,
			Address:      delivery.Address,
			Fee:          delivery.Fee,
			Complete:     delivery.Complete(),
		}
	}
	if member != nil {
		m := MemberFromEntity(*member)
		out.Member = &m
	}
	return out
}

// SaleLineDTO línea de una venta cerrada.
type SaleLineDTO struct {
	ItemID         string          `json:"item_id"`
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	LineDiscount   decimal.Decimal `json:"line_discount"`
	PromotionID    string          `json:"promotion_id,omitempty"`
}

// SaleDTO venta cerrada (diario de ventas).
type SaleDTO struct {
	TransactionID string        `json:"transaction_id"`
	Date          string        `json:"date"`
	Lines         []SaleLineDTO `json:"lines"`
	TotalsDTO
	MemberID     string       `json:"member_id,omitempty"`
	PointsEarned int64        `json:"points_earned"`
	Delivery     *DeliveryDTO `json:"delivery,omitempty"`
	CashierID    string       `json:"cashier_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// SaleFromEntity mapea el evento de venta, con importes a 2 decimales.
func SaleFromEntity(s entity.SaleFinalized) SaleDTO {
	out := SaleDTO{
		TransactionID: s.TransactionID,
		Date:          s.Date,
		Lines:         make([]SaleLineDTO, 0, len(s.Lines)),
		TotalsDTO: TotalsDTO{
			Subtotal:      s.Subtotal.Round(2),
			TotalDiscount: s.TotalDiscount.Round(2),
			TaxRate:       s.TaxRate,
			TaxAmount:     s.TaxAmount.Round(2),
			DeliveryFee:   s.DeliveryFee.Round(2),
			Total:         s.Total.Round(2),
		},
		MemberID:     s.MemberID,
		PointsEarned: s.PointsEarned,
		CashierID:    s.CashierID,
		CreatedAt:    s.CreatedAt,
	}
	for _, l := range s.Lines {
		out.Lines = append(out.Lines, SaleLineDTO{
			ItemID:         l.ItemID,
			Name:           l.Name,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			EffectivePrice: l.EffectivePrice.Round(2),
			LineDiscount:   l.LineDiscount.Round(2),
			PromotionID:    l.PromotionID,
		})
	}
	if s.Delivery != nil {
		out.Delivery = &DeliveryDTO{
			CustomerName: s.Delivery.CustomerName,
			Address:      s.Delivery.Address,
			Fee:          s.Delivery.Fee,
			Complete:     true,
		}
	}
	return out
}

// FinalizeResponse respuesta de POST /api/pos/cart/finalize.
// Receipt siempre trae texto para mostrar: el recibo o la causa del fallo.
type FinalizeResponse struct {
	Sale         SaleDTO         `json:"sale"`
	Member       *MemberResponse `json:"member,omitempty"`
	Receipt      string          `json:"receipt"`
	ReceiptOK    bool            `json:"receipt_ok"`
	PartialError string          `json:"partial_error,omitempty"`
}

// ShipmentDTO envío registrado.
type ShipmentDTO struct {
	ID                  string    `json:"id"`
	CustomerName        string    `json:"customer_name"`
	Destination         string    `json:"destination"`
	EstimatedDelivery   string    `json:"estimated_delivery"`
	SourceTransactionID string    `json:"source_transaction_id"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}
