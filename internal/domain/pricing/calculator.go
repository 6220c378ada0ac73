// Package pricing contiene el cálculo puro de totales del carrito (servicio de dominio).
package pricing

import (
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Input estado necesario para calcular los totales de un carrito.
// Promotions debe contener solo promociones activas, en el orden del catálogo.
type Input struct {
	Lines       []entity.CartLine
	Promotions  []entity.Promotion
	Profile     entity.BusinessProfile
	DeliveryFee *decimal.Decimal // nil si la venta no es a domicilio
}

// FindPromotion busca la primera promoción de artículo para la línea; si no hay, la primera de su categoría.
func FindPromotion(promotions []entity.Promotion, item entity.InventoryItem) *entity.Promotion {
	for i := range promotions {
		if promotions[i].Matches(entity.PromotionTargetItem, item.ID) {
			p := promotions[i]
			return &p
		}
	}
	for i := range promotions {
		if promotions[i].Matches(entity.PromotionTargetCategory, item.Category) {
			p := promotions[i]
			return &p
		}
	}
	return nil
}

// ComputeTotals calcula subtotal, descuento, impuesto, domicilio y total.
// Es una función pura: mismo input, mismo resultado.
//
//	PrecioEfectivo = Precio - Precio*Valor/100   (solo supermercado)
//	Subtotal       = Σ PrecioEfectivo * Cantidad
//	Impuesto       = Subtotal * Tasa/100
//	Total          = Subtotal + Impuesto + Domicilio
func ComputeTotals(in Input) entity.Totals {
	t := entity.Totals{
		Lines:         make([]entity.PricedLine, 0, len(in.Lines)),
		Subtotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		TaxRate:       in.Profile.TaxRate,
		DeliveryFee:   decimal.Zero,
	}
	for _, line := range in.Lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		pl := entity.PricedLine{
			CartLine:       line,
			EffectivePrice: line.Item.Price,
			LineDiscount:   decimal.Zero,
		}
		if in.Profile.IsSupermarket() {
			if promo := FindPromotion(in.Promotions, line.Item); promo != nil {
				unitDiscount := line.Item.Price.Mul(promo.Value).Div(hundred)
				pl.Promotion = promo
				pl.EffectivePrice = line.Item.Price.Sub(unitDiscount)
				pl.LineDiscount = unitDiscount.Mul(qty)
			}
		}
		pl.LineTotal = pl.EffectivePrice.Mul(qty)
		t.Subtotal = t.Subtotal.Add(pl.LineTotal)
		t.TotalDiscount = t.TotalDiscount.Add(pl.LineDiscount)
		t.Lines = append(t.Lines, pl)
	}
	t.TaxAmount = t.Subtotal.Mul(in.Profile.TaxRate).Div(hundred)
	if in.DeliveryFee != nil {
		t.DeliveryFee = *in.DeliveryFee
	}
	t.Total = t.Subtotal.Add(t.TaxAmount).Add(t.DeliveryFee)
	return t
}

// LoyaltyPoints 1 punto por cada 100 unidades de moneda: floor(total/100). Nunca negativo.
func LoyaltyPoints(total decimal.Decimal) int64 {
	if !total.IsPositive() {
		return 0
	}
	return total.Div(hundred).Floor().IntPart()
}
