package entity

import "github.com/shopspring/decimal"

// CartLine es una foto del artículo más la cantidad pedida (Quantity > 0).
type CartLine struct {
	Item     InventoryItem
	Quantity int
}

// PricedLine es una línea con la promoción resuelta y sus importes.
type PricedLine struct {
	CartLine
	Promotion      *Promotion
	EffectivePrice decimal.Decimal
	LineDiscount   decimal.Decimal
	LineTotal      decimal.Decimal
}

// Totals resultado del cálculo del carrito. Los importes no se redondean;
// Rounded() da la versión de presentación a 2 decimales.
type Totals struct {
	Lines         []PricedLine
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TaxRate       decimal.Decimal
	TaxAmount     decimal.Decimal
	DeliveryFee   decimal.Decimal
	Total         decimal.Decimal
}

// Rounded devuelve una copia con los importes redondeados a 2 decimales.
func (t Totals) Rounded() Totals {
	out := t
	out.Lines = make([]PricedLine, len(t.Lines))
	for i, l := range t.Lines {
		l.EffectivePrice = l.EffectivePrice.Round(2)
		l.LineDiscount = l.LineDiscount.Round(2)
		l.LineTotal = l.LineTotal.Round(2)
		out.Lines[i] = l
	}
	out.Subtotal = t.Subtotal.Round(2)
	out.TotalDiscount = t.TotalDiscount.Round(2)
	out.TaxAmount = t.TaxAmount.Round(2)
	out.DeliveryFee = t.DeliveryFee.Round(2)
	out.Total = t.Total.Round(2)
	return out
}

// DeliveryDetails datos de domicilio capturados en el carrito.
// Fee nil significa que el cajero aún no ingresó el costo.
type DeliveryDetails struct {
	CustomerName string           `json:"customerName"`
	Address      string           `json:"address"`
	Fee          *decimal.Decimal `json:"fee,omitempty"`
}

// Complete indica si el domicilio tiene todos los campos requeridos para cerrar la venta.
func (d DeliveryDetails) Complete() bool {
	return d.CustomerName != "" && d.Address != "" && d.Fee != nil && !d.Fee.IsNegative()
}
