package inventory

import "github.com/shopspring/decimal"

// reorderFactor multiplicador sobre el punto de reorden para el pedido sugerido.
var reorderFactor = decimal.NewFromFloat(1.5)

// SuggestedOrderQuantity implementa la cantidad sugerida de reposición (servicio de dominio).
// Sugerido = PuntoReorden * 1.5 - StockActual, nunca negativo, redondeado hacia arriba a unidades enteras.
func SuggestedOrderQuantity(stockActual, puntoReorden decimal.Decimal) decimal.Decimal {
	target := puntoReorden.Mul(reorderFactor)
	diff := target.Sub(stockActual)
	if diff.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return diff.Ceil()
}

// Deficit unidades que faltan para llegar al punto de reorden (0 si está por encima).
func Deficit(stockActual, puntoReorden decimal.Decimal) decimal.Decimal {
	d := puntoReorden.Sub(stockActual)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
