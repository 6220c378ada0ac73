package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos y alcances de promoción.
const (
	PromotionTypePercentage = "percentage"

	PromotionTargetItem     = "item"
	PromotionTargetCategory = "category"
)

// DateLayout formato de fecha de calendario usado en promociones y ventas diarias.
const DateLayout = "2006-01-02"

// Promotion es un descuento porcentual con vigencia por fechas, sobre un artículo o una categoría.
type Promotion struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Value       decimal.Decimal `json:"value"` // 0–100
	Target      string          `json:"target"`
	TargetID    string          `json:"targetId"`
	StartDate   string          `json:"startDate"` // YYYY-MM-DD
	EndDate     string          `json:"endDate"`   // YYYY-MM-DD, inclusivo hasta fin del día
}

// ActiveAt indica si now cae en [inicio de StartDate, fin de EndDate] en la zona horaria de now.
// Fechas no parseables dejan la promoción inactiva.
func (p Promotion) ActiveAt(now time.Time) bool {
	start, err := time.ParseInLocation(DateLayout, p.StartDate, now.Location())
	if err != nil {
		return false
	}
	end, err := time.ParseInLocation(DateLayout, p.EndDate, now.Location())
	if err != nil {
		return false
	}
	endOfDay := end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return !now.Before(start) && !now.After(endOfDay)
}

// Matches indica si la promoción aplica al alcance y destino dados.
func (p Promotion) Matches(target, targetID string) bool {
	return p.Target == target && p.TargetID == targetID
}
