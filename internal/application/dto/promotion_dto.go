package dto

import (
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PromotionRequest body para POST /api/promotions.
type PromotionRequest struct {
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Target      string          `json:"target"`    // item, category
	TargetID    string          `json:"target_id"` // id de artículo o nombre de categoría
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
}

// ToEntity convierte la petición; el tipo siempre es porcentaje.
func (r PromotionRequest) ToEntity() entity.Promotion {
	return entity.Promotion{
		Description: r.Description,
		Type:        entity.PromotionTypePercentage,
		Value:       r.Value,
		Target:      r.Target,
		TargetID:    r.TargetID,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

// PromotionResponse salida de una promoción.
type PromotionResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Value       decimal.Decimal `json:"value"`
	Target      string          `json:"target"`
	TargetID    string          `json:"target_id"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Active      bool            `json:"active"`
}

// PromotionFromEntity mapea entidad a respuesta.
func PromotionFromEntity(p entity.Promotion, active bool) PromotionResponse {
	return PromotionResponse{
		ID:          p.ID,
		Description: p.Description,
		Type:        p.Type,
		Value:       p.Value,
		Target:      p.Target,
		TargetID:    p.TargetID,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Active:      active,
	}
}
