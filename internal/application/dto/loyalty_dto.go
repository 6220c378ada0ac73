package dto

import (
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
)

// MemberRequest body para POST /api/loyalty/members.
type MemberRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// MemberResponse salida de un miembro.
type MemberResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Points    int64     `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberFromEntity mapea entidad a respuesta.
func MemberFromEntity(m entity.LoyaltyMember) MemberResponse {
	return MemberResponse{ID: m.ID, Name: m.Name, Phone: m.Phone, Points: m.Points, CreatedAt: m.CreatedAt}
}
