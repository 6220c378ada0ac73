package entity

import "time"

// LoyaltyMember cliente del programa de fidelización. Points nunca decrece.
type LoyaltyMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Points    int64     `json:"points"`
	CreatedAt time.Time `json:"createdAt"`
}
