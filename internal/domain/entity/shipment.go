package entity

import "time"

// Estados de envío.
const ShipmentStatusPending = "pending"

// Shipment registro de envío creado por una venta a domicilio.
type Shipment struct {
	ID                  string    `json:"id"`
	CustomerName        string    `json:"customerName"`
	Destination         string    `json:"destination"`
	EstimatedDelivery   string    `json:"estimatedDelivery"` // YYYY-MM-DD
	SourceTransactionID string    `json:"sourceTransactionId"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
}
