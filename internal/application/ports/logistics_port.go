package ports

import (
	"context"

	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
)

// ShipmentRequest datos que el punto de venta entrega a logística.
type ShipmentRequest struct {
	CustomerName        string
	Destination         string
	EstimatedDelivery   string // YYYY-MM-DD
	SourceTransactionID string
}

// ShipmentCreator puerto hacia logística. El punto de venta no consume el envío creado.
type ShipmentCreator interface {
	CreateShipment(ctx context.Context, req ShipmentRequest) error
}

// ShipmentLister consulta de envíos registrados (solo el backend store la implementa).
type ShipmentLister interface {
	ListShipments(ctx context.Context) ([]entity.Shipment, error)
}
