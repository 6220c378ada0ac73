// Package logistics registra los envíos de ventas a domicilio en el KeyValueStore.
package logistics

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/nibso-dashboard/internal/application/persist"
	"github.com/jhoicas/nibso-dashboard/internal/application/ports"
	"github.com/jhoicas/nibso-dashboard/internal/domain"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/jhoicas/nibso-dashboard/internal/domain/repository"
)

var (
	_ ports.ShipmentCreator = (*ShipmentStore)(nil)
	_ ports.ShipmentLister  = (*ShipmentStore)(nil)
)

// ShipmentStore guarda los envíos bajo la clave "shipments", en estado pending.
type ShipmentStore struct {
	mu        sync.Mutex
	slot      *persist.Slot[[]entity.Shipment]
	shipments []entity.Shipment
	now       func() time.Time
}

// NewShipmentStore carga los envíos existentes.
func NewShipmentStore(ctx context.Context, store repository.KeyValueStore) (*ShipmentStore, error) {
	slot := persist.NewSlot[[]entity.Shipment](store, persist.KeyShipments)
	shipments, err := slot.Load(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &ShipmentStore{slot: slot, shipments: shipments, now: time.Now}, nil
}

// CreateShipment registra un envío nuevo.
func (s *ShipmentStore) CreateShipment(ctx context.Context, req ports.ShipmentRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.Destination) == "" {
		return fmt.Errorf("%w: envío sin cliente o destino", domain.ErrInvalidInput)
	}
	sh := entity.Shipment{
		ID:                  uuid.New().String(),
		CustomerName:        req.CustomerName,
		Destination:         req.Destination,
		EstimatedDelivery:   req.EstimatedDelivery,
		SourceTransactionID: req.SourceTransactionID,
		Status:              entity.ShipmentStatusPending,
		CreatedAt:           s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.shipments = append(s.shipments, sh)
	snapshot := make([]entity.Shipment, len(s.shipments))
	copy(snapshot, s.shipments)
	return s.slot.Save(ctx, snapshot)
}

// ListShipments envíos registrados, el más reciente primero.
func (s *ShipmentStore) ListShipments(_ context.Context) ([]entity.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Shipment, 0, len(s.shipments))
	for i := len(s.shipments) - 1; i >= 0; i-- {
		out = append(out, s.shipments[i])
	}
	return out, nil
}
