// Package persist enlaza el estado en memoria de un ledger con una clave del KeyValueStore.
package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/nibso-dashboard/internal/domain/repository"
)

// Slot serializa un valor T como JSON bajo una clave fija.
type Slot[T any] struct {
	store repository.KeyValueStore
	key   string
}

// NewSlot crea el slot para key.
func NewSlot[T any](store repository.KeyValueStore, key string) *Slot[T] {
	return &Slot[T]{store: store, key: key}
}

// Key clave usada en el store.
func (s *Slot[T]) Key() string { return s.key }

// Load lee la clave; si no existe devuelve def.
func (s *Slot[T]) Load(ctx context.Context, def T) (T, error) {
	raw, found, err := s.store.Load(ctx, s.key)
	if err != nil {
		return def, fmt.Errorf("cargar %s: %w", s.key, err)
	}
	if !found || len(raw) == 0 {
		return def, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, fmt.Errorf("decodificar %s: %w", s.key, err)
	}
	return v, nil
}

// Save escribe v completo bajo la clave.
func (s *Slot[T]) Save(ctx context.Context, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("codificar %s: %w", s.key, err)
	}
	if err := s.store.Save(ctx, s.key, raw); err != nil {
		return fmt.Errorf("guardar %s: %w", s.key, err)
	}
	return nil
}

// Claves de los ledgers.
const (
	KeyInventory  = "inventory"
	KeyPromotions = "promotions"
	KeyLoyalty    = "loyalty_members"
	KeyDailySales = "daily_sales"
	KeyJournal    = "sale_journal"
	KeyShipments  = "shipments"
	KeyUsers      = "users"
)
