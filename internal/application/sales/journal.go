package sales

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/application/persist"
	"github.com/jhoicas/nibso-dashboard/internal/domain"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/jhoicas/nibso-dashboard/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Journal diario append-only de ventas cerradas. Es la fuente para historial,
// reimpresión de recibos y ranking de artículos.
type Journal struct {
	mu     sync.RWMutex
	events []entity.SaleFinalized
	slot   *persist.Slot[[]entity.SaleFinalized]
}

// NewJournal carga el diario desde el store.
func NewJournal(ctx context.Context, store repository.KeyValueStore) (*Journal, error) {
	slot := persist.NewSlot[[]entity.SaleFinalized](store, persist.KeyJournal)
	events, err := slot.Load(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Journal{events: events, slot: slot}, nil
}

// Append agrega una venta. Un TransactionID repetido es ErrDuplicate.
func (j *Journal) Append(ctx context.Context, ev entity.SaleFinalized) error {
	if ev.TransactionID == "" {
		return fmt.Errorf("%w: transacción sin id", domain.ErrInvalidInput)
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, e := range j.events {
		if e.TransactionID == ev.TransactionID {
			return fmt.Errorf("%w: transacción %s", domain.ErrDuplicate, ev.TransactionID)
		}
	}
	j.events = append(j.events, ev)
	snapshot := make([]entity.SaleFinalized, len(j.events))
	copy(snapshot, j.events)
	return j.slot.Save(ctx, snapshot)
}

// Get venta por id de transacción.
func (j *Journal) Get(transactionID string) (entity.SaleFinalized, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	for _, e := range j.events {
		if e.TransactionID == transactionID {
			return e, true
		}
	}
	return entity.SaleFinalized{}, false
}

// Recent últimas limit ventas, la más reciente primero. limit <= 0 devuelve todas.
func (j *Journal) Recent(limit int) []entity.SaleFinalized {
	j.mu.RLock()
	defer j.mu.RUnlock()
	n := len(j.events)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]entity.SaleFinalized, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, j.events[i])
	}
	return out
}

// UnitsSoldSince unidades vendidas por artículo desde since.
func (j *Journal) UnitsSoldSince(since time.Time) map[string]int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make(map[string]int)
	for _, e := range j.events {
		if e.CreatedAt.Before(since) {
			continue
		}
		for _, ln := range e.Lines {
			out[ln.ItemID] += ln.Quantity
		}
	}
	return out
}

// TopItem artículo con su volumen e ingreso (precio efectivo * cantidad).
type TopItem struct {
	ItemID   string
	Name     string
	Quantity int
	Revenue  decimal.Decimal
}

// TopItems los n artículos con más ingreso desde since.
func (j *Journal) TopItems(since time.Time, n int) []TopItem {
	j.mu.RLock()
	byID := make(map[string]*TopItem)
	for _, e := range j.events {
		if e.CreatedAt.Before(since) {
			continue
		}
		for _, ln := range e.Lines {
			ti, ok := byID[ln.ItemID]
			if !ok {
				ti = &TopItem{ItemID: ln.ItemID, Name: ln.Name, Revenue: decimal.Zero}
				byID[ln.ItemID] = ti
			}
			ti.Quantity += ln.Quantity
			ti.Revenue = ti.Revenue.Add(ln.EffectivePrice.Mul(decimal.NewFromInt(int64(ln.Quantity))))
		}
	}
	j.mu.RUnlock()

	out := make([]TopItem, 0, len(byID))
	for _, ti := range byID {
		out = append(out, *ti)
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].Revenue.Equal(out[b].Revenue) {
			return out[a].Revenue.GreaterThan(out[b].Revenue)
		}
		return out[a].ItemID < out[b].ItemID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
