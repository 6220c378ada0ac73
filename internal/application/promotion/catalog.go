// Package promotion mantiene el catálogo de descuentos porcentuales con vigencia.
package promotion

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/nibso-dashboard/internal/application/persist"
	"github.com/jhoicas/nibso-dashboard/internal/domain"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/jhoicas/nibso-dashboard/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Catalog guarda las promociones de la más reciente a la más antigua.
// No detecta solapamientos: entre varias promociones del mismo destino gana la primera.
type Catalog struct {
	mu    sync.RWMutex
	promo []entity.Promotion
	slot  *persist.Slot[[]entity.Promotion]
}

// NewCatalog carga las promociones desde el store.
func NewCatalog(ctx context.Context, store repository.KeyValueStore) (*Catalog, error) {
	slot := persist.NewSlot[[]entity.Promotion](store, persist.KeyPromotions)
	promo, err := slot.Load(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Catalog{promo: promo, slot: slot}, nil
}

// Validate revisa tipo, alcance, valor y fechas.
func Validate(p entity.Promotion) error {
	if p.Type != entity.PromotionTypePercentage {
		return fmt.Errorf("%w: tipo de promoción %q no soportado", domain.ErrInvalidInput, p.Type)
	}
	if p.Target != entity.PromotionTargetItem && p.Target != entity.PromotionTargetCategory {
		return fmt.Errorf("%w: alcance %q inválido", domain.ErrInvalidInput, p.Target)
	}
	if p.TargetID == "" {
		return fmt.Errorf("%w: destino obligatorio", domain.ErrInvalidInput)
	}
	if p.Value.IsNegative() || p.Value.GreaterThan(hundred) {
		return fmt.Errorf("%w: el porcentaje debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	start, err := time.Parse(entity.DateLayout, p.StartDate)
	if err != nil {
		return fmt.Errorf("%w: fecha de inicio %q", domain.ErrInvalidInput, p.StartDate)
	}
	end, err := time.Parse(entity.DateLayout, p.EndDate)
	if err != nil {
		return fmt.Errorf("%w: fecha de fin %q", domain.ErrInvalidInput, p.EndDate)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: la fecha de fin es anterior al inicio", domain.ErrInvalidInput)
	}
	return nil
}

// Add valida y agrega la promoción al inicio del catálogo.
func (c *Catalog) Add(ctx context.Context, p entity.Promotion) (entity.Promotion, error) {
	if p.Type == "" {
		p.Type = entity.PromotionTypePercentage
	}
	if err := Validate(p); err != nil {
		return entity.Promotion{}, err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.promo {
		if existing.ID == p.ID {
			return entity.Promotion{}, fmt.Errorf("%w: promoción %s", domain.ErrDuplicate, p.ID)
		}
	}
	c.promo = append([]entity.Promotion{p}, c.promo...)
	return p, c.saveLocked(ctx)
}

// Remove elimina una promoción por ID.
func (c *Catalog) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.promo {
		if p.ID == id {
			c.promo = append(c.promo[:i:i], c.promo[i+1:]...)
			return c.saveLocked(ctx)
		}
	}
	return domain.ErrNotFound
}

// List copia del catálogo en su orden (más reciente primero).
func (c *Catalog) List() []entity.Promotion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entity.Promotion, len(c.promo))
	copy(out, c.promo)
	return out
}

// ActiveAt promociones vigentes en now, conservando el orden del catálogo.
func (c *Catalog) ActiveAt(now time.Time) []entity.Promotion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entity.Promotion, 0, len(c.promo))
	for _, p := range c.promo {
		if p.ActiveAt(now) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) saveLocked(ctx context.Context) error {
	snapshot := make([]entity.Promotion, len(c.promo))
	copy(snapshot, c.promo)
	return c.slot.Save(ctx, snapshot)
}
