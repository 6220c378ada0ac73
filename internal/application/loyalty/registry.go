// Package loyalty mantiene los miembros del programa de puntos.
package loyalty

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/nibso-dashboard/internal/application/persist"
	"github.com/jhoicas/nibso-dashboard/internal/domain"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/jhoicas/nibso-dashboard/internal/domain/repository"
)

// Registry guarda los miembros en orden de alta. Los puntos solo crecen.
type Registry struct {
	mu      sync.RWMutex
	members []entity.LoyaltyMember
	slot    *persist.Slot[[]entity.LoyaltyMember]
	now     func() time.Time
}

// NewRegistry carga los miembros desde el store.
func NewRegistry(ctx context.Context, store repository.KeyValueStore) (*Registry, error) {
	slot := persist.NewSlot[[]entity.LoyaltyMember](store, persist.KeyLoyalty)
	members, err := slot.Load(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Registry{members: members, slot: slot, now: time.Now}, nil
}

// Add registra un miembro con 0 puntos.
func (r *Registry) Add(ctx context.Context, name, phone string) (entity.LoyaltyMember, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return entity.LoyaltyMember{}, fmt.Errorf("%w: nombre y teléfono son obligatorios", domain.ErrInvalidInput)
	}
	m := entity.LoyaltyMember{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		CreatedAt: r.now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.members {
		if existing.Phone == phone {
			return entity.LoyaltyMember{}, fmt.Errorf("%w: teléfono %s", domain.ErrDuplicate, phone)
		}
	}
	r.members = append(r.members, m)
	return m, r.saveLocked(ctx)
}

// GetByID busca un miembro. ok=false si no existe.
func (r *Registry) GetByID(id string) (entity.LoyaltyMember, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.members {
		if m.ID == id {
			return m, true
		}
	}
	return entity.LoyaltyMember{}, false
}

// Find busca por subcadena del nombre (sin distinguir mayúsculas) o teléfono exacto.
// Una consulta vacía no devuelve nada.
func (r *Registry) Find(query string) []entity.LoyaltyMember {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}
	lq := strings.ToLower(q)

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.LoyaltyMember
	for _, m := range r.members {
		if m.Phone == q || strings.Contains(strings.ToLower(m.Name), lq) {
			out = append(out, m)
		}
	}
	return out
}

// List copia de todos los miembros.
func (r *Registry) List() []entity.LoyaltyMember {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.LoyaltyMember, len(r.members))
	copy(out, r.members)
	return out
}

// Accrue suma puntos al miembro. points <= 0 no cambia nada; miembro desconocido es ErrNotFound.
func (r *Registry) Accrue(ctx context.Context, memberID string, points int64) (entity.LoyaltyMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.members {
		if r.members[i].ID != memberID {
			continue
		}
		if points <= 0 {
			return r.members[i], nil
		}
		r.members[i].Points += points
		return r.members[i], r.saveLocked(ctx)
	}
	return entity.LoyaltyMember{}, domain.ErrNotFound
}

func (r *Registry) saveLocked(ctx context.Context) error {
	snapshot := make([]entity.LoyaltyMember, len(r.members))
	copy(snapshot, r.members)
	return r.slot.Save(ctx, snapshot)
}
