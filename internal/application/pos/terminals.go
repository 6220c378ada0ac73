package pos

import (
	"sync"

	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
)

// Terminals un carrito por cajero; todos comparten los mismos ledgers.
type Terminals struct {
	deps  Deps
	mu    sync.Mutex
	carts map[string]*CartEngine
}

// NewTerminals crea el registro de carritos.
func NewTerminals(deps Deps) *Terminals {
	return &Terminals{deps: deps, carts: make(map[string]*CartEngine)}
}

// Cart devuelve el carrito del cajero, creándolo la primera vez.
func (t *Terminals) Cart(cashierID string) *CartEngine {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.carts[cashierID]
	if !ok {
		c = NewCartEngine(t.deps, cashierID)
		t.carts[cashierID] = c
	}
	return c
}

// Profile perfil de negocio con el que se calculan los totales.
func (t *Terminals) Profile() entity.BusinessProfile {
	return t.deps.Profile
}
