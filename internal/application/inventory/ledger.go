// Package inventory mantiene el catálogo de artículos vendibles y su stock.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/nibso-dashboard/internal/application/persist"
	"github.com/jhoicas/nibso-dashboard/internal/domain"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/jhoicas/nibso-dashboard/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Ledger es el dueño exclusivo del stock de los artículos.
// Carga su clave una vez al construirse y guarda tras cada mutación.
type Ledger struct {
	mu    sync.RWMutex
	items []entity.InventoryItem
	index map[string]int
	slot  *persist.Slot[[]entity.InventoryItem]
}

// NewLedger carga el inventario desde el store.
func NewLedger(ctx context.Context, store repository.KeyValueStore) (*Ledger, error) {
	slot := persist.NewSlot[[]entity.InventoryItem](store, persist.KeyInventory)
	items, err := slot.Load(ctx, nil)
	if err != nil {
		return nil, err
	}
	l := &Ledger{slot: slot}
	l.reset(items)
	return l, nil
}

func (l *Ledger) reset(items []entity.InventoryItem) {
	l.items = make([]entity.InventoryItem, 0, len(items))
	l.index = make(map[string]int, len(items))
	for _, it := range items {
		if _, dup := l.index[it.ID]; dup || it.ID == "" {
			continue
		}
		l.index[it.ID] = len(l.items)
		l.items = append(l.items, it)
	}
}

func validateItem(it entity.InventoryItem) error {
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if it.Price.IsNegative() {
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	if it.ReorderLevel != nil && it.ReorderLevel.IsNegative() {
		return fmt.Errorf("%w: el punto de reorden no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// Add agrega un artículo; si no trae ID se genera uno.
func (l *Ledger) Add(ctx context.Context, item entity.InventoryItem) (entity.InventoryItem, error) {
	added, err := l.AddBulk(ctx, []entity.InventoryItem{item})
	if err != nil {
		return entity.InventoryItem{}, err
	}
	return added[0], nil
}

// AddBulk agrega varios artículos. Valida todos antes de aplicar: o entran todos o ninguno.
func (l *Ledger) AddBulk(ctx context.Context, items []entity.InventoryItem) ([]entity.InventoryItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[string]struct{}, len(items))
	prepared := make([]entity.InventoryItem, 0, len(items))
	for _, it := range items {
		if err := validateItem(it); err != nil {
			return nil, err
		}
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		if _, ok := l.index[it.ID]; ok {
			return nil, fmt.Errorf("%w: artículo %s", domain.ErrDuplicate, it.ID)
		}
		if _, ok := seen[it.ID]; ok {
			return nil, fmt.Errorf("%w: artículo %s repetido en el lote", domain.ErrDuplicate, it.ID)
		}
		seen[it.ID] = struct{}{}
		prepared = append(prepared, it)
	}
	for _, it := range prepared {
		l.index[it.ID] = len(l.items)
		l.items = append(l.items, it)
	}
	return prepared, l.saveLocked(ctx)
}

// Update reemplaza los datos de un artículo existente. El ID no cambia.
func (l *Ledger) Update(ctx context.Context, item entity.InventoryItem) (entity.InventoryItem, error) {
	if err := validateItem(item); err != nil {
		return entity.InventoryItem{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	i, ok := l.index[item.ID]
	if !ok {
		return entity.InventoryItem{}, domain.ErrNotFound
	}
	l.items[i] = item
	return item, l.saveLocked(ctx)
}

// GetByID busca un artículo. ok=false si no existe.
func (l *Ledger) GetByID(id string) (entity.InventoryItem, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i, ok := l.index[id]
	if !ok {
		return entity.InventoryItem{}, false
	}
	return l.items[i], true
}

// List devuelve una copia del catálogo en orden de inserción.
func (l *Ledger) List() []entity.InventoryItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]entity.InventoryItem, len(l.items))
	copy(out, l.items)
	return out
}

// Sellable artículos con al menos una unidad entera en stock.
func (l *Ledger) Sellable() []entity.InventoryItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]entity.InventoryItem, 0, len(l.items))
	for _, it := range l.items {
		if it.Sellable() {
			out = append(out, it)
		}
	}
	return out
}

// DecrementAvailable descuenta el stock solo si cada salida cabe en el stock actual.
// Verificación y descuento ocurren bajo el mismo lock: dos terminales no pueden vender
// la misma unidad. Artículos desconocidos se ignoran igual que en DecrementStock.
func (l *Ledger) DecrementAvailable(ctx context.Context, lines []entity.StockDeduction) error {
	if len(lines) == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	need := make(map[string]int, len(lines))
	for _, ln := range lines {
		need[ln.ItemID] += ln.Quantity
	}
	for id, qty := range need {
		i, ok := l.index[id]
		if !ok {
			continue
		}
		if l.items[i].Stock.LessThan(decimal.NewFromInt(int64(qty))) {
			return fmt.Errorf("%w: %s (disponible %s, pedido %d)", domain.ErrInsufficientStock, l.items[i].Name, l.items[i].Stock.String(), qty)
		}
	}
	l.applyLocked(lines)
	return l.saveLocked(ctx)
}

// DecrementStock aplica stock -= cantidad por línea. Los IDs desconocidos se saltan sin error
// y no hay piso en cero: el stock puede quedar negativo.
func (l *Ledger) DecrementStock(ctx context.Context, lines []entity.StockDeduction) error {
	if len(lines) == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.applyLocked(lines)
	return l.saveLocked(ctx)
}

func (l *Ledger) applyLocked(lines []entity.StockDeduction) {
	for _, ln := range lines {
		i, ok := l.index[ln.ItemID]
		if !ok {
			continue
		}
		l.items[i].Stock = l.items[i].Stock.Sub(decimal.NewFromInt(int64(ln.Quantity)))
	}
}

// BelowReorderLevel artículos con stock en o bajo su punto de reorden.
func (l *Ledger) BelowReorderLevel() []entity.InventoryItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []entity.InventoryItem
	for _, it := range l.items {
		if it.BelowReorderLevel() {
			out = append(out, it)
		}
	}
	return out
}

func (l *Ledger) saveLocked(ctx context.Context) error {
	snapshot := make([]entity.InventoryItem, len(l.items))
	copy(snapshot, l.items)
	return l.slot.Save(ctx, snapshot)
}
