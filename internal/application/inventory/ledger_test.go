package inventory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/domain"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/jhoicas/nibso-dashboard/internal/infrastructure/kvstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func newLedger(t *testing.T) (*Ledger, *kvstore.Memory) {
	t.Helper()
	store := kvstore.NewMemory()
	l, err := NewLedger(context.Background(), store)
	require.NoError(t, err)
	return l, store
}

type failingStore struct{ *kvstore.Memory }

func (failingStore) Save(context.Context, string, []byte) error { return errors.New("disco lleno") }

func TestLedger_AddYGetByID(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	milk, err := l.Add(ctx, entity.InventoryItem{ID: "Milk", Name: "Milk", Price: dec("1200"), Stock: dec("45"), Category: "Groceries"})
	require.NoError(t, err)
	assert.Equal(t, "Milk", milk.ID)

	bread, err := l.Add(ctx, entity.InventoryItem{Name: "Bread", Price: dec("800"), Stock: dec("10")})
	require.NoError(t, err)
	assert.NotEmpty(t, bread.ID)

	got, ok := l.GetByID("Milk")
	require.True(t, ok)
	assert.True(t, dec("45").Equal(got.Stock))

	_, ok = l.GetByID("nope")
	assert.False(t, ok)

	list := l.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Milk", list[0].ID)
}

func TestLedger_AddValidaciones(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	_, err := l.Add(ctx, entity.InventoryItem{Name: " ", Price: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = l.Add(ctx, entity.InventoryItem{Name: "x", Price: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = l.Add(ctx, entity.InventoryItem{ID: "a", Name: "A", Price: dec("1")})
	require.NoError(t, err)
	_, err = l.Add(ctx, entity.InventoryItem{ID: "a", Name: "A2", Price: dec("1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLedger_AddBulkTodoONada(t *testing.T) {
	l, _ := newLedger(t)
	_, err := l.AddBulk(context.Background(), []entity.InventoryItem{
		{ID: "a", Name: "A", Price: dec("1")},
		{ID: "a", Name: "A otra vez", Price: dec("1")},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, l.List())

	added, err := l.AddBulk(context.Background(), []entity.InventoryItem{
		{ID: "a", Name: "A", Price: dec("1")},
		{ID: "b", Name: "B", Price: dec("2")},
	})
	require.NoError(t, err)
	assert.Len(t, added, 2)
	assert.Len(t, l.List(), 2)
}

func TestLedger_DecrementStock(t *testing.T) {
	l, store := newLedger(t)
	ctx := context.Background()
	_, err := l.AddBulk(ctx, []entity.InventoryItem{
		{ID: "Milk", Name: "Milk", Price: dec("1200"), Stock: dec("45")},
		{ID: "Eggs", Name: "Eggs", Price: dec("100"), Stock: dec("1")},
	})
	require.NoError(t, err)

	err = l.DecrementStock(ctx, []entity.StockDeduction{
		{ItemID: "Milk", Quantity: 2},
		{ItemID: "Eggs", Quantity: 3},
		{ItemID: "ghost", Quantity: 9},
	})
	require.NoError(t, err)

	milk, _ := l.GetByID("Milk")
	eggs, _ := l.GetByID("Eggs")
	assert.True(t, dec("43").Equal(milk.Stock))
	assert.True(t, dec("-2").Equal(eggs.Stock), "sin piso en cero")

	// Persistido: un ledger nuevo sobre el mismo store ve el stock actualizado.
	reloaded, err := NewLedger(ctx, store)
	require.NoError(t, err)
	milk, _ = reloaded.GetByID("Milk")
	assert.True(t, dec("43").Equal(milk.Stock))
}

func TestLedger_DecrementAvailable(t *testing.T) {
	l, store := newLedger(t)
	ctx := context.Background()
	_, err := l.Add(ctx, entity.InventoryItem{ID: "Milk", Name: "Milk", Price: dec("1"), Stock: dec("3")})
	require.NoError(t, err)

	err = l.DecrementAvailable(ctx, []entity.StockDeduction{{ItemID: "Milk", Quantity: 2}, {ItemID: "Milk", Quantity: 2}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	milk, _ := l.GetByID("Milk")
	assert.True(t, dec("3").Equal(milk.Stock), "un rechazo no descuenta nada")

	require.NoError(t, l.DecrementAvailable(ctx, []entity.StockDeduction{{ItemID: "Milk", Quantity: 3}, {ItemID: "ghost", Quantity: 1}}))
	reloaded, err := NewLedger(ctx, store)
	require.NoError(t, err)
	milk, _ = reloaded.GetByID("Milk")
	assert.True(t, milk.Stock.IsZero())
}

func TestLedger_DecrementAvailableConcurrente(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()
	_, err := l.Add(ctx, entity.InventoryItem{ID: "Bread", Name: "Bread", Price: dec("800"), Stock: dec("2")})
	require.NoError(t, err)

	var (
		wg sync.WaitGroup
		ok atomic.Int32
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.DecrementAvailable(ctx, []entity.StockDeduction{{ItemID: "Bread", Quantity: 2}}) == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	bread, _ := l.GetByID("Bread")
	assert.True(t, bread.Stock.IsZero())
}

func TestLedger_RecargaDesdeElStore(t *testing.T) {
	l, store := newLedger(t)
	ctx := context.Background()
	_, err := l.AddBulk(ctx, []entity.InventoryItem{
		{ID: "Milk", Name: "Milk", Price: dec("1200"), Stock: dec("45"), Category: "Groceries", ReorderLevel: decPtr("10")},
		{ID: "Bread", Name: "Bread", Price: dec("800"), Stock: dec("2"), Category: "Bakery"},
	})
	require.NoError(t, err)
	_, err = l.Update(ctx, entity.InventoryItem{ID: "Bread", Name: "Bread", Price: dec("850"), Stock: dec("2"), Category: "Bakery"})
	require.NoError(t, err)

	reloaded, err := NewLedger(ctx, store)
	require.NoError(t, err)
	require.Len(t, reloaded.List(), 2)
	assert.Equal(t, "Milk", reloaded.List()[0].ID, "conserva el orden de inserción")
	bread, ok := reloaded.GetByID("Bread")
	require.True(t, ok)
	assert.True(t, dec("850").Equal(bread.Price))
	milk, _ := reloaded.GetByID("Milk")
	require.NotNil(t, milk.ReorderLevel)
	assert.True(t, dec("10").Equal(*milk.ReorderLevel))
}

func TestLedger_ErrorAlGuardar(t *testing.T) {
	l, err := NewLedger(context.Background(), failingStore{kvstore.NewMemory()})
	require.NoError(t, err)
	_, err = l.Add(context.Background(), entity.InventoryItem{ID: "a", Name: "A", Price: dec("1")})
	assert.Error(t, err)
	_, ok := l.GetByID("a")
	assert.True(t, ok, "el estado en memoria es autoritativo")
}

type fakeHistory map[string]int

func (f fakeHistory) UnitsSoldSince(time.Time) map[string]int { return f }

func TestReplenishmentUseCase(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()
	_, err := l.AddBulk(ctx, []entity.InventoryItem{
		{ID: "a", Name: "A", Price: dec("10"), Stock: dec("4"), ReorderLevel: decPtr("10")},
		{ID: "b", Name: "B", Price: dec("5"), Stock: dec("1"), ReorderLevel: decPtr("10")},
		{ID: "c", Name: "C", Price: dec("5"), Stock: dec("50"), ReorderLevel: decPtr("10")},
		{ID: "d", Name: "D", Price: dec("5"), Stock: dec("0")},
	})
	require.NoError(t, err)

	uc := NewReplenishmentUseCase(l, fakeHistory{"a": 12})
	list, err := uc.GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "a", list[0].ItemID)
	assert.Equal(t, 1, list[0].Priority)
	assert.True(t, dec("11").Equal(list[0].SuggestedOrderQty))
	assert.True(t, dec("110").Equal(list[0].EstimatedCost))
	assert.Equal(t, 12, list[0].UnitsSoldLast30d)

	assert.Equal(t, "b", list[1].ItemID)
	assert.True(t, dec("14").Equal(list[1].SuggestedOrderQty))

	noHistory, err := NewReplenishmentUseCase(l, nil).GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	assert.Len(t, noHistory, 2)
}
