package promotion

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/domain"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/jhoicas/nibso-dashboard/internal/infrastructure/kvstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promo(id, target, targetID, start, end string) entity.Promotion {
	return entity.Promotion{
		ID: id, Type: entity.PromotionTypePercentage, Value: decimal.NewFromInt(10),
		Target: target, TargetID: targetID, StartDate: start, EndDate: end,
	}
}

func TestCatalog_AddMasRecientePrimero(t *testing.T) {
	store := kvstore.NewMemory()
	ctx := context.Background()
	c, err := NewCatalog(ctx, store)
	require.NoError(t, err)

	_, err = c.Add(ctx, promo("old", "item", "Milk", "2024-01-01", "2024-12-31"))
	require.NoError(t, err)
	_, err = c.Add(ctx, promo("new", "item", "Milk", "2024-01-01", "2024-12-31"))
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)

	reloaded, err := NewCatalog(ctx, store)
	require.NoError(t, err)
	got := reloaded.List()
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	assert.True(t, got[0].Value.Equal(decimal.NewFromInt(10)))

	_, err = c.Add(ctx, promo("new", "item", "Milk", "2024-01-01", "2024-12-31"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCatalog_ActiveAt(t *testing.T) {
	ctx := context.Background()
	c, err := NewCatalog(ctx, kvstore.NewMemory())
	require.NoError(t, err)
	_, err = c.Add(ctx, promo("march", "category", "Groceries", "2024-03-01", "2024-03-10"))
	require.NoError(t, err)
	_, err = c.Add(ctx, promo("april", "item", "Milk", "2024-04-01", "2024-04-30"))
	require.NoError(t, err)

	lastMoment := time.Date(2024, 3, 10, 23, 59, 59, 0, time.Local)
	active := c.ActiveAt(lastMoment)
	require.Len(t, active, 1)
	assert.Equal(t, "march", active[0].ID)

	assert.Empty(t, c.ActiveAt(time.Date(2024, 3, 11, 0, 0, 1, 0, time.Local)))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		p    entity.Promotion
	}{
		{"tipo", func() entity.Promotion { p := promo("x", "item", "a", "2024-01-01", "2024-01-02"); p.Type = "fixed"; return p }()},
		{"alcance", promo("x", "brand", "a", "2024-01-01", "2024-01-02")},
		{"destino vacío", promo("x", "item", "", "2024-01-01", "2024-01-02")},
		{"fecha inválida", promo("x", "item", "a", "01/01/2024", "2024-01-02")},
		{"fin antes de inicio", promo("x", "item", "a", "2024-02-01", "2024-01-02")},
		{"valor > 100", func() entity.Promotion { p := promo("x", "item", "a", "2024-01-01", "2024-01-02"); p.Value = decimal.NewFromInt(101); return p }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Validate(tt.p), domain.ErrInvalidInput)
		})
	}
	assert.NoError(t, Validate(promo("ok", "item", "a", "2024-01-01", "2024-01-01")))
}

func TestCatalog_Remove(t *testing.T) {
	ctx := context.Background()
	c, err := NewCatalog(ctx, kvstore.NewMemory())
	require.NoError(t, err)
	_, err = c.Add(ctx, promo("a", "item", "x", "2024-01-01", "2024-01-02"))
	require.NoError(t, err)

	require.NoError(t, c.Remove(ctx, "a"))
	assert.Empty(t, c.List())
	assert.ErrorIs(t, c.Remove(ctx, "a"), domain.ErrNotFound)
}

func TestCatalog_RecargaTrasRemove(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	c, err := NewCatalog(ctx, store)
	require.NoError(t, err)
	_, err = c.Add(ctx, promo("a", "item", "Milk", "2024-01-01", "2024-12-31"))
	require.NoError(t, err)
	_, err = c.Add(ctx, promo("b", "category", "Dairy", "2024-01-01", "2024-12-31"))
	require.NoError(t, err)
	require.NoError(t, c.Remove(ctx, "a"))

	reloaded, err := NewCatalog(ctx, store)
	require.NoError(t, err)
	got := reloaded.List()
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, entity.PromotionTargetCategory, got[0].Target)
	assert.Len(t, reloaded.ActiveAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)), 1)
}
