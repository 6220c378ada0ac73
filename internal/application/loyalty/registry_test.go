package loyalty

import (
	"context"
	"testing"

	"github.com/jhoicas/nibso-dashboard/internal/domain"
	"github.com/jhoicas/nibso-dashboard/internal/infrastructure/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddYFind(t *testing.T) {
	ctx := context.Background()
	r, err := NewRegistry(ctx, kvstore.NewMemory())
	require.NoError(t, err)

	ada, err := r.Add(ctx, "Adaeze Okafor", "08031234567")
	require.NoError(t, err)
	assert.Equal(t, int64(0), ada.Points)
	_, err = r.Add(ctx, "Tunde Bakare", "08039876543")
	require.NoError(t, err)

	found := r.Find("okaf")
	require.Len(t, found, 1)
	assert.Equal(t, ada.ID, found[0].ID)

	found = r.Find("08039876543")
	require.Len(t, found, 1)
	assert.Equal(t, "Tunde Bakare", found[0].Name)

	assert.Empty(t, r.Find("0803"), "el teléfono debe coincidir exacto")
	assert.Empty(t, r.Find("  "))

	_, err = r.Add(ctx, "Otro", "08031234567")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = r.Add(ctx, "", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistry_Accrue(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	r, err := NewRegistry(ctx, store)
	require.NoError(t, err)
	m, err := r.Add(ctx, "Ada", "1")
	require.NoError(t, err)

	got, err := r.Accrue(ctx, m.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Points)

	got, err = r.Accrue(ctx, m.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Points, "nunca decrece")

	_, err = r.Accrue(ctx, "ghost", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	reloaded, err := NewRegistry(ctx, store)
	require.NoError(t, err)
	persisted, ok := reloaded.GetByID(m.ID)
	require.True(t, ok)
	assert.Equal(t, int64(2), persisted.Points)
}

func TestRegistry_RecargaDesdeElStore(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	r, err := NewRegistry(ctx, store)
	require.NoError(t, err)
	ada, err := r.Add(ctx, "Adaeze Okafor", "08031234567")
	require.NoError(t, err)
	_, err = r.Add(ctx, "Tunde Bakare", "08039876543")
	require.NoError(t, err)

	reloaded, err := NewRegistry(ctx, store)
	require.NoError(t, err)
	assert.Len(t, reloaded.List(), 2)
	found := reloaded.Find("okafor")
	require.Len(t, found, 1)
	assert.Equal(t, ada.ID, found[0].ID)
	assert.True(t, ada.CreatedAt.Equal(found[0].CreatedAt))

	_, err = reloaded.Add(ctx, "Otra Ada", "08031234567")
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el índice de teléfonos también se recarga")
}
