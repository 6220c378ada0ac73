package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jhoicas/nibso-dashboard/internal/domain/repository"
	"github.com/jhoicas/nibso-dashboard/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s repository.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, found, err := s.Load(ctx, "inventory")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Save(ctx, "inventory", []byte(`[{"id":"a"}]`)))
	raw, found, err := s.Load(ctx, "inventory")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"id":"a"}]`, string(raw))

	require.NoError(t, s.Save(ctx, "inventory", []byte(`[]`)))
	raw, _, err = s.Load(ctx, "inventory")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemory_CopiaLosBytes(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	require.NoError(t, m.Save(context.Background(), "k", buf))
	buf[0] = 'z'
	raw, _, _ := m.Load(context.Background(), "k")
	assert.Equal(t, "abc", string(raw))
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)
	exerciseStore(t, f)

	_, err = os.Stat(filepath.Join(dir, "inventory.json"))
	assert.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no deben quedar temporales")
}

func TestFile_ClaveInvalida(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, f.Save(context.Background(), "../fuera", []byte("x")))
	_, _, err = f.Load(context.Background(), "a/b")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: "memory"}}
	o, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, o.Store)
	o.Close()

	cfg.Store = config.StoreConfig{Backend: "file", Dir: t.TempDir()}
	o, err = Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &File{}, o.Store)

	cfg.Store.Backend = "mongo"
	_, err = Open(context.Background(), cfg)
	assert.Error(t, err)
}
