// Package kvstore contiene los adaptadores del puerto KeyValueStore.
package kvstore

import (
	"context"
	"sync"

	"github.com/jhoicas/nibso-dashboard/internal/domain/repository"
)

var _ repository.KeyValueStore = (*Memory)(nil)

// Memory almacén en memoria del proceso (tests y modo demo).
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory crea un almacén vacío.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Load devuelve una copia del valor guardado.
func (m *Memory) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Save guarda una copia del valor.
func (m *Memory) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}
