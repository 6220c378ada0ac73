package kvstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/nibso-dashboard/internal/domain/repository"
	"github.com/jhoicas/nibso-dashboard/internal/infrastructure/postgres"
	"github.com/jhoicas/nibso-dashboard/pkg/config"
)

// Opened almacén abierto más la función para liberar sus recursos.
type Opened struct {
	Store repository.KeyValueStore
	Close func()
}

// Open construye el backend indicado en STORE_BACKEND.
func Open(ctx context.Context, cfg *config.Config) (*Opened, error) {
	switch cfg.Store.Backend {
	case "memory":
		return &Opened{Store: NewMemory(), Close: func() {}}, nil
	case "", "file":
		f, err := NewFile(cfg.Store.Dir)
		if err != nil {
			return nil, err
		}
		return &Opened{Store: f, Close: func() {}}, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		s, err := postgres.NewKVStore(ctx, pool, cfg.Store.Prefix)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Opened{Store: s, Close: pool.Close}, nil
	case "redis":
		r := NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Store.Prefix)
		if err := r.Ping(ctx); err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return &Opened{Store: r, Close: func() { _ = r.Close() }}, nil
	}
	return nil, fmt.Errorf("STORE_BACKEND desconocido: %q", cfg.Store.Backend)
}
