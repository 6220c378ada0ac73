package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/nibso-dashboard/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

const createKVTable = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// KVStore implementación del puerto KeyValueStore sobre una tabla kv_store (jsonb).
type KVStore struct {
	pool   *pgxpool.Pool
	prefix string
}

// NewKVStore construye el adaptador y asegura que la tabla exista.
func NewKVStore(ctx context.Context, pool *pgxpool.Pool, prefix string) (*KVStore, error) {
	if _, err := pool.Exec(ctx, createKVTable); err != nil {
		return nil, fmt.Errorf("crear tabla kv_store: %w", err)
	}
	return &KVStore{pool: pool, prefix: prefix}, nil
}

func (s *KVStore) key(k string) string { return s.prefix + k }

// Load obtiene el documento JSON de la clave.
func (s *KVStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, s.key(key)).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get kv %s: %w", key, err)
	}
	return raw, true, nil
}

// Save inserta o reemplaza el documento de la clave.
func (s *KVStore) Save(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := s.pool.Exec(ctx, query, s.key(key), string(value)); err != nil {
		return fmt.Errorf("upsert kv %s: %w", key, err)
	}
	return nil
}

// RevenueBetween suma los ingresos de ventas diarias guardadas entre dos fechas (YYYY-MM-DD, inclusivas)
// directamente sobre el documento jsonb del ledger de ventas.
func (s *KVStore) RevenueBetween(ctx context.Context, salesKey, from, to string) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM((rec->>'revenue')::numeric), 0), COALESCE(SUM((rec->>'transactions')::int), 0)
		FROM kv_store, jsonb_each(value) AS d(date, rec)
		WHERE key = $1 AND d.date BETWEEN $2 AND $3`
	var revenue decimal.Decimal
	var tx int
	err := s.pool.QueryRow(ctx, query, s.key(salesKey), from, to).Scan(&revenue, &tx)
	if err != nil {
		if isUndefinedTable(err) {
			return decimal.Zero, 0, nil
		}
		return decimal.Zero, 0, fmt.Errorf("sumar ventas: %w", err)
	}
	return revenue, tx, nil
}
