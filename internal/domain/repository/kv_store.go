package repository

import "context"

// KeyValueStore define el puerto de persistencia clave/valor donde cada ledger guarda su estado JSON.
// Load devuelve found=false cuando la clave no existe (no es error).
// No hay transaccionalidad entre claves: cada ledger persiste por separado.
type KeyValueStore interface {
	Load(ctx context.Context, key string) (value []byte, found bool, err error)
	Save(ctx context.Context, key string, value []byte) error
}
