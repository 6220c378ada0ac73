// Package sales agrega los ingresos por día y guarda el diario de ventas cerradas.
package sales

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/nibso-dashboard/internal/application/persist"
	"github.com/jhoicas/nibso-dashboard/internal/domain"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/jhoicas/nibso-dashboard/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Ledger un único registro por fecha (YYYY-MM-DD); los registros nunca se borran.
type Ledger struct {
	mu      sync.RWMutex
	records map[string]entity.DailySaleRecord
	slot    *persist.Slot[map[string]entity.DailySaleRecord]
}

// NewLedger carga los registros diarios desde el store.
func NewLedger(ctx context.Context, store repository.KeyValueStore) (*Ledger, error) {
	slot := persist.NewSlot[map[string]entity.DailySaleRecord](store, persist.KeyDailySales)
	records, err := slot.Load(ctx, nil)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = make(map[string]entity.DailySaleRecord)
	}
	return &Ledger{records: records, slot: slot}, nil
}

// DateOf fecha de calendario de t en su zona horaria.
func DateOf(t time.Time) string {
	return t.Format(entity.DateLayout)
}

// RecordTransaction suma amount y count al registro de date, creándolo si es la primera venta del día.
func (l *Ledger) RecordTransaction(ctx context.Context, amount decimal.Decimal, count int, date string) (entity.DailySaleRecord, error) {
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return entity.DailySaleRecord{}, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, date)
	}
	if count < 0 {
		return entity.DailySaleRecord{}, fmt.Errorf("%w: count negativo", domain.ErrInvalidInput)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	rec, ok := l.records[date]
	if !ok {
		rec = entity.DailySaleRecord{ID: uuid.New().String(), Date: date, Revenue: decimal.Zero}
	}
	rec.Revenue = rec.Revenue.Add(amount)
	rec.Transactions += count
	l.records[date] = rec
	return rec, l.saveLocked(ctx)
}

// Get registro de una fecha. ok=false si no hubo ventas ese día.
func (l *Ledger) Get(date string) (entity.DailySaleRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.records[date]
	return rec, ok
}

// Records todos los registros ordenados por fecha ascendente.
func (l *Ledger) Records() []entity.DailySaleRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]entity.DailySaleRecord, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Sum ingresos y transacciones entre from y to (inclusivas, YYYY-MM-DD).
func (l *Ledger) Sum(from, to string) (decimal.Decimal, int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	revenue := decimal.Zero
	tx := 0
	for date, r := range l.records {
		if date >= from && date <= to {
			revenue = revenue.Add(r.Revenue)
			tx += r.Transactions
		}
	}
	return revenue, tx
}

func (l *Ledger) saveLocked(ctx context.Context) error {
	snapshot := make(map[string]entity.DailySaleRecord, len(l.records))
	for k, v := range l.records {
		snapshot[k] = v
	}
	return l.slot.Save(ctx, snapshot)
}
