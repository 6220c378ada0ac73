package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/application/sales"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSales map[string]entity.DailySaleRecord

func (f fakeSales) Sum(from, to string) (decimal.Decimal, int) {
	total, n := decimal.Zero, 0
	for d, r := range f {
		if d >= from && d <= to {
			total = total.Add(r.Revenue)
			n += r.Transactions
		}
	}
	return total, n
}

type fakeTop struct{ since time.Time }

func (f *fakeTop) TopItems(since time.Time, n int) []sales.TopItem {
	f.since = since
	return []sales.TopItem{{ItemID: "milk", Name: "Milk", Quantity: 12, Revenue: decimal.RequireFromString("12960.004")}}
}

type fakeStock int

func (f fakeStock) BelowReorderLevel() []entity.InventoryItem {
	return make([]entity.InventoryItem, int(f))
}

func TestDashboard_GetSummary(t *testing.T) {
	top := &fakeTop{}
	uc := NewDashboardUseCase(Sources{
		Sales: fakeSales{
			"2024-03-28": {Revenue: decimal.NewFromInt(3000), Transactions: 2},
			"2024-03-25": {Revenue: decimal.NewFromInt(1000), Transactions: 1},
			"2024-03-10": {Revenue: decimal.NewFromInt(9999), Transactions: 9},
		},
		Top:   top,
		Stock: fakeStock(3),
	})
	uc.now = func() time.Time { return time.Date(2024, 3, 28, 18, 0, 0, 0, time.UTC) }

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(3000).Equal(got.TodaySales))
	assert.Equal(t, 2, got.TodayTransactions)
	assert.True(t, decimal.NewFromInt(4000).Equal(got.WeekSales))
	assert.Equal(t, 3, got.WeekTransactions)
	assert.Equal(t, "1333.33", got.AverageTicket.StringFixed(2))
	assert.Equal(t, 3, got.LowStockCount)
	require.Len(t, got.TopItems, 1)
	assert.Equal(t, "12960", got.TopItems[0].TotalRevenue.String())
	assert.Equal(t, time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC), top.since)
	assert.Equal(t, "Thursday, 28 March 2024", got.DateLabel)
}

func TestDashboard_SinVentas(t *testing.T) {
	uc := NewDashboardUseCase(Sources{Sales: fakeSales{}, Top: &fakeTop{}, Stock: fakeStock(0)})
	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.True(t, got.AverageTicket.IsZero())
}
