package pricing

import (
	"testing"
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func milkCart() []entity.CartLine {
	return []entity.CartLine{{
		Item: entity.InventoryItem{
			ID: "Milk", Name: "Milk", Price: dec("1200"), Stock: dec("45"), Category: "Groceries",
		},
		Quantity: 2,
	}}
}

func supermarket() entity.BusinessProfile {
	return entity.BusinessProfile{Vertical: entity.VerticalSupermarket, TaxRate: dec("7.5")}
}

func TestComputeTotals_SinPromocion(t *testing.T) {
	got := ComputeTotals(Input{Lines: milkCart(), Profile: supermarket()})

	assert.True(t, dec("2400").Equal(got.Subtotal))
	assert.True(t, dec("180").Equal(got.TaxAmount))
	assert.True(t, dec("2580").Equal(got.Total))
	assert.True(t, got.TotalDiscount.IsZero())
	assert.True(t, got.DeliveryFee.IsZero())
}

func TestComputeTotals_PromocionDeArticulo(t *testing.T) {
	promos := []entity.Promotion{{ID: "p1", Type: entity.PromotionTypePercentage, Value: dec("10"), Target: entity.PromotionTargetItem, TargetID: "Milk"}}

	got := ComputeTotals(Input{Lines: milkCart(), Promotions: promos, Profile: supermarket()})

	require.Len(t, got.Lines, 1)
	assert.True(t, dec("1080").Equal(got.Lines[0].EffectivePrice))
	assert.Equal(t, "p1", got.Lines[0].Promotion.ID)
	assert.True(t, dec("2160").Equal(got.Subtotal))
	assert.True(t, dec("240").Equal(got.TotalDiscount))
	assert.True(t, dec("162").Equal(got.TaxAmount))
	assert.True(t, dec("2322").Equal(got.Total))
}

func TestComputeTotals_PromocionSoloSupermercado(t *testing.T) {
	promos := []entity.Promotion{{ID: "p1", Value: dec("10"), Target: entity.PromotionTargetItem, TargetID: "Milk"}}
	for _, v := range []entity.Vertical{entity.VerticalGeneral, entity.VerticalHospital, entity.VerticalLPGStation, entity.VerticalEducation, entity.VerticalRealEstate} {
		t.Run(string(v), func(t *testing.T) {
			got := ComputeTotals(Input{Lines: milkCart(), Promotions: promos, Profile: entity.BusinessProfile{Vertical: v, TaxRate: dec("7.5")}})
			assert.True(t, dec("1200").Equal(got.Lines[0].EffectivePrice))
			assert.Nil(t, got.Lines[0].Promotion)
			assert.True(t, got.TotalDiscount.IsZero())
		})
	}
}

func TestComputeTotals_Idempotente(t *testing.T) {
	fee := dec("500")
	in := Input{
		Lines:       milkCart(),
		Promotions:  []entity.Promotion{{ID: "c", Value: dec("12.5"), Target: entity.PromotionTargetCategory, TargetID: "Groceries"}},
		Profile:     supermarket(),
		DeliveryFee: &fee,
	}
	a := ComputeTotals(in)
	b := ComputeTotals(in)
	assert.True(t, a.Total.Equal(b.Total))
	assert.True(t, a.Subtotal.Equal(b.Subtotal))
	assert.True(t, dec("500").Equal(a.DeliveryFee))
	// 1200 * 0.875 * 2 = 2100; 2100 * 1.075 + 500 = 2757.5
	assert.True(t, dec("2757.5").Equal(a.Total), "got %s", a.Total)
}

func TestFindPromotion_ArticuloAntesQueCategoria(t *testing.T) {
	item := entity.InventoryItem{ID: "Milk", Category: "Groceries"}
	promos := []entity.Promotion{
		{ID: "cat", Target: entity.PromotionTargetCategory, TargetID: "Groceries"},
		{ID: "item-new", Target: entity.PromotionTargetItem, TargetID: "Milk"},
		{ID: "item-old", Target: entity.PromotionTargetItem, TargetID: "Milk"},
	}
	got := FindPromotion(promos, item)
	require.NotNil(t, got)
	assert.Equal(t, "item-new", got.ID)

	got = FindPromotion(promos[:1], item)
	require.NotNil(t, got)
	assert.Equal(t, "cat", got.ID)

	assert.Nil(t, FindPromotion(nil, item))
}

func TestLoyaltyPoints(t *testing.T) {
	assert.Equal(t, int64(2), LoyaltyPoints(dec("250")))
	assert.Equal(t, int64(0), LoyaltyPoints(dec("99")))
	assert.Equal(t, int64(25), LoyaltyPoints(dec("2580")))
	assert.Equal(t, int64(0), LoyaltyPoints(dec("-10")))
}

func TestPromotionActiveAt(t *testing.T) {
	p := entity.Promotion{StartDate: "2024-03-01", EndDate: "2024-03-10"}
	loc := time.UTC
	assert.True(t, p.ActiveAt(time.Date(2024, 3, 1, 0, 0, 0, 0, loc)))
	assert.True(t, p.ActiveAt(time.Date(2024, 3, 10, 23, 59, 59, 0, loc)))
	assert.False(t, p.ActiveAt(time.Date(2024, 3, 11, 0, 0, 0, 0, loc)))
	assert.False(t, p.ActiveAt(time.Date(2024, 2, 29, 23, 59, 59, 0, loc)))
	assert.False(t, entity.Promotion{StartDate: "x", EndDate: "2024-03-10"}.ActiveAt(time.Date(2024, 3, 5, 0, 0, 0, 0, loc)))
}
