package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
)

func TestGenerateReceiptPDF(t *testing.T) {
	g := NewReceiptPDFGenerator(entity.BusinessProfile{
		Name: "Nibso Mart", CurrencySymbol: "₦", TaxRate: decimal.NewFromFloat(7.5),
	})
	fee := decimal.NewFromInt(500)
	sale := entity.SaleFinalized{
		TransactionID: "TRX-20240115103000-abcd1234",
		Lines: []entity.SaleLine{{
			ItemID: "i1", Name: "Milk", Quantity: 2,
			UnitPrice: decimal.NewFromInt(1200), EffectivePrice: decimal.NewFromInt(1080),
			LineDiscount: decimal.NewFromInt(240),
		}},
		Subtotal:      decimal.NewFromInt(2160),
		TotalDiscount: decimal.NewFromInt(240),
		TaxRate:       decimal.NewFromFloat(7.5),
		TaxAmount:     decimal.NewFromInt(162),
		DeliveryFee:   fee,
		Total:         decimal.NewFromInt(2822),
		PointsEarned:  28,
		Delivery:      &entity.DeliveryDetails{CustomerName: "Ada", Address: "12 Marina", Fee: &fee},
		CreatedAt:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}

	out, err := g.GenerateReceiptPDF(context.Background(), sale, "Thank you for shopping!\nSee you soon.")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPdfSymbol(t *testing.T) {
	assert.Equal(t, "$", pdfSymbol("$"))
	assert.Equal(t, "NGN ", pdfSymbol("₦"))
}
