package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_SaleFinalized(t *testing.T) {
	p := New("nibso")
	p.SaleFinalized(entity.SaleFinalized{
		Total:        decimal.RequireFromString("2580"),
		Lines:        []entity.SaleLine{{Quantity: 2}, {Quantity: 3}},
		PointsEarned: 25,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(p.salesTotal))
	assert.Equal(t, 2580.0, testutil.ToFloat64(p.revenueTotal))
	assert.Equal(t, 5.0, testutil.ToFloat64(p.itemsSold))
	assert.Equal(t, 25.0, testutil.ToFloat64(p.pointsAwarded))
}

func TestPrometheus_ReceiptYPasos(t *testing.T) {
	p := New("nibso")
	p.ReceiptGenerated(true, 10*time.Millisecond)
	p.ReceiptGenerated(false, time.Second)
	p.ReceiptGenerated(false, time.Second)
	p.StepFailed("shipment")

	assert.Equal(t, 1.0, testutil.ToFloat64(p.receiptResults.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.receiptResults.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.stepFailures.WithLabelValues("shipment")))
}

func TestPrometheus_Handler(t *testing.T) {
	p := New("nibso")
	p.ObserveRequest("GET", "/api/pos/cart", 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `nibso_http_requests_total{method="GET",route="/api/pos/cart",status="200"} 1`), body)
	assert.Contains(t, body, "nibso_sales_finalized_total 0")
}
