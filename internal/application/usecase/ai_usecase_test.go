package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/domain"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	prompt string
	text   string
	err    error
	calls  int
}

func (f *fakeLLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("sin deadline")
	}
	return f.text, f.err
}

type connectivity bool

func (c connectivity) Online(context.Context) bool { return bool(c) }

type records []entity.DailySaleRecord

func (r records) Records() []entity.DailySaleRecord { return r }

var profile = entity.BusinessProfile{Name: "Nibso Mart", Vertical: entity.VerticalSupermarket, CurrencySymbol: "₦"}

func newAI(llm *fakeLLM, online bool) *AIUseCase {
	uc := NewAIUseCase(llm, connectivity(online), records{
		{Date: "2024-03-20", Revenue: decimal.NewFromInt(500), Transactions: 1},
		{Date: "2024-03-27", Revenue: decimal.NewFromInt(2580), Transactions: 1},
		{Date: "2024-03-28", Revenue: decimal.NewFromInt(4902), Transactions: 2},
	}, profile, time.Second)
	uc.now = func() time.Time { return time.Date(2024, 3, 28, 12, 0, 0, 0, time.UTC) }
	return uc
}

func TestSalesInsight(t *testing.T) {
	llm := &fakeLLM{text: "  Sales are growing.  "}
	got, err := newAI(llm, true).SalesInsight(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, "Sales are growing.", got.Insight)
	assert.Equal(t, 7, got.Days)
	assert.Contains(t, llm.prompt, "2024-03-28: ₦4,902.00 in 2 transactions")
	assert.Contains(t, llm.prompt, "2024-03-27")
	assert.NotContains(t, llm.prompt, "2024-03-20", "fuera de la ventana de 7 días")
}

func TestSalesInsight_Offline(t *testing.T) {
	llm := &fakeLLM{text: "x"}
	_, err := newAI(llm, false).SalesInsight(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrOffline)
	assert.Zero(t, llm.calls)
}

func TestSalesInsight_Errores(t *testing.T) {
	_, err := newAI(&fakeLLM{}, true).SalesInsight(context.Background(), 365)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	boom := errors.New("cuota agotada")
	_, err = newAI(&fakeLLM{err: boom}, true).SalesInsight(context.Background(), 3)
	assert.ErrorIs(t, err, boom)
}
