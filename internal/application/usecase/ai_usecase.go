package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/application/dto"
	"github.com/jhoicas/nibso-dashboard/internal/application/ports"
	"github.com/jhoicas/nibso-dashboard/internal/domain"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/jhoicas/nibso-dashboard/pkg/money"
)

const (
	defaultInsightDays = 7
	maxInsightDays     = 90
)

// DailyRecords lectura de los registros diarios de ventas.
type DailyRecords interface {
	Records() []entity.DailySaleRecord
}

// AIUseCase pide al LLM un análisis corto de las ventas recientes.
// Aplica un timeout en cada llamada para que la latencia del proveedor
// no bloquee los goroutines del servidor.
type AIUseCase struct {
	llm     ports.TextGenerator
	conn    ports.Connectivity
	sales   DailyRecords
	profile entity.BusinessProfile
	timeout time.Duration
	now     func() time.Time
}

// NewAIUseCase construye el caso de uso. conn puede ser nil.
func NewAIUseCase(llm ports.TextGenerator, conn ports.Connectivity, sales DailyRecords, profile entity.BusinessProfile, timeout time.Duration) *AIUseCase {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AIUseCase{llm: llm, conn: conn, sales: sales, profile: profile, timeout: timeout, now: time.Now}
}

// SalesInsight resume los últimos days días (por defecto 7, máximo 90).
// Devuelve ErrOffline sin llamar al proveedor cuando no hay conexión.
func (uc *AIUseCase) SalesInsight(ctx context.Context, days int) (*dto.SalesInsightDTO, error) {
	if days <= 0 {
		days = defaultInsightDays
	}
	if days > maxInsightDays {
		return nil, fmt.Errorf("%w: days debe ser ≤ %d", domain.ErrInvalidInput, maxInsightDays)
	}
	if uc.llm == nil {
		return nil, errors.New("servicio de texto no configurado")
	}
	if uc.conn != nil && !uc.conn.Online(ctx) {
		return nil, domain.ErrOffline
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	text, err := uc.llm.GenerateText(ctx, uc.insightPrompt(days))
	if err != nil {
		return nil, fmt.Errorf("análisis de ventas IA: %w", err)
	}
	return &dto.SalesInsightDTO{Insight: strings.TrimSpace(text), Days: days}, nil
}

func (uc *AIUseCase) insightPrompt(days int) string {
	now := uc.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(days - 1)).Format(entity.DateLayout)

	var b strings.Builder
	fmt.Fprintf(&b, "You are a retail analyst for %q, a %s business in Nigeria.\n",
		uc.profile.Name, strings.ReplaceAll(string(uc.profile.Vertical), "_", " "))
	fmt.Fprintf(&b, "Daily sales for the last %d days:\n", days)
	n := 0
	for _, r := range uc.sales.Records() {
		if r.Date < from {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s in %d transactions\n", r.Date, money.Format(uc.profile.CurrencySymbol, r.Revenue), r.Transactions)
		n++
	}
	if n == 0 {
		b.WriteString("- no sales recorded\n")
	}
	b.WriteString("\nIn at most 5 sentences, describe the trend and give one practical suggestion. Plain text only.")
	return b.String()
}
