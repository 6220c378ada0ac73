// Package receipt pide al LLM el texto del recibo de una venta cerrada.
// El resultado es cosmético: un fallo aquí nunca deshace la venta.
package receipt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/application/ports"
	"github.com/jhoicas/nibso-dashboard/internal/domain"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/jhoicas/nibso-dashboard/pkg/money"
	"github.com/rs/zerolog"
)

// OfflineMessage texto mostrado cuando no hay conexión.
const OfflineMessage = "You are offline. The sale was saved; connect to the internet to generate the receipt."

// Result Ok(Text) | Err(Err). Exactamente uno de los dos viene lleno.
type Result struct {
	Text string
	Err  error
}

// OK indica si hay texto de recibo.
func (r Result) OK() bool { return r.Err == nil }

// Message texto para mostrar al cajero: el recibo o la causa del fallo.
func (r Result) Message() string {
	switch {
	case r.Err == nil:
		return r.Text
	case errors.Is(r.Err, domain.ErrOffline):
		return OfflineMessage
	case errors.Is(r.Err, context.DeadlineExceeded):
		return "The receipt service took too long to respond. The sale was saved."
	default:
		return "Could not generate the receipt text. The sale was saved."
	}
}

// Service genera el texto del recibo.
type Service struct {
	gen     ports.TextGenerator
	conn    ports.Connectivity
	profile entity.BusinessProfile
	timeout time.Duration
	log     zerolog.Logger
}

// NewService construye el servicio. conn puede ser nil (se asume conectado).
func NewService(gen ports.TextGenerator, conn ports.Connectivity, profile entity.BusinessProfile, timeout time.Duration, log zerolog.Logger) *Service {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Service{gen: gen, conn: conn, profile: profile, timeout: timeout, log: log}
}

// Generate verifica conectividad y llama al LLM con timeout.
func (s *Service) Generate(ctx context.Context, sale entity.SaleFinalized) Result {
	if s.gen == nil {
		return Result{Err: errors.New("servicio de texto no configurado")}
	}
	if s.conn != nil && !s.conn.Online(ctx) {
		s.log.Warn().Str("transaction_id", sale.TransactionID).Msg("recibo: sin conexión")
		return Result{Err: domain.ErrOffline}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.gen.GenerateText(ctx, s.Prompt(sale))
	if err != nil {
		s.log.Error().Err(err).Str("transaction_id", sale.TransactionID).Msg("recibo: fallo del LLM")
		return Result{Err: fmt.Errorf("generar recibo: %w", err)}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Err: errors.New("generar recibo: respuesta vacía")}
	}
	return Result{Text: text}
}

// Prompt arma el prompt estructurado con las líneas y totales de la venta.
func (s *Service) Prompt(sale entity.SaleFinalized) string {
	sym := s.profile.CurrencySymbol
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a short, friendly, plain-text receipt for a sale at %q", s.profile.Name)
	fmt.Fprintf(&b, " (a %s business in Nigeria).\n", strings.ReplaceAll(string(s.profile.Vertical), "_", " "))
	fmt.Fprintf(&b, "Transaction ID: %s\nDate: %s\n\nItems:\n", sale.TransactionID, sale.Date)
	for _, ln := range sale.Lines {
		fmt.Fprintf(&b, "- %s x%d @ %s", ln.Name, ln.Quantity, money.Format(sym, ln.EffectivePrice))
		if ln.LineDiscount.IsPositive() {
			fmt.Fprintf(&b, " (was %s, saved %s)", money.Format(sym, ln.UnitPrice), money.Format(sym, ln.LineDiscount))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n", money.Format(sym, sale.Subtotal))
	if sale.TotalDiscount.IsPositive() {
		fmt.Fprintf(&b, "Discount: %s\n", money.Format(sym, sale.TotalDiscount))
	}
	fmt.Fprintf(&b, "Tax (%s%%): %s\n", sale.TaxRate.String(), money.Format(sym, sale.TaxAmount))
	if sale.Delivery != nil {
		fmt.Fprintf(&b, "Delivery to %s, %s: %s\n", sale.Delivery.CustomerName, sale.Delivery.Address, money.Format(sym, sale.DeliveryFee))
	}
	fmt.Fprintf(&b, "Total: %s\n", money.Format(sym, sale.Total))
	if sale.PointsEarned > 0 {
		fmt.Fprintf(&b, "Loyalty points earned: %d\n", sale.PointsEarned)
	}
	b.WriteString("\nKeep it under 20 lines, end with a thank-you note, and do not invent items or amounts.")
	return b.String()
}
