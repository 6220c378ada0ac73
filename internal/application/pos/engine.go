// Package pos implementa el carrito del punto de venta y el cierre de la venta.
package pos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/nibso-dashboard/internal/application/ports"
	"github.com/jhoicas/nibso-dashboard/internal/application/receipt"
	"github.com/jhoicas/nibso-dashboard/internal/domain"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/jhoicas/nibso-dashboard/internal/domain/pricing"
	"github.com/rs/zerolog"
)

// deliveryLeadTime fecha estimada de entrega de un domicilio.
const deliveryLeadTime = 48 * time.Hour

// Deps colaboradores del carrito. Journal, Shipments, Receipts y Observer son opcionales.
type Deps struct {
	Inventory  Inventory
	Promotions Promotions
	Loyalty    Loyalty
	Sales      Sales
	Journal    Journal
	Shipments  ports.ShipmentCreator
	Receipts   Receipts
	Observer   ports.SaleObserver
	Profile    entity.BusinessProfile
	Log        zerolog.Logger
	Now        func() time.Time
}

// CartEngine venta en curso de una terminal. Es seguro para uso concurrente; mientras
// Finalize está en curso el carrito completo queda bloqueado.
type CartEngine struct {
	deps      Deps
	cashierID string

	mu         sync.Mutex
	lines      []entity.CartLine
	delivery   *entity.DeliveryDetails
	member     *entity.LoyaltyMember
	finalizing bool
}

// View foto del carrito para mostrar.
type View struct {
	Lines      []entity.CartLine
	Totals     entity.Totals
	Delivery   *entity.DeliveryDetails
	Member     *entity.LoyaltyMember
	Finalizing bool
}

// FinalizeResult venta cerrada más el resultado del recibo.
type FinalizeResult struct {
	Sale    entity.SaleFinalized
	Totals  entity.Totals
	Member  *entity.LoyaltyMember
	Receipt receipt.Result
}

// NewCartEngine crea un carrito vacío para cashierID.
func NewCartEngine(deps Deps, cashierID string) *CartEngine {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &CartEngine{deps: deps, cashierID: cashierID}
}

func (e *CartEngine) indexOf(itemID string) int {
	for i, l := range e.lines {
		if l.Item.ID == itemID {
			return i
		}
	}
	return -1
}

// AddItem suma una unidad del artículo o lo agrega con cantidad 1, sin pasar del stock actual.
// Sin stock es un no-op silencioso; un ID desconocido devuelve ErrNotFound.
func (e *CartEngine) AddItem(itemID string) error {
	item, ok := e.deps.Inventory.GetByID(itemID)
	if !ok {
		return domain.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finalizing {
		return domain.ErrCartLocked
	}
	limit := item.MaxSellable()
	if limit == 0 {
		return nil
	}
	if i := e.indexOf(itemID); i >= 0 {
		e.lines[i].Item = item
		if e.lines[i].Quantity < limit {
			e.lines[i].Quantity++
		} else {
			e.lines[i].Quantity = limit
		}
		return nil
	}
	e.lines = append(e.lines, entity.CartLine{Item: item, Quantity: 1})
	return nil
}

// SetQuantity fija la cantidad de una línea: <= 0 la elimina, por encima del stock se recorta.
// Es un no-op si el artículo no está en el carrito o no se encuentra en inventario.
func (e *CartEngine) SetQuantity(itemID string, qty int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finalizing {
		return domain.ErrCartLocked
	}
	i := e.indexOf(itemID)
	if i < 0 {
		return nil
	}
	if qty <= 0 {
		e.removeAt(i)
		return nil
	}
	item, ok := e.deps.Inventory.GetByID(itemID)
	if !ok {
		return nil
	}
	if limit := item.MaxSellable(); qty > limit {
		qty = limit
	}
	if qty <= 0 {
		e.removeAt(i)
		return nil
	}
	e.lines[i].Item = item
	e.lines[i].Quantity = qty
	return nil
}

// RemoveItem quita la línea del artículo si existe.
func (e *CartEngine) RemoveItem(itemID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finalizing {
		return domain.ErrCartLocked
	}
	if i := e.indexOf(itemID); i >= 0 {
		e.removeAt(i)
	}
	return nil
}

func (e *CartEngine) removeAt(i int) {
	e.lines = append(e.lines[:i:i], e.lines[i+1:]...)
}

// SetDelivery marca la venta como domicilio con los datos dados; nil la vuelve venta en mostrador.
// Los datos pueden estar incompletos mientras se capturan; Finalize los valida.
func (e *CartEngine) SetDelivery(d *entity.DeliveryDetails) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finalizing {
		return domain.ErrCartLocked
	}
	if d != nil && d.Fee != nil && d.Fee.IsNegative() {
		return fmt.Errorf("%w: costo de envío negativo", domain.ErrInvalidInput)
	}
	if d == nil {
		e.delivery = nil
		return nil
	}
	cp := *d
	cp.CustomerName = strings.TrimSpace(cp.CustomerName)
	cp.Address = strings.TrimSpace(cp.Address)
	e.delivery = &cp
	return nil
}

// AttachMember asocia un miembro de fidelización a la venta. Un ID desconocido devuelve
// ErrNotFound y deja el miembro actual sin cambios.
func (e *CartEngine) AttachMember(memberID string) error {
	m, ok := e.deps.Loyalty.GetByID(memberID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finalizing {
		return domain.ErrCartLocked
	}
	if !ok {
		return domain.ErrNotFound
	}
	e.member = &m
	return nil
}

// DetachMember quita el miembro asociado.
func (e *CartEngine) DetachMember() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finalizing {
		return domain.ErrCartLocked
	}
	e.member = nil
	return nil
}

// Clear vacía el carrito y el estado de la venta (domicilio, miembro).
func (e *CartEngine) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.finalizing {
		return domain.ErrCartLocked
	}
	e.resetLocked()
	return nil
}

func (e *CartEngine) resetLocked() {
	e.lines = nil
	e.delivery = nil
	e.member = nil
}

// Totals calcula los totales del carrito actual. No tiene efectos.
func (e *CartEngine) Totals() entity.Totals {
	e.mu.Lock()
	lines := e.copyLinesLocked()
	delivery := e.delivery
	e.mu.Unlock()
	return e.computeTotals(lines, delivery)
}

// View foto del carrito con sus totales.
func (e *CartEngine) View() View {
	e.mu.Lock()
	v := View{
		Lines:      e.copyLinesLocked(),
		Finalizing: e.finalizing,
	}
	if e.delivery != nil {
		d := *e.delivery
		v.Delivery = &d
	}
	if e.member != nil {
		m := *e.member
		v.Member = &m
	}
	e.mu.Unlock()
	v.Totals = e.computeTotals(v.Lines, v.Delivery)
	return v
}

func (e *CartEngine) copyLinesLocked() []entity.CartLine {
	out := make([]entity.CartLine, len(e.lines))
	copy(out, e.lines)
	return out
}

func (e *CartEngine) computeTotals(lines []entity.CartLine, delivery *entity.DeliveryDetails) entity.Totals {
	in := pricing.Input{
		Lines:      lines,
		Promotions: e.deps.Promotions.ActiveAt(e.deps.Now()),
		Profile:    e.deps.Profile,
	}
	if delivery != nil && delivery.Fee != nil {
		fee := *delivery.Fee
		in.DeliveryFee = &fee
	}
	return pricing.ComputeTotals(in)
}

// NewTransactionID TRX-<yyyymmddhhmmss>-<8 hex>.
func NewTransactionID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return "TRX-" + now.Format("20060102150405") + "-" + suffix
}

// Finalize cierra la venta: valida, registra el envío (si es domicilio), suma la venta del día,
// descuenta stock, acumula puntos, guarda la venta en el diario y pide el texto del recibo.
// Un fallo del recibo no deshace nada. Si algún ledger falla la venta sigue registrada en los
// demás y el error devuelto envuelve ErrPartialCommit junto con el resultado.
func (e *CartEngine) Finalize(ctx context.Context) (*FinalizeResult, error) {
	e.mu.Lock()
	if e.finalizing {
		e.mu.Unlock()
		return nil, domain.ErrFinalizeInProgress
	}
	if len(e.lines) == 0 {
		e.mu.Unlock()
		return nil, domain.ErrEmptyCart
	}
	if e.delivery != nil && !e.delivery.Complete() {
		e.mu.Unlock()
		return nil, domain.ErrDeliveryIncomplete
	}

	// Se cobra la foto del carrito: el total es el mismo que mostró Totals/View.
	lines := e.copyLinesLocked()
	deductions := make([]entity.StockDeduction, len(lines))
	for i, l := range lines {
		deductions[i] = entity.StockDeduction{ItemID: l.Item.ID, Quantity: l.Quantity}
	}
	// Con política reject el stock se reserva antes de cualquier otro efecto.
	stockTaken := false
	if e.deps.Profile.StockPolicy == entity.StockPolicyReject {
		if err := e.deps.Inventory.DecrementAvailable(ctx, deductions); err != nil {
			e.mu.Unlock()
			return nil, err
		}
		stockTaken = true
	}

	var delivery *entity.DeliveryDetails
	if e.delivery != nil {
		d := *e.delivery
		delivery = &d
	}
	var member *entity.LoyaltyMember
	if e.member != nil {
		m := *e.member
		member = &m
	}
	e.finalizing = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.finalizing = false
		e.mu.Unlock()
	}()

	now := e.deps.Now()
	totals := e.computeTotals(lines, delivery)
	sale := e.buildSale(now, totals, delivery, member)
	log := e.deps.Log.With().Str("transaction_id", sale.TransactionID).Logger()

	var errs []error
	fail := func(step string, err error) {
		log.Error().Err(err).Str("step", step).Msg("cierre de venta: paso fallido")
		if e.deps.Observer != nil {
			e.deps.Observer.StepFailed(step)
		}
		errs = append(errs, fmt.Errorf("%s: %w", step, err))
	}

	if delivery != nil && e.deps.Shipments != nil {
		err := e.deps.Shipments.CreateShipment(ctx, ports.ShipmentRequest{
			CustomerName:        delivery.CustomerName,
			Destination:         delivery.Address,
			EstimatedDelivery:   now.Add(deliveryLeadTime).Format(entity.DateLayout),
			SourceTransactionID: sale.TransactionID,
		})
		if err != nil {
			fail("shipment", err)
		}
	}

	if _, err := e.deps.Sales.RecordTransaction(ctx, totals.Total, 1, sale.Date); err != nil {
		fail("sales", err)
	}

	if !stockTaken {
		if err := e.deps.Inventory.DecrementStock(ctx, deductions); err != nil {
			fail("inventory", err)
		}
	}

	if member != nil && sale.PointsEarned > 0 {
		updated, err := e.deps.Loyalty.Accrue(ctx, member.ID, sale.PointsEarned)
		if err != nil {
			fail("loyalty", err)
		} else {
			member = &updated
		}
	}

	if e.deps.Journal != nil {
		if err := e.deps.Journal.Append(ctx, sale); err != nil {
			fail("journal", err)
		}
	}

	if e.deps.Observer != nil {
		e.deps.Observer.SaleFinalized(sale)
	}
	log.Info().
		Str("total", totals.Total.StringFixed(2)).
		Int("lines", len(lines)).
		Int64("points", sale.PointsEarned).
		Msg("venta cerrada")

	res := &FinalizeResult{Sale: sale, Totals: totals, Member: member}
	if e.deps.Receipts != nil {
		started := time.Now()
		res.Receipt = e.deps.Receipts.Generate(ctx, sale)
		if e.deps.Observer != nil {
			e.deps.Observer.ReceiptGenerated(res.Receipt.OK(), time.Since(started))
		}
		if !res.Receipt.OK() {
			log.Warn().Err(res.Receipt.Err).Msg("recibo no disponible, la venta ya quedó registrada")
		}
	}

	e.mu.Lock()
	e.resetLocked()
	e.mu.Unlock()

	if len(errs) > 0 {
		return res, errors.Join(append([]error{domain.ErrPartialCommit}, errs...)...)
	}
	return res, nil
}

func (e *CartEngine) buildSale(now time.Time, totals entity.Totals, delivery *entity.DeliveryDetails, member *entity.LoyaltyMember) entity.SaleFinalized {
	sale := entity.SaleFinalized{
		TransactionID: NewTransactionID(now),
		Date:          now.Format(entity.DateLayout),
		Lines:         make([]entity.SaleLine, 0, len(totals.Lines)),
		Subtotal:      totals.Subtotal,
		TotalDiscount: totals.TotalDiscount,
		TaxRate:       totals.TaxRate,
		TaxAmount:     totals.TaxAmount,
		DeliveryFee:   totals.DeliveryFee,
		Total:         totals.Total,
		Delivery:      delivery,
		CashierID:     e.cashierID,
		CreatedAt:     now,
	}
	for _, pl := range totals.Lines {
		sl := entity.SaleLine{
			ItemID:         pl.Item.ID,
			Name:           pl.Item.Name,
			Category:       pl.Item.Category,
			Quantity:       pl.Quantity,
			UnitPrice:      pl.Item.Price,
			EffectivePrice: pl.EffectivePrice,
			LineDiscount:   pl.LineDiscount,
		}
		if pl.Promotion != nil {
			sl.PromotionID = pl.Promotion.ID
		}
		sale.Lines = append(sale.Lines, sl)
	}
	if member != nil {
		sale.MemberID = member.ID
		if e.deps.Profile.IsSupermarket() {
			sale.PointsEarned = pricing.LoyaltyPoints(totals.Total)
		}
	}
	return sale
}
