package pos

import (
	"context"
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/application/receipt"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Inventory lo que el carrito necesita del ledger de inventario.
type Inventory interface {
	GetByID(id string) (entity.InventoryItem, bool)
	DecrementAvailable(ctx context.Context, lines []entity.StockDeduction) error
	DecrementStock(ctx context.Context, lines []entity.StockDeduction) error
}

// Promotions catálogo de promociones vigentes, en orden de catálogo.
type Promotions interface {
	ActiveAt(now time.Time) []entity.Promotion
}

// Loyalty registro de miembros.
type Loyalty interface {
	GetByID(id string) (entity.LoyaltyMember, bool)
	Accrue(ctx context.Context, memberID string, points int64) (entity.LoyaltyMember, error)
}

// Sales ledger de ventas diarias.
type Sales interface {
	RecordTransaction(ctx context.Context, amount decimal.Decimal, count int, date string) (entity.DailySaleRecord, error)
}

// Journal diario de ventas cerradas.
type Journal interface {
	Append(ctx context.Context, ev entity.SaleFinalized) error
}

// Receipts genera el texto del recibo.
type Receipts interface {
	Generate(ctx context.Context, sale entity.SaleFinalized) receipt.Result
}
