package ports

import (
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
)

// SaleObserver recibe eventos del cierre de venta (métricas).
type SaleObserver interface {
	SaleFinalized(ev entity.SaleFinalized)
	ReceiptGenerated(ok bool, elapsed time.Duration)
	StepFailed(step string)
}
