package ports

import (
	"context"

	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
)

// ReceiptPDFGenerator genera el recibo imprimible de una venta del diario.
// receiptText vacío omite el texto generado por IA.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale entity.SaleFinalized, receiptText string) ([]byte, error)
}
