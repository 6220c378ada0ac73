package entity

import "github.com/shopspring/decimal"

// DailySaleRecord agrega ingresos y número de transacciones de un día calendario.
// Existe un único registro por fecha; nunca se borra.
type DailySaleRecord struct {
	ID           string          `json:"id"`
	Date         string          `json:"date"` // YYYY-MM-DD
	Revenue      decimal.Decimal `json:"revenue"`
	Transactions int             `json:"transactions"`
}
