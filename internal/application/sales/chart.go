package sales

import (
	"fmt"
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/domain"
	"github.com/shopspring/decimal"
)

// Period agrupación de la gráfica de ventas.
type Period string

const (
	PeriodDaily  Period = "daily"  // últimos 7 días
	PeriodWeekly Period = "weekly" // últimas 4 ventanas de 7 días
)

// ParsePeriod vacío equivale a daily.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodDaily:
		return PeriodDaily, nil
	case PeriodWeekly:
		return PeriodWeekly, nil
	}
	return "", fmt.Errorf("%w: periodo %q", domain.ErrInvalidInput, s)
}

// Bucket un punto de la gráfica; From/To son fechas inclusivas.
type Bucket struct {
	Label        string
	From         string
	To           string
	Revenue      decimal.Decimal
	Transactions int
}

// Chart arma la gráfica terminando en el día de now. Los días sin ventas cuentan como cero.
func (l *Ledger) Chart(period Period, now time.Time) []Bucket {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var buckets []Bucket
	switch period {
	case PeriodWeekly:
		for w := 3; w >= 0; w-- {
			end := today.AddDate(0, 0, -7*w)
			start := end.AddDate(0, 0, -6)
			buckets = append(buckets, Bucket{
				Label: fmt.Sprintf("Week %d", 4-w),
				From:  DateOf(start),
				To:    DateOf(end),
			})
		}
	default:
		for d := 6; d >= 0; d-- {
			day := today.AddDate(0, 0, -d)
			buckets = append(buckets, Bucket{
				Label: day.Format("Mon"),
				From:  DateOf(day),
				To:    DateOf(day),
			})
		}
	}
	for i := range buckets {
		buckets[i].Revenue, buckets[i].Transactions = l.Sum(buckets[i].From, buckets[i].To)
	}
	return buckets
}
