// Package metrics expone métricas de ventas y HTTP en formato Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jhoicas/nibso-dashboard/internal/application/ports"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ ports.SaleObserver = (*Prometheus)(nil)

// Prometheus colectores con registro propio (sin el registro global).
type Prometheus struct {
	registry *prometheus.Registry

	salesTotal     prometheus.Counter
	revenueTotal   prometheus.Counter
	itemsSold      prometheus.Counter
	pointsAwarded  prometheus.Counter
	receiptResults *prometheus.CounterVec
	receiptLatency prometheus.Histogram
	stepFailures   *prometheus.CounterVec
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// New crea y registra los colectores bajo el namespace dado.
func New(namespace string) *Prometheus {
	p := &Prometheus{registry: prometheus.NewRegistry()}

	p.salesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "sales_finalized_total",
		Help: "Ventas cerradas.",
	})
	p.revenueTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "sales_revenue_total",
		Help: "Ingresos acumulados (total con impuesto y domicilio).",
	})
	p.itemsSold = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "items_sold_total",
		Help: "Unidades vendidas.",
	})
	p.pointsAwarded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "loyalty_points_awarded_total",
		Help: "Puntos de fidelización otorgados.",
	})
	p.receiptResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "receipts_total",
		Help: "Recibos generados por resultado.",
	}, []string{"result"})
	p.receiptLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "receipt_duration_seconds",
		Help:    "Duración de la generación del texto del recibo.",
		Buckets: prometheus.DefBuckets,
	})
	p.stepFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "finalize_step_failures_total",
		Help: "Pasos del cierre de venta que fallaron.",
	}, []string{"step"})
	p.requestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "http_requests_total",
		Help: "Peticiones HTTP por método, ruta y estado.",
	}, []string{"method", "route", "status"})
	p.requestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "http_request_duration_seconds",
		Help:    "Latencia de las peticiones HTTP.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	p.registry.MustRegister(
		p.salesTotal, p.revenueTotal, p.itemsSold, p.pointsAwarded,
		p.receiptResults, p.receiptLatency, p.stepFailures,
		p.requestCounter, p.requestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

// Registry registro usado (tests).
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// Handler handler HTTP de /metrics.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// SaleFinalized suma la venta a los contadores.
func (p *Prometheus) SaleFinalized(ev entity.SaleFinalized) {
	p.salesTotal.Inc()
	p.revenueTotal.Add(ev.Total.InexactFloat64())
	units := 0
	for _, l := range ev.Lines {
		units += l.Quantity
	}
	p.itemsSold.Add(float64(units))
	if ev.PointsEarned > 0 {
		p.pointsAwarded.Add(float64(ev.PointsEarned))
	}
}

// ReceiptGenerated registra el resultado y la duración del recibo.
func (p *Prometheus) ReceiptGenerated(ok bool, elapsed time.Duration) {
	result := "error"
	if ok {
		result = "ok"
	}
	p.receiptResults.WithLabelValues(result).Inc()
	p.receiptLatency.Observe(elapsed.Seconds())
}

// StepFailed cuenta un paso fallido del cierre.
func (p *Prometheus) StepFailed(step string) {
	p.stepFailures.WithLabelValues(step).Inc()
}

// ObserveRequest registra una petición HTTP.
func (p *Prometheus) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	p.requestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.requestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
