// Package metrics colectores Prometheus de la caja y las ventas.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/application/ports"
)

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus implementa ports.Metrics con un registro propio (no el global).
type Prometheus struct {
	registry *prometheus.Registry

	SalesTotal        prometheus.Counter
	SalesAmount       prometheus.Counter
	SaleLines         prometheus.Histogram
	SalesRejected     *prometheus.CounterVec
	CashMovements     *prometheus.CounterVec
	MissingReferences *prometheus.CounterVec
	KitchenNotices    *prometheus.CounterVec
	ReqTotal          *prometheus.CounterVec
	ReqDur            *prometheus.HistogramVec
}

// New crea y registra los colectores bajo namespace.
func New(namespace string) *Prometheus {
	reg := prometheus.NewRegistry()
	m := &Prometheus{
		registry: reg,
		SalesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "sales_total",
			Help: "Ventas completadas.",
		}),
		SalesAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "sales_amount_pesos_total",
			Help: "Suma de los totales de venta en pesos.",
		}),
		SaleLines: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "sale_lines",
			Help:    "Líneas por venta.",
			Buckets: []float64{1, 2, 3, 5, 8, 13},
		}),
		SalesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "sales_rejected_total",
			Help: "Ventas rechazadas por motivo.",
		}, []string{"reason"}),
		CashMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cash_movements_total",
			Help: "Movimientos de caja registrados por tipo.",
		}, []string{"type"}),
		MissingReferences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "recipe_missing_references_total",
			Help: "Recetas con referencias a materia prima inexistente.",
		}, []string{"product_id"}),
		KitchenNotices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "kitchen_notifications_total",
			Help: "Avisos a cocina por resultado.",
		}, []string{"result"}),
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "Peticiones HTTP por ruta, método y código.",
		}, []string{"route", "method", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.SalesTotal, m.SalesAmount, m.SaleLines, m.SalesRejected, m.CashMovements,
		m.MissingReferences, m.KitchenNotices, m.ReqTotal, m.ReqDur,
	)
	return m
}

// Handler expone el registro en formato Prometheus.
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Prometheus) SaleCompleted(total decimal.Decimal, lines int) {
	m.SalesTotal.Inc()
	f, _ := total.Float64()
	m.SalesAmount.Add(f)
	m.SaleLines.Observe(float64(lines))
}

func (m *Prometheus) SaleRejected(reason string) {
	m.SalesRejected.WithLabelValues(reason).Inc()
}

func (m *Prometheus) CashMovementRecorded(movementType string) {
	m.CashMovements.WithLabelValues(movementType).Inc()
}

func (m *Prometheus) MissingReference(productID string) {
	m.MissingReferences.WithLabelValues(productID).Inc()
}

func (m *Prometheus) KitchenNotification(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.KitchenNotices.WithLabelValues(result).Inc()
}

// ObserveRequest registra una petición HTTP ya respondida.
func (m *Prometheus) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.ReqTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.ReqDur.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
