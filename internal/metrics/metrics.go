// Package metrics holds the prometheus counters of the order engine.
//
// Metrics owns its registry so tests can build as many instances as they
// need; every method is safe on a nil receiver.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "comanda"

type Metrics struct {
	registry *prometheus.Registry

	pedidosCreados       prometheus.Counter
	itemsAgregados       prometheus.Counter
	transiciones         *prometheus.CounterVec
	stockInsuficiente    prometheus.Counter
	ventasMaterializadas prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pedidosCreados: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pedidos_creados_total",
			Help:      "Pedidos abiertos por el motor.",
		}),
		itemsAgregados: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_agregados_total",
			Help:      "Lineas de pedido agregadas por create-or-append.",
		}),
		transiciones: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transiciones_total",
			Help:      "Transiciones de estado confirmadas, por estado destino.",
		}, []string{"estado"}),
		stockInsuficiente: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_insuficiente_total",
			Help:      "Operaciones abortadas por stock insuficiente.",
		}),
		ventasMaterializadas: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ventas_materializadas_total",
			Help:      "Ventas creadas a partir de pedidos completados.",
		}),
	}
	m.registry.MustRegister(
		m.pedidosCreados, m.itemsAgregados, m.transiciones,
		m.stockInsuficiente, m.ventasMaterializadas,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) PedidoCreado() {
	if m != nil {
		m.pedidosCreados.Inc()
	}
}

func (m *Metrics) ItemsAgregados(n int) {
	if m != nil {
		m.itemsAgregados.Add(float64(n))
	}
}

func (m *Metrics) Transicion(estado string) {
	if m != nil {
		m.transiciones.WithLabelValues(estado).Inc()
	}
}

func (m *Metrics) StockInsuficiente() {
	if m != nil {
		m.stockInsuficiente.Inc()
	}
}

func (m *Metrics) VentaMaterializada() {
	if m != nil {
		m.ventasMaterializadas.Inc()
	}
}
