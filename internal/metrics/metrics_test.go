package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.PedidoCreado()
	m.ItemsAgregados(3)
	m.Transicion("completado")
	m.Transicion("completado")
	m.Transicion("cancelado")
	m.StockInsuficiente()
	m.VentaMaterializada()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.pedidosCreados))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.itemsAgregados))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.transiciones.WithLabelValues("completado")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transiciones.WithLabelValues("cancelado")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stockInsuficiente))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ventasMaterializadas))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.PedidoCreado()
		m.ItemsAgregados(2)
		m.Transicion("completado")
		m.StockInsuficiente()
		m.VentaMaterializada()
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.PedidoCreado()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "comanda_pedidos_creados_total 1")
}
