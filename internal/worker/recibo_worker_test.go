package worker

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"comanda/internal/model"
	"comanda/internal/repository"
	"comanda/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubMailer struct {
	configured bool
	fallas     int
	enviados   []string
	adjuntos   []string
}

func (m *stubMailer) Configured() bool { return m.configured }

func (m *stubMailer) SendRecibo(to, _, _, pdfPath string) error {
	if m.fallas > 0 {
		m.fallas--
		return errors.New("relay caido")
	}
	m.enviados = append(m.enviados, to)
	m.adjuntos = append(m.adjuntos, pdfPath)
	return nil
}

func seedVenta(t *testing.T, db *gorm.DB, tenantID uuid.UUID, email string) *model.Venta {
	t.Helper()
	mesa := testutil.SeedMesa(t, db, tenantID, 4)
	cliente := &model.Cliente{TenantID: tenantID, Nombre: "Ana", Email: email}
	require.NoError(t, db.Create(cliente).Error)
	pedido := &model.Pedido{
		TenantID: tenantID, MesaID: &mesa.ID, ClienteID: &cliente.ID,
		Estado: model.PedidoCompletado, MetodoEntrega: model.EntregaMesa,
		Subtotal: decimal.RequireFromString("1500"), TotalPago: decimal.RequireFromString("1500"),
	}
	require.NoError(t, db.Omit("Detalles", "Mesa", "Cliente").Create(pedido).Error)
	venta := &model.Venta{
		TenantID: tenantID, PedidoID: pedido.ID, ClienteID: &cliente.ID, Estado: model.PedidoCompletado,
		Subtotal: decimal.RequireFromString("1500"), TotalPago: decimal.RequireFromString("1500"),
		Detalles: []model.DetalleVenta{{
			TenantID: tenantID, ProductoID: uuid.New(), NombreProducto: "Pizza",
			Cantidad: 1, PrecioUnitario: decimal.RequireFromString("1500"), PrecioTotal: decimal.RequireFromString("1500"),
		}},
	}
	require.NoError(t, db.Omit("Cliente").Create(venta).Error)
	return venta
}

func newReciboWorker(t *testing.T, db *gorm.DB, mailer Mailer) (*ReciboWorker, string) {
	dir := t.TempDir()
	w := NewReciboWorker(repository.NewVentaRepository(db), repository.NewPedidoRepository(db), mailer, dir, "Bodegon")
	w.backoff = time.Millisecond
	return w, dir
}

func payloadDe(t *testing.T, tenantID, ventaID uuid.UUID) json.RawMessage {
	b, err := json.Marshal(ReciboJobPayload{TenantID: tenantID.String(), VentaID: ventaID.String()})
	require.NoError(t, err)
	return b
}

func TestReciboWorker_GeneraYEnvia(t *testing.T) {
	db := testutil.NewDB(t)
	tenant := uuid.New()
	venta := seedVenta(t, db, tenant, "ana@example.com")
	mailer := &stubMailer{configured: true, fallas: 1}
	w, dir := newReciboWorker(t, db, mailer)

	require.NoError(t, w.Process(context.Background(), payloadDe(t, tenant, venta.ID)))

	pdf := filepath.Join(dir, "recibo_"+venta.ID.String()+".pdf")
	_, err := os.Stat(pdf)
	require.NoError(t, err)
	assert.Equal(t, []string{"ana@example.com"}, mailer.enviados)
	assert.Equal(t, []string{pdf}, mailer.adjuntos)
}

func TestReciboWorker_EmailSinteticoNoSeEnvia(t *testing.T) {
	db := testutil.NewDB(t)
	tenant := uuid.New()
	venta := seedVenta(t, db, tenant, "1155554444@tenant"+tenant.String()+".local")
	mailer := &stubMailer{configured: true}
	w, _ := newReciboWorker(t, db, mailer)

	require.NoError(t, w.Process(context.Background(), payloadDe(t, tenant, venta.ID)))
	assert.Empty(t, mailer.enviados)
}

func TestReciboWorker_FallaPersistenteDevuelveError(t *testing.T) {
	db := testutil.NewDB(t)
	tenant := uuid.New()
	venta := seedVenta(t, db, tenant, "ana@example.com")
	mailer := &stubMailer{configured: true, fallas: maxAttempts}
	w, _ := newReciboWorker(t, db, mailer)

	assert.Error(t, w.Process(context.Background(), payloadDe(t, tenant, venta.ID)))
	assert.Empty(t, mailer.enviados)
}

func TestReciboWorker_PayloadInvalidoSeDescarta(t *testing.T) {
	db := testutil.NewDB(t)
	w, _ := newReciboWorker(t, db, &stubMailer{})

	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{"venta_id":"x"}`)))
	assert.NoError(t, w.Process(context.Background(), payloadDe(t, uuid.New(), uuid.New())))
}

func TestDestinatario(t *testing.T) {
	assert.Equal(t, "", destinatario(nil))
	assert.Equal(t, "", destinatario(&model.Cliente{Email: "x@tenant" + uuid.NewString() + ".local"}))
	assert.Equal(t, "a@b.com", destinatario(&model.Cliente{Email: "a@b.com"}))
}
