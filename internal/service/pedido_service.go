package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"comanda/internal/dto"
	"comanda/internal/metrics"
	"comanda/internal/model"
	"comanda/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReciboEnqueuer queues the receipt job of a completed venta.
type ReciboEnqueuer interface {
	EnqueueRecibo(ctx context.Context, tenantID, ventaID uuid.UUID) error
}

// MenuInvalidator drops the cached public menu of a tenant.
type MenuInvalidator interface {
	Invalidar(ctx context.Context, tenantID uuid.UUID)
}

// PedidoService is the order engine. Every mutating operation runs in one
// transaction that covers the order, its items, stock, the table and the
// sales ledger; any error rolls all of it back.
//
// Row locks are always taken in the same order: mesa, pedido, productos
// (sorted by id).
type PedidoService interface {
	CrearOAgregar(ctx context.Context, tenantID uuid.UUID, usuarioID *uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
	CrearPedidoPublico(ctx context.Context, tenantID uuid.UUID, req dto.PedidoPublicoRequest) (*dto.PedidoResponse, error)
	ReemplazarItemsYTransicionar(ctx context.Context, tenantID, pedidoID uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error)
	ActualizarEstado(ctx context.Context, tenantID, pedidoID uuid.UUID, estado string) (*dto.PedidoResponse, error)
	ActualizarCliente(ctx context.Context, tenantID, pedidoID uuid.UUID, req dto.ActualizarClienteRequest) (*dto.PedidoResponse, error)

	ObtenerPedido(ctx context.Context, tenantID, id uuid.UUID) (*dto.PedidoResponse, error)
	PedidoAbiertoDeMesa(ctx context.Context, tenantID, mesaID uuid.UUID) (*dto.PedidoResponse, error)
	ObtenerRecibo(ctx context.Context, tenantID, id uuid.UUID) (*dto.ReciboResponse, error)
}

type pedidoService struct {
	repo       repository.PedidoRepository
	inventario InventarioService
	mesas      MesaService
	clientes   ClienteService
	ventas     VentaService
	metrics    *metrics.Metrics
	recibos    ReciboEnqueuer  // optional
	menu       MenuInvalidator // optional
}

func NewPedidoService(
	repo repository.PedidoRepository,
	inventario InventarioService,
	mesas MesaService,
	clientes ClienteService,
	ventas VentaService,
	m *metrics.Metrics,
	recibos ReciboEnqueuer,
	menu MenuInvalidator,
) PedidoService {
	return &pedidoService{
		repo:       repo,
		inventario: inventario,
		mesas:      mesas,
		clientes:   clientes,
		ventas:     ventas,
		metrics:    m,
		recibos:    recibos,
		menu:       menu,
	}
}

type itemSolicitado struct {
	productoID  uuid.UUID
	cantidad    int
	descripcion *string
}

func resolverItems(items []dto.ItemPedidoRequest) ([]itemSolicitado, error) {
	out := make([]itemSolicitado, 0, len(items))
	for _, it := range items {
		id, err := uuid.Parse(it.ProductoID)
		if err != nil {
			return nil, ErrProductoNoEncontrado
		}
		if it.Cantidad <= 0 {
			return nil, ErrCantidadInvalida
		}
		out = append(out, itemSolicitado{productoID: id, cantidad: it.Cantidad, descripcion: limpiar(it.Descripcion)})
	}
	return out, nil
}

// porProducto sums quantities per product.
func porProducto(items []itemSolicitado) map[uuid.UUID]int {
	m := make(map[uuid.UUID]int, len(items))
	for _, it := range items {
		m[it.productoID] += it.cantidad
	}
	return m
}

func detallesPorProducto(detalles []model.DetallePedido) map[uuid.UUID]int {
	m := make(map[uuid.UUID]int, len(detalles))
	for _, d := range detalles {
		m[d.ProductoID] += d.Cantidad
	}
	return m
}

// ordenLock returns the keys of m sorted, the order in which product rows
// are locked.
func ordenLock(m map[uuid.UUID]int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return ids
}

func estadoValido(estado string) bool {
	switch estado {
	case model.PedidoPendiente, model.PedidoCompletado, model.PedidoCancelado:
		return true
	}
	return false
}

// ── CrearOAgregar ─────────────────────────────────────────────────────────────
// Waiter and admin flows. One transaction:
//   1. Lock the mesa row (serializes find-or-create per table)
//   2. Resolve the walk-in customer, if any
//   3. Reuse the table's open pedido or create one and occupy the table
//   4. Consume stock per product (all-or-nothing) and append line items with
//      the catalog price
//   5. Recompute subtotal/total_pago from the committed items

func (s *pedidoService) CrearOAgregar(ctx context.Context, tenantID uuid.UUID, usuarioID *uuid.UUID, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantNoIdentificado
	}
	mesaID, err := uuid.Parse(req.MesaID)
	if err != nil {
		return nil, ErrMesaNoEncontrada
	}
	items, err := resolverItems(req.Items)
	if err != nil {
		return nil, err
	}
	return s.crearOAgregar(ctx, tenantID, mesaID, usuarioID, req.ClienteNombre, req.ClienteTelefono, items)
}

// CrearPedidoPublico resolves the QR table and appends to its open order.
// Caller-sent totals are ignored.
func (s *pedidoService) CrearPedidoPublico(ctx context.Context, tenantID uuid.UUID, req dto.PedidoPublicoRequest) (*dto.PedidoResponse, error) {
	publicID, err := uuid.Parse(req.TableUUID)
	if err != nil {
		return nil, ErrMesaNoEncontrada
	}
	mesa, err := s.mesas.ResolverPublica(ctx, tenantID, publicID)
	if err != nil {
		return nil, err
	}
	reqItems := make([]dto.ItemPedidoRequest, 0, len(req.Items))
	for _, it := range req.Items {
		reqItems = append(reqItems, dto.ItemPedidoRequest{ProductoID: it.ProductoID, Cantidad: it.Quantity})
	}
	items, err := resolverItems(reqItems)
	if err != nil {
		return nil, err
	}
	return s.crearOAgregar(ctx, tenantID, mesa.ID, nil, nil, nil, items)
}

func (s *pedidoService) crearOAgregar(ctx context.Context, tenantID, mesaID uuid.UUID, usuarioID *uuid.UUID, nombre, telefono *string, items []itemSolicitado) (*dto.PedidoResponse, error) {
	if len(items) == 0 {
		return nil, ErrSinItems
	}

	var (
		pedidoID    uuid.UUID
		nuevo       bool
		stockCambio bool
	)
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		mesa, err := s.mesas.BloquearTx(tx, tenantID, mesaID)
		if err != nil {
			return err
		}

		var cliente *model.Cliente
		if nombre != nil || telefono != nil {
			if cliente, err = s.clientes.ResolverTx(tx, tenantID, nombre, telefono); err != nil {
				return err
			}
		}

		campos := map[string]interface{}{}
		pedido, err := s.repo.FindPendienteByMesaTx(tx, tenantID, mesa.ID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			pedido = &model.Pedido{
				TenantID:      tenantID,
				MesaID:        &mesa.ID,
				UsuarioID:     usuarioID,
				Estado:        model.PedidoPendiente,
				Subtotal:      decimal.Zero,
				TotalPago:     decimal.Zero,
				CostoDelivery: decimal.Zero,
				MetodoEntrega: model.EntregaMesa,
			}
			if cliente != nil {
				pedido.ClienteID = &cliente.ID
			}
			if err := s.repo.CreateTx(tx, pedido); err != nil {
				return persistencia("crear pedido", err)
			}
			nuevo = true
		case err != nil:
			return persistencia("buscar pedido abierto", err)
		case pedido.ClienteID == nil && cliente != nil:
			// first customer wins; only ActualizarCliente overwrites
			campos["cliente_id"] = cliente.ID
		}
		pedidoID = pedido.ID

		if err := s.mesas.OcuparTx(tx, mesa); err != nil {
			return err
		}

		cantidades := porProducto(items)
		productos := make(map[uuid.UUID]*model.Producto, len(cantidades))
		mov := Movimiento{
			Tipo:         model.MovimientoPedido,
			Motivo:       fmt.Sprintf("Pedido %s", pedido.ID),
			ReferenciaID: pedido.ID,
		}
		for _, id := range ordenLock(cantidades) {
			prod, err := s.inventario.DescontarTx(tx, tenantID, id, cantidades[id], mov)
			if err != nil {
				return err
			}
			productos[id] = prod
			stockCambio = stockCambio || prod.ControlaStock
		}

		detalles := make([]model.DetallePedido, 0, len(items))
		for _, it := range items {
			prod := productos[it.productoID]
			detalles = append(detalles, nuevoDetalle(pedido, it, prod.Nombre, prod.PrecioVenta))
		}
		if err := s.repo.CreateDetallesTx(tx, detalles); err != nil {
			return persistencia("crear items", err)
		}

		_, err = s.recalcularTx(tx, pedido, campos)
		return err
	})
	if txErr != nil {
		s.abortado("crear_o_agregar", tenantID, txErr)
		return nil, txErr
	}

	if nuevo {
		s.metrics.PedidoCreado()
	}
	s.metrics.ItemsAgregados(len(items))
	if stockCambio {
		s.invalidarMenu(ctx, tenantID)
	}

	resp, err := s.ObtenerPedido(ctx, tenantID, pedidoID)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("pedido_id", resp.ID).
		Str("tenant_id", tenantID.String()).
		Bool("nuevo", nuevo).
		Int("items", len(items)).
		Str("total_pago", resp.TotalPago.StringFixed(2)).
		Msg("pedido: items agregados")
	return resp, nil
}

func nuevoDetalle(p *model.Pedido, it itemSolicitado, nombre string, precio decimal.Decimal) model.DetallePedido {
	return model.DetallePedido{
		PedidoID:       p.ID,
		ProductoID:     it.productoID,
		TenantID:       p.TenantID,
		NombreProducto: nombre,
		Cantidad:       it.cantidad,
		PrecioUnitario: precio,
		PrecioTotal:    precio.Mul(decimal.NewFromInt(int64(it.cantidad))),
		Descripcion:    it.descripcion,
	}
}

// recalcularTx writes subtotal = sum of the committed line totals and
// total_pago = subtotal + costo_delivery, plus any extra campos. It returns
// the committed items and updates p in place.
func (s *pedidoService) recalcularTx(tx *gorm.DB, p *model.Pedido, campos map[string]interface{}) ([]model.DetallePedido, error) {
	detalles, err := s.repo.ListDetallesTx(tx, p.TenantID, p.ID)
	if err != nil {
		return nil, persistencia("leer items", err)
	}
	subtotal := decimal.Zero
	for _, d := range detalles {
		subtotal = subtotal.Add(d.PrecioTotal)
	}
	p.Subtotal = subtotal
	p.TotalPago = subtotal.Add(p.CostoDelivery)

	campos["subtotal"] = p.Subtotal
	campos["total_pago"] = p.TotalPago
	if err := s.repo.UpdateTx(tx, p.TenantID, p.ID, campos); err != nil {
		return nil, persistencia("actualizar pedido", err)
	}
	return detalles, nil
}

// ── ReemplazarItemsYTransicionar / ActualizarEstado ──────────────────────────
// Admin edit. One transaction:
//   1. Lock mesa (if any) then pedido
//   2. Reject a status change away from a terminal estado
//   3. pendiente + items + not cancelling: apply per-product stock deltas and
//      replace all line items
//   4. -> cancelado: restore stock of every original line item
//   5. Recompute totals, write estado
//   6. -> completado: materialize the venta from the committed items
//   7. -> terminal: free the table when no other open order remains

func (s *pedidoService) ReemplazarItemsYTransicionar(ctx context.Context, tenantID, pedidoID uuid.UUID, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantNoIdentificado
	}
	estado := ""
	if req.Estado != nil {
		estado = *req.Estado
		if !estadoValido(estado) {
			return nil, ErrTransicionInvalida
		}
	}
	var items []itemSolicitado
	reemplazar := req.Items != nil
	if reemplazar {
		if len(req.Items) == 0 {
			return nil, ErrSinItems
		}
		var err error
		if items, err = resolverItems(req.Items); err != nil {
			return nil, err
		}
	}
	return s.transicionar(ctx, tenantID, pedidoID, estado, items, reemplazar)
}

func (s *pedidoService) ActualizarEstado(ctx context.Context, tenantID, pedidoID uuid.UUID, estado string) (*dto.PedidoResponse, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantNoIdentificado
	}
	if !estadoValido(estado) {
		return nil, ErrTransicionInvalida
	}
	return s.transicionar(ctx, tenantID, pedidoID, estado, nil, false)
}

type transicion struct {
	anterior     string
	destino      string
	venta        *model.Venta
	stockCambio  bool
	reemplazados bool
}

func (s *pedidoService) transicionar(ctx context.Context, tenantID, pedidoID uuid.UUID, estado string, items []itemSolicitado, reemplazar bool) (*dto.PedidoResponse, error) {
	var t transicion
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		base, err := s.repo.FindByIDTx(tx, tenantID, pedidoID)
		if err != nil {
			return noEncontrado(err, ErrPedidoNoEncontrado, "leer pedido")
		}
		var mesa *model.Mesa
		if base.MesaID != nil {
			mesa, err = s.mesas.BloquearTx(tx, tenantID, *base.MesaID)
			if err != nil && !errors.Is(err, ErrMesaNoEncontrada) {
				return err
			}
		}

		pedido, err := s.repo.FindByIDForUpdateTx(tx, tenantID, pedidoID)
		if err != nil {
			return noEncontrado(err, ErrPedidoNoEncontrado, "bloquear pedido")
		}
		t.anterior = pedido.Estado
		t.destino = pedido.Estado
		if estado != "" {
			t.destino = estado
		}
		if t.destino != t.anterior && model.EstadoTerminal(t.anterior) {
			return ErrTransicionInvalida
		}

		detalles, err := s.repo.ListDetallesTx(tx, tenantID, pedido.ID)
		if err != nil {
			return persistencia("leer items", err)
		}

		if reemplazar && t.anterior == model.PedidoPendiente && t.destino != model.PedidoCancelado {
			cambio, err := s.reemplazarItemsTx(tx, pedido, detalles, items)
			if err != nil {
				return err
			}
			t.stockCambio = cambio
			t.reemplazados = true
		}

		if t.destino == model.PedidoCancelado && t.anterior != model.PedidoCancelado {
			if err := s.restaurarTodoTx(tx, pedido, detalles); err != nil {
				return err
			}
			t.stockCambio = t.stockCambio || len(detalles) > 0
		}

		if !t.reemplazados && t.destino == t.anterior {
			return nil
		}

		campos := map[string]interface{}{}
		if t.destino != t.anterior {
			campos["estado"] = t.destino
		}
		finales, err := s.recalcularTx(tx, pedido, campos)
		if err != nil {
			return err
		}
		pedido.Estado = t.destino

		if t.anterior != model.PedidoCompletado && t.destino == model.PedidoCompletado {
			if t.venta, err = s.ventas.MaterializarTx(tx, pedido, finales); err != nil {
				return err
			}
		}

		if t.destino != t.anterior && model.EstadoTerminal(t.destino) && mesa != nil {
			return s.mesas.LiberarSiCorrespondeTx(tx, mesa, pedido.ID)
		}
		return nil
	})
	if txErr != nil {
		s.abortado("transicionar", tenantID, txErr)
		return nil, txErr
	}

	if t.destino != t.anterior {
		s.metrics.Transicion(t.destino)
	}
	if t.venta != nil {
		s.metrics.VentaMaterializada()
		s.encolarRecibo(ctx, tenantID, t.venta.ID)
	}
	if t.stockCambio {
		s.invalidarMenu(ctx, tenantID)
	}

	resp, err := s.ObtenerPedido(ctx, tenantID, pedidoID)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("pedido_id", resp.ID).
		Str("tenant_id", tenantID.String()).
		Str("estado_anterior", t.anterior).
		Str("estado", t.destino).
		Bool("items_reemplazados", t.reemplazados).
		Str("total_pago", resp.TotalPago.StringFixed(2)).
		Msg("pedido: actualizado")
	return resp, nil
}

// reemplazarItemsTx applies newQty-oldQty per product and replaces the line
// items. Products already in the order keep their first snapshot; new ones
// are priced from the catalog.
func (s *pedidoService) reemplazarItemsTx(tx *gorm.DB, p *model.Pedido, actuales []model.DetallePedido, items []itemSolicitado) (bool, error) {
	anteriores := detallesPorProducto(actuales)
	snapshot := make(map[uuid.UUID]model.DetallePedido, len(anteriores))
	for _, d := range actuales {
		if _, ok := snapshot[d.ProductoID]; !ok {
			snapshot[d.ProductoID] = d
		}
	}

	nuevas := porProducto(items)
	deltas := make(map[uuid.UUID]int, len(nuevas)+len(anteriores))
	for id, q := range nuevas {
		deltas[id] = q - anteriores[id]
	}
	for id, q := range anteriores {
		if _, ok := nuevas[id]; !ok {
			deltas[id] = -q
		}
	}

	consumo := Movimiento{Tipo: model.MovimientoAjustePedido, Motivo: fmt.Sprintf("Ajuste pedido %s", p.ID), ReferenciaID: p.ID}
	devolucion := Movimiento{Tipo: model.MovimientoRestoreAjuste, Motivo: fmt.Sprintf("Ajuste pedido %s", p.ID), ReferenciaID: p.ID}
	catalogo := make(map[uuid.UUID]*model.Producto)
	cambio := false
	for _, id := range ordenLock(deltas) {
		delta := deltas[id]
		switch {
		case delta > 0:
			prod, err := s.inventario.DescontarTx(tx, p.TenantID, id, delta, consumo)
			if err != nil {
				return false, err
			}
			catalogo[id] = prod
			cambio = true
		case delta < 0:
			if err := s.inventario.RestaurarTx(tx, p.TenantID, id, -delta, devolucion); err != nil {
				return false, err
			}
			cambio = true
		}
	}

	detalles := make([]model.DetallePedido, 0, len(items))
	for _, it := range items {
		if snap, ok := snapshot[it.productoID]; ok {
			detalles = append(detalles, nuevoDetalle(p, it, snap.NombreProducto, snap.PrecioUnitario))
			continue
		}
		prod := catalogo[it.productoID]
		detalles = append(detalles, nuevoDetalle(p, it, prod.Nombre, prod.PrecioVenta))
	}

	if err := s.repo.DeleteDetallesTx(tx, p.TenantID, p.ID); err != nil {
		return false, persistencia("borrar items", err)
	}
	if err := s.repo.CreateDetallesTx(tx, detalles); err != nil {
		return false, persistencia("crear items", err)
	}
	return cambio, nil
}

func (s *pedidoService) restaurarTodoTx(tx *gorm.DB, p *model.Pedido, detalles []model.DetallePedido) error {
	cantidades := detallesPorProducto(detalles)
	mov := Movimiento{Tipo: model.MovimientoRestoreCancelacion, Motivo: fmt.Sprintf("Cancelacion pedido %s", p.ID), ReferenciaID: p.ID}
	for _, id := range ordenLock(cantidades) {
		if err := s.inventario.RestaurarTx(tx, p.TenantID, id, cantidades[id], mov); err != nil {
			return err
		}
	}
	return nil
}

// ── ActualizarCliente ─────────────────────────────────────────────────────────

func (s *pedidoService) ActualizarCliente(ctx context.Context, tenantID, pedidoID uuid.UUID, req dto.ActualizarClienteRequest) (*dto.PedidoResponse, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantNoIdentificado
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		pedido, err := s.repo.FindByIDForUpdateTx(tx, tenantID, pedidoID)
		if err != nil {
			return noEncontrado(err, ErrPedidoNoEncontrado, "bloquear pedido")
		}
		var cliente *model.Cliente
		if pedido.ClienteID != nil {
			cliente, err = s.clientes.ActualizarTx(tx, tenantID, *pedido.ClienteID, req.Nombre, req.Telefono)
			if err != nil && !errors.Is(err, ErrClienteNoEncontrado) {
				return err
			}
		}
		if cliente == nil {
			nombre := req.Nombre
			if cliente, err = s.clientes.ResolverTx(tx, tenantID, &nombre, req.Telefono); err != nil {
				return err
			}
		}
		if pedido.ClienteID != nil && *pedido.ClienteID == cliente.ID {
			return nil
		}
		err = s.repo.UpdateTx(tx, tenantID, pedido.ID, map[string]interface{}{"cliente_id": cliente.ID})
		return persistencia("asignar cliente", err)
	})
	if txErr != nil {
		s.abortado("actualizar_cliente", tenantID, txErr)
		return nil, txErr
	}
	return s.ObtenerPedido(ctx, tenantID, pedidoID)
}

// ── Lectura ───────────────────────────────────────────────────────────────────

func (s *pedidoService) ObtenerPedido(ctx context.Context, tenantID, id uuid.UUID) (*dto.PedidoResponse, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantNoIdentificado
	}
	p, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, noEncontrado(err, ErrPedidoNoEncontrado, "leer pedido")
	}
	return pedidoToResponse(p), nil
}

func (s *pedidoService) PedidoAbiertoDeMesa(ctx context.Context, tenantID, mesaID uuid.UUID) (*dto.PedidoResponse, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantNoIdentificado
	}
	p, err := s.repo.FindPendienteByMesa(ctx, tenantID, mesaID)
	if err != nil {
		return nil, noEncontrado(err, ErrPedidoNoEncontrado, "leer pedido abierto")
	}
	return pedidoToResponse(p), nil
}

func (s *pedidoService) ObtenerRecibo(ctx context.Context, tenantID, id uuid.UUID) (*dto.ReciboResponse, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantNoIdentificado
	}
	p, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, noEncontrado(err, ErrPedidoNoEncontrado, "leer pedido")
	}
	r := &dto.ReciboResponse{
		PedidoID:      p.ID.String(),
		Estado:        p.Estado,
		Items:         itemsToResponse(p.Detalles),
		Subtotal:      p.Subtotal,
		CostoDelivery: p.CostoDelivery,
		TotalPago:     p.TotalPago,
		Fecha:         p.CreatedAt.Format(time.RFC3339),
	}
	if p.Mesa != nil {
		n := p.Mesa.Numero
		r.MesaNumero = &n
	}
	if p.Cliente != nil {
		nombre := p.Cliente.Nombre
		r.ClienteNombre = &nombre
		r.ClienteTelefono = p.Cliente.Telefono
	}
	return r, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (s *pedidoService) abortado(op string, tenantID uuid.UUID, err error) {
	var stockErr *StockInsuficienteError
	if errors.As(err, &stockErr) {
		s.metrics.StockInsuficiente()
	}
	log.Warn().Err(err).Str("op", op).Str("tenant_id", tenantID.String()).Msg("pedido: transaccion abortada")
}

// encolarRecibo is best-effort: the venta is already committed.
func (s *pedidoService) encolarRecibo(ctx context.Context, tenantID, ventaID uuid.UUID) {
	if s.recibos == nil {
		return
	}
	if err := s.recibos.EnqueueRecibo(ctx, tenantID, ventaID); err != nil {
		log.Warn().Err(err).Str("venta_id", ventaID.String()).Msg("pedido: no se pudo encolar recibo")
	}
}

func (s *pedidoService) invalidarMenu(ctx context.Context, tenantID uuid.UUID) {
	if s.menu != nil {
		s.menu.Invalidar(ctx, tenantID)
	}
}

func itemsToResponse(detalles []model.DetallePedido) []dto.ItemPedidoResponse {
	items := make([]dto.ItemPedidoResponse, 0, len(detalles))
	for _, d := range detalles {
		items = append(items, dto.ItemPedidoResponse{
			ID:             d.ID.String(),
			ProductoID:     d.ProductoID.String(),
			Producto:       d.NombreProducto,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			PrecioTotal:    d.PrecioTotal,
			Descripcion:    d.Descripcion,
		})
	}
	return items
}

func pedidoToResponse(p *model.Pedido) *dto.PedidoResponse {
	return &dto.PedidoResponse{
		ID:            p.ID.String(),
		MesaID:        uuidStr(p.MesaID),
		ClienteID:     uuidStr(p.ClienteID),
		UsuarioID:     uuidStr(p.UsuarioID),
		Estado:        p.Estado,
		Subtotal:      p.Subtotal,
		CostoDelivery: p.CostoDelivery,
		TotalPago:     p.TotalPago,
		MetodoEntrega: p.MetodoEntrega,
		Items:         itemsToResponse(p.Detalles),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}
