package service

import (
	"context"
	"time"

	"comanda/internal/dto"
	"comanda/internal/model"
	"comanda/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VentaService is the sales ledger projection. Ventas are append-only: the
// only write is MaterializarTx and there is no update or delete.
type VentaService interface {
	// MaterializarTx copies a completed pedido and its items. Callers invoke
	// it once, on the transition into completado.
	MaterializarTx(tx *gorm.DB, pedido *model.Pedido, detalles []model.DetallePedido) (*model.Venta, error)
	ObtenerVenta(ctx context.Context, tenantID, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, tenantID uuid.UUID, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo repository.VentaRepository
}

func NewVentaService(repo repository.VentaRepository) VentaService {
	return &ventaService{repo: repo}
}

// runTx executes fn inside a GORM transaction.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// ── MaterializarTx ────────────────────────────────────────────────────────────

func (s *ventaService) MaterializarTx(tx *gorm.DB, pedido *model.Pedido, detalles []model.DetallePedido) (*model.Venta, error) {
	existe, err := s.repo.ExistsByPedidoTx(tx, pedido.TenantID, pedido.ID)
	if err != nil {
		return nil, persistencia("verificar venta", err)
	}
	if existe {
		return nil, ErrTransicionInvalida
	}

	venta := &model.Venta{
		TenantID:      pedido.TenantID,
		PedidoID:      pedido.ID,
		Subtotal:      pedido.Subtotal,
		CostoDelivery: pedido.CostoDelivery,
		TotalPago:     pedido.TotalPago,
		Estado:        model.PedidoCompletado,
		UsuarioID:     pedido.UsuarioID,
		ClienteID:     pedido.ClienteID,
		Detalles:      make([]model.DetalleVenta, 0, len(detalles)),
	}
	for _, d := range detalles {
		venta.Detalles = append(venta.Detalles, model.DetalleVenta{
			TenantID:       pedido.TenantID,
			ProductoID:     d.ProductoID,
			NombreProducto: d.NombreProducto,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			PrecioTotal:    d.PrecioTotal,
		})
	}

	if err := s.repo.CreateTx(tx, venta); err != nil {
		return nil, persistencia("crear venta", err)
	}
	return venta, nil
}

// ── Lectura ───────────────────────────────────────────────────────────────────

func (s *ventaService) ObtenerVenta(ctx context.Context, tenantID, id uuid.UUID) (*dto.VentaResponse, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantNoIdentificado
	}
	v, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, noEncontrado(err, ErrVentaNoEncontrada, "leer venta")
	}
	return ventaToResponse(v), nil
}

func (s *ventaService) ListVentas(ctx context.Context, tenantID uuid.UUID, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantNoIdentificado
	}
	ventas, total, err := s.repo.List(ctx, tenantID, repository.VentaFilter{
		Fecha: filter.Fecha,
		Page:  filter.Page,
		Limit: filter.Limit,
	})
	if err != nil {
		return nil, persistencia("listar ventas", err)
	}

	data := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		data = append(data, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		items = append(items, dto.ItemVentaResponse{
			ProductoID:     d.ProductoID.String(),
			Producto:       d.NombreProducto,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			PrecioTotal:    d.PrecioTotal,
		})
	}
	return &dto.VentaResponse{
		ID:            v.ID.String(),
		PedidoID:      v.PedidoID.String(),
		Subtotal:      v.Subtotal,
		CostoDelivery: v.CostoDelivery,
		TotalPago:     v.TotalPago,
		Estado:        v.Estado,
		UsuarioID:     uuidStr(v.UsuarioID),
		ClienteID:     uuidStr(v.ClienteID),
		Items:         items,
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
	}
}

func uuidStr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
