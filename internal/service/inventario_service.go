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

// InventarioService is the stock ledger. Stock only moves through the *Tx
// methods, called from order engine transactions; every change on a product
// that tracks stock writes one MovimientoStock in the same transaction.
type InventarioService interface {
	// DescontarTx locks the product and consumes cantidad. It returns the
	// product as read before the decrement (name and price snapshot source).
	// Untracked products succeed without any stock change.
	DescontarTx(tx *gorm.DB, tenantID, productoID uuid.UUID, cantidad int, mov Movimiento) (*model.Producto, error)
	// RestaurarTx gives back previously consumed stock. No floor check.
	RestaurarTx(tx *gorm.DB, tenantID, productoID uuid.UUID, cantidad int, mov Movimiento) error

	ListarMovimientos(ctx context.Context, tenantID uuid.UUID, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
}

// Movimiento describes why stock moved.
type Movimiento struct {
	Tipo         string
	Motivo       string
	ReferenciaID uuid.UUID
}

type inventarioService struct {
	productos   repository.ProductoRepository
	movimientos repository.MovimientoStockRepository
}

func NewInventarioService(productos repository.ProductoRepository, movimientos repository.MovimientoStockRepository) InventarioService {
	return &inventarioService{productos: productos, movimientos: movimientos}
}

func (s *inventarioService) DescontarTx(tx *gorm.DB, tenantID, productoID uuid.UUID, cantidad int, mov Movimiento) (*model.Producto, error) {
	if cantidad <= 0 {
		return nil, ErrCantidadInvalida
	}
	prod, err := s.productos.FindByIDForUpdateTx(tx, tenantID, productoID)
	if err != nil {
		return nil, noEncontrado(err, ErrProductoNoEncontrado, "leer producto")
	}
	if !prod.Activo {
		return nil, ErrProductoNoEncontrado
	}
	if !prod.ControlaStock {
		return prod, nil
	}

	ok, err := s.productos.DescontarStockTx(tx, tenantID, productoID, cantidad)
	if err != nil {
		return nil, persistencia("descontar stock", err)
	}
	if !ok {
		return nil, &StockInsuficienteError{Producto: prod.Nombre, Disponible: prod.Stock, Solicitado: cantidad}
	}

	if err := s.registrarTx(tx, prod, -cantidad, mov); err != nil {
		return nil, err
	}
	return prod, nil
}

func (s *inventarioService) RestaurarTx(tx *gorm.DB, tenantID, productoID uuid.UUID, cantidad int, mov Movimiento) error {
	if cantidad <= 0 {
		return nil
	}
	prod, err := s.productos.FindByIDForUpdateTx(tx, tenantID, productoID)
	if err != nil {
		return noEncontrado(err, ErrProductoNoEncontrado, "leer producto")
	}
	if !prod.ControlaStock {
		return nil
	}
	if err := s.productos.IncrementarStockTx(tx, tenantID, productoID, cantidad); err != nil {
		return persistencia("restaurar stock", err)
	}
	return s.registrarTx(tx, prod, cantidad, mov)
}

func (s *inventarioService) registrarTx(tx *gorm.DB, prod *model.Producto, cantidad int, mov Movimiento) error {
	ref := mov.ReferenciaID
	m := &model.MovimientoStock{
		TenantID:      prod.TenantID,
		ProductoID:    prod.ID,
		Tipo:          mov.Tipo,
		Cantidad:      cantidad,
		StockAnterior: prod.Stock,
		StockNuevo:    prod.Stock + cantidad,
		Motivo:        mov.Motivo,
		ReferenciaID:  &ref,
	}
	return persistencia("registrar movimiento", s.movimientos.CreateTx(tx, m))
}

// ── Movimientos ───────────────────────────────────────────────────────────────

func (s *inventarioService) ListarMovimientos(ctx context.Context, tenantID uuid.UUID, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantNoIdentificado
	}
	f := repository.MovimientoStockFilter{Tipo: filter.Tipo, Page: filter.Page, Limit: filter.Limit}
	if filter.ProductoID != "" {
		id, err := uuid.Parse(filter.ProductoID)
		if err != nil {
			return nil, ErrProductoNoEncontrado
		}
		f.ProductoID = &id
	}

	movs, total, err := s.movimientos.List(ctx, tenantID, f)
	if err != nil {
		return nil, persistencia("listar movimientos", err)
	}

	resp := &dto.MovimientoListResponse{
		Data:  make([]dto.MovimientoStockResponse, 0, len(movs)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for _, m := range movs {
		r := dto.MovimientoStockResponse{
			ID:            m.ID.String(),
			ProductoID:    m.ProductoID.String(),
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			CreatedAt:     m.CreatedAt.Format(time.RFC3339),
		}
		if m.Producto != nil {
			r.Producto = m.Producto.Nombre
		}
		if m.ReferenciaID != nil {
			ref := m.ReferenciaID.String()
			r.ReferenciaID = &ref
		}
		resp.Data = append(resp.Data, r)
	}
	return resp, nil
}
