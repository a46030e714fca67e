package repository

import (
	"context"

	"comanda/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VentaFilter narrows the ledger listing. Fecha is YYYY-MM-DD or empty.
type VentaFilter struct {
	Fecha string
	Page  int
	Limit int
}

// VentaRepository is append-only: there is no update or delete.
type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	ExistsByPedidoTx(tx *gorm.DB, tenantID, pedidoID uuid.UUID) (bool, error)
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Venta, error)
	FindByPedidoID(ctx context.Context, tenantID, pedidoID uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, tenantID uuid.UUID, filter VentaFilter) ([]model.Venta, int64, error)
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

// CreateTx inserts the venta and its Detalles in one statement batch.
func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Omit("Cliente").Create(v).Error
}

func (r *ventaRepo) ExistsByPedidoTx(tx *gorm.DB, tenantID, pedidoID uuid.UUID) (bool, error) {
	var n int64
	err := tx.Model(&model.Venta{}).Scopes(porTenant(tenantID)).
		Where("pedido_id = ?", pedidoID).
		Count(&n).Error
	return n > 0, err
}

func (r *ventaRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Scopes(porTenant(tenantID)).
		Preload("Detalles").Preload("Cliente").
		Where("id = ?", id).
		First(&v).Error
	return &v, err
}

func (r *ventaRepo) FindByPedidoID(ctx context.Context, tenantID, pedidoID uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Scopes(porTenant(tenantID)).
		Preload("Detalles").
		Where("pedido_id = ?", pedidoID).
		First(&v).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, tenantID uuid.UUID, filter VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{}).Scopes(porTenant(tenantID))
	if filter.Fecha != "" {
		q = q.Where("DATE(created_at) = ?", filter.Fecha)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := paginar(filter.Page, filter.Limit, 50, 200)
	err := q.Preload("Detalles").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&ventas).Error
	return ventas, total, err
}
