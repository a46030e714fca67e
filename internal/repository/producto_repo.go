package repository

import (
	"context"

	"comanda/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
// Stock is only written through the *Tx methods, from inside order engine
// transactions.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Producto, error)
	ListActivos(ctx context.Context, tenantID uuid.UUID) ([]model.Producto, error)
	UpdatePrecioVenta(ctx context.Context, tenantID, id uuid.UUID, precio decimal.Decimal) error

	// Used inside transactions — callers must pass the tx instance
	FindByIDForUpdateTx(tx *gorm.DB, tenantID, id uuid.UUID) (*model.Producto, error)
	// DescontarStockTx decrements stock only when enough is available.
	// Returns false when the floor check rejected the update.
	DescontarStockTx(tx *gorm.DB, tenantID, id uuid.UUID, cantidad int) (bool, error)
	IncrementarStockTx(tx *gorm.DB, tenantID, id uuid.UUID, cantidad int) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Scopes(porTenant(tenantID)).Where("id = ?", id).First(&p).Error
	return &p, err
}

func (r *productoRepo) ListActivos(ctx context.Context, tenantID uuid.UUID) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Scopes(porTenant(tenantID)).
		Where("activo = ?", true).
		Order("nombre ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) UpdatePrecioVenta(ctx context.Context, tenantID, id uuid.UUID, precio decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Scopes(porTenant(tenantID)).
		Where("id = ?", id).
		Update("precio_venta", precio).Error
}

func (r *productoRepo) FindByIDForUpdateTx(tx *gorm.DB, tenantID, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := tx.Scopes(porTenant(tenantID), paraActualizar).Where("id = ?", id).First(&p).Error
	return &p, err
}

func (r *productoRepo) DescontarStockTx(tx *gorm.DB, tenantID, id uuid.UUID, cantidad int) (bool, error) {
	res := tx.Model(&model.Producto{}).Scopes(porTenant(tenantID)).
		Where("id = ? AND controla_stock = ? AND stock >= ?", id, true, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *productoRepo) IncrementarStockTx(tx *gorm.DB, tenantID, id uuid.UUID, cantidad int) error {
	return tx.Model(&model.Producto{}).Scopes(porTenant(tenantID)).
		Where("id = ? AND controla_stock = ?", id, true).
		Update("stock", gorm.Expr("stock + ?", cantidad)).Error
}
