package repository

import (
	"context"

	"comanda/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PedidoRepository is the data access of the order aggregate (Pedido plus its
// DetallePedido rows).
type PedidoRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Pedido, error)
	FindPendienteByMesa(ctx context.Context, tenantID, mesaID uuid.UUID) (*model.Pedido, error)

	// Used inside transactions — callers must pass the tx instance
	CreateTx(tx *gorm.DB, p *model.Pedido) error
	FindByIDTx(tx *gorm.DB, tenantID, id uuid.UUID) (*model.Pedido, error)
	FindByIDForUpdateTx(tx *gorm.DB, tenantID, id uuid.UUID) (*model.Pedido, error)
	FindPendienteByMesaTx(tx *gorm.DB, tenantID, mesaID uuid.UUID) (*model.Pedido, error)
	CountPendientesByMesaTx(tx *gorm.DB, tenantID, mesaID, excluirID uuid.UUID) (int64, error)
	UpdateTx(tx *gorm.DB, tenantID, id uuid.UUID, campos map[string]interface{}) error
	ListDetallesTx(tx *gorm.DB, tenantID, pedidoID uuid.UUID) ([]model.DetallePedido, error)
	CreateDetallesTx(tx *gorm.DB, detalles []model.DetallePedido) error
	DeleteDetallesTx(tx *gorm.DB, tenantID, pedidoID uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func preloadDetalles(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

func (r *pedidoRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).Scopes(porTenant(tenantID)).
		Preload("Detalles", preloadDetalles).
		Preload("Mesa").
		Preload("Cliente").
		Where("id = ?", id).
		First(&p).Error
	return &p, err
}

func (r *pedidoRepo) FindPendienteByMesa(ctx context.Context, tenantID, mesaID uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).Scopes(porTenant(tenantID)).
		Preload("Detalles", preloadDetalles).
		Where("mesa_id = ? AND estado = ?", mesaID, model.PedidoPendiente).
		Order("created_at DESC").
		First(&p).Error
	return &p, err
}

func (r *pedidoRepo) CreateTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Omit("Detalles", "Mesa", "Cliente").Create(p).Error
}

func (r *pedidoRepo) FindByIDTx(tx *gorm.DB, tenantID, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := tx.Scopes(porTenant(tenantID)).Where("id = ?", id).First(&p).Error
	return &p, err
}

func (r *pedidoRepo) FindByIDForUpdateTx(tx *gorm.DB, tenantID, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := tx.Scopes(porTenant(tenantID), paraActualizar).Where("id = ?", id).First(&p).Error
	return &p, err
}

// FindPendienteByMesaTx locks and returns the most recent open order of a
// table. Callers hold the mesa row lock.
func (r *pedidoRepo) FindPendienteByMesaTx(tx *gorm.DB, tenantID, mesaID uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := tx.Scopes(porTenant(tenantID), paraActualizar).
		Where("mesa_id = ? AND estado = ?", mesaID, model.PedidoPendiente).
		Order("created_at DESC").
		First(&p).Error
	return &p, err
}

func (r *pedidoRepo) CountPendientesByMesaTx(tx *gorm.DB, tenantID, mesaID, excluirID uuid.UUID) (int64, error) {
	var n int64
	err := tx.Model(&model.Pedido{}).Scopes(porTenant(tenantID)).
		Where("mesa_id = ? AND estado = ? AND id <> ?", mesaID, model.PedidoPendiente, excluirID).
		Count(&n).Error
	return n, err
}

func (r *pedidoRepo) UpdateTx(tx *gorm.DB, tenantID, id uuid.UUID, campos map[string]interface{}) error {
	return tx.Model(&model.Pedido{}).Scopes(porTenant(tenantID)).
		Where("id = ?", id).
		Updates(campos).Error
}

func (r *pedidoRepo) ListDetallesTx(tx *gorm.DB, tenantID, pedidoID uuid.UUID) ([]model.DetallePedido, error) {
	var detalles []model.DetallePedido
	err := tx.Scopes(porTenant(tenantID)).
		Where("pedido_id = ?", pedidoID).
		Order("created_at ASC, id ASC").
		Find(&detalles).Error
	return detalles, err
}

func (r *pedidoRepo) CreateDetallesTx(tx *gorm.DB, detalles []model.DetallePedido) error {
	if len(detalles) == 0 {
		return nil
	}
	return tx.Create(&detalles).Error
}

func (r *pedidoRepo) DeleteDetallesTx(tx *gorm.DB, tenantID, pedidoID uuid.UUID) error {
	return tx.Scopes(porTenant(tenantID)).
		Where("pedido_id = ?", pedidoID).
		Delete(&model.DetallePedido{}).Error
}
