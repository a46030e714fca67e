package repository

import (
	"context"

	"comanda/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MesaRepository interface {
	Create(ctx context.Context, m *model.Mesa) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Mesa, error)
	// FindByPublicID resolves the QR identifier. It is the only lookup that is
	// not tenant-scoped: the tenant is derived from the row it returns.
	FindByPublicID(ctx context.Context, publicID uuid.UUID) (*model.Mesa, error)

	FindByIDForUpdateTx(tx *gorm.DB, tenantID, id uuid.UUID) (*model.Mesa, error)
	UpdateEstadoTx(tx *gorm.DB, tenantID, id uuid.UUID, estado string) error
}

type mesaRepo struct{ db *gorm.DB }

func NewMesaRepository(db *gorm.DB) MesaRepository { return &mesaRepo{db: db} }

func (r *mesaRepo) Create(ctx context.Context, m *model.Mesa) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mesaRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Mesa, error) {
	var m model.Mesa
	err := r.db.WithContext(ctx).Scopes(porTenant(tenantID)).Where("id = ?", id).First(&m).Error
	return &m, err
}

func (r *mesaRepo) FindByPublicID(ctx context.Context, publicID uuid.UUID) (*model.Mesa, error) {
	var m model.Mesa
	err := r.db.WithContext(ctx).Where("uuid = ?", publicID).First(&m).Error
	return &m, err
}

func (r *mesaRepo) FindByIDForUpdateTx(tx *gorm.DB, tenantID, id uuid.UUID) (*model.Mesa, error) {
	var m model.Mesa
	err := tx.Scopes(porTenant(tenantID), paraActualizar).Where("id = ?", id).First(&m).Error
	return &m, err
}

func (r *mesaRepo) UpdateEstadoTx(tx *gorm.DB, tenantID, id uuid.UUID, estado string) error {
	return tx.Model(&model.Mesa{}).Scopes(porTenant(tenantID)).
		Where("id = ?", id).
		Update("estado", estado).Error
}
