package repository

import (
	"comanda/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClienteRepository only has transactional methods: customers are resolved
// inside the order engine transaction that attaches them.
type ClienteRepository interface {
	FindByIDTx(tx *gorm.DB, tenantID, id uuid.UUID) (*model.Cliente, error)
	FindByEmailTx(tx *gorm.DB, tenantID uuid.UUID, email string) (*model.Cliente, error)
	CreateTx(tx *gorm.DB, c *model.Cliente) error
	// UpdateTx writes only the given columns.
	UpdateTx(tx *gorm.DB, tenantID, id uuid.UUID, campos map[string]interface{}) error
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) FindByIDTx(tx *gorm.DB, tenantID, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := tx.Scopes(porTenant(tenantID)).Where("id = ?", id).First(&c).Error
	return &c, err
}

func (r *clienteRepo) FindByEmailTx(tx *gorm.DB, tenantID uuid.UUID, email string) (*model.Cliente, error) {
	var c model.Cliente
	err := tx.Scopes(porTenant(tenantID)).Where("email = ?", email).First(&c).Error
	return &c, err
}

func (r *clienteRepo) CreateTx(tx *gorm.DB, c *model.Cliente) error {
	return tx.Create(c).Error
}

func (r *clienteRepo) UpdateTx(tx *gorm.DB, tenantID, id uuid.UUID, campos map[string]interface{}) error {
	return tx.Model(&model.Cliente{}).Scopes(porTenant(tenantID)).
		Where("id = ?", id).
		Updates(campos).Error
}
