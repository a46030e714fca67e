package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Producto is a catalog entry of a tenant.
// Stock is only meaningful when ControlaStock is true; untracked products are
// never decremented and have unlimited availability.
type Producto struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre        string    `gorm:"not null"`
	Descripcion   *string
	ControlaStock bool            `gorm:"not null"`
	Stock         int             `gorm:"not null"`
	PrecioVenta   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioCompra  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Activo        bool            `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Producto) TableName() string { return "productos" }

func (p *Producto) BeforeCreate(_ *gorm.DB) error {
	asignarID(&p.ID)
	return nil
}
