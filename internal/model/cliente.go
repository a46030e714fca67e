package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente is a customer of a tenant. Walk-in customers without an account get
// a synthesized Email of the form "<telefono|uuid>@tenant<id>.local".
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_clientes_tenant_email"`
	Nombre    string    `gorm:"not null"`
	Telefono  *string
	Email     string `gorm:"not null;uniqueIndex:idx_clientes_tenant_email"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }

func (c *Cliente) BeforeCreate(_ *gorm.DB) error {
	asignarID(&c.ID)
	return nil
}
