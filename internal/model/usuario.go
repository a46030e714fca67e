package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles de personal.
const (
	RolMesero        = "mesero"
	RolAdministrador = "administrador"
)

// Usuario is a staff member of a tenant. Waiters authenticate with a PIN.
type Usuario struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre    string    `gorm:"not null"`
	Email     *string
	Rol       string `gorm:"type:varchar(20);not null"`
	PinHash   string `gorm:"not null"`
	Activo    bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Usuario) TableName() string { return "usuarios" }

func (u *Usuario) BeforeCreate(_ *gorm.DB) error {
	asignarID(&u.ID)
	return nil
}
