package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Estados de mesa. "reservada" is set manually and never entered or left by
// the order engine.
const (
	MesaDisponible = "disponible"
	MesaOcupada    = "ocupada"
	MesaReservada  = "reservada"
)

// Mesa is a physical table. PublicID is the opaque identifier printed in the
// table's QR code.
type Mesa struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Numero    int       `gorm:"not null"`
	Estado    string    `gorm:"type:varchar(20);not null"`
	PublicID  uuid.UUID `gorm:"column:uuid;type:uuid;uniqueIndex;not null"`
	QRCode    *string   `gorm:"column:qr_code"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Mesa) TableName() string { return "mesas" }

func (m *Mesa) BeforeCreate(_ *gorm.DB) error {
	asignarID(&m.ID)
	asignarID(&m.PublicID)
	if m.Estado == "" {
		m.Estado = MesaDisponible
	}
	return nil
}
