package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Venta is the write-once copy of a completed Pedido. There is at most one
// Venta per pedido (unique pedido_id); rows are never updated or deleted.
type Venta struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	PedidoID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoDelivery decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPago     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado        string          `gorm:"type:varchar(20);not null"`
	UsuarioID     *uuid.UUID      `gorm:"column:id_user;type:uuid"`
	ClienteID     *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt     time.Time

	Detalles []DetalleVenta `gorm:"foreignKey:VentaID"`
	Cliente  *Cliente       `gorm:"foreignKey:ClienteID"`
}

func (Venta) TableName() string { return "ventas" }

func (v *Venta) BeforeCreate(_ *gorm.DB) error {
	asignarID(&v.ID)
	return nil
}

type DetalleVenta struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	TenantID       uuid.UUID       `gorm:"type:uuid;not null"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	NombreProducto string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

func (DetalleVenta) TableName() string { return "detalle_ventas" }

func (d *DetalleVenta) BeforeCreate(_ *gorm.DB) error {
	asignarID(&d.ID)
	return nil
}
