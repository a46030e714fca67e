package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Estados de pedido. completado and cancelado are terminal.
const (
	PedidoPendiente  = "pendiente"
	PedidoCompletado = "completado"
	PedidoCancelado  = "cancelado"
)

// Metodos de entrega.
const (
	EntregaMesa     = "mesa"
	EntregaDelivery = "delivery"
	EntregaRetiro   = "retiro"
)

// EstadoTerminal reports whether no further transition is allowed from estado.
func EstadoTerminal(estado string) bool {
	return estado == PedidoCompletado || estado == PedidoCancelado
}

// Pedido is the order aggregate. It is never deleted, only moved to a
// terminal estado.
type Pedido struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	MesaID        *uuid.UUID      `gorm:"type:uuid;index"`
	ClienteID     *uuid.UUID      `gorm:"type:uuid"`
	UsuarioID     *uuid.UUID      `gorm:"type:uuid"`
	Estado        string          `gorm:"type:varchar(20);not null;index"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPago     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoDelivery decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoEntrega string          `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Detalles []DetallePedido `gorm:"foreignKey:PedidoID"`
	Mesa     *Mesa           `gorm:"foreignKey:MesaID"`
	Cliente  *Cliente        `gorm:"foreignKey:ClienteID"`
}

func (Pedido) TableName() string { return "pedidos" }

func (p *Pedido) BeforeCreate(_ *gorm.DB) error {
	asignarID(&p.ID)
	return nil
}

// DetallePedido is one line item. NombreProducto and PrecioUnitario are
// snapshotted at insertion; PrecioTotal = Cantidad * PrecioUnitario.
type DetallePedido struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PedidoID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TenantID       uuid.UUID       `gorm:"type:uuid;not null"`
	NombreProducto string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PrecioTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descripcion    *string
	CreatedAt      time.Time
}

func (DetallePedido) TableName() string { return "detalle_pedidos" }

func (d *DetallePedido) BeforeCreate(_ *gorm.DB) error {
	asignarID(&d.ID)
	return nil
}
