package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tipos de movimiento de stock.
const (
	MovimientoPedido             = "pedido"
	MovimientoAjustePedido       = "ajuste_pedido"
	MovimientoRestoreAjuste      = "restore_ajuste"
	MovimientoRestoreCancelacion = "restore_cancelacion"
)

// MovimientoStock registra cada cambio de stock hecho por el motor de pedidos.
// Los registros son inmutables. Cantidad > 0 = entrada, < 0 = salida.
type MovimientoStock struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo          string    `gorm:"not null"`
	Cantidad      int       `gorm:"not null"`
	StockAnterior int       `gorm:"not null"`
	StockNuevo    int       `gorm:"not null"`
	Motivo        string
	ReferenciaID  *uuid.UUID `gorm:"type:uuid"` // pedido_id
	CreatedAt     time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (MovimientoStock) TableName() string { return "movimientos_stock" }

func (m *MovimientoStock) BeforeCreate(_ *gorm.DB) error {
	asignarID(&m.ID)
	return nil
}
