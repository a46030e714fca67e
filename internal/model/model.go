// Package model holds the gorm models of the ordering platform.
// Every table is tenant-scoped through a tenant_id column.
package model

import "github.com/google/uuid"

// asignarID fills a nil primary key before insert. Postgres also carries a
// gen_random_uuid() default (see migrations), sqlite test databases do not.
func asignarID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All returns every model, in dependency order, for AutoMigrate in tests.
func All() []interface{} {
	return []interface{}{
		&Producto{}, &Mesa{}, &Cliente{}, &Usuario{},
		&Pedido{}, &DetallePedido{}, &Venta{}, &DetalleVenta{},
		&MovimientoStock{},
	}
}
