// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"fmt"
	"testing"

	"comanda/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a fresh, migrated in-memory sqlite database. The pool is
// limited to one connection so the database lives as long as the test and
// transactions run one at a time.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// SeedProducto inserts an active product.
func SeedProducto(t *testing.T, db *gorm.DB, tenantID uuid.UUID, nombre, precio string, controlaStock bool, stock int) *model.Producto {
	t.Helper()
	p := &model.Producto{
		TenantID:      tenantID,
		Nombre:        nombre,
		ControlaStock: controlaStock,
		Stock:         stock,
		PrecioVenta:   decimal.RequireFromString(precio),
		PrecioCompra:  decimal.Zero,
		Activo:        true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// SeedMesa inserts a disponible table.
func SeedMesa(t *testing.T, db *gorm.DB, tenantID uuid.UUID, numero int) *model.Mesa {
	t.Helper()
	m := &model.Mesa{TenantID: tenantID, Numero: numero, Estado: model.MesaDisponible}
	require.NoError(t, db.Create(m).Error)
	return m
}

// Stock re-reads the current stock of a product.
func Stock(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var p model.Producto
	require.NoError(t, db.First(&p, "id = ?", id).Error)
	return p.Stock
}

// EstadoMesa re-reads the current state of a table.
func EstadoMesa(t *testing.T, db *gorm.DB, id uuid.UUID) string {
	t.Helper()
	var m model.Mesa
	require.NoError(t, db.First(&m, "id = ?", id).Error)
	return m.Estado
}

// Count returns the number of rows of a model matching the condition.
func Count(t *testing.T, db *gorm.DB, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(m)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
