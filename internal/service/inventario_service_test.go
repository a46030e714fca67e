package service

import (
	"context"
	"testing"

	"comanda/internal/dto"
	"comanda/internal/model"
	"comanda/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDescontarTx_CantidadInvalida(t *testing.T) {
	f := newFixture(t)
	p := testutil.SeedProducto(t, f.db, f.tenantID, "Pan", "1.00", true, 5)

	err := f.db.Transaction(func(tx *gorm.DB) error {
		_, err := f.inventario.DescontarTx(tx, f.tenantID, p.ID, 0, Movimiento{Tipo: model.MovimientoPedido})
		return err
	})
	assert.ErrorIs(t, err, ErrCantidadInvalida)
	assert.Equal(t, 5, testutil.Stock(t, f.db, p.ID))
}

func TestRestaurarTx_ProductoSinControl(t *testing.T) {
	f := newFixture(t)
	p := testutil.SeedProducto(t, f.db, f.tenantID, "Cafe", "1.00", false, 0)

	err := f.db.Transaction(func(tx *gorm.DB) error {
		return f.inventario.RestaurarTx(tx, f.tenantID, p.ID, 4, Movimiento{Tipo: model.MovimientoRestoreAjuste, ReferenciaID: uuid.New()})
	})
	require.NoError(t, err)
	assert.Equal(t, 0, testutil.Stock(t, f.db, p.ID))
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &model.MovimientoStock{}, ""))
}

func TestListarMovimientos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mesa := testutil.SeedMesa(t, f.db, f.tenantID, 1)
	a := testutil.SeedProducto(t, f.db, f.tenantID, "A", "1.00", true, 10)
	b := testutil.SeedProducto(t, f.db, f.tenantID, "B", "1.00", true, 10)

	_, err := f.svc.CrearOAgregar(ctx, f.tenantID, nil, dto.CrearPedidoRequest{
		MesaID: mesa.ID.String(), Items: []dto.ItemPedidoRequest{item(a.ID, 1), item(b.ID, 2)},
	})
	require.NoError(t, err)

	todos, err := f.inventario.ListarMovimientos(ctx, f.tenantID, dto.MovimientoFilter{Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(2), todos.Total)

	soloB, err := f.inventario.ListarMovimientos(ctx, f.tenantID, dto.MovimientoFilter{ProductoID: b.ID.String(), Page: 1, Limit: 100})
	require.NoError(t, err)
	require.Len(t, soloB.Data, 1)
	assert.Equal(t, "B", soloB.Data[0].Producto)
	assert.Equal(t, -2, soloB.Data[0].Cantidad)
	assert.Equal(t, 8, soloB.Data[0].StockNuevo)

	otro, err := f.inventario.ListarMovimientos(ctx, uuid.New(), dto.MovimientoFilter{Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(0), otro.Total)

	_, err = f.inventario.ListarMovimientos(ctx, uuid.Nil, dto.MovimientoFilter{})
	assert.ErrorIs(t, err, ErrTenantNoIdentificado)
}
