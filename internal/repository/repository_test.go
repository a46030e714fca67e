package repository

import (
	"errors"
	"testing"

	"comanda/internal/model"
	"comanda/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// These tests pin the SQL shape the order engine relies on for consistency
// under concurrency: row locks and the floor-checked decrement.

func TestProductoRepo_FindByIDForUpdateTx_BloqueaFila(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewProductoRepository(db)
	tenantID, id := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "productos" WHERE .*tenant_id = \$\d+.* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "nombre", "controla_stock", "stock"}).
			AddRow(id.String(), tenantID.String(), "Empanada", true, 7))

	p, err := repo.FindByIDForUpdateTx(db, tenantID, id)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, 7, p.Stock)
	assert.True(t, p.ControlaStock)
}

func TestProductoRepo_DescontarStockTx(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "stock suficiente", affected: 1, want: true},
		{name: "rechazado por el piso", affected: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := testutil.NewMockDB(t)
			repo := NewProductoRepository(db)

			mock.ExpectExec(`UPDATE "productos" SET "stock"=stock - \$1.*WHERE .*stock >= \$\d+`).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			ok, err := repo.DescontarStockTx(db, uuid.New(), uuid.New(), 3)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestProductoRepo_DescontarStockTx_ErrorDeBase(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewProductoRepository(db)

	mock.ExpectExec(`UPDATE "productos"`).WillReturnError(errors.New("connection reset"))

	ok, err := repo.DescontarStockTx(db, uuid.New(), uuid.New(), 1)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestProductoRepo_IncrementarStockTx_SoloControlado(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewProductoRepository(db)

	mock.ExpectExec(`UPDATE "productos" SET "stock"=stock \+ \$1.*controla_stock = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementarStockTx(db, uuid.New(), uuid.New(), 2))
}

func TestMesaRepo_FindByIDForUpdateTx_BloqueaFila(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMesaRepository(db)
	tenantID, id := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "mesas" WHERE .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "numero", "estado"}).
			AddRow(id.String(), tenantID.String(), 4, model.MesaDisponible))

	m, err := repo.FindByIDForUpdateTx(db, tenantID, id)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Numero)
}

func TestPedidoRepo_FindPendienteByMesaTx(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPedidoRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "pedidos" WHERE .*estado = \$\d+.*ORDER BY created_at DESC.* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindPendienteByMesaTx(db, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPedidoRepo_CountPendientesByMesaTx_ExcluyeElPedido(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewPedidoRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "pedidos" WHERE .*id <> \$\d+`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountPendientesByMesaTx(db, uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestPedidoRepo_CreateDetallesTx_VacioNoEscribe(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	repo := NewPedidoRepository(db)

	// no expectations: any statement would fail the mock
	require.NoError(t, repo.CreateDetallesTx(db, nil))
}

func TestVentaRepo_ExistsByPedidoTx(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewVentaRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "ventas" WHERE .*pedido_id = \$\d+`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.ExistsByPedidoTx(db, uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPaginar(t *testing.T) {
	tests := []struct {
		page, limit   int
		offset, wantL int
	}{
		{page: 0, limit: 0, offset: 0, wantL: 50},
		{page: 3, limit: 20, offset: 40, wantL: 20},
		{page: 1, limit: 500, offset: 0, wantL: 50},
	}
	for _, tt := range tests {
		off, lim := paginar(tt.page, tt.limit, 50, 200)
		assert.Equal(t, tt.offset, off)
		assert.Equal(t, tt.wantL, lim)
	}
}
