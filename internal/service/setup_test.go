package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"comanda/internal/dto"
	"comanda/internal/metrics"
	"comanda/internal/repository"
	"comanda/internal/testutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubRecibos struct {
	mu     sync.Mutex
	ventas []uuid.UUID
	err    error
}

func (s *stubRecibos) EnqueueRecibo(_ context.Context, _ uuid.UUID, ventaID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ventas = append(s.ventas, ventaID)
	return s.err
}

type stubCache struct {
	mu   sync.Mutex
	data map[string][]byte
	dels int
}

func newStubCache() *stubCache { return &stubCache{data: make(map[string][]byte)} }

func (c *stubCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return b, nil
}

func (c *stubCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *stubCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.dels++
	return nil
}

// ── Fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	db         *gorm.DB
	tenantID   uuid.UUID
	svc        PedidoService
	menu       MenuService
	inventario InventarioService
	ventas     VentaService
	productos  repository.ProductoRepository
	recibos    *stubRecibos
	cache      *stubCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	productos := repository.NewProductoRepository(db)
	pedidos := repository.NewPedidoRepository(db)
	inventario := NewInventarioService(productos, repository.NewMovimientoStockRepository(db))
	mesas := NewMesaService(repository.NewMesaRepository(db), pedidos)
	ventas := NewVentaService(repository.NewVentaRepository(db))
	clientes := NewClienteService(repository.NewClienteRepository(db))

	cache := newStubCache()
	menu := NewMenuService(mesas, productos, cache, time.Minute)
	recibos := &stubRecibos{}

	return &fixture{
		db:         db,
		tenantID:   uuid.New(),
		svc:        NewPedidoService(pedidos, inventario, mesas, clientes, ventas, metrics.New(), recibos, menu),
		menu:       menu,
		inventario: inventario,
		ventas:     ventas,
		productos:  productos,
		recibos:    recibos,
		cache:      cache,
	}
}

func item(productoID uuid.UUID, cantidad int) dto.ItemPedidoRequest {
	return dto.ItemPedidoRequest{ProductoID: productoID.String(), Cantidad: cantidad}
}

func ptr[T any](v T) *T { return &v }
