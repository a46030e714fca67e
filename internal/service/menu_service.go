package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"comanda/internal/dto"
	"comanda/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Cache is the byte cache behind the public menu (redis in production).
// Implementations report a miss as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// MenuService serves the public QR menu. It has no side effects.
type MenuService interface {
	ObtenerMenu(ctx context.Context, tenantID, publicID uuid.UUID) (*dto.MenuResponse, error)
	MenuInvalidator
}

type menuService struct {
	mesas     MesaService
	productos repository.ProductoRepository
	cache     Cache // optional
	ttl       time.Duration
}

func NewMenuService(mesas MesaService, productos repository.ProductoRepository, cache Cache, ttl time.Duration) MenuService {
	return &menuService{mesas: mesas, productos: productos, cache: cache, ttl: ttl}
}

func menuKey(tenantID uuid.UUID) string { return fmt.Sprintf("menu:%s", tenantID) }

func (s *menuService) ObtenerMenu(ctx context.Context, tenantID, publicID uuid.UUID) (*dto.MenuResponse, error) {
	mesa, err := s.mesas.ResolverPublica(ctx, tenantID, publicID)
	if err != nil {
		return nil, err
	}
	resp := &dto.MenuResponse{MesaID: mesa.ID.String(), MesaNumero: mesa.Numero}

	// 1. Cache hit
	if s.cache != nil {
		if b, err := s.cache.Get(ctx, menuKey(tenantID)); err == nil {
			var items []dto.ItemMenuResponse
			if json.Unmarshal(b, &items) == nil {
				resp.Productos = items
				return resp, nil
			}
		}
	}

	// 2. Miss: read catalog
	productos, err := s.productos.ListActivos(ctx, tenantID)
	if err != nil {
		return nil, persistencia("listar productos", err)
	}
	items := make([]dto.ItemMenuResponse, 0, len(productos))
	for _, p := range productos {
		it := dto.ItemMenuResponse{
			ID:          p.ID.String(),
			Nombre:      p.Nombre,
			Descripcion: p.Descripcion,
			PrecioVenta: p.PrecioVenta,
		}
		if p.ControlaStock {
			disponible := p.Stock
			it.Disponible = &disponible
			it.Agotado = disponible <= 0
		}
		items = append(items, it)
	}
	resp.Productos = items

	// 3. Populate cache — best effort, ignore errors
	if s.cache != nil {
		if b, err := json.Marshal(items); err == nil {
			_ = s.cache.Set(ctx, menuKey(tenantID), b, s.ttl)
		}
	}
	return resp, nil
}

func (s *menuService) Invalidar(ctx context.Context, tenantID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, menuKey(tenantID)); err != nil {
		log.Debug().Err(err).Str("tenant_id", tenantID.String()).Msg("menu: invalidacion fallida")
	}
}
