package service

import (
	"context"

	"comanda/internal/model"
	"comanda/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MesaService is the table state machine: disponible -> ocupada -> disponible.
// "reservada" is set by hand and is never left or entered by freeing.
type MesaService interface {
	// BloquearTx takes the row lock that serializes find-or-create of the
	// open order of a table.
	BloquearTx(tx *gorm.DB, tenantID, mesaID uuid.UUID) (*model.Mesa, error)
	OcuparTx(tx *gorm.DB, mesa *model.Mesa) error
	// LiberarSiCorrespondeTx frees the table when no pendiente order other
	// than pedidoID remains on it.
	LiberarSiCorrespondeTx(tx *gorm.DB, mesa *model.Mesa, pedidoID uuid.UUID) error
	ResolverPublica(ctx context.Context, tenantID, publicID uuid.UUID) (*model.Mesa, error)
}

type mesaService struct {
	repo    repository.MesaRepository
	pedidos repository.PedidoRepository
}

func NewMesaService(repo repository.MesaRepository, pedidos repository.PedidoRepository) MesaService {
	return &mesaService{repo: repo, pedidos: pedidos}
}

func (s *mesaService) BloquearTx(tx *gorm.DB, tenantID, mesaID uuid.UUID) (*model.Mesa, error) {
	m, err := s.repo.FindByIDForUpdateTx(tx, tenantID, mesaID)
	if err != nil {
		return nil, noEncontrado(err, ErrMesaNoEncontrada, "bloquear mesa")
	}
	return m, nil
}

func (s *mesaService) OcuparTx(tx *gorm.DB, mesa *model.Mesa) error {
	if mesa.Estado == model.MesaOcupada {
		return nil
	}
	if err := s.repo.UpdateEstadoTx(tx, mesa.TenantID, mesa.ID, model.MesaOcupada); err != nil {
		return persistencia("ocupar mesa", err)
	}
	mesa.Estado = model.MesaOcupada
	return nil
}

func (s *mesaService) LiberarSiCorrespondeTx(tx *gorm.DB, mesa *model.Mesa, pedidoID uuid.UUID) error {
	if mesa.Estado != model.MesaOcupada {
		return nil
	}
	n, err := s.pedidos.CountPendientesByMesaTx(tx, mesa.TenantID, mesa.ID, pedidoID)
	if err != nil {
		return persistencia("contar pedidos abiertos", err)
	}
	if n > 0 {
		return nil
	}
	if err := s.repo.UpdateEstadoTx(tx, mesa.TenantID, mesa.ID, model.MesaDisponible); err != nil {
		return persistencia("liberar mesa", err)
	}
	mesa.Estado = model.MesaDisponible
	return nil
}

// ResolverPublica maps a QR identifier to its table. A table of another
// tenant is reported as not found.
func (s *mesaService) ResolverPublica(ctx context.Context, tenantID, publicID uuid.UUID) (*model.Mesa, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantNoIdentificado
	}
	m, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, noEncontrado(err, ErrMesaNoEncontrada, "resolver mesa")
	}
	if m.TenantID != tenantID {
		return nil, ErrMesaNoEncontrada
	}
	return m, nil
}
