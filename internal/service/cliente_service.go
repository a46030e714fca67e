package service

import (
	"errors"
	"fmt"
	"strings"

	"comanda/internal/model"
	"comanda/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// nombreClientePorDefecto is used when only a phone was given.
const nombreClientePorDefecto = "Cliente"

// ClienteService resolves walk-in customers. A walk-in has no account, so it
// is keyed by a synthesized email "<telefono|uuid>@tenant<id>.local".
type ClienteService interface {
	// ResolverTx finds the customer by its synthesized key or creates it.
	// An existing customer gets its name refreshed.
	ResolverTx(tx *gorm.DB, tenantID uuid.UUID, nombre, telefono *string) (*model.Cliente, error)
	// ActualizarTx renames the customer. A non-empty telefono also moves a
	// walk-in to the key of that phone; when another customer already owns
	// the key, that customer is renamed and returned instead. A nil telefono
	// leaves the stored phone alone.
	ActualizarTx(tx *gorm.DB, tenantID, clienteID uuid.UUID, nombre string, telefono *string) (*model.Cliente, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

// EmailSintetico builds the identity key of a walk-in customer.
func EmailSintetico(tenantID uuid.UUID, telefono *string) string {
	local := ""
	if telefono != nil {
		local = strings.TrimSpace(*telefono)
	}
	if local == "" {
		local = uuid.NewString()
	}
	return fmt.Sprintf("%s@tenant%s.local", local, tenantID)
}

// EsEmailSintetico reports whether email is a walk-in key, not a mailbox.
func EsEmailSintetico(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	dominio := email[at+1:]
	return strings.HasPrefix(dominio, "tenant") && strings.HasSuffix(dominio, ".local")
}

func (s *clienteService) ResolverTx(tx *gorm.DB, tenantID uuid.UUID, nombre, telefono *string) (*model.Cliente, error) {
	n := nombreClientePorDefecto
	if nombre != nil && strings.TrimSpace(*nombre) != "" {
		n = strings.TrimSpace(*nombre)
	}
	email := EmailSintetico(tenantID, telefono)

	c, err := s.repo.FindByEmailTx(tx, tenantID, email)
	if err == nil {
		if nombre != nil && c.Nombre != n {
			if err := s.repo.UpdateTx(tx, tenantID, c.ID, map[string]interface{}{"nombre": n}); err != nil {
				return nil, persistencia("actualizar cliente", err)
			}
			c.Nombre = n
		}
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, persistencia("buscar cliente", err)
	}

	c = &model.Cliente{TenantID: tenantID, Nombre: n, Telefono: limpiar(telefono), Email: email}
	if err := s.repo.CreateTx(tx, c); err != nil {
		return nil, persistencia("crear cliente", err)
	}
	return c, nil
}

func (s *clienteService) ActualizarTx(tx *gorm.DB, tenantID, clienteID uuid.UUID, nombre string, telefono *string) (*model.Cliente, error) {
	c, err := s.repo.FindByIDTx(tx, tenantID, clienteID)
	if err != nil {
		return nil, noEncontrado(err, ErrClienteNoEncontrado, "leer cliente")
	}
	n := strings.TrimSpace(nombre)
	if n == "" {
		n = c.Nombre
	}
	campos := map[string]interface{}{"nombre": n}

	if tel := limpiar(telefono); tel != nil {
		campos["telefono"] = *tel
		c.Telefono = tel
		if email := EmailSintetico(tenantID, tel); email != c.Email && EsEmailSintetico(c.Email) {
			otro, err := s.repo.FindByEmailTx(tx, tenantID, email)
			switch {
			case err == nil:
				return s.renombrarTx(tx, tenantID, otro, n)
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return nil, persistencia("buscar cliente", err)
			}
			campos["email"] = email
			c.Email = email
		}
	}

	if err := s.repo.UpdateTx(tx, tenantID, c.ID, campos); err != nil {
		return nil, persistencia("actualizar cliente", err)
	}
	c.Nombre = n
	return c, nil
}

func (s *clienteService) renombrarTx(tx *gorm.DB, tenantID uuid.UUID, c *model.Cliente, nombre string) (*model.Cliente, error) {
	if c.Nombre == nombre {
		return c, nil
	}
	if err := s.repo.UpdateTx(tx, tenantID, c.ID, map[string]interface{}{"nombre": nombre}); err != nil {
		return nil, persistencia("actualizar cliente", err)
	}
	c.Nombre = nombre
	return c, nil
}

func limpiar(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
