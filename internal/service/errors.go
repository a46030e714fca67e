package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Errores del motor de pedidos. Every operation aborts its transaction and
// returns one of these (possibly wrapped); none is swallowed.
var (
	ErrTenantNoIdentificado = errors.New("tenant no identificado")
	ErrPedidoNoEncontrado   = errors.New("pedido no encontrado")
	ErrProductoNoEncontrado = errors.New("producto no encontrado")
	ErrMesaNoEncontrada     = errors.New("mesa no encontrada")
	ErrClienteNoEncontrado  = errors.New("cliente no encontrado")
	ErrVentaNoEncontrada    = errors.New("venta no encontrada")
	ErrTransicionInvalida   = errors.New("transicion de estado invalida")
	ErrCantidadInvalida     = errors.New("la cantidad debe ser mayor a cero")
	ErrSinItems             = errors.New("el pedido debe tener al menos un item")
	ErrCredenciales         = errors.New("credenciales invalidas")
	ErrPersistencia         = errors.New("error de persistencia")
)

// StockInsuficienteError names the product and the quantities involved so the
// caller can render an actionable message.
type StockInsuficienteError struct {
	Producto   string
	Disponible int
	Solicitado int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d",
		e.Producto, e.Disponible, e.Solicitado)
}

// persistencia wraps an infrastructure error. Domain errors pass through
// unchanged so a nested call never double-wraps.
func persistencia(op string, err error) error {
	if err == nil {
		return nil
	}
	var stockErr *StockInsuficienteError
	if errors.As(err, &stockErr) || esDominio(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrPersistencia, op, err)
}

// noEncontrado maps gorm.ErrRecordNotFound to sentinel and anything else to a
// persistence failure.
func noEncontrado(err, sentinel error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return persistencia(op, err)
}

func esDominio(err error) bool {
	for _, s := range []error{
		ErrTenantNoIdentificado, ErrPedidoNoEncontrado, ErrProductoNoEncontrado,
		ErrMesaNoEncontrada, ErrClienteNoEncontrado, ErrVentaNoEncontrada,
		ErrTransicionInvalida, ErrCantidadInvalida, ErrSinItems,
		ErrCredenciales, ErrPersistencia,
	} {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
