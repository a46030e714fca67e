package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemPedidoRequest is one {producto, cantidad} tuple. Prices are never taken
// from the caller.
type ItemPedidoRequest struct {
	ProductoID  string  `json:"producto_id" validate:"required,uuid"`
	Cantidad    int     `json:"cantidad"    validate:"required,min=1"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=255"`
}

// CrearPedidoRequest drives create-or-append on a table (admin surface and the
// canonical shape the waiter/public payloads are converted into).
type CrearPedidoRequest struct {
	MesaID          string              `json:"mesa_id"          validate:"required,uuid"`
	ClienteNombre   *string             `json:"cliente_nombre"   validate:"omitempty,min=1,max=120"`
	ClienteTelefono *string             `json:"cliente_telefono" validate:"omitempty,max=30"`
	Items           []ItemPedidoRequest `json:"items"            validate:"required,min=1,dive"`
}

// PedidoMeseroRequest is the waiter app payload.
type PedidoMeseroRequest struct {
	TableID       string              `json:"tableId"       validate:"required,uuid"`
	CustomerName  *string             `json:"customerName"  validate:"omitempty,min=1,max=120"`
	CustomerPhone *string             `json:"customerPhone" validate:"omitempty,max=30"`
	Items         []ItemMeseroRequest `json:"items"         validate:"required,min=1,dive"`
}

type ItemMeseroRequest struct {
	ProductID   string  `json:"productId"   validate:"required,uuid"`
	Quantity    int     `json:"quantity"    validate:"required,min=1"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// ToCrearPedido converts the waiter payload into the canonical request.
func (r PedidoMeseroRequest) ToCrearPedido() CrearPedidoRequest {
	items := make([]ItemPedidoRequest, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, ItemPedidoRequest{ProductoID: it.ProductID, Cantidad: it.Quantity, Descripcion: it.Description})
	}
	return CrearPedidoRequest{
		MesaID:          r.TableID,
		ClienteNombre:   r.CustomerName,
		ClienteTelefono: r.CustomerPhone,
		Items:           items,
	}
}

// PedidoPublicoRequest is the QR table-ordering payload. Subtotal and
// TotalPago are accepted for compatibility with existing clients and ignored:
// totals are always computed server side.
type PedidoPublicoRequest struct {
	TableUUID string               `json:"table_uuid" validate:"required,uuid"`
	Items     []ItemPublicoRequest `json:"items"      validate:"required,min=1,dive"`
	Subtotal  *decimal.Decimal     `json:"subtotal"`
	TotalPago *decimal.Decimal     `json:"total_pago"`
}

type ItemPublicoRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity"    validate:"required,min=1"`
}

// ActualizarPedidoRequest is the admin edit payload: optional estado change
// and optional full item replacement. Subtotal/TotalPago are ignored.
type ActualizarPedidoRequest struct {
	Estado    *string             `json:"estado"     validate:"omitempty,oneof=pendiente completado cancelado"`
	Items     []ItemPedidoRequest `json:"items"      validate:"omitempty,dive"`
	Subtotal  *decimal.Decimal    `json:"subtotal"`
	TotalPago *decimal.Decimal    `json:"total_pago"`
}

type ActualizarEstadoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente completado cancelado"`
}

type ActualizarClienteRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,min=1,max=120"`
	Telefono *string `json:"telefono" validate:"omitempty,max=30"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemPedidoResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	PrecioTotal    decimal.Decimal `json:"precio_total"`
	Descripcion    *string         `json:"descripcion,omitempty"`
}

type PedidoResponse struct {
	ID            string               `json:"id"`
	MesaID        *string              `json:"mesa_id"`
	ClienteID     *string              `json:"cliente_id"`
	UsuarioID     *string              `json:"usuario_id"`
	Estado        string               `json:"estado"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	CostoDelivery decimal.Decimal      `json:"costo_delivery"`
	TotalPago     decimal.Decimal      `json:"total_pago"`
	MetodoEntrega string               `json:"metodo_entrega"`
	Items         []ItemPedidoResponse `json:"items"`
	CreatedAt     string               `json:"created_at"`
	UpdatedAt     string               `json:"updated_at"`
}

// ReciboResponse is the read-only receipt shown by the waiter app.
type ReciboResponse struct {
	PedidoID        string               `json:"pedido_id"`
	MesaNumero      *int                 `json:"mesa_numero"`
	ClienteNombre   *string              `json:"cliente_nombre"`
	ClienteTelefono *string              `json:"cliente_telefono"`
	Estado          string               `json:"estado"`
	Items           []ItemPedidoResponse `json:"items"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	CostoDelivery   decimal.Decimal      `json:"costo_delivery"`
	TotalPago       decimal.Decimal      `json:"total_pago"`
	Fecha           string               `json:"fecha"`
}
