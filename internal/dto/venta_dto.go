package dto

import "github.com/shopspring/decimal"

// VentaFilter is bound from query string of GET /v1/admin/ventas.
type VentaFilter struct {
	Fecha string `form:"fecha"` // YYYY-MM-DD; empty = all dates
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	PrecioTotal    decimal.Decimal `json:"precio_total"`
}

type VentaResponse struct {
	ID            string              `json:"id"`
	PedidoID      string              `json:"pedido_id"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	CostoDelivery decimal.Decimal     `json:"costo_delivery"`
	TotalPago     decimal.Decimal     `json:"total_pago"`
	Estado        string              `json:"estado"`
	UsuarioID     *string             `json:"id_user"`
	ClienteID     *string             `json:"cliente_id"`
	Items         []ItemVentaResponse `json:"items"`
	CreatedAt     string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
