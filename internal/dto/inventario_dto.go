package dto

import "github.com/shopspring/decimal"

// MovimientoFilter is bound from query string of GET /v1/admin/inventario/movimientos.
type MovimientoFilter struct {
	ProductoID string `form:"producto_id" validate:"omitempty,uuid"`
	Tipo       string `form:"tipo"`
	Page       int    `form:"page,default=1"    validate:"min=1"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovimientoStockResponse struct {
	ID            string  `json:"id"`
	ProductoID    string  `json:"producto_id"`
	Producto      string  `json:"producto"`
	Tipo          string  `json:"tipo"`
	Cantidad      int     `json:"cantidad"`
	StockAnterior int     `json:"stock_anterior"`
	StockNuevo    int     `json:"stock_nuevo"`
	Motivo        string  `json:"motivo"`
	ReferenciaID  *string `json:"referencia_id"`
	CreatedAt     string  `json:"created_at"`
}

type MovimientoListResponse struct {
	Data  []MovimientoStockResponse `json:"data"`
	Total int64                     `json:"total"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
}

// ItemMenuResponse is one product of the public menu. Disponible is nil when
// the product does not track stock.
type ItemMenuResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion,omitempty"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	Disponible  *int            `json:"disponible"`
	Agotado     bool            `json:"agotado"`
}

type MenuResponse struct {
	MesaID     string             `json:"mesa_id"`
	MesaNumero int                `json:"mesa_numero"`
	Productos  []ItemMenuResponse `json:"productos"`
}
