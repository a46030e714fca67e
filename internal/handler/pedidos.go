package handler

import (
	"net/http"

	"comanda/internal/dto"
	"comanda/internal/middleware"
	"comanda/internal/service"

	"github.com/gin-gonic/gin"
)

type PedidosHandler struct{ svc service.PedidoService }

func NewPedidosHandler(svc service.PedidoService) *PedidosHandler { return &PedidosHandler{svc: svc} }

// CrearPublico godoc
// @Summary      Pedido desde el QR de la mesa
// @Description  Crea el pedido abierto de la mesa o agrega items al existente. Los totales enviados se ignoran.
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant"
// @Param        body body dto.PedidoPublicoRequest true "Items"
// @Success      201  {object} dto.PedidoResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.StockError
// @Router       /v1/public/pedidos [post]
func (h *PedidosHandler) CrearPublico(c *gin.Context) {
	var req dto.PedidoPublicoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearPedidoPublico(c.Request.Context(), middleware.TenantID(c), req)
	if err != nil {
		manejarError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CrearMesero godoc
// @Summary      Pedido tomado por el mesero
// @Tags         mesero
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.PedidoMeseroRequest true "Mesa, cliente e items"
// @Success      201  {object} dto.PedidoResponse
// @Failure      409  {object} apierror.StockError
// @Router       /v1/mesero/pedidos [post]
func (h *PedidosHandler) CrearMesero(c *gin.Context) {
	var req dto.PedidoMeseroRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearOAgregar(c.Request.Context(), middleware.TenantID(c), middleware.UsuarioID(c), req.ToCrearPedido())
	if err != nil {
		manejarError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CrearAdmin godoc
// @Summary      Pedido creado desde el panel sobre una mesa elegida
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPedidoRequest true "Pedido"
// @Success      201  {object} dto.PedidoResponse
// @Router       /v1/admin/pedidos [post]
func (h *PedidosHandler) CrearAdmin(c *gin.Context) {
	var req dto.CrearPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearOAgregar(c.Request.Context(), middleware.TenantID(c), middleware.UsuarioID(c), req)
	if err != nil {
		manejarError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary      Editar pedido
// @Description  Reemplaza los items y/o cambia el estado en una sola transaccion.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del pedido"
// @Param        body body dto.ActualizarPedidoRequest true "Cambios"
// @Success      200  {object} dto.PedidoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/admin/pedidos/{id} [put]
func (h *PedidosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ReemplazarItemsYTransicionar(c.Request.Context(), middleware.TenantID(c), id, req)
	if err != nil {
		manejarError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarEstado godoc
// @Summary      Cambiar estado del pedido
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del pedido"
// @Param        body body dto.ActualizarEstadoRequest true "Estado"
// @Success      200  {object} dto.PedidoResponse
// @Router       /v1/admin/pedidos/{id}/estado [patch]
func (h *PedidosHandler) ActualizarEstado(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEstado(c.Request.Context(), middleware.TenantID(c), id, req.Estado)
	if err != nil {
		manejarError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarCliente godoc
// @Summary      Asignar cliente al pedido
// @Tags         mesero
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del pedido"
// @Param        body body dto.ActualizarClienteRequest true "Cliente"
// @Success      200  {object} dto.PedidoResponse
// @Router       /v1/mesero/pedidos/{id}/cliente [put]
func (h *PedidosHandler) ActualizarCliente(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCliente(c.Request.Context(), middleware.TenantID(c), id, req)
	if err != nil {
		manejarError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PedidosHandler) Obtener(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPedido(c.Request.Context(), middleware.TenantID(c), id)
	if err != nil {
		manejarError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recibo godoc
// @Summary      Recibo del pedido
// @Tags         mesero
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del pedido"
// @Success      200  {object} dto.ReciboResponse
// @Router       /v1/mesero/pedidos/{id}/recibo [get]
func (h *PedidosHandler) Recibo(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerRecibo(c.Request.Context(), middleware.TenantID(c), id)
	if err != nil {
		manejarError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AbiertoDeMesa returns the table's pendiente order, 404 when there is none.
func (h *PedidosHandler) AbiertoDeMesa(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.PedidoAbiertoDeMesa(c.Request.Context(), middleware.TenantID(c), id)
	if err != nil {
		manejarError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
