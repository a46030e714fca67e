package handler

import (
	"net/http"

	"comanda/internal/middleware"
	"comanda/internal/service"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct{ svc service.MenuService }

func NewMenuHandler(svc service.MenuService) *MenuHandler { return &MenuHandler{svc: svc} }

// Obtener godoc
// @Summary      Menu de la mesa
// @Description  Productos activos del local con su disponibilidad. No requiere autenticacion.
// @Tags         public
// @Produce      json
// @Param        X-Tenant-ID header string true "Tenant"
// @Param        uuid path string true "UUID publico de la mesa (QR)"
// @Success      200 {object} dto.MenuResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/public/mesas/{uuid}/menu [get]
func (h *MenuHandler) Obtener(c *gin.Context) {
	publicID, ok := paramID(c, "uuid")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerMenu(c.Request.Context(), middleware.TenantID(c), publicID)
	if err != nil {
		manejarError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
