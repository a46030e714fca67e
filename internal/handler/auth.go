package handler

import (
	"net/http"

	"comanda/internal/dto"
	"comanda/internal/middleware"
	"comanda/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// LoginPin godoc
// @Summary Verificacion de PIN del personal
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.PinLoginRequest true "Tenant, usuario y PIN"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/pin [post]
func (h *AuthHandler) LoginPin(c *gin.Context) {
	var req dto.PinLoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.LoginPin(c.Request.Context(), req)
	if err != nil {
		manejarError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearUsuario godoc
// @Summary Alta de personal del local
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearUsuarioRequest true "Usuario"
// @Success 201 {object} dto.UsuarioResponse
// @Router /v1/admin/usuarios [post]
func (h *AuthHandler) CrearUsuario(c *gin.Context) {
	var req dto.CrearUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearUsuario(c.Request.Context(), middleware.TenantID(c), req.Nombre, req.Rol, req.Pin)
	if err != nil {
		manejarError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
