package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// PinLoginRequest verifies a staff PIN for one tenant.
type PinLoginRequest struct {
	TenantID  string `json:"tenant_id"  validate:"required,uuid"`
	UsuarioID string `json:"usuario_id" validate:"required,uuid"`
	Pin       string `json:"pin"        validate:"required,numeric,min=4,max=8"`
}

// CrearUsuarioRequest registers a staff member of the caller's tenant.
type CrearUsuarioRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=120"`
	Rol    string `json:"rol"    validate:"required,oneof=mesero administrador"`
	Pin    string `json:"pin"    validate:"required,numeric,min=4,max=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	Nombre   string `json:"nombre"`
	Rol      string `json:"rol"`
}

type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"` // seconds
	User        UsuarioResponse `json:"user"`
}
