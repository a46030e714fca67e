package service

import (
	"context"
	"errors"
	"time"

	"comanda/internal/config"
	"comanda/internal/dto"
	"comanda/internal/model"
	"comanda/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const pinCost = 12

type AuthService interface {
	// LoginPin verifies a staff PIN and issues a token carrying the tenant.
	LoginPin(ctx context.Context, req dto.PinLoginRequest) (*dto.LoginResponse, error)
	CrearUsuario(ctx context.Context, tenantID uuid.UUID, nombre, rol, pin string) (*dto.UsuarioResponse, error)
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

// HashPin returns the bcrypt hash stored in usuarios.pin_hash.
func HashPin(pin string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pin), pinCost)
	return string(b), err
}

func (s *authService) LoginPin(ctx context.Context, req dto.PinLoginRequest) (*dto.LoginResponse, error) {
	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		return nil, ErrTenantNoIdentificado
	}
	userID, err := uuid.Parse(req.UsuarioID)
	if err != nil {
		return nil, ErrCredenciales
	}

	user, err := s.repo.FindActivo(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredenciales
		}
		return nil, persistencia("leer usuario", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(req.Pin)); err != nil {
		return nil, ErrCredenciales
	}

	token, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User:        usuarioToResponse(user),
	}, nil
}

func (s *authService) CrearUsuario(ctx context.Context, tenantID uuid.UUID, nombre, rol, pin string) (*dto.UsuarioResponse, error) {
	if tenantID == uuid.Nil {
		return nil, ErrTenantNoIdentificado
	}
	hash, err := HashPin(pin)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		TenantID: tenantID,
		Nombre:   nombre,
		Rol:      rol,
		PinHash:  hash,
		Activo:   true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, persistencia("crear usuario", err)
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.ID.String(),
		"tenant_id": user.TenantID.String(),
		"nombre":    user.Nombre,
		"rol":       user.Rol,
		"exp":       time.Now().Add(duration).Unix(),
		"iat":       time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:       u.ID.String(),
		TenantID: u.TenantID.String(),
		Nombre:   u.Nombre,
		Rol:      u.Rol,
	}
}
