package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
	"github.com/jhoicas/stock-api/pkg/jwt"
)

// TokenTTL vigencia fija de los tokens emitidos por Login; no se renuevan sin volver a iniciar sesión.
const TokenTTL = 24 * time.Hour

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	Issuer string
}

// AuthUseCase casos de uso de autenticación de administradores: creación (bootstrap) y login.
type AuthUseCase struct {
	adminRepo repository.AdminRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(adminRepo repository.AdminRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{adminRepo: adminRepo, jwtCfg: jwtCfg}
}

// CreateAdmin crea un administrador con la contraseña tal cual (sin hash).
// Devuelve ErrDuplicate si el username ya existe y ErrInvalidInput si falta username o password.
// No requiere autenticación: cualquiera que alcance el endpoint puede crear administradores.
func (uc *AuthUseCase) CreateAdmin(ctx context.Context, in dto.AdminCredentialsRequest) error {
	if in.Username == "" || in.Password == "" {
		return domain.ErrInvalidInput
	}
	existing, err := uc.adminRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicate
	}
	admin := &entity.Admin{
		ID:       uuid.New().String(),
		Username: in.Username,
		Password: in.Password,
	}
	// El índice único del almacén cubre la carrera entre dos creaciones simultáneas.
	return uc.adminRepo.Create(ctx, admin)
}

// Login busca el admin por username exacto y compara la contraseña en texto plano.
// Usuario inexistente y contraseña incorrecta devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.AdminCredentialsRequest) (string, error) {
	admin, err := uc.adminRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return "", err
	}
	if admin == nil || admin.Password != in.Password {
		return "", domain.ErrInvalidCredentials
	}
	return jwt.Generate(uc.jwtCfg.Secret, admin.ID, uc.jwtCfg.Issuer, TokenTTL)
}

