package service

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/andeshr/portalrh/internal/model"
	"github.com/andeshr/portalrh/internal/modules/usuario/dto"
	"github.com/andeshr/portalrh/internal/modules/usuario/repository"
	"github.com/andeshr/portalrh/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
}

type authService struct {
	repo     repository.UsuarioRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(repo repository.UsuarioRepository) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	ttl := 8 * time.Hour
	if ttlStr := os.Getenv("JWT_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil {
			ttl = time.Duration(minutes) * time.Minute
		}
	}

	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: ttl,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	usuario, err := s.repo.FindByCorreo(ctx, input.Correo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid credentials")
		}
		return nil, err
	}

	if usuario.Estado != model.EstadoUsuarioActivo {
		return nil, apperror.ErrForbidden
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	return s.buildAuthResponse(usuario)
}

func (s *authService) buildAuthResponse(usuario *model.Usuario) (*dto.AuthResponse, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   usuario.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:   signed,
		Usuario: MapUsuarioResponse(usuario),
	}, nil
}

// MapUsuarioResponse builds the public usuario shape shared by auth and admin.
func MapUsuarioResponse(usuario *model.Usuario) dto.UsuarioResponse {
	resp := dto.UsuarioResponse{
		ID:        usuario.ID.String(),
		Nombre:    usuario.Nombre,
		Correo:    usuario.Correo,
		Rol:       usuario.Rol.Nombre,
		Estado:    usuario.Estado,
		AvatarURL: usuario.AvatarURL,
	}
	if usuario.Puesto != nil {
		resp.Puesto = &usuario.Puesto.Nombre
	}
	return resp
}
