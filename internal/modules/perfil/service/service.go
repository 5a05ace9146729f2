package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	perfilDto "github.com/andeshr/portalrh/internal/modules/perfil/dto"
	usuarioDto "github.com/andeshr/portalrh/internal/modules/usuario/dto"
	usuarioRepo "github.com/andeshr/portalrh/internal/modules/usuario/repository"
	usuario "github.com/andeshr/portalrh/internal/modules/usuario/service"
	"github.com/andeshr/portalrh/pkg/apperror"
	"github.com/andeshr/portalrh/pkg/storage"
)

type PerfilService interface {
	GetMiPerfil(ctx context.Context, usuarioID uuid.UUID) (*usuarioDto.UsuarioResponse, error)
	ActualizarPerfil(ctx context.Context, usuarioID uuid.UUID, req perfilDto.ActualizarPerfilRequest) error
	CambiarPassword(ctx context.Context, usuarioID uuid.UUID, req perfilDto.CambiarPasswordRequest) error
	SubirAvatar(ctx context.Context, usuarioID uuid.UUID, file *multipart.FileHeader) (string, error)
}

type perfilService struct {
	usuarios    usuarioRepo.UsuarioRepository
	fileStorage storage.FileStorage
}

func NewPerfilService(usuarios usuarioRepo.UsuarioRepository, fileStorage storage.FileStorage) PerfilService {
	return &perfilService{
		usuarios:    usuarios,
		fileStorage: fileStorage,
	}
}

func (s *perfilService) GetMiPerfil(ctx context.Context, usuarioID uuid.UUID) (*usuarioDto.UsuarioResponse, error) {
	u, err := s.usuarios.FindByID(ctx, usuarioID.String())
	if err != nil {
		return nil, fmt.Errorf("usuario not found: %w", apperror.ErrNotFound)
	}

	resp := usuario.MapUsuarioResponse(u)
	return &resp, nil
}

func (s *perfilService) ActualizarPerfil(ctx context.Context, usuarioID uuid.UUID, req perfilDto.ActualizarPerfilRequest) error {
	u, err := s.usuarios.FindByID(ctx, usuarioID.String())
	if err != nil {
		return fmt.Errorf("usuario not found: %w", apperror.ErrNotFound)
	}

	if req.Nombre != nil {
		u.Nombre = *req.Nombre
	}

	return s.usuarios.Update(ctx, u)
}

func (s *perfilService) CambiarPassword(ctx context.Context, usuarioID uuid.UUID, req perfilDto.CambiarPasswordRequest) error {
	u, err := s.usuarios.FindByID(ctx, usuarioID.String())
	if err != nil {
		return fmt.Errorf("usuario not found: %w", apperror.ErrNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.PasswordActual)); err != nil {
		return fmt.Errorf("la contraseña actual no coincide: %w", apperror.ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PasswordNueva), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	return s.usuarios.Update(ctx, u)
}

func (s *perfilService) SubirAvatar(ctx context.Context, usuarioID uuid.UUID, file *multipart.FileHeader) (string, error) {
	u, err := s.usuarios.FindByID(ctx, usuarioID.String())
	if err != nil {
		return "", fmt.Errorf("usuario not found: %w", apperror.ErrNotFound)
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	url, err := s.fileStorage.Upload(ctx, f, "avatares", file.Filename)
	if err != nil {
		return "", err
	}

	anterior := u.AvatarURL
	u.AvatarURL = &url
	if err := s.usuarios.Update(ctx, u); err != nil {
		return "", err
	}

	if anterior != nil {
		// Best effort; a leftover file in storage is harmless.
		_ = s.fileStorage.Delete(ctx, *anterior)
	}

	return url, nil
}
