package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/andeshr/portalrh/internal/model"
	adminDto "github.com/andeshr/portalrh/internal/modules/admin/dto"
	usuarioDto "github.com/andeshr/portalrh/internal/modules/usuario/dto"
	usuario "github.com/andeshr/portalrh/internal/modules/usuario/service"
	usuarioRepo "github.com/andeshr/portalrh/internal/modules/usuario/repository"
	"github.com/andeshr/portalrh/pkg/apperror"
	"github.com/andeshr/portalrh/pkg/recordset"
)

// AdminService covers the user administration surface: onboarding,
// role/estado changes and offboarding. Deactivation is preferred over
// deletion so historical requests keep their author.
type AdminService interface {
	CrearUsuario(ctx context.Context, req adminDto.CrearUsuarioRequest) (*usuarioDto.UsuarioResponse, error)
	// GetUsuarios lists users with in-memory free-text filtering and
	// column sorting over the joined rol/puesto result set.
	GetUsuarios(ctx context.Context, filtro adminDto.FiltroUsuariosRequest) (*adminDto.ListaUsuariosResponse, error)
	ActualizarUsuario(ctx context.Context, usuarioID uuid.UUID, req adminDto.ActualizarUsuarioRequest) error
	EliminarUsuario(ctx context.Context, usuarioID uuid.UUID) error
}

type adminService struct {
	usuarios usuarioRepo.UsuarioRepository
}

func NewAdminService(usuarios usuarioRepo.UsuarioRepository) AdminService {
	return &adminService{usuarios: usuarios}
}

func (s *adminService) CrearUsuario(ctx context.Context, req adminDto.CrearUsuarioRequest) (*usuarioDto.UsuarioResponse, error) {
	existente, err := s.usuarios.FindByCorreo(ctx, req.Correo)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existente != nil {
		return nil, fmt.Errorf("ya existe un usuario con el correo %s: %w", req.Correo, apperror.ErrConflict)
	}

	rol, err := s.usuarios.FindRolByNombre(ctx, req.Rol)
	if err != nil {
		return nil, fmt.Errorf("rol %s no existe: %w", req.Rol, apperror.ErrBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	nuevo := &model.Usuario{
		Nombre:       req.Nombre,
		Correo:       req.Correo,
		PasswordHash: string(hash),
		RolID:        &rol.ID,
		Estado:       model.EstadoUsuarioActivo,
	}

	if req.PuestoID != nil {
		puestoID, err := uuid.Parse(*req.PuestoID)
		if err != nil {
			return nil, fmt.Errorf("invalid puesto id: %w", apperror.ErrBadRequest)
		}
		nuevo.PuestoID = &puestoID
	}

	if err := s.usuarios.Create(ctx, nuevo); err != nil {
		return nil, err
	}

	creado, err := s.usuarios.FindByID(ctx, nuevo.ID.String())
	if err != nil {
		return nil, err
	}

	resp := usuario.MapUsuarioResponse(creado)
	return &resp, nil
}

func (s *adminService) GetUsuarios(ctx context.Context, filtro adminDto.FiltroUsuariosRequest) (*adminDto.ListaUsuariosResponse, error) {
	usuarios, err := s.usuarios.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	respuestas := make([]usuarioDto.UsuarioResponse, 0, len(usuarios))
	for _, u := range usuarios {
		respuestas = append(respuestas, usuario.MapUsuarioResponse(u))
	}

	visibles := recordset.Filter(respuestas, filtro.Buscar,
		func(u usuarioDto.UsuarioResponse) []string {
			campos := []string{u.Nombre, u.Correo, u.Rol}
			if u.Puesto != nil {
				campos = append(campos, *u.Puesto)
			}
			return campos
		},
		recordset.FieldEquals(filtro.Estado, func(u usuarioDto.UsuarioResponse) string { return u.Estado }),
		recordset.FieldEquals(filtro.Rol, func(u usuarioDto.UsuarioResponse) string { return u.Rol }),
	)

	resp := &adminDto.ListaUsuariosResponse{Data: visibles}
	if filtro.Orden == "" {
		return resp, nil
	}

	estado := recordset.SortState{Key: filtro.OrdenPrevio}
	if filtro.DirPrevia == "desc" {
		estado.Dir = recordset.Descending
	}
	dir := estado.Toggle(filtro.Orden)

	var less func(a, b usuarioDto.UsuarioResponse) bool
	switch filtro.Orden {
	case "correo_electronico":
		less = recordset.ByString(func(u usuarioDto.UsuarioResponse) string { return u.Correo })
	case "estado":
		less = recordset.ByString(func(u usuarioDto.UsuarioResponse) string { return u.Estado })
	default:
		less = recordset.ByString(func(u usuarioDto.UsuarioResponse) string { return u.Nombre })
	}

	resp.Data = recordset.SortBy(visibles, less, dir)
	resp.Orden = estado.Key
	resp.Dir = "asc"
	if dir == recordset.Descending {
		resp.Dir = "desc"
	}
	return resp, nil
}

func (s *adminService) ActualizarUsuario(ctx context.Context, usuarioID uuid.UUID, req adminDto.ActualizarUsuarioRequest) error {
	u, err := s.usuarios.FindByID(ctx, usuarioID.String())
	if err != nil {
		return fmt.Errorf("usuario not found: %w", apperror.ErrNotFound)
	}

	if req.Nombre != nil {
		u.Nombre = *req.Nombre
	}
	if req.Estado != nil {
		u.Estado = *req.Estado
	}
	if req.Rol != nil {
		rol, err := s.usuarios.FindRolByNombre(ctx, *req.Rol)
		if err != nil {
			return fmt.Errorf("rol %s no existe: %w", *req.Rol, apperror.ErrBadRequest)
		}
		u.RolID = &rol.ID
	}
	if req.PuestoID != nil {
		puestoID, err := uuid.Parse(*req.PuestoID)
		if err != nil {
			return fmt.Errorf("invalid puesto id: %w", apperror.ErrBadRequest)
		}
		u.PuestoID = &puestoID
	}

	return s.usuarios.Update(ctx, u)
}

func (s *adminService) EliminarUsuario(ctx context.Context, usuarioID uuid.UUID) error {
	if _, err := s.usuarios.FindByID(ctx, usuarioID.String()); err != nil {
		return fmt.Errorf("usuario not found: %w", apperror.ErrNotFound)
	}

	return s.usuarios.Delete(ctx, usuarioID.String())
}
